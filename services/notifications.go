package services

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// Notifier delivers a short text message. The default implementation posts
// to the Twilio REST API; tests swap in a fake.
type Notifier interface {
	SendSMS(to, body string) error
}

var SMS Notifier = &twilioNotifier{}

type twilioNotifier struct{}

func (t *twilioNotifier) SendSMS(to, body string) error {
	accountSID := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	fromNumber := os.Getenv("TWILIO_PHONE_NUMBER")
	if accountSID == "" || authToken == "" || fromNumber == "" {
		return fmt.Errorf("twilio: missing credentials")
	}

	if !strings.HasPrefix(to, "+") {
		to = "+91" + to
	}

	endpoint := "https://api.twilio.com/2010-04-01/Accounts/" + accountSID + "/Messages.json"

	form := url.Values{}
	form.Add("To", to)
	form.Add("From", fromNumber)
	form.Add("Body", body)

	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(accountSID, authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("twilio: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		msg, _ := io.ReadAll(res.Body)
		return fmt.Errorf("twilio: send failed with status %d: %s", res.StatusCode, string(msg))
	}
	return nil
}
