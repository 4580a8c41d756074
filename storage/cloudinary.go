package storage

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Cloudinary configuration via environment variables:
// CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY, CLOUDINARY_API_SECRET

// BlobStore uploads a file and returns its durable URL. Room and
// verification flows must see an error here before any database write
// happens, so failed uploads never leave half-created records behind.
type BlobStore interface {
	Upload(data []byte, folder string) (string, error)
}

var Blob BlobStore = &cloudinaryStore{}

func InitializeCloudinary() {
	if os.Getenv("CLOUDINARY_CLOUD_NAME") == "" {
		fmt.Println("⚠️  CLOUDINARY_CLOUD_NAME not set, uploads will fail")
	}
}

type cloudinaryStore struct{}

func (c *cloudinaryStore) Upload(data []byte, folder string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("cloudinary: empty file")
	}

	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return "", fmt.Errorf("cloudinary: missing credentials")
	}

	publicID := fmt.Sprintf("%s/upload_%d", folder, time.Now().UnixNano()/int64(time.Millisecond))
	endpoint := "https://api.cloudinary.com/v1_1/" + cloudName + "/image/upload"

	payload := base64.StdEncoding.EncodeToString(data)

	form := url.Values{}
	form.Add("file", "data:image/jpeg;base64,"+payload)
	form.Add("api_key", apiKey)
	form.Add("public_id", publicID)

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	form.Add("timestamp", timestamp)

	// Signature string must be SHA1 over the signed params
	signatureString := fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, apiSecret)
	signature := fmt.Sprintf("%x", sha1.Sum([]byte(signatureString)))
	form.Add("signature", signature)

	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("cloudinary: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("cloudinary: %w", err)
	}

	if res.StatusCode != 200 {
		return "", fmt.Errorf("cloudinary: upload failed with status %d: %s", res.StatusCode, string(body))
	}

	var cloudRes struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
		Error     struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &cloudRes); err != nil {
		return "", fmt.Errorf("cloudinary: %w", err)
	}
	if cloudRes.Error.Message != "" {
		return "", fmt.Errorf("cloudinary: %s", cloudRes.Error.Message)
	}

	out := cloudRes.SecureURL
	if out == "" {
		out = cloudRes.URL
	}
	if out == "" {
		return "", fmt.Errorf("cloudinary: no URL in response")
	}
	return out, nil
}
