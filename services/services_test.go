package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/atharva1010/awaswala/models"
	"github.com/atharva1010/awaswala/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB points storage.DB at a fresh in-memory sqlite database and
// installs a fake blob store, restoring both when the test ends.
func setupTestDB(t *testing.T) *fakeBlob {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Agent{},
		&models.Room{},
		&models.RoomSequence{},
		&models.Verification{},
		&models.AuditLog{},
	))

	prevDB := storage.DB
	prevBlob := storage.Blob
	prevNow := timeNow

	storage.DB = db
	blob := &fakeBlob{}
	storage.Blob = blob

	t.Cleanup(func() {
		storage.DB = prevDB
		storage.Blob = prevBlob
		timeNow = prevNow
		sqlDB.Close()
	})
	return blob
}

type fakeBlob struct {
	fail    bool
	uploads int
}

func (f *fakeBlob) Upload(data []byte, folder string) (string, error) {
	if f.fail {
		return "", fmt.Errorf("blob store unavailable")
	}
	f.uploads++
	return fmt.Sprintf("https://cdn.test/%s/%d", folder, f.uploads), nil
}

func setClock(t *testing.T, at time.Time) {
	t.Helper()
	timeNow = func() time.Time { return at }
}

func createTestUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := models.User{
		Name:   "Test Owner",
		Email:  email,
		Mobile: fmt.Sprintf("9%09d", time.Now().UnixNano()%1e9),
	}
	require.NoError(t, storage.DB.Create(&user).Error)
	return &user
}

func applyTestAgent(t *testing.T, email, phone, aadhar string) *models.Agent {
	t.Helper()
	agent, err := ApplyAgent(ApplyAgentInput{
		Name:         "Ravi Kumar",
		Email:        email,
		Password:     "secret123",
		Phone:        phone,
		AadharNumber: aadhar,
		Zone:         "North Delhi",
	})
	require.NoError(t, err)
	return agent
}

func approvedTestAgent(t *testing.T, email, phone, aadhar string) *models.Agent {
	t.Helper()
	agent := applyTestAgent(t, email, phone, aadhar)
	approved, err := ApproveAgent(agent.ID)
	require.NoError(t, err)
	return approved
}
