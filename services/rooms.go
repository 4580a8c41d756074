package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/atharva1010/awaswala/models"
	"github.com/atharva1010/awaswala/storage"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Statuses an agent may set directly. Anything else is rejected; admins go
// through AdminSetRoomStatus which has no such list.
var agentAllowedStatuses = []string{
	models.RoomStatusPending,
	models.RoomStatusProcessed,
	models.RoomStatusUnderReview,
	models.RoomStatusVerified,
	models.RoomStatusCancelled,
	models.RoomStatusRejected,
}

type CreateRoomInput struct {
	Title       string
	Rent        float64
	Address     string
	City        string
	State       string
	Pin         string
	Description string
	OwnerEmail  string
	Images      [][]byte
}

// CreateRoom uploads the listing images, allocates the next roomId for the
// current year and creates the listing in Pending state. The serial comes
// from a per-year counter row incremented inside the insert transaction, so
// concurrent creates cannot collide; the unique index on room_id backstops
// that.
func CreateRoom(in CreateRoomInput) (*models.Room, error) {
	var missing []string
	if in.Title == "" {
		missing = append(missing, "title")
	}
	if in.Rent <= 0 {
		missing = append(missing, "rent")
	}
	if in.Address == "" {
		missing = append(missing, "address")
	}
	if in.City == "" {
		missing = append(missing, "city")
	}
	if in.State == "" {
		missing = append(missing, "state")
	}
	if in.Pin == "" {
		missing = append(missing, "pin")
	}
	if in.OwnerEmail == "" {
		missing = append(missing, "ownerEmail")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Message: "All required fields must be filled", Missing: missing}
	}

	var owner models.User
	err := storage.DB.Where("email = ?", strings.ToLower(in.OwnerEmail)).First(&owner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Owner"}
		}
		return nil, err
	}

	imageURLs, err := uploadAll(in.Images, "awaswala/rooms")
	if err != nil {
		return nil, &UpstreamError{Op: "upload room images", Err: err}
	}
	imagesJSON, _ := json.Marshal(imageURLs)

	room := models.Room{
		Title:       in.Title,
		Rent:        in.Rent,
		Address:     in.Address,
		City:        in.City,
		State:       in.State,
		Pin:         in.Pin,
		Description: in.Description,
		Images:      datatypes.JSON(imagesJSON),
		OwnerID:     owner.ID,
		Status:      models.RoomStatusPending,
	}

	year := timeNow().Year()
	err = storage.DB.Transaction(func(tx *gorm.DB) error {
		// Ensure the counter row exists, then bump it. The UPDATE takes a
		// row lock held until commit, which serializes concurrent creates
		// for the same year.
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.RoomSequence{Year: year}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.RoomSequence{}).
			Where("year = ?", year).
			UpdateColumn("counter", gorm.Expr("counter + 1")).Error; err != nil {
			return err
		}
		var seq models.RoomSequence
		if err := tx.Where("year = ?", year).First(&seq).Error; err != nil {
			return err
		}
		room.RoomID = fmt.Sprintf("RA%d%05d", year, seq.Counter)
		return tx.Create(&room).Error
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

type VerificationDocs struct {
	Aadhar          []byte
	ElectricityBill []byte
	OwnerPhoto      []byte
	RoomPhotos      [][]byte
}

// SubmitVerification records one verification attempt by an approved agent.
// All four document categories are required; every upload must succeed
// before anything is written. The Verification insert and the Room update to
// Processed commit in one transaction, so no reader observes a Processed
// room without its verifiedBy.
func SubmitVerification(roomID uint, agent *models.Agent, docs VerificationDocs) (*models.Verification, error) {
	var room models.Room
	if err := storage.DB.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Room"}
		}
		return nil, err
	}

	var missing []string
	if len(docs.Aadhar) == 0 {
		missing = append(missing, "aadhar")
	}
	if len(docs.ElectricityBill) == 0 {
		missing = append(missing, "electricityBill")
	}
	if len(docs.OwnerPhoto) == 0 {
		missing = append(missing, "ownerPhoto")
	}
	if len(docs.RoomPhotos) == 0 {
		missing = append(missing, "roomPhotos")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Message: "All required documents must be uploaded", Missing: missing}
	}

	var (
		aadharURL      string
		electricityURL string
		ownerPhotoURL  string
	)
	g := new(errgroup.Group)
	g.Go(func() error {
		var err error
		aadharURL, err = storage.Blob.Upload(docs.Aadhar, "awaswala/verification/aadhar")
		return err
	})
	g.Go(func() error {
		var err error
		electricityURL, err = storage.Blob.Upload(docs.ElectricityBill, "awaswala/verification/electricity")
		return err
	})
	g.Go(func() error {
		var err error
		ownerPhotoURL, err = storage.Blob.Upload(docs.OwnerPhoto, "awaswala/verification/owner")
		return err
	})
	roomPhotoURLs := make([]string, len(docs.RoomPhotos))
	for i, photo := range docs.RoomPhotos {
		i, photo := i, photo
		g.Go(func() error {
			var err error
			roomPhotoURLs[i], err = storage.Blob.Upload(photo, "awaswala/verification/rooms")
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, &UpstreamError{Op: "upload verification documents", Err: err}
	}

	roomPhotosJSON, _ := json.Marshal(roomPhotoURLs)
	now := timeNow()

	verification := models.Verification{
		RoomID:  room.ID,
		AgentID: agent.ID,

		// Snapshots taken at submission time; later edits to the agent or
		// room do not touch this record.
		AgentName:  agent.Name,
		AgentEmail: agent.Email,
		AgentPhone: agent.Phone,
		AgentZone:  agent.Zone,

		RoomNumber:   room.RoomID,
		RoomTitle:    room.Title,
		RoomRent:     room.Rent,
		RoomLocation: fmt.Sprintf("%s, %s", room.City, room.State),

		AadharDoc:          aadharURL,
		ElectricityBillDoc: electricityURL,
		OwnerPhoto:         ownerPhotoURL,
		RoomPhotos:         datatypes.JSON(roomPhotosJSON),
		Status:             models.VerificationStatusSubmitted,
		SubmittedAt:        now,
	}

	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&verification).Error; err != nil {
			return err
		}
		agentID := agent.ID
		room.Status = models.RoomStatusProcessed
		room.VerifiedByID = &agentID
		room.VerificationDate = &now
		return tx.Save(&room).Error
	})
	if err != nil {
		return nil, err
	}
	return &verification, nil
}

// SetRoomStatus is the agent-facing status update. The allow-list includes
// Verified, which lets an agent stamp a room verified without admin review;
// that fast-track is intentional behavior carried over from the original
// workflow and is asymmetric with AdminSetRoomStatus on purpose.
func SetRoomStatus(roomID uint, agent *models.Agent, status string) (*models.Room, error) {
	if !slices.Contains(agentAllowedStatuses, status) {
		return nil, &ValidationError{
			Message: fmt.Sprintf("Invalid status: %s. Allowed: %s", status, strings.Join(agentAllowedStatuses, ", ")),
		}
	}

	var room models.Room
	if err := storage.DB.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Room"}
		}
		return nil, err
	}

	room.Status = status
	switch status {
	case models.RoomStatusCancelled:
		now := timeNow()
		room.CancelledAt = &now
	case models.RoomStatusVerified:
		now := timeNow()
		agentID := agent.ID
		room.VerifiedByID = &agentID
		room.VerificationDate = &now
	}

	if err := storage.DB.Save(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// ResolveVerification records the admin decision on a verification and
// cascades it to the room: Approved -> Verified, Rejected -> Rejected. A
// room that has since disappeared is tolerated; the verification update
// still stands.
func ResolveVerification(id uint, decision, reviewNotes string) (*models.Verification, *models.Room, error) {
	if decision != models.VerificationStatusApproved && decision != models.VerificationStatusRejected {
		return nil, nil, &ValidationError{
			Message: fmt.Sprintf("Invalid decision: %s. Allowed: %s, %s", decision,
				models.VerificationStatusApproved, models.VerificationStatusRejected),
		}
	}

	var verification models.Verification
	if err := storage.DB.First(&verification, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, &NotFoundError{Resource: "Verification record"}
		}
		return nil, nil, err
	}

	now := timeNow()
	verification.Status = decision
	verification.ReviewedAt = &now
	if reviewNotes != "" {
		verification.ReviewNotes = reviewNotes
	}

	var room models.Room
	roomFound := true
	if err := storage.DB.First(&room, verification.RoomID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, err
		}
		roomFound = false
	}

	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&verification).Error; err != nil {
			return err
		}
		if !roomFound {
			return nil
		}
		if decision == models.VerificationStatusApproved {
			room.Status = models.RoomStatusVerified
		} else {
			room.Status = models.RoomStatusRejected
		}
		return tx.Save(&room).Error
	})
	if err != nil {
		return nil, nil, err
	}
	if !roomFound {
		return &verification, nil, nil
	}
	return &verification, &room, nil
}

// AdminSetRoomStatus is the unrestricted override: any status string, no
// allow-list, no cancelledAt/verifiedBy stamping.
func AdminSetRoomStatus(roomID uint, status string) (*models.Room, error) {
	var room models.Room
	if err := storage.DB.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Room"}
		}
		return nil, err
	}

	room.Status = status
	if err := storage.DB.Save(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func uploadAll(files [][]byte, folder string) ([]string, error) {
	urls := make([]string, len(files))
	g := new(errgroup.Group)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			var err error
			urls[i], err = storage.Blob.Upload(file, folder)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}
