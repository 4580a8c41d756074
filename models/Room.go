package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Room listing statuses. Pending -> Processed (agent submits docs),
// Processed -> Verified/Rejected (admin resolves), Verified -> Cancelled
// (agent cancels), Cancelled -> Pending (agent restores). Admins may set
// any status directly.
const (
	RoomStatusPending     = "Pending"
	RoomStatusProcessed   = "Processed"
	RoomStatusVerified    = "Verified"
	RoomStatusBooked      = "Booked"
	RoomStatusRejected    = "Rejected"
	RoomStatusSuspended   = "Suspended"
	RoomStatusAvailable   = "Available"
	RoomStatusUnderReview = "Under Review"
	RoomStatusCancelled   = "Cancelled"
)

type Room struct {
	gorm.Model
	RoomID           string         `json:"roomId" gorm:"uniqueIndex;size:16"`
	Title            string         `json:"title"`
	Rent             float64        `json:"rent"`
	Address          string         `json:"address"`
	City             string         `json:"city"`
	State            string         `json:"state"`
	Pin              string         `json:"pin"`
	Description      string         `json:"description" gorm:"type:text"`
	Images           datatypes.JSON `json:"images"`
	OwnerID          uint           `json:"ownerID" gorm:"not null;index"`
	Owner            User           `json:"owner,omitempty" gorm:"foreignKey:OwnerID;references:ID"`
	VerifiedByID     *uint          `json:"verifiedBy" gorm:"index"`
	VerifiedBy       *Agent         `json:"verifiedByAgent,omitempty" gorm:"foreignKey:VerifiedByID;references:ID"`
	VerificationDate *time.Time     `json:"verificationDate"`
	Status           string         `json:"status" gorm:"type:varchar(20);default:'Pending';index"`
	CancelledAt      *time.Time     `json:"cancelledAt"`
}

// RoomSequence holds the next roomId serial for one calendar year. The row
// is incremented inside the room-create transaction so two concurrent
// creates cannot hand out the same serial.
type RoomSequence struct {
	Year    int   `gorm:"primaryKey;autoIncrement:false"`
	Counter int64 `gorm:"not null;default:0"`
}
