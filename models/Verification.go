package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	VerificationStatusSubmitted   = "Submitted"
	VerificationStatusUnderReview = "Under Review"
	VerificationStatusApproved    = "Approved"
	VerificationStatusRejected    = "Rejected"
)

// Verification is one documentation submission by an agent for one room.
// The agent and room columns are point-in-time snapshots taken at submission
// and are deliberately never updated when the source records change.
type Verification struct {
	ID      uint `json:"id" gorm:"primaryKey"`
	RoomID  uint `json:"room_id" gorm:"not null;index"`
	AgentID uint `json:"agent_id" gorm:"not null;index"`

	AgentName  string `json:"agentName" gorm:"size:256;not null"`
	AgentEmail string `json:"agentEmail" gorm:"size:256;not null"`
	AgentPhone string `json:"agentPhone" gorm:"size:32;not null"`
	AgentZone  string `json:"agentZone" gorm:"size:128;not null"`

	RoomNumber   string  `json:"roomNumber" gorm:"size:16;not null"`
	RoomTitle    string  `json:"roomTitle" gorm:"size:256;not null"`
	RoomRent     float64 `json:"roomRent" gorm:"not null"`
	RoomLocation string  `json:"roomLocation" gorm:"size:512;not null"`

	AadharDoc          string         `json:"aadharDoc" gorm:"size:512"`
	ElectricityBillDoc string         `json:"electricityBillDoc" gorm:"size:512"`
	OwnerPhoto         string         `json:"ownerPhoto" gorm:"size:512"`
	RoomPhotos         datatypes.JSON `json:"roomPhotos"`

	Status      string     `json:"status" gorm:"size:20;default:'Submitted';index"`
	SubmittedAt time.Time  `json:"submittedAt"`
	ReviewedAt  *time.Time `json:"reviewedAt"`
	ReviewNotes string     `json:"reviewNotes" gorm:"type:text"`
}
