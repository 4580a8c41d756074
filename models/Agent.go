package models

import (
	"time"

	"gorm.io/gorm"
)

// Agent application statuses. isVerified must be true exactly when the
// status is approved; every lifecycle mutation keeps the pair in sync.
const (
	AgentStatusPending   = "pending"
	AgentStatusApproved  = "approved"
	AgentStatusRejected  = "rejected"
	AgentStatusSuspended = "suspended"
)

type Agent struct {
	gorm.Model
	Name            string     `json:"name"`
	Email           string     `json:"email" gorm:"uniqueIndex"`
	Password        string     `json:"-"`
	Phone           string     `json:"phone" gorm:"uniqueIndex"`
	AadharNumber    string     `json:"aadharNumber" gorm:"uniqueIndex"`
	ProfilePic      string     `json:"profilePic"`
	Zone            string     `json:"zone"`
	IsVerified      bool       `json:"isVerified" gorm:"default:false"`
	IsActive        bool       `json:"isActive" gorm:"default:true"`
	Status          string     `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	CommissionRate  float64    `json:"commissionRate" gorm:"default:5"`
	TotalEarnings   float64    `json:"totalEarnings" gorm:"default:0"`
	PendingPayout   float64    `json:"pendingPayout" gorm:"default:0"`
	AppliedAt       time.Time  `json:"appliedAt"`
	ApprovedAt      *time.Time `json:"approvedAt"`
	RejectionReason string     `json:"rejectionReason"`
}
