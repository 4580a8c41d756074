package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name       string `json:"name"`
	Mobile     string `json:"mobile" gorm:"uniqueIndex"`
	Email      string `json:"email" gorm:"uniqueIndex"`
	Password   string `json:"-"`
	ProfilePic string `json:"profilePic"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	Pincode    string `json:"pincode"`
	Rooms      []Room `json:"rooms,omitempty" gorm:"foreignKey:OwnerID;references:ID"`
}
