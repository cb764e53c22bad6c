package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountStatus gates whether an account may log in.
type AccountStatus string

const (
	AccountStatusPending  AccountStatus = "pending"
	AccountStatusApproved AccountStatus = "approved"
)

// Account is the login identity shared by restaurants and NGOs.
type Account struct {
	ID           uuid.UUID     `json:"id" gorm:"type:char(36);primaryKey"`
	Email        string        `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string        `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role          `json:"role" gorm:"type:varchar(20);not null;index"`
	Status       AccountStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Approved reports whether the account passed the approval step.
func (a *Account) Approved() bool {
	return a.Status == AccountStatusApproved
}
