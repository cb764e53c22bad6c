package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the role-specific half of an account. It is implemented by
// *RestaurantProfile and *NGOProfile only.
type Profile interface {
	Role() Role
	OwnerID() uuid.UUID
	DisplayName() string
	Flatten(account *Account) FlatProfile
}

// FlatProfile is the single response shape for both profile variants.
type FlatProfile struct {
	ID                 uuid.UUID     `json:"id"`
	Email              string        `json:"email"`
	Role               Role          `json:"role"`
	Status             AccountStatus `json:"status"`
	Name               string        `json:"name"`
	ContactNumber      *string       `json:"contact_number"`
	Address            *string       `json:"address"`
	VerificationDetail *string       `json:"verification_detail"`
	VolunteersCount    *int          `json:"volunteers_count"`
	ContactPerson      *string       `json:"contact_person"`
}

// RestaurantProfile holds the restaurant-specific registration data.
type RestaurantProfile struct {
	AccountID     uuid.UUID `json:"account_id" gorm:"type:char(36);primaryKey"`
	Name          string    `json:"name" gorm:"size:255;not null;index"`
	OwnerName     *string   `json:"owner_name" gorm:"size:255"`
	ContactNumber *string   `json:"contact_number" gorm:"size:50"`
	Address       *string   `json:"address" gorm:"type:text"`
	LicenseProof  *string   `json:"license_proof" gorm:"size:255"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Account Account `json:"-" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

func (p *RestaurantProfile) Role() Role          { return RoleRestaurant }
func (p *RestaurantProfile) OwnerID() uuid.UUID  { return p.AccountID }
func (p *RestaurantProfile) DisplayName() string { return p.Name }

// Flatten merges the profile with its account.
func (p *RestaurantProfile) Flatten(account *Account) FlatProfile {
	return FlatProfile{
		ID:                 account.ID,
		Email:              account.Email,
		Role:               account.Role,
		Status:             account.Status,
		Name:               p.Name,
		ContactNumber:      p.ContactNumber,
		Address:            p.Address,
		VerificationDetail: p.LicenseProof,
		ContactPerson:      p.OwnerName,
	}
}

// NGOProfile holds the NGO-specific registration data.
type NGOProfile struct {
	AccountID               uuid.UUID `json:"account_id" gorm:"type:char(36);primaryKey"`
	Name                    string    `json:"name" gorm:"size:255;not null;index"`
	ContactPerson           *string   `json:"contact_person" gorm:"size:255"`
	ContactNumber           *string   `json:"contact_number" gorm:"size:50"`
	Address                 *string   `json:"address" gorm:"type:text"`
	RegistrationCertificate *string   `json:"registration_certificate" gorm:"size:255"`
	VolunteersCount         *int      `json:"volunteers_count"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`

	Account Account `json:"-" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the table plural without gorm splitting "NGO".
func (NGOProfile) TableName() string { return "ngo_profiles" }

func (p *NGOProfile) Role() Role          { return RoleNGO }
func (p *NGOProfile) OwnerID() uuid.UUID  { return p.AccountID }
func (p *NGOProfile) DisplayName() string { return p.Name }

// Flatten merges the profile with its account.
func (p *NGOProfile) Flatten(account *Account) FlatProfile {
	return FlatProfile{
		ID:                 account.ID,
		Email:              account.Email,
		Role:               account.Role,
		Status:             account.Status,
		Name:               p.Name,
		ContactNumber:      p.ContactNumber,
		Address:            p.Address,
		VerificationDetail: p.RegistrationCertificate,
		VolunteersCount:    p.VolunteersCount,
		ContactPerson:      p.ContactPerson,
	}
}

// ProfileUpdate carries the mutable contact fields shared by both variants.
type ProfileUpdate struct {
	Name          string
	ContactNumber *string
	Address       *string
}
