package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DonationStatus is a position in the donation lifecycle. It only moves forward:
//
//	pending -> accepted -> in_transit -> picked_up
//	           accepted ------------->  picked_up
type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusAccepted  DonationStatus = "accepted"
	DonationStatusInTransit DonationStatus = "in_transit"
	DonationStatusPickedUp  DonationStatus = "picked_up"
)

// transitionSources lists, for each target state, the states it may be entered from.
var transitionSources = map[DonationStatus][]DonationStatus{
	DonationStatusAccepted:  {DonationStatusPending},
	DonationStatusInTransit: {DonationStatusAccepted},
	DonationStatusPickedUp:  {DonationStatusAccepted, DonationStatusInTransit},
}

// SourcesFor returns the states a donation must be in to enter target.
func SourcesFor(target DonationStatus) []DonationStatus {
	return transitionSources[target]
}

// CanTransition reports whether from -> to is a legal forward move.
func (s DonationStatus) CanTransition(to DonationStatus) bool {
	for _, src := range transitionSources[to] {
		if src == s {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s DonationStatus) Terminal() bool {
	return s == DonationStatusPickedUp
}

// Active reports whether the donation is claimed but not yet picked up.
func (s DonationStatus) Active() bool {
	return s == DonationStatusAccepted || s == DonationStatusInTransit
}

// Donation is surplus food posted by a restaurant and claimed by at most one NGO.
type Donation struct {
	ID             uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	RestaurantID   uuid.UUID       `json:"restaurant_id" gorm:"type:char(36);not null;index"`
	Title          string          `json:"title" gorm:"size:255;not null"`
	Category       string          `json:"category" gorm:"size:100"`
	Quantity       decimal.Decimal `json:"quantity" gorm:"type:decimal(12,2);not null"`
	QuantityUnit   string          `json:"quantity_unit,omitempty" gorm:"size:30"`
	ExpiryTime     time.Time       `json:"expiry_time" gorm:"not null"`
	PickupLocation string          `json:"pickup_location" gorm:"type:text;not null"`
	ImageURL       *string         `json:"image_url" gorm:"size:512"`
	ImageHandle    *string         `json:"-" gorm:"size:255"`

	Status  DonationStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	NGOID   *uuid.UUID     `json:"ngo_id" gorm:"column:ngo_id;type:char(36);index"`
	NGOName *string        `json:"ngo_name" gorm:"column:ngo_name;size:255"`

	PostedAt    time.Time  `json:"posted_at" gorm:"not null;index"`
	AcceptedAt  *time.Time `json:"accepted_at"`
	InTransitAt *time.Time `json:"in_transit_at"`
	PickedUpAt  *time.Time `json:"picked_up_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Restaurant RestaurantProfile `json:"-" gorm:"foreignKey:RestaurantID;references:AccountID"`
}

// BeforeCreate sets UUID before creating the record.
func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// ClaimedBy reports whether ngoID holds the claim on this donation.
func (d *Donation) ClaimedBy(ngoID uuid.UUID) bool {
	return d.NGOID != nil && *d.NGOID == ngoID
}

// ClaimableDonation is a pending donation joined with its restaurant's name.
type ClaimableDonation struct {
	Donation
	RestaurantName string `json:"restaurant_name"`
}

// RestaurantStats are the dashboard counters shown to a restaurant.
type RestaurantStats struct {
	TotalDonationsPosted  int64 `json:"totalDonationsPosted"`
	TotalPickupsCompleted int64 `json:"totalPickupsCompleted"`
	TotalPendingOrders    int64 `json:"totalPendingOrders"`
}

// NGOStats are the dashboard counters shown to an NGO.
type NGOStats struct {
	NGOPickupsCompleted     int64 `json:"ngoPickupsCompleted"`
	ActivePickups           int64 `json:"activePickups"`
	OverallPendingDonations int64 `json:"overallPendingDonations"`
}
