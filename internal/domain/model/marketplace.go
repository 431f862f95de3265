//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"time"

	domainauth "github.com/haulmatch/admin-console/internal/domain/auth"
)

// UserType distinguishes the two sides of the marketplace.
type UserType string

const (
	UserTypeTransporter UserType = "transporter"
	UserTypeTrucker     UserType = "trucker"
)

// Valid reports whether the user type is supported.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeTransporter, UserTypeTrucker:
		return true
	default:
		return false
	}
}

// User is a marketplace account: a transporter posting loads or a trucker owning trucks.
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email,omitempty"`
	Type       UserType  `json:"userType"`
	Company    string    `json:"companyName,omitempty"`
	IsVerified bool      `json:"isVerified"`
	IsBlocked  bool      `json:"isBlocked"`
	CreatedAt  time.Time `json:"createdAt"`
}

// LoadStatus is the lifecycle state of a posted load.
type LoadStatus string

const (
	LoadStatusOpen      LoadStatus = "open"
	LoadStatusAssigned  LoadStatus = "assigned"
	LoadStatusInTransit LoadStatus = "in_transit"
	LoadStatusDelivered LoadStatus = "delivered"
	LoadStatusCancelled LoadStatus = "cancelled"
)

// LoadStatuses lists every load status in lifecycle order.
func LoadStatuses() []LoadStatus {
	return []LoadStatus{LoadStatusOpen, LoadStatusAssigned, LoadStatusInTransit, LoadStatusDelivered, LoadStatusCancelled}
}

// Load is cargo posted by a transporter.
type Load struct {
	ID            string     `json:"id"`
	TransporterID string     `json:"transporterId"`
	Transporter   string     `json:"transporterName,omitempty"`
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	Material      string     `json:"material"`
	WeightTons    float64    `json:"weight"`
	TruckType     string     `json:"truckType,omitempty"`
	Price         float64    `json:"price"`
	PickupDate    time.Time  `json:"pickupDate"`
	Status        LoadStatus `json:"status"`
	BidCount      int        `json:"bidCount"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// Truck is a vehicle registered by a trucker.
type Truck struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"ownerId"`
	OwnerName      string    `json:"ownerName,omitempty"`
	Number         string    `json:"truckNumber"`
	Type           string    `json:"truckType"`
	CapacityTons   float64   `json:"capacity"`
	CurrentCity    string    `json:"currentLocation,omitempty"`
	IsVerified     bool      `json:"isVerified"`
	IsAvailable    bool      `json:"isAvailable"`
	RegistrationAt time.Time `json:"createdAt"`
}

// BidKind separates trucker bids on loads from transporter requests for trucks.
type BidKind string

const (
	BidKindLoadBid      BidKind = "load_bid"
	BidKindTruckRequest BidKind = "truck_request"
)

// BidStatus is the negotiation state of a bid.
type BidStatus string

const (
	BidStatusPending  BidStatus = "pending"
	BidStatusAccepted BidStatus = "accepted"
	BidStatusRejected BidStatus = "rejected"
)

// Bid is an offer exchanged between a trucker and a transporter.
type Bid struct {
	ID         string    `json:"id"`
	Kind       BidKind   `json:"type"`
	LoadID     string    `json:"loadId,omitempty"`
	TruckID    string    `json:"truckId,omitempty"`
	BidderName string    `json:"bidderName"`
	Amount     float64   `json:"amount"`
	Status     BidStatus `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AdminUser is a console operator as listed by the backend.
type AdminUser struct {
	ID        string               `json:"id"`
	Username  string               `json:"username"`
	Phone     string               `json:"phone"`
	Role      domainauth.RoleLevel `json:"role"`
	IsActive  bool                 `json:"isActive"`
	CreatedAt time.Time            `json:"createdAt"`
}

// LoginChallenge is the backend's answer to a password login: an OTP was sent.
type LoginChallenge struct {
	Message     string `json:"message"`
	PhoneSuffix string `json:"phone"`
}

// VerifiedLogin is the result of a successful OTP verification.
type VerifiedLogin struct {
	Token string           `json:"token"`
	Admin domainauth.Admin `json:"admin"`
}
