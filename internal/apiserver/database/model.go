package database

import (
	"time"

	"github.com/amoylab/rentboard/internal/common/cnst"
)

// Listing is a property offered for sale or rent
type Listing struct {
	ID            ID                 `json:"_id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	Name          string             `json:"name" bson:"name" gorm:"type:varchar(255);not null;index"`
	Description   string             `json:"description" bson:"description" gorm:"type:text;not null"`
	Address       string             `json:"address" bson:"address" gorm:"type:text;not null"`
	Type          cnst.ListingType   `json:"type" bson:"type" gorm:"type:varchar(10);not null;index"`
	Status        cnst.ListingStatus `json:"status" bson:"status" gorm:"type:varchar(10);not null;default:active;index"`
	RegularPrice  float64            `json:"regularPrice" bson:"regularPrice" gorm:"not null"`
	DiscountPrice float64            `json:"discountPrice" bson:"discountPrice"`
	Offer         bool               `json:"offer" bson:"offer" gorm:"default:false"`
	Bedrooms      int                `json:"bedrooms" bson:"bedrooms"`
	Bathrooms     int                `json:"bathrooms" bson:"bathrooms"`
	Parking       bool               `json:"parking" bson:"parking" gorm:"default:false"`
	Furnished     bool               `json:"furnished" bson:"furnished" gorm:"default:false"`
	ImageURLs     []string           `json:"imageUrls" bson:"imageUrls" gorm:"type:text;serializer:json"`
	UserRef       ID                 `json:"userRef" bson:"userRef" gorm:"type:varchar(36);not null;index"`
	TenantRef     ID                 `json:"tenantRef,omitempty" bson:"tenantRef,omitempty" gorm:"type:varchar(36);index"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// PendingRequest is a tenant's interest in a landlord's listing
type PendingRequest struct {
	ID         ID                 `json:"_id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	ListingID  ID                 `json:"listingId" bson:"listingId" gorm:"type:varchar(36);not null;index"`
	LandlordID ID                 `json:"landlordId" bson:"landlordId" gorm:"type:varchar(36);not null;index"`
	TenantID   ID                 `json:"tenantId" bson:"tenantId" gorm:"type:varchar(36);not null;index"`
	Message    string             `json:"message" bson:"message" gorm:"type:text"`
	Status     cnst.RequestStatus `json:"status" bson:"status" gorm:"type:varchar(10);not null;default:pending"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}

// Earning is an amount owed to a landlord for a listing
type Earning struct {
	ID         ID        `json:"_id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	LandlordID ID        `json:"landlordId" bson:"landlordId" gorm:"type:varchar(36);not null;index"`
	ListingID  ID        `json:"listingId" bson:"listingId" gorm:"type:varchar(36);not null;index"`
	Amount     float64   `json:"amount" bson:"amount" gorm:"not null"`
	Paid       bool      `json:"paid" bson:"paid" gorm:"default:false"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Budget is a tenant's price range
type Budget struct {
	Min float64 `json:"min" bson:"min"`
	Max float64 `json:"max" bson:"max"`
}

// TenantPreference holds at most one record per tenant
type TenantPreference struct {
	ID                 ID                `json:"_id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	TenantID           ID                `json:"tenantId" bson:"tenantId" gorm:"type:varchar(36);not null;uniqueIndex"`
	PropertyType       cnst.PropertyType `json:"propertyType" bson:"propertyType" gorm:"type:varchar(20);not null;default:any"`
	PreferredLocations []string          `json:"preferredLocations" bson:"preferredLocations" gorm:"type:text;serializer:json"`
	Budget             Budget            `json:"budget" bson:"budget" gorm:"embedded;embeddedPrefix:budget_"`
	CreatedAt          time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt" bson:"updatedAt"`
}

// Rental is a tenancy of a listing between two users
type Rental struct {
	ID            ID                 `json:"_id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	TenantID      ID                 `json:"tenantId" bson:"tenantId" gorm:"type:varchar(36);not null;index"`
	LandlordID    ID                 `json:"landlordId" bson:"landlordId" gorm:"type:varchar(36);not null;index"`
	PropertyID    ID                 `json:"propertyId" bson:"propertyId" gorm:"type:varchar(36);not null"`
	StartDate     time.Time          `json:"startDate" bson:"startDate" gorm:"not null"`
	EndDate       time.Time          `json:"endDate" bson:"endDate" gorm:"not null"`
	PaymentStatus cnst.PaymentStatus `json:"paymentStatus" bson:"paymentStatus" gorm:"type:varchar(10);not null;default:pending"`
}

// User is an account holder
type User struct {
	ID        ID        `json:"_id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	Username  string    `json:"username" bson:"username" gorm:"type:varchar(50);not null;uniqueIndex"`
	Email     string    `json:"email" bson:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	Password  string    `json:"-" bson:"password" gorm:"type:varchar(255);not null"`
	Role      cnst.Role `json:"role" bson:"role" gorm:"type:varchar(10);not null"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func allModels() []interface{} {
	return []interface{}{
		&Listing{}, &PendingRequest{}, &Earning{}, &TenantPreference{}, &Rental{}, &User{},
	}
}
