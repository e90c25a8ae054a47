package dto

import (
	"strings"
	"time"

	"github.com/amoylab/rentboard/internal/apiserver/database"
	"github.com/amoylab/rentboard/internal/common/cnst"
	"github.com/amoylab/rentboard/internal/i18n"
)

// PendingRequestBody is a tenant's request for a listing
type PendingRequestBody struct {
	ListingID  string `json:"listingId"`
	LandlordID string `json:"landlordId"`
	Message    string `json:"message"`
}

// ToModel validates both identifiers and builds the request for tenant
func (b *PendingRequestBody) ToModel(tenant database.ID) (*database.PendingRequest, error) {
	listingID, err := database.ParseID(b.ListingID)
	if err != nil {
		return nil, i18n.ErrInvalidID.WithParam("field", "listingId")
	}
	landlordID, err := database.ParseID(b.LandlordID)
	if err != nil {
		return nil, i18n.ErrInvalidID.WithParam("field", "landlordId")
	}
	return &database.PendingRequest{
		ListingID:  listingID,
		LandlordID: landlordID,
		TenantID:   tenant,
		Message:    strings.TrimSpace(b.Message),
		Status:     cnst.RequestStatusPending,
	}, nil
}

// BudgetBody is an optional price range; omitted bounds take defaults
type BudgetBody struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// PreferenceBody is a tenant's preference upsert
type PreferenceBody struct {
	PropertyType       string      `json:"propertyType"`
	PreferredLocations []string    `json:"preferredLocations"`
	Budget             *BudgetBody `json:"budget"`
}

// ToModel applies defaults, validates and builds the preference of tenant
func (b *PreferenceBody) ToModel(tenant database.ID) (*database.TenantPreference, error) {
	pt := cnst.PropertyType(b.PropertyType)
	if pt == "" {
		pt = cnst.PropertyTypeAny
	}
	if !pt.Valid() {
		return nil, i18n.ErrInvalidPropertyType.WithParam("value", b.PropertyType)
	}

	budget := database.Budget{Min: cnst.DefaultBudgetMin, Max: cnst.DefaultBudgetMax}
	if b.Budget != nil {
		if b.Budget.Min != nil {
			budget.Min = *b.Budget.Min
		}
		if b.Budget.Max != nil {
			budget.Max = *b.Budget.Max
		}
	}
	if budget.Min < 0 || budget.Min > budget.Max {
		return nil, i18n.ErrInvalidBudget
	}

	locations := make([]string, 0, len(b.PreferredLocations))
	for _, loc := range b.PreferredLocations {
		if loc = strings.TrimSpace(loc); loc != "" {
			locations = append(locations, loc)
		}
	}

	return &database.TenantPreference{
		TenantID:           tenant,
		PropertyType:       pt,
		PreferredLocations: locations,
		Budget:             budget,
	}, nil
}

// PartyInfo is the public view of a user joined into another record
type PartyInfo struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// PropertyInfo is the public view of a listing joined into a rental
type PropertyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// RentalView is a rental with its counterparts resolved. A counterpart that
// no longer exists is null.
type RentalView struct {
	*database.Rental
	Tenant   *PartyInfo    `json:"tenant"`
	Landlord *PartyInfo    `json:"landlord"`
	Property *PropertyInfo `json:"property"`
}

// EarningView is an earning as listed in the account view
type EarningView struct {
	Amount    float64     `json:"amount"`
	ListingID database.ID `json:"listingId"`
	Paid      bool        `json:"paid"`
	CreatedAt time.Time   `json:"createdAt"`
}
