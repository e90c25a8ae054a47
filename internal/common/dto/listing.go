package dto

import (
	"strconv"
	"strings"

	"github.com/amoylab/rentboard/internal/apiserver/database"
	"github.com/amoylab/rentboard/internal/common/cnst"
	"github.com/amoylab/rentboard/internal/i18n"
)

const (
	DefaultSearchLimit = 9
)

// ListingSearchParams are the raw query parameters of a listing search
type ListingSearchParams struct {
	Limit      string `form:"limit"`
	StartIndex string `form:"startIndex"`
	Offer      string `form:"offer"`
	Furnished  string `form:"furnished"`
	Parking    string `form:"parking"`
	Type       string `form:"type"`
	SearchTerm string `form:"searchTerm"`
	Sort       string `form:"sort"`
	Order      string `form:"order"`
}

// ToQuery coerces the parameters into a typed query. Paging and sorting never
// fail; only an unrecognized boolean filter value is rejected.
func (p ListingSearchParams) ToQuery() (database.ListingQuery, error) {
	q := database.ListingQuery{
		Limit:      parseLimit(p.Limit),
		Offset:     parseOffset(p.StartIndex),
		SearchTerm: strings.TrimSpace(p.SearchTerm),
		Sort:       database.ParseSortField(p.Sort),
		Ascending:  parseAscending(p.Order),
	}

	var err error
	if q.Offer, err = parseTriState("offer", p.Offer); err != nil {
		return q, err
	}
	if q.Furnished, err = parseTriState("furnished", p.Furnished); err != nil {
		return q, err
	}
	if q.Parking, err = parseTriState("parking", p.Parking); err != nil {
		return q, err
	}

	switch p.Type {
	case "", "all":
		q.Types = []cnst.ListingType{cnst.ListingTypeSale, cnst.ListingTypeRent}
	default:
		q.Types = []cnst.ListingType{cnst.ListingType(p.Type)}
	}
	return q, nil
}

// parseAscending accepts the spellings sort clients send for ascending order;
// anything else sorts descending
func parseAscending(order string) bool {
	switch strings.ToLower(strings.TrimSpace(order)) {
	case "asc", "ascending", "1":
		return true
	}
	return false
}

func parseLimit(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return DefaultSearchLimit
	}
	return n
}

func parseOffset(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// parseTriState reads a boolean filter. Absent and "false" both mean no filter;
// "0" and "no" are the only way to restrict to false.
func parseTriState(name, v string) (*bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "false":
		return nil, nil
	case "true", "1", "yes":
		t := true
		return &t, nil
	case "0", "no":
		f := false
		return &f, nil
	}
	return nil, i18n.ErrInvalidFilter.WithParam("name", name)
}

// ListingRequest is the body of listing create and update calls.
// The owner is never taken from the body.
type ListingRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Address       string   `json:"address"`
	Type          string   `json:"type"`
	Status        string   `json:"status"`
	RegularPrice  float64  `json:"regularPrice"`
	DiscountPrice float64  `json:"discountPrice"`
	Offer         bool     `json:"offer"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	Parking       bool     `json:"parking"`
	Furnished     bool     `json:"furnished"`
	ImageURLs     []string `json:"imageUrls"`
	TenantRef     string   `json:"tenantRef"`
}

// Validate checks required fields and the offer pricing rule
func (r *ListingRequest) Validate() error {
	var missing []string
	if strings.TrimSpace(r.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(r.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(r.Address) == "" {
		missing = append(missing, "address")
	}
	if r.Type == "" {
		missing = append(missing, "type")
	}
	if r.RegularPrice <= 0 {
		missing = append(missing, "regularPrice")
	}
	if len(r.ImageURLs) == 0 {
		missing = append(missing, "imageUrls")
	}
	if len(missing) > 0 {
		return i18n.ErrMissingFields.WithParam("fields", strings.Join(missing, ", "))
	}

	switch cnst.ListingType(r.Type) {
	case cnst.ListingTypeSale, cnst.ListingTypeRent:
	default:
		return i18n.ErrInvalidPayload.WithParam("reason", "type must be sale or rent")
	}
	switch cnst.ListingStatus(r.Status) {
	case "", cnst.ListingStatusActive, cnst.ListingStatusPending:
	default:
		return i18n.ErrInvalidPayload.WithParam("reason", "status must be active or pending")
	}
	if r.Bedrooms < 0 || r.Bathrooms < 0 || r.DiscountPrice < 0 {
		return i18n.ErrInvalidPayload.WithParam("reason", "counts and prices must not be negative")
	}
	if r.Offer && r.DiscountPrice >= r.RegularPrice {
		return i18n.ErrDiscountNotLower
	}
	if r.TenantRef != "" {
		if _, err := database.ParseID(r.TenantRef); err != nil {
			return i18n.ErrInvalidID.WithParam("field", "tenantRef")
		}
	}
	return nil
}

// ApplyTo copies every mutable field onto l. It must follow a successful Validate.
func (r *ListingRequest) ApplyTo(l *database.Listing) {
	l.Name = strings.TrimSpace(r.Name)
	l.Description = r.Description
	l.Address = r.Address
	l.Type = cnst.ListingType(r.Type)
	if r.Status != "" {
		l.Status = cnst.ListingStatus(r.Status)
	} else if l.Status == "" {
		l.Status = cnst.ListingStatusActive
	}
	l.RegularPrice = r.RegularPrice
	l.DiscountPrice = r.DiscountPrice
	l.Offer = r.Offer
	l.Bedrooms = r.Bedrooms
	l.Bathrooms = r.Bathrooms
	l.Parking = r.Parking
	l.Furnished = r.Furnished
	l.ImageURLs = append([]string(nil), r.ImageURLs...)
	l.TenantRef = ""
	if r.TenantRef != "" {
		l.TenantRef, _ = database.ParseID(r.TenantRef)
	}
}

// ActiveListingRequest creates an active listing and its earning record
type ActiveListingRequest struct {
	ListingRequest
	Amount *float64 `json:"amount"`
}

// Validate checks the listing and the earning amount
func (r *ActiveListingRequest) Validate() error {
	if err := r.ListingRequest.Validate(); err != nil {
		return err
	}
	if r.Amount != nil && *r.Amount < 0 {
		return i18n.ErrInvalidPayload.WithParam("reason", "amount must not be negative")
	}
	return nil
}

// EarningAmount is the requested amount, zero when omitted
func (r *ActiveListingRequest) EarningAmount() float64 {
	if r.Amount == nil {
		return 0
	}
	return *r.Amount
}
