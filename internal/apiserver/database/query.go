package database

import "github.com/amoylab/rentboard/internal/common/cnst"

// SortField is a listing attribute search results may be ordered by
type SortField string

const (
	SortCreatedAt     SortField = "createdAt"
	SortUpdatedAt     SortField = "updatedAt"
	SortRegularPrice  SortField = "regularPrice"
	SortDiscountPrice SortField = "discountPrice"
	SortName          SortField = "name"
	SortBedrooms      SortField = "bedrooms"
	SortBathrooms     SortField = "bathrooms"
)

var sortColumns = map[SortField]string{
	SortCreatedAt:     "created_at",
	SortUpdatedAt:     "updated_at",
	SortRegularPrice:  "regular_price",
	SortDiscountPrice: "discount_price",
	SortName:          "name",
	SortBedrooms:      "bedrooms",
	SortBathrooms:     "bathrooms",
}

// ParseSortField maps a client supplied name onto a sortable field,
// falling back to createdAt for anything unknown
func ParseSortField(s string) SortField {
	if _, ok := sortColumns[SortField(s)]; ok {
		return SortField(s)
	}
	return SortCreatedAt
}

func (f SortField) column() string {
	if col, ok := sortColumns[f]; ok {
		return col
	}
	return sortColumns[SortCreatedAt]
}

// ListingQuery is a fully coerced listing search
type ListingQuery struct {
	// Nil means no filter on the attribute
	Offer     *bool
	Furnished *bool
	Parking   *bool
	// Empty means any type
	Types []cnst.ListingType
	// Case-insensitive literal substring of the name
	SearchTerm string
	Sort       SortField
	Ascending  bool
	Limit      int
	Offset     int
}
