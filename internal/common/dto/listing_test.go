package dto

import (
	"testing"

	"github.com/amoylab/rentboard/internal/apiserver/database"
	"github.com/amoylab/rentboard/internal/common/cnst"
	"github.com/amoylab/rentboard/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToQueryDefaults(t *testing.T) {
	q, err := ListingSearchParams{}.ToQuery()
	require.NoError(t, err)
	assert.Equal(t, 9, q.Limit)
	assert.Equal(t, 0, q.Offset)
	assert.Nil(t, q.Offer)
	assert.Nil(t, q.Furnished)
	assert.Nil(t, q.Parking)
	assert.Equal(t, []cnst.ListingType{cnst.ListingTypeSale, cnst.ListingTypeRent}, q.Types)
	assert.Equal(t, database.SortCreatedAt, q.Sort)
	assert.False(t, q.Ascending)
}

func TestToQueryPaging(t *testing.T) {
	cases := []struct {
		limit, start       string
		wantLimit, wantOff int
	}{
		{"2", "2", 2, 2},
		{"abc", "xyz", 9, 0},
		{"0", "-4", 9, 0},
		{"-1", "3", 9, 3},
	}
	for _, tc := range cases {
		q, err := ListingSearchParams{Limit: tc.limit, StartIndex: tc.start}.ToQuery()
		require.NoError(t, err)
		assert.Equal(t, tc.wantLimit, q.Limit, tc.limit)
		assert.Equal(t, tc.wantOff, q.Offset, tc.start)
	}
}

func TestToQueryTriState(t *testing.T) {
	for _, v := range []string{"", "false", "FALSE"} {
		q, err := ListingSearchParams{Offer: v}.ToQuery()
		require.NoError(t, err)
		assert.Nil(t, q.Offer, v)
	}
	for _, v := range []string{"true", "1", "yes"} {
		q, err := ListingSearchParams{Furnished: v}.ToQuery()
		require.NoError(t, err)
		require.NotNil(t, q.Furnished, v)
		assert.True(t, *q.Furnished)
	}
	for _, v := range []string{"0", "no"} {
		q, err := ListingSearchParams{Parking: v}.ToQuery()
		require.NoError(t, err)
		require.NotNil(t, q.Parking, v)
		assert.False(t, *q.Parking)
	}

	_, err := ListingSearchParams{Parking: "maybe"}.ToQuery()
	assert.ErrorIs(t, err, i18n.ErrInvalidFilter)
}

func TestToQueryTypeAndSort(t *testing.T) {
	q, err := ListingSearchParams{Type: "all", Sort: "regularPrice", Order: "asc"}.ToQuery()
	require.NoError(t, err)
	assert.Len(t, q.Types, 2)
	assert.Equal(t, database.SortRegularPrice, q.Sort)
	assert.True(t, q.Ascending)

	q, err = ListingSearchParams{Type: "rent", Sort: "password", Order: "sideways"}.ToQuery()
	require.NoError(t, err)
	assert.Equal(t, []cnst.ListingType{cnst.ListingTypeRent}, q.Types)
	assert.Equal(t, database.SortCreatedAt, q.Sort)
	assert.False(t, q.Ascending)

	for _, order := range []string{"asc", "ascending", "1", "ASC"} {
		q, err = ListingSearchParams{Order: order}.ToQuery()
		require.NoError(t, err)
		assert.True(t, q.Ascending, order)
	}
	for _, order := range []string{"", "desc", "descending", "-1"} {
		q, err = ListingSearchParams{Order: order}.ToQuery()
		require.NoError(t, err)
		assert.False(t, q.Ascending, order)
	}

	q, err = ListingSearchParams{Type: "lease"}.ToQuery()
	require.NoError(t, err)
	assert.Equal(t, []cnst.ListingType{"lease"}, q.Types)
}

func validListing() ListingRequest {
	return ListingRequest{
		Name:         "Sunny Flat",
		Description:  "Bright",
		Address:      "1 Main St",
		Type:         "rent",
		RegularPrice: 1000,
		ImageURLs:    []string{"/uploads/1-a.png"},
	}
}

func TestListingRequestValidate(t *testing.T) {
	r := validListing()
	assert.NoError(t, r.Validate())

	missing := ListingRequest{}
	err := missing.Validate()
	assert.ErrorIs(t, err, i18n.ErrMissingFields)
	assert.Contains(t, err.Error(), "name, description, address, type, regularPrice, imageUrls")

	r = validListing()
	r.Offer, r.DiscountPrice = true, 1000
	assert.ErrorIs(t, r.Validate(), i18n.ErrDiscountNotLower)
	r.DiscountPrice = 999
	assert.NoError(t, r.Validate())

	r = validListing()
	r.Type = "lease"
	assert.ErrorIs(t, r.Validate(), i18n.ErrInvalidPayload)

	r = validListing()
	r.TenantRef = "nope"
	assert.ErrorIs(t, r.Validate(), i18n.ErrInvalidID)

	a := ActiveListingRequest{ListingRequest: validListing()}
	assert.NoError(t, a.Validate())
	assert.Equal(t, 0.0, a.EarningAmount())
	neg := -1.0
	a.Amount = &neg
	assert.ErrorIs(t, a.Validate(), i18n.ErrInvalidPayload)
}

func TestListingRequestApplyTo(t *testing.T) {
	owner := database.NewID()
	l := &database.Listing{ID: database.NewID(), UserRef: owner, Status: cnst.ListingStatusPending}
	r := validListing()
	r.ApplyTo(l)

	assert.Equal(t, owner, l.UserRef)
	assert.Equal(t, cnst.ListingStatusPending, l.Status, "status kept when omitted")
	assert.Equal(t, cnst.ListingTypeRent, l.Type)
	assert.Equal(t, []string{"/uploads/1-a.png"}, l.ImageURLs)

	fresh := &database.Listing{}
	r.ApplyTo(fresh)
	assert.Equal(t, cnst.ListingStatusActive, fresh.Status)
}
