package dto

import (
	"testing"

	"github.com/amoylab/rentboard/internal/apiserver/database"
	"github.com/amoylab/rentboard/internal/common/cnst"
	"github.com/amoylab/rentboard/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingRequestBody(t *testing.T) {
	tenant := database.NewID()
	b := PendingRequestBody{ListingID: database.NewID().String(), LandlordID: database.NewID().String(), Message: " hi "}
	req, err := b.ToModel(tenant)
	require.NoError(t, err)
	assert.Equal(t, tenant, req.TenantID)
	assert.Equal(t, cnst.RequestStatusPending, req.Status)
	assert.Equal(t, "hi", req.Message)

	b.ListingID = "123"
	_, err = b.ToModel(tenant)
	assert.ErrorIs(t, err, i18n.ErrInvalidID)
	assert.Contains(t, err.Error(), "listingId")

	b.ListingID, b.LandlordID = database.NewID().String(), ""
	_, err = b.ToModel(tenant)
	assert.Contains(t, err.Error(), "landlordId")
}

func TestPreferenceBodyDefaults(t *testing.T) {
	tenant := database.NewID()
	pref, err := (&PreferenceBody{}).ToModel(tenant)
	require.NoError(t, err)
	assert.Equal(t, cnst.PropertyTypeAny, pref.PropertyType)
	assert.Equal(t, []string{}, pref.PreferredLocations)
	assert.Equal(t, database.Budget{Min: 0, Max: 999999}, pref.Budget)
}

func TestPreferenceBodyValidation(t *testing.T) {
	tenant := database.NewID()

	_, err := (&PreferenceBody{PropertyType: "castle"}).ToModel(tenant)
	assert.ErrorIs(t, err, i18n.ErrInvalidPropertyType)

	lo, hi := 900.0, 100.0
	_, err = (&PreferenceBody{Budget: &BudgetBody{Min: &lo, Max: &hi}}).ToModel(tenant)
	assert.ErrorIs(t, err, i18n.ErrInvalidBudget)

	pref, err := (&PreferenceBody{PropertyType: "villa", PreferredLocations: []string{" Oslo ", ""}, Budget: &BudgetBody{Max: &lo}}).ToModel(tenant)
	require.NoError(t, err)
	assert.Equal(t, []string{"Oslo"}, pref.PreferredLocations)
	assert.Equal(t, database.Budget{Min: 0, Max: 900}, pref.Budget)
}
