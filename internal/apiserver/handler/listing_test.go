package handler

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/amoylab/rentboard/internal/apiserver/database"
	"github.com/amoylab/rentboard/internal/common/cnst"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingCreateGetDelete(t *testing.T) {
	e := newTestEnv(t)
	landlord, lTok := e.user("lena", cnst.RoleLandlord)
	_, mTok := e.user("mats", cnst.RoleLandlord)

	w := e.do(http.MethodPost, "/api/listing/create", listingBody("Sunny Flat"), lTok)
	requireStatus(t, w, http.StatusCreated)
	created := decode[envelope](t, w)
	id := created["_id"].(string)
	assert.Equal(t, landlord.ID.String(), created["userRef"])
	assert.Equal(t, "active", created["status"])

	w = e.do(http.MethodGet, "/api/listing/get/"+id, nil, "")
	requireStatus(t, w, http.StatusOK)
	got := decode[envelope](t, w)
	assert.Equal(t, "Sunny Flat", got["name"])
	assert.Equal(t, landlord.ID.String(), got["userRef"])

	w = e.do(http.MethodDelete, "/api/listing/delete/"+id, nil, mTok)
	requireStatus(t, w, http.StatusForbidden)
	assert.Equal(t, "You can only modify your own listings", decode[envelope](t, w)["message"])

	w = e.do(http.MethodGet, "/api/listing/get/"+id, nil, "")
	requireStatus(t, w, http.StatusOK)

	w = e.do(http.MethodDelete, "/api/listing/delete/"+id, nil, lTok)
	requireStatus(t, w, http.StatusOK)
	body := decode[envelope](t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Listing has been deleted", body["message"])

	w = e.do(http.MethodGet, "/api/listing/get/"+id, nil, "")
	requireStatus(t, w, http.StatusNotFound)
	body = decode[envelope](t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Listing not found", body["message"])
}

func TestGetListingBadID(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(http.MethodGet, "/api/listing/get/not-an-id", nil, "")
	requireStatus(t, w, http.StatusBadRequest)

	w = e.do(http.MethodGet, "/api/listing/get/"+database.NewID().String(), nil, "")
	requireStatus(t, w, http.StatusNotFound)
}

func TestCreateListingValidation(t *testing.T) {
	e := newTestEnv(t)
	_, tok := e.user("lena", cnst.RoleLandlord)

	w := e.do(http.MethodPost, "/api/listing/create", listingBody("Sunny Flat"), "")
	requireStatus(t, w, http.StatusUnauthorized)

	w = e.do(http.MethodPost, "/api/listing/create", map[string]any{"name": "Only a name"}, tok)
	requireStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "Missing required fields: description, address, type, regularPrice, imageUrls",
		decode[envelope](t, w)["message"])

	body := listingBody("Deal")
	body["offer"] = true
	body["discountPrice"] = 1200
	w = e.do(http.MethodPost, "/api/listing/create", body, tok)
	requireStatus(t, w, http.StatusBadRequest)

	body["discountPrice"] = 900
	w = e.do(http.MethodPost, "/api/listing/create", body, tok)
	requireStatus(t, w, http.StatusCreated)
}

func TestUpdateListing(t *testing.T) {
	e := newTestEnv(t)
	owner, oTok := e.user("lena", cnst.RoleLandlord)
	_, xTok := e.user("mats", cnst.RoleLandlord)

	w := e.do(http.MethodPost, "/api/listing/create", listingBody("Sunny Flat"), oTok)
	requireStatus(t, w, http.StatusCreated)
	id := decode[envelope](t, w)["_id"].(string)

	update := listingBody("Sunnier Flat")
	update["userRef"] = database.NewID().String()
	update["regularPrice"] = 1500

	w = e.do(http.MethodPost, "/api/listing/update/"+id, update, xTok)
	requireStatus(t, w, http.StatusForbidden)

	w = e.do(http.MethodPost, "/api/listing/update/"+id, update, oTok)
	requireStatus(t, w, http.StatusOK)
	got := decode[envelope](t, w)
	assert.Equal(t, "Sunnier Flat", got["name"])
	assert.Equal(t, 1500.0, got["regularPrice"])
	assert.Equal(t, owner.ID.String(), got["userRef"])

	stored, err := e.db.GetListing(context.Background(), database.ID(id))
	require.NoError(t, err)
	assert.Equal(t, "Sunnier Flat", stored.Name)
	assert.Equal(t, owner.ID, stored.UserRef)

	w = e.do(http.MethodPost, "/api/listing/update/bogus", update, oTok)
	requireStatus(t, w, http.StatusBadRequest)

	w = e.do(http.MethodPost, "/api/listing/update/"+database.NewID().String(), update, oTok)
	requireStatus(t, w, http.StatusNotFound)

	update["offer"] = true
	update["discountPrice"] = 1500
	w = e.do(http.MethodPost, "/api/listing/update/"+id, update, oTok)
	requireStatus(t, w, http.StatusBadRequest)
}

func seedSearchListings(t *testing.T, db database.Database) {
	t.Helper()
	seeds := []struct {
		name      string
		typ       cnst.ListingType
		offer     bool
		furnished bool
	}{
		{"Alpha Cottage", cnst.ListingTypeRent, false, true},
		{"Bravo Sunny Loft", cnst.ListingTypeSale, true, false},
		{"Charlie Flat", cnst.ListingTypeRent, false, false},
		{"Delta SUNNY House", cnst.ListingTypeRent, true, true},
		{"Echo Studio", cnst.ListingTypeSale, false, false},
	}
	for _, s := range seeds {
		l := &database.Listing{
			Name:          s.name,
			Description:   "desc",
			Address:       "addr",
			Type:          s.typ,
			RegularPrice:  1000,
			DiscountPrice: 900,
			Offer:         s.offer,
			Furnished:     s.furnished,
			ImageURLs:     []string{"/uploads/x.png"},
			UserRef:       database.NewID(),
		}
		require.NoError(t, db.CreateListing(context.Background(), l))
	}
}

func names(listings []envelope) []string {
	out := make([]string, 0, len(listings))
	for _, l := range listings {
		out = append(out, l["name"].(string))
	}
	return out
}

func TestSearchListings(t *testing.T) {
	e := newTestEnv(t)
	seedSearchListings(t, e.db)

	search := func(query string) []envelope {
		t.Helper()
		w := e.do(http.MethodGet, "/api/listing/get?"+query, nil, "")
		requireStatus(t, w, http.StatusOK)
		return decode[[]envelope](t, w)
	}

	assert.Len(t, search(""), 5)
	assert.Len(t, search("type=all"), 5)
	assert.Equal(t, []string{"Alpha Cottage", "Charlie Flat", "Delta SUNNY House"},
		names(search("type=rent&sort=name&order=asc")))
	assert.Empty(t, search("type=lease"))

	assert.Equal(t, []string{"Bravo Sunny Loft", "Delta SUNNY House"},
		names(search("searchTerm=sUnNy&sort=name&order=asc")))
	assert.Empty(t, search("searchTerm=%25"))

	assert.Equal(t, []string{"Charlie Flat", "Delta SUNNY House"},
		names(search("sort=name&order=asc&limit=2&startIndex=2")))
	assert.Equal(t, []string{"Echo Studio", "Delta SUNNY House"},
		names(search("sort=name&limit=2")))

	assert.Len(t, search("offer=true"), 2)
	assert.Len(t, search("offer=false"), 5)
	assert.Len(t, search("offer=no"), 3)
	assert.Equal(t, []string{"Alpha Cottage", "Delta SUNNY House"},
		names(search("furnished=yes&sort=name&order=asc")))

	w := e.do(http.MethodGet, "/api/listing/get?parking=maybe", nil, "")
	requireStatus(t, w, http.StatusBadRequest)
}

type failingSearchDB struct {
	database.Database
}

func (failingSearchDB) SearchListings(context.Context, database.ListingQuery) ([]*database.Listing, error) {
	return nil, errors.New("connection reset")
}

func TestSearchListingsStoreFailure(t *testing.T) {
	e := newTestEnvWithDB(t, failingSearchDB{Database: newSQLite(t)})

	w := e.do(http.MethodGet, "/api/listing/get", nil, "")
	requireStatus(t, w, http.StatusInternalServerError)
	body := decode[envelope](t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Internal server error", body["message"])
}

type recordingCache struct {
	entries     map[database.ID]*database.Listing
	invalidated []database.ID
}

func (c *recordingCache) Get(_ context.Context, id database.ID) (*database.Listing, bool) {
	l, ok := c.entries[id]
	return l, ok
}

func (c *recordingCache) Set(_ context.Context, l *database.Listing) {
	c.entries[l.ID] = l
}

func (c *recordingCache) Invalidate(_ context.Context, id database.ID) {
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
}

func (c *recordingCache) Close() error { return nil }

func TestListingCacheReadThrough(t *testing.T) {
	c := &recordingCache{entries: map[database.ID]*database.Listing{}}
	e := newTestEnv(t, WithCache(c))
	_, tok := e.user("lena", cnst.RoleLandlord)

	w := e.do(http.MethodPost, "/api/listing/create", listingBody("Sunny Flat"), tok)
	requireStatus(t, w, http.StatusCreated)
	id := database.ID(decode[envelope](t, w)["_id"].(string))

	requireStatus(t, e.do(http.MethodGet, "/api/listing/get/"+id.String(), nil, ""), http.StatusOK)
	require.Contains(t, c.entries, id)

	// a cached entry is served without touching the store
	c.entries[id].Name = "From Cache"
	w = e.do(http.MethodGet, "/api/listing/get/"+id.String(), nil, "")
	assert.Equal(t, "From Cache", decode[envelope](t, w)["name"])

	requireStatus(t, e.do(http.MethodPost, "/api/listing/update/"+id.String(), listingBody("Renamed"), tok), http.StatusOK)
	assert.NotContains(t, c.entries, id)

	requireStatus(t, e.do(http.MethodDelete, "/api/listing/delete/"+id.String(), nil, tok), http.StatusOK)
	assert.Equal(t, []database.ID{id, id}, c.invalidated)
}

func TestConcurrentUpdatesLastWriteWins(t *testing.T) {
	e := newTestEnv(t)
	owner, tok := e.user("lena", cnst.RoleLandlord)

	w := e.do(http.MethodPost, "/api/listing/create", listingBody("Sunny Flat"), tok)
	requireStatus(t, w, http.StatusCreated)
	id := decode[envelope](t, w)["_id"].(string)

	first := listingBody("North Flat")
	first["description"] = "north side"
	first["regularPrice"] = 1100
	first["bedrooms"] = 3
	second := listingBody("South Flat")
	second["description"] = "south side"
	second["regularPrice"] = 2200
	second["bedrooms"] = 4

	var wg sync.WaitGroup
	codes := make([]int, 2)
	for i, body := range []map[string]any{first, second} {
		wg.Add(1)
		go func(i int, body map[string]any) {
			defer wg.Done()
			codes[i] = e.do(http.MethodPost, "/api/listing/update/"+id, body, tok).Code
		}(i, body)
	}
	wg.Wait()
	assert.Equal(t, []int{http.StatusOK, http.StatusOK}, codes)

	stored, err := e.db.GetListing(context.Background(), database.ID(id))
	require.NoError(t, err)
	assert.Equal(t, owner.ID, stored.UserRef)

	// one payload wins whole, fields are never mixed
	switch stored.Name {
	case "North Flat":
		assert.Equal(t, "north side", stored.Description)
		assert.Equal(t, 1100.0, stored.RegularPrice)
		assert.Equal(t, 3, stored.Bedrooms)
	case "South Flat":
		assert.Equal(t, "south side", stored.Description)
		assert.Equal(t, 2200.0, stored.RegularPrice)
		assert.Equal(t, 4, stored.Bedrooms)
	default:
		t.Fatalf("unexpected name after concurrent updates: %q", stored.Name)
	}
}
