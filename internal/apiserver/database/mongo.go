package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/amoylab/rentboard/internal/common/cnst"
	"github.com/amoylab/rentboard/internal/common/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collListings    = "listings"
	collPending     = "pendingrequests"
	collEarnings    = "earnings"
	collPreferences = "tenantpreferences"
	collRentals     = "rentals"
	collUsers       = "users"

	mongoConnectTimeout = 10 * time.Second
)

// Mongo implements the Database interface using MongoDB.
// Standalone deployments have no multi-document transactions, so Transaction
// runs fn directly and callers rely on compensating writes.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
	cfg    *config.DatabaseConfig
}

// NewMongo connects to MongoDB and ensures the unique indexes exist
func NewMongo(cfg *config.DatabaseConfig) (Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.GetDSN()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	m := &Mongo{client: client, db: client.Database(cfg.DBName), cfg: cfg}
	if err := m.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return m, nil
}

func (m *Mongo) ensureIndexes(ctx context.Context) error {
	unique := func(keys ...string) mongo.IndexModel {
		d := bson.D{}
		for _, k := range keys {
			d = append(d, bson.E{Key: k, Value: 1})
		}
		return mongo.IndexModel{Keys: d, Options: options.Index().SetUnique(true)}
	}
	plain := func(key string) mongo.IndexModel {
		return mongo.IndexModel{Keys: bson.D{{Key: key, Value: 1}}}
	}

	indexes := map[string][]mongo.IndexModel{
		collUsers:       {unique("username"), unique("email")},
		collPreferences: {unique("tenantId")},
		collListings:    {plain("userRef"), plain("tenantRef")},
		collEarnings:    {plain("landlordId")},
		collPending:     {plain("landlordId"), plain("tenantId")},
	}
	for coll, models := range indexes {
		if _, err := m.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

func translateMongoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	}
	return err
}

// Close disconnects the client
func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoConnectTimeout)
	defer cancel()
	return m.client.Disconnect(ctx)
}

func (m *Mongo) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *Mongo) insert(ctx context.Context, coll string, doc interface{}) error {
	_, err := m.db.Collection(coll).InsertOne(ctx, doc)
	return translateMongoErr(err)
}

func findOne[T any](ctx context.Context, c *mongo.Collection, filter bson.M) (*T, error) {
	var v T
	if err := c.FindOne(ctx, filter).Decode(&v); err != nil {
		return nil, translateMongoErr(err)
	}
	return &v, nil
}

func findAll[T any](ctx context.Context, c *mongo.Collection, filter bson.M, opts ...*options.FindOptions) ([]*T, error) {
	cur, err := c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, translateMongoErr(err)
	}
	out := []*T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, translateMongoErr(err)
	}
	return out, nil
}

func newestFirst(field string) *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: field, Value: -1}, {Key: "_id", Value: 1}})
}

func (m *Mongo) CreateListing(ctx context.Context, listing *Listing) error {
	ensureID(&listing.ID)
	if listing.Status == "" {
		listing.Status = cnst.ListingStatusActive
	}
	now := time.Now().UTC()
	listing.CreatedAt, listing.UpdatedAt = now, now
	return m.insert(ctx, collListings, listing)
}

func (m *Mongo) GetListing(ctx context.Context, id ID) (*Listing, error) {
	return findOne[Listing](ctx, m.db.Collection(collListings), bson.M{"_id": id})
}

func (m *Mongo) GetListingsByIDs(ctx context.Context, ids []ID) ([]*Listing, error) {
	if len(ids) == 0 {
		return []*Listing{}, nil
	}
	return findAll[Listing](ctx, m.db.Collection(collListings), bson.M{"_id": bson.M{"$in": ids}})
}

func (m *Mongo) UpdateListing(ctx context.Context, listing *Listing) error {
	listing.UpdatedAt = time.Now().UTC()
	set := bson.M{
		"name":          listing.Name,
		"description":   listing.Description,
		"address":       listing.Address,
		"type":          listing.Type,
		"status":        listing.Status,
		"regularPrice":  listing.RegularPrice,
		"discountPrice": listing.DiscountPrice,
		"offer":         listing.Offer,
		"bedrooms":      listing.Bedrooms,
		"bathrooms":     listing.Bathrooms,
		"parking":       listing.Parking,
		"furnished":     listing.Furnished,
		"imageUrls":     listing.ImageURLs,
		"updatedAt":     listing.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if listing.TenantRef.IsZero() {
		update["$unset"] = bson.M{"tenantRef": ""}
	} else {
		set["tenantRef"] = listing.TenantRef
	}

	res, err := m.db.Collection(collListings).UpdateByID(ctx, listing.ID, update)
	if err != nil {
		return translateMongoErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) DeleteListing(ctx context.Context, id ID) error {
	res, err := m.db.Collection(collListings).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translateMongoErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// listingFilter translates a search into a document filter
func listingFilter(q ListingQuery) bson.M {
	filter := bson.M{}
	if q.Offer != nil {
		filter["offer"] = *q.Offer
	}
	if q.Furnished != nil {
		filter["furnished"] = *q.Furnished
	}
	if q.Parking != nil {
		filter["parking"] = *q.Parking
	}
	if len(q.Types) > 0 {
		filter["type"] = bson.M{"$in": q.Types}
	}
	if q.SearchTerm != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.SearchTerm), Options: "i"}
	}
	return filter
}

// listingFindOptions translates ordering and paging of a search
func listingFindOptions(q ListingQuery) *options.FindOptions {
	dir := -1
	if q.Ascending {
		dir = 1
	}
	sort := q.Sort
	if _, ok := sortColumns[sort]; !ok {
		sort = SortCreatedAt
	}
	opts := options.Find().SetSort(bson.D{{Key: string(sort), Value: dir}, {Key: "_id", Value: 1}})
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	if q.Offset > 0 {
		opts.SetSkip(int64(q.Offset))
	}
	return opts
}

func (m *Mongo) SearchListings(ctx context.Context, q ListingQuery) ([]*Listing, error) {
	return findAll[Listing](ctx, m.db.Collection(collListings), listingFilter(q), listingFindOptions(q))
}

func (m *Mongo) ListListingsByOwner(ctx context.Context, owner ID, status cnst.ListingStatus) ([]*Listing, error) {
	filter := bson.M{"userRef": owner}
	if status != "" {
		filter["status"] = status
	}
	return findAll[Listing](ctx, m.db.Collection(collListings), filter, newestFirst("createdAt"))
}

func (m *Mongo) ListListingsByTenant(ctx context.Context, tenant ID) ([]*Listing, error) {
	return findAll[Listing](ctx, m.db.Collection(collListings), bson.M{"tenantRef": tenant}, newestFirst("createdAt"))
}

func (m *Mongo) CreatePendingRequest(ctx context.Context, req *PendingRequest) error {
	ensureID(&req.ID)
	if req.Status == "" {
		req.Status = cnst.RequestStatusPending
	}
	req.CreatedAt = time.Now().UTC()
	return m.insert(ctx, collPending, req)
}

func (m *Mongo) ListPendingRequestsByLandlord(ctx context.Context, landlord ID, status cnst.RequestStatus) ([]*PendingRequest, error) {
	return findAll[PendingRequest](ctx, m.db.Collection(collPending),
		bson.M{"landlordId": landlord, "status": status}, newestFirst("createdAt"))
}

func (m *Mongo) ListPendingRequestsByTenant(ctx context.Context, tenant ID, status cnst.RequestStatus) ([]*PendingRequest, error) {
	return findAll[PendingRequest](ctx, m.db.Collection(collPending),
		bson.M{"tenantId": tenant, "status": status}, newestFirst("createdAt"))
}

func (m *Mongo) CreateEarning(ctx context.Context, earning *Earning) error {
	ensureID(&earning.ID)
	now := time.Now().UTC()
	earning.CreatedAt, earning.UpdatedAt = now, now
	return m.insert(ctx, collEarnings, earning)
}

func (m *Mongo) ListEarningsByLandlord(ctx context.Context, landlord ID) ([]*Earning, error) {
	return findAll[Earning](ctx, m.db.Collection(collEarnings), bson.M{"landlordId": landlord}, newestFirst("createdAt"))
}

func (m *Mongo) GetTenantPreference(ctx context.Context, tenant ID) (*TenantPreference, error) {
	return findOne[TenantPreference](ctx, m.db.Collection(collPreferences), bson.M{"tenantId": tenant})
}

func (m *Mongo) UpsertTenantPreference(ctx context.Context, pref *TenantPreference) error {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"propertyType":       pref.PropertyType,
			"preferredLocations": pref.PreferredLocations,
			"budget":             pref.Budget,
			"updatedAt":          now,
		},
		"$setOnInsert": bson.M{
			"_id":       NewID(),
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var stored TenantPreference
	err := m.db.Collection(collPreferences).
		FindOneAndUpdate(ctx, bson.M{"tenantId": pref.TenantID}, update, opts).
		Decode(&stored)
	if err != nil {
		return translateMongoErr(err)
	}
	*pref = stored
	return nil
}

func (m *Mongo) CreateRental(ctx context.Context, rental *Rental) error {
	ensureID(&rental.ID)
	if rental.PaymentStatus == "" {
		rental.PaymentStatus = cnst.PaymentStatusPending
	}
	return m.insert(ctx, collRentals, rental)
}

func (m *Mongo) ListRentalsByParty(ctx context.Context, user ID) ([]*Rental, error) {
	filter := bson.M{"$or": bson.A{bson.M{"tenantId": user}, bson.M{"landlordId": user}}}
	return findAll[Rental](ctx, m.db.Collection(collRentals), filter, newestFirst("startDate"))
}

func (m *Mongo) CreateUser(ctx context.Context, user *User) error {
	ensureID(&user.ID)
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	return m.insert(ctx, collUsers, user)
}

func (m *Mongo) GetUserByID(ctx context.Context, id ID) (*User, error) {
	return findOne[User](ctx, m.db.Collection(collUsers), bson.M{"_id": id})
}

func (m *Mongo) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return findOne[User](ctx, m.db.Collection(collUsers), bson.M{"username": username})
}

func (m *Mongo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return findOne[User](ctx, m.db.Collection(collUsers), bson.M{"email": email})
}

func (m *Mongo) GetUsersByIDs(ctx context.Context, ids []ID) ([]*User, error) {
	if len(ids) == 0 {
		return []*User{}, nil
	}
	return findAll[User](ctx, m.db.Collection(collUsers), bson.M{"_id": bson.M{"$in": ids}})
}
