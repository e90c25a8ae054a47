package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amoylab/rentboard/internal/common/cnst"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// likeEscape is the LIKE escape character; backslash is not portable across dialects
const likeEscape = "!"

// gormStore implements Database for every relational backend
type gormStore struct {
	db *gorm.DB
}

func openGorm(dialector gorm.Dialector) (*gormStore, error) {
	gormDB, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := gormDB.AutoMigrate(allModels()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &gormStore{db: gormDB}, nil
}

func translateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return ErrDuplicate
	}
	return err
}

// isUniqueViolation catches drivers that do not translate constraint errors
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "Duplicate entry")
}

// Close closes the database connection
func (s *gormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *gormStore) CreateListing(ctx context.Context, listing *Listing) error {
	ensureID(&listing.ID)
	if listing.Status == "" {
		listing.Status = cnst.ListingStatusActive
	}
	now := time.Now().UTC()
	listing.CreatedAt, listing.UpdatedAt = now, now
	return translateErr(dbFromContext(ctx, s.db).Create(listing).Error)
}

func (s *gormStore) GetListing(ctx context.Context, id ID) (*Listing, error) {
	var listing Listing
	if err := dbFromContext(ctx, s.db).Where("id = ?", id).First(&listing).Error; err != nil {
		return nil, translateErr(err)
	}
	return &listing, nil
}

func (s *gormStore) GetListingsByIDs(ctx context.Context, ids []ID) ([]*Listing, error) {
	listings := []*Listing{}
	if len(ids) == 0 {
		return listings, nil
	}
	err := dbFromContext(ctx, s.db).Where("id IN ?", ids).Find(&listings).Error
	return listings, translateErr(err)
}

func (s *gormStore) UpdateListing(ctx context.Context, listing *Listing) error {
	listing.UpdatedAt = time.Now().UTC()
	res := dbFromContext(ctx, s.db).
		Model(&Listing{}).
		Where("id = ?", listing.ID).
		Select("*").
		Omit("id", "user_ref", "created_at").
		Updates(listing)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) DeleteListing(ctx context.Context, id ID) error {
	res := dbFromContext(ctx, s.db).Where("id = ?", id).Delete(&Listing{})
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// escapeLike quotes the LIKE wildcards of term so it matches literally
func escapeLike(term string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return r.Replace(term)
}

func (s *gormStore) SearchListings(ctx context.Context, q ListingQuery) ([]*Listing, error) {
	tx := dbFromContext(ctx, s.db).Model(&Listing{})

	if q.Offer != nil {
		tx = tx.Where("offer = ?", *q.Offer)
	}
	if q.Furnished != nil {
		tx = tx.Where("furnished = ?", *q.Furnished)
	}
	if q.Parking != nil {
		tx = tx.Where("parking = ?", *q.Parking)
	}
	if len(q.Types) > 0 {
		tx = tx.Where("type IN ?", q.Types)
	}
	if q.SearchTerm != "" {
		pattern := "%" + escapeLike(strings.ToLower(q.SearchTerm)) + "%"
		tx = tx.Where("LOWER(name) LIKE ? ESCAPE '"+likeEscape+"'", pattern)
	}

	tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: q.Sort.column()}, Desc: !q.Ascending}).
		Order("id")
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}

	listings := []*Listing{}
	err := tx.Find(&listings).Error
	return listings, translateErr(err)
}

func (s *gormStore) ListListingsByOwner(ctx context.Context, owner ID, status cnst.ListingStatus) ([]*Listing, error) {
	tx := dbFromContext(ctx, s.db).Where("user_ref = ?", owner)
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	listings := []*Listing{}
	err := tx.Order("created_at desc").Find(&listings).Error
	return listings, translateErr(err)
}

func (s *gormStore) ListListingsByTenant(ctx context.Context, tenant ID) ([]*Listing, error) {
	listings := []*Listing{}
	err := dbFromContext(ctx, s.db).
		Where("tenant_ref = ?", tenant).
		Order("created_at desc").
		Find(&listings).Error
	return listings, translateErr(err)
}

func (s *gormStore) CreatePendingRequest(ctx context.Context, req *PendingRequest) error {
	ensureID(&req.ID)
	if req.Status == "" {
		req.Status = cnst.RequestStatusPending
	}
	req.CreatedAt = time.Now().UTC()
	return translateErr(dbFromContext(ctx, s.db).Create(req).Error)
}

func (s *gormStore) ListPendingRequestsByLandlord(ctx context.Context, landlord ID, status cnst.RequestStatus) ([]*PendingRequest, error) {
	return s.listPendingRequests(ctx, "landlord_id", landlord, status)
}

func (s *gormStore) ListPendingRequestsByTenant(ctx context.Context, tenant ID, status cnst.RequestStatus) ([]*PendingRequest, error) {
	return s.listPendingRequests(ctx, "tenant_id", tenant, status)
}

func (s *gormStore) listPendingRequests(ctx context.Context, column string, id ID, status cnst.RequestStatus) ([]*PendingRequest, error) {
	reqs := []*PendingRequest{}
	err := dbFromContext(ctx, s.db).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: id}).
		Where("status = ?", status).
		Order("created_at desc").
		Find(&reqs).Error
	return reqs, translateErr(err)
}

func (s *gormStore) CreateEarning(ctx context.Context, earning *Earning) error {
	ensureID(&earning.ID)
	now := time.Now().UTC()
	earning.CreatedAt, earning.UpdatedAt = now, now
	return translateErr(dbFromContext(ctx, s.db).Create(earning).Error)
}

func (s *gormStore) ListEarningsByLandlord(ctx context.Context, landlord ID) ([]*Earning, error) {
	earnings := []*Earning{}
	err := dbFromContext(ctx, s.db).
		Where("landlord_id = ?", landlord).
		Order("created_at desc").
		Find(&earnings).Error
	return earnings, translateErr(err)
}

func (s *gormStore) GetTenantPreference(ctx context.Context, tenant ID) (*TenantPreference, error) {
	var pref TenantPreference
	if err := dbFromContext(ctx, s.db).Where("tenant_id = ?", tenant).First(&pref).Error; err != nil {
		return nil, translateErr(err)
	}
	return &pref, nil
}

func (s *gormStore) UpsertTenantPreference(ctx context.Context, pref *TenantPreference) error {
	ensureID(&pref.ID)
	now := time.Now().UTC()
	pref.CreatedAt, pref.UpdatedAt = now, now

	db := dbFromContext(ctx, s.db)
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tenant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"property_type", "preferred_locations", "budget_min", "budget_max", "updated_at",
		}),
	}).Create(pref).Error
	if err != nil {
		return translateErr(err)
	}

	stored, err := s.GetTenantPreference(ctx, pref.TenantID)
	if err != nil {
		return err
	}
	*pref = *stored
	return nil
}

func (s *gormStore) CreateRental(ctx context.Context, rental *Rental) error {
	ensureID(&rental.ID)
	if rental.PaymentStatus == "" {
		rental.PaymentStatus = cnst.PaymentStatusPending
	}
	return translateErr(dbFromContext(ctx, s.db).Create(rental).Error)
}

func (s *gormStore) ListRentalsByParty(ctx context.Context, user ID) ([]*Rental, error) {
	rentals := []*Rental{}
	err := dbFromContext(ctx, s.db).
		Where("tenant_id = ? OR landlord_id = ?", user, user).
		Order("start_date desc").
		Find(&rentals).Error
	return rentals, translateErr(err)
}

func (s *gormStore) CreateUser(ctx context.Context, user *User) error {
	ensureID(&user.ID)
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	return translateErr(dbFromContext(ctx, s.db).Create(user).Error)
}

func (s *gormStore) GetUserByID(ctx context.Context, id ID) (*User, error) {
	return s.getUser(ctx, "id", id)
}

func (s *gormStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return s.getUser(ctx, "username", username)
}

func (s *gormStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.getUser(ctx, "email", email)
}

func (s *gormStore) getUser(ctx context.Context, column string, value interface{}) (*User, error) {
	var user User
	err := dbFromContext(ctx, s.db).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		First(&user).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (s *gormStore) GetUsersByIDs(ctx context.Context, ids []ID) ([]*User, error) {
	users := []*User{}
	if len(ids) == 0 {
		return users, nil
	}
	err := dbFromContext(ctx, s.db).Where("id IN ?", ids).Find(&users).Error
	return users, translateErr(err)
}
