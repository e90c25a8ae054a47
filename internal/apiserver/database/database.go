package database

import (
	"context"

	"github.com/amoylab/rentboard/internal/common/cnst"
)

// Database defines the methods for database operations.
// Lookups of a single record return ErrNotFound when it does not exist.
type Database interface {
	// Close closes the database connection.
	Close() error

	// Transaction runs fn with a context bound to a store transaction where the
	// backend supports one. Nested calls join the outer transaction.
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error

	// CreateListing assigns an ID and timestamps and stores the listing.
	CreateListing(ctx context.Context, listing *Listing) error

	// GetListing gets a listing by ID.
	GetListing(ctx context.Context, id ID) (*Listing, error)

	// GetListingsByIDs gets the listings that exist among ids.
	GetListingsByIDs(ctx context.Context, ids []ID) ([]*Listing, error)

	// UpdateListing replaces every mutable field of the stored listing.
	UpdateListing(ctx context.Context, listing *Listing) error

	// DeleteListing deletes a listing by ID.
	DeleteListing(ctx context.Context, id ID) error

	// SearchListings runs a public listing search.
	SearchListings(ctx context.Context, q ListingQuery) ([]*Listing, error)

	// ListListingsByOwner gets the owner's listings, newest first. An empty
	// status matches every status.
	ListListingsByOwner(ctx context.Context, owner ID, status cnst.ListingStatus) ([]*Listing, error)

	// ListListingsByTenant gets the listings currently rented by tenant.
	ListListingsByTenant(ctx context.Context, tenant ID) ([]*Listing, error)

	// CreatePendingRequest stores a tenant's request.
	CreatePendingRequest(ctx context.Context, req *PendingRequest) error

	// ListPendingRequestsByLandlord gets requests addressed to landlord with the given status.
	ListPendingRequestsByLandlord(ctx context.Context, landlord ID, status cnst.RequestStatus) ([]*PendingRequest, error)

	// ListPendingRequestsByTenant gets requests made by tenant with the given status.
	ListPendingRequestsByTenant(ctx context.Context, tenant ID, status cnst.RequestStatus) ([]*PendingRequest, error)

	// CreateEarning stores an earning record.
	CreateEarning(ctx context.Context, earning *Earning) error

	// ListEarningsByLandlord gets a landlord's earnings, newest first.
	ListEarningsByLandlord(ctx context.Context, landlord ID) ([]*Earning, error)

	// GetTenantPreference gets the preference record of tenant.
	GetTenantPreference(ctx context.Context, tenant ID) (*TenantPreference, error)

	// UpsertTenantPreference creates or replaces the tenant's preference record
	// and loads the stored state back into pref.
	UpsertTenantPreference(ctx context.Context, pref *TenantPreference) error

	// CreateRental stores a rental.
	CreateRental(ctx context.Context, rental *Rental) error

	// ListRentalsByParty gets rentals where user is the tenant or the landlord.
	ListRentalsByParty(ctx context.Context, user ID) ([]*Rental, error)

	// CreateUser stores a user. ErrDuplicate is returned for a taken username or email.
	CreateUser(ctx context.Context, user *User) error

	// GetUserByID gets a user by ID.
	GetUserByID(ctx context.Context, id ID) (*User, error)

	// GetUserByUsername gets a user by username.
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// GetUserByEmail gets a user by email.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// GetUsersByIDs gets the users that exist among ids.
	GetUsersByIDs(ctx context.Context, ids []ID) ([]*User, error)
}
