package cnst

// Role is the role claim carried by an identity
type Role string

const (
	RoleLandlord Role = "landlord"
	RoleTenant   Role = "tenant"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleLandlord || r == RoleTenant
}

// ListingType distinguishes properties for sale from rentals
type ListingType string

const (
	ListingTypeSale ListingType = "sale"
	ListingTypeRent ListingType = "rent"
)

// ListingStatus is the publication state of a listing
type ListingStatus string

const (
	ListingStatusActive  ListingStatus = "active"
	ListingStatusPending ListingStatus = "pending"
)

// RequestStatus is the state of a tenant's pending request
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// PropertyType is a tenant's preferred kind of property
type PropertyType string

const (
	PropertyTypeApartment PropertyType = "apartment"
	PropertyTypeHouse     PropertyType = "house"
	PropertyTypeStudio    PropertyType = "studio"
	PropertyTypeVilla     PropertyType = "villa"
	PropertyTypeAny       PropertyType = "any"
)

// Valid reports whether p is a known property type
func (p PropertyType) Valid() bool {
	switch p {
	case PropertyTypeApartment, PropertyTypeHouse, PropertyTypeStudio, PropertyTypeVilla, PropertyTypeAny:
		return true
	}
	return false
}

// PaymentStatus is the payment state of a rental
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

// Tenant preference budget bounds applied when a field is omitted
const (
	DefaultBudgetMin = 0
	DefaultBudgetMax = 999999
)
