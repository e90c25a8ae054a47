package cnst

// Tracer names used across the services
const (
	TraceAPIServer = "rentboard/apiserver"
)

// Span names
const (
	SpanCreateActiveListing = "listing.create_active"
	SpanListingSearch       = "listing.search"
)

// Attribute keys
const (
	AttrUserID    = "user.id"
	AttrListingID = "listing.id"
)
