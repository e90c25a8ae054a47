package i18n

// Message IDs returned on success
const (
	SuccessListingDeleted        = "SuccessListingDeleted"
	SuccessPendingRequestCreated = "SuccessPendingRequestCreated"
	SuccessUserCreated           = "SuccessUserCreated"
)

// Authentication and authorization
var (
	ErrUnauthorized       = NewErrorWithCodeMessage("ErrorUnauthorized", "Unauthorized", ErrorUnauthorized)
	ErrInvalidToken       = NewErrorWithCodeMessage("ErrorInvalidToken", "Invalid token", ErrorForbidden)
	ErrRoleRequired       = NewErrorWithCodeMessage("ErrorRoleRequired", "Access restricted to {{.roles}}", ErrorForbidden)
	ErrListingNotOwned    = NewErrorWithCodeMessage("ErrorListingNotOwned", "You can only modify your own listings", ErrorForbidden)
	ErrInvalidCredentials = NewErrorWithCodeMessage("ErrorInvalidCredentials", "Wrong credentials", ErrorUnauthorized)
	ErrUsernameExists     = NewErrorWithCodeMessage("ErrorUsernameExists", "Username already exists", ErrorConflict)
	ErrEmailExists        = NewErrorWithCodeMessage("ErrorEmailExists", "Email already exists", ErrorConflict)
)

// Lookups
var (
	ErrListingNotFound = NewErrorWithCodeMessage("ErrorListingNotFound", "Listing not found", ErrorNotFound)
	ErrUserNotFound    = NewErrorWithCodeMessage("ErrorUserNotFound", "User not found", ErrorNotFound)
)

// Request validation
var (
	ErrInvalidID           = NewErrorWithCodeMessage("ErrorInvalidID", "Invalid identifier: {{.field}}", ErrorBadRequest)
	ErrInvalidPayload      = NewErrorWithCodeMessage("ErrorInvalidPayload", "Invalid request payload: {{.reason}}", ErrorBadRequest)
	ErrMissingFields       = NewErrorWithCodeMessage("ErrorMissingFields", "Missing required fields: {{.fields}}", ErrorBadRequest)
	ErrDiscountNotLower    = NewErrorWithCodeMessage("ErrorDiscountNotLower", "Discount price must be lower than regular price", ErrorBadRequest)
	ErrInvalidFilter       = NewErrorWithCodeMessage("ErrorInvalidFilter", "Invalid value for filter {{.name}}", ErrorBadRequest)
	ErrInvalidPropertyType = NewErrorWithCodeMessage("ErrorInvalidPropertyType", "Invalid property type: {{.value}}", ErrorBadRequest)
	ErrInvalidBudget       = NewErrorWithCodeMessage("ErrorInvalidBudget", "Minimum budget must not exceed maximum budget", ErrorBadRequest)
	ErrInvalidRole         = NewErrorWithCodeMessage("ErrorInvalidRole", "Role must be landlord or tenant", ErrorBadRequest)
)

// Uploads
var (
	ErrNoFilesUploaded = NewErrorWithCodeMessage("ErrorNoFilesUploaded", "No files uploaded", ErrorBadRequest)
	ErrTooManyFiles    = NewErrorWithCodeMessage("ErrorTooManyFiles", "At most {{.max}} images can be uploaded", ErrorBadRequest)
	ErrFileTooLarge    = NewErrorWithCodeMessage("ErrorFileTooLarge", "Image {{.name}} exceeds the {{.max}} byte limit", ErrorBadRequest)
	ErrUploadFailed    = NewErrorWithCodeMessage("ErrorUploadFailed", "Image upload failed", ErrorInternalServer)
)

// Server side
var (
	ErrPartialWrite   = NewErrorWithCodeMessage("ErrorPartialWrite", "Listing {{.listingId}} was created but its earning record was not", ErrorMultiStatus)
	ErrInternalServer = NewErrorWithCodeMessage("ErrorInternalServer", "Internal server error", ErrorInternalServer)
)
