package cnst

// Gin context keys
const (
	CtxKeyClaims = "claims"
)
