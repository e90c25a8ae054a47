package cnst

const (
	LangEN      = "en"
	LangZH      = "zh"
	LangDefault = LangEN
)

const (
	// XLang is both the request header and the gin context key carrying the
	// negotiated language
	XLang = "X-Lang"
)
