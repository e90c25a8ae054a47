package cnst

const (
	AppName     = "rentboard"
	CommandName = "apiserver"
)
