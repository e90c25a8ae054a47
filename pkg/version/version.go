package version

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var Version string

// Get returns the version embedded at build time, without trailing whitespace
func Get() string {
	return strings.TrimSpace(Version)
}
