package config

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// Environment selects how configuration is sourced and validated.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment reads ENV, with CI=true taking precedence.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}
	return ParseEnvironment(os.Getenv("ENV"))
}

// ParseEnvironment maps an ENV value onto an Environment. Unknown or empty
// values mean Development.
func ParseEnvironment(raw string) Environment {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return Production
	case "test":
		return Test
	case "ci":
		return CI
	default:
		return Development
	}
}

// ReadsSecretFiles reports whether credentials may come from mounted Docker
// secrets. CI supplies everything through the environment.
func (e Environment) ReadsSecretFiles() bool {
	return e != CI
}

// AllowsSQLite reports whether the embedded database may back the recipe store.
func (e Environment) AllowsSQLite() bool {
	return e != Production
}

// GinMode is the gin mode the API server runs in.
func (e Environment) GinMode() string {
	switch e {
	case Production:
		return gin.ReleaseMode
	case Test, CI:
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
