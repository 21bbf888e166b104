package app

import "fmt"

// Build metadata, overridden with -ldflags, for example:
//
//	go build -ldflags "-X github.com/heartmarshall/moviedeck-backend/internal/app.Version=1.2.0" ./cmd/server
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion formats the build metadata for startup logs.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
