// /internal/version/version.go
package version

import "runtime"

var (
	AppName        = "Parley"
	AppDescription = "Discord bot with a free-form argument parsing engine for chat commands"

	// BuildDate is stamped via -ldflags at release time.
	BuildDate = "unknown"
)

func GoVersion() string {
	return runtime.Version()
}
