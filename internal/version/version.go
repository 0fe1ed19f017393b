package version

// Version contains the application version information.
// Set via build-time ldflags in production:
// go build -ldflags "-X git.home.luguber.info/inful/docsite/internal/version.Version=v1.2.0".
var Version = "unknown"

// Additional build metadata, also set via ldflags.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)
