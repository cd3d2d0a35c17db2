package version

// Build metadata served by the /api/version endpoint, overridden at release
// time via -ldflags. The defaults identify a local development build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)
