package buildinfo

// Set with -ldflags at build time, for example:
//
//	-X 'github.com/m3rciful/txbot/core/buildinfo.Version=v0.3.0'
//	-X 'github.com/m3rciful/txbot/core/buildinfo.Commit=1f2e3d4'
//	-X 'github.com/m3rciful/txbot/core/buildinfo.Date=2026-10-01T09:00:00Z'
var (
	// Version is the release tag of the binary.
	Version = "dev"
	// Commit is the git revision the binary was built from.
	Commit = "local"
	// Date is the RFC3339 build time.
	Date = ""
)

// String renders the build metadata for /start and startup logs.
func String() string {
	s := Version + " (" + Commit
	if Date != "" {
		s += ", " + Date
	}
	return s + ")"
}
