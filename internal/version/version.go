package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/DeltaThetaBeta/Helldivers2ModManagerEX/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/DeltaThetaBeta/Helldivers2ModManagerEX/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/DeltaThetaBeta/Helldivers2ModManagerEX/internal/version.Date={{.Date}}
)

// String returns the multi-line version banner printed by `hd2mm version`.
func String() string {
	return fmt.Sprintf("hd2mm version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
