package app

import (
	"fmt"
	"log/slog"
	"runtime/debug"
)

// Version, Commit, and BuildTime are set via ldflags, e.g.
//
//	go build -ldflags "-X github.com/heartmarshall/tenantdesk-backend/internal/app.Version=1.2.0" ./cmd/server
//
// When they are left unset, Commit and BuildTime fall back to the VCS stamp
// the go tool embeds in the binary.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion returns the version string reported by /health and the
// startup log.
func BuildVersion() string {
	info, _ := debug.ReadBuildInfo()
	commit, built := buildStamp(Commit, BuildTime, info)
	return fmt.Sprintf("tenantdesk %s (commit: %s, built: %s)", Version, commit, built)
}

// versionAttrs groups the build details for structured logs.
func versionAttrs() slog.Attr {
	info, _ := debug.ReadBuildInfo()
	commit, built := buildStamp(Commit, BuildTime, info)
	return slog.Group("build",
		slog.String("version", Version),
		slog.String("commit", commit),
		slog.String("built", built),
	)
}

func buildStamp(commit, built string, info *debug.BuildInfo) (string, string) {
	if info == nil {
		return commit, built
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if commit == "unknown" && s.Value != "" {
				commit = s.Value
				if len(commit) > 12 {
					commit = commit[:12]
				}
			}
		case "vcs.time":
			if built == "unknown" && s.Value != "" {
				built = s.Value
			}
		}
	}
	return commit, built
}
