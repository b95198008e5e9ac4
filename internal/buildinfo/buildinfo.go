// Package buildinfo holds version information injected at link time:
//
//	go build -ldflags "-X github.com/grafana/docnav/internal/buildinfo.Version=v1.2.3"
package buildinfo

//nolint:gochecknoglobals // Set through -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
