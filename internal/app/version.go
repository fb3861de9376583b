package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Version, Commit, and BuildTime are set via ldflags at build time.
// Example: go build -ldflags "-X github.com/heartmarshall/termtag/internal/app.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion returns a formatted version string for startup logs.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}

// newBuildInfo exports the build as termtag_build_info{version,commit,build_time} 1.
func newBuildInfo() prometheus.Collector {
	g := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "termtag_build_info",
		Help: "Build information of the running binary.",
	}, []string{"version", "commit", "build_time"})
	g.WithLabelValues(Version, Commit, BuildTime).Set(1)
	return g
}
