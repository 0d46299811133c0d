package metrics

import (
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Version is the application version, injected at build time via -ldflags.
var Version = "dev"

// Init records static app-info/start-time series.
func Init() {
	AppInfo.WithLabelValues(Version, runtime.Version()).Set(1)
	AppStartTime.Set(float64(time.Now().Unix()))
}

// Handler returns the Prometheus scrape handler as a plain
// net/http.Handler; promhttp's own interface is already venue-agnostic,
// so no framework adapter is needed here.
func Handler() http.Handler {
	return promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
