// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CompletionsRecorded counts successful completion writes by path
// ("complete_today" or "mark_day").
var CompletionsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "habits",
	Name:      "completions_recorded_total",
	Help:      "Completion records written, by path.",
}, []string{"path"})

// DuplicateCompletions counts completeToday calls rejected for an already completed day.
var DuplicateCompletions = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "habits",
	Name:      "duplicate_completions_total",
	Help:      "Complete-today requests rejected because the day was already completed.",
})

var HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "habits",
	Name:      "http_request_duration_seconds",
	Help:      "HTTP request latency by route and status.",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "route", "status"})

// Middleware observes request latency labelled by the matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler serves the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
