// Package metrics exposes Prometheus collectors for the HTTP surface and the
// two request flows.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels shared by the flow counters
const (
	OutcomeSuccess       = "success"
	OutcomeInvalid       = "invalid"
	OutcomeUpstreamError = "upstream_error"
)

// Collector owns a private registry so tests can build as many as they like.
type Collector struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	foodSearchesTotal      *prometheus.CounterVec
	recipeGenerationsTotal *prometheus.CounterVec
	generationDuration     prometheus.Histogram
	ingredientsLoaded      prometheus.Gauge
}

// NewCollector creates and registers every collector
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		foodSearchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "food_searches_total",
				Help: "Food lookups by outcome",
			},
			[]string{"outcome"},
		),
		recipeGenerationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recipe_generations_total",
				Help: "Recipe generation calls by outcome",
			},
			[]string{"outcome"},
		),
		generationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "recipe_generation_duration_seconds",
				Help:    "Latency of calls to the generation service",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
			},
		),
		ingredientsLoaded: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ingredients_loaded",
				Help: "Ingredients imported into the store at startup",
			},
		),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.httpRequestsTotal,
		c.httpRequestDuration,
		c.foodSearchesTotal,
		c.recipeGenerationsTotal,
		c.generationDuration,
		c.ingredientsLoaded,
	)
	return c
}

// Handler serves the registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency keyed by the route template
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}
		c.httpRequestsTotal.WithLabelValues(ctx.Request.Method, path, strconv.Itoa(ctx.Writer.Status())).Inc()
		c.httpRequestDuration.WithLabelValues(ctx.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// FoodSearch counts one food lookup
func (c *Collector) FoodSearch(outcome string) {
	c.foodSearchesTotal.WithLabelValues(outcome).Inc()
}

// RecipeGeneration counts one generation call
func (c *Collector) RecipeGeneration(outcome string) {
	c.recipeGenerationsTotal.WithLabelValues(outcome).Inc()
}

// ObserveGeneration records how long the generation service took
func (c *Collector) ObserveGeneration(d time.Duration) {
	c.generationDuration.Observe(d.Seconds())
}

// IngredientsLoaded sets the number of ingredients imported at startup
func (c *Collector) IngredientsLoaded(n int) {
	c.ingredientsLoaded.Set(float64(n))
}

// FoodSearches exposes the food lookup counter
func (c *Collector) FoodSearches() *prometheus.CounterVec {
	return c.foodSearchesTotal
}

// RecipeGenerations exposes the recipe generation counter
func (c *Collector) RecipeGenerations() *prometheus.CounterVec {
	return c.recipeGenerationsTotal
}
