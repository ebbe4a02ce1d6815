package metrics

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "foodgram_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "foodgram_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Domain
	RecipeWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_recipe_writes_total",
			Help: "Recipe create/update/delete operations",
		},
		[]string{"operation"},
	)

	RelationTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_relation_toggles_total",
			Help: "Favorite, shopping cart and subscription toggles by outcome",
		},
		[]string{"relation", "action", "outcome"},
	)

	ShoppingListDownloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_shopping_list_downloads_total",
			Help: "Shopping list downloads by format",
		},
		[]string{"format"},
	)

	ImageCleanupTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_image_cleanup_total",
			Help: "Stored recipe images removed, by trigger",
		},
		[]string{"trigger"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordToggle records a favorite/cart/subscription add or remove
func RecordToggle(relation, action string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	RelationTogglesTotal.WithLabelValues(relation, action, outcome).Inc()
}

// RegisterPoolCollector exports pgxpool statistics as gauges.
// The registerer is usually prometheus.DefaultRegisterer.
func RegisterPoolCollector(reg prometheus.Registerer, pool *pgxpool.Pool) error {
	gauges := map[string]func(*pgxpool.Stat) float64{
		"foodgram_db_pool_acquired_conns": func(s *pgxpool.Stat) float64 { return float64(s.AcquiredConns()) },
		"foodgram_db_pool_idle_conns":     func(s *pgxpool.Stat) float64 { return float64(s.IdleConns()) },
		"foodgram_db_pool_total_conns":    func(s *pgxpool.Stat) float64 { return float64(s.TotalConns()) },
		"foodgram_db_pool_max_conns":      func(s *pgxpool.Stat) float64 { return float64(s.MaxConns()) },
	}

	for name, read := range gauges {
		read := read
		collector := prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{Name: name, Help: "pgx connection pool statistic"},
			func() float64 { return read(pool.Stat()) },
		)
		if err := reg.Register(collector); err != nil {
			return err
		}
	}
	return nil
}
