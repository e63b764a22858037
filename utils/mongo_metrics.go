package utils

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.mongodb.org/mongo-driver/event"
)

var (
	mongoOpenConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mongo_pool_open_connections",
		Help: "Connections currently open in the MongoDB pool",
	})

	mongoInUseConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mongo_pool_in_use_connections",
		Help: "Connections currently checked out of the MongoDB pool",
	})

	mongoPoolEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mongo_pool_events_total",
			Help: "MongoDB connection pool events by type",
		},
		[]string{"type"},
	)

	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Duration of database operations",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "collection"},
	)
)

type MongoMetrics struct {
	OpenConnections    int64     `json:"open_connections"`
	InUseConnections   int64     `json:"in_use_connections"`
	CreatedConnections int64     `json:"created_connections"`
	ClosedConnections  int64     `json:"closed_connections"`
	LastEventTime      time.Time `json:"last_event_time,omitempty"`
}

type poolCounters struct {
	open, inUse, created, closed atomic.Int64
	lastEvent                    atomic.Int64
}

var metrics poolCounters

// NewPoolMonitor returns a driver pool monitor that keeps the counters behind
// GetMongoMetrics and the mongo_pool_* collectors up to date.
func NewPoolMonitor() *event.PoolMonitor {
	return &event.PoolMonitor{Event: RecordPoolEvent}
}

func RecordPoolEvent(evt *event.PoolEvent) {
	if evt == nil {
		return
	}
	metrics.lastEvent.Store(time.Now().UnixNano())
	mongoPoolEvents.WithLabelValues(evt.Type).Inc()

	switch evt.Type {
	case event.ConnectionCreated:
		metrics.created.Add(1)
		metrics.open.Add(1)
		mongoOpenConnections.Inc()
	case event.ConnectionClosed:
		metrics.closed.Add(1)
		metrics.open.Add(-1)
		mongoOpenConnections.Dec()
	case event.GetSucceeded:
		metrics.inUse.Add(1)
		mongoInUseConnections.Inc()
	case event.ConnectionReturned:
		metrics.inUse.Add(-1)
		mongoInUseConnections.Dec()
	}
}

func GetMongoMetrics() MongoMetrics {
	m := MongoMetrics{
		OpenConnections:    metrics.open.Load(),
		InUseConnections:   metrics.inUse.Load(),
		CreatedConnections: metrics.created.Load(),
		ClosedConnections:  metrics.closed.Load(),
	}
	if ns := metrics.lastEvent.Load(); ns > 0 {
		m.LastEventTime = time.Unix(0, ns).UTC()
	}
	return m
}

// TrackDBOperation starts a timer for one database call; call ObserveDuration when it returns.
func TrackDBOperation(operation, collection string) *prometheus.Timer {
	return prometheus.NewTimer(DBOperationDuration.WithLabelValues(operation, collection))
}
