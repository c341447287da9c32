package input

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricEventsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "conhost",
		Subsystem: "input",
		Name:      "events_written_total",
		Help:      "Input records appended to the queue.",
	})
	metricEventsCoalesced = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "conhost",
		Subsystem: "input",
		Name:      "events_coalesced_total",
		Help:      "Input records merged into an already-resident record.",
	})
	metricEventsRead = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "conhost",
		Subsystem: "input",
		Name:      "events_read_total",
		Help:      "Input records delivered to consuming reads.",
	})
	metricQueueGrowths = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "conhost",
		Subsystem: "input",
		Name:      "queue_growths_total",
		Help:      "Times the backing ring was replaced with a larger one.",
	})
	metricShortWrites = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "conhost",
		Subsystem: "input",
		Name:      "short_writes_total",
		Help:      "Writes that stored fewer records than submitted.",
	})
	metricBlockedReaders = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "conhost",
		Subsystem: "input",
		Name:      "blocked_readers",
		Help:      "Readers currently suspended on an empty queue.",
	})
)
