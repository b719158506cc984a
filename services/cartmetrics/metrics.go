package cartmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	eventsTotal     *prometheus.CounterVec
	cartsCreated    prometheus.Counter
	quantityChanges *prometheus.CounterVec
	cartSubtotal    *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		eventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cart_events_total",
				Help: "Total number of cart events received by type",
			},
			[]string{"event"},
		),
		cartsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "carts_created_total",
				Help: "Total number of carts created",
			},
		),
		quantityChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cart_item_quantity_total",
				Help: "Total number of items added to or removed from carts",
			},
			[]string{"direction"},
		),
		cartSubtotal: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cart_subtotal_amount",
				Help:    "Subtotal of a cart right after it changed",
				Buckets: []float64{0, 10, 25, 50, 100, 250, 500, 1000},
			},
			[]string{"currency"},
		),
	}
}
