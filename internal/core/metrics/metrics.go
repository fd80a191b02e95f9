// Package metrics provides Prometheus metrics for shipment progress tracking.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Update modes used as the "mode" label.
const (
	ModeSingle = "single"
	ModeBulk   = "bulk"
)

var (
	// ShipmentsCreatedTotal counts shipments created, by transport mode.
	ShipmentsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cargo_shipments_created_total",
		Help: "Total number of shipments created, by transport mode.",
	}, []string{"transport"})

	// StatusUpdatesTotal counts accepted status update requests, by mode.
	StatusUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cargo_status_updates_total",
		Help: "Total number of accepted status update requests, by mode (single/bulk).",
	}, []string{"mode"})

	// ShipmentsModifiedTotal counts shipments whose stage list was rewritten.
	ShipmentsModifiedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cargo_shipments_modified_total",
		Help: "Total number of shipments whose stage list was rewritten by a status update.",
	})

	// RejectedRequestsTotal counts requests rejected by validation, by reason.
	// Reasons are a fixed set; never put ids or tracking numbers in labels.
	RejectedRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cargo_rejected_requests_total",
		Help: "Total number of requests rejected by validation, by reason.",
	}, []string{"reason"})
)
