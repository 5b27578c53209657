package service

import (
	"time"

	"github.com/aussiebroadwan/leadcapture/internal/frontend/metrics"
	"github.com/aussiebroadwan/leadcapture/pkg/leadsdk"
)

// observe runs call and records its outcome and latency under op.
func observe[T any](m *metrics.Collector, op string, call func() leadsdk.Result[T]) leadsdk.Result[T] {
	start := time.Now()
	res := call()
	m.RecordAPICall(op, res.Outcome, time.Since(start))
	return res
}
