// Package slo derives tool-call service level indicators from the
// collected Prometheus counters and publishes them as gauges.
package slo

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Targets for MCP tool calls.
const (
	// AvailabilitySLO is the share of tool calls that must not fail with a
	// protocol-level error (99.5%).
	AvailabilitySLO = 0.995

	// ErrorRateSLO is the maximum acceptable protocol-level error ratio.
	ErrorRateSLO = 0.005
)

// ToolCallsMetric is the counter the indicators are computed from.
const ToolCallsMetric = "mcp_tool_calls_total"

const errorOutcome = "error"

var (
	// ToolAvailability is (calls - errors) / calls. 1 when no call was made yet.
	ToolAvailability = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_tool_availability_ratio",
			Help: "Current MCP tool availability ratio (0-1), target: 0.995",
		},
	)

	// ToolErrorRate is errors / calls.
	ToolErrorRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_tool_error_rate_ratio",
			Help: "Current MCP tool error rate ratio (0-1), target: 0.005",
		},
	)
)

// Snapshot is one evaluation of the tool-call counters.
type Snapshot struct {
	Calls        float64
	Errors       float64
	Availability float64
	ErrorRate    float64
}

// Meets reports whether both targets hold.
func (s Snapshot) Meets() bool {
	return s.Availability >= AvailabilitySLO && s.ErrorRate <= ErrorRateSLO
}

// Evaluate gathers from g and sums the tool call counter across all tools.
// Calls that ended in a tool error result count as available: the server
// answered, the arguments were wrong.
func Evaluate(g prometheus.Gatherer) (Snapshot, error) {
	families, err := g.Gather()
	if err != nil {
		return Snapshot{}, fmt.Errorf("gather metrics: %w", err)
	}

	var snap Snapshot
	for _, mf := range families {
		if mf.GetName() != ToolCallsMetric {
			continue
		}
		for _, m := range mf.GetMetric() {
			v := m.GetCounter().GetValue()
			snap.Calls += v
			if labelValue(m, "outcome") == errorOutcome {
				snap.Errors += v
			}
		}
	}

	snap.Availability = 1
	if snap.Calls > 0 {
		snap.Availability = (snap.Calls - snap.Errors) / snap.Calls
		snap.ErrorRate = snap.Errors / snap.Calls
	}
	return snap, nil
}

// Refresh evaluates g and updates the SLO gauges.
func Refresh(g prometheus.Gatherer) (Snapshot, error) {
	snap, err := Evaluate(g)
	if err != nil {
		return snap, err
	}
	ToolAvailability.Set(snap.Availability)
	ToolErrorRate.Set(snap.ErrorRate)
	return snap, nil
}

// RefreshOnScrape wraps a metrics handler so the gauges are recomputed
// right before each scrape.
func RefreshOnScrape(next http.Handler, g prometheus.Gatherer, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snap, err := Refresh(g)
		switch {
		case err != nil:
			logger.Warn("slo refresh failed", slog.Any("error", err))
		case !snap.Meets():
			logger.Debug("tool slo breached",
				slog.Float64("availability", snap.Availability),
				slog.Float64("error_rate", snap.ErrorRate))
		}
		next.ServeHTTP(w, r)
	})
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
