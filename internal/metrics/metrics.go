package metrics

import (
	"bytes"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

var (
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sequence_generations_total",
			Help: "Total number of sequence generations by engine mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	GenerationTokens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sequence_generation_tokens_total",
			Help: "Tokens consumed by sequence generations",
		},
		[]string{"kind"},
	)

	GenerationCost = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sequence_generation_cost_usd_total",
			Help: "Estimated completion cost of sequence generations in USD",
		},
	)
)

// ObserveGeneration records one engine call.
func ObserveGeneration(mode string, success bool, promptTokens, completionTokens int, cost float64) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	GenerationsTotal.WithLabelValues(mode, outcome).Inc()
	if !success {
		return
	}
	GenerationTokens.WithLabelValues("prompt").Add(float64(promptTokens))
	GenerationTokens.WithLabelValues("completion").Add(float64(completionTokens))
	GenerationCost.Add(cost)
}

// Render returns the default registry in the Prometheus text format along
// with its content type.
func Render() (string, string, error) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return "", "", fmt.Errorf("metrics: gather: %w", err)
	}

	format := expfmt.NewFormat(expfmt.TypeTextPlain)
	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, format)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return "", "", fmt.Errorf("metrics: encode %s: %w", mf.GetName(), err)
		}
	}
	return buf.String(), string(format), nil
}
