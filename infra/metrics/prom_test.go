package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/evprice/core/metrics"
)

func TestPromSinkRecordsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordEstimate(coremetrics.EstimateEvent{Outcome: coremetrics.OutcomeOK, Price: 45200, Latency: time.Millisecond}))
	require.NoError(t, sink.RecordEstimate(coremetrics.EstimateEvent{Outcome: coremetrics.OutcomeOK, Price: 18000}))
	require.NoError(t, sink.RecordEstimate(coremetrics.EstimateEvent{Outcome: coremetrics.OutcomeInvalid}))

	assert.Equal(t, 2.0, testutil.ToFloat64(sink.estimates.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.estimates.WithLabelValues("invalid_input")))

	expected := `
# HELP price_estimate_dollars Distribution of returned price estimates
# TYPE price_estimate_dollars histogram
price_estimate_dollars_bucket{le="0"} 0
price_estimate_dollars_bucket{le="10000"} 0
price_estimate_dollars_bucket{le="20000"} 1
price_estimate_dollars_bucket{le="30000"} 1
price_estimate_dollars_bucket{le="40000"} 1
price_estimate_dollars_bucket{le="50000"} 2
price_estimate_dollars_bucket{le="60000"} 2
price_estimate_dollars_bucket{le="70000"} 2
price_estimate_dollars_bucket{le="80000"} 2
price_estimate_dollars_bucket{le="90000"} 2
price_estimate_dollars_bucket{le="100000"} 2
price_estimate_dollars_bucket{le="110000"} 2
price_estimate_dollars_bucket{le="+Inf"} 2
price_estimate_dollars_sum 63200
price_estimate_dollars_count 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "price_estimate_dollars"))
}

func TestPromSinkUnknownAndDegenerate(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordUnknownCategory(coremetrics.UnknownCategoryEvent{Column: "Make", Value: "X"}))
	require.NoError(t, sink.RecordUnknownCategory(coremetrics.UnknownCategoryEvent{Column: "Make", Value: "Y"}))
	assert.Equal(t, 2.0, testutil.ToFloat64(sink.unknown.WithLabelValues("Make")))

	require.NoError(t, sink.RecordDegenerateScaling([]string{"Model_Year", "City_freq"}))
	require.NoError(t, sink.RecordDegenerateScaling([]string{"City_freq"}))
	assert.Equal(t, 2.0, testutil.ToFloat64(sink.degenerate))
}

func TestPromSinkReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	second, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, second.RecordEstimate(coremetrics.EstimateEvent{Outcome: coremetrics.OutcomeDemo, Price: 35750}))
	assert.Equal(t, 1.0, testutil.ToFloat64(first.estimates.WithLabelValues("demo")))
}
