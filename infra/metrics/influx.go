package metrics

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/influxdata/influxdb-client-go/v2/domain"

	coremetrics "github.com/kilianp07/evprice/core/metrics"
	"github.com/kilianp07/evprice/infra/logger"
)

const (
	influxTimeout = 5 * time.Second
	influxFlushMS = 1000
)

// InfluxConfig locates the InfluxDB bucket.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// InfluxSink writes estimate events to an InfluxDB instance using the
// official client. Points are buffered and sent in batches by the client's
// background writer, so recording never waits on the network; write errors
// are logged.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPI
	log      logger.Logger
}

// NewInfluxSink creates a sink for the given endpoint. A trailing
// /api/v2/write is tolerated.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().
			SetHTTPClient(&http.Client{Timeout: influxTimeout}).
			SetFlushInterval(influxFlushMS))
	s := &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPI(cfg.Org, cfg.Bucket),
		log:      logger.New("influx-sink"),
	}
	// the channel is closed when the client closes the write API
	errs := s.writeAPI.Errors()
	go func() {
		for err := range errs {
			s.log.Errorf("influx write: %v", err)
		}
	}()
	return s
}

// NewInfluxSinkWithFallback returns a NopSink when the instance does not
// pass its health check, so a missing InfluxDB never blocks estimates.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	if err := sink.healthy(); err != nil {
		sink.log.Errorf("influx unavailable, estimates will not be recorded: %v", err)
		sink.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

func (s *InfluxSink) healthy() error {
	ctx, cancel := context.WithTimeout(context.Background(), influxTimeout)
	defer cancel()
	h, err := s.client.Health(ctx)
	if err != nil {
		return err
	}
	if h.Status != domain.HealthCheckStatusPass {
		return fmt.Errorf("health status %s", h.Status)
	}
	return nil
}

// write queues p for the next batch.
func (s *InfluxSink) write(p *write.Point) error {
	s.writeAPI.WritePoint(p.AddTag("component", "pricing"))
	return nil
}

// RecordEstimate writes one price_estimate point.
func (s *InfluxSink) RecordEstimate(ev coremetrics.EstimateEvent) error {
	p := write.NewPointWithMeasurement("price_estimate").
		AddTag("outcome", string(ev.Outcome)).
		AddField("price", round3(ev.Price)).
		AddField("raw_output", round3(ev.RawOutput)).
		AddField("unknown_categories", ev.UnknownCategories).
		AddField("latency_ms", round3(ev.Latency.Seconds()*1000)).
		SetTime(ev.Time)
	if ev.Make != "" {
		p.AddTag("make", ev.Make)
	}
	return s.write(p)
}

// RecordUnknownCategory writes one unknown_category point.
func (s *InfluxSink) RecordUnknownCategory(ev coremetrics.UnknownCategoryEvent) error {
	return s.write(write.NewPointWithMeasurement("unknown_category").
		AddTag("column", ev.Column).
		AddField("value", ev.Value).
		SetTime(ev.Time))
}

// Flush sends the buffered points now.
func (s *InfluxSink) Flush() { s.writeAPI.Flush() }

// Close flushes pending points and releases the client.
func (s *InfluxSink) Close() { s.client.Close() }

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
