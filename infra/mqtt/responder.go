package mqtt

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	coremon "github.com/kilianp07/evprice/core/monitoring"
	coremqtt "github.com/kilianp07/evprice/core/mqtt"
	"github.com/kilianp07/evprice/core/pricing"
	"github.com/kilianp07/evprice/infra/logger"
)

// validRequestID bounds the ids that may become a response topic level.
var validRequestID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// Responder answers estimate requests received over MQTT.
type Responder struct {
	cli            pahoClient
	est            coremqtt.Estimator
	cfg            Config
	backoff        time.Duration
	responsePrefix string
	logger         logger.Logger
	now            func() time.Time
}

// NewResponder connects to the broker and subscribes to the request topic.
// The subscription is renewed on every reconnect.
func NewResponder(cfg Config, est coremqtt.Estimator) (*Responder, error) {
	if est == nil {
		return nil, fmt.Errorf("estimator is required")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}

	log := logger.New("mqtt_responder")
	r := &Responder{
		est:            est,
		cfg:            cfg,
		backoff:        time.Duration(cfg.BackoffMS) * time.Millisecond,
		responsePrefix: strings.TrimSuffix(cfg.ResponsePrefix, "/"),
		logger:         log,
		now:            time.Now,
	}

	opts.OnConnect = func(c paho.Client) {
		log.Infof("MQTT connected, listening on %s", cfg.RequestTopic)
		if token := c.Subscribe(cfg.RequestTopic, cfg.qos("request"), r.onRequest); token.Wait() && token.Error() != nil {
			log.Errorf("subscribe error: %v", token.Error())
		}
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	r.cli = c
	return r, nil
}

func (r *Responder) onRequest(_ paho.Client, msg paho.Message) {
	defer coremon.Recover()

	var req coremqtt.EstimateRequest
	resp := coremqtt.EstimateResponse{}
	if err := json.Unmarshal(msg.Payload(), &req); err != nil {
		resp.Error = &coremqtt.ErrorBody{Code: pricing.CodeInvalidInput, Message: fmt.Sprintf("decode request: %v", err)}
	}
	switch {
	case req.RequestID == "":
		req.RequestID = uuid.NewString()
	case !validRequestID.MatchString(req.RequestID):
		if resp.Error == nil {
			resp.Error = &coremqtt.ErrorBody{
				Code:    pricing.CodeInvalidInput,
				Message: fmt.Sprintf("request_id %q must match %s", req.RequestID, validRequestID),
			}
		}
		// the id would be an invalid or foreign topic level
		req.RequestID = uuid.NewString()
	}
	resp.RequestID = req.RequestID

	if resp.Error == nil {
		est, err := r.est.Estimate(req.VehicleInput)
		if err != nil {
			resp.Error = &coremqtt.ErrorBody{Code: pricing.ErrorCode(err), Message: err.Error()}
		} else {
			resp.Estimate = &est
		}
	}
	if resp.Error != nil {
		r.logger.Warnf("request %s failed: %s", req.RequestID, resp.Error.Message)
	}
	if err := r.publish(resp); err != nil {
		r.logger.Errorf("respond to %s: %v", req.RequestID, err)
		coremon.CaptureException(err, map[string]string{"module": "mqtt", "request_id": req.RequestID})
	}
}

// ResponseTopic returns the topic an answer to requestID is published on.
func (r *Responder) ResponseTopic(requestID string) string {
	return r.responsePrefix + "/" + requestID
}

func (r *Responder) publish(resp coremqtt.EstimateResponse) error {
	resp.Timestamp = r.now().UnixMilli()
	payload, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	topic := r.ResponseTopic(resp.RequestID)
	qos := r.cfg.qos("response")

	var publishErr error
	for attempt := 0; attempt <= r.cfg.MaxRetries; attempt++ {
		token := r.cli.Publish(topic, qos, false, payload)
		token.Wait()
		publishErr = token.Error()
		if publishErr == nil {
			r.logger.Debugf("sent response to %s", topic)
			return nil
		}
		r.logger.Errorf("publish attempt %d failed: %v", attempt+1, publishErr)
		if attempt < r.cfg.MaxRetries {
			time.Sleep(r.backoff * time.Duration(1<<attempt))
		}
	}
	return fmt.Errorf("%w: %s: %w", coremqtt.ErrPublish, topic, publishErr)
}

// Close disconnects from the broker.
func (r *Responder) Close() {
	if r.cli != nil && r.cli.IsConnected() {
		r.cli.Disconnect(250)
	}
}
