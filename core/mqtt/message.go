// Package mqtt defines the messages exchanged with the estimate responder.
package mqtt

import "github.com/kilianp07/evprice/core/model"

// Estimator prices one vehicle. It is satisfied by *pricing.Estimator.
type Estimator interface {
	Estimate(in model.VehicleInput) (model.Estimate, error)
}

// EstimateRequest is the payload published on the request topic.
type EstimateRequest struct {
	// RequestID selects the response topic. A random id is assigned when
	// empty.
	RequestID string `json:"request_id,omitempty"`
	model.VehicleInput
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// EstimateResponse is published on <response_prefix>/<request_id>. Exactly
// one of Estimate and Error is set.
type EstimateResponse struct {
	RequestID string          `json:"request_id"`
	Estimate  *model.Estimate `json:"estimate,omitempty"`
	Error     *ErrorBody      `json:"error,omitempty"`
	Timestamp int64           `json:"timestamp"`
}
