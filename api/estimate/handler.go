// Package estimate exposes the pricing pipeline over HTTP.
package estimate

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/kilianp07/evprice/core/logger"
	"github.com/kilianp07/evprice/core/model"
	"github.com/kilianp07/evprice/core/prediction"
	"github.com/kilianp07/evprice/core/pricing"
)

// Service is the part of *pricing.Estimator the handlers need.
type Service interface {
	Estimate(in model.VehicleInput) (model.Estimate, error)
	Options() pricing.Options
	ModelInfo() (prediction.Info, bool)
	Ready() bool
}

// RequestIDHeader is echoed on every response. A random id is assigned when
// the caller does not send one.
const RequestIDHeader = "X-Request-ID"

const maxBodyBytes = 64 << 10

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// NewRouter registers every endpoint on a dedicated ServeMux.
func NewRouter(svc Service, log logger.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/estimate", NewEstimateHandler(svc, log))
	mux.Handle("/api/options", NewOptionsHandler(svc))
	mux.Handle("/api/model", NewModelHandler(svc))
	mux.Handle("/healthz", NewHealthHandler(svc))
	return withRequestID(mux)
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// NewEstimateHandler serves POST /api/estimate. Invalid input yields 400 and
// a missing model 503.
func NewEstimateHandler(svc Service, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var in model.VehicleInput
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err := dec.Decode(&in); err != nil {
			msg := "malformed JSON body"
			if errors.Is(err, io.EOF) {
				msg = "empty body"
			}
			writeJSON(w, http.StatusBadRequest, errorResponse{errorBody{pricing.CodeInvalidInput, msg}})
			return
		}
		est, err := svc.Estimate(in)
		if err != nil {
			status := http.StatusInternalServerError
			switch code := pricing.ErrorCode(err); code {
			case pricing.CodeInvalidInput:
				status = http.StatusBadRequest
			case pricing.CodeModelUnavailable:
				status = http.StatusServiceUnavailable
			default:
				log.Errorf("estimate %s: %v", r.Header.Get(RequestIDHeader), err)
			}
			writeJSON(w, status, errorResponse{errorBody{pricing.ErrorCode(err), err.Error()}})
			return
		}
		writeJSON(w, http.StatusOK, est)
	})
}

// NewOptionsHandler serves GET /api/options with the form choices derived
// from the reference data.
func NewOptionsHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, svc.Options())
	})
}

// NewModelHandler serves GET /api/model.
func NewModelHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		info, ok := svc.ModelInfo()
		if !ok {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{errorBody{pricing.CodeModelUnavailable, "no model loaded"}})
			return
		}
		writeJSON(w, http.StatusOK, info)
	})
}

// NewHealthHandler reports 200 once a model is loaded and 503 before.
func NewHealthHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if !svc.Ready() {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": pricing.CodeModelUnavailable})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
