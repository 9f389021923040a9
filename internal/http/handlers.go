package http

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jodylarsen/CareConnect/internal/config"
	"github.com/jodylarsen/CareConnect/internal/services/careplan"
	"github.com/jodylarsen/CareConnect/internal/services/guidance"
	"github.com/jodylarsen/CareConnect/internal/services/probe"
	"github.com/jodylarsen/CareConnect/internal/services/providers"
	"github.com/jodylarsen/CareConnect/internal/services/symptoms"
)

// ReadinessCheck reports whether a backing dependency is reachable.
type ReadinessCheck func(ctx context.Context) error

// Services bundles what the handlers depend on.
type Services struct {
	Symptoms  *symptoms.Service
	Providers *providers.Service
	CarePlan  *careplan.Service
	Guidance  *guidance.Service
	Prober    *probe.Prober
	Inference config.InferenceStatus
	Checks    map[string]ReadinessCheck
}

// Handler serves the CareConnect API
type Handler struct {
	svc Services
}

func NewHandler(svc Services) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/inference", func(r chi.Router) {
			r.Get("/status", h.InferenceStatus)
			r.Get("/probe", h.LastProbe)
			r.Post("/test", h.TestConnection)
			r.Post("/tools-check", h.CheckTools)
		})
		r.Post("/symptoms/analyze", h.AnalyzeSymptoms)
		r.Post("/providers/search", h.SearchProviders)
		r.Post("/care-plan", h.CarePlan)
		r.Post("/guidance/providers", h.ProviderAdvice)
		r.Post("/guidance/travel", h.TravelAdvice)
	})
}

// Health reports liveness together with the inference configuration.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "OK",
		"message":   "CareConnect backend is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"inference": h.svc.Inference,
	})
}

// Ready runs every readiness check in parallel.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]string, len(h.svc.Checks))
		ready   = true
	)
	for name, check := range h.svc.Checks {
		wg.Add(1)
		go func(name string, check ReadinessCheck) {
			defer wg.Done()
			status := "ok"
			if err := check(ctx); err != nil {
				status = err.Error()
			}
			mu.Lock()
			defer mu.Unlock()
			results[name] = status
			if status != "ok" {
				ready = false
			}
		}(name, check)
	}
	wg.Wait()

	status, code := "ready", http.StatusOK
	if !ready {
		status, code = "not_ready", http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]interface{}{
		"status":    status,
		"checks":    results,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) InferenceStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Inference)
}

func (h *Handler) LastProbe(w http.ResponseWriter, r *http.Request) {
	report, ok := h.svc.Prober.Last(r.Context())
	if !ok {
		writeError(w, http.StatusNotFound, ErrCodeNotFound, "no probe has completed yet")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// TestConnection answers 200 when the endpoint replied with content and 502
// otherwise; the body carries the details either way.
func (h *Handler) TestConnection(w http.ResponseWriter, r *http.Request) {
	result := h.svc.Prober.TestConnection(r.Context())
	code := http.StatusOK
	if !result.Connected {
		code = http.StatusBadGateway
	}
	writeJSON(w, code, result)
}

func (h *Handler) CheckTools(w http.ResponseWriter, r *http.Request) {
	var req struct {
		City string `json:"city"`
	}
	if err := decodeBody(r, toolCheckSchema, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Prober.CheckTools(r.Context(), req.City))
}

// AnalyzeSymptoms always answers 200 once the body is valid.
func (h *Handler) AnalyzeSymptoms(w http.ResponseWriter, r *http.Request) {
	var req symptoms.SymptomRequest
	if err := decodeBody(r, symptomRequestSchema, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Symptoms.AnalyzeSymptoms(r.Context(), req))
}

func (h *Handler) SearchProviders(w http.ResponseWriter, r *http.Request) {
	var req providers.SearchRequest
	if err := decodeBody(r, providerSearchSchema, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	resp, err := h.svc.Providers.Search(r.Context(), req.Location, req.Filters)
	if errors.Is(err, providers.ErrInvalidLocation) {
		writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "Healthcare provider search failed")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) CarePlan(w http.ResponseWriter, r *http.Request) {
	var req careplan.Request
	if err := decodeBody(r, carePlanSchema, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.CarePlan.Plan(r.Context(), req))
}

func (h *Handler) ProviderAdvice(w http.ResponseWriter, r *http.Request) {
	var req guidance.ProviderAdviceRequest
	if err := decodeBody(r, providerAdviceSchema, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Guidance.ProviderAdvice(r.Context(), req))
}

func (h *Handler) TravelAdvice(w http.ResponseWriter, r *http.Request) {
	var req guidance.TravelAdviceRequest
	if err := decodeBody(r, travelAdviceSchema, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Guidance.TravelAdvice(r.Context(), req))
}
