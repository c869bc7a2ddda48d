package identity

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bissquit/hr-portal/internal/pkg/ctxlog"
	"github.com/bissquit/hr-portal/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
)

// Handler handles HTTP requests for the identity module.
type Handler struct {
	service *Service
}

// NewHandler creates a new identity handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers identity routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Get("/activation/{token}", h.Activate)
	})
}

// RegisterRequest represents the registration request body.
type RegisterRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	EmailVerified  string `json:"emailVerified"`
	EmploymentType string `json:"employmentType"`
}

// Register handles POST /auth/register.
//
// Status contract, kept compatible with the UI that consumes it:
//
//	201 created, 409 duplicate email, 204 incomplete input (the client reads
//	the statusCode field of the body, where the transport allows a body),
//	501 anything else.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, map[string]interface{}{
			"message": "invalid json",
		})
		return
	}

	_, err := h.service.Register(r.Context(), RegisterInput(req))
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailExists):
			metrics.Registrations.WithLabelValues("conflict").Inc()
			respondMessage(w, http.StatusConflict, map[string]interface{}{
				"message": "User Already Exist",
			})
		case errors.Is(err, ErrIncompleteInput):
			metrics.Registrations.WithLabelValues("incomplete").Inc()
			respondMessage(w, http.StatusNoContent, map[string]interface{}{
				"message":    "Fields can't be empty",
				"statusCode": 204,
			})
		default:
			metrics.Registrations.WithLabelValues("error").Inc()
			ctxlog.FromContext(r.Context()).Error("registration failed", "error", err)
			respondMessage(w, http.StatusNotImplemented, map[string]interface{}{
				"message": "Oops, something went wrong",
			})
		}
		return
	}

	metrics.Registrations.WithLabelValues("created").Inc()
	respondMessage(w, http.StatusCreated, map[string]interface{}{
		"message":    "An activation link has been sent to your mail",
		"statusCode": 200,
	})
}

// Activate handles GET /auth/activation/{token}.
func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	tokenString := chi.URLParam(r, "token")

	result, err := h.service.Activate(r.Context(), tokenString)
	if err != nil {
		metrics.Activations.WithLabelValues("error").Inc()
		ctxlog.FromContext(r.Context()).Error("activation failed", "error", err)
		respondMessage(w, http.StatusInternalServerError, map[string]interface{}{
			"message": "Oops, something went wrong",
		})
		return
	}

	metrics.Activations.WithLabelValues(result.String()).Inc()

	switch result {
	case ActivationSuccess:
		respondMessage(w, http.StatusOK, map[string]interface{}{
			"message": "Your account has been activated",
		})
	case ActivationAlreadyActive:
		respondMessage(w, http.StatusOK, map[string]interface{}{
			"message": "Account already activated",
		})
	default:
		respondMessage(w, http.StatusNotFound, map[string]interface{}{
			"message": "User does not exist",
		})
	}
}

// respondMessage writes a JSON body with the given status. The write error is
// deliberately dropped: net/http refuses bodies on 204 responses, which the
// register contract pairs with a JSON payload.
func respondMessage(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
