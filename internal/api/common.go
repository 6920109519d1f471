package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mesh-intelligence/folio/internal/service"
	"github.com/mesh-intelligence/folio/pkg/types"
)

// maxJSONBody caps request bodies for JSON endpoints.
const maxJSONBody = 1 << 20

// jsonResponse sends a JSON response with the given status.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// errorResponse sends a failed StandardResponse.
func errorResponse(w http.ResponseWriter, status int, msg string) {
	jsonResponse(w, status, StandardResponse{
		Success: false,
		Error:   msg,
	})
}

// dataResponse sends a successful StandardResponse carrying data.
func dataResponse(w http.ResponseWriter, data any) {
	jsonResponse(w, http.StatusOK, StandardResponse{Success: true, Data: data})
}

// resultResponse maps a service Result onto the envelope and a status.
func resultResponse(w http.ResponseWriter, r service.Result, okStatus int) {
	if !r.Success {
		errorResponse(w, statusFor(r.Err()), r.Error)
		return
	}
	resp := StandardResponse{Success: true}
	if r.ID != "" {
		resp.Data = IDResponse{ID: r.ID}
	}
	jsonResponse(w, okStatus, resp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, types.ErrInvalidData), errors.Is(err, types.ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a bounded JSON body into v. It writes the 400 response
// itself and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
