package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/LiamF-2261667/fruckr-sub001/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeSuccess merges extra fields into a {"success": true} payload.
func writeSuccess(w http.ResponseWriter, status int, extra map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	writeJSON(w, status, body)
}

// writeError maps a domain error to its status and surfaces its message
// verbatim. Anything else is logged and, outside development, masked behind
// a generic message.
func writeError(w http.ResponseWriter, logger *log.Logger, development bool, err error) {
	var dErr *domain.Error
	msg := "something went wrong"
	status := http.StatusInternalServerError

	switch {
	case errors.As(err, &dErr):
		msg = dErr.Msg
		status = statusForKind(dErr.Kind)
	case development:
		msg = err.Error()
		logger.Printf("internal error: %v", err)
	default:
		logger.Printf("internal error: %v", err)
	}

	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}

func statusForKind(kind domain.Kind) int {
	switch kind {
	case domain.KindInvalidInput:
		return http.StatusBadRequest
	case domain.KindNoData:
		return http.StatusNotFound
	case domain.KindCartConflict, domain.KindInvalidOrder, domain.KindInvitation:
		return http.StatusConflict
	case domain.KindAuthorization:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
