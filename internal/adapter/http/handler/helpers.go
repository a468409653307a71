package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/iho/hucha/internal/adapter/http/dto"
	"github.com/iho/hucha/internal/usecase"
)

// OwnerHeader carries the id of the user the request acts for.
const OwnerHeader = "X-User-ID"

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError maps a usecase failure to an HTTP error response. The
// unexpected kind hides its cause behind a generic message.
func writeError(w http.ResponseWriter, err error) {
	f, ok := usecase.AsFailure(err)
	if !ok {
		log.Error().Err(err).Msg("unclassified error reached handler")
		writeErrorBody(w, http.StatusInternalServerError, "internal server error", "")
		return
	}

	switch f.Kind {
	case usecase.FailureValidation:
		writeErrorBody(w, http.StatusBadRequest, "validation failed", f.Message)
	case usecase.FailureNotFound:
		writeErrorBody(w, http.StatusNotFound, "not found", f.Message)
	case usecase.FailureConflict:
		writeErrorBody(w, http.StatusConflict, "conflict", f.Message)
	default:
		log.Error().Err(f).Msg("unexpected failure")
		writeErrorBody(w, http.StatusInternalServerError, "internal server error", "")
	}
}

func writeErrorBody(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeBadRequest reports a malformed request body or missing parameter.
func writeBadRequest(w http.ResponseWriter, message, details string) {
	writeErrorBody(w, http.StatusBadRequest, message, details)
}

// ownerID extracts the acting user's id from the request headers.
func ownerID(r *http.Request) string {
	return r.Header.Get(OwnerHeader)
}

// listQuery builds a ListQuery from the request's query string. Values
// are normalized against the entity's sort spec inside the usecase.
func listQuery(r *http.Request) usecase.ListQuery {
	q := r.URL.Query()

	return usecase.ListQuery{
		Page:       parseIntQuery(r, "page", 1),
		PageSize:   parseIntQuery(r, "page_size", usecase.DefaultPageSize),
		Search:     q.Get("search"),
		SortColumn: q.Get("sort_by"),
		SortOrder:  q.Get("order"),
		OwnerID:    ownerID(r),
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
