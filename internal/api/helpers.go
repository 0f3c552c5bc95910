package api

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
)

// WriteJSONResponse encodes response to a buffer first so a failed encoding
// never produces a partial body. Returns false when nothing usable was written.
func WriteJSONResponse(w http.ResponseWriter, response any) bool {
	return WriteJSONResponseWithStatus(w, http.StatusOK, response)
}

// WriteJSONResponseWithStatus is WriteJSONResponse with an explicit status code.
func WriteJSONResponseWithStatus(w http.ResponseWriter, status int, response any) bool {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(response); err != nil {
		log.Printf("API: Failed to encode response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return false
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("API: Failed to write response: %v", err)
		return false
	}
	return true
}

// ParseLimitParam reads the limit query parameter. Missing or invalid values
// give defaultLimit; values above maxLimit are clamped.
func ParseLimitParam(r *http.Request, defaultLimit, maxLimit int) int {
	limit := defaultLimit

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	if limit > maxLimit {
		limit = maxLimit
	}
	return limit
}
