package handlers

import (
	"compress/gzip"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/giygas/medlabel-api/logging"
)

// Minimum response size to consider compression (1KB)
const compressionThreshold = 1024

// acceptsGzip reports whether the client advertised gzip support
func acceptsGzip(r *http.Request) bool {
	return strings.Contains(strings.ToLower(r.Header.Get("Accept-Encoding")), "gzip")
}

// RespondWithCompressedJSON writes payload gzip-encoded when it is large
// enough and the client accepts it, plain JSON otherwise
func (h *HTTPHandlerImpl) RespondWithCompressedJSON(w http.ResponseWriter, r *http.Request, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Add("Vary", "Accept-Encoding")

	if len(data) < compressionThreshold || !acceptsGzip(r) {
		w.WriteHeader(code)
		if _, err := w.Write(data); err != nil {
			logging.Debug("Failed to write response", "error", err)
		}
		return
	}

	w.Header().Set("Content-Encoding", "gzip")
	w.WriteHeader(code)

	gz := gzip.NewWriter(w)
	defer gz.Close()
	if _, err := gz.Write(data); err != nil {
		logging.Debug("Failed to write compressed response", "error", err)
		return
	}
	logging.Debug("Compressed JSON response", "original_size", len(data))
}
