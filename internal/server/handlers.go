package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/AnyUserName/imgpress/internal/compress"
	"github.com/AnyUserName/imgpress/internal/hasher"
	"github.com/AnyUserName/imgpress/internal/metrics"
)

// DefaultQuality applies when the quality header is missing or invalid.
const DefaultQuality = 80

// QualityHeader carries the requested JPEG quality (1-100).
const QualityHeader = "X-Compression-Quality"

func (s *Server) handleCompress(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.log.Warn("request body too large", "limit_bytes", tooLarge.Limit)
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		s.log.Error("read request body", "err", err)
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}
	if len(body) == 0 {
		s.log.Warn("empty request body")
		http.Error(w, "request body cannot be empty", http.StatusBadRequest)
		return
	}

	quality := parseQuality(r.Header.Get(QualityHeader))
	s.log.Info("compression request", "body_bytes", len(body), "quality", quality)

	out, err := compress.Compress(body, quality)
	if err != nil {
		// Bad input data, not a server fault.
		s.log.Error("compression failed", "err", err)
		http.Error(w, "failed to compress image: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("ETag", `"`+hasher.ContentHash(out, 16)+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out); err != nil {
		s.log.Warn("write response", "err", err)
		return
	}

	s.log.Info("compression done",
		"in_bytes", len(body),
		"out_bytes", len(out),
		"elapsed", time.Since(start).Round(time.Microsecond).String(),
	)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, metrics.Current())
}

// parseQuality interprets the quality header value. Missing, unparsable
// or out-of-range values silently fall back to DefaultQuality.
func parseQuality(v string) int {
	if v == "" {
		return DefaultQuality
	}
	q, err := strconv.ParseUint(v, 10, 32)
	if err != nil || q < 1 || q > 100 {
		return DefaultQuality
	}
	return int(q)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
