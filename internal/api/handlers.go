package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/hyperifyio/npchunk/internal/chart"
	"github.com/hyperifyio/npchunk/internal/chunk"
	"github.com/hyperifyio/npchunk/internal/tree"
)

const maxBodyBytes = 1 << 20

type parseRequest struct {
	Sentence string `json:"sentence"`
}

type chunkRequest struct {
	Tree  string `json:"tree"`
	Label string `json:"label,omitempty"`
}

type chunkResponse struct {
	Chunks []string `json:"chunks"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.version})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Sentence) == "" {
		jsonError(w, "sentence is required", http.StatusBadRequest)
		return
	}
	res, err := s.analyzer.Analyze(r.Context(), req.Sentence)
	var uncovered *chart.UncoveredError
	switch {
	case errors.As(err, &uncovered):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":     uncovered.Error(),
			"uncovered": uncovered.Words,
		})
		return
	case errors.Is(err, context.DeadlineExceeded):
		jsonError(w, "analysis timed out", http.StatusGatewayTimeout)
		return
	case err != nil:
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleChunk(w http.ResponseWriter, r *http.Request) {
	var req chunkRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	t, err := tree.ParseBracketed(req.Tree)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	chunks, err := chunk.Extractor{Label: req.Label}.Extract(t)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, chunkResponse{Chunks: chunk.Texts(chunks)})
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.New("invalid JSON body: " + err.Error())
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
