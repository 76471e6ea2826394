package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lcsmith2/markovcity/pkg/pipeline"
)

// generateRequest is the POST /v1/generate body.
type generateRequest struct {
	Rows    int    `json:"rows"`
	Cols    int    `json:"cols"`
	Seed    uint64 `json:"seed"`
	Refresh bool   `json:"refresh"`
}

// generateResponse is the POST /v1/generate reply.
type generateResponse struct {
	RunID      string          `json:"run_id"`
	ConfigHash string          `json:"config_hash"`
	Cached     bool            `json:"cached"`
	Rows       int             `json:"rows"`
	Cols       int             `json:"cols"`
	Buildings  int             `json:"buildings"`
	Grid       json.RawMessage `json:"grid"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	opts := pipeline.Options{
		Rows:       req.Rows,
		Cols:       req.Cols,
		Seed:       req.Seed,
		Refresh:    req.Refresh,
		ConfigPath: s.ConfigPath,
		Logger:     s.Logger,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.Runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		RunID:      result.RunID,
		ConfigHash: result.ConfigHash,
		Cached:     result.CacheInfo.GridHit,
		Rows:       result.Stats.Rows,
		Cols:       result.Stats.Cols,
		Buildings:  result.Stats.Buildings,
		Grid:       json.RawMessage(result.Artifacts[pipeline.FormatJSON]),
	})
}

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	chain := chi.URLParam(r, "chain")
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.DiagramSVG
	}
	showPrior, _ := strconv.ParseBool(r.URL.Query().Get("prior"))

	if err := pipeline.ValidateChain(chain); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err := pipeline.ValidateDiagramFormat(format); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := pipeline.Options{ConfigPath: s.ConfigPath, Logger: s.Logger}
	data, err := s.Runner.RenderDiagram(r.Context(), opts, chain, format, showPrior)
	if err != nil {
		s.writeAppError(w, err)
		return
	}

	switch format {
	case pipeline.DiagramSVG:
		w.Header().Set("Content-Type", "image/svg+xml")
	default:
		w.Header().Set("Content-Type", "text/vnd.graphviz")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
