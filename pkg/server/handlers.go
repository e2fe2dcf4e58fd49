package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	herrors "github.com/matzehuels/heatmap/pkg/errors"
	"github.com/matzehuels/heatmap/pkg/pipeline"
	"github.com/matzehuels/heatmap/pkg/points"
	"github.com/matzehuels/heatmap/pkg/render"
)

// heatmapRequest is the body of both POST routes.
type heatmapRequest struct {
	Title     string    `json:"title,omitempty"`
	XLabel    string    `json:"x_label,omitempty"`
	YLabel    string    `json:"y_label,omitempty"`
	X         []float64 `json:"x"`
	Y         []float64 `json:"y"`
	Stabilize *bool     `json:"stabilize,omitempty"`
	// Background is a base64-encoded image (KDE only).
	Background []byte `json:"background,omitempty"`
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Code  herrors.Code `json:"code"`
	Error string       `json:"error"`
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	opts, _, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.runner.RenderGrid(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writePNG(w, result)
}

func (s *Server) handleKDE(w http.ResponseWriter, r *http.Request) {
	opts, req, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(req.Background) > 0 {
		if opts.Background, err = render.DecodeBackgroundBytes(req.Background); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	result, err := s.runner.RenderKDE(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if result.CacheInfo.DensityHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	writePNG(w, result)
}

// decode parses the request body into pipeline options layered over the
// server's configuration.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (pipeline.Options, heatmapRequest, error) {
	var req heatmapRequest
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return pipeline.Options{}, req, herrors.Wrap(herrors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", MaxBodyBytes)
		}
		return pipeline.Options{}, req, herrors.Wrap(herrors.ErrCodeInvalidFormat, err, "decode request body")
	}

	cfg := s.config
	if req.Title != "" {
		cfg.Title = req.Title
	}
	if req.XLabel != "" {
		cfg.XLabel = req.XLabel
	}
	if req.YLabel != "" {
		cfg.YLabel = req.YLabel
	}
	if req.Stabilize != nil {
		cfg.Stabilize = *req.Stabilize
	}

	return pipeline.Options{
		Config: &cfg,
		Points: &points.Set{X: req.X, Y: req.Y},
	}, req, nil
}

func writePNG(w http.ResponseWriter, result *pipeline.Result) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(result.PNG)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.PNG)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := herrors.GetCode(err)
	if code == "" {
		code = herrors.ErrCodeInternal
	}
	msg := herrors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "err", err)
		msg = "internal error"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Code: code, Error: msg})
}

// statusFor maps error codes to HTTP statuses.
func statusFor(err error) int {
	switch herrors.GetCode(err) {
	case herrors.ErrCodeLengthMismatch,
		herrors.ErrCodeInvalidInput,
		herrors.ErrCodeInvalidFormat,
		herrors.ErrCodeInvalidConfig,
		herrors.ErrCodeInvalidPath,
		herrors.ErrCodeImageLoad:
		return http.StatusBadRequest
	case herrors.ErrCodeDegenerateData:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
