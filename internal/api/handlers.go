package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/chartlayout/pkg/buildinfo"
	"github.com/matzehuels/chartlayout/pkg/errors"
	"github.com/matzehuels/chartlayout/pkg/model"
	"github.com/matzehuels/chartlayout/pkg/pipeline"
	"github.com/matzehuels/chartlayout/pkg/render"
)

// Response headers.
const (
	HeaderRunID = "X-Run-ID"
	HeaderCache = "X-Cache"
)

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	def, err := s.readDefinition(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := layoutOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	layout, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), def, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	layout.RunID = RequestIDFromContext(r.Context())
	w.Header().Set(HeaderRunID, layout.RunID)
	w.Header().Set(HeaderCache, cacheStatus(hit))
	writeJSON(w, http.StatusOK, layout)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	def, err := s.readDefinition(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := renderOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), def, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := opts.Formats[0]
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set(HeaderRunID, res.RunID)
	w.Header().Set(HeaderCache, cacheStatus(res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// readDefinition reads and decodes the request body.
func (s *Server) readDefinition(w http.ResponseWriter, r *http.Request) (model.Definition, error) {
	format, err := inputFormat(r)
	if err != nil {
		return model.Definition{}, err
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var mbe *http.MaxBytesError
		if stderrors.As(err, &mbe) {
			return model.Definition{}, &errors.TooLargeError{Limit: mbe.Limit}
		}
		return model.Definition{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if len(data) == 0 {
		return model.Definition{}, errors.New(errors.ErrCodeInvalidInput, "request body is empty")
	}
	return pipeline.Parse(data, format)
}

// inputFormat returns the definition format of a request.
func inputFormat(r *http.Request) (string, error) {
	if f := r.URL.Query().Get("input"); f != "" {
		switch f {
		case model.FormatJSON, model.FormatTOML, model.FormatYAML:
			return f, nil
		case "yml":
			return model.FormatYAML, nil
		}
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported input format %q (must be json, toml or yaml)", f)
	}

	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return model.FormatJSON, nil
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "bad Content-Type")
	}
	switch {
	case mt == "application/json" || strings.HasSuffix(mt, "+json"):
		return model.FormatJSON, nil
	case strings.HasSuffix(mt, "toml"):
		return model.FormatTOML, nil
	case strings.HasSuffix(mt, "yaml"):
		return model.FormatYAML, nil
	case mt == "text/plain":
		return model.FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported Content-Type %q", mt)
}

// layoutOptions reads layout options from the query string.
func layoutOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	var opts pipeline.Options
	var err error

	if opts.Width, err = floatParam(q.Get("width"), "width"); err != nil {
		return opts, err
	}
	if opts.Height, err = floatParam(q.Get("height"), "height"); err != nil {
		return opts, err
	}
	if v := q.Get("max_iterations"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "max_iterations must be an integer, got %q", v)
		}
		opts.MaxIterations = n
	}
	if v := q.Get("side_by_side"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "side_by_side must be a boolean, got %q", v)
		}
		opts.SideBySide = &b
	}
	opts.Measurer = q.Get("measurer")
	opts.Refresh = q.Get("refresh") == "true"
	return opts, nil
}

// renderOptions reads layout and render options from the query string.
// Exactly one output format is rendered per request.
func renderOptions(r *http.Request) (pipeline.Options, error) {
	opts, err := layoutOptions(r)
	if err != nil {
		return opts, err
	}
	q := r.URL.Query()

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return opts, err
	}
	opts.Formats = []string{format}
	opts.ShowLabels = q.Get("labels") == "true"
	opts.ShowGrid = q.Get("grid") == "true"
	opts.ShowTitle = q.Get("title") == "true"
	opts.Detailed = q.Get("detailed") == "true"
	if opts.Scale, err = floatParam(q.Get("scale"), "scale"); err != nil {
		return opts, err
	}
	return opts, nil
}

func floatParam(v, name string) (float64, error) {
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be a number, got %q", name, v)
	}
	return f, nil
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// writeError maps err to a status code and writes it as JSON.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"path", r.URL.Path,
			"request_id", RequestIDFromContext(r.Context()),
			"err", err)
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: errors.UserMessage(err)}})
}

func classify(err error) (int, errors.Code) {
	var tooLarge *errors.TooLargeError
	switch {
	case stderrors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, tooLarge.Code()
	case errors.IsInvalid(err):
		return http.StatusBadRequest, errors.GetCode(err)
	case stderrors.Is(err, render.ErrConverterMissing):
		return http.StatusNotImplemented, errors.ErrCodeUnsupported
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, errors.ErrCodeTimeout
	}
	return http.StatusInternalServerError, errors.ErrCodeInternal
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
