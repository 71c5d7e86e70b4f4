package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/matzehuels/starfield/pkg/buildinfo"
	"github.com/matzehuels/starfield/pkg/errors"
	"github.com/matzehuels/starfield/pkg/pipeline"
	"github.com/matzehuels/starfield/pkg/render/sink"
)

// HeaderSeed carries the seed that produced a response.
const HeaderSeed = "X-Starfield-Seed"

// maxDimension bounds ?width= and ?height=.
const maxDimension = 4096

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.handleArtifact(pipeline.FormatHTML)(w, r)
}

func (s *Server) handleArtifact(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := s.options(r.URL.Query(), format)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		result, err := s.runner.Execute(r.Context(), opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		data := result.Artifacts[format]

		h := w.Header()
		h.Set("Content-Type", contentType(format, data))
		h.Set(HeaderSeed, strconv.FormatUint(result.Seed, 10))
		if result.CacheInfo.Cacheable {
			h.Set("Cache-Control", "public, max-age=86400, immutable")
		} else {
			h.Set("Cache-Control", "no-store")
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

// options builds pipeline options from the configured defaults and the
// query overrides.
func (s *Server) options(q url.Values, format string) (pipeline.Options, error) {
	cfg := s.cfg
	opts := pipeline.Options{
		Count:       cfg.Count,
		Params:      cfg.Params,
		Formats:     []string{format},
		Width:       cfg.Render.Width,
		Height:      cfg.Render.Height,
		Title:       cfg.Render.Title,
		ContainerID: cfg.Render.ContainerID,
		Pretty:      cfg.Render.Pretty,
	}

	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil || seed == 0 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "seed must be a positive integer, got %q", v)
		}
		opts.Seed = seed
	}
	if v := q.Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > cfg.Server.MaxCount {
			return opts, errors.New(errors.ErrCodeInvalidInput, "count must be between 1 and %d, got %q", cfg.Server.MaxCount, v)
		}
		opts.Count = n
	}
	if opts.Count > cfg.Server.MaxCount {
		opts.Count = cfg.Server.MaxCount
	}

	var err error
	if opts.Width, err = dimension(q, "width", opts.Width); err != nil {
		return opts, err
	}
	if opts.Height, err = dimension(q, "height", opts.Height); err != nil {
		return opts, err
	}
	if v := q.Get("frame"); v != "" && format == pipeline.FormatPNG {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil || t < 0 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "frame must be a non-negative number of seconds, got %q", v)
		}
		opts.Frame = &t
	}
	if v := q.Get("pretty"); v != "" {
		pretty, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "pretty must be a boolean, got %q", v)
		}
		opts.Pretty = pretty
	}
	return opts, nil
}

func dimension(q url.Values, name string, def int) (int, error) {
	v := q.Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > maxDimension {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be between 1 and %d, got %q", name, maxDimension, v)
	}
	return n, nil
}

func contentType(format string, data []byte) string {
	if format == pipeline.FormatJSON {
		// mimetype reports text/plain for some valid JSON documents
		return "application/json"
	}
	return sink.ContentType(data)
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
