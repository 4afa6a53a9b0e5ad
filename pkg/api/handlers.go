package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/stagekit/pkg/asset"
	errs "github.com/matzehuels/stagekit/pkg/errors"
	"github.com/matzehuels/stagekit/pkg/pipeline"
)

// AssetView is the JSON form of one asset.
type AssetView struct {
	AssetID     int              `json:"assetId"`
	Kind        asset.Kind       `json:"kind"`
	Name        string           `json:"name,omitempty"`
	Src         string           `json:"src,omitempty"`
	Text        string           `json:"text,omitempty"`
	TotalFrames int              `json:"totalFrames,omitempty"`
	Framerate   float64          `json:"framerate,omitempty"`
	Children    []asset.ChildRef `json:"children,omitempty"`
	Record      asset.Record     `json:"record,omitempty"`
}

// InstanceView is the JSON form of a created instance. Handle is unique
// per call.
type InstanceView struct {
	Handle     string     `json:"handle"`
	AssetID    int        `json:"assetId"`
	InstanceID int        `json:"instanceId"`
	Kind       asset.Kind `json:"kind"`
}

func newAssetView(a asset.Asset, withRecord bool) AssetView {
	v := AssetView{AssetID: a.AssetID(), Kind: a.Kind()}
	switch x := a.(type) {
	case *asset.Bitmap:
		v.Src = x.Src
	case *asset.Shape:
		v.Name = x.Name
	case *asset.Text:
		v.Text = x.Text
	case *asset.Stage:
		v.Framerate = x.Framerate
	}
	if td, ok := asset.TimelineOf(a); ok {
		v.TotalFrames = td.TotalFrames
		v.Children = td.Children
	}
	if withRecord {
		v.Record = a.Record()
	}
	return v
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.res.Library.Summary()
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sum)
}

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	var (
		filter    asset.Kind
		filtering bool
	)
	if name := r.URL.Query().Get("kind"); name != "" {
		k, ok := asset.ParseKind(name)
		if !ok {
			s.respondError(w, errs.New(errs.ErrCodeInvalidInput, "unknown kind %q", name))
			return
		}
		filter, filtering = k, true
	}

	assets, err := s.res.Library.Assets()
	if err != nil {
		s.respondError(w, err)
		return
	}
	views := make([]AssetView, 0, len(assets))
	for _, a := range assets {
		if filtering && a.Kind() != filter {
			continue
		}
		views = append(views, newAssetView(a, false))
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		s.respondError(w, err)
		return
	}
	a, err := s.res.Library.Lookup(id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newAssetView(a, true))
}

func (s *Server) handleCreateInstance(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		s.respondError(w, err)
		return
	}
	instanceID, err := intParam(r, "instanceID")
	if err != nil {
		s.respondError(w, err)
		return
	}
	inst, err := s.res.Library.CreateInstance(id, instanceID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, InstanceView{
		Handle:     inst.Handle.String(),
		AssetID:    inst.AssetID(),
		InstanceID: inst.InstanceID,
		Kind:       inst.Kind(),
	})
}

func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Format:       q.Get("format"),
		Direction:    strings.ToUpper(q.Get("direction")),
		Detailed:     boolQuery(q.Get("detailed")),
		ShowDangling: boolQuery(q.Get("dangling")),
		Logger:       s.logger,
	}
	if s.res.Library.TornDown() {
		s.respondError(w, errs.New(errs.ErrCodeTornDown, "asset library has been torn down"))
		return
	}
	data, hit, err := s.runner.DiagramFromResult(r.Context(), s.res, opts)
	if err != nil {
		s.respondError(w, err)
		return
	}
	contentType := "image/svg+xml"
	if opts.Format == pipeline.FormatDOT {
		contentType = "text/vnd.graphviz; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Cache", cacheHeader(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func intParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.New(errs.ErrCodeInvalidInput, "%s must be an integer, got %q", name, raw)
	}
	return n, nil
}

func boolQuery(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	code := errs.GetCode(err)
	switch {
	case code == errs.ErrCodeTornDown:
		return http.StatusGone
	case code == errs.ErrCodeUnsupported:
		return http.StatusBadRequest
	case strings.HasPrefix(string(code), "INVALID_"), code == errs.ErrCodeDuplicateID:
		return http.StatusBadRequest
	case strings.HasSuffix(string(code), "NOT_FOUND"):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	code := string(errs.GetCode(err))
	if code == "" {
		code = string(errs.ErrCodeInternal)
	}
	respondJSON(w, status, errorResponse{Code: code, Error: errs.UserMessage(err)})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
