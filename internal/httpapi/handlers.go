// Package httpapi is the thin HTTP adapter (§6) in front of the engine:
// POST /reports runs a comparison and persists it, GET /reports and
// GET /reports/{id} read it back, and POST /waitlist / GET /admin/waitlist
// capture and list interest signups. None of this carries engine logic
// of its own; it is glue over [engine] and [reportstore.Store].
package httpapi

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/truespec/truespec/differ"
	"github.com/truespec/truespec/engine"
	"github.com/truespec/truespec/internal/logging"
	"github.com/truespec/truespec/internal/reportstore"
	"github.com/truespec/truespec/oaserrors"
)

// API wires a Config, a [reportstore.Store], and a logger into a set of
// http.Handler-compatible methods. It holds no request-scoped state.
type API struct {
	cfg      Config
	store    reportstore.Store
	logger   logging.Logger
	waitlist *waitlistStore
}

// New returns an API backed by store. A nil logger is replaced with
// [logging.NopLogger].
func New(cfg Config, store reportstore.Store, logger logging.Logger) *API {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &API{cfg: cfg, store: store, logger: logger, waitlist: newWaitlistStore()}
}

// Mux returns a *http.ServeMux with every route registered, ready to
// mount at the adapter's root (or under a sub-path via http.StripPrefix).
func (a *API) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	a.Register(mux)
	return mux
}

// Register adds every route this API serves to mux, so callers that
// need to mount other handlers (like the marketing site) alongside it
// can do so on one ServeMux instead of nesting two.
func (a *API) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /reports", a.handlePostReport)
	mux.HandleFunc("GET /reports", a.requireAdmin(a.handleListReports))
	mux.HandleFunc("GET /reports/{id}", a.handleGetReport)
	mux.HandleFunc("POST /waitlist", a.handlePostWaitlist)
	mux.HandleFunc("GET /admin/waitlist", a.requireAdmin(a.handleListWaitlist))
}

type postReportsRequest struct {
	// Base and Head are decoded as raw JSON so an embedded object is
	// handed to specdoc.Load as bytes (the order-preserving path) rather
	// than being pre-decoded into an unordered map[string]any.
	Base   json.RawMessage `json:"base"`
	Head   json.RawMessage `json:"head"`
	Repo   string          `json:"repo,omitempty"`
	Source string          `json:"source,omitempty"`
}

type postReportsResponse struct {
	ID       string           `json:"id"`
	Repo     string           `json:"repo,omitempty"`
	Source   string           `json:"source,omitempty"`
	Markdown string           `json:"markdown"`
	Items    []differ.Finding `json:"items"`
	Summary  struct {
		Breaking int `json:"breaking"`
		Warning  int `json:"warning"`
		Info     int `json:"info"`
		Total    int `json:"total"`
	} `json:"summary"`
}

// reportStub is what GET /reports lists: enough to identify and pick a
// report, but neither its Markdown nor its Items (§6).
type reportStub struct {
	ID        string         `json:"id"`
	Repo      string         `json:"repo,omitempty"`
	Source    string         `json:"source,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	Summary   differ.Summary `json:"summary"`
}

// decodeSpecInput turns a request's raw base/head field into whatever
// engine.DiffText and specdoc.Load expect: an embedded JSON object or
// array is passed through as bytes, and a JSON string is unwrapped so
// its content (JSON or YAML text) goes through the same string path a
// bare string input would.
func decodeSpecInput(raw json.RawMessage) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, err
		}
		return s, nil
	}
	return []byte(trimmed), nil
}

func (a *API) handlePostReport(w http.ResponseWriter, r *http.Request) {
	if !a.authorizedWrite(r) {
		writeError(w, http.StatusForbidden, "missing or invalid report token")
		return
	}

	var req postReportsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed JSON request body")
		return
	}

	baseInput, err := decodeSpecInput(req.Base)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed base document")
		return
	}
	headInput, err := decodeSpecInput(req.Head)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed head document")
		return
	}

	rep, err := engine.DiffText(baseInput, headInput, engine.WithLogger(a.logger))
	if err != nil {
		a.writeEngineError(w, err)
		return
	}

	md := engine.Markdown(rep)
	mdTruncated := false
	if len(md) > a.cfg.MaxMarkdownBytes {
		md = md[:a.cfg.MaxMarkdownBytes] + "..."
		mdTruncated = true
	}

	itemsJSON, err := json.Marshal(rep.Items)
	if err != nil {
		a.writeInternalError(w, "marshaling report items failed", err)
		return
	}
	itemsTruncated := false
	if len(itemsJSON) > a.cfg.MaxMarkdownBytes {
		itemsJSON = append(itemsJSON[:a.cfg.MaxMarkdownBytes:a.cfg.MaxMarkdownBytes], []byte("...")...)
		itemsTruncated = true
	}

	id, err := newReportID()
	if err != nil {
		a.writeInternalError(w, "generating report id failed", err)
		return
	}

	rec := reportstore.Record{
		ID:             id,
		Repo:           req.Repo,
		Source:         req.Source,
		CreatedAt:      time.Now().UTC(),
		Summary:        rep.Summary,
		Markdown:       md,
		Truncated:      mdTruncated,
		Items:          string(itemsJSON),
		ItemsTruncated: itemsTruncated,
	}
	if err := a.store.Put(r.Context(), rec); err != nil {
		var storeErr *oaserrors.StoreError
		if !errors.As(err, &storeErr) || !storeErr.Conflict {
			a.writeInternalError(w, "storing report failed", err)
			return
		}
		a.logger.Debug("duplicate report id treated as success", "id", id)
	}

	resp := postReportsResponse{ID: id, Repo: req.Repo, Source: req.Source, Markdown: md, Items: rep.Items}
	resp.Summary.Breaking = rep.Summary.Breaking
	resp.Summary.Warning = rep.Summary.Warning
	resp.Summary.Info = rep.Summary.Info
	resp.Summary.Total = rep.Summary.Total

	writeJSON(w, http.StatusCreated, resp)
}

func (a *API) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	rec, ok, err := a.store.GetByID(r.Context(), id)
	if err != nil {
		a.writeInternalError(w, "reading report failed", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (a *API) handleListReports(w http.ResponseWriter, r *http.Request) {
	pageSize := a.cfg.DefaultPageSize
	if v := r.URL.Query().Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			pageSize = n
		}
	}
	if a.cfg.MaxPageSize > 0 && pageSize > a.cfg.MaxPageSize {
		pageSize = a.cfg.MaxPageSize
	}

	repo := r.URL.Query().Get("repo")
	records, next, err := a.store.ListPage(r.Context(), repo, pageSize, r.URL.Query().Get("page_token"))
	if err != nil {
		a.writeInternalError(w, "listing reports failed", err)
		return
	}

	stubs := make([]reportStub, len(records))
	for i, rec := range records {
		stubs[i] = reportStub{ID: rec.ID, Repo: rec.Repo, Source: rec.Source, CreatedAt: rec.CreatedAt, Summary: rec.Summary}
	}

	writeJSON(w, http.StatusOK, struct {
		Records       []reportStub `json:"records"`
		NextPageToken string       `json:"next_page_token,omitempty"`
	}{Records: stubs, NextPageToken: next})
}

func (a *API) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !a.authorizedAdmin(r) {
			writeError(w, http.StatusForbidden, "missing or invalid admin token")
			return
		}
		next(w, r)
	}
}

// authorizedWrite governs POST /reports and POST /waitlist: an unset
// WriteToken disables the check, which is only appropriate in local
// dev (§6).
func (a *API) authorizedWrite(r *http.Request) bool {
	if a.cfg.WriteToken == "" {
		return true
	}
	return tokenMatches(r, a.cfg.WriteToken)
}

// authorizedAdmin governs GET /reports and GET /admin/waitlist: an
// unset AdminToken denies every request rather than opening the admin
// surface, unlike authorizedWrite (§6: "REPORTS_ADMIN_TOKEN empty ⇒
// GET always 403").
func (a *API) authorizedAdmin(r *http.Request) bool {
	if a.cfg.AdminToken == "" {
		return false
	}
	return tokenMatches(r, a.cfg.AdminToken)
}

func tokenMatches(r *http.Request, token string) bool {
	if r.Header.Get("X-Report-Token") == token {
		return true
	}
	if bearer, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok && bearer == token {
		return true
	}
	return false
}

func (a *API) writeEngineError(w http.ResponseWriter, err error) {
	var inputErr *oaserrors.InputError
	var yamlErr *oaserrors.YamlUnavailableError

	switch {
	case errors.As(err, &inputErr):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &yamlErr):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		a.writeInternalError(w, "unexpected engine error", err)
	}
}

// writeInternalError logs err and writes a 500. The response body only
// carries err's message when a.cfg.Debug is set; otherwise it is a
// generic "internal error" (§7).
func (a *API) writeInternalError(w http.ResponseWriter, logMsg string, err error) {
	a.logger.Error(logMsg, "error", err.Error())
	msg := "internal error"
	if a.cfg.Debug {
		msg = err.Error()
	}
	writeError(w, http.StatusInternalServerError, msg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, struct {
		Error string `json:"error"`
	}{Error: message})
}

func newReportID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
