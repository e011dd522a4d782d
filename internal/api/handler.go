// Package api serves comparisons and extractions over HTTP with fasthttp.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/baditaflorin/go_fuzzy_compare/internal/adapters/preprocess"
	"github.com/baditaflorin/go_fuzzy_compare/internal/config"
	"github.com/baditaflorin/go_fuzzy_compare/internal/core/algorithm"
	"github.com/baditaflorin/go_fuzzy_compare/internal/core/domain"
	"github.com/baditaflorin/go_fuzzy_compare/internal/core/extract"
	"github.com/baditaflorin/go_fuzzy_compare/internal/core/fuzzy"
	"github.com/baditaflorin/go_fuzzy_compare/internal/ports"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// maxCachedPreprocessors bounds the shared Cached preprocessors. Requests past the bound
// get an uncached preprocessor.
const maxCachedPreprocessors = 64

// CompareResponse is the body returned by POST /compare.
type CompareResponse struct {
	Algorithm      string `json:"algorithm"`
	Preprocessor   string `json:"preprocessor"`
	Score          int    `json:"score"`
	HigherIsBetter bool   `json:"higher_is_better"`
}

// ExtractResponse is the body returned by POST /extract.
type ExtractResponse struct {
	Algorithm    string         `json:"algorithm"`
	Preprocessor string         `json:"preprocessor"`
	Matches      []domain.Match `json:"matches"`
}

// AlgorithmsResponse is the body returned by GET /algorithms.
type AlgorithmsResponse struct {
	Scorers       []string `json:"scorers"`
	Preprocessors []string `json:"preprocessors"`
	Languages     []string `json:"languages"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

type badRequest struct {
	msg string
}

func (e badRequest) Error() string { return e.msg }

func badRequestf(format string, args ...interface{}) error {
	return badRequest{msg: fmt.Sprintf(format, args...)}
}

// Handler routes and serves the HTTP API.
type Handler struct {
	logger  ports.Logger
	server  config.ServerConfig
	limiter *rate.Limiter

	mu       sync.RWMutex
	defaults config.CompareConfig

	// preprocessors holds Cached preprocessors keyed by the canonical description of
	// what they wrap, so equivalent spellings share one entry.
	preprocessors sync.Map
	cachedCount   atomic.Int32
}

// NewHandler creates a handler using cfg for defaults and limits.
func NewHandler(cfg config.Config, logger ports.Logger) *Handler {
	h := &Handler{
		logger:   logger,
		defaults: cfg.Compare,
		server:   cfg.Server,
	}
	if cfg.Server.RateLimit > 0 {
		burst := cfg.Server.RateBurst
		if burst <= 0 {
			burst = max(1, int(cfg.Server.RateLimit))
		}
		h.limiter = rate.NewLimiter(rate.Limit(cfg.Server.RateLimit), burst)
	}
	return h
}

// SetDefaults replaces the algorithm defaults used when a request names none.
// In-flight requests keep the defaults they started with.
func (h *Handler) SetDefaults(cc config.CompareConfig) {
	h.mu.Lock()
	h.defaults = cc
	h.mu.Unlock()
	h.logger.Info("Compare defaults updated",
		"algorithm", cc.Algorithm,
		"preprocessor", cc.Preprocessor,
		"language", cc.Language,
	)
}

// Defaults returns the current algorithm defaults.
func (h *Handler) Defaults() config.CompareConfig {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.defaults
}

// HandleRequest is the fasthttp request handler.
func (h *Handler) HandleRequest(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	reqID := string(ctx.Request.Header.Peek(RequestIDHeader))
	if reqID == "" {
		reqID = uuid.New().String()
	}

	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "FuzzyCompareServer")
	ctx.Response.Header.Set(RequestIDHeader, reqID)

	path := string(ctx.Path())
	switch {
	case path != "/health" && h.limiter != nil && !h.limiter.Allow():
		ctx.SetStatusCode(fasthttp.StatusTooManyRequests)
		h.writeJSONError(ctx, "Too many requests")
	case path == "/health":
		h.handleHealthCheck(ctx)
	case path == "/algorithms":
		h.handleAlgorithms(ctx)
	case path == "/compare":
		h.handleCompare(ctx)
	case path == "/extract":
		h.handleExtract(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		h.writeJSONError(ctx, "Not found")
	}

	h.logger.Info("Request processed",
		"request_id", reqID,
		"method", string(ctx.Method()),
		"path", path,
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", time.Since(startTime),
	)
}

func (h *Handler) handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	h.writeJSONResponse(ctx, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) handleAlgorithms(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		h.writeJSONError(ctx, "Method not allowed")
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	h.writeJSONResponse(ctx, AlgorithmsResponse{
		Scorers:       fuzzy.Names(),
		Preprocessors: preprocess.Names(),
		Languages:     preprocess.StemLanguages(),
	})
}

func (h *Handler) handleCompare(ctx *fasthttp.RequestCtx) {
	body, ok := h.postBody(ctx)
	if !ok {
		return
	}

	s1 := body.Get("s1")
	s2 := body.Get("s2")
	if s1.Type != gjson.String || s2.Type != gjson.String {
		h.fail(ctx, badRequestf("Both s1 and s2 must be strings"))
		return
	}
	if err := h.checkLength("s1", s1.String()); err != nil {
		h.fail(ctx, err)
		return
	}
	if err := h.checkLength("s2", s2.String()); err != nil {
		h.fail(ctx, err)
		return
	}

	name, algo, err := h.algorithm(body, h.Defaults())
	if err != nil {
		h.fail(ctx, err)
		return
	}

	score := algo.Compare(s1.String(), s2.String())

	ctx.SetStatusCode(fasthttp.StatusOK)
	h.writeJSONResponse(ctx, CompareResponse{
		Algorithm:      name,
		Preprocessor:   preprocess.Describe(algo.Preprocessor()),
		Score:          score,
		HigherIsBetter: fuzzy.HigherIsBetter(name),
	})
}

func (h *Handler) handleExtract(ctx *fasthttp.RequestCtx) {
	body, ok := h.postBody(ctx)
	if !ok {
		return
	}

	query := body.Get("query")
	if query.Type != gjson.String {
		h.fail(ctx, badRequestf("query must be a string"))
		return
	}
	if err := h.checkLength("query", query.String()); err != nil {
		h.fail(ctx, err)
		return
	}
	rawChoices := body.Get("choices")
	if !rawChoices.IsArray() {
		h.fail(ctx, badRequestf("choices must be an array of strings"))
		return
	}
	items := rawChoices.Array()
	if len(items) > h.server.MaxChoices {
		h.fail(ctx, badRequestf("too many choices: %d > %d", len(items), h.server.MaxChoices))
		return
	}
	choices := make([]string, len(items))
	for i, item := range items {
		if item.Type != gjson.String {
			h.fail(ctx, badRequestf("choices[%d] must be a string", i))
			return
		}
		choices[i] = item.String()
		if err := h.checkLength(fmt.Sprintf("choices[%d]", i), choices[i]); err != nil {
			h.fail(ctx, err)
			return
		}
	}

	defaults := h.Defaults()
	name, algo, err := h.algorithm(body, defaults)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	cfg := extract.Config{
		HigherIsBetter: fuzzy.HigherIsBetter(name),
		Workers:        defaults.Workers,
	}
	if cutoff := body.Get("cutoff"); cutoff.Exists() {
		if cutoff.Type != gjson.Number {
			h.fail(ctx, badRequestf("cutoff must be a number"))
			return
		}
		cfg.Cutoff, cfg.HasCutoff = int(cutoff.Int()), true
	}
	limit := defaults.Limit
	if l := body.Get("limit"); l.Exists() {
		if l.Type != gjson.Number {
			h.fail(ctx, badRequestf("limit must be a number"))
			return
		}
		limit = int(l.Int())
	}

	extractor, err := extract.New(algo, cfg, h.logger)
	if err != nil {
		h.fail(ctx, badRequestf("%v", err))
		return
	}

	c, cancel := context.WithTimeout(context.Background(), h.requestTimeout())
	defer cancel()

	matches, err := extractor.Top(c, query.String(), choices, limit)
	if err != nil {
		h.logger.Error("Extraction failed", "error", err)
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
		h.writeJSONError(ctx, "Extraction did not finish in time")
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	h.writeJSONResponse(ctx, ExtractResponse{
		Algorithm:    name,
		Preprocessor: preprocess.Describe(algo.Preprocessor()),
		Matches:      matches,
	})
}

// postBody enforces POST and a valid JSON object body.
func (h *Handler) postBody(ctx *fasthttp.RequestCtx) (gjson.Result, bool) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		h.writeJSONError(ctx, "Method not allowed")
		return gjson.Result{}, false
	}
	raw := ctx.PostBody()
	if !gjson.ValidBytes(raw) {
		h.fail(ctx, badRequestf("Invalid request: body is not valid JSON"))
		return gjson.Result{}, false
	}
	body := gjson.ParseBytes(raw)
	if !body.IsObject() {
		h.fail(ctx, badRequestf("Invalid request: body must be a JSON object"))
		return gjson.Result{}, false
	}
	return body, true
}

// checkLength rejects inputs longer than max_input_runes. The partial scorers grow
// quadratically with input length.
func (h *Handler) checkLength(field, value string) error {
	limit := h.server.MaxInputRunes
	if limit <= 0 || len(value) <= limit {
		return nil
	}
	if n := utf8.RuneCountInString(value); n > limit {
		return badRequestf("%s is too long: %d runes > %d", field, n, limit)
	}
	return nil
}

// stringField returns the string at key, fallback when it is absent.
func stringField(body gjson.Result, key, fallback string) (string, error) {
	v := body.Get(key)
	if !v.Exists() {
		return fallback, nil
	}
	if v.Type != gjson.String {
		return "", badRequestf("%s must be a string", key)
	}
	return v.String(), nil
}

// algorithm builds the Algorithm named by the request, falling back to the configured defaults.
func (h *Handler) algorithm(body gjson.Result, defaults config.CompareConfig) (string, *algorithm.Algorithm, error) {
	name, err := stringField(body, "algorithm", defaults.Algorithm)
	if err != nil {
		return "", nil, err
	}
	scorer, err := fuzzy.ByName(name)
	if err != nil {
		return "", nil, badRequestf("%v", err)
	}

	p, err := h.preprocessor(body, defaults)
	if err != nil {
		return "", nil, err
	}

	algo := algorithm.NewWithPreprocessor(scorer, p).WithLogger(h.logger)
	return fuzzy.NameOf(scorer), algo, nil
}

func (h *Handler) preprocessor(body gjson.Result, defaults config.CompareConfig) (ports.Preprocessor, error) {
	name, err := stringField(body, "preprocessor", defaults.Preprocessor)
	if err != nil {
		return nil, err
	}
	language, err := stringField(body, "language", defaults.Language)
	if err != nil {
		return nil, err
	}

	p, err := preprocess.ByName(name, preprocess.Options{Language: language})
	if err != nil {
		return nil, badRequestf("%v", err)
	}
	if !defaults.Cache || p == preprocess.NoOp {
		return p, nil
	}

	key := preprocess.Describe(p)
	if cached, ok := h.preprocessors.Load(key); ok {
		return cached.(ports.Preprocessor), nil
	}
	if h.cachedCount.Load() >= maxCachedPreprocessors {
		h.logger.Debug("Preprocessor cache full, serving uncached", "preprocessor", key)
		return p, nil
	}
	actual, loaded := h.preprocessors.LoadOrStore(key, preprocess.NewCached(p, preprocess.DefaultCacheShards))
	if !loaded {
		h.cachedCount.Add(1)
	}
	return actual.(ports.Preprocessor), nil
}

func (h *Handler) requestTimeout() time.Duration {
	if h.server.RequestTimeout.Duration > 0 {
		return h.server.RequestTimeout.Duration
	}
	return 30 * time.Second
}

func (h *Handler) fail(ctx *fasthttp.RequestCtx, err error) {
	var br badRequest
	if errors.As(err, &br) {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		h.writeJSONError(ctx, br.msg)
		return
	}
	h.logger.Error("Request failed", "error", err)
	ctx.SetStatusCode(fasthttp.StatusInternalServerError)
	h.writeJSONError(ctx, "Internal server error")
}

// writeJSONResponse writes a JSON response to the context
func (h *Handler) writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		h.logger.Error("Error marshaling JSON response", "error", err)
		h.writeJSONError(ctx, "Internal server error")
		return
	}

	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func (h *Handler) writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		h.logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}

	ctx.SetBody(response)
}
