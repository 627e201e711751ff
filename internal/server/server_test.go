package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/avel9n/privacylens/internal/app"
	"github.com/avel9n/privacylens/internal/server"
	"github.com/avel9n/privacylens/internal/testutil"
)

const extensionClient = "privacy-inspector"

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	appCfg := app.DefaultConfig()
	appCfg.StorageRoot = t.TempDir()
	appCfg.ExtensionHeader = extensionClient

	s, err := server.NewServer(server.Config{
		ListenAddr: ":0",
		AppConfig:  appCfg,
		Logger:     testutil.NewDummyLogger(),
	})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func doJSON(t *testing.T, s http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Extension-Client", extensionClient)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode JSON response: %v (body: %s)", err, rec.Body.String())
	}
}

const sampleAnalyzeBody = `{
	"page_url": "https://example.com/",
	"page_title": "Example",
	"network_requests": [
		{"url": "https://example.com/app.js"},
		{"url": "https://doubleclick.net/pixel"}
	],
	"scripts": [{"domain": "doubleclick.net"}],
	"cookies": [{"domain": ".doubleclick.net", "expiration_date": 1893456000}]
}`

// ─── CORS / preflight ─────────────────────────────────────────────────

func TestServer_CORS_HeaderPresent(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "GET", "/health", "")

	origin := rec.Header().Get("Access-Control-Allow-Origin")
	if origin != "*" {
		t.Errorf("expected CORS origin *, got %q", origin)
	}
}

func TestServer_OptionsPreflight(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "OPTIONS", "/analyze", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for OPTIONS, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("expected Allow-Methods header on OPTIONS")
	}
}

// ─── Analyze ──────────────────────────────────────────────────────────

func TestServer_Analyze(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/analyze", sampleAnalyzeBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var rep map[string]any
	decodeJSON(t, rec, &rep)
	if rep["page_domain"] != "example.com" {
		t.Errorf("unexpected page_domain: %v", rep["page_domain"])
	}
	if rep["id"] == "" || rep["id"] == nil {
		t.Error("expected a persisted analysis id")
	}
	if score, ok := rep["privacy_score"].(float64); !ok || score >= 100 {
		t.Errorf("expected a penalized score, got %v", rep["privacy_score"])
	}
}

func TestServer_Analyze_InvalidJSON(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/analyze", `{invalid}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestServer_Analyze_MissingPage(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/analyze", `{"cookies":[]}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without page_url or page_domain, got %d", rec.Code)
	}
}

func TestServer_Analyze_MissingExtensionHeader(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	req := httptest.NewRequest("POST", "/analyze", strings.NewReader(sampleAnalyzeBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without X-Extension-Client, got %d", rec.Code)
	}
}

// ─── Domain scoring ───────────────────────────────────────────────────

func TestServer_ScoreDomains(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/domains/score", `{"domains":[{"domain":"doubleclick.net","count":3}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var summary map[string]any
	decodeJSON(t, rec, &summary)
	if summary["total_domains"] != float64(1) {
		t.Errorf("unexpected total_domains: %v", summary["total_domains"])
	}
}

func TestServer_ScoreDomains_Empty(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/domains/score", `{"domains":[]}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty domains, got %d", rec.Code)
	}
}

// ─── History ──────────────────────────────────────────────────────────

func TestServer_ListAnalyses(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	doJSON(t, s, "POST", "/analyze", sampleAnalyzeBody)

	rec := doJSON(t, s, "GET", "/analyses?domain=example.com", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var reports []map[string]any
	decodeJSON(t, rec, &reports)
	if len(reports) != 1 {
		t.Errorf("expected 1 analysis, got %d", len(reports))
	}
}

func TestServer_GetAnalysis_NotFound(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "GET", "/analyses/nonexistent", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestServer_CompareAnalyses(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	var base, head map[string]any
	decodeJSON(t, doJSON(t, s, "POST", "/analyze", sampleAnalyzeBody), &base)
	decodeJSON(t, doJSON(t, s, "POST", "/analyze", `{"page_url":"https://example.com/"}`), &head)

	rec := doJSON(t, s, "GET", "/analyses/compare?base="+base["id"].(string)+"&head="+head["id"].(string), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var diff map[string]any
	decodeJSON(t, rec, &diff)
	if diff["base_id"] != base["id"] {
		t.Errorf("unexpected base_id: %v", diff["base_id"])
	}
}

func TestServer_CompareAnalyses_MissingParams(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "GET", "/analyses/compare?base=only", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

// ─── Metadata ─────────────────────────────────────────────────────────

func TestServer_ListTrackers(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "GET", "/trackers", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]any
	decodeJSON(t, rec, &body)
	if count, ok := body["count"].(float64); !ok || count == 0 {
		t.Errorf("expected a non-empty tracker list, got %v", body["count"])
	}
}

func TestServer_SwaggerDoc(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "GET", "/swagger/doc.json", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var spec map[string]any
	decodeJSON(t, rec, &spec)
	info, _ := spec["info"].(map[string]any)
	if info == nil || info["title"] != "PrivacyLens API" {
		t.Errorf("unexpected spec info: %v", spec["info"])
	}
	if paths, _ := spec["paths"].(map[string]any); paths["/analyze"] == nil {
		t.Error("spec is missing the /analyze path")
	}
}

func TestServer_Health(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := doJSON(t, s, "GET", "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]any
	decodeJSON(t, rec, &body)
	if body["status"] != "ok" {
		t.Errorf("unexpected status: %v", body["status"])
	}
}

// ─── WebSocket ────────────────────────────────────────────────────────

func TestServer_AnalyzeWS(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	srv := httptest.NewServer(s)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/analyze?page_url=https://example.com/"
	header := http.Header{"X-Extension-Client": []string{extensionClient}}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		t.Fatalf("dialing websocket: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(map[string]any{"kind": "request", "url": "https://doubleclick.net/pixel"}); err != nil {
		t.Fatalf("writing observation: %v", err)
	}
	var verdict map[string]any
	if err := conn.ReadJSON(&verdict); err != nil {
		t.Fatalf("reading verdict: %v", err)
	}
	if verdict["third_party"] != true || verdict["known_tracker"] != true {
		t.Errorf("unexpected verdict: %v", verdict)
	}

	if err := conn.WriteJSON(map[string]any{"kind": "finish"}); err != nil {
		t.Fatalf("writing finish: %v", err)
	}
	var rep map[string]any
	if err := conn.ReadJSON(&rep); err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if rep["page_domain"] != "example.com" {
		t.Errorf("unexpected page_domain: %v", rep["page_domain"])
	}
	if rep["id"] == "" || rep["id"] == nil {
		t.Error("expected the finished session to persist an analysis")
	}
}
