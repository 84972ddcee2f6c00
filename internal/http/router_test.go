package httpapi

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/politely-failed/internal/config"
	"github.com/tbourn/politely-failed/internal/domain"
	"github.com/tbourn/politely-failed/internal/repo"
)

// --- test catalog helpers ---

// writeCatalog writes a JSON catalog with two messages per pair and returns
// a Store over it.
func writeCatalog(t *testing.T) *repo.Store {
	t.Helper()
	cats := map[string]map[string][]string{}
	for _, c := range domain.Categories() {
		cats[string(c)] = map[string][]string{}
		for _, tn := range domain.Tones() {
			cats[string(c)][string(tn)] = []string{
				"first " + string(c) + " " + string(tn),
				"second " + string(c) + " " + string(tn),
			}
		}
	}
	b, err := json.Marshal(map[string]any{"version": "2.1.0", "categories": cats})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "messages.json")
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return repo.NewStore(repo.OpenSource(path))
}

func testConfig() config.Config {
	return config.Config{
		APIBasePath:  "/api/v1",
		MaxBodyBytes: 1 << 20,
		CORS:         config.CORSConfig{AllowedOrigins: nil}, // triggers AllowAllOrigins branch
		Security:     config.SecurityConfig{EnableHSTS: false},
		OTEL:         config.OTELConfig{ServiceName: "test-svc"},
	}
}

func newEngine(t *testing.T, store *repo.Store, cfg config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, store, cfg)
	return r
}

func do(r http.Handler, method, target string, hdr map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

// --- tests ---

func TestRegisterRoutes_Health_Categories_CORSAllowAll(t *testing.T) {
	r := newEngine(t, writeCatalog(t), testConfig())

	w := do(r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	var health map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil {
		t.Fatalf("json: %v", err)
	}
	if health["status"] != "ok" || health["version"] != "2.1.0" || health["messagesLoaded"] != float64(42) {
		t.Fatalf("health = %v", health)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header")
	}

	w = do(r, http.MethodGet, "/api/v1/categories", map[string]string{"Origin": "http://client.test"})
	if w.Code != http.StatusOK {
		t.Fatalf("GET /categories = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("AllowAllOrigins expected '*', got %q", got)
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" || w.Header().Get("Content-Security-Policy") == "" {
		t.Fatalf("security headers missing: %#v", w.Header())
	}
	if !strings.Contains(w.Body.String(), `"rate_limit"`) {
		t.Fatalf("categories body = %s", w.Body.String())
	}
}

func TestRegisterRoutes_CORSWithOrigins(t *testing.T) {
	cfg := testConfig()
	cfg.CORS.AllowedOrigins = []string{"http://allowed.test"}
	r := newEngine(t, writeCatalog(t), cfg)

	w := do(r, http.MethodGet, "/health", map[string]string{"Origin": "http://allowed.test"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://allowed.test" {
		t.Fatalf("expected ACAO echo, got %q", got)
	}

	w = do(r, http.MethodGet, "/health", map[string]string{"Origin": "http://evil.test"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("disallowed origin = %d; want 403", w.Code)
	}

	// Preflight is answered by CORS even though no OPTIONS route exists.
	w = do(r, http.MethodOptions, "/api/v1/messages", map[string]string{
		"Origin":                        "http://allowed.test",
		"Access-Control-Request-Method": "GET",
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight = %d; want 204", w.Code)
	}
}

func TestRegisterRoutes_Messages(t *testing.T) {
	r := newEngine(t, writeCatalog(t), testConfig())

	w := do(r, http.MethodGet, "/api/v1/messages?category=database&tone=professional", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /messages = %d %s", w.Code, w.Body.String())
	}
	var list struct {
		Messages []string `json:"messages"`
		Count    int      `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("json: %v", err)
	}
	if list.Count != 2 || list.Messages[0] != "first database professional" {
		t.Fatalf("list = %+v", list)
	}

	w = do(r, http.MethodGet, "/api/v1/messages/random?category=auth&tone=humorous&format=text", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /messages/random = %d", w.Code)
	}
	if body := w.Body.String(); body != "first auth humorous" && body != "second auth humorous" {
		t.Fatalf("random text = %q", body)
	}

	w = do(r, http.MethodGet, "/api/v1/messages/random?tone=humorous", nil)
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "Category is required") {
		t.Fatalf("missing category = %d %s", w.Code, w.Body.String())
	}
}

func TestRegisterRoutes_NotFound(t *testing.T) {
	r := newEngine(t, writeCatalog(t), testConfig())

	cases := []struct {
		method, target, want string
	}{
		{http.MethodGet, "/nope?x=1", "Cannot GET /nope"},
		{http.MethodPost, "/api/v1/messages", "Cannot POST /api/v1/messages"},
		{http.MethodDelete, "/health", "Cannot DELETE /health"},
	}
	for _, tc := range cases {
		w := do(r, tc.method, tc.target, nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("%s %s = %d; want 404", tc.method, tc.target, w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("json: %v", err)
		}
		if body["error"] != "Not Found" || body["code"] != "not_found" || body["message"] != tc.want {
			t.Fatalf("%s %s body = %v", tc.method, tc.target, body)
		}
		if rid, _ := body["request_id"].(string); rid == "" {
			t.Fatalf("envelope missing request_id: %v", body)
		}
		if ts, _ := body["timestamp"].(string); ts == "" {
			t.Fatalf("envelope incomplete: %v", body)
		}
	}
}

func TestRegisterRoutes_HeadMatchesGet(t *testing.T) {
	r := newEngine(t, writeCatalog(t), testConfig())

	for _, target := range []string{
		"/health",
		"/api/v1/categories",
		"/api/v1/messages?category=auth&tone=casual",
		"/api/v1/messages/random?category=auth&tone=casual",
	} {
		get := do(r, http.MethodGet, target, nil)
		head := do(r, http.MethodHead, target, nil)
		if head.Code != http.StatusOK || head.Code != get.Code {
			t.Fatalf("HEAD %s = %d; GET = %d", target, head.Code, get.Code)
		}
		if got, want := head.Header().Get("Content-Type"), get.Header().Get("Content-Type"); got != want {
			t.Fatalf("HEAD %s content-type = %q; want %q", target, got, want)
		}
	}

	w := do(r, http.MethodHead, "/api/v1/messages/random?tone=casual", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("HEAD without category = %d; want 400", w.Code)
	}
}

func TestRegisterRoutes_TrailingSlashServedInPlace(t *testing.T) {
	r := newEngine(t, writeCatalog(t), testConfig())

	cases := []struct {
		target string
		want   int
	}{
		{"/health/", http.StatusOK},
		{"/api/v1/categories/", http.StatusOK},
		{"/api/v1/messages/?category=auth&tone=casual", http.StatusOK},
		{"/api/v1/messages/random/?category=auth&tone=casual", http.StatusOK},
		{"/nope/", http.StatusNotFound},
	}
	for _, tc := range cases {
		w := do(r, http.MethodGet, tc.target, nil)
		if w.Code != tc.want {
			t.Fatalf("GET %s = %d; want %d", tc.target, w.Code, tc.want)
		}
		if loc := w.Header().Get("Location"); loc != "" {
			t.Fatalf("GET %s redirected to %q", tc.target, loc)
		}
	}

	w := do(r, http.MethodGet, "/api/v1/messages/?category=auth&tone=casual", nil)
	var list struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil || list.Count != 2 {
		t.Fatalf("list via trailing slash = %s (%v)", w.Body.String(), err)
	}
}

func TestRegisterRoutes_StoreFailure(t *testing.T) {
	store := repo.NewStore(repo.OpenSource(filepath.Join(t.TempDir(), "missing.json")))
	r := newEngine(t, store, testConfig())

	w := do(r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusInternalServerError || !strings.Contains(w.Body.String(), `"status":"error"`) {
		t.Fatalf("health on missing file = %d %s", w.Code, w.Body.String())
	}

	// Categories are static and do not need the store.
	w = do(r, http.MethodGet, "/api/v1/categories", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("categories = %d", w.Code)
	}
}

func TestRegisterRoutes_GzipSkipsMetrics(t *testing.T) {
	r := newEngine(t, writeCatalog(t), testConfig())
	gz := map[string]string{"Accept-Encoding": "gzip"}

	w := do(r, http.MethodGet, "/api/v1/messages?category=network&tone=casual", gz)
	if w.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip response, headers=%#v", w.Header())
	}
	zr, err := gzip.NewReader(w.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	plain, _ := io.ReadAll(zr)
	if !bytes.Contains(plain, []byte("first network casual")) {
		t.Fatalf("decompressed body = %s", plain)
	}

	// promhttp compresses on its own; one gunzip must yield the exposition.
	w = do(r, http.MethodGet, "/metrics", gz)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /metrics = %d", w.Code)
	}
	body := w.Body.Bytes()
	if w.Header().Get("Content-Encoding") == "gzip" {
		zr, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			t.Fatalf("gzip reader: %v", err)
		}
		body, _ = io.ReadAll(zr)
	}
	if !bytes.Contains(body, []byte("http_requests_total")) {
		t.Fatalf("metrics must be compressed at most once")
	}
}

func TestRegisterRoutes_Swagger(t *testing.T) {
	cfg := testConfig()
	r := newEngine(t, writeCatalog(t), cfg)
	if w := do(r, http.MethodGet, "/swagger/index.html", nil); w.Code != http.StatusNotFound {
		t.Fatalf("swagger disabled = %d; want 404", w.Code)
	}

	cfg.SwaggerEnabled = true
	r = newEngine(t, writeCatalog(t), cfg)
	w := do(r, http.MethodGet, "/swagger/doc.json", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "/messages/random") {
		t.Fatalf("swagger doc = %d", w.Code)
	}
	if w.Header().Get("Content-Security-Policy") != "" {
		t.Fatalf("swagger must be CSP-exempt")
	}
}

func TestPipeline_HSTSOnHTTPS(t *testing.T) {
	cfg := testConfig()
	cfg.Security = config.SecurityConfig{EnableHSTS: true, HSTSMaxAge: time.Hour}
	r := newEngine(t, writeCatalog(t), cfg)

	w := do(r, http.MethodGet, "/health", map[string]string{"X-Forwarded-Proto": "https"})
	if got := w.Header().Get("Strict-Transport-Security"); got != "max-age=3600; includeSubDomains" {
		t.Fatalf("HSTS = %q", got)
	}
}

func Test_limitBody_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// tiny cap to trigger MaxBytesReader
	r.Use(limitBody(10))
	r.POST("/echo", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too big")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("0123456789AB")) // 12 bytes
	r.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 from limitBody, got %d", w.Code)
	}
}

func Test_groupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	groupWithPrefix(r, "/").GET("/one", func(c *gin.Context) { c.String(http.StatusOK, "one") })
	groupWithPrefix(r, "").GET("/two", func(c *gin.Context) { c.String(http.StatusOK, "two") })
	groupWithPrefix(r, "/api").GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for path, want := range map[string]string{"/one": "one", "/two": "two", "/api/ping": "pong"} {
		w := do(r, http.MethodGet, path, nil)
		if w.Code != http.StatusOK || w.Body.String() != want {
			t.Fatalf("GET %s got %d %q", path, w.Code, w.Body.String())
		}
	}
}
