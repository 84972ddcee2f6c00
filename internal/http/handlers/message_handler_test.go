package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/politely-failed/internal/domain"
	"github.com/tbourn/politely-failed/internal/services"
)

// ---------- test plumbing ----------

// memCatalog is an in-memory services.Catalog.
type memCatalog struct {
	db  *domain.MessageDatabase
	err error
}

func (m memCatalog) Database(context.Context) (*domain.MessageDatabase, error) {
	return m.db, m.err
}

func (m memCatalog) MessageCount(context.Context) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.db.Count(), nil
}

func testDB() *domain.MessageDatabase {
	db := &domain.MessageDatabase{Version: "1.0.0", Categories: map[domain.Category]domain.ToneMessages{}}
	for _, c := range domain.Categories() {
		db.Categories[c] = domain.ToneMessages{}
		for _, t := range domain.Tones() {
			db.Categories[c][t] = []string{string(c) + "/" + string(t) + "/0", string(c) + "/" + string(t) + "/1"}
		}
	}
	db.Categories[domain.CategoryAuth][domain.ToneCasual] = []string{}
	return db
}

// newRouter wires the message routes over svc with a fixed clock.
func newRouter(t *testing.T, svc MessageService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	pinNow(t, time.Date(2025, 1, 2, 3, 4, 5, 678_000_000, time.UTC))

	h := New(svc)
	r := gin.New()
	r.GET("/health", h.Health)
	r.GET("/categories", h.Categories)
	r.GET("/messages/random", h.RandomMessage)
	r.GET("/messages", h.ListMessages)
	return r
}

func realService(cat services.Catalog) *services.MessageService {
	svc := services.NewMessageService(cat)
	svc.IntN = func(int) int { return 1 }
	return svc
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("json: %v (%s)", err, w.Body.String())
	}
	return v
}

// ---------- validation ----------

func TestValidation_FirstFailureWins(t *testing.T) {
	r := newRouter(t, realService(memCatalog{db: testDB()}))

	cases := []struct {
		name, target, want string
	}{
		{"no params", "/messages/random", "Category is required"},
		{"empty category", "/messages/random?category=&tone=casual", "Category is required"},
		{"bad category and missing tone", "/messages/random?category=nope", "Invalid category"},
		{"case sensitive", "/messages/random?category=Network&tone=casual", "Invalid category"},
		{"missing tone", "/messages/random?category=network", "Tone is required"},
		{"bad tone and bad format", "/messages/random?category=network&tone=angry&format=xml", "Invalid tone"},
		{"bad format", "/messages/random?category=network&tone=casual&format=xml", "Format must be either json or text"},
		{"empty format", "/messages/random?category=network&tone=casual&format=", "Format must be either json or text"},
		{"list missing category", "/messages?tone=casual", "Category is required"},
		{"list bad tone", "/messages?category=auth&tone=TEXT", "Invalid tone"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := get(r, tc.target)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d; want 400 (%s)", w.Code, w.Body.String())
			}
			resp := decode[ErrorResponse](t, w)
			if resp.Message != tc.want || resp.Error != "Validation Error" || resp.Code != ErrCodeValidation {
				t.Fatalf("body = %+v; want message %q", resp, tc.want)
			}
			if resp.Timestamp != "2025-01-02T03:04:05.678Z" {
				t.Fatalf("timestamp = %q", resp.Timestamp)
			}
		})
	}
}

func TestListMessages_IgnoresFormat(t *testing.T) {
	r := newRouter(t, realService(memCatalog{db: testDB()}))
	w := get(r, "/messages?category=network&tone=casual&format=xml")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; format is not validated on the list endpoint", w.Code)
	}
}

// ---------- random ----------

func TestRandomMessage_JSON(t *testing.T) {
	r := newRouter(t, realService(memCatalog{db: testDB()}))

	for _, target := range []string{
		"/messages/random?category=database&tone=humorous",
		"/messages/random?category=database&tone=humorous&format=json",
	} {
		w := get(r, target)
		if w.Code != http.StatusOK {
			t.Fatalf("%s status = %d", target, w.Code)
		}
		got := decode[RandomMessageResponse](t, w)
		want := RandomMessageResponse{
			Message:   "database/humorous/1",
			Category:  "database",
			Tone:      "humorous",
			Timestamp: "2025-01-02T03:04:05.678Z",
		}
		if got != want {
			t.Fatalf("%s body = %+v; want %+v", target, got, want)
		}
	}
}

func TestRandomMessage_Text(t *testing.T) {
	r := newRouter(t, realService(memCatalog{db: testDB()}))

	w := get(r, "/messages/random?category=rate_limit&tone=professional&format=text")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Fatalf("content-type = %q", ct)
	}
	if w.Body.String() != "rate_limit/professional/1" {
		t.Fatalf("body = %q", w.Body.String())
	}
}

func TestRandomMessage_EmptyListIs500(t *testing.T) {
	r := newRouter(t, realService(memCatalog{db: testDB()}))

	w := get(r, "/messages/random?category=auth&tone=casual")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	resp := decode[ErrorResponse](t, w)
	if resp.Code != ErrCodeNoMessages || resp.Error != "Internal Server Error" {
		t.Fatalf("body = %+v", resp)
	}
	if resp.Message != "No messages found for category: auth, tone: casual" {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestRandomMessage_StoreFailure(t *testing.T) {
	r := newRouter(t, realService(memCatalog{err: errors.New("failed to load messages: boom")}))

	w := get(r, "/messages/random?category=network&tone=casual&format=text")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	resp := decode[ErrorResponse](t, w)
	if resp.Code != ErrCodeInternal || resp.Message != "Failed to load messages: boom" {
		t.Fatalf("body = %+v", resp)
	}
}

// ---------- list ----------

func TestListMessages_OK(t *testing.T) {
	r := newRouter(t, realService(memCatalog{db: testDB()}))

	w := get(r, "/messages?category=validation&tone=casual")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	got := decode[ListMessagesResponse](t, w)
	want := ListMessagesResponse{
		Category: "validation",
		Tone:     "casual",
		Messages: []string{"validation/casual/0", "validation/casual/1"},
		Count:    2,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("body = %+v; want %+v", got, want)
	}
}

func TestListMessages_EmptyIsArray(t *testing.T) {
	r := newRouter(t, realService(memCatalog{db: testDB()}))

	w := get(r, "/messages?category=auth&tone=casual")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	m := decode[map[string]any](t, w)
	msgs, isArray := m["messages"].([]any)
	if !isArray || len(msgs) != 0 || m["count"] != float64(0) {
		t.Fatalf("want empty array and count 0, got %v", m)
	}
}

func TestListMessages_ServiceError(t *testing.T) {
	r := newRouter(t, realService(memCatalog{err: errors.New("disk gone")}))

	w := get(r, "/messages?category=network&tone=casual")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if resp := decode[ErrorResponse](t, w); resp.Message != "Disk gone" {
		t.Fatalf("body = %+v", resp)
	}
}

// ---------- categories & health ----------

func TestCategories(t *testing.T) {
	r := newRouter(t, realService(memCatalog{err: errors.New("never consulted")}))

	w := get(r, "/categories")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	got := decode[CategoriesResponse](t, w)
	want := CategoriesResponse{
		Categories: []string{"network", "auth", "database", "validation", "rate_limit", "server_error", "not_implemented"},
		Tones:      []string{"casual", "professional", "humorous"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("body = %+v", got)
	}
}

func TestHealth(t *testing.T) {
	r := newRouter(t, realService(memCatalog{db: testDB()}))

	w := get(r, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	got := decode[map[string]any](t, w)
	// 21 pairs × 2 messages, minus the emptied auth/casual list.
	if got["status"] != "ok" || got["version"] != "1.0.0" || got["messagesLoaded"] != float64(40) {
		t.Fatalf("body = %v", got)
	}
	if _, has := got["message"]; has {
		t.Fatalf("success body must not carry message: %v", got)
	}
}

func TestHealth_Failure(t *testing.T) {
	r := newRouter(t, realService(memCatalog{err: errors.New("failed to load messages: nope")}))

	w := get(r, "/health")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	got := decode[map[string]any](t, w)
	if got["status"] != "error" || got["message"] != "Failed to load messages: nope" {
		t.Fatalf("body = %v", got)
	}
}
