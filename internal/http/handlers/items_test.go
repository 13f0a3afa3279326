package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Harshit978/ErrorHandler/internal/classify"
	"github.com/Harshit978/ErrorHandler/internal/errdef"
	"github.com/Harshit978/ErrorHandler/internal/http/middleware"
	"github.com/Harshit978/ErrorHandler/internal/status"
)

// newItemAPI mounts the handlers behind a default boundary, mirroring how
// the router wires them.
func newItemAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })
	log.Logger = zerolog.New(&bytes.Buffer{})

	b := middleware.Boundary{
		Classifier: classify.New(errdef.NewRegistry()),
		Status:     status.NewResolver(),
	}

	r := gin.New()
	r.Use(b.Handler())

	h := New()
	r.POST("/items", h.CreateItem)
	r.GET("/items/:id", h.GetItem)
	r.DELETE("/items/:id", h.DeleteItem)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateItem_MalformedBody(t *testing.T) {
	r := newItemAPI(t)

	w := postJSON(t, r, "/items", `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var p struct {
		Code, Message string
	}
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("body: %v\n%s", err, w.Body.String())
	}
	if p.Code != "ERR-001" || p.Message != "Validation failed for field: body." {
		t.Fatalf("payload = %+v", p)
	}
}

func TestCreateItem_DefaultsOwner(t *testing.T) {
	r := newItemAPI(t)

	w := postJSON(t, r, "/items", `{"name":"widget"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var it Item
	if err := json.Unmarshal(w.Body.Bytes(), &it); err != nil {
		t.Fatalf("body: %v", err)
	}
	if it.ID == "" || it.Owner != "anonymous" {
		t.Fatalf("item = %+v", it)
	}
}

func TestGetItem_MissingSurfacesNotFound(t *testing.T) {
	r := newItemAPI(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/ghost", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "item ghost") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestDeleteItem_OwnerEnforced(t *testing.T) {
	r := newItemAPI(t)

	w := postJSON(t, r, "/items", `{"name":"widget","owner":"alice"}`)
	var it Item
	if err := json.Unmarshal(w.Body.Bytes(), &it); err != nil {
		t.Fatalf("create: %v", err)
	}

	// No X-User-ID → denied.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/items/"+it.ID, nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("anonymous delete -> %d", w.Code)
	}

	// Owner succeeds.
	req := httptest.NewRequest(http.MethodDelete, "/items/"+it.ID, nil)
	req.Header.Set("X-User-ID", "alice")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("owner delete -> %d", w.Code)
	}
}
