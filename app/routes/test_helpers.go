package routes

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"postboard/app/middleware"
	"postboard/app/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

// setupTestStore shares one in-memory database per test; the test owns db
// and the store only borrows it.
func setupTestStore(t *testing.T) *repositories.BadgerStore {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return repositories.NewBadgerStore(db)
}

func setupTestRouter(t *testing.T, metrics *middleware.Metrics) (http.Handler, *repositories.BadgerStore) {
	t.Helper()
	store := setupTestStore(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return SetupRoutes(store, logger, metrics), store
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// fieldJSON returns the raw JSON of one top-level field of the response.
func fieldJSON(t *testing.T, w *httptest.ResponseRecorder, name string) string {
	t.Helper()
	fields := decode[map[string]json.RawMessage](t, w)
	raw, ok := fields[name]
	require.True(t, ok, "missing field %q", name)
	return string(raw)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
