package httpapi

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietcraft/storefront/internal/catalog"
	"github.com/vietcraft/storefront/internal/logging"
	"github.com/vietcraft/storefront/internal/server/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	st, err := storage.NewFileStore(t.TempDir(), 5, log)
	require.NoError(t, err)
	return New(":0", st, log)
}

func doRequest(t *testing.T, s *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(w, req)
	return w
}

func decodeSnapshot(t *testing.T, w *httptest.ResponseRecorder) catalog.Snapshot {
	t.Helper()
	var snap catalog.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	return snap
}

func TestGetStoreData_ServesDefaultsWhenEmpty(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/store-data", nil)

	require.Equal(t, http.StatusOK, w.Code)
	snap := decodeSnapshot(t, w)
	assert.Equal(t, catalog.DataVersion, snap.DataVersion)
	assert.Equal(t, "vi", snap.Language)
	assert.Equal(t, "light", snap.Theme)
}

func TestPostStoreData_RoundTrip(t *testing.T) {
	s := newTestServer(t)

	snap := catalog.DefaultSnapshot()
	snap.Theme = "dark"
	snap.Products = []catalog.Product{{ID: "p1", Slug: "non-la", Name: "Non La", Price: 12}}
	body, err := json.Marshal(snap)
	require.NoError(t, err)

	w := doRequest(t, s, http.MethodPost, "/api/store-data", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	got := decodeSnapshot(t, doRequest(t, s, http.MethodGet, "/api/store-data", nil))
	assert.Equal(t, "dark", got.Theme)
	require.Len(t, got.Products, 1)
	assert.Equal(t, "non-la", got.Products[0].Slug)
}

func TestPostStoreData_RejectsNonObjectBody(t *testing.T) {
	s := newTestServer(t)

	// seed a known snapshot first
	seed := catalog.DefaultSnapshot()
	seed.Theme = "dark"
	body, err := json.Marshal(seed)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, doRequest(t, s, http.MethodPost, "/api/store-data", body).Code)

	for _, payload := range []string{
		`"just a string"`,
		`[1,2,3]`,
		`null`,
		`42`,
		`{broken`,
		``,
	} {
		w := doRequest(t, s, http.MethodPost, "/api/store-data", []byte(payload))
		assert.Equal(t, http.StatusBadRequest, w.Code, "payload %q", payload)
		assert.Contains(t, w.Body.String(), `"success":false`)
	}

	// canonical document untouched by any of the rejected posts
	got := decodeSnapshot(t, doRequest(t, s, http.MethodGet, "/api/store-data", nil))
	assert.Equal(t, "dark", got.Theme)
}

func TestPostStoreData_NormalizesPayload(t *testing.T) {
	s := newTestServer(t)

	// missing ids, missing slug, string-typed localized price
	payload := []byte(`{
		"dataVersion": 2,
		"products": [
			{"name": "Bamboo Basket", "price": 9,
			 "options": [{"name": "Size", "values": [
				{"value": "large", "localizedPrice": {"vi": "250000", "en": 11}}
			 ]}]}
		]
	}`)

	require.Equal(t, http.StatusOK, doRequest(t, s, http.MethodPost, "/api/store-data", payload).Code)

	got := decodeSnapshot(t, doRequest(t, s, http.MethodGet, "/api/store-data", nil))
	require.Len(t, got.Products, 1)
	p := got.Products[0]
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "bamboo-basket", p.Slug)
	require.Len(t, p.Options, 1)
	require.Len(t, p.Options[0].Values, 1)
	assert.Equal(t, 250000.0, p.Options[0].Values[0].LocalizedPrice["vi"])
	assert.Equal(t, 11.0, p.Options[0].Values[0].LocalizedPrice["en"])
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
