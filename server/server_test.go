package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jsphweid/musixbooth/db"
	"github.com/jsphweid/musixbooth/model"
	"github.com/jsphweid/musixbooth/tapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(store db.Store) http.Handler {
	return New(tapper.DefaultConfig(), store, []string{"*"}).Handler()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w.Result()
}

func decodeBody[A any](t *testing.T, resp *http.Response) A {
	t.Helper()
	var v A
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestMatchCMajorTriad(t *testing.T) {
	resp := do(t, newTestServer(nil), http.MethodPost, "/scales/match", model.MatchRequestBody{Notes: []int{7, 4, 0, 4}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))

	res := decodeBody[model.MatchResponse](t, resp)
	assert.Equal(t, []int{0, 4, 7}, res.Notes)
	require.Len(t, res.Matches, 10)
	assert.Equal(t, "C Major", res.Matches[0].Name)
	assert.Equal(t, []int{2, 5, 9, 11}, res.Matches[0].Missing)
	assert.Equal(t, []int{}, res.Matches[0].Extra)
}

func TestMatchWithRoot(t *testing.T) {
	root := 9
	resp := do(t, newTestServer(nil), http.MethodPost, "/scales/match", model.MatchRequestBody{Notes: []int{0, 4, 7}, Root: &root})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decodeBody[model.MatchResponse](t, resp)
	require.NotEmpty(t, res.Matches)
	for _, m := range res.Matches {
		assert.Equal(t, 9, m.Root)
	}
}

func TestMatchRejectsBadNotes(t *testing.T) {
	h := newTestServer(nil)
	for _, notes := range [][]int{{}, {12}, {-1, 3}} {
		resp := do(t, h, http.MethodPost, "/scales/match", model.MatchRequestBody{Notes: notes})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "%v", notes)
		assert.NotEmpty(t, decodeBody[model.ErrorResponse](t, resp).Error)
	}

	req := httptest.NewRequest(http.MethodPost, "/scales/match", bytes.NewReader([]byte("{")))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTempo(t *testing.T) {
	h := newTestServer(nil)
	resp := do(t, h, http.MethodPost, "/tempo", model.TempoRequestBody{Taps: []int64{0, 500, 1000, 1500}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, model.TempoState{BPM: 120, Defined: true, Taps: 4}, decodeBody[model.TempoState](t, resp))

	// a gap past the reset delay starts over
	resp = do(t, h, http.MethodPost, "/tempo", model.TempoRequestBody{Taps: []int64{0, 500, 4000}})
	assert.Equal(t, model.TempoState{Taps: 1}, decodeBody[model.TempoState](t, resp))
}

func TestCatalogAndNotes(t *testing.T) {
	h := newTestServer(nil)
	scales := decodeBody[[]model.ScaleTemplate](t, do(t, h, http.MethodGet, "/scales", nil))
	assert.Len(t, scales, 15)
	assert.Equal(t, "Major", scales[0].Name)

	notes := decodeBody[[]string](t, do(t, h, http.MethodGet, "/notes", nil))
	assert.Equal(t, "C#", notes[1])

	resp := do(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLastTempo(t *testing.T) {
	h := newTestServer(db.NewMemoryStore())

	resp := do(t, h, http.MethodGet, "/tempo/last", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, h, http.MethodPut, "/tempo/last", model.LastTempoBody{BPM: 5})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, h, http.MethodPut, "/tempo/last", model.LastTempoBody{BPM: 128})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, h, http.MethodGet, "/tempo/last", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 128, decodeBody[model.LastTempoBody](t, resp).BPM)
}

func TestLastTempoWithoutStore(t *testing.T) {
	resp := do(t, newTestServer(nil), http.MethodGet, "/tempo/last", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestDelay(t *testing.T) {
	store := db.NewMemoryStore()
	h := newTestServer(store)

	res := decodeBody[model.DelayResponse](t, do(t, h, http.MethodGet, "/delay", nil))
	assert.Equal(t, 120.0, res.BPM)
	assert.Equal(t, 500.0, res.Delays[2].StraightMs)

	store.SaveTempo(context.Background(), 60)
	res = decodeBody[model.DelayResponse](t, do(t, h, http.MethodGet, "/delay", nil))
	assert.Equal(t, 60.0, res.BPM)

	res = decodeBody[model.DelayResponse](t, do(t, h, http.MethodGet, "/delay?bpm=90", nil))
	assert.Equal(t, 90.0, res.BPM)
	assert.Len(t, res.Reverbs, 4)

	resp := do(t, h, http.MethodGet, "/delay?bpm=0", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = do(t, h, http.MethodGet, "/delay?bpm=fast", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	h := New(tapper.DefaultConfig(), nil, []string{"http://app.test"}).Handler()
	req := httptest.NewRequest(http.MethodOptions, "/scales/match", nil)
	req.Header.Set("Origin", "http://app.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "http://app.test", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	newTestServer(nil).ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
