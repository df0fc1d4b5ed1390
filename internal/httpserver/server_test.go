package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
)

// Every word here holds an 'a' and no word repeats a letter.
var dict = []string{"train", "crane", "slate", "plane", "arose", "brave", "grace"}

func newServer(t *testing.T, dictionary []string) http.Handler {
	t.Helper()
	return httpserver.New(store.NewMemoryStore(), dictionary, dictionary, httpserver.Config{}).Router()
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func TestHealth(t *testing.T) {
	rec, out := do(t, newServer(t, dict), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["ok"])
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNotFound(t *testing.T) {
	rec, out := do(t, newServer(t, dict), http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", out["error"])
}

func TestNarrow(t *testing.T) {
	h := newServer(t, dict)

	rec, out := do(t, h, http.MethodPost, "/solver/narrow", `{"rows":[{"word":"crane","pattern":"bgybg"}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.EqualValues(t, 1, out["count"])
	assert.Equal(t, []any{"arose"}, out["candidates"])
	c := out["constraints"].(map[string]any)
	assert.Equal(t, "aer", c["mustContain"])
	assert.Equal(t, "cn", c["excluded"])
	assert.Equal(t, "_r__e", c["pinned"])

	rec, out = do(t, h, http.MethodPost, "/solver/narrow", `{"rows":[],"limit":3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, len(dict), out["count"])
	assert.Len(t, out["candidates"], 3)
}

func TestNarrow_BadInput(t *testing.T) {
	h := newServer(t, dict)

	rec, out := do(t, h, http.MethodPost, "/solver/narrow", `{"rows":[{"word":"crane","pattern":"bgy"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "malformed_row", out["error"])

	rec, out = do(t, h, http.MethodPost, "/solver/narrow", `{"rows":[{"word":"crane","pattern":"bgyqg"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "malformed_row", out["error"])

	rec, out = do(t, h, http.MethodPost, "/solver/narrow", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_json", out["error"])
}

func startSession(t *testing.T, h http.Handler) (id, guess string) {
	t.Helper()
	rec, out := do(t, h, http.MethodPost, "/solver/sessions", `{"seed":7}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "awaiting_feedback", out["state"])
	assert.EqualValues(t, 0, out["turn"])
	id, guess = out["id"].(string), out["guess"].(string)
	require.NotEmpty(t, id)
	require.Contains(t, dict, guess)
	return id, guess
}

func TestSession_Solved(t *testing.T) {
	h := newServer(t, dict)
	id, guess := startSession(t, h)

	rec, out := do(t, h, http.MethodPost, "/solver/sessions/"+id+"/feedback", `{"pattern":"ggggg"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "solved", out["state"])
	assert.Equal(t, guess, out["answer"])
	assert.EqualValues(t, 1, out["turn"])
	rows := out["rows"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, "🟩🟩🟩🟩🟩", rows[0].(map[string]any)["tiles"])

	rec, out = do(t, h, http.MethodPost, "/solver/sessions/"+id+"/feedback", `{"pattern":"ggggg"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "finished", out["error"])

	rec, out = do(t, h, http.MethodGet, "/solver/sessions/"+id, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "solved", out["state"])
}

func TestSession_WrongWordIsOutOfOrder(t *testing.T) {
	h := newServer(t, dict)
	id, guess := startSession(t, h)

	other := "train"
	if guess == other {
		other = "crane"
	}
	rec, out := do(t, h, http.MethodPost, "/solver/sessions/"+id+"/feedback", `{"word":"`+other+`","pattern":"bbbbb"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "out_of_order", out["error"])

	_, out = do(t, h, http.MethodGet, "/solver/sessions/"+id, "")
	assert.Equal(t, "awaiting_feedback", out["state"])
	assert.Equal(t, guess, out["guess"])
}

func TestSession_NoCandidates(t *testing.T) {
	h := newServer(t, dict)
	id, _ := startSession(t, h)

	// all-absent excludes 'a', which every word holds
	rec, out := do(t, h, http.MethodPost, "/solver/sessions/"+id+"/feedback", `{"pattern":"bbbbb"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "no_candidates", out["error"])

	_, out = do(t, h, http.MethodGet, "/solver/sessions/"+id, "")
	assert.Equal(t, "aborted", out["state"])
	assert.NotEmpty(t, out["error"])
}

func TestSession_EmptyDictionary(t *testing.T) {
	rec, out := do(t, newServer(t, nil), http.MethodPost, "/solver/sessions", `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "no_candidates", out["error"])
}

func TestSession_NotFoundAndDelete(t *testing.T) {
	h := newServer(t, dict)

	rec, _ := do(t, h, http.MethodGet, "/solver/sessions/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	id, _ := startSession(t, h)
	rec, _ = do(t, h, http.MethodDelete, "/solver/sessions/"+id, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec, _ = do(t, h, http.MethodGet, "/solver/sessions/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDailySolve(t *testing.T) {
	h := newServer(t, dict)

	rec, out := do(t, h, http.MethodGet, "/daily/solve?date=2024-03-01&seed=1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "2024-03-01", out["date"])
	assert.Contains(t, []any{"solved", "exhausted"}, out["state"])
	assert.NotEmpty(t, out["rows"])

	// same date and seed replay the same game
	_, again := do(t, h, http.MethodGet, "/daily/solve?date=2024-03-01&seed=1", "")
	assert.Equal(t, out, again)

	rec, out = do(t, h, http.MethodGet, "/daily/solve?date=March", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_date", out["error"])
}

func TestSession_BadJSON(t *testing.T) {
	h := newServer(t, dict)

	rec, out := do(t, h, http.MethodPost, "/solver/sessions", `{"seed":"not-a-number","excludeUsed":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bad_json", out["error"])

	// an empty body still starts a session with defaults
	rec, out = do(t, h, http.MethodPost, "/solver/sessions", "")
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "awaiting_feedback", out["state"])
}

func TestDailySolve_RejectedGuess(t *testing.T) {
	// the offline board only accepts zzzzz, so the first guess is refused
	h := httpserver.New(store.NewMemoryStore(), dict, []string{"zzzzz"}, httpserver.Config{}).Router()

	rec, out := do(t, h, http.MethodGet, "/daily/solve?date=2024-03-01&seed=1", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	assert.Equal(t, "rejected_guess", out["error"])
	assert.Equal(t, "aborted", out["state"])
	assert.NotEmpty(t, out["detail"])
}

func TestStart_StopsOnCancel(t *testing.T) {
	srv := httpserver.New(store.NewMemoryStore(), dict, dict, httpserver.Config{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server kept running after cancel")
	}
}

func TestStart_ListenError(t *testing.T) {
	srv := httpserver.New(store.NewMemoryStore(), dict, dict, httpserver.Config{})
	err := srv.Start(context.Background(), "127.0.0.1:-1")
	assert.Error(t, err)
}
