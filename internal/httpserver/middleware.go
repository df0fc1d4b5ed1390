package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordle/apps/go-solver/internal/session"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
)

type contextKey string

var sessionCtxKey = contextKey("session")

// sessionCtx resolves {id} against the store and puts the session on the
// request context. Unknown IDs stop the chain with a JSON 404.
func sessionCtx(st store.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "id")
			sess, err := st.Get(r.Context(), id)
			if err != nil {
				writeErr(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), sessionCtxKey, &sessionRef{ID: id, Session: sess})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type sessionRef struct {
	ID      string
	Session *session.Session
}

func currentSession(r *http.Request) (*sessionRef, error) {
	ref, _ := r.Context().Value(sessionCtxKey).(*sessionRef)
	if ref == nil {
		return nil, errors.New("no session on request")
	}
	return ref, nil
}
