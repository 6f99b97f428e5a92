package http

import (
	"context"
	"net/http"

	"github.com/vadimbarashkov/lilurl-web/internal/models"
	"github.com/vadimbarashkov/lilurl-web/internal/session"
)

type sessionCtxKey struct{}

// sessionCookies binds visitor sessions to a cookie. Sessions are only
// registered once they hold a created URL, so visitors that just read
// pages leave nothing behind in the store.
type sessionCookies struct {
	store  *session.Store
	name   string
	secure bool
}

// resolve puts the visitor's live session, if any, into the request context.
func (sc *sessionCookies) resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(sc.name)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		sess, ok := sc.store.Get(c.Value)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), sessionCtxKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// shorten submits input through the visitor's session. A visitor without
// a live session gets a new one, registered and bound to the cookie only
// when the submission succeeds.
func (sc *sessionCookies) shorten(w http.ResponseWriter, r *http.Request, input string) (*models.DisplayRecord, error) {
	if sess := sessionFrom(r.Context()); sess != nil {
		return sess.Shorten(r.Context(), input)
	}

	sess, err := sc.store.Open()
	if err != nil {
		return nil, err
	}

	rec, err := sess.Shorten(r.Context(), input)
	if err != nil {
		return nil, err
	}

	sc.store.Add(sess)

	http.SetCookie(w, &http.Cookie{
		Name:     sc.name,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   sc.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return rec, nil
}

// sessionFrom returns the session resolved for the request, or nil.
func sessionFrom(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionCtxKey{}).(*session.Session)
	return sess
}

func recentItems(ctx context.Context) []models.DisplayRecord {
	sess := sessionFrom(ctx)
	if sess == nil {
		return []models.DisplayRecord{}
	}
	return sess.Recent.Items()
}
