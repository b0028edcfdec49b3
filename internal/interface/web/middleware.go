package web

import (
	"context"
	"net/http"
	"strings"

	"guestgate-service/internal/usecase"
)

const sessionCookie = "gg_session"

type contextKey string

const sessionContextKey contextKey = "session"

// WithSession resolves the device session from the cookie, creating a
// fresh one when missing or expired, and puts it on the request context
func (h *Handlers) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var session *usecase.Session

		if cookie, err := r.Cookie(sessionCookie); err == nil {
			session, _ = h.registry.Get(cookie.Value)
		}
		if session == nil {
			session = h.registry.Create()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    session.ID(),
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionFrom returns the session installed by WithSession
func SessionFrom(ctx context.Context) *usecase.Session {
	session, _ := ctx.Value(sessionContextKey).(*usecase.Session)
	return session
}

// RequireReservation is the route guard for protected views: the
// navigation proceeds only when the session's identity resolves to a
// reservation. Every denial redirects page navigations to the entry
// view with a reason code; API calls get the reason as JSON instead.
func (h *Handlers) RequireReservation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := SessionFrom(r.Context())
		decision := h.guard.Authorize(r.Context(), session)
		if decision.Allowed() {
			next.ServeHTTP(w, r)
			return
		}
		h.deny(w, r, decision)
	})
}

func (h *Handlers) deny(w http.ResponseWriter, r *http.Request, decision usecase.Decision) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeJSON(w, denialStatus(decision.Outcome), map[string]string{
			"error":  denialMessage(decision.Reason),
			"reason": decision.Reason,
		})
		return
	}

	target := "/login"
	if decision.Reason != "" {
		target += "?reason=" + decision.Reason
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func denialStatus(outcome usecase.Outcome) int {
	switch outcome {
	case usecase.OutcomeDeniedUnauthorized:
		return http.StatusForbidden
	case usecase.OutcomeLookupFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusUnauthorized
	}
}

func denialMessage(reason string) string {
	switch reason {
	case usecase.ReasonNotAuthorized:
		return "Please sign in with the email or phone number reserved to your trip."
	case usecase.ReasonLookupError:
		return "We could not check your reservation right now. Please try again."
	default:
		return "Please sign in to continue."
	}
}
