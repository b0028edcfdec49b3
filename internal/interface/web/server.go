package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the routes: entry view and sign-in are public, the
// flight and confirmation views sit behind the reservation guard, and
// anything unknown falls back to the entry view.
func NewRouter(h *Handlers) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.WithSession)

	r.Get("/login", h.Login)
	r.Get("/login/google", h.GoogleRedirect)
	r.Get("/oauth2/callback", h.OAuthCallback)

	r.Route("/api/auth", func(r chi.Router) {
		r.Get("/state", h.AuthState)
		r.Post("/google", h.GoogleSignIn)
		r.Post("/phone/send", h.PhoneSend)
		r.Post("/phone/verify", h.PhoneVerify)
		r.Post("/signout", h.SignOut)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.RequireReservation)
		r.Get("/flight", h.Flight)
		r.Get("/done", h.Done)
		r.Route("/api/flight", func(r chi.Router) {
			r.Get("/draft", h.GetDraft)
			r.Put("/draft", h.PutDraft)
			r.Post("/submit", h.SubmitFlight)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})

	return r
}
