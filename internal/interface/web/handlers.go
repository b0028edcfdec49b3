package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"guestgate-service/internal/domain/entity"
	"guestgate-service/internal/domain/repository"
	"guestgate-service/internal/usecase"
	"guestgate-service/pkg/logger"
	"guestgate-service/templates"
)

// OAuthFlow is the server-side federated sign-in flow: redirect the
// guest to the provider, then turn the callback code into an identity.
type OAuthFlow interface {
	AuthCodeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*entity.Identity, error)
}

// Handlers carries the dependencies of every HTTP handler
type Handlers struct {
	registry  *usecase.Registry
	guard     *usecase.AccessGuard
	submitter *usecase.FlightSubmitter
	provider  repository.IdentityProvider
	oauth     OAuthFlow
	logger    logger.Logger
}

// NewHandlers creates the handler set
func NewHandlers(
	registry *usecase.Registry,
	guard *usecase.AccessGuard,
	submitter *usecase.FlightSubmitter,
	provider repository.IdentityProvider,
	oauth OAuthFlow,
	logger logger.Logger,
) *Handlers {
	return &Handlers{
		registry:  registry,
		guard:     guard,
		submitter: submitter,
		provider:  provider,
		oauth:     oauth,
		logger:    logger,
	}
}

// Login is the entry view. It echoes the machine-readable reason code a
// guard redirect carried, plus the message to show the guest.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	reason := r.URL.Query().Get("reason")

	response := map[string]string{}
	if reason != "" {
		response["reason"] = reason
		response["message"] = denialMessage(reason)
	}
	writeJSON(w, http.StatusOK, response)
}

// GoogleSignIn verifies a Google ID token obtained by the client-side
// popup and installs the identity on the session
func (h *Handlers) GoogleSignIn(w http.ResponseWriter, r *http.Request) {
	var request struct {
		IDToken string `json:"idToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.IDToken == "" {
		writeError(w, http.StatusBadRequest, "Google sign-in failed. Please try again.")
		return
	}

	identity, err := h.provider.VerifyIDToken(r.Context(), request.IDToken)
	if err != nil {
		h.logger.Warn("ID token verification failed", "error", err)
		writeError(w, http.StatusUnauthorized, "Google sign-in failed. Please try again.")
		return
	}

	SessionFrom(r.Context()).SetIdentity(identity)
	writeJSON(w, http.StatusOK, map[string]string{"next": "/flight"})
}

// GoogleRedirect starts the server-side federated sign-in flow
func (h *Handlers) GoogleRedirect(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	http.Redirect(w, r, h.oauth.AuthCodeURL(session.ID()), http.StatusSeeOther)
}

// OAuthCallback completes the federated flow: the state must match the
// session that started it
func (h *Handlers) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	if r.URL.Query().Get("state") != session.ID() {
		writeError(w, http.StatusBadRequest, "Sign-in could not be completed. Please try again.")
		return
	}

	identity, err := h.oauth.ExchangeCode(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		h.logger.Warn("OAuth code exchange failed", "error", err)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	session.SetIdentity(identity)
	http.Redirect(w, r, "/flight", http.StatusSeeOther)
}

// PhoneSend asks the provider to text a one-time code
func (h *Handlers) PhoneSend(w http.ResponseWriter, r *http.Request) {
	var request struct {
		PhoneNumber string `json:"phoneNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.PhoneNumber == "" {
		writeError(w, http.StatusBadRequest, "Phone number not valid. Please use the phone number used to reserve your trip.")
		return
	}

	sessionInfo, err := h.provider.SendPhoneCode(r.Context(), request.PhoneNumber)
	if err != nil {
		h.logger.Warn("Sending phone code failed", "error", err)
		writeError(w, http.StatusBadRequest, "Phone number not valid. Please use the phone number used to reserve your trip.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"sessionInfo": sessionInfo})
}

// PhoneVerify confirms the one-time code and installs the identity
func (h *Handlers) PhoneVerify(w http.ResponseWriter, r *http.Request) {
	var request struct {
		SessionInfo string `json:"sessionInfo"`
		Code        string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Code == "" {
		writeError(w, http.StatusBadRequest, "Invalid code, please try again.")
		return
	}

	identity, err := h.provider.VerifyPhoneCode(r.Context(), request.SessionInfo, request.Code)
	if err != nil {
		h.logger.Warn("Phone code verification failed", "error", err)
		writeError(w, http.StatusUnauthorized, "Invalid code, please try again.")
		return
	}

	SessionFrom(r.Context()).SetIdentity(identity)
	writeJSON(w, http.StatusOK, map[string]string{"next": "/flight"})
}

// AuthState streams the session's sign-in state as server-sent events:
// the current state immediately, then every change, until the client
// disconnects. The entry view watches it so a sign-in completing in the
// provider popup advances the page without polling.
func (h *Handlers) AuthState(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Streaming is not supported.")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	session := SessionFrom(r.Context())
	for snapshot := range session.IdentityChanges(r.Context()) {
		payload, err := json.Marshal(map[string]bool{"signedIn": snapshot.Identity != nil})
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()
	}
}

// SignOut revokes the identity with the provider (best effort), clears
// the session's identity and cached reservation. The draft survives.
func (h *Handlers) SignOut(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())
	identity, _ := session.Identity()

	if identity != nil {
		if err := h.provider.SignOut(r.Context(), identity); err != nil {
			h.logger.Warn("Provider sign-out failed", "error", err)
		}
	}
	session.ClearIdentity()
	session.Cache().ClearReservation()

	w.WriteHeader(http.StatusNoContent)
}

// flightView is what the flight page renders: reservation details plus
// any previously saved draft for pre-filling the form
type flightView struct {
	GuestName   string              `json:"guestName,omitempty"`
	Destination string              `json:"destination,omitempty"`
	TripStart   string              `json:"tripStart,omitempty"`
	TripEnd     string              `json:"tripEnd,omitempty"`
	TripEndISO  string              `json:"tripEndIso,omitempty"`
	Draft       *entity.FlightDraft `json:"draft,omitempty"`
}

// Flight returns the protected flight-details view
func (h *Handlers) Flight(w http.ResponseWriter, r *http.Request) {
	cache := SessionFrom(r.Context()).Cache()
	reservation := cache.CurrentReservation()

	view := flightView{Draft: cache.CurrentDraft()}
	if reservation != nil {
		view.GuestName = reservation.GuestName()
		view.Destination = reservation.Destination
		if !reservation.TripStart.IsZero() {
			view.TripStart = reservation.TripStart.Format("Jan 2, 2006")
		}
		if !reservation.TripEnd.IsZero() {
			view.TripEnd = reservation.TripEnd.Format("Jan 2, 2006")
			view.TripEndISO = reservation.TripEnd.Format("2006-01-02")
		}
	}
	writeJSON(w, http.StatusOK, view)
}

// GetDraft returns the cached draft, if any
func (h *Handlers) GetDraft(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"draft": SessionFrom(r.Context()).Cache().CurrentDraft(),
	})
}

// PutDraft saves the draft without validating it; partial drafts are
// fine until submission
func (h *Handlers) PutDraft(w http.ResponseWriter, r *http.Request) {
	var draft entity.FlightDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "Please check the flight details and try again.")
		return
	}

	SessionFrom(r.Context()).Cache().SetDraft(&draft)
	w.WriteHeader(http.StatusNoContent)
}

// SubmitFlight caches the submitted form (when a body is present) and
// sends it to the remote endpoint. On failure the draft stays cached
// and the guest gets an inline error, never a redirect.
func (h *Handlers) SubmitFlight(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())

	if r.ContentLength != 0 {
		var draft entity.FlightDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			writeError(w, http.StatusBadRequest, "Please check the flight details and try again.")
			return
		}
		session.Cache().SetDraft(&draft)
	}

	if err := h.submitter.Submit(r.Context(), session); err != nil {
		if errors.Is(err, entity.ErrSubmissionFailed) {
			writeError(w, http.StatusBadGateway, "Submission failed. Please try again.")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"next": "/done"})
}

// Done is the protected confirmation view
func (h *Handlers) Done(w http.ResponseWriter, r *http.Request) {
	cache := SessionFrom(r.Context()).Cache()
	draft := cache.CurrentDraft()
	if draft == nil {
		http.Redirect(w, r, "/flight", http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(templates.Confirmation(cache.CurrentReservation(), draft)))
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
