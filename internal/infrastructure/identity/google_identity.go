package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"guestgate-service/internal/domain/entity"
	"guestgate-service/internal/domain/repository"
	"guestgate-service/pkg/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

const (
	identityToolkitURL = "https://identitytoolkit.googleapis.com/v1"
	revokeURL          = "https://oauth2.googleapis.com/revoke"
)

// GoogleIdentity implements IdentityProvider against Google Identity
// Platform: ID-token verification for federated sign-in, the Identity
// Toolkit REST API for phone OTP, and token revocation for sign-out.
type GoogleIdentity struct {
	config  *oauth2.Config
	apiKey  string
	client  *http.Client
	baseURL string
	logger  logger.Logger
}

// NewGoogleIdentity creates a new Google identity provider
func NewGoogleIdentity(clientID, clientSecret, redirectURL, apiKey string, logger logger.Logger) *GoogleIdentity {
	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  redirectURL,
		Scopes:       []string{"openid", "email", "profile"},
	}

	return &GoogleIdentity{
		config:  config,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: identityToolkitURL,
		logger:  logger,
	}
}

// AuthCodeURL generates the URL for the federated sign-in redirect
func (p *GoogleIdentity) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// ExchangeCode exchanges an authorization code for an identity by
// verifying the ID token Google returns alongside the access token
func (p *GoogleIdentity) ExchangeCode(ctx context.Context, code string) (*entity.Identity, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, fmt.Errorf("token response carried no id_token")
	}

	ident, err := p.VerifyIDToken(ctx, rawIDToken)
	if err != nil {
		return nil, err
	}
	ident.RefreshToken = token.RefreshToken

	return ident, nil
}

// VerifyIDToken validates a Google ID token and maps its claims to an
// identity snapshot
func (p *GoogleIdentity) VerifyIDToken(ctx context.Context, rawToken string) (*entity.Identity, error) {
	payload, err := idtoken.Validate(ctx, rawToken, p.config.ClientID)
	if err != nil {
		return nil, fmt.Errorf("invalid ID token: %w", err)
	}

	ident := &entity.Identity{UID: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		ident.Email = email
	}
	if phone, ok := payload.Claims["phone_number"].(string); ok {
		ident.Phone = phone
	}

	return ident, nil
}

// SendPhoneCode asks the provider to send an OTP to the given number
// and returns the opaque sessionInfo for the verify step
func (p *GoogleIdentity) SendPhoneCode(ctx context.Context, phoneNumber string) (string, error) {
	var response struct {
		SessionInfo string `json:"sessionInfo"`
	}

	err := p.post(ctx, "accounts:sendVerificationCode", map[string]string{
		"phoneNumber": phoneNumber,
	}, &response)
	if err != nil {
		return "", err
	}
	if response.SessionInfo == "" {
		return "", fmt.Errorf("provider returned no session info")
	}

	return response.SessionInfo, nil
}

// VerifyPhoneCode confirms an OTP and returns the signed-in identity
func (p *GoogleIdentity) VerifyPhoneCode(ctx context.Context, sessionInfo, code string) (*entity.Identity, error) {
	var response struct {
		LocalID      string `json:"localId"`
		PhoneNumber  string `json:"phoneNumber"`
		RefreshToken string `json:"refreshToken"`
	}

	err := p.post(ctx, "accounts:signInWithPhoneNumber", map[string]string{
		"sessionInfo": sessionInfo,
		"code":        code,
	}, &response)
	if err != nil {
		return nil, err
	}

	return &entity.Identity{
		UID:          response.LocalID,
		Phone:        response.PhoneNumber,
		RefreshToken: response.RefreshToken,
	}, nil
}

// SignOut revokes the identity's refresh token. A missing token is a
// no-op; callers treat failures as non-blocking.
func (p *GoogleIdentity) SignOut(ctx context.Context, identity *entity.Identity) error {
	if identity == nil || identity.RefreshToken == "" {
		return nil
	}

	form := url.Values{"token": {identity.RefreshToken}}
	req, err := http.NewRequestWithContext(ctx, "POST", revokeURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create revoke request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("revoke endpoint returned status %d", resp.StatusCode)
	}

	p.logger.Info("Identity signed out", "uid", identity.UID)
	return nil
}

// post sends a JSON request to an Identity Toolkit endpoint
func (p *GoogleIdentity) post(ctx context.Context, endpoint string, body, out interface{}) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s?key=%s", p.baseURL, endpoint, url.QueryEscape(p.apiKey))
	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call identity provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errorBody struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return fmt.Errorf("identity provider returned status %d: %s", resp.StatusCode, errorBody.Error.Message)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

var _ repository.IdentityProvider = (*GoogleIdentity)(nil)
