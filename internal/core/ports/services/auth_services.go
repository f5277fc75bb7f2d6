package services

import (
	"context"
	"time"

	"github.com/Drumblow/modularcompany-sub001/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade defines the interface for access token management.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT for the user carrying its
	// id, email, role and company. Returns the token and its expiry.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// GoogleAuthSvcFacade defines the interface for Google sign-in operations.
type GoogleAuthSvcFacade interface {
	// ValidateGoogleIDToken validates an ID token string from Google and
	// returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)

	// GetGoogleLoginURL returns the URL to redirect the user to for the web
	// OAuth flow, bound to the given CSRF state.
	GetGoogleLoginURL(ctx context.Context, state string) string

	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)

	// GetUserInfo uses the access token to fetch the user's Google profile.
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)

	// GenerateStateString creates a secure random CSRF token for the flow.
	GenerateStateString(ctx context.Context) (string, error)
}
