package services

import (
	"context"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
	oauth2v2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"personal-planner/models"
)

// AuthService handles sign-in with Google and session bookkeeping
type AuthService struct {
	repo         AuthRepository
	sessionStore SessionStore
	oauthConfig  *oauth2.Config
	validateID   IDTokenValidator
	fetchProfile ProfileFetcher
	now          func() time.Time
}

// NewAuthService creates a new auth service. oauthConfig may be nil when
// only ID token sign-in is enabled.
func NewAuthService(repo AuthRepository, sessionStore SessionStore, oauthConfig *oauth2.Config) *AuthService {
	return &AuthService{
		repo:         repo,
		sessionStore: sessionStore,
		oauthConfig:  oauthConfig,
		validateID:   idtoken.Validate,
		fetchProfile: fetchGoogleProfile,
		now:          time.Now,
	}
}

// SetIDTokenValidator replaces idtoken.Validate, e.g. with the Validate
// method of a validator built by idtoken.NewValidator
func (as *AuthService) SetIDTokenValidator(v IDTokenValidator) {
	as.validateID = v
}

// NewGoogleOAuthConfig builds the code-flow config for the Google endpoint
func NewGoogleOAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	if clientID == "" || clientSecret == "" {
		return nil
	}
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// UserInfo represents user information from Google
type UserInfo struct {
	GoogleID string
	Email    string
	Name     string
	Picture  string
}

// LoginResponse contains the session and additional login metadata
type LoginResponse struct {
	Session        *models.Session
	ShowOnboarding bool
}

// AuthCodeURL returns the consent page URL for the code flow
func (as *AuthService) AuthCodeURL(state string) (string, error) {
	if as.oauthConfig == nil {
		return "", ErrOAuthUnavailable
	}
	return as.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

// LoginWithCode handles login via OAuth authorization code
func (as *AuthService) LoginWithCode(ctx context.Context, code string) (*LoginResponse, error) {
	if as.oauthConfig == nil {
		return nil, ErrOAuthUnavailable
	}

	token, err := as.oauthConfig.Exchange(ctx, code, oauth2.AccessTypeOffline)
	if err != nil {
		return nil, ErrInvalidAuthCode
	}

	userInfo, err := as.fetchProfile(ctx, as.oauthConfig.TokenSource(ctx, token))
	if err != nil {
		return nil, err
	}

	return as.completeLogin(ctx, userInfo, token.AccessToken, token.RefreshToken, token.Expiry)
}

// LoginWithIDToken handles login via Google One Tap ID token
func (as *AuthService) LoginWithIDToken(ctx context.Context, idToken, clientID string) (*LoginResponse, error) {
	userInfo, err := as.VerifyIDToken(ctx, idToken, clientID)
	if err != nil {
		return nil, err
	}

	// One Tap grants no API access, so the session carries no tokens
	return as.completeLogin(ctx, userInfo, "", "", time.Time{})
}

// LoginWithToken handles login via a direct access token
func (as *AuthService) LoginWithToken(ctx context.Context, accessToken, refreshToken string, expiresIn int64) (*LoginResponse, error) {
	if accessToken == "" {
		return nil, ErrInvalidToken
	}

	tokenExpiry := as.now().Add(1 * time.Hour)
	if expiresIn > 0 {
		tokenExpiry = as.now().Add(time.Duration(expiresIn) * time.Second)
	}

	token := &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Expiry:       tokenExpiry,
	}

	userInfo, err := as.fetchProfile(ctx, oauth2.StaticTokenSource(token))
	if err != nil {
		return nil, err
	}

	return as.completeLogin(ctx, userInfo, accessToken, refreshToken, tokenExpiry)
}

// AuthenticateIDToken resolves a Bearer ID token to its user and records the
// user the same way a login does, so planner rows can reference it
func (as *AuthService) AuthenticateIDToken(ctx context.Context, idToken, clientID string) (*models.User, error) {
	userInfo, err := as.VerifyIDToken(ctx, idToken, clientID)
	if err != nil {
		return nil, err
	}
	return as.createOrUpdateUser(ctx, userInfo)
}

// VerifyIDToken validates an ID token and extracts the identity it carries
func (as *AuthService) VerifyIDToken(ctx context.Context, idToken, clientID string) (*UserInfo, error) {
	if idToken == "" {
		return nil, ErrInvalidToken
	}

	payload, err := as.validateID(ctx, idToken, clientID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)

	if payload.Subject == "" || email == "" {
		return nil, ErrInvalidUserInfo
	}

	return &UserInfo{
		GoogleID: payload.Subject,
		Email:    email,
		Name:     name,
		Picture:  picture,
	}, nil
}

// Logout handles user logout
func (as *AuthService) Logout(sessionID string) error {
	return as.sessionStore.Delete(sessionID)
}

// GetSessionInfo returns current session information
func (as *AuthService) GetSessionInfo(sessionID string) (*models.Session, error) {
	sess, err := as.sessionStore.Get(sessionID)
	if err != nil || sess == nil {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (as *AuthService) completeLogin(ctx context.Context, userInfo *UserInfo, accessToken, refreshToken string, tokenExpiry time.Time) (*LoginResponse, error) {
	user, err := as.createOrUpdateUser(ctx, userInfo)
	if err != nil {
		return nil, err
	}

	sess, err := as.sessionStore.Create(user, accessToken, refreshToken, tokenExpiry)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Session:        sess,
		ShowOnboarding: as.needsOnboarding(ctx, user.ID),
	}, nil
}

// createOrUpdateUser saves or updates user in database
func (as *AuthService) createOrUpdateUser(ctx context.Context, userInfo *UserInfo) (*models.User, error) {
	now := as.now().UTC()
	user := &models.User{
		ID:          userInfo.GoogleID,
		Email:       userInfo.Email,
		Name:        userInfo.Name,
		Picture:     userInfo.Picture,
		CreatedAt:   now,
		LastLoginAt: now,
	}

	if err := as.repo.UpsertUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// needsOnboarding reports whether the user has no settings row yet
func (as *AuthService) needsOnboarding(ctx context.Context, userID string) bool {
	settings, err := as.repo.GetUserSettings(ctx, userID)
	return err == nil && settings == nil
}

// fetchGoogleProfile calls the userinfo endpoint through the Google API client
func fetchGoogleProfile(ctx context.Context, ts oauth2.TokenSource) (*UserInfo, error) {
	svc, err := oauth2v2.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, err
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, ErrInvalidToken
	}

	if info.Id == "" || info.Email == "" {
		return nil, ErrInvalidUserInfo
	}

	return &UserInfo{
		GoogleID: info.Id,
		Email:    info.Email,
		Name:     info.Name,
		Picture:  info.Picture,
	}, nil
}
