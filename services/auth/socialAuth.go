package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rentvehicle/config"
	"rentvehicle/models"
	"rentvehicle/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var socialHTTPClient = &http.Client{Timeout: 10 * time.Second}

// Provider endpoints, variables so tests can stand in for the providers.
var (
	googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"
	facebookGraphURL   = "https://graph.facebook.com"
)

// socialProfile is the subset of a provider profile the platform needs.
type socialProfile struct {
	Email    string
	FullName string
	Provider string
}

// SocialLogin validates a provider token, provisions the account on first
// visit and signs it in.
func (s *DefaultAuthService) SocialLogin(provider, token string) (*AuthResult, error) {
	var (
		profile *socialProfile
		err     error
	)
	switch strings.ToLower(provider) {
	case "google":
		profile, err = verifyGoogleToken(token)
	case "facebook":
		profile, err = verifyFacebookToken(token)
	default:
		return nil, utils.ErrInvalidReq
	}
	if err != nil {
		utils.GetLogger().Warn("SocialLogin: token validation failed",
			zap.String("provider", provider), zap.Error(err))
		return nil, utils.ErrOAuthTokenInvalid
	}

	email := normalizeEmail(profile.Email)
	user, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("SocialLogin: failed to fetch user", zap.Error(err))
		return nil, utils.ErrUncategorized
	}
	if user == nil {
		user = &models.User{
			ID:           uuid.NewString(),
			FullName:     profile.FullName,
			Email:        email,
			Role:         models.RoleUser,
			AuthProvider: profile.Provider,
			Status:       models.UserStatusActive,
		}
		if err := s.Repo.Create(user); err != nil {
			utils.GetLogger().Error("SocialLogin: failed to create user", zap.Error(err))
			return nil, utils.ErrUncategorized
		}
	}
	if user.Status == models.UserStatusBanned {
		return nil, utils.ErrUserBanned
	}

	return s.issueSession(user)
}

// verifyGoogleToken validates a Google ID token against the tokeninfo
// endpoint and checks the audience when a client ID is configured.
func verifyGoogleToken(idToken string) (*socialProfile, error) {
	endpoint := googleTokenInfoURL + "?id_token=" + url.QueryEscape(idToken)
	resp, err := socialHTTPClient.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to reach Google tokeninfo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google rejected token with status %d", resp.StatusCode)
	}

	var info struct {
		Aud           string `json:"aud"`
		Email         string `json:"email"`
		EmailVerified string `json:"email_verified"`
		Name          string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}
	if clientID := config.AppConfig.GoogleClientID; clientID != "" && info.Aud != clientID {
		return nil, fmt.Errorf("token audience mismatch")
	}
	if info.Email == "" || info.EmailVerified != "true" {
		return nil, fmt.Errorf("token has no verified email")
	}
	return &socialProfile{Email: info.Email, FullName: info.Name, Provider: models.ProviderGoogle}, nil
}

// appSecretProof signs the access token with the app secret, as Facebook
// requires for server-side Graph API calls.
func appSecretProof(accessToken, appSecret string) string {
	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write([]byte(accessToken))
	return hex.EncodeToString(mac.Sum(nil))
}

// verifyFacebookAppToken checks through the debug_token endpoint that the
// access token is valid and was issued for this app, the Facebook
// counterpart of the Google audience check.
func verifyFacebookAppToken(accessToken string) error {
	appID := config.AppConfig.FacebookAppID
	appSecret := config.AppConfig.FacebookAppSecret
	if appID == "" || appSecret == "" {
		return nil
	}

	endpoint := facebookGraphURL + "/debug_token?input_token=" + url.QueryEscape(accessToken) +
		"&access_token=" + url.QueryEscape(appID+"|"+appSecret)
	resp, err := socialHTTPClient.Get(endpoint)
	if err != nil {
		return fmt.Errorf("failed to reach Facebook debug_token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("facebook rejected token inspection with status %d", resp.StatusCode)
	}

	var inspection struct {
		Data struct {
			AppID   string `json:"app_id"`
			IsValid bool   `json:"is_valid"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&inspection); err != nil {
		return fmt.Errorf("failed to decode debug_token response: %w", err)
	}
	if !inspection.Data.IsValid {
		return fmt.Errorf("facebook token is not valid")
	}
	if inspection.Data.AppID != appID {
		return fmt.Errorf("facebook token issued for another app")
	}
	return nil
}

// verifyFacebookToken validates a Facebook access token against the Graph
// API and reads the profile it belongs to.
func verifyFacebookToken(accessToken string) (*socialProfile, error) {
	if err := verifyFacebookAppToken(accessToken); err != nil {
		return nil, err
	}

	endpoint := facebookGraphURL + "/me?fields=id,name,email&access_token=" + url.QueryEscape(accessToken)
	if secret := config.AppConfig.FacebookAppSecret; secret != "" {
		endpoint += "&appsecret_proof=" + appSecretProof(accessToken, secret)
	}
	resp, err := socialHTTPClient.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to reach Facebook Graph API: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("facebook rejected token with status %d", resp.StatusCode)
	}

	var profile struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode Graph API response: %w", err)
	}
	if profile.Email == "" {
		return nil, fmt.Errorf("facebook profile has no email")
	}
	return &socialProfile{Email: profile.Email, FullName: profile.Name, Provider: models.ProviderFacebook}, nil
}
