package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleProfile is the part of the userinfo response we keep.
type GoogleProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleLoginService runs the authorization-code flow used to sign
// users in with their Google account. This client is separate from the
// Drive one: it only asks for profile and email scopes.
type GoogleLoginService struct {
	config *oauth2.Config
}

func NewGoogleLoginService(clientID, clientSecret, callbackURL string) *GoogleLoginService {
	return &GoogleLoginService{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.profile",
				"https://www.googleapis.com/auth/userinfo.email",
			},
			Endpoint: google.Endpoint,
		},
	}
}

func (s *GoogleLoginService) AuthURL(state string) string {
	return s.config.AuthCodeURL(state)
}

// Exchange trades the authorization code for a verified profile.
func (s *GoogleLoginService) Exchange(ctx context.Context, code string) (*GoogleProfile, error) {
	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}

	client := s.config.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("fetching userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decoding userinfo: %w", err)
	}
	if profile.ID == "" {
		return nil, errors.New("userinfo response missing subject id")
	}
	return &profile, nil
}
