package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// AssetUploader pushes a locally staged file to external storage and
// returns a publicly viewable URL for it.
type AssetUploader interface {
	Upload(ctx context.Context, localPath, name string) (string, error)
}

// driveCredentials mirrors the Google Cloud "web application" client
// JSON, extended with the refresh token obtained out of band.
type driveCredentials struct {
	Web struct {
		ClientID     string   `json:"client_id"`
		ClientSecret string   `json:"client_secret"`
		RedirectURIs []string `json:"redirect_uris"`
		RefreshToken string   `json:"refresh_token,omitempty"`
	} `json:"web"`
}

// DriveService uploads submission images to Google Drive using a
// pre-authorized OAuth2 client. The refresh token lives in the
// credentials file and is replaced whenever Google issues a new one.
type DriveService struct {
	config    *oauth2.Config
	credsPath string
	creds     driveCredentials
}

func NewDriveService(credsPath string) (*DriveService, error) {
	data, err := os.ReadFile(credsPath)
	if err != nil {
		return nil, fmt.Errorf("reading drive credentials: %w", err)
	}

	var creds driveCredentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parsing drive credentials: %w", err)
	}
	if creds.Web.ClientID == "" || len(creds.Web.RedirectURIs) == 0 {
		return nil, errors.New("drive credentials missing client_id or redirect_uris")
	}

	return &DriveService{
		config: &oauth2.Config{
			ClientID:     creds.Web.ClientID,
			ClientSecret: creds.Web.ClientSecret,
			RedirectURL:  creds.Web.RedirectURIs[0],
			Scopes:       []string{drive.DriveFileScope},
			Endpoint:     google.Endpoint,
		},
		credsPath: credsPath,
		creds:     creds,
	}, nil
}

// AuthURL returns the consent URL for the out-of-band authorization
// flow. The consent prompt is forced so Google always returns a refresh
// token.
func (s *DriveService) AuthURL() string {
	return s.config.AuthCodeURL("state",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// HandleCallback exchanges an authorization code for tokens and persists
// the refresh token when a new one was issued. Google does not always
// reissue refresh tokens; absence is not an error. Returns whether a new
// token was saved.
func (s *DriveService) HandleCallback(ctx context.Context, code string) (bool, error) {
	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return false, fmt.Errorf("exchanging authorization code: %w", err)
	}

	if token.RefreshToken == "" {
		return false, nil
	}

	s.creds.Web.RefreshToken = token.RefreshToken
	data, err := json.MarshalIndent(s.creds, "", "  ")
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(s.credsPath, data, 0600); err != nil {
		return false, fmt.Errorf("saving refresh token: %w", err)
	}
	return true, nil
}

// Upload creates the remote file, grants public read permission, and
// returns its web view link. Each step aborts the upload on failure.
func (s *DriveService) Upload(ctx context.Context, localPath, name string) (string, error) {
	if s.creds.Web.RefreshToken == "" {
		return "", errors.New("drive client not authorized: no refresh token, visit the auth URL first")
	}

	ts := s.config.TokenSource(ctx, &oauth2.Token{RefreshToken: s.creds.Web.RefreshToken})
	srv, err := drive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return "", fmt.Errorf("creating drive client: %w", err)
	}

	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("opening staged file: %w", err)
	}
	defer f.Close()

	created, err := srv.Files.Create(&drive.File{Name: name}).
		Media(f).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("creating drive file: %w", err)
	}

	_, err = srv.Permissions.Create(created.Id, &drive.Permission{
		Role: "reader",
		Type: "anyone",
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("granting public permission: %w", err)
	}

	got, err := srv.Files.Get(created.Id).Fields("webViewLink").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("fetching view link: %w", err)
	}
	return got.WebViewLink, nil
}
