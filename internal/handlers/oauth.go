package handlers

import (
	"log"
	"net/http"

	"github.com/rajnishk05/anaadyanta1/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const oauthStateKey = "oauth_state"

type OAuthHandler struct {
	login       *services.GoogleLoginService
	authService *services.AuthService
	drive       *services.DriveService
}

func NewOAuthHandler(login *services.GoogleLoginService, authService *services.AuthService, drive *services.DriveService) *OAuthHandler {
	return &OAuthHandler{login: login, authService: authService, drive: drive}
}

// GoogleLogin redirects the browser to the Google consent screen. The
// state parameter is kept in the session and checked on callback.
func (h *OAuthHandler) GoogleLogin(c *gin.Context) {
	state := uuid.NewString()
	session := sessions.Default(c)
	session.Set(oauthStateKey, state)
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to save session"})
		return
	}
	c.Redirect(http.StatusFound, h.login.AuthURL(state))
}

// GoogleCallback completes the login: verify state, exchange the code,
// get-or-create the user, establish the session. Any failure sends the
// browser back to the app root unauthenticated.
func (h *OAuthHandler) GoogleCallback(c *gin.Context) {
	session := sessions.Default(c)
	savedState, _ := session.Get(oauthStateKey).(string)
	session.Delete(oauthStateKey)

	state := c.Query("state")
	code := c.Query("code")
	if code == "" || savedState == "" || state != savedState {
		session.Save()
		c.Redirect(http.StatusFound, "/")
		return
	}

	profile, err := h.login.Exchange(c.Request.Context(), code)
	if err != nil {
		log.Printf("google login failed: %v", err)
		session.Save()
		c.Redirect(http.StatusFound, "/")
		return
	}

	user, err := h.authService.GetOrCreateGoogleUser(profile.ID, profile.Name, profile.Email)
	if err != nil {
		log.Printf("google login failed: %v", err)
		session.Save()
		c.Redirect(http.StatusFound, "/")
		return
	}

	session.Set(SessionUserKey, user.ID)
	if err := session.Save(); err != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// DriveCallback handles the out-of-band authorization flow for the
// Drive client. A refresh token is persisted only when Google issues a
// new one.
func (h *OAuthHandler) DriveCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.String(http.StatusBadRequest, "Authorization code is missing.")
		return
	}

	saved, err := h.drive.HandleCallback(c.Request.Context(), code)
	if err != nil {
		log.Printf("drive token exchange failed: %v", err)
		c.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	if saved {
		c.String(http.StatusOK, "Authentication successful! Refresh token saved. You can now upload images.")
	} else {
		c.String(http.StatusOK, "Authentication successful, but no new refresh token was provided.")
	}
}
