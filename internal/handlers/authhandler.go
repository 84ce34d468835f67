package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/justsurfingit/jobportal/internal/auth"
	"github.com/justsurfingit/jobportal/internal/dtos"
	"github.com/justsurfingit/jobportal/internal/metrics"
)

type AuthHandler struct {
	Tokens       *auth.TokenService
	CookieSecure bool
	Metrics      *metrics.Metrics
	Log          logrus.FieldLogger
}

func NewAuthHandler(tokens *auth.TokenService, cookieSecure bool, m *metrics.Metrics, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{
		Tokens:       tokens,
		CookieSecure: cookieSecure,
		Metrics:      m,
		Log:          log,
	}
}

// IssueToken is POST /jwt. The body is taken as the identity payload and
// signed into a session cookie.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var payload dtos.IdentityPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, h.Log, err)
		return
	}
	token, err := h.Tokens.Issue(payload)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	h.Metrics.TokensIssued.Inc()
	c.SetCookie(auth.CookieName, token, 0, "/", "", h.CookieSecure, true)
	c.JSON(http.StatusOK, dtos.SuccessResponse{Success: true})
}

// Logout is POST /logout. The cookie is always cleared; the token is only
// revoked server-side when a denylist is configured.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(auth.CookieName)
	c.SetCookie(auth.CookieName, "", -1, "/", "", h.CookieSecure, true)
	if err := h.Tokens.Revoke(c.Request.Context(), token); err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, dtos.SuccessResponse{Success: true})
}
