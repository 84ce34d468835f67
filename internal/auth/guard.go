package auth

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/justsurfingit/jobportal/internal/apperrors"
)

const identityKey = "auth.identity"

type ctxKey struct{}

// Verifier is satisfied by *TokenService.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

type Guard struct {
	verifier Verifier
	log      logrus.FieldLogger
}

func NewGuard(verifier Verifier, log logrus.FieldLogger) *Guard {
	return &Guard{verifier: verifier, log: log}
}

// Authenticate rejects requests without a valid session cookie. Verification
// completes before the chain continues, and a rejected request never reaches
// the next handler.
func (g *Guard) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			g.reject(c, apperrors.Unauthenticated())
			return
		}

		identity, err := g.verifier.Verify(c.Request.Context(), token)
		if err != nil {
			g.reject(c, err)
			return
		}

		c.Set(identityKey, identity)
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}

func (g *Guard) reject(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	g.log.WithError(err).WithFields(logrus.Fields{
		"path":   c.Request.URL.Path,
		"method": c.Request.Method,
		"status": appErr.HTTPStatus(),
	}).Warn("Authentication failed")
	c.AbortWithStatusJSON(appErr.HTTPStatus(), gin.H{"message": appErr.Message})
}

// AuthorizeOwnership requires the caller to act only as themselves. Comparison is exact.
func AuthorizeOwnership(decodedEmail, requestedEmail string) error {
	if decodedEmail != requestedEmail {
		return apperrors.Forbidden()
	}
	return nil
}

func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, identity)
}

func FromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(ctxKey{}).(*Identity)
	return identity, ok && identity != nil
}

// IdentityFrom returns the identity attached by Authenticate.
func IdentityFrom(c *gin.Context) (*Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*Identity)
	return identity, ok && identity != nil
}
