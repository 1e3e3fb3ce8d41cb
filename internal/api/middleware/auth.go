package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pinswap/api/internal/api/handler/v1/response"
	"github.com/pinswap/api/internal/domain"
	"github.com/pinswap/api/internal/pkg/jwthelper"
)

const (
	CtxKeyUserID = "userID"
	CtxKeyRole   = "role"
)

var (
	errMissingToken = errors.New("missing bearer token")
	errInvalidToken = errors.New("invalid or expired token")
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT rejects requests without a valid bearer token: 403 when the header
// is missing, 401 when the token does not verify.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, ok := bearerToken(ctx)
		if !ok {
			response.RenderErr(ctx, response.ErrPermissionDenied(errMissingToken))
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, tokenString)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(errInvalidToken))
			return
		}

		setClaims(ctx, claims)
		ctx.Next()
	}
}

// OptionalJWT attaches the caller's identity when a valid token is present and
// lets anonymous requests through.
func (a *Authenticator) OptionalJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if tokenString, ok := bearerToken(ctx); ok {
			if claims, err := jwthelper.ParseToken(a.signingKey, tokenString); err == nil {
				setClaims(ctx, claims)
			}
		}

		ctx.Next()
	}
}

// RequireRoles must run after VerifyJWT.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		role := domain.Role(ctx.GetString(CtxKeyRole))
		for _, allowed := range roles {
			if role == allowed {
				ctx.Next()
				return
			}
		}

		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("role %q is not allowed", role)))
	}
}

// UserID returns the authenticated user's id, zero for anonymous requests.
func UserID(ctx *gin.Context) uint {
	return ctx.GetUint(CtxKeyUserID)
}

func bearerToken(ctx *gin.Context) (string, bool) {
	header := ctx.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	if !found || token == "" {
		return "", false
	}

	return token, true
}

func setClaims(ctx *gin.Context, claims *jwthelper.UserClaims) {
	ctx.Set(CtxKeyUserID, claims.UserID)
	ctx.Set(CtxKeyRole, claims.Role)
}
