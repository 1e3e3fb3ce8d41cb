package v1

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pinswap/api/internal/api/handler/v1/response"
	"github.com/pinswap/api/internal/api/middleware"
	"github.com/pinswap/api/internal/domain"
	"github.com/pinswap/api/internal/service"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var errMissingUser = errors.New("missing authenticated user")

type UserGetter interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

// getUserFromContext loads the account behind the verified token.
func getUserFromContext(ctx *gin.Context, users UserGetter) (domain.User, *response.Err) {
	userID := middleware.UserID(ctx)
	if userID == 0 {
		return domain.User{}, response.ErrUnauthorized(errMissingUser)
	}

	user, err := users.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.User{}, response.ErrUnauthorized(fmt.Errorf("user %d no longer exists", userID))
		}

		return domain.User{}, response.ErrInternalServerError(fmt.Errorf("users.GetUser -> %w", err))
	}
	if user.IsLocked() {
		return domain.User{}, response.ErrPermissionDenied(service.ErrAccountLocked)
	}

	return user, nil
}

func parseID(ctx *gin.Context, param string) (uint, *response.Err) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %s %q", param, ctx.Param(param)))
	}

	return uint(id), nil
}

func pageFromQuery(ctx *gin.Context) domain.Page {
	page, _ := strconv.Atoi(ctx.Query("page"))
	limit, _ := strconv.Atoi(ctx.Query("limit"))

	return domain.NewPage(page, limit, defaultPageSize, maxPageSize)
}
