package v1

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clavedesales/clave-api/internal/api/middleware"
)

var errUserNotAuthenticated = errors.New("user not authenticated")

func getUserID(ctx *gin.Context) (uint, error) {
	value, ok := ctx.Get(middleware.ContextKeyUserID)
	if !ok {
		return 0, errUserNotAuthenticated
	}

	userID, ok := value.(uint)
	if !ok || userID == 0 {
		return 0, errUserNotAuthenticated
	}

	return userID, nil
}

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, errors.New("invalid " + name)
	}

	return uint(id), nil
}
