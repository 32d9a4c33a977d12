package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/prompthub-dev/prompthub/internal/auth"
	"github.com/prompthub-dev/prompthub/internal/types"
)

func GetCurrentUser(ctx *gin.Context) (auth.Principal, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return auth.Principal{}, fmt.Errorf("User not authenticated")
	}

	principal, ok := user.(auth.Principal)

	if !ok {
		return auth.Principal{}, fmt.Errorf("Invalid user type in context")
	}

	return principal, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return 0, err
	}

	return user.ID, nil
}
