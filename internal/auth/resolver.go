package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/prompthub-dev/prompthub/internal/models"
)

// Principal is the authenticated user driving an operation.
type Principal struct {
	ID       uint    `json:"id"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name"`
	Admin    bool    `json:"admin"`
}

// PrincipalResolver maps an opaque session token to the user behind it.
// Injected into the guard middleware so auth carries no global state
// beyond the shared DB handle.
type PrincipalResolver interface {
	Resolve(token string) (Principal, error)
}

type DBResolver struct {
	DB *gorm.DB
}

func NewDBResolver(db *gorm.DB) *DBResolver {
	return &DBResolver{DB: db}
}

func (r *DBResolver) Resolve(tokenString string) (Principal, error) {
	token, err := VerifyJWT(tokenString)

	if err != nil {
		return Principal{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return Principal{}, fmt.Errorf("Invalid token claims")
	}

	userIDFloat, ok := claims["user_id"].(float64)

	if !ok {
		return Principal{}, fmt.Errorf("Invalid user ID in token claims")
	}

	var user models.User

	if err := r.DB.Where("id = ?", uint(userIDFloat)).First(&user).Error; err != nil {
		return Principal{}, fmt.Errorf("User not found")
	}

	return Principal{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Admin:    user.Admin,
	}, nil
}
