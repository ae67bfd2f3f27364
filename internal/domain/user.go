package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an operations-console account, not an end customer. Submitters
// never log in; they only pay.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewUserID() string {
	return uuid.New().String()
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

// JWTClaims holds the verified token claims the middleware puts in context.
type JWTClaims struct {
	Sub   string
	Email string
	Role  string
}
