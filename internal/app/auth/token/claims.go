package token

import (
	"github.com/golang-jwt/jwt/v5"
)

// Purpose restricts a token to one operation class; a token issued for one
// purpose never validates for another.
type Purpose string

const (
	PurposeAccess        Purpose = "access_token"
	PurposeRefresh       Purpose = "refresh_token"
	PurposeEmailVerify   Purpose = "email_verify"
	PurposeResetPassword Purpose = "reset_password"
)

type Claims struct {
	jwt.RegisteredClaims
	Purpose Purpose `json:"purpose"`
}
