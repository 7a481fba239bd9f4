package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	accountModel "tutly_backend/internals/features/users/accounts/model"
)

// IssueToken menandatangani access token HS256 untuk user.
// Login ada di luar service ini; dipakai oleh CLI dev dan test.
func IssueToken(secret string, u *accountModel.UserModel, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":              u.UserID.String(),
		"username":        u.UserUsername,
		"role":            u.UserRole,
		"organization_id": u.UserOrganizationID.String(),
		"iat":             now.Unix(),
		"exp":             now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
