// internals/middlewares/auth/claims_utils.go
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

/* ======== Extractors ======== */

func extractBearerToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get("Authorization"))
	if auth == "" {
		if cookieTok := c.Cookies("access_token"); cookieTok != "" {
			auth = "Bearer " + cookieTok
		}
	}
	if auth == "" {
		return "", fmt.Errorf("unauthorized - No token provided")
	}

	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", fmt.Errorf("unauthorized - Invalid token format")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", fmt.Errorf("unauthorized - Empty token")
	}
	return tok, nil
}

// parseClaims: hanya HS256 yang diterima. exp dicek terpisah (dengan skew).
func parseClaims(tokenString, secret string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{
		ValidMethods:         []string{jwt.SigningMethodHS256.Alg()},
		SkipClaimsValidation: true,
	}
	if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}); err != nil {
		return nil, err
	}
	return claims, nil
}

func validateTokenExpiry(claims jwt.MapClaims, skew time.Duration) error {
	if _, ok := claims["exp"]; !ok {
		return fmt.Errorf("token has no exp")
	}
	now := time.Now().Add(-skew).Unix()
	if !claims.VerifyExpiresAt(now, true) {
		return fmt.Errorf("token expired")
	}
	return nil
}

func extractIdentity(claims jwt.MapClaims) (uuid.UUID, string, error) {
	idRaw, ok := claims["id"].(string)
	if !ok {
		return uuid.Nil, "", fmt.Errorf("no user id")
	}
	id, err := uuid.Parse(strings.TrimSpace(idRaw))
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("invalid user id: %w", err)
	}
	username, _ := claims["username"].(string)
	username = strings.TrimSpace(username)
	if username == "" {
		return uuid.Nil, "", fmt.Errorf("no username")
	}
	return id, username, nil
}
