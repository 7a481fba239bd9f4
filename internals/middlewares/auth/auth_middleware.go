// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"tutly_backend/internals/configs"
	helperAuth "tutly_backend/internals/helpers/auth"
	"tutly_backend/internals/store"
)

// AuthMiddleware memverifikasi JWT (HS256) lalu mengisi locals identitas caller.
// Role dan organisasi diambil dari tabel users, bukan dari klaim.
func AuthMiddleware(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1) Ambil Authorization (atau cookie)
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		// 2) Parse & verifikasi signature
		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET kosong")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}
		claims, err := parseClaims(tokenString, secretKey)
		if err != nil {
			log.Println("[ERROR] Gagal parse token:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		// 3) Validasi exp
		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			log.Println("[ERROR] Exp validation:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		// 4) Ambil user & pastikan aktif
		userID, username, err := extractIdentity(claims)
		if err != nil {
			log.Println("[ERROR] identity:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user identity")
		}
		user, err := st.GetUserByUsername(c.UserContext(), username)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			log.Println("[ERROR] load user:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
		if user.UserID != userID {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token tidak cocok dengan user")
		}
		if !user.UserIsActive {
			return fiber.NewError(fiber.StatusForbidden, "Akun Anda telah dinonaktifkan")
		}

		// 5) Simpan ke locals
		c.Locals(helperAuth.LocUserID, user.UserID.String())
		c.Locals(helperAuth.LocUsername, user.UserUsername)
		c.Locals(helperAuth.LocRole, user.UserRole)
		c.Locals(helperAuth.LocOrganizationID, user.UserOrganizationID.String())
		return c.Next()
	}
}
