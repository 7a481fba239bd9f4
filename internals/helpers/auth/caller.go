package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tutly_backend/internals/constants"
)

// Nama locals yang diisi middleware AuthJWT.
const (
	LocUserID         = "user_id"
	LocUsername       = "username"
	LocRole           = "userRole"
	LocOrganizationID = "organization_id"
)

// Caller adalah identitas pemanggil yang sudah terverifikasi dari token.
type Caller struct {
	UserID         uuid.UUID
	Username       string
	Role           string
	OrganizationID uuid.UUID
}

func (c Caller) IsStudent() bool    { return c.Role == constants.RoleStudent }
func (c Caller) IsMentor() bool     { return c.Role == constants.RoleMentor }
func (c Caller) IsInstructor() bool { return c.Role == constants.RoleInstructor || c.Role == constants.RoleAdmin }

func localString(c *fiber.Ctx, key string) string {
	if v, ok := c.Locals(key).(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// GetCaller membaca identitas dari locals. 401 bila token tidak lengkap.
func GetCaller(c *fiber.Ctx) (Caller, error) {
	if cl, ok := c.Locals("caller").(Caller); ok {
		return cl, nil
	}

	uid, err := uuid.Parse(localString(c, LocUserID))
	if err != nil {
		return Caller{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - user_id tidak valid")
	}
	username := localString(c, LocUsername)
	if username == "" {
		return Caller{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - username tidak ada di token")
	}
	role := strings.ToUpper(localString(c, LocRole))
	if !constants.IsKnownRole(role) {
		return Caller{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - role tidak dikenali")
	}
	orgID, err := uuid.Parse(localString(c, LocOrganizationID))
	if err != nil {
		return Caller{}, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - organization_id tidak valid")
	}

	cl := Caller{UserID: uid, Username: username, Role: role, OrganizationID: orgID}
	c.Locals("caller", cl)
	return cl, nil
}
