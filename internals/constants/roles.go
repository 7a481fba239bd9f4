package constants

import "fmt"

const (
	RoleStudent    = "STUDENT"
	RoleMentor     = "MENTOR"
	RoleInstructor = "INSTRUCTOR"
	RoleAdmin      = "ADMIN"
)

// Template pesan error role
const (
	ErrOnlyGradersCanAccess     = "Only mentors, instructors or admins may access %s."
	ErrOnlyInstructorsCanAccess = "Only instructors or admins may access %s."
)

func RoleErrorGrader(feature string) string {
	return fmt.Sprintf(ErrOnlyGradersCanAccess, feature)
}

func RoleErrorInstructor(feature string) string {
	return fmt.Sprintf(ErrOnlyInstructorsCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleStudent,
		RoleMentor,
		RoleInstructor,
		RoleAdmin,
	}

	GraderRoles = []string{
		RoleMentor,
		RoleInstructor,
		RoleAdmin,
	}

	InstructorAndAbove = []string{
		RoleInstructor,
		RoleAdmin,
	}
)

// IsKnownRole reports whether role is one of AllRoles.
func IsKnownRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
