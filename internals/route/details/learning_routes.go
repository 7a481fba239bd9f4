package details

import (
	"github.com/gofiber/fiber/v2"

	AttachmentRoute "tutly_backend/internals/features/learning/attachments/route"
	AttendanceRoute "tutly_backend/internals/features/learning/attendance/route"
	EnrollmentRoute "tutly_backend/internals/features/learning/enrollments/route"
)

func LearningUserRoutes(r fiber.Router, s *Services) {
	EnrollmentRoute.EnrollmentUserRoutes(r, s.Enrollments)
	AttachmentRoute.AttachmentUserRoutes(r, s.Attachments)
	AttendanceRoute.AttendanceUserRoutes(r, s.Attendance)
}

func LearningGraderRoutes(r fiber.Router, s *Services) {
	AttendanceRoute.AttendanceGraderRoutes(r, s.Attendance)
}

func LearningInstructorRoutes(r fiber.Router, s *Services) {
	EnrollmentRoute.EnrollmentInstructorRoutes(r, s.Enrollments)
	AttachmentRoute.AttachmentInstructorRoutes(r, s.Attachments)
}
