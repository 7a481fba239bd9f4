package route

import (
	"github.com/gofiber/fiber/v2"

	ctl "tutly_backend/internals/features/learning/enrollments/controller"
	service "tutly_backend/internals/features/learning/enrollments/service"
	helperAuth "tutly_backend/internals/helpers/auth"
	authMiddleware "tutly_backend/internals/middlewares/auth"
)

// /api/i
func EnrollmentInstructorRoutes(r fiber.Router, svc *service.Service) {
	h := ctl.NewEnrollmentController(svc)
	g := r.Group("/enrollments", authMiddleware.Require(helperAuth.OpEnrollmentManage))
	g.Post("/", h.Create)
	g.Patch("/:id/mentor", h.UpdateMentor)
	g.Delete("/:id", h.Delete)
}

// /api/u
func EnrollmentUserRoutes(r fiber.Router, svc *service.Service) {
	h := ctl.NewEnrollmentController(svc)
	r.Get("/enrollments/me", authMiddleware.Require(helperAuth.OpEnrollmentRead), h.ListMine)
}
