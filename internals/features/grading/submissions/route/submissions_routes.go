package route

import (
	"github.com/gofiber/fiber/v2"

	ctl "tutly_backend/internals/features/grading/submissions/controller"
	service "tutly_backend/internals/features/grading/submissions/service"
	helperAuth "tutly_backend/internals/helpers/auth"
	authMiddleware "tutly_backend/internals/middlewares/auth"
)

// /api/u
func SubmissionUserRoutes(r fiber.Router, svc *service.Service) {
	h := ctl.NewSubmissionController(svc)
	g := r.Group("/submissions")
	g.Post("/", authMiddleware.Require(helperAuth.OpSubmissionCreate), h.Create)
	g.Patch("/:id", authMiddleware.Require(helperAuth.OpSubmissionEdit), h.Edit)
	g.Get("/:id", authMiddleware.Require(helperAuth.OpSubmissionRead), h.Get)
}

// /api/g
func SubmissionGraderRoutes(r fiber.Router, svc *service.Service) {
	h := ctl.NewSubmissionController(svc)
	r.Get("/attachments/:id/submissions", authMiddleware.Require(helperAuth.OpSubmissionList), h.ListByAttachment)
	r.Patch("/submissions/:id/feedback", authMiddleware.Require(helperAuth.OpSubmissionFeedback), h.Feedback)
	r.Delete("/submissions/:id", authMiddleware.Require(helperAuth.OpSubmissionDelete), h.Delete)
}
