package route

import (
	"github.com/gofiber/fiber/v2"

	ctl "tutly_backend/internals/features/grading/reports/controller"
	service "tutly_backend/internals/features/grading/reports/service"
	helperAuth "tutly_backend/internals/helpers/auth"
	"tutly_backend/internals/middlewares"
	authMiddleware "tutly_backend/internals/middlewares/auth"
)

// /api/g
func ReportGraderRoutes(r fiber.Router, svc *service.Service) {
	h := ctl.NewReportController(svc)
	g := r.Group("/reports", middlewares.ReportRateLimiter(), authMiddleware.Require(helperAuth.OpReportGenerate))
	g.Get("/:course_id", h.Generate)
	g.Get("/:course_id/csv", h.CSV)
}
