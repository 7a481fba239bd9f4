package route

import (
	"github.com/gofiber/fiber/v2"

	ctl "tutly_backend/internals/features/grading/points/controller"
	service "tutly_backend/internals/features/grading/points/service"
	helperAuth "tutly_backend/internals/helpers/auth"
	authMiddleware "tutly_backend/internals/middlewares/auth"
)

// /api/g
func PointGraderRoutes(r fiber.Router, svc *service.Service) {
	h := ctl.NewPointController(svc)
	r.Post("/submissions/:id/points", authMiddleware.Require(helperAuth.OpGradePoints), h.Grade)
}

// /api/u
func PointUserRoutes(r fiber.Router, svc *service.Service) {
	h := ctl.NewPointController(svc)
	r.Get("/submissions/:id/points", authMiddleware.Require(helperAuth.OpSubmissionRead), h.List)
	r.Get("/submissions/:id/score", authMiddleware.Require(helperAuth.OpScoreRead), h.Score)
}
