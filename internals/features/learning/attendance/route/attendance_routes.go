package route

import (
	"github.com/gofiber/fiber/v2"

	ctl "tutly_backend/internals/features/learning/attendance/controller"
	service "tutly_backend/internals/features/learning/attendance/service"
	helperAuth "tutly_backend/internals/helpers/auth"
	authMiddleware "tutly_backend/internals/middlewares/auth"
)

func AttendanceGraderRoutes(r fiber.Router, svc *service.Service) {
	h := ctl.NewAttendanceController(svc)
	r.Post("/attendance", authMiddleware.Require(helperAuth.OpAttendanceMark), h.Mark)
}

func AttendanceUserRoutes(r fiber.Router, svc *service.Service) {
	h := ctl.NewAttendanceController(svc)
	r.Get("/attendance/me", authMiddleware.Require(helperAuth.OpAttendanceRead), h.ListMine)
}
