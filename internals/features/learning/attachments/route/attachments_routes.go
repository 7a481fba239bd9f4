package route

import (
	"github.com/gofiber/fiber/v2"

	ctl "tutly_backend/internals/features/learning/attachments/controller"
	service "tutly_backend/internals/features/learning/attachments/service"
	helperAuth "tutly_backend/internals/helpers/auth"
	authMiddleware "tutly_backend/internals/middlewares/auth"
)

func AttachmentInstructorRoutes(r fiber.Router, svc *service.Service) {
	h := ctl.NewAttachmentController(svc)
	r.Post("/attachments", authMiddleware.Require(helperAuth.OpAttachmentManage), h.Create)
}

func AttachmentUserRoutes(r fiber.Router, svc *service.Service) {
	h := ctl.NewAttachmentController(svc)
	r.Get("/attachments/:id", authMiddleware.Require(helperAuth.OpAttachmentRead), h.Get)
}
