package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	dto "tutly_backend/internals/features/learning/attachments/dto"
	model "tutly_backend/internals/features/learning/attachments/model"
	service "tutly_backend/internals/features/learning/attachments/service"
	helper "tutly_backend/internals/helpers"
	helperAuth "tutly_backend/internals/helpers/auth"
)

type AttachmentController struct {
	Service   *service.Service
	Validator *validator.Validate
}

func NewAttachmentController(svc *service.Service) *AttachmentController {
	return &AttachmentController{Service: svc, Validator: validator.New()}
}

// POST /api/i/attachments
func (ctl *AttachmentController) Create(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.CreateAttachmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	req.Title = strings.TrimSpace(req.Title)
	req.SubmissionMode = strings.ToUpper(strings.TrimSpace(req.SubmissionMode))
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	a, err := ctl.Service.Create(c.UserContext(), caller, service.CreateInput{
		Title:          req.Title,
		ClassID:        req.ClassID,
		CourseID:       req.CourseID,
		DueDate:        req.DueDate,
		MaxSubmissions: req.MaxSubmissions,
		Mode:           model.SubmissionMode(req.SubmissionMode),
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Attachment dibuat", dto.FromModel(a))
}

// GET /api/u/attachments/:id
func (ctl *AttachmentController) Get(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "attachment id tidak valid")
	}
	a, err := ctl.Service.Get(c.UserContext(), caller, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(a))
}
