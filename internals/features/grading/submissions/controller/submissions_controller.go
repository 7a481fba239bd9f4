// file: internals/features/grading/submissions/controller/submissions_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	dto "tutly_backend/internals/features/grading/submissions/dto"
	service "tutly_backend/internals/features/grading/submissions/service"
	helper "tutly_backend/internals/helpers"
	helperAuth "tutly_backend/internals/helpers/auth"
)

type SubmissionController struct {
	Service   *service.Service
	Validator *validator.Validate
}

func NewSubmissionController(svc *service.Service) *SubmissionController {
	return &SubmissionController{Service: svc, Validator: validator.New()}
}

func parseID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, name+" tidak valid")
	}
	return id, nil
}

// POST /api/u/submissions
func (ctl *SubmissionController) Create(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.CreateSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	sub, err := ctl.Service.Create(c.UserContext(), caller, service.CreateInput{
		AttachmentID: req.AttachmentID,
		CourseID:     req.CourseID,
		Data:         []byte(req.Data),
		Link:         req.SubmissionLink,
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Submission berhasil dibuat", dto.FromModel(sub, ctl.Service.Now()))
}

// PATCH /api/u/submissions/:id
func (ctl *SubmissionController) Edit(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.EditSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	in := service.EditInput{Link: req.SubmissionLink}
	if len(req.Data) > 0 {
		in.Data = []byte(req.Data)
	}
	sub, err := ctl.Service.Edit(c.UserContext(), caller, id, in)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Submission diperbarui", dto.FromModel(sub, ctl.Service.Now()))
}

// GET /api/u/submissions/:id
func (ctl *SubmissionController) Get(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	d, err := ctl.Service.Get(c.UserContext(), caller, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.WithOwner(dto.FromModel(d.Submission, ctl.Service.Now()), d.Owner))
}

// GET /api/g/attachments/:id/submissions?page=&per_page=
func (ctl *SubmissionController) ListByAttachment(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := ctl.Service.ListByAttachment(c.UserContext(), caller, id, p.Limit, p.Offset)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	pg := helper.BuildPagination(total, p, len(rows))
	return helper.JsonList(c, "ok", dto.FromOwnerRows(rows), &pg)
}

// PATCH /api/g/submissions/:id/feedback
func (ctl *SubmissionController) Feedback(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	sub, err := ctl.Service.SetFeedback(c.UserContext(), caller, id, req.OverallFeedback)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Feedback disimpan", dto.FromModel(sub, ctl.Service.Now()))
}

// DELETE /api/g/submissions/:id
func (ctl *SubmissionController) Delete(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := ctl.Service.Delete(c.UserContext(), caller, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Submission dihapus", fiber.Map{"success": true, "submission_id": id})
}
