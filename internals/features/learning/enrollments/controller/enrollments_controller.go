package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	dto "tutly_backend/internals/features/learning/enrollments/dto"
	service "tutly_backend/internals/features/learning/enrollments/service"
	helper "tutly_backend/internals/helpers"
	helperAuth "tutly_backend/internals/helpers/auth"
)

type EnrollmentController struct {
	Service   *service.Service
	Validator *validator.Validate
}

func NewEnrollmentController(svc *service.Service) *EnrollmentController {
	return &EnrollmentController{Service: svc, Validator: validator.New()}
}

func (ctl *EnrollmentController) getID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "enrollment id tidak valid")
	}
	return id, nil
}

// POST /api/i/enrollments
func (ctl *EnrollmentController) Create(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.CreateEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	e, err := ctl.Service.Create(c.UserContext(), caller, service.CreateInput{
		Username:       req.Username,
		CourseID:       req.CourseID,
		MentorUsername: req.MentorUsername,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
	})
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Enrollment dibuat", e)
}

// PATCH /api/i/enrollments/:id/mentor
func (ctl *EnrollmentController) UpdateMentor(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := ctl.getID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.UpdateMentorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	e, err := ctl.Service.UpdateMentor(c.UserContext(), caller, id, req.MentorUsername)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Mentor diperbarui", e)
}

// DELETE /api/i/enrollments/:id
func (ctl *EnrollmentController) Delete(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := ctl.getID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := ctl.Service.Delete(c.UserContext(), caller, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Enrollment dihapus", fiber.Map{"enrolled_user_id": id})
}

// GET /api/u/enrollments/me
func (ctl *EnrollmentController) ListMine(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	rows, err := ctl.Service.ListMine(c.UserContext(), caller)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "ok", rows)
}
