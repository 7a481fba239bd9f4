package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	dto "tutly_backend/internals/features/learning/attendance/dto"
	service "tutly_backend/internals/features/learning/attendance/service"
	helper "tutly_backend/internals/helpers"
	helperAuth "tutly_backend/internals/helpers/auth"
)

type AttendanceController struct {
	Service   *service.Service
	Validator *validator.Validate
}

func NewAttendanceController(svc *service.Service) *AttendanceController {
	return &AttendanceController{Service: svc, Validator: validator.New()}
}

// POST /api/g/attendance
func (ctl *AttendanceController) Mark(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var req dto.MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	in := make([]service.RecordInput, 0, len(req.Records))
	for _, r := range req.Records {
		in = append(in, service.RecordInput{
			Username:         strings.TrimSpace(r.Username),
			Attended:         r.Attended,
			AttendedDuration: r.AttendedDuration,
			Data:             r.Data,
		})
	}
	rows, err := ctl.Service.Mark(c.UserContext(), caller, req.ClassID, in)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Kehadiran disimpan", fiber.Map{"class_id": req.ClassID, "count": len(rows)})
}

// GET /api/u/attendance/me
func (ctl *AttendanceController) ListMine(c *fiber.Ctx) error {
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
