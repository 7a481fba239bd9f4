package controller

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	service "tutly_backend/internals/features/grading/reports/service"
	helper "tutly_backend/internals/helpers"
	helperAuth "tutly_backend/internals/helpers/auth"
)

type ReportController struct {
	Service *service.Service
}

func NewReportController(svc *service.Service) *ReportController {
	return &ReportController{Service: svc}
}

func parseCourseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("course_id")))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "course_id tidak valid")
	}
	return id, nil
}

// GET /api/g/reports/:course_id
func (ctl *ReportController) Generate(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	courseID, err := parseCourseID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	rows, err := ctl.Service.Generate(c.UserContext(), caller, courseID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "ok", rows)
}

// GET /api/g/reports/:course_id/csv
func (ctl *ReportController) CSV(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	courseID, err := parseCourseID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	out, err := ctl.Service.GenerateCSV(c.UserContext(), caller, courseID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="report-%s.csv"`, courseID))
	return c.Status(fiber.StatusOK).Send(out)
}
