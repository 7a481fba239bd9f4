// file: internals/features/grading/points/controller/points_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	dto "tutly_backend/internals/features/grading/points/dto"
	model "tutly_backend/internals/features/grading/points/model"
	service "tutly_backend/internals/features/grading/points/service"
	helper "tutly_backend/internals/helpers"
	helperAuth "tutly_backend/internals/helpers/auth"
)

type PointController struct {
	Service   *service.Service
	Validator *validator.Validate
}

func NewPointController(svc *service.Service) *PointController {
	return &PointController{Service: svc, Validator: validator.New()}
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "submission id tidak valid")
	}
	return id, nil
}

/*
	POST /api/g/submissions/:id/points
	Body: { "points": [{ "category": "STYLING", "score": 8, "feedback": "..." }] }
*/
func (ctl *PointController) Grade(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.GradeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "payload tidak valid")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	inputs := make([]service.PointInput, 0, len(req.Points))
	for _, p := range req.Points {
		inputs = append(inputs, service.PointInput{
			Category: model.Category(p.Category),
			Score:    *p.Score,
			Feedback: p.Feedback,
		})
	}

	points, err := ctl.Service.Grade(c.UserContext(), caller, id, inputs)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Nilai berhasil disimpan", dto.FromModels(points))
}

// GET /api/u/submissions/:id/points
func (ctl *PointController) List(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	points, err := ctl.Service.List(c.UserContext(), caller, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModels(points))
}

// GET /api/u/submissions/:id/score
func (ctl *PointController) Score(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	score, err := ctl.Service.Score(c.UserContext(), caller, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.ScoreResponse{SubmissionID: id, Score: score})
}
