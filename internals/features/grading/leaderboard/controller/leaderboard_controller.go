package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	service "tutly_backend/internals/features/grading/leaderboard/service"
	helper "tutly_backend/internals/helpers"
	helperAuth "tutly_backend/internals/helpers/auth"
)

type LeaderboardController struct {
	Service *service.Service
}

func NewLeaderboardController(svc *service.Service) *LeaderboardController {
	return &LeaderboardController{Service: svc}
}

// GET /api/u/leaderboard?course_id=
func (ctl *LeaderboardController) Peer(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var courseID *uuid.UUID
	if v := strings.TrimSpace(c.Query("course_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "course_id tidak valid")
		}
		courseID = &id
	}
	res, err := ctl.Service.Peer(c.UserContext(), caller, courseID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "ok", res)
}

// GET /api/u/leaderboard/mentor
func (ctl *LeaderboardController) Mentor(c *fiber.Ctx) error {
	caller, err := helperAuth.GetCaller(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	entries, err := ctl.Service.Mentor(c.UserContext(), caller)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "ok", entries)
}
