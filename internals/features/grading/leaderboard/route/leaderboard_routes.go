package route

import (
	"github.com/gofiber/fiber/v2"

	ctl "tutly_backend/internals/features/grading/leaderboard/controller"
	service "tutly_backend/internals/features/grading/leaderboard/service"
	helperAuth "tutly_backend/internals/helpers/auth"
	authMiddleware "tutly_backend/internals/middlewares/auth"
)

// /api/u
func LeaderboardUserRoutes(r fiber.Router, svc *service.Service) {
	h := ctl.NewLeaderboardController(svc)
	g := r.Group("/leaderboard")
	g.Get("/", authMiddleware.Require(helperAuth.OpLeaderboardPeer), h.Peer)
	g.Get("/mentor", authMiddleware.Require(helperAuth.OpLeaderboardMentor), h.Mentor)
}
