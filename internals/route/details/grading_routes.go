package details

import (
	"github.com/gofiber/fiber/v2"

	LeaderboardRoute "tutly_backend/internals/features/grading/leaderboard/route"
	PointRoute "tutly_backend/internals/features/grading/points/route"
	ReportRoute "tutly_backend/internals/features/grading/reports/route"
	SubmissionRoute "tutly_backend/internals/features/grading/submissions/route"
)

// /api/u
func GradingUserRoutes(r fiber.Router, s *Services) {
	SubmissionRoute.SubmissionUserRoutes(r, s.Submissions)
	PointRoute.PointUserRoutes(r, s.Points)
	LeaderboardRoute.LeaderboardUserRoutes(r, s.Leaderboard)
}

// /api/g
func GradingGraderRoutes(r fiber.Router, s *Services) {
	SubmissionRoute.SubmissionGraderRoutes(r, s.Submissions)
	PointRoute.PointGraderRoutes(r, s.Points)
	ReportRoute.ReportGraderRoutes(r, s.Reports)
}
