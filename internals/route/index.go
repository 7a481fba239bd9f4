package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"tutly_backend/internals/configs"
	"tutly_backend/internals/constants"
	authMiddleware "tutly_backend/internals/middlewares/auth"
	routeDetails "tutly_backend/internals/route/details"
	"tutly_backend/internals/store"
)

var startTime time.Time

// SetupRoutes memasang semua group. Role di-cek dua kali: per group (kasar)
// dan per route lewat policy operasi.
func SetupRoutes(app *fiber.App, st store.Store, cfg configs.Config, ping func() error) *routeDetails.Services {
	startTime = time.Now()

	loc := configs.AppLocation
	if loc == nil {
		loc = time.UTC
	}
	svcs := routeDetails.NewServices(st, cfg.SubmissionEditWindow, loc)

	BaseRoutes(app, ping)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u", authMiddleware.AuthMiddleware(st))

	// ===================== GRADER (mentor ke atas) =====================
	log.Println("[INFO] Setting up GRADER group...")
	grader := app.Group("/api/g",
		authMiddleware.AuthMiddleware(st),
		authMiddleware.OnlyRoles(constants.RoleErrorGrader("this endpoint"), constants.GraderRoles...),
	)

	// ===================== INSTRUCTOR =====================
	log.Println("[INFO] Setting up INSTRUCTOR group...")
	instructor := app.Group("/api/i",
		authMiddleware.AuthMiddleware(st),
		authMiddleware.OnlyRoles(constants.RoleErrorInstructor("this endpoint"), constants.InstructorAndAbove...),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting Grading routes...")
	routeDetails.GradingUserRoutes(user, svcs)
	routeDetails.GradingGraderRoutes(grader, svcs)

	log.Println("[INFO] Mounting Learning routes...")
	routeDetails.LearningUserRoutes(user, svcs)
	routeDetails.LearningGraderRoutes(grader, svcs)
	routeDetails.LearningInstructorRoutes(instructor, svcs)

	return svcs
}
