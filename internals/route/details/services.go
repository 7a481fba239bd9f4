package details

import (
	"time"

	eventService "tutly_backend/internals/features/grading/events/service"
	leaderboardService "tutly_backend/internals/features/grading/leaderboard/service"
	pointService "tutly_backend/internals/features/grading/points/service"
	reportService "tutly_backend/internals/features/grading/reports/service"
	submissionService "tutly_backend/internals/features/grading/submissions/service"
	attachmentService "tutly_backend/internals/features/learning/attachments/service"
	attendanceService "tutly_backend/internals/features/learning/attendance/service"
	enrollmentService "tutly_backend/internals/features/learning/enrollments/service"
	"tutly_backend/internals/store"
)

// Services: satu instance per proses, dibagi ke semua group route.
type Services struct {
	Submissions *submissionService.Service
	Points      *pointService.Service
	Leaderboard *leaderboardService.Service
	Reports     *reportService.Service
	Events      *eventService.Service
	Enrollments *enrollmentService.Service
	Attachments *attachmentService.Service
	Attendance  *attendanceService.Service
}

func NewServices(st store.Store, editWindow time.Duration, loc *time.Location) *Services {
	events := eventService.New(st)
	return &Services{
		Submissions: submissionService.New(st, editWindow),
		Points:      pointService.New(st, events),
		Leaderboard: leaderboardService.New(st, loc),
		Reports:     reportService.New(st),
		Events:      events,
		Enrollments: enrollmentService.New(st),
		Attachments: attachmentService.New(st),
		Attendance:  attendanceService.New(st),
	}
}
