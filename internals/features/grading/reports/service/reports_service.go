package service

import (
	"context"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	dto "tutly_backend/internals/features/grading/reports/dto"
	helperAuth "tutly_backend/internals/helpers/auth"
	"tutly_backend/internals/store"
)

type Service struct {
	Store store.Store
}

func New(st store.Store) *Service {
	return &Service{Store: st}
}

// Generate: student ditolak sebelum data dibaca. Mentor hanya melihat mentee sendiri.
func (s *Service) Generate(ctx context.Context, caller helperAuth.Caller, courseID uuid.UUID) ([]dto.ReportRow, error) {
	if err := helperAuth.Check(helperAuth.OpReportGenerate, caller); err != nil {
		return nil, err
	}
	course, err := s.Store.GetCourse(ctx, courseID)
	if err != nil {
		return nil, errors.Wrap(err, "load course")
	}
	if course.CourseOrganizationID != caller.OrganizationID {
		return nil, helperAuth.ErrForbidden
	}

	facts := Facts{}
	if caller.IsMentor() {
		facts.MentorUsername = caller.Username
	}

	if facts.Enrollments, err = s.Store.ListCourseStudents(ctx, courseID, caller.OrganizationID); err != nil {
		return nil, errors.Wrap(err, "list course students")
	}
	orgID := caller.OrganizationID
	if facts.Submissions, _, err = s.Store.ListSubmissionOwners(ctx, store.SubmissionFilter{
		OrganizationID: &orgID,
		CourseID:       &courseID,
	}); err != nil {
		return nil, errors.Wrap(err, "list submissions")
	}
	if facts.Attended, err = s.Store.CountAttendedByUsername(ctx); err != nil {
		return nil, errors.Wrap(err, "count attendance")
	}
	if facts.Points, err = s.Store.ListPointOwners(ctx); err != nil {
		return nil, errors.Wrap(err, "list points")
	}
	if facts.TotalClasses, err = s.Store.CountClasses(ctx); err != nil {
		return nil, errors.Wrap(err, "count classes")
	}

	return Build(facts), nil
}

func (s *Service) GenerateCSV(ctx context.Context, caller helperAuth.Caller, courseID uuid.UUID) ([]byte, error) {
	rows, err := s.Generate(ctx, caller, courseID)
	if err != nil {
		return nil, err
	}
	out, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, errors.Wrap(err, "encode csv")
	}
	return out, nil
}
