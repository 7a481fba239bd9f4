package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"

	model "tutly_backend/internals/features/learning/attendance/model"
	helper "tutly_backend/internals/helpers"
	helperAuth "tutly_backend/internals/helpers/auth"
	"tutly_backend/internals/store"
)

type Service struct {
	Store store.Store
}

func New(st store.Store) *Service {
	return &Service{Store: st}
}

type RecordInput struct {
	Username         string
	Attended         bool
	AttendedDuration *int
	Data             []byte
}

// Mark meng-upsert kehadiran per (username, class). Semua username harus
// anggota organisasi caller; satu saja gagal maka tidak ada yang ditulis.
func (s *Service) Mark(ctx context.Context, caller helperAuth.Caller, classID uuid.UUID, records []RecordInput) ([]model.AttendanceModel, error) {
	if err := helperAuth.Check(helperAuth.OpAttendanceMark, caller); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.Wrap(helper.ErrInvalidInput, "records kosong")
	}
	class, err := s.Store.GetClass(ctx, classID)
	if err != nil {
		return nil, errors.Wrap(err, "load class")
	}
	if class.ClassCourseID != nil {
		course, err := s.Store.GetCourse(ctx, *class.ClassCourseID)
		if err != nil {
			return nil, errors.Wrap(err, "load course")
		}
		if course.CourseOrganizationID != caller.OrganizationID {
			return nil, helperAuth.ErrForbidden
		}
	}

	seen := make(map[string]struct{}, len(records))
	rows := make([]model.AttendanceModel, 0, len(records))
	for _, r := range records {
		if _, dup := seen[r.Username]; dup {
			return nil, errors.Wrapf(helper.ErrInvalidInput, "username %s ganda", r.Username)
		}
		seen[r.Username] = struct{}{}

		u, err := s.Store.GetUserByUsername(ctx, r.Username)
		if errors.Is(err, store.ErrNotFound) || (err == nil && u.UserOrganizationID != caller.OrganizationID) {
			return nil, errors.Wrapf(helper.ErrInvalidInput, "user %s tidak dikenal", r.Username)
		}
		if err != nil {
			return nil, errors.Wrap(err, "load user")
		}
		row := model.AttendanceModel{
			AttendanceUsername:         r.Username,
			AttendanceClassID:          classID,
			AttendanceAttended:         r.Attended,
			AttendanceAttendedDuration: r.AttendedDuration,
		}
		if len(r.Data) > 0 {
			row.AttendanceData = datatypes.JSON(r.Data)
		}
		rows = append(rows, row)
	}

	if err := s.Store.UpsertAttendance(ctx, rows); err != nil {
		return nil, errors.Wrap(err, "upsert attendance")
	}
	return rows, nil
}

func (s *Service) ListMine(ctx context.Context, caller helperAuth.Caller) ([]model.AttendanceModel, error) {
	if err := helperAuth.Check(helperAuth.OpAttendanceRead, caller); err != nil {
		return nil, err
	}
	rows, err := s.Store.ListAttendanceByUsername(ctx, caller.Username)
	if err != nil {
		return nil, errors.Wrap(err, "list attendance")
	}
	return rows, nil
}
