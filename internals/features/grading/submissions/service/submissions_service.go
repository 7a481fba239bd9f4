package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"

	model "tutly_backend/internals/features/grading/submissions/model"
	enrollmentModel "tutly_backend/internals/features/learning/enrollments/model"
	helper "tutly_backend/internals/helpers"
	helperAuth "tutly_backend/internals/helpers/auth"
	"tutly_backend/internals/store"
)

const DefaultEditWindow = 15 * time.Minute

type Service struct {
	Store      store.Store
	EditWindow time.Duration
	Now        func() time.Time
}

func New(st store.Store, editWindow time.Duration) *Service {
	if editWindow <= 0 {
		editWindow = DefaultEditWindow
	}
	return &Service{Store: st, EditWindow: editWindow, Now: time.Now}
}

type CreateInput struct {
	AttachmentID uuid.UUID
	CourseID     *uuid.UUID
	Data         []byte
	Link         *string
}

// Create: enrollment caller untuk course attachment di-resolve, batas max_submissions
// hanya berlaku untuk role student.
func (s *Service) Create(ctx context.Context, caller helperAuth.Caller, in CreateInput) (*model.SubmissionModel, error) {
	if err := helperAuth.Check(helperAuth.OpSubmissionCreate, caller); err != nil {
		return nil, err
	}
	att, err := s.Store.GetAttachment(ctx, in.AttachmentID)
	if err != nil {
		return nil, errors.Wrap(err, "load attachment")
	}

	courseID := att.AttachmentCourseID
	if courseID == nil {
		courseID = in.CourseID
	}
	if courseID == nil {
		return nil, errors.Wrap(helper.ErrInvalidInput, "course_id wajib untuk attachment tanpa course")
	}

	now := s.Now()
	enrollment, err := s.resolveEnrollment(ctx, caller.Username, *courseID, now)
	if err != nil {
		return nil, err
	}

	if att.AttachmentMaxSubmissions != nil && caller.IsStudent() {
		n, err := s.Store.CountSubmissions(ctx, enrollment.EnrolledUserID, att.AttachmentID)
		if err != nil {
			return nil, errors.Wrap(err, "count submissions")
		}
		if n >= int64(*att.AttachmentMaxSubmissions) {
			return nil, helper.ErrSubmissionLimit
		}
	}

	sub := &model.SubmissionModel{
		SubmissionEnrolledUserID: enrollment.EnrolledUserID,
		SubmissionAttachmentID:   att.AttachmentID,
		SubmissionData:           datatypes.JSON(in.Data),
		SubmissionLink:           in.Link,
		SubmissionEditableTill:   now.Add(s.EditWindow),
		SubmissionCreatedAt:      now,
		SubmissionUpdatedAt:      now,
	}
	if err := s.Store.CreateSubmission(ctx, sub); err != nil {
		return nil, errors.Wrap(err, "create submission")
	}
	return sub, nil
}

// resolveEnrollment memilih enrollment yang aktif pada now; bila tidak ada, enrollment mana pun di course.
func (s *Service) resolveEnrollment(ctx context.Context, username string, courseID uuid.UUID, now time.Time) (*enrollmentModel.EnrolledUserModel, error) {
	rows, err := s.Store.ListEnrollmentsByUsername(ctx, username)
	if err != nil {
		return nil, errors.Wrap(err, "list enrollments")
	}
	var fallback *enrollmentModel.EnrolledUserModel
	for i := range rows {
		e := &rows[i]
		if e.EnrolledUserCourseID == nil || *e.EnrolledUserCourseID != courseID {
			continue
		}
		if e.ActiveAt(now) {
			return e, nil
		}
		if fallback == nil {
			fallback = e
		}
	}
	if fallback == nil {
		return nil, helper.ErrNotEnrolled
	}
	return fallback, nil
}

type EditInput struct {
	Data []byte
	Link *string
}

// Edit: hanya pemilik, dan hanya sebelum editable_till. editable_till tidak diubah.
func (s *Service) Edit(ctx context.Context, caller helperAuth.Caller, id uuid.UUID, in EditInput) (*model.SubmissionModel, error) {
	if err := helperAuth.Check(helperAuth.OpSubmissionEdit, caller); err != nil {
		return nil, err
	}
	owner, err := s.Store.GetSubmissionOwner(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "load submission")
	}
	if owner.Username != caller.Username {
		return nil, helperAuth.ErrForbidden
	}
	sub, err := s.Store.GetSubmission(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "load submission")
	}
	if !sub.Editable(s.Now()) {
		return nil, helper.ErrEditWindowClosed
	}
	if in.Data == nil && in.Link == nil {
		return sub, nil
	}
	if err := s.Store.UpdateSubmission(ctx, id, store.SubmissionPatch{Data: in.Data, Link: in.Link}); err != nil {
		return nil, errors.Wrap(err, "update submission")
	}
	return s.Store.GetSubmission(ctx, id)
}

type Detail struct {
	Submission *model.SubmissionModel
	Owner      *model.SubmissionOwnerRow
}

func (s *Service) Get(ctx context.Context, caller helperAuth.Caller, id uuid.UUID) (*Detail, error) {
	if err := helperAuth.Check(helperAuth.OpSubmissionRead, caller); err != nil {
		return nil, err
	}
	owner, err := s.Store.GetSubmissionOwner(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "load submission")
	}
	if !helperAuth.CanView(caller, owner.Username, owner.MentorUsername, owner.OrganizationID) {
		return nil, helperAuth.ErrForbidden
	}
	sub, err := s.Store.GetSubmission(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "load submission")
	}
	return &Detail{Submission: sub, Owner: owner}, nil
}

// ListByAttachment: mentor hanya melihat mentee sendiri, instructor seluruh organisasi.
func (s *Service) ListByAttachment(ctx context.Context, caller helperAuth.Caller, attachmentID uuid.UUID, limit, offset int) ([]model.SubmissionOwnerRow, int64, error) {
	if err := helperAuth.Check(helperAuth.OpSubmissionList, caller); err != nil {
		return nil, 0, err
	}
	if _, err := s.Store.GetAttachment(ctx, attachmentID); err != nil {
		return nil, 0, errors.Wrap(err, "load attachment")
	}
	orgID := caller.OrganizationID
	f := store.SubmissionFilter{
		OrganizationID: &orgID,
		AttachmentID:   &attachmentID,
		Limit:          limit,
		Offset:         offset,
	}
	if caller.IsMentor() {
		mentor := caller.Username
		f.MentorUsername = &mentor
	}
	rows, total, err := s.Store.ListSubmissionOwners(ctx, f)
	if err != nil {
		return nil, 0, errors.Wrap(err, "list submissions")
	}
	return rows, total, nil
}

func (s *Service) loadForGrader(ctx context.Context, caller helperAuth.Caller, op helperAuth.Operation, id uuid.UUID) error {
	if err := helperAuth.Check(op, caller); err != nil {
		return err
	}
	owner, err := s.Store.GetSubmissionOwner(ctx, id)
	if err != nil {
		return errors.Wrap(err, "load submission")
	}
	if !helperAuth.GraderInScope(caller, owner.MentorUsername, owner.OrganizationID) {
		return helperAuth.ErrForbidden
	}
	return nil
}

func (s *Service) SetFeedback(ctx context.Context, caller helperAuth.Caller, id uuid.UUID, feedback string) (*model.SubmissionModel, error) {
	if err := s.loadForGrader(ctx, caller, helperAuth.OpSubmissionFeedback, id); err != nil {
		return nil, err
	}
	if err := s.Store.UpdateSubmission(ctx, id, store.SubmissionPatch{OverallFeedback: &feedback}); err != nil {
		return nil, errors.Wrap(err, "update feedback")
	}
	return s.Store.GetSubmission(ctx, id)
}

// Delete menghapus submission beserta point-nya.
func (s *Service) Delete(ctx context.Context, caller helperAuth.Caller, id uuid.UUID) error {
	if err := s.loadForGrader(ctx, caller, helperAuth.OpSubmissionDelete, id); err != nil {
		return err
	}
	if err := s.Store.DeleteSubmission(ctx, id); err != nil {
		return errors.Wrap(err, "delete submission")
	}
	return nil
}
