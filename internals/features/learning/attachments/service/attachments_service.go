package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	model "tutly_backend/internals/features/learning/attachments/model"
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

type CreateInput struct {
	Title          string
	ClassID        *uuid.UUID
	CourseID       *uuid.UUID
	DueDate        *time.Time
	MaxSubmissions *int
	Mode           model.SubmissionMode
}

func ValidMode(m model.SubmissionMode) bool {
	switch m {
	case model.SubmissionModeHTMLCSSJS, model.SubmissionModeReact, model.SubmissionModeExternalLink,
		model.SubmissionModeGithub, model.SubmissionModeSandbox:
		return true
	}
	return false
}

// Create: minimal salah satu class_id / course_id. Bila hanya class_id,
// course diturunkan dari class.
func (s *Service) Create(ctx context.Context, caller helperAuth.Caller, in CreateInput) (*model.AttachmentModel, error) {
	if err := helperAuth.Check(helperAuth.OpAttachmentManage, caller); err != nil {
		return nil, err
	}
	if in.Mode == "" {
		in.Mode = model.SubmissionModeHTMLCSSJS
	}
	if !ValidMode(in.Mode) {
		return nil, errors.Wrapf(helper.ErrInvalidInput, "submission_mode %q", in.Mode)
	}
	if in.MaxSubmissions != nil && *in.MaxSubmissions < 1 {
		return nil, errors.Wrap(helper.ErrInvalidInput, "max_submissions minimal 1")
	}

	courseID := in.CourseID
	if in.ClassID != nil {
		class, err := s.Store.GetClass(ctx, *in.ClassID)
		if err != nil {
			return nil, errors.Wrap(err, "load class")
		}
		switch {
		case class.ClassCourseID == nil:
		case courseID == nil:
			courseID = class.ClassCourseID
		case *courseID != *class.ClassCourseID:
			return nil, errors.Wrap(helper.ErrInvalidInput, "class bukan bagian dari course")
		}
	}
	if courseID == nil {
		return nil, errors.Wrap(helper.ErrInvalidInput, "class_id atau course_id wajib")
	}
	course, err := s.Store.GetCourse(ctx, *courseID)
	if err != nil {
		return nil, errors.Wrap(err, "load course")
	}
	if course.CourseOrganizationID != caller.OrganizationID {
		return nil, helperAuth.ErrForbidden
	}

	createdBy := caller.Username
	a := &model.AttachmentModel{
		AttachmentTitle:          in.Title,
		AttachmentClassID:        in.ClassID,
		AttachmentCourseID:       courseID,
		AttachmentDueDate:        in.DueDate,
		AttachmentMaxSubmissions: in.MaxSubmissions,
		AttachmentSubmissionMode: in.Mode,
		AttachmentCreatedBy:      &createdBy,
	}
	if err := s.Store.CreateAttachment(ctx, a); err != nil {
		return nil, errors.Wrap(err, "create attachment")
	}
	return a, nil
}

// Get hanya untuk attachment di organisasi caller; selain itu dianggap tidak ada.
func (s *Service) Get(ctx context.Context, caller helperAuth.Caller, id uuid.UUID) (*model.AttachmentModel, error) {
	if err := helperAuth.Check(helperAuth.OpAttachmentRead, caller); err != nil {
		return nil, err
	}
	a, err := s.Store.GetAttachment(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "load attachment")
	}
	if a.AttachmentCourseID != nil {
		course, err := s.Store.GetCourse(ctx, *a.AttachmentCourseID)
		if err != nil {
			return nil, errors.Wrap(err, "load course")
		}
		if course.CourseOrganizationID != caller.OrganizationID {
			return nil, store.ErrNotFound
		}
	}
	return a, nil
}
