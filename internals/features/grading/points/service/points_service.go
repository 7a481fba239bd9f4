package service

import (
	"context"
	"log"
	"sort"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	eventService "tutly_backend/internals/features/grading/events/service"
	model "tutly_backend/internals/features/grading/points/model"
	"tutly_backend/internals/features/grading/scoring"
	submissionModel "tutly_backend/internals/features/grading/submissions/model"
	helper "tutly_backend/internals/helpers"
	helperAuth "tutly_backend/internals/helpers/auth"
	"tutly_backend/internals/store"
)

type Service struct {
	Store  store.Store
	Events *eventService.Service
}

func New(st store.Store, events *eventService.Service) *Service {
	return &Service{Store: st, Events: events}
}

type PointInput struct {
	Category model.Category
	Score    int
	Feedback *string
}

// Grade meng-upsert skor per (submission, category) lalu menulis satu event.
// Category yang sama dua kali dalam satu panggilan: yang terakhir menang.
func (s *Service) Grade(ctx context.Context, caller helperAuth.Caller, submissionID uuid.UUID, inputs []PointInput) ([]model.PointModel, error) {
	if err := helperAuth.Check(helperAuth.OpGradePoints, caller); err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, errors.Wrap(helper.ErrInvalidInput, "points kosong")
	}
	for _, in := range inputs {
		if !in.Category.Valid() {
			return nil, errors.Wrapf(helper.ErrInvalidInput, "category %q tidak dikenal", in.Category)
		}
	}

	owner, err := s.Store.GetSubmissionOwner(ctx, submissionID)
	if err != nil {
		return nil, errors.Wrap(err, "load submission")
	}
	if !helperAuth.GraderInScope(caller, owner.MentorUsername, owner.OrganizationID) {
		return nil, helperAuth.ErrForbidden
	}

	categories := make([]string, 0, len(inputs))
	for _, in := range inputs {
		p := &model.PointModel{
			PointSubmissionID: &submissionID,
			PointCategory:     in.Category,
			PointScore:        in.Score,
			PointFeedback:     in.Feedback,
		}
		if err := s.Store.UpsertPoint(ctx, p); err != nil {
			return nil, errors.Wrapf(err, "upsert point %s", in.Category)
		}
		categories = append(categories, string(in.Category))
	}

	points, err := s.Store.ListPointsBySubmissions(ctx, []uuid.UUID{submissionID})
	if err != nil {
		return nil, errors.Wrap(err, "reload points")
	}
	sortPoints(points)

	if s.Events != nil {
		orgID := owner.OrganizationID
		if err := s.Events.RecordEvaluated(ctx, submissionID, caller.Username, &orgID, eventService.EvaluatedData{
			Categories: categories,
			Total:      scoring.SubmissionTotal(points),
		}); err != nil {
			// event hanya untuk analitik, grading tetap sukses
			log.Printf("[POINTS] gagal mencatat event submission=%s: %v", submissionID, err)
		}
	}
	return points, nil
}

func (s *Service) loadVisible(ctx context.Context, caller helperAuth.Caller, submissionID uuid.UUID) (*submissionModel.SubmissionOwnerRow, error) {
	owner, err := s.Store.GetSubmissionOwner(ctx, submissionID)
	if err != nil {
		return nil, errors.Wrap(err, "load submission")
	}
	if !helperAuth.CanView(caller, owner.Username, owner.MentorUsername, owner.OrganizationID) {
		return nil, helperAuth.ErrForbidden
	}
	return owner, nil
}

func (s *Service) List(ctx context.Context, caller helperAuth.Caller, submissionID uuid.UUID) ([]model.PointModel, error) {
	if err := helperAuth.Check(helperAuth.OpSubmissionRead, caller); err != nil {
		return nil, err
	}
	if _, err := s.loadVisible(ctx, caller, submissionID); err != nil {
		return nil, err
	}
	points, err := s.Store.ListPointsBySubmissions(ctx, []uuid.UUID{submissionID})
	if err != nil {
		return nil, errors.Wrap(err, "list points")
	}
	sortPoints(points)
	return points, nil
}

// Score: total + graded, dihitung ulang dari point ledger.
func (s *Service) Score(ctx context.Context, caller helperAuth.Caller, submissionID uuid.UUID) (scoring.Score, error) {
	if err := helperAuth.Check(helperAuth.OpScoreRead, caller); err != nil {
		return scoring.Score{}, err
	}
	if _, err := s.loadVisible(ctx, caller, submissionID); err != nil {
		return scoring.Score{}, err
	}
	points, err := s.Store.ListPointsBySubmissions(ctx, []uuid.UUID{submissionID})
	if err != nil {
		return scoring.Score{}, errors.Wrap(err, "list points")
	}
	return scoring.Summarize(points), nil
}

func sortPoints(points []model.PointModel) {
	order := map[model.Category]int{}
	for i, c := range model.Categories {
		order[c] = i
	}
	sort.SliceStable(points, func(i, j int) bool {
		return order[points[i].PointCategory] < order[points[j].PointCategory]
	})
}
