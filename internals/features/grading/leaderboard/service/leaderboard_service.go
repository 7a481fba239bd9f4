package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	dto "tutly_backend/internals/features/grading/leaderboard/dto"
	"tutly_backend/internals/features/grading/scoring"
	submissionModel "tutly_backend/internals/features/grading/submissions/model"
	helper "tutly_backend/internals/helpers"
	helperAuth "tutly_backend/internals/helpers/auth"
	"tutly_backend/internals/helpers/dbtime"
	"tutly_backend/internals/store"
)

type Service struct {
	Store    store.Store
	Location *time.Location
	Now      func() time.Time
}

func New(st store.Store, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{Store: st, Location: loc, Now: time.Now}
}

// Peer: leaderboard sesama mentee dari mentor caller, dibekukan pada Minggu 12:00 terakhir.
func (s *Service) Peer(ctx context.Context, caller helperAuth.Caller, courseID *uuid.UUID) (*dto.PeerResponse, error) {
	if err := helperAuth.Check(helperAuth.OpLeaderboardPeer, caller); err != nil {
		return nil, err
	}

	mentor, err := s.resolveMentor(ctx, caller.Username, courseID)
	if err != nil {
		return nil, err
	}
	if mentor == "" {
		return &dto.PeerResponse{Entries: []dto.Entry{}}, nil
	}

	cutoff := dbtime.LastSundayNoon(s.Now(), s.Location)
	orgID := caller.OrganizationID
	entries, err := s.rank(ctx, store.SubmissionFilter{
		OrganizationID: &orgID,
		CourseID:       courseID,
		MentorUsername: &mentor,
		CreatedBefore:  &cutoff,
	})
	if err != nil {
		return nil, err
	}
	return &dto.PeerResponse{MentorUsername: mentor, Cutoff: &cutoff, Entries: entries}, nil
}

// resolveMentor: "" bila caller tidak punya mentor, ErrAmbiguousMentor bila lebih dari satu.
func (s *Service) resolveMentor(ctx context.Context, username string, courseID *uuid.UUID) (string, error) {
	rows, err := s.Store.ListEnrollmentsByUsername(ctx, username)
	if err != nil {
		return "", errors.Wrap(err, "list enrollments")
	}
	seen := map[string]struct{}{}
	mentor := ""
	for _, e := range rows {
		if courseID != nil && (e.EnrolledUserCourseID == nil || *e.EnrolledUserCourseID != *courseID) {
			continue
		}
		m := e.MentorUsername()
		if m == "" {
			continue
		}
		if _, ok := seen[m]; !ok {
			seen[m] = struct{}{}
			mentor = m
		}
	}
	if len(seen) > 1 {
		return "", helper.ErrAmbiguousMentor
	}
	return mentor, nil
}

// Mentor: live, tanpa cutoff. Student → list kosong.
func (s *Service) Mentor(ctx context.Context, caller helperAuth.Caller) ([]dto.Entry, error) {
	if err := helperAuth.Check(helperAuth.OpLeaderboardMentor, caller); err != nil {
		return nil, err
	}
	if caller.IsStudent() {
		return []dto.Entry{}, nil
	}
	orgID := caller.OrganizationID
	f := store.SubmissionFilter{OrganizationID: &orgID}
	if caller.IsMentor() {
		mentor := caller.Username
		f.MentorUsername = &mentor
	}
	entries, err := s.rank(ctx, f)
	if err != nil {
		return nil, err
	}
	return AssignRanks(entries), nil
}

func (s *Service) rank(ctx context.Context, f store.SubmissionFilter) ([]dto.Entry, error) {
	rows, _, err := s.Store.ListSubmissionOwners(ctx, f)
	if err != nil {
		return nil, errors.Wrap(err, "list submissions")
	}
	if len(rows) == 0 {
		return []dto.Entry{}, nil
	}
	points, err := s.Store.ListPointsBySubmissions(ctx, submissionIDs(rows))
	if err != nil {
		return nil, errors.Wrap(err, "list points")
	}
	return SortByScore(scoring.UserTotals(rows, scoring.GroupBySubmission(points))), nil
}

func submissionIDs(rows []submissionModel.SubmissionOwnerRow) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.SubmissionID)
	}
	return ids
}
