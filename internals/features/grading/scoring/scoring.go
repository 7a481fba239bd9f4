// Package scoring reduces point rows into submission and user totals.
// Totals are always recomputed from the point rows handed in; nothing is cached.
package scoring

import (
	"github.com/google/uuid"

	pointModel "tutly_backend/internals/features/grading/points/model"
	submissionModel "tutly_backend/internals/features/grading/submissions/model"
)

// Score keeps both signals: Total (sum) and Graded (at least one point row exists).
type Score struct {
	Total      int  `json:"total"`
	Graded     bool `json:"graded"`
	PointCount int  `json:"point_count"`
}

// SubmissionTotal sums scores with uniform weight. No points → 0.
func SubmissionTotal(points []pointModel.PointModel) int {
	total := 0
	for _, p := range points {
		total += p.PointScore
	}
	return total
}

func Summarize(points []pointModel.PointModel) Score {
	return Score{
		Total:      SubmissionTotal(points),
		Graded:     len(points) > 0,
		PointCount: len(points),
	}
}

// GroupBySubmission indexes point rows by their submission. Orphan rows are skipped.
func GroupBySubmission(points []pointModel.PointModel) map[uuid.UUID][]pointModel.PointModel {
	out := make(map[uuid.UUID][]pointModel.PointModel)
	for _, p := range points {
		if p.PointSubmissionID == nil {
			continue
		}
		out[*p.PointSubmissionID] = append(out[*p.PointSubmissionID], p)
	}
	return out
}

// UserTally is one user's aggregate over the submissions handed to UserTotals.
type UserTally struct {
	Username        string
	Name            string
	Image           *string
	Total           int
	SubmissionCount int
}

// UserTotals sums per-submission totals per owning username.
// The returned order follows first appearance in submissions.
func UserTotals(submissions []submissionModel.SubmissionOwnerRow, bySubmission map[uuid.UUID][]pointModel.PointModel) []UserTally {
	idx := make(map[string]int)
	out := make([]UserTally, 0)
	for _, s := range submissions {
		i, ok := idx[s.Username]
		if !ok {
			i = len(out)
			idx[s.Username] = i
			out = append(out, UserTally{Username: s.Username, Name: s.Name, Image: s.Image})
		}
		out[i].Total += SubmissionTotal(bySubmission[s.SubmissionID])
		out[i].SubmissionCount++
	}
	return out
}
