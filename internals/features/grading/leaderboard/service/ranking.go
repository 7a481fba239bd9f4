package service

import (
	"sort"

	dto "tutly_backend/internals/features/grading/leaderboard/dto"
	"tutly_backend/internals/features/grading/scoring"
)

// SortByScore: total menurun, stabil terhadap urutan input. Tie tidak dipecah.
func SortByScore(tallies []scoring.UserTally) []dto.Entry {
	out := make([]dto.Entry, 0, len(tallies))
	for _, t := range tallies {
		out = append(out, dto.Entry{
			Username:        t.Username,
			Name:            t.Name,
			Image:           t.Image,
			TotalScore:      t.Total,
			SubmissionCount: t.SubmissionCount,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalScore > out[j].TotalScore })
	return out
}

// AssignRanks memberi rank 1-based sesuai urutan; skor sama tetap mendapat rank berurutan.
func AssignRanks(entries []dto.Entry) []dto.Entry {
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
