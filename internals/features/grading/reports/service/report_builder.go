package service

import (
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	pointModel "tutly_backend/internals/features/grading/points/model"
	dto "tutly_backend/internals/features/grading/reports/dto"
	submissionModel "tutly_backend/internals/features/grading/submissions/model"
	"tutly_backend/internals/store"
)

// Facts adalah semua data mentah yang dibutuhkan Build.
type Facts struct {
	Enrollments  []store.EnrollmentRow
	Submissions  []submissionModel.SubmissionOwnerRow
	Attended     map[string]int
	Points       []pointModel.PointOwnerRow
	TotalClasses int64
	// MentorUsername != "" membatasi submission dan baris ke mentee mentor tsb.
	MentorUsername string
}

type record struct {
	row         dto.ReportRow
	submissions map[uuid.UUID]struct{}
	attachments map[uuid.UUID]struct{}
}

// Build menghasilkan baris report terurut mentor ASC, score DESC, name ASC.
func Build(f Facts) []dto.ReportRow {
	records := make(map[string]*record, len(f.Enrollments))
	order := make([]string, 0, len(f.Enrollments))
	for _, e := range f.Enrollments {
		if _, ok := records[e.Username]; !ok {
			order = append(order, e.Username)
		}
		mentor := ""
		if e.MentorUsername != nil {
			mentor = *e.MentorUsername
		}
		records[e.Username] = &record{
			row: dto.ReportRow{
				Username:       e.Username,
				Name:           e.Name,
				Attendance:     "0.00",
				MentorUsername: mentor,
			},
			submissions: map[uuid.UUID]struct{}{},
			attachments: map[uuid.UUID]struct{}{},
		}
	}

	for _, s := range f.Submissions {
		if f.MentorUsername != "" && (s.MentorUsername == nil || *s.MentorUsername != f.MentorUsername) {
			continue
		}
		r, ok := records[s.Username]
		if !ok {
			continue
		}
		r.submissions[s.SubmissionID] = struct{}{}
		r.attachments[s.AttachmentID] = struct{}{}
	}

	pointsByUser := make(map[string][]pointModel.PointOwnerRow)
	for _, p := range f.Points {
		if p.Username == nil {
			continue
		}
		pointsByUser[*p.Username] = append(pointsByUser[*p.Username], p)
	}

	for _, username := range order {
		r := records[username]
		r.row.SubmissionCount = len(r.submissions)
		r.row.AssignmentCount = len(r.attachments)
		r.row.Attendance = AttendancePercent(f.Attended[username], f.TotalClasses)

		score, evaluated, err := userScore(pointsByUser[username])
		if err != nil {
			log.Printf("[REPORT] skip skor user=%s: %v", username, err)
			continue
		}
		r.row.Score = score
		r.row.SubmissionEvaluated = evaluated
	}

	rows := make([]dto.ReportRow, 0, len(order))
	for _, username := range order {
		rows = append(rows, records[username].row)
	}
	sortRows(rows)

	if f.MentorUsername == "" {
		return rows
	}
	filtered := rows[:0]
	for _, r := range rows {
		if r.MentorUsername == f.MentorUsername {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// userScore gagal bila ada point yang tercatat milik user tapi tanpa submission.
// Guard defensif: gormstore (LEFT JOIN) dan memstore hanya mengisi Username lewat
// submission, jadi dari store point yatim selalu Username nil dan sudah di-skip di Build.
func userScore(points []pointModel.PointOwnerRow) (int, int, error) {
	score := 0
	evaluated := map[uuid.UUID]struct{}{}
	for _, p := range points {
		if p.SubmissionID == nil {
			return 0, 0, fmt.Errorf("point %s tidak punya submission", p.PointID)
		}
		score += p.Score
		evaluated[*p.SubmissionID] = struct{}{}
	}
	return score, len(evaluated), nil
}

func AttendancePercent(attended int, totalClasses int64) string {
	if totalClasses <= 0 || attended <= 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(attended)/float64(totalClasses)*100)
}

// sortRows: sort stabil dengan prioritas terbalik (name, score, mentor).
func sortRows(rows []dto.ReportRow) {
	col := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(rows, func(i, j int) bool {
		return col.CompareString(rows[i].Name, rows[j].Name) < 0
	})
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score > rows[j].Score
	})
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].MentorUsername < rows[j].MentorUsername
	})
}
