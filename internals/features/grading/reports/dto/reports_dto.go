package dto

// ReportRow: satu baris per student. Tag csv dipakai export gocsv.
type ReportRow struct {
	Username            string `json:"username" csv:"username"`
	Name                string `json:"name" csv:"name"`
	SubmissionCount     int    `json:"submission_count" csv:"submission_count"`
	AssignmentCount     int    `json:"assignment_count" csv:"assignment_count"`
	Score               int    `json:"score" csv:"score"`
	SubmissionEvaluated int    `json:"submission_evaluated" csv:"submission_evaluated"`
	Attendance          string `json:"attendance" csv:"attendance"`
	MentorUsername      string `json:"mentor_username" csv:"mentor_username"`
}
