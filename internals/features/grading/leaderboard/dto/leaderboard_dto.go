package dto

import "time"

type Entry struct {
	Username        string  `json:"username"`
	Name            string  `json:"name"`
	Image           *string `json:"image,omitempty"`
	TotalScore      int     `json:"total_score"`
	SubmissionCount int     `json:"submission_count"`
	Rank            int     `json:"rank,omitempty"`
}

type PeerResponse struct {
	MentorUsername string     `json:"mentor_username,omitempty"`
	Cutoff         *time.Time `json:"cutoff,omitempty"`
	Entries        []Entry    `json:"entries"`
}
