package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

// POST /api/g/attendance
type MarkAttendanceRequest struct {
	ClassID uuid.UUID          `json:"class_id" validate:"required"`
	Records []AttendanceRecord `json:"records" validate:"required,min=1,dive"`
}

type AttendanceRecord struct {
	Username         string          `json:"username" validate:"required,max=64"`
	Attended         bool            `json:"attended"`
	AttendedDuration *int            `json:"attended_duration" validate:"omitempty,min=0"`
	Data             json.RawMessage `json:"data"`
}
