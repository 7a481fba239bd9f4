package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const EventAssignmentEvaluated = "ASSIGNMENT_EVALUATED"

type GradingEventModel struct {
	GradingEventID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:grading_event_id" json:"grading_event_id"`
	GradingEventType           string         `gorm:"type:varchar(40);not null;column:grading_event_type" json:"grading_event_type"`
	GradingEventSubmissionID   uuid.UUID      `gorm:"type:uuid;not null;index;column:grading_event_submission_id" json:"grading_event_submission_id"`
	GradingEventActorUsername  string         `gorm:"type:varchar(64);not null;column:grading_event_actor_username" json:"grading_event_actor_username"`
	GradingEventOrganizationID *uuid.UUID     `gorm:"type:uuid;column:grading_event_organization_id" json:"grading_event_organization_id,omitempty"`
	GradingEventData           datatypes.JSON `gorm:"type:jsonb;column:grading_event_data" json:"grading_event_data,omitempty"`

	GradingEventCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();index;column:grading_event_created_at" json:"grading_event_created_at"`
}

func (GradingEventModel) TableName() string { return "grading_events" }
