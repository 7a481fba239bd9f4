package helper

import (
	"errors"

	"github.com/google/uuid"

	"tutly_backend/internals/constants"
)

// Operation adalah nama aksi yang dijaga oleh policy.
type Operation string

const (
	OpGradePoints        Operation = "grade.points"
	OpSubmissionCreate   Operation = "submission.create"
	OpSubmissionEdit     Operation = "submission.edit"
	OpSubmissionRead     Operation = "submission.read"
	OpSubmissionList     Operation = "submission.list"
	OpSubmissionFeedback Operation = "submission.feedback"
	OpSubmissionDelete   Operation = "submission.delete"
	OpScoreRead          Operation = "score.read"
	OpLeaderboardPeer    Operation = "leaderboard.peer"
	OpLeaderboardMentor  Operation = "leaderboard.mentor"
	OpReportGenerate     Operation = "report.generate"
	OpEnrollmentManage   Operation = "enrollment.manage"
	OpEnrollmentRead     Operation = "enrollment.read"
	OpAttachmentManage   Operation = "attachment.manage"
	OpAttachmentRead     Operation = "attachment.read"
	OpAttendanceMark     Operation = "attendance.mark"
	OpAttendanceRead     Operation = "attendance.read"
)

var ErrForbidden = errors.New("forbidden")

// policy: operation → role yang diizinkan. Operasi yang tidak terdaftar ditolak.
var policy = map[Operation][]string{
	OpGradePoints:        constants.GraderRoles,
	OpSubmissionCreate:   constants.AllRoles,
	OpSubmissionEdit:     constants.AllRoles,
	OpSubmissionRead:     constants.AllRoles,
	OpSubmissionList:     constants.GraderRoles,
	OpSubmissionFeedback: constants.GraderRoles,
	OpSubmissionDelete:   constants.GraderRoles,
	OpScoreRead:          constants.AllRoles,
	OpLeaderboardPeer:    constants.AllRoles,
	OpLeaderboardMentor:  constants.AllRoles,
	OpReportGenerate:     constants.GraderRoles,
	OpEnrollmentManage:   constants.InstructorAndAbove,
	OpEnrollmentRead:     constants.AllRoles,
	OpAttachmentManage:   constants.InstructorAndAbove,
	OpAttachmentRead:     constants.AllRoles,
	OpAttendanceMark:     constants.GraderRoles,
	OpAttendanceRead:     constants.AllRoles,
}

func Allow(op Operation, role string) bool {
	for _, r := range policy[op] {
		if r == role {
			return true
		}
	}
	return false
}

// Check: nil bila caller boleh menjalankan op, ErrForbidden bila tidak.
func Check(op Operation, caller Caller) error {
	if !Allow(op, caller.Role) {
		return ErrForbidden
	}
	return nil
}

// GraderInScope: mentor hanya untuk mentee sendiri, instructor/admin untuk seluruh organisasi.
func GraderInScope(caller Caller, mentorUsername *string, orgID uuid.UUID) bool {
	if orgID != caller.OrganizationID {
		return false
	}
	switch {
	case caller.IsInstructor():
		return true
	case caller.IsMentor():
		return mentorUsername != nil && *mentorUsername == caller.Username
	default:
		return false
	}
}

// CanView: pemilik, mentornya, atau instructor di organisasi yang sama.
func CanView(caller Caller, ownerUsername string, mentorUsername *string, orgID uuid.UUID) bool {
	if ownerUsername == caller.Username {
		return true
	}
	return GraderInScope(caller, mentorUsername, orgID)
}
