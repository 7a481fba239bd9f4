// Package memstore is an in-process implementation of store.Store. Every table
// is a map guarded by one RWMutex; rows are copied in and out so callers never
// share memory with the store.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	eventModel "tutly_backend/internals/features/grading/events/model"
	pointModel "tutly_backend/internals/features/grading/points/model"
	submissionModel "tutly_backend/internals/features/grading/submissions/model"
	attachmentModel "tutly_backend/internals/features/learning/attachments/model"
	attendanceModel "tutly_backend/internals/features/learning/attendance/model"
	courseModel "tutly_backend/internals/features/learning/courses/model"
	enrollmentModel "tutly_backend/internals/features/learning/enrollments/model"
	accountModel "tutly_backend/internals/features/users/accounts/model"
	"tutly_backend/internals/store"
)

type pointKey struct {
	SubmissionID uuid.UUID
	Category     pointModel.Category
}

type attendanceKey struct {
	Username string
	ClassID  uuid.UUID
}

type Store struct {
	mutex sync.RWMutex

	users       map[string]*accountModel.UserModel
	courses     map[uuid.UUID]*courseModel.CourseModel
	classes     map[uuid.UUID]*courseModel.ClassModel
	enrollments map[uuid.UUID]*enrollmentModel.EnrolledUserModel
	attachments map[uuid.UUID]*attachmentModel.AttachmentModel
	submissions map[uuid.UUID]*submissionModel.SubmissionModel
	points      map[pointKey]*pointModel.PointModel
	orphans     []*pointModel.PointModel
	attendance  map[attendanceKey]*attendanceModel.AttendanceModel
	events      map[uuid.UUID]*eventModel.GradingEventModel

	// Now dipakai untuk default timestamp; bisa diganti di test.
	Now func() time.Time
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		users:       map[string]*accountModel.UserModel{},
		courses:     map[uuid.UUID]*courseModel.CourseModel{},
		classes:     map[uuid.UUID]*courseModel.ClassModel{},
		enrollments: map[uuid.UUID]*enrollmentModel.EnrolledUserModel{},
		attachments: map[uuid.UUID]*attachmentModel.AttachmentModel{},
		submissions: map[uuid.UUID]*submissionModel.SubmissionModel{},
		points:      map[pointKey]*pointModel.PointModel{},
		attendance:  map[attendanceKey]*attendanceModel.AttendanceModel{},
		events:      map[uuid.UUID]*eventModel.GradingEventModel{},
		Now:         time.Now,
	}
}

func newID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}

/* =========================
   Users, courses, classes
========================= */

func (s *Store) CreateUser(_ context.Context, u *accountModel.UserModel) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.users[u.UserUsername]; ok {
		return store.ErrConflict
	}
	u.UserID = newID(u.UserID)
	if u.UserCreatedAt.IsZero() {
		u.UserCreatedAt = s.Now()
		u.UserUpdatedAt = u.UserCreatedAt
	}
	cp := *u
	s.users[u.UserUsername] = &cp
	return nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*accountModel.UserModel, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if u, ok := s.users[username]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func (s *Store) CreateCourse(_ context.Context, c *courseModel.CourseModel) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	c.CourseID = newID(c.CourseID)
	if c.CourseCreatedAt.IsZero() {
		c.CourseCreatedAt = s.Now()
		c.CourseUpdatedAt = c.CourseCreatedAt
	}
	cp := *c
	s.courses[c.CourseID] = &cp
	return nil
}

func (s *Store) GetCourse(_ context.Context, id uuid.UUID) (*courseModel.CourseModel, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if c, ok := s.courses[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func (s *Store) CreateClass(_ context.Context, c *courseModel.ClassModel) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	c.ClassID = newID(c.ClassID)
	if c.ClassCreatedAt.IsZero() {
		c.ClassCreatedAt = s.Now()
	}
	cp := *c
	s.classes[c.ClassID] = &cp
	return nil
}

func (s *Store) GetClass(_ context.Context, id uuid.UUID) (*courseModel.ClassModel, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if c, ok := s.classes[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func (s *Store) CountClasses(_ context.Context) (int64, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return int64(len(s.classes)), nil
}

/* =========================
   Enrollments
========================= */

func sameOptUUID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func sameOptString(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (s *Store) CreateEnrollment(_ context.Context, e *enrollmentModel.EnrolledUserModel) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, ex := range s.enrollments {
		if ex.EnrolledUserUsername == e.EnrolledUserUsername &&
			sameOptUUID(ex.EnrolledUserCourseID, e.EnrolledUserCourseID) &&
			sameOptString(ex.EnrolledUserMentorUsername, e.EnrolledUserMentorUsername) {
			return store.ErrConflict
		}
	}
	e.EnrolledUserID = newID(e.EnrolledUserID)
	if e.EnrolledUserStartDate.IsZero() {
		e.EnrolledUserStartDate = s.Now()
	}
	cp := *e
	s.enrollments[e.EnrolledUserID] = &cp
	return nil
}

func (s *Store) GetEnrollment(_ context.Context, id uuid.UUID) (*enrollmentModel.EnrolledUserModel, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if e, ok := s.enrollments[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func (s *Store) UpdateEnrollmentMentor(_ context.Context, id uuid.UUID, mentor *string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	e, ok := s.enrollments[id]
	if !ok {
		return store.ErrNotFound
	}
	for oid, ex := range s.enrollments {
		if oid != id && ex.EnrolledUserUsername == e.EnrolledUserUsername &&
			sameOptUUID(ex.EnrolledUserCourseID, e.EnrolledUserCourseID) &&
			sameOptString(ex.EnrolledUserMentorUsername, mentor) {
			return store.ErrConflict
		}
	}
	if mentor != nil {
		m := *mentor
		mentor = &m
	}
	e.EnrolledUserMentorUsername = mentor
	return nil
}

func (s *Store) DeleteEnrollment(_ context.Context, id uuid.UUID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.enrollments[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.enrollments, id)
	return nil
}

func (s *Store) ListEnrollmentsByUsername(_ context.Context, username string) ([]enrollmentModel.EnrolledUserModel, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := make([]enrollmentModel.EnrolledUserModel, 0)
	for _, e := range s.enrollments {
		if e.EnrolledUserUsername == username {
			out = append(out, *e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EnrolledUserStartDate.Before(out[j].EnrolledUserStartDate)
	})
	return out, nil
}

func (s *Store) ListCourseStudents(_ context.Context, courseID, orgID uuid.UUID) ([]store.EnrollmentRow, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	type keyed struct {
		row   store.EnrollmentRow
		start time.Time
	}
	tmp := make([]keyed, 0)
	for _, e := range s.enrollments {
		if e.EnrolledUserCourseID == nil || *e.EnrolledUserCourseID != courseID {
			continue
		}
		u, ok := s.users[e.EnrolledUserUsername]
		if !ok || u.UserRole != "STUDENT" || u.UserOrganizationID != orgID {
			continue
		}
		tmp = append(tmp, keyed{
			row: store.EnrollmentRow{
				EnrolledUserID: e.EnrolledUserID,
				Username:       e.EnrolledUserUsername,
				CourseID:       e.EnrolledUserCourseID,
				MentorUsername: e.EnrolledUserMentorUsername,
				Name:           u.UserName,
			},
			start: e.EnrolledUserStartDate,
		})
	}
	sort.SliceStable(tmp, func(i, j int) bool { return tmp[i].start.Before(tmp[j].start) })

	out := make([]store.EnrollmentRow, len(tmp))
	for i := range tmp {
		out[i] = tmp[i].row
	}
	return out, nil
}

/* =========================
   Attachments
========================= */

func (s *Store) CreateAttachment(_ context.Context, a *attachmentModel.AttachmentModel) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	a.AttachmentID = newID(a.AttachmentID)
	if a.AttachmentCreatedAt.IsZero() {
		a.AttachmentCreatedAt = s.Now()
	}
	cp := *a
	s.attachments[a.AttachmentID] = &cp
	return nil
}

func (s *Store) GetAttachment(_ context.Context, id uuid.UUID) (*attachmentModel.AttachmentModel, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if a, ok := s.attachments[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

/* =========================
   Submissions
========================= */

func (s *Store) CreateSubmission(_ context.Context, sub *submissionModel.SubmissionModel) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	sub.SubmissionID = newID(sub.SubmissionID)
	if sub.SubmissionCreatedAt.IsZero() {
		sub.SubmissionCreatedAt = s.Now()
	}
	sub.SubmissionUpdatedAt = sub.SubmissionCreatedAt
	cp := *sub
	s.submissions[sub.SubmissionID] = &cp
	return nil
}

func (s *Store) GetSubmission(_ context.Context, id uuid.UUID) (*submissionModel.SubmissionModel, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if sub, ok := s.submissions[id]; ok {
		cp := *sub
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

// ownerRow melakukan "join" submission → enrollment → user. false bila salah satu hilang.
func (s *Store) ownerRow(sub *submissionModel.SubmissionModel) (submissionModel.SubmissionOwnerRow, *accountModel.UserModel, bool) {
	e, ok := s.enrollments[sub.SubmissionEnrolledUserID]
	if !ok {
		return submissionModel.SubmissionOwnerRow{}, nil, false
	}
	u, ok := s.users[e.EnrolledUserUsername]
	if !ok {
		return submissionModel.SubmissionOwnerRow{}, nil, false
	}
	return submissionModel.SubmissionOwnerRow{
		SubmissionID:   sub.SubmissionID,
		AttachmentID:   sub.SubmissionAttachmentID,
		EnrolledUserID: e.EnrolledUserID,
		CourseID:       e.EnrolledUserCourseID,
		Username:       e.EnrolledUserUsername,
		MentorUsername: e.EnrolledUserMentorUsername,
		Name:           u.UserName,
		Image:          u.UserImage,
		OrganizationID: u.UserOrganizationID,
		CreatedAt:      sub.SubmissionCreatedAt,
	}, u, true
}

func (s *Store) GetSubmissionOwner(_ context.Context, id uuid.UUID) (*submissionModel.SubmissionOwnerRow, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	sub, ok := s.submissions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	row, _, ok := s.ownerRow(sub)
	if !ok {
		return nil, store.ErrNotFound
	}
	return &row, nil
}

func (s *Store) UpdateSubmission(_ context.Context, id uuid.UUID, patch store.SubmissionPatch) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	sub, ok := s.submissions[id]
	if !ok {
		return store.ErrNotFound
	}
	if patch.Data != nil {
		sub.SubmissionData = append([]byte(nil), patch.Data...)
	}
	if patch.Link != nil {
		v := *patch.Link
		sub.SubmissionLink = &v
	}
	if patch.OverallFeedback != nil {
		v := *patch.OverallFeedback
		sub.SubmissionOverallFeedback = &v
	}
	sub.SubmissionUpdatedAt = s.Now()
	return nil
}

func (s *Store) DeleteSubmission(_ context.Context, id uuid.UUID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.submissions[id]; !ok {
		return store.ErrNotFound
	}
	for k := range s.points {
		if k.SubmissionID == id {
			delete(s.points, k)
		}
	}
	delete(s.submissions, id)
	return nil
}

func (s *Store) CountSubmissions(_ context.Context, enrolledUserID, attachmentID uuid.UUID) (int64, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var n int64
	for _, sub := range s.submissions {
		if sub.SubmissionEnrolledUserID == enrolledUserID && sub.SubmissionAttachmentID == attachmentID {
			n++
		}
	}
	return n, nil
}

func matches(f store.SubmissionFilter, row submissionModel.SubmissionOwnerRow, u *accountModel.UserModel) bool {
	if f.OrganizationID != nil && u.UserOrganizationID != *f.OrganizationID {
		return false
	}
	if f.CourseID != nil && (row.CourseID == nil || *row.CourseID != *f.CourseID) {
		return false
	}
	if f.AttachmentID != nil && row.AttachmentID != *f.AttachmentID {
		return false
	}
	if f.MentorUsername != nil && (row.MentorUsername == nil || *row.MentorUsername != *f.MentorUsername) {
		return false
	}
	if f.Username != nil && row.Username != *f.Username {
		return false
	}
	if f.CreatedBefore != nil && !row.CreatedAt.Before(*f.CreatedBefore) {
		return false
	}
	return true
}

func (s *Store) ListSubmissionOwners(_ context.Context, f store.SubmissionFilter) ([]submissionModel.SubmissionOwnerRow, int64, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	rows := make([]submissionModel.SubmissionOwnerRow, 0)
	for _, sub := range s.submissions {
		row, u, ok := s.ownerRow(sub)
		if !ok || !matches(f, row, u) {
			continue
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].CreatedAt.Before(rows[j].CreatedAt) })

	total := int64(len(rows))
	if f.Limit > 0 {
		if f.Offset >= len(rows) {
			return []submissionModel.SubmissionOwnerRow{}, total, nil
		}
		end := f.Offset + f.Limit
		if end > len(rows) {
			end = len(rows)
		}
		rows = rows[f.Offset:end]
	}
	return rows, total, nil
}

/* =========================
   Points
========================= */

func (s *Store) UpsertPoint(_ context.Context, p *pointModel.PointModel) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.Now()
	if p.PointSubmissionID == nil {
		p.PointID = newID(p.PointID)
		p.PointCreatedAt, p.PointUpdatedAt = now, now
		cp := *p
		s.orphans = append(s.orphans, &cp)
		return nil
	}

	key := pointKey{SubmissionID: *p.PointSubmissionID, Category: p.PointCategory}
	if ex, ok := s.points[key]; ok {
		ex.PointScore = p.PointScore
		if p.PointFeedback != nil {
			v := *p.PointFeedback
			ex.PointFeedback = &v
		}
		ex.PointUpdatedAt = now
		*p = *ex
		return nil
	}

	p.PointID = newID(p.PointID)
	p.PointCreatedAt, p.PointUpdatedAt = now, now
	cp := *p
	s.points[key] = &cp
	return nil
}

func (s *Store) ListPointsBySubmissions(_ context.Context, submissionIDs []uuid.UUID) ([]pointModel.PointModel, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	want := make(map[uuid.UUID]struct{}, len(submissionIDs))
	for _, id := range submissionIDs {
		want[id] = struct{}{}
	}
	out := make([]pointModel.PointModel, 0)
	for k, p := range s.points {
		if _, ok := want[k.SubmissionID]; ok {
			out = append(out, *p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PointCreatedAt.Equal(out[j].PointCreatedAt) {
			return out[i].PointCategory < out[j].PointCategory
		}
		return out[i].PointCreatedAt.Before(out[j].PointCreatedAt)
	})
	return out, nil
}

func (s *Store) ListPointOwners(_ context.Context) ([]pointModel.PointOwnerRow, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := make([]pointModel.PointOwnerRow, 0, len(s.points)+len(s.orphans))
	for _, p := range s.points {
		row := pointModel.PointOwnerRow{PointID: p.PointID, Score: p.PointScore, SubmissionID: p.PointSubmissionID}
		if sub, ok := s.submissions[*p.PointSubmissionID]; ok {
			if e, ok := s.enrollments[sub.SubmissionEnrolledUserID]; ok {
				name := e.EnrolledUserUsername
				row.Username = &name
			}
		}
		out = append(out, row)
	}
	for _, p := range s.orphans {
		out = append(out, pointModel.PointOwnerRow{PointID: p.PointID, Score: p.PointScore})
	}
	return out, nil
}

/* =========================
   Attendance
========================= */

func (s *Store) UpsertAttendance(_ context.Context, rows []attendanceModel.AttendanceModel) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.Now()
	for i := range rows {
		r := &rows[i]
		key := attendanceKey{Username: r.AttendanceUsername, ClassID: r.AttendanceClassID}
		if ex, ok := s.attendance[key]; ok {
			ex.AttendanceAttended = r.AttendanceAttended
			ex.AttendanceAttendedDuration = r.AttendanceAttendedDuration
			ex.AttendanceData = r.AttendanceData
			ex.AttendanceUpdatedAt = now
			*r = *ex
			continue
		}
		r.AttendanceID = newID(r.AttendanceID)
		r.AttendanceCreatedAt, r.AttendanceUpdatedAt = now, now
		cp := *r
		s.attendance[key] = &cp
	}
	return nil
}

func (s *Store) ListAttendanceByUsername(_ context.Context, username string) ([]attendanceModel.AttendanceModel, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := make([]attendanceModel.AttendanceModel, 0)
	for k, a := range s.attendance {
		if k.Username == username {
			out = append(out, *a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AttendanceCreatedAt.Before(out[j].AttendanceCreatedAt)
	})
	return out, nil
}

func (s *Store) CountAttendedByUsername(_ context.Context) (map[string]int, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := map[string]int{}
	for k, a := range s.attendance {
		if a.AttendanceAttended {
			out[k.Username]++
		}
	}
	return out, nil
}

/* =========================
   Grading events
========================= */

func (s *Store) CreateGradingEvent(_ context.Context, e *eventModel.GradingEventModel) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	e.GradingEventID = newID(e.GradingEventID)
	if e.GradingEventCreatedAt.IsZero() {
		e.GradingEventCreatedAt = s.Now()
	}
	cp := *e
	s.events[e.GradingEventID] = &cp
	return nil
}

func (s *Store) DeleteGradingEventsBefore(_ context.Context, before time.Time) (int64, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var n int64
	for id, e := range s.events {
		if e.GradingEventCreatedAt.Before(before) {
			delete(s.events, id)
			n++
		}
	}
	return n, nil
}

// GradingEvents mengembalikan salinan semua event, terurut waktu. Dipakai test.
func (s *Store) GradingEvents() []eventModel.GradingEventModel {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := make([]eventModel.GradingEventModel, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, *e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].GradingEventCreatedAt.Before(out[j].GradingEventCreatedAt)
	})
	return out
}
