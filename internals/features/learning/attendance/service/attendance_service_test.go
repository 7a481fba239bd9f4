package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutly_backend/internals/constants"
	helper "tutly_backend/internals/helpers"
	helperAuth "tutly_backend/internals/helpers/auth"
	"tutly_backend/internals/store/storetest"
)

func TestMark_UpsertsPerUserAndClass(t *testing.T) {
	fx := storetest.New(t)
	fx.User("mentor1", "Mentor", constants.RoleMentor)
	fx.User("alice", "Alice", constants.RoleStudent)
	fx.User("bob", "Bob", constants.RoleStudent)
	svc := New(fx.Store)
	ctx := context.Background()
	class := fx.Class("Week 1")

	_, err := svc.Mark(ctx, fx.Caller("mentor1"), class.ClassID, []RecordInput{
		{Username: "alice", Attended: false},
		{Username: "bob", Attended: true, AttendedDuration: storetest.IntPtr(45), Data: []byte(`[{"join":"10:00"}]`)},
	})
	require.NoError(t, err)

	// tandai ulang: tidak menggandakan baris
	_, err = svc.Mark(ctx, fx.Caller("mentor1"), class.ClassID, []RecordInput{{Username: "alice", Attended: true}})
	require.NoError(t, err)

	rows, err := svc.ListMine(ctx, fx.Caller("alice"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].AttendanceAttended)

	counts, err := fx.Store.CountAttendedByUsername(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"alice": 1, "bob": 1}, counts)
}

func TestMark_Rejections(t *testing.T) {
	fx := storetest.New(t)
	fx.User("mentor1", "Mentor", constants.RoleMentor)
	fx.User("alice", "Alice", constants.RoleStudent)
	svc := New(fx.Store)
	ctx := context.Background()
	class := fx.Class("Week 1")

	_, err := svc.Mark(ctx, fx.Caller("alice"), class.ClassID, []RecordInput{{Username: "alice", Attended: true}})
	assert.True(t, errors.Is(err, helperAuth.ErrForbidden))

	_, err = svc.Mark(ctx, fx.Caller("mentor1"), class.ClassID, nil)
	assert.True(t, errors.Is(err, helper.ErrInvalidInput))

	_, err = svc.Mark(ctx, fx.Caller("mentor1"), class.ClassID, []RecordInput{{Username: "ghost", Attended: true}})
	assert.True(t, errors.Is(err, helper.ErrInvalidInput))

	_, err = svc.Mark(ctx, fx.Caller("mentor1"), class.ClassID, []RecordInput{
		{Username: "alice", Attended: true},
		{Username: "alice", Attended: false},
	})
	assert.True(t, errors.Is(err, helper.ErrInvalidInput))

	rows, err := fx.Store.ListAttendanceByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
