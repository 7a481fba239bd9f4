package seeds

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutly_backend/internals/store/memstore"
)

func TestRunAllSeeds_Idempotent(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()

	require.NoError(t, RunAllSeeds(ctx, st, "data"))
	require.NoError(t, RunAllSeeds(ctx, st, "data"))

	alice, err := st.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "STUDENT", alice.UserRole)

	enrolled, err := st.ListEnrollmentsByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, enrolled, 1)
	assert.Equal(t, "mentor1", enrolled[0].MentorUsername())

	n, err := st.CountClasses(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestRunAllSeeds_MissingDirSkips(t *testing.T) {
	assert.NoError(t, RunAllSeeds(context.Background(), memstore.New(), t.TempDir()))
}

func TestRunAllSeeds_BadJSON(t *testing.T) {
	assert.Error(t, RunAllSeeds(context.Background(), memstore.New(), "testdata/bad"))
}
