package job_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/recruitflow/pkg/job"
	"github.com/artem13815/recruitflow/pkg/repository/memory"
)

func TestGet_ScopedByOrganization(t *testing.T) {
	store := memory.NewStore()
	uc := job.NewService(store.Jobs())
	ctx := context.Background()
	orgID := uuid.New()

	j, err := uc.Enqueue(ctx, orgID, job.TypeParseResume, nil, nil, nil)
	require.NoError(t, err)

	got, err := uc.Get(ctx, orgID, j.ID)
	require.NoError(t, err)
	assert.Equal(t, j.ID, got.ID)

	// Чужая задача неотличима от несуществующей.
	_, err = uc.Get(ctx, uuid.New(), j.ID)
	assert.ErrorIs(t, err, job.ErrNotFound)
}

func TestListByCandidate_ScopedByOrganization(t *testing.T) {
	store := memory.NewStore()
	uc := job.NewService(store.Jobs())
	ctx := context.Background()
	orgID, otherOrg := uuid.New(), uuid.New()
	candidateID := uuid.New()

	_, err := uc.Enqueue(ctx, orgID, job.TypeParseResume, &candidateID, nil, nil)
	require.NoError(t, err)
	_, err = uc.Enqueue(ctx, otherOrg, job.TypeSendMessage, &candidateID, nil, nil)
	require.NoError(t, err)

	jobs, err := uc.ListByCandidate(ctx, orgID, candidateID)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, job.TypeParseResume, jobs[0].Type)

	empty, err := uc.ListByCandidate(ctx, uuid.New(), candidateID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
