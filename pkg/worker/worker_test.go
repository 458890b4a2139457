package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/recruitflow/pkg/job"
	"github.com/artem13815/recruitflow/pkg/message"
	"github.com/artem13815/recruitflow/pkg/repository/memory"
)

type fakeProcessor struct {
	calls []uuid.UUID
	err   error
}

func (f *fakeProcessor) Process(_ context.Context, j job.Job) error {
	f.calls = append(f.calls, j.ID)
	return f.err
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(nopWriter{})
	return log
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestDrain_ProcessesAllQueuedJobs(t *testing.T) {
	store := memory.NewStore()
	jobsUC := job.NewService(store.Jobs())
	proc := &fakeProcessor{}
	w := New(store.Jobs(), jobsUC, proc, store.Messages(), time.Second, quietLogger())
	ctx := context.Background()

	orgID := uuid.New()
	candID := uuid.New()
	j1, err := jobsUC.Enqueue(ctx, orgID, job.TypeParseResume, &candID, nil, nil)
	require.NoError(t, err)
	j2, err := jobsUC.Enqueue(ctx, orgID, job.TypeReprocessResume, &candID, nil, nil)
	require.NoError(t, err)

	w.drain(ctx)

	assert.Equal(t, []uuid.UUID{j1.ID, j2.ID}, proc.calls)
	for _, id := range []uuid.UUID{j1.ID, j2.ID} {
		got, err := store.Jobs().GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, job.StatusCompleted, got.Status)
		assert.Equal(t, 100, got.Progress)
		assert.NotNil(t, got.CompletedAt)
	}

	// Очередь пуста.
	_, ok, err := store.Jobs().ClaimNext(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDrain_FailedJobKeepsError(t *testing.T) {
	store := memory.NewStore()
	jobsUC := job.NewService(store.Jobs())
	proc := &fakeProcessor{err: errors.New("corrupt pdf")}
	w := New(store.Jobs(), jobsUC, proc, store.Messages(), time.Second, quietLogger())
	ctx := context.Background()

	candID := uuid.New()
	j, err := jobsUC.Enqueue(ctx, uuid.New(), job.TypeParseResume, &candID, nil, nil)
	require.NoError(t, err)

	w.drain(ctx)

	got, err := store.Jobs().GetByID(ctx, j.ID)
	require.NoError(t, err)
	assert.Equal(t, job.StatusFailed, got.Status)
	assert.Equal(t, "corrupt pdf", got.Error)
}

func TestDrain_DeliversOutgoingMessage(t *testing.T) {
	store := memory.NewStore()
	jobsUC := job.NewService(store.Jobs())
	w := New(store.Jobs(), jobsUC, &fakeProcessor{}, store.Messages(), time.Second, quietLogger())
	ctx := context.Background()

	m := message.Message{
		ID:          uuid.New(),
		CandidateID: uuid.New(),
		Direction:   message.DirectionOutgoing,
		Content:     "Hi!",
		Timestamp:   time.Now().UTC(),
		Status:      message.DeliveryPending,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, store.Messages().Create(ctx, m))
	_, err := jobsUC.Enqueue(ctx, uuid.New(), job.TypeSendMessage, &m.CandidateID, nil, &m.ID)
	require.NoError(t, err)

	w.drain(ctx)

	got, err := store.Messages().GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, message.DeliverySent, got.Status)
}

func TestDrain_UnknownJobTypeFails(t *testing.T) {
	store := memory.NewStore()
	jobsUC := job.NewService(store.Jobs())
	w := New(store.Jobs(), jobsUC, &fakeProcessor{}, store.Messages(), time.Second, quietLogger())
	ctx := context.Background()

	j, err := jobsUC.Enqueue(ctx, uuid.New(), job.Type("frobnicate"), nil, nil, nil)
	require.NoError(t, err)

	w.drain(ctx)

	got, err := store.Jobs().GetByID(ctx, j.ID)
	require.NoError(t, err)
	assert.Equal(t, job.StatusFailed, got.Status)
	assert.Contains(t, got.Error, "unknown job type")
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	store := memory.NewStore()
	jobsUC := job.NewService(store.Jobs())
	w := New(store.Jobs(), jobsUC, &fakeProcessor{}, store.Messages(), 5*time.Millisecond, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	candID := uuid.New()
	j, err := jobsUC.Enqueue(ctx, uuid.New(), job.TypeSendMessage, &candID, nil, nil)
	_ = j
	require.NoError(t, err)

	// Даём воркеру хотя бы один тик, затем останавливаем.
	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancel")
	}
}
