package store_test

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/playstats/internal/errors"
	"github.com/vytor/playstats/internal/models"
	"github.com/vytor/playstats/internal/store"
	"github.com/vytor/playstats/internal/testutil/mocks"
)

func newQuizStore(t *testing.T) (*store.Store[models.QuizProfile], *mocks.MockBackend[models.QuizProfile]) {
	t.Helper()
	backend := &mocks.MockBackend[models.QuizProfile]{}
	backend.On("Location").Return("memory").Maybe()
	return store.New[models.QuizProfile](backend, models.NewQuizProfile), backend
}

func TestLoad_MissingSnapshotStartsFresh(t *testing.T) {
	s, backend := newQuizStore(t)
	missing := errors.NewPersistenceError("load", "userProfiles.txt", fs.ErrNotExist)
	backend.On("LoadAll", mock.Anything).Return(nil, missing)

	result := s.Load(context.Background())

	assert.True(t, result.Fresh)
	assert.NoError(t, result.Err)
	assert.Equal(t, "No existing profiles found. Starting fresh.", result.Notice())
	assert.Equal(t, 0, s.Len())
	backend.AssertExpectations(t)
}

func TestLoad_UnreadableSnapshotStartsEmpty(t *testing.T) {
	s, backend := newQuizStore(t)
	require.NoError(t, s.Put(models.NewQuizProfile("stale")))
	backend.On("LoadAll", mock.Anything).Return(nil, stderrors.New("disk on fire"))

	result := s.Load(context.Background())

	assert.False(t, result.Fresh)
	assert.Error(t, result.Err)
	assert.NotEmpty(t, result.Notice())
	assert.Equal(t, 0, s.Len(), "load replaces previous contents")
}

func TestLoad_SkipsCorruptRecordsAndKeepsTheRest(t *testing.T) {
	s, backend := newQuizStore(t)
	backend.On("LoadAll", mock.Anything).Return(store.Snapshot[models.QuizProfile]{
		Profiles: []models.QuizProfile{models.NewQuizProfile("alice"), models.NewQuizProfile("bob")},
		Skipped:  []error{errors.NewCorruptRecordError(4, "bad count")},
	}, nil)

	result := s.Load(context.Background())

	assert.Equal(t, 2, result.Loaded)
	assert.Equal(t, 1, result.Skipped)
	assert.NotEmpty(t, result.Notice())
	_, ok := s.Get("alice")
	assert.True(t, ok)
}

func TestLoad_DuplicateKeysKeepLaterRecord(t *testing.T) {
	s, backend := newQuizStore(t)
	first := models.NewQuizProfile("alice")
	second := models.NewQuizProfile("alice")
	second.QuizzesPlayed = 9
	backend.On("LoadAll", mock.Anything).Return(store.Snapshot[models.QuizProfile]{
		Profiles: []models.QuizProfile{first, second},
	}, nil)

	result := s.Load(context.Background())

	assert.Equal(t, 1, result.Loaded)
	got, _ := s.Get("alice")
	assert.Equal(t, 9, got.QuizzesPlayed)
	assert.Equal(t, "", result.Notice())
}

func TestGetOrCreate_NeverDuplicates(t *testing.T) {
	s, _ := newQuizStore(t)
	ctx := context.Background()

	p, created, err := s.GetOrCreate(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.NewQuizProfile("alice"), p)

	p.QuizzesPlayed = 3
	require.NoError(t, s.Put(p))

	again, created, err := s.GetOrCreate(ctx, "  alice ")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 3, again.QuizzesPlayed)
	assert.Equal(t, 1, s.Len())
}

func TestGetOrCreate_RejectsEmptyUsername(t *testing.T) {
	s, _ := newQuizStore(t)

	_, _, err := s.GetOrCreate(context.Background(), "   ")

	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
	assert.Equal(t, 0, s.Len())
}

func TestPut_RejectsEmptyKey(t *testing.T) {
	s, _ := newQuizStore(t)
	assert.True(t, errors.HasCode(s.Put(models.QuizProfile{}), errors.ErrCodeValidation))
}

func TestSave_WritesSortedSnapshot(t *testing.T) {
	s, backend := newQuizStore(t)
	ctx := context.Background()
	for _, name := range []string{"carol", "alice", "bob"} {
		_, _, err := s.GetOrCreate(ctx, name)
		require.NoError(t, err)
	}
	backend.On("SaveAll", ctx, []models.QuizProfile{
		models.NewQuizProfile("alice"),
		models.NewQuizProfile("bob"),
		models.NewQuizProfile("carol"),
	}).Return(nil)

	require.NoError(t, s.Save(ctx))
	backend.AssertExpectations(t)
}

func TestSave_FailureIsReportedAsPersistenceError(t *testing.T) {
	s, backend := newQuizStore(t)
	backend.On("SaveAll", mock.Anything, mock.Anything).Return(fmt.Errorf("write: %w", fs.ErrPermission))

	err := s.Save(context.Background())

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodePersistence))
	assert.True(t, stderrors.Is(err, fs.ErrPermission))
}
