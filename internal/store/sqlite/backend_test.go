package sqlite_test

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/playstats/internal/errors"
	"github.com/vytor/playstats/internal/models"
	"github.com/vytor/playstats/internal/profile"
	"github.com/vytor/playstats/internal/store"
	"github.com/vytor/playstats/internal/store/sqlite"
	"github.com/vytor/playstats/internal/testutil"
)

type BackendSuite struct {
	suite.Suite
	db    *sql.DB
	quiz  store.Backend[models.QuizProfile]
	guess store.Backend[models.GuessProfile]
}

func (s *BackendSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.quiz = sqlite.NewQuizBackend(s.db, "memory")
	s.guess = sqlite.NewGuessBackend(s.db, "memory")
}

func (s *BackendSuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *BackendSuite) TestEmptyDatabaseLoadsFresh() {
	st := store.New[models.QuizProfile](s.quiz, models.NewQuizProfile)

	result := st.Load(context.Background())

	s.Assert().True(result.Fresh)
	s.Assert().NoError(result.Err)
	s.Assert().Equal(0, st.Len())
}

func (s *BackendSuite) TestQuizRoundTrip() {
	ctx := context.Background()
	st := store.New[models.QuizProfile](s.quiz, models.NewQuizProfile)

	alice, _, err := st.GetOrCreate(ctx, "alice")
	s.Require().NoError(err)
	alice, err = profile.ApplyQuizResult(alice, models.QuizResult{Score: 5, Accuracy: 100})
	s.Require().NoError(err)
	s.Require().NoError(st.Put(alice))

	bob, _, err := st.GetOrCreate(ctx, "bob")
	s.Require().NoError(err)
	bob, err = profile.ApplyQuizResult(bob, models.QuizResult{Score: 1, Accuracy: 33.333333333333336})
	s.Require().NoError(err)
	s.Require().NoError(st.Put(bob))

	_, _, err = st.GetOrCreate(ctx, "carol")
	s.Require().NoError(err)

	s.Require().NoError(st.Save(ctx))

	reloaded := store.New[models.QuizProfile](s.quiz, models.NewQuizProfile)
	result := reloaded.Load(ctx)

	s.Assert().Equal(3, result.Loaded)
	s.Assert().Equal(st.List(), reloaded.List())
}

func (s *BackendSuite) TestQuizSaveReplacesSnapshot() {
	ctx := context.Background()

	first := models.NewQuizProfile("alice")
	first.Achievements = models.NewAchievementSet(models.AchievementQuizMaster)
	s.Require().NoError(s.quiz.SaveAll(ctx, []models.QuizProfile{first, models.NewQuizProfile("bob")}))
	s.Require().NoError(s.quiz.SaveAll(ctx, []models.QuizProfile{models.NewQuizProfile("bob")}))

	snap, err := s.quiz.LoadAll(ctx)
	s.Require().NoError(err)
	s.Assert().Equal([]models.QuizProfile{models.NewQuizProfile("bob")}, snap.Profiles)

	var achievements int
	s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quiz_achievements`).Scan(&achievements))
	s.Assert().Equal(0, achievements)
}

func (s *BackendSuite) TestQuizCorruptRowsAreSkipped() {
	ctx := context.Background()
	_, err := s.db.ExecContext(ctx, `INSERT INTO quiz_profiles (username, quizzes_played, highest_score, average_accuracy) VALUES (?, ?, ?, ?), (?, ?, ?, ?)`,
		"alice", 1, 5, 100.0,
		"mallory", 1, 1, 250.0)
	s.Require().NoError(err)

	snap, err := s.quiz.LoadAll(ctx)

	s.Require().NoError(err)
	s.Require().Len(snap.Profiles, 1)
	s.Assert().Equal("alice", snap.Profiles[0].Username)
	s.Require().Len(snap.Skipped, 1)
	s.Assert().True(errors.HasCode(snap.Skipped[0], errors.ErrCodeCorruptRecord))
}

func (s *BackendSuite) TestQuizSaveManyProfiles() {
	ctx := context.Background()
	profiles := make([]models.QuizProfile, 0, 450)
	for i := 0; i < 450; i++ {
		p := models.NewQuizProfile(fmt.Sprintf("player%03d", i))
		p.QuizzesPlayed = i
		if i%2 == 0 {
			p.Achievements = models.NewAchievementSet(models.AchievementQuizMaster, models.AchievementPerfectAccuracy)
		}
		profiles = append(profiles, p)
	}

	s.Require().NoError(s.quiz.SaveAll(ctx, profiles))
	snap, err := s.quiz.LoadAll(ctx)

	s.Require().NoError(err)
	s.Assert().Equal(profiles, snap.Profiles)
}

func (s *BackendSuite) TestGuessRoundTrip() {
	ctx := context.Background()
	want := []models.GuessProfile{
		{Username: "alice", GamesPlayed: 2, RoundsPlayed: 5, Wins: 3, Losses: 2, TotalScore: 240, BestScore: 190},
		models.NewGuessProfile("bob"),
	}

	s.Require().NoError(s.guess.SaveAll(ctx, want))
	snap, err := s.guess.LoadAll(ctx)

	s.Require().NoError(err)
	s.Assert().Equal(want, snap.Profiles)
	s.Assert().Empty(snap.Skipped)
}

func (s *BackendSuite) TestSaveFailureRollsBack() {
	ctx := context.Background()
	s.Require().NoError(s.guess.SaveAll(ctx, []models.GuessProfile{models.NewGuessProfile("alice")}))

	// Duplicate keys violate the primary key, so the whole snapshot must roll back.
	err := s.guess.SaveAll(ctx, []models.GuessProfile{models.NewGuessProfile("bob"), models.NewGuessProfile("bob")})
	s.Require().Error(err)
	s.Assert().True(errors.HasCode(err, errors.ErrCodePersistence))

	snap, err := s.guess.LoadAll(ctx)
	s.Require().NoError(err)
	s.Assert().Equal([]models.GuessProfile{models.NewGuessProfile("alice")}, snap.Profiles)
}

func TestBackendSuite(t *testing.T) {
	suite.Run(t, new(BackendSuite))
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playstats.db")

	db, err := sqlite.Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	testutil.MustClose(t, db)

	db, err = sqlite.Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer testutil.MustClose(t, db)

	var applied int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied); err != nil {
		t.Fatal(err)
	}
	if applied != 1 {
		t.Fatalf("expected 1 applied migration, got %d", applied)
	}
}
