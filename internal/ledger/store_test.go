package ledger

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/robalobadob/endgame/internal/game"
	"github.com/robalobadob/endgame/internal/words"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "ledger.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := Migrate(db); err != nil {
		t.Fatal(err)
	}
	return NewStore(db)
}

var base = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func result(id, owner string, status game.Status, at time.Duration) Result {
	return Result{
		RoundID:      id,
		OwnerID:      owner,
		Mode:         "random",
		Date:         "2026-10-18",
		Word:         "cat",
		Guesses:      "cat",
		WrongGuesses: 0,
		Status:       status,
		StartedAt:    base.Add(at - time.Minute),
		FinishedAt:   base.Add(at),
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	is := is.New(t)
	db, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	is.NoErr(err)
	defer db.Close()
	is.NoErr(Migrate(db))
	is.NoErr(Migrate(db))

	files, err := fs.Glob(migrations, "migrations/*.sql")
	is.NoErr(err)
	var n int
	is.NoErr(db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
	is.Equal(n, len(files))
}

// A database that already holds repeated daily rounds keeps only the first one
// per owner and day once the uniqueness migration runs.
func TestMigrateDropsRepeatedDailyRounds(t *testing.T) {
	is := is.New(t)
	db, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	is.NoErr(err)
	defer db.Close()

	first, err := migrations.ReadFile("migrations/001_rounds.sql")
	is.NoErr(err)
	_, err = db.Exec(string(first))
	is.NoErr(err)
	_, err = db.Exec(`CREATE TABLE _migrations (name TEXT PRIMARY KEY); INSERT INTO _migrations VALUES ('migrations/001_rounds.sql');`)
	is.NoErr(err)

	s := NewStore(db)
	ctx := context.Background()
	for i, id := range []string{"d1", "d2", "d3"} {
		r := result(id, "me", game.StatusWon, time.Duration(i+1)*time.Minute)
		r.Mode = "daily"
		is.NoErr(s.Record(ctx, r))
	}
	is.NoErr(s.Record(ctx, result("r1", "me", game.StatusWon, 5*time.Minute)))

	is.NoErr(Migrate(db))

	rows, err := s.Recent(ctx, "me", 0)
	is.NoErr(err)
	is.Equal(len(rows), 2)
	is.Equal(rows[0].ID, "r1")
	is.Equal(rows[1].ID, "d1")
}

func TestDailyOncePerOwner(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	s := openTestStore(t)

	played, err := s.AlreadyPlayed(ctx, "me", "2026-10-18")
	is.NoErr(err)
	is.True(!played)

	lost := result("d1", "me", game.StatusLost, time.Minute)
	lost.Mode = "daily"
	lost.WrongGuesses = 8
	is.NoErr(s.Record(ctx, lost))

	// a replay the same day is ignored, win or not
	won := result("d2", "me", game.StatusWon, 2*time.Minute)
	won.Mode = "daily"
	is.NoErr(s.Record(ctx, won))

	played, err = s.AlreadyPlayed(ctx, "me", "2026-10-18")
	is.NoErr(err)
	is.True(played)
	played, err = s.AlreadyPlayed(ctx, "me", "2026-10-19")
	is.NoErr(err)
	is.True(!played)
	played, err = s.AlreadyPlayed(ctx, "someone-else", "2026-10-18")
	is.NoErr(err)
	is.True(!played)

	// random rounds never count as the daily
	is.NoErr(s.Record(ctx, result("r1", "other", game.StatusWon, time.Minute)))
	played, err = s.AlreadyPlayed(ctx, "other", "2026-10-18")
	is.NoErr(err)
	is.True(!played)

	st, err := s.Stats(ctx, "me")
	is.NoErr(err)
	is.Equal(st, Stats{Played: 1, Losses: 1})

	rows, err := s.Leaderboard(ctx, "2026-10-18", 0)
	is.NoErr(err)
	is.Equal(len(rows), 0)
}

func TestRecordAndStats(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	s := openTestStore(t)

	is.NoErr(s.Record(ctx, result("r1", "me", game.StatusWon, 1*time.Minute)))
	is.NoErr(s.Record(ctx, result("r2", "me", game.StatusLost, 2*time.Minute)))
	is.NoErr(s.Record(ctx, result("r3", "me", game.StatusWon, 3*time.Minute)))
	is.NoErr(s.Record(ctx, result("r4", "me", game.StatusWon, 4*time.Minute)))
	is.NoErr(s.Record(ctx, result("r4", "me", game.StatusWon, 4*time.Minute))) // duplicate ignored
	is.NoErr(s.Record(ctx, result("x1", "someone-else", game.StatusWon, 5*time.Minute)))

	st, err := s.Stats(ctx, "me")
	is.NoErr(err)
	is.Equal(st, Stats{Played: 4, Wins: 3, Losses: 1, Streak: 2})

	none, err := s.Stats(ctx, "nobody")
	is.NoErr(err)
	is.Equal(none, Stats{})
}

func TestRecent(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	s := openTestStore(t)
	is.NoErr(s.Record(ctx, result("r1", "me", game.StatusWon, 1*time.Minute)))
	is.NoErr(s.Record(ctx, result("r2", "me", game.StatusLost, 2*time.Minute)))

	rows, err := s.Recent(ctx, "me", 0)
	is.NoErr(err)
	is.Equal(len(rows), 2)
	is.Equal(rows[0].ID, "r2")
	is.Equal(rows[0].Status, "lost")
	is.Equal(rows[1].Word, "cat")
}

func TestLeaderboard(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	s := openTestStore(t)

	daily := func(id, owner string, wrong int, guesses string, status game.Status) Result {
		r := result(id, owner, status, time.Minute)
		r.Mode = "daily"
		r.WrongGuesses = wrong
		r.Guesses = guesses
		return r
	}
	is.NoErr(s.Record(ctx, daily("d1", "slow", 2, "xycat", game.StatusWon)))
	is.NoErr(s.Record(ctx, daily("d2", "best", 0, "cat", game.StatusWon)))
	is.NoErr(s.Record(ctx, daily("d3", "loser", 8, "bdefghij", game.StatusLost)))
	is.NoErr(s.Record(ctx, result("r1", "random", game.StatusWon, time.Minute)))

	rows, err := s.Leaderboard(ctx, "2026-10-18", 0)
	is.NoErr(err)
	is.Equal(len(rows), 2)
	is.Equal(rows[0], LBRow{OwnerID: "best", WrongGuesses: 0, Guesses: 3, ElapsedMs: 60000})
	is.Equal(rows[1].OwnerID, "slow")
}

func TestFromRound(t *testing.T) {
	is := is.New(t)
	c, err := words.NewCatalog([]words.Entry{{Name: "A"}, {Name: "B"}, {Name: "C"}})
	is.NoErr(err)
	e := game.New(words.Fixed("cat"), c)
	for _, l := range "cxat" {
		e.SubmitGuess(l)
	}
	finished := e.Round().StartedAt.Add(time.Second)
	r := FromRound("me", "random", e.Round(), e.Facts(), finished)
	is.Equal(r.RoundID, e.Round().ID)
	is.Equal(r.Guesses, "cxat")
	is.Equal(r.WrongGuesses, 1)
	is.Equal(r.Status, game.StatusWon)
	is.Equal(r.Word, "cat")
}
