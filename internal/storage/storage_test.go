package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func openTest(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorage(t *testing.T) {
	t.Run("DefaultPreferences", func(t *testing.T) {
		prefs := DefaultPreferences()
		if prefs.Variant != "classic" {
			t.Errorf("Expected classic variant, got %q", prefs.Variant)
		}
		if prefs.Difficulty != "medium" {
			t.Errorf("Expected medium difficulty, got %q", prefs.Difficulty)
		}
		if prefs.PlayerColor != ColorWhite {
			t.Errorf("Expected to play white")
		}
	})

	t.Run("NewGameStats", func(t *testing.T) {
		stats := NewGameStats()
		if stats.GamesPlayed != 0 {
			t.Errorf("Expected 0 games played")
		}
		if stats.GetWinRate() != 0 {
			t.Errorf("Expected 0 win rate")
		}
	})

	t.Run("WinRate", func(t *testing.T) {
		stats := &GameStats{
			GamesPlayed: 10,
			Wins:        5,
			Losses:      3,
			Draws:       2,
		}
		rate := stats.GetWinRate()
		if rate != 50 {
			t.Errorf("Expected 50%% win rate, got %.2f%%", rate)
		}
	})
}

func TestPreferencesRoundTrip(t *testing.T) {
	s := openTest(t)

	got, err := s.LoadPreferences()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(DefaultPreferences(), got, cmpopts.IgnoreFields(Preferences{}, "LastPlayed")); diff != "" {
		t.Errorf("empty store preferences (-want +got):\n%s", diff)
	}

	want := &Preferences{
		Variant:     "chess960",
		Strategy:    "minimax",
		Depth:       2,
		Difficulty:  "hard",
		PlayerColor: ColorBlack,
	}
	if err := s.SavePreferences(want); err != nil {
		t.Fatal(err)
	}
	if want.LastPlayed.IsZero() {
		t.Error("SavePreferences did not stamp LastPlayed")
	}
	got, err = s.LoadPreferences()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(Preferences{}, "LastPlayed")); diff != "" {
		t.Errorf("LoadPreferences (-want +got):\n%s", diff)
	}
}

func TestRecordGame(t *testing.T) {
	s := openTest(t)

	games := []GameResult{
		{Won: true, Variant: "standard", Difficulty: "easy", Plies: 40},
		{Won: true, Variant: "chess960", Difficulty: "easy", Plies: 60},
		{Draw: true, Variant: "chess960", Difficulty: "hard", Plies: 100},
		{Won: true, Variant: "chess960", Difficulty: "hard", Plies: 30},
		{Variant: "standard", Difficulty: "hard", Plies: 50},
	}
	for _, g := range games {
		if _, err := s.RecordGame(g); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	want := &GameStats{
		GamesPlayed:    5,
		Wins:           3,
		Losses:         1,
		Draws:          1,
		WinsByVariant:  map[string]int{"standard": 1, "chess960": 2},
		WinsByDiff:     map[string]int{"easy": 2, "hard": 1},
		TotalPlies:     280,
		LongestWinStrk: 2,
		CurrentStreak:  0,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadStats (-want +got):\n%s", diff)
	}
	if rate := got.GetWinRate(); rate != 60 {
		t.Errorf("GetWinRate() = %.2f, want 60", rate)
	}
}

func TestFirstLaunch(t *testing.T) {
	s := openTest(t)

	first, err := s.IsFirstLaunch()
	if err != nil || !first {
		t.Fatalf("IsFirstLaunch() = %v, %v; want true", first, err)
	}
	if err := s.MarkFirstLaunchComplete(); err != nil {
		t.Fatal(err)
	}
	if first, _ := s.IsFirstLaunch(); first {
		t.Error("IsFirstLaunch() still true after MarkFirstLaunchComplete")
	}
}

func TestOpenAtPersists(t *testing.T) {
	dir := t.TempDir()

	s, err := OpenAt(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.RecordGame(GameResult{Won: true, Variant: "standard", Difficulty: "medium"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = OpenAt(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	stats, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesPlayed != 1 || stats.Wins != 1 {
		t.Errorf("reopened stats = %+v, want one win", stats)
	}
}

func TestDataPaths(t *testing.T) {
	override := filepath.Join(t.TempDir(), "data")
	t.Setenv(DataDirEnv, override)

	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir != override {
		t.Errorf("GetDataDir() = %q, want %q", dataDir, override)
	}

	dbDir, err := GetDatabaseDir()
	if err != nil {
		t.Fatalf("GetDatabaseDir failed: %v", err)
	}
	// Verify directory exists
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		t.Errorf("Database directory was not created: %s", dbDir)
	}

	t.Logf("Database directory: %s", dbDir)
}
