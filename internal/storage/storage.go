package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	keyFirstLaunch = "first_launch"
)

// PlayerColor represents which color the human plays
type PlayerColor int

const (
	ColorWhite PlayerColor = iota
	ColorBlack
)

func (c PlayerColor) String() string {
	if c == ColorBlack {
		return "black"
	}
	return "white"
}

// Preferences stores the defaults the command line falls back to. Names
// are kept as text so that the board and engine packages own their parsing.
type Preferences struct {
	Variant     string      `json:"variant"`
	Strategy    string      `json:"strategy"`
	Depth       int         `json:"depth"` // 0 = difficulty preset
	Difficulty  string      `json:"difficulty"`
	PlayerColor PlayerColor `json:"player_color"`
	LastPlayed  time.Time   `json:"last_played"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *Preferences {
	return &Preferences{
		Variant:     "classic",
		Strategy:    "alphabeta",
		Depth:       0,
		Difficulty:  "medium",
		PlayerColor: ColorWhite,
		LastPlayed:  time.Now(),
	}
}

// GameStats stores game statistics
type GameStats struct {
	GamesPlayed    int            `json:"games_played"`
	Wins           int            `json:"wins"`
	Losses         int            `json:"losses"`
	Draws          int            `json:"draws"`
	WinsByVariant  map[string]int `json:"wins_by_variant"`
	WinsByDiff     map[string]int `json:"wins_by_difficulty"`
	TotalPlies     int            `json:"total_plies"`
	TotalPlayTime  time.Duration  `json:"total_play_time"`
	LongestWinStrk int            `json:"longest_win_streak"`
	CurrentStreak  int            `json:"current_streak"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{
		WinsByVariant: make(map[string]int),
		WinsByDiff:    make(map[string]int),
	}
}

// GameResult is the outcome of a completed game from the point of view of
// the preferred PlayerColor.
type GameResult struct {
	Won        bool
	Draw       bool
	Variant    string
	Difficulty string
	Plies      int
	Duration   time.Duration
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(dbDir)
}

// OpenAt opens (or creates) the database in dir.
func OpenAt(dir string) (*Storage, error) {
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory opens a database that lives only as long as the Storage.
func OpenInMemory() (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Storage, error) {
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// IsFirstLaunch returns true if this is the first launch
func (s *Storage) IsFirstLaunch() (bool, error) {
	firstLaunch := true

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyFirstLaunch))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		firstLaunch = false
		return nil
	})

	return firstLaunch, err
}

// MarkFirstLaunchComplete marks that first launch setup is complete
func (s *Storage) MarkFirstLaunchComplete() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyFirstLaunch), []byte("done"))
	})
}

// put stores v as JSON under key.
func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get decodes the JSON stored under key into v, leaving v untouched when
// the key is absent.
func (s *Storage) get(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastPlayed = time.Now()
	return s.put(keyPreferences, prefs)
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()
	err := s.get(keyPreferences, prefs)
	return prefs, err
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	return s.put(keyStats, stats)
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()
	if err := s.get(keyStats, stats); err != nil {
		return nil, err
	}
	// Older records may lack a map.
	if stats.WinsByVariant == nil {
		stats.WinsByVariant = make(map[string]int)
	}
	if stats.WinsByDiff == nil {
		stats.WinsByDiff = make(map[string]int)
	}
	return stats, nil
}

// RecordGame records a completed game and updates statistics
func (s *Storage) RecordGame(result GameResult) (*GameStats, error) {
	stats, err := s.LoadStats()
	if err != nil {
		return nil, err
	}
	stats.Record(result)
	if err := s.SaveStats(stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// Record folds one game into the statistics.
func (s *GameStats) Record(result GameResult) {
	s.GamesPlayed++
	s.TotalPlies += result.Plies
	s.TotalPlayTime += result.Duration

	switch {
	case result.Draw:
		s.Draws++
		s.CurrentStreak = 0
	case result.Won:
		s.Wins++
		s.CurrentStreak++
		s.LongestWinStrk = max(s.LongestWinStrk, s.CurrentStreak)
		s.WinsByVariant[result.Variant]++
		s.WinsByDiff[result.Difficulty]++
	default:
		s.Losses++
		s.CurrentStreak = 0
	}
}

// GetWinRate returns the win rate as a percentage (0-100)
func (s *GameStats) GetWinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100
}
