package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	petname "github.com/dustinkirkland/golang-petname"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	keyFirstLaunch = "first_launch"
	prefixResult   = "result/"
)

// Outcome is how a finished game ended.
type Outcome int

const (
	WhiteWins Outcome = iota
	BlackWins
	Stalemate
	Abandoned
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case WhiteWins:
		return "white wins"
	case BlackWins:
		return "black wins"
	case Stalemate:
		return "stalemate"
	case Abandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// UserPreferences stores user settings
type UserPreferences struct {
	Username   string    `json:"username"`
	FlipBoard  bool      `json:"flip_board"`
	ShowHints  bool      `json:"show_hints"`
	ShowLabels bool      `json:"show_labels"`
	Sound      bool      `json:"sound"`
	LastPlayed time.Time `json:"last_played"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		Username:   "Player",
		FlipBoard:  false,
		ShowHints:  true,
		ShowLabels: true,
		Sound:      true,
		LastPlayed: time.Now(),
	}
}

// GameStats stores game statistics
type GameStats struct {
	GamesPlayed   int           `json:"games_played"`
	WhiteWins     int           `json:"white_wins"`
	BlackWins     int           `json:"black_wins"`
	Stalemates    int           `json:"stalemates"`
	Abandoned     int           `json:"abandoned"`
	TotalPlies    int           `json:"total_plies"`
	LongestGame   int           `json:"longest_game"`
	TotalPlayTime time.Duration `json:"total_play_time"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{}
}

// GameResult is the summary of one finished game. The moves themselves are
// not kept.
type GameResult struct {
	Name       string        `json:"name"`
	Outcome    Outcome       `json:"outcome"`
	Plies      int           `json:"plies"`
	LastMove   string        `json:"last_move"`
	Duration   time.Duration `json:"duration"`
	FinishedAt time.Time     `json:"finished_at"`
}

// NewSessionName returns a readable name for a game session, e.g. "brave-otter".
func NewSessionName() string {
	return petname.Generate(2, "-")
}

// Abbreviate shortens s to at most n runes for display, marking a cut with
// "...". Names are user input, so it never splits a UTF-8 sequence.
func Abbreviate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens (or creates) the database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dir, err)
	}

	return &Storage{db: db}, nil
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory database: %w", err)
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

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *UserPreferences) error {
	prefs.LastPlayed = time.Now()
	return s.putJSON(keyPreferences, prefs)
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*UserPreferences, error) {
	prefs := DefaultPreferences()
	err := s.getJSON(keyPreferences, prefs)
	return prefs, err
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	return s.putJSON(keyStats, stats)
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()
	err := s.getJSON(keyStats, stats)
	return stats, err
}

// RecordGame stores the result summary and folds it into the statistics.
func (s *Storage) RecordGame(result GameResult) error {
	if result.FinishedAt.IsZero() {
		result.FinishedAt = time.Now()
	}
	if result.Name == "" {
		result.Name = NewSessionName()
	}

	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	stats.TotalPlies += result.Plies
	stats.TotalPlayTime += result.Duration
	if result.Plies > stats.LongestGame {
		stats.LongestGame = result.Plies
	}

	switch result.Outcome {
	case WhiteWins:
		stats.WhiteWins++
	case BlackWins:
		stats.BlackWins++
	case Stalemate:
		stats.Stalemates++
	default:
		stats.Abandoned++
	}

	statsData, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	resultData, err := json.Marshal(result)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("%s%020d", prefixResult, result.FinishedAt.UnixNano())
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(key), resultData); err != nil {
			return err
		}
		return txn.Set([]byte(keyStats), statsData)
	})
}

// RecentResults returns up to n result summaries, newest first.
func (s *Storage) RecentResults(n int) ([]GameResult, error) {
	var results []GameResult
	if n <= 0 {
		return results, nil
	}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixResult)
		opts.Reverse = true

		it := txn.NewIterator(opts)
		defer it.Close()

		seek := append([]byte(prefixResult), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(opts.Prefix) && len(results) < n; it.Next() {
			var r GameResult
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			})
			if err != nil {
				return err
			}
			results = append(results, r)
		}
		return nil
	})

	return results, err
}

// putJSON marshals v and stores it under key.
func (s *Storage) putJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// getJSON loads key into v, leaving v untouched if the key is missing.
func (s *Storage) getJSON(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil // Use defaults
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}

// AverageLength returns the mean number of plies per game.
func (s *GameStats) AverageLength() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.TotalPlies) / float64(s.GamesPlayed)
}
