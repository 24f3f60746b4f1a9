package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

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
		if prefs.Username != "Player" {
			t.Errorf("Expected username 'Player', got '%s'", prefs.Username)
		}
		if prefs.FlipBoard {
			t.Errorf("Expected unflipped board by default")
		}
		if !prefs.ShowHints || !prefs.ShowLabels {
			t.Errorf("Expected hints and labels enabled by default")
		}
	})

	t.Run("NewGameStats", func(t *testing.T) {
		stats := NewGameStats()
		if stats.GamesPlayed != 0 {
			t.Errorf("Expected 0 games played")
		}
		if stats.AverageLength() != 0 {
			t.Errorf("Expected 0 average length")
		}
	})

	t.Run("AverageLength", func(t *testing.T) {
		stats := &GameStats{GamesPlayed: 4, TotalPlies: 100}
		if got := stats.AverageLength(); got != 25 {
			t.Errorf("Expected 25 plies per game, got %.2f", got)
		}
	})
}

func TestPreferencesRoundTrip(t *testing.T) {
	s := openTest(t)

	prefs, err := s.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	ignoreTime := cmpopts.IgnoreFields(UserPreferences{}, "LastPlayed")
	if diff := cmp.Diff(DefaultPreferences(), prefs, ignoreTime); diff != "" {
		t.Errorf("missing preferences should load defaults (-want +got):\n%s", diff)
	}

	want := &UserPreferences{Username: "ana", FlipBoard: true, ShowHints: false, ShowLabels: true}
	if err := s.SavePreferences(want); err != nil {
		t.Fatalf("SavePreferences: %v", err)
	}
	if want.LastPlayed.IsZero() {
		t.Error("SavePreferences should stamp LastPlayed")
	}

	got, err := s.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if diff := cmp.Diff(want, got, ignoreTime); diff != "" {
		t.Errorf("preferences mismatch (-want +got):\n%s", diff)
	}
}

func TestFirstLaunch(t *testing.T) {
	s := openTest(t)

	first, err := s.IsFirstLaunch()
	if err != nil || !first {
		t.Fatalf("IsFirstLaunch() = %v, %v; want true, nil", first, err)
	}
	if err := s.MarkFirstLaunchComplete(); err != nil {
		t.Fatal(err)
	}
	first, err = s.IsFirstLaunch()
	if err != nil || first {
		t.Fatalf("IsFirstLaunch() = %v, %v; want false, nil", first, err)
	}
}

func TestRecordGame(t *testing.T) {
	s := openTest(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	results := []GameResult{
		{Name: "first", Outcome: BlackWins, Plies: 4, LastMove: "Qh4", Duration: time.Minute, FinishedAt: base},
		{Name: "second", Outcome: Stalemate, Plies: 60, Duration: 10 * time.Minute, FinishedAt: base.Add(time.Hour)},
		{Name: "third", Outcome: WhiteWins, Plies: 7, LastMove: "Qf7", Duration: 2 * time.Minute, FinishedAt: base.Add(2 * time.Hour)},
		{Outcome: Abandoned, Plies: 3, FinishedAt: base.Add(3 * time.Hour)},
	}
	for _, r := range results {
		if err := s.RecordGame(r); err != nil {
			t.Fatalf("RecordGame(%s): %v", r.Name, err)
		}
	}

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	want := &GameStats{
		GamesPlayed:   4,
		WhiteWins:     1,
		BlackWins:     1,
		Stalemates:    1,
		Abandoned:     1,
		TotalPlies:    74,
		LongestGame:   60,
		TotalPlayTime: 13 * time.Minute,
	}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}

	recent, err := s.RecentResults(3)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, r := range recent {
		names = append(names, r.Name)
	}
	if len(names) != 3 || names[1] != "third" || names[2] != "second" {
		t.Errorf("RecentResults(3) names = %v, want [<generated> third second]", names)
	}
	if names[0] == "" || !strings.Contains(names[0], "-") {
		t.Errorf("unnamed result should get a session name, got %q", names[0])
	}
	if diff := cmp.Diff(results[2], recent[1], cmpopts.EquateApproxTime(0)); diff != "" {
		t.Errorf("stored result mismatch (-want +got):\n%s", diff)
	}

	if none, err := s.RecentResults(0); err != nil || len(none) != 0 {
		t.Errorf("RecentResults(0) = %v, %v", none, err)
	}
}

func TestPersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.SavePreferences(&UserPreferences{Username: "kept"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	prefs, err := s.LoadPreferences()
	if err != nil {
		t.Fatal(err)
	}
	if prefs.Username != "kept" {
		t.Errorf("Username = %q after reopen, want kept", prefs.Username)
	}
}

func TestDataRoot(t *testing.T) {
	env := func(vars map[string]string) func(string) string {
		return func(k string) string { return vars[k] }
	}
	home := func() (string, error) { return "/home/ada", nil }
	noHome := func() (string, error) { return "", errors.New("no home") }

	tests := []struct {
		name    string
		goos    string
		vars    map[string]string
		home    func() (string, error)
		want    string
		wantErr bool
	}{
		{"linux xdg", "linux", map[string]string{"XDG_DATA_HOME": "/data"}, home, filepath.Join("/data", appName), false},
		{"linux fallback", "linux", nil, home, filepath.Join("/home/ada", ".local", "share", appName), false},
		{"freebsd uses xdg", "freebsd", nil, home, filepath.Join("/home/ada", ".local", "share", appName), false},
		{"darwin", "darwin", map[string]string{"XDG_DATA_HOME": "/ignored"}, home, filepath.Join("/home/ada", "Library", "Application Support", appName), false},
		{"windows appdata", "windows", map[string]string{"APPDATA": "/roaming"}, home, filepath.Join("/roaming", appName), false},
		{"windows fallback", "windows", nil, home, filepath.Join("/home/ada", "AppData", "Roaming", appName), false},
		{"override", "darwin", map[string]string{EnvDataDir: "/custom"}, noHome, "/custom", false},
		{"no home", "linux", nil, noHome, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dataRoot(tt.goos, env(tt.vars), tt.home)
			if (err != nil) != tt.wantErr {
				t.Fatalf("dataRoot() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("dataRoot() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDataPaths(t *testing.T) {
	root := t.TempDir()
	t.Setenv(EnvDataDir, "")
	t.Setenv("XDG_DATA_HOME", root)
	t.Setenv("APPDATA", root)
	t.Setenv("HOME", root)

	dataDir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir failed: %v", err)
	}
	if !strings.HasPrefix(dataDir, root) {
		t.Errorf("DataDir() = %s, want a path under %s", dataDir, root)
	}
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("Data directory was not created: %s", dataDir)
	}

	dbDir, err := DatabaseDir()
	if err != nil {
		t.Fatalf("DatabaseDir failed: %v", err)
	}
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		t.Errorf("Database directory was not created: %s", dbDir)
	}
}

func TestAbbreviate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short", "Player", 12, "Player"},
		{"exact", "abcdefghijkl", 12, "abcdefghijkl"},
		{"ascii cut", "abcdefghijklmn", 12, "abcdefghijkl..."},
		{"multibyte kept whole", "Zoë Ångström-Øvergård", 12, "Zoë Ångström..."},
		{"cjk", "国际象棋大师", 4, "国际象棋..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Abbreviate(tt.in, tt.n)
			if got != tt.want {
				t.Errorf("Abbreviate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("Abbreviate(%q, %d) split a rune: %q", tt.in, tt.n, got)
			}
		})
	}
}
