package store

import (
	"github.com/google/uuid"

	"github.com/ayusman/volante/internal/keybind"
)

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Presets table - named key binding sets
		`CREATE TABLE IF NOT EXISTS presets (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Preset bindings table - one row per player and channel
		`CREATE TABLE IF NOT EXISTS preset_bindings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			preset_id TEXT NOT NULL REFERENCES presets(id) ON DELETE CASCADE,
			player INTEGER NOT NULL CHECK(player IN (0, 1)),
			channel TEXT NOT NULL CHECK(channel IN ('high', 'mid', 'low', 'left', 'neutral', 'right')),
			key TEXT NOT NULL DEFAULT ''
		)`,

		// Settings table - application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_preset_bindings_preset_id ON preset_bindings(preset_id)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_preset_bindings_slot ON preset_bindings(preset_id, player, channel)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}

// seedPresets inserts the presets shipped with the controller. It only
// writes into an empty presets table, so user edits survive restarts.
func (s *Store) seedPresets() error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM presets`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	preset := &Preset{
		ID:       uuid.New().String(),
		Name:     MicroMachinesPresetName,
		Bindings: keybind.MicroMachinesTable(),
	}

	return s.Presets().Create(preset)
}
