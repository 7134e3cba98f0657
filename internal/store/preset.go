package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/volante/internal/keybind"
	"github.com/ayusman/volante/internal/steering"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// MicroMachinesPresetName names the preset seeded for the Micro Machines
// dosbox, which does not accept arrow keys.
const MicroMachinesPresetName = "micro-machines"

// Preset is a named set of key bindings for both players.
type Preset struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Bindings  keybind.Table `json:"bindings"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// channels lists the binding channels in storage order.
var channels = []string{"high", "mid", "low", "left", "neutral", "right"}

func bindingKey(b keybind.Bindings, channel string) string {
	switch channel {
	case "high":
		return b.High
	case "mid":
		return b.Mid
	case "low":
		return b.Low
	case "left":
		return b.Left
	case "neutral":
		return b.Neutral
	case "right":
		return b.Right
	}
	return ""
}

func setBindingKey(b *keybind.Bindings, channel, key string) {
	switch channel {
	case "high":
		b.High = key
	case "mid":
		b.Mid = key
	case "low":
		b.Low = key
	case "left":
		b.Left = key
	case "neutral":
		b.Neutral = key
	case "right":
		b.Right = key
	}
}

// PresetRepository provides CRUD operations for presets.
type PresetRepository struct {
	db *sql.DB
}

// Presets returns the preset repository for this store.
func (s *Store) Presets() *PresetRepository {
	return &PresetRepository{db: s.db}
}

// Create inserts a new preset with its bindings in a single transaction.
func (r *PresetRepository) Create(p *Preset) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO presets (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		p.ID, p.Name, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if err := insertBindings(tx, p.ID, p.Bindings); err != nil {
		return err
	}

	return tx.Commit()
}

// insertBindings writes one row per player and channel.
func insertBindings(tx *sql.Tx, presetID string, table keybind.Table) error {
	stmt, err := tx.Prepare(
		`INSERT INTO preset_bindings (preset_id, player, channel, key) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for player, bindings := range table {
		for _, channel := range channels {
			if _, err := stmt.Exec(presetID, player, channel, bindingKey(bindings, channel)); err != nil {
				return err
			}
		}
	}

	return nil
}

// GetByID retrieves a preset and its bindings by ID.
func (r *PresetRepository) GetByID(id string) (*Preset, error) {
	p := &Preset{}

	err := r.db.QueryRow(
		`SELECT id, name, created_at, updated_at FROM presets WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := r.loadBindings(p); err != nil {
		return nil, err
	}

	return p, nil
}

// GetByName retrieves a preset and its bindings by name.
func (r *PresetRepository) GetByName(name string) (*Preset, error) {
	p := &Preset{}

	err := r.db.QueryRow(
		`SELECT id, name, created_at, updated_at FROM presets WHERE name = ?`,
		name,
	).Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := r.loadBindings(p); err != nil {
		return nil, err
	}

	return p, nil
}

// List retrieves all presets with their bindings.
func (r *PresetRepository) List() ([]*Preset, error) {
	rows, err := r.db.Query(
		`SELECT id, name, created_at, updated_at FROM presets ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var presets []*Preset
	for rows.Next() {
		p := &Preset{}
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, p := range presets {
		if err := r.loadBindings(p); err != nil {
			return nil, err
		}
	}

	return presets, nil
}

// Update updates a preset's name and replaces its binding rows.
func (r *PresetRepository) Update(p *Preset) error {
	p.UpdatedAt = time.Now()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`UPDATE presets SET name = ?, updated_at = ? WHERE id = ?`,
		p.Name, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(`DELETE FROM preset_bindings WHERE preset_id = ?`, p.ID); err != nil {
		return err
	}
	if err := insertBindings(tx, p.ID, p.Bindings); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a preset by its ID. The binding rows go with it via the
// foreign key cascade.
func (r *PresetRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM presets WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Save stores the bindings under the given preset name, creating the
// preset if it does not exist yet and updating it in place otherwise.
func (r *PresetRepository) Save(name string, bindings keybind.Table) (*Preset, error) {
	existing, err := r.GetByName(name)

	switch {
	case err == nil:
		existing.Bindings = bindings
		if err := r.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil

	case errors.Is(err, ErrNotFound):
		p := &Preset{
			ID:       uuid.New().String(),
			Name:     name,
			Bindings: bindings,
		}
		if err := r.Create(p); err != nil {
			return nil, err
		}
		return p, nil

	default:
		return nil, err
	}
}

// loadBindings fills in the preset's binding table from its rows.
func (r *PresetRepository) loadBindings(p *Preset) error {
	rows, err := r.db.Query(
		`SELECT player, channel, key FROM preset_bindings WHERE preset_id = ?`, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var player int
		var channel, key string

		if err := rows.Scan(&player, &channel, &key); err != nil {
			return err
		}

		if player < 0 || player >= steering.MaxPlayers {
			continue
		}
		setBindingKey(&p.Bindings[player], channel, key)
	}

	return rows.Err()
}
