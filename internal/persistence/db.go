// Package persistence keeps a SQLite log of generated maps. Maps are fully
// determined by their parameters and seed, so the log is all that is needed
// to bring a map back; no game state is stored.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/hex-tactics/internal/world"
)

// ErrNotFound is returned when no map matches a lookup.
var ErrNotFound = errors.New("map not found")

// DB wraps a SQLite connection for the map log.
type DB struct {
	conn *sqlx.DB
}

// MapRecord is one generated map.
type MapRecord struct {
	ID        int64  `db:"id"`
	Seed      int64  `db:"seed"`
	Shape     string `db:"shape"`
	Size      int    `db:"size"`
	SeaLevel  int    `db:"sea_level"`
	MaxHeight int    `db:"max_height"`
	MinHeight int    `db:"min_height"`
	Tiles     int    `db:"tiles"`
	Obstacles int    `db:"obstacles"`
	CreatedAt int64  `db:"created_at"`
}

// RecordFor summarises a generated map.
func RecordFor(cfg world.GenConfig, m *world.Map) MapRecord {
	obstacles := 0
	for _, t := range m.Tiles() {
		if t.Decorated() {
			obstacles++
		}
	}
	return MapRecord{
		Seed:      m.Seed,
		Shape:     world.ShapeName(m.Shape),
		Size:      m.Size,
		SeaLevel:  m.SeaLevel,
		MaxHeight: m.MaxHeight,
		MinHeight: cfg.MinHeight,
		Tiles:     m.TileCount(),
		Obstacles: obstacles,
		CreatedAt: time.Now().Unix(),
	}
}

// GenConfig rebuilds the generation parameters of a record.
func (r MapRecord) GenConfig() (world.GenConfig, error) {
	shape, ok := world.ParseShape(r.Shape)
	if !ok {
		return world.GenConfig{}, fmt.Errorf("record %d: unknown shape %q", r.ID, r.Shape)
	}
	return world.GenConfig{
		Shape:     shape,
		Size:      r.Size,
		SeaLevel:  r.SeaLevel,
		MaxHeight: r.MaxHeight,
		MinHeight: r.MinHeight,
		Seed:      r.Seed,
		Workers:   1,
	}, nil
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS maps (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seed INTEGER NOT NULL,
		shape TEXT NOT NULL,
		size INTEGER NOT NULL,
		sea_level INTEGER NOT NULL,
		max_height INTEGER NOT NULL,
		min_height INTEGER NOT NULL,
		tiles INTEGER NOT NULL,
		obstacles INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_maps_seed ON maps(seed);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// RecordMap appends a map to the log and remembers its seed as the latest.
func (db *DB) RecordMap(rec MapRecord) (int64, error) {
	tx, err := db.conn.Beginx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.NamedExec(`INSERT INTO maps
		(seed, shape, size, sea_level, max_height, min_height, tiles, obstacles, created_at)
		VALUES (:seed, :shape, :size, :sea_level, :max_height, :min_height, :tiles, :obstacles, :created_at)`,
		rec,
	)
	if err != nil {
		return 0, fmt.Errorf("insert map seed %d: %w", rec.Seed, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		"last_seed", strconv.FormatInt(rec.Seed, 10),
	); err != nil {
		return 0, fmt.Errorf("save meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	slog.Info("map recorded", "id", id, "seed", rec.Seed, "tiles", rec.Tiles)
	return id, nil
}

// RecentMaps returns the most recent maps, newest first.
func (db *DB) RecentMaps(limit int) ([]MapRecord, error) {
	var recs []MapRecord
	err := db.conn.Select(&recs,
		"SELECT * FROM maps ORDER BY id DESC LIMIT ?",
		limit,
	)
	return recs, err
}

// MapBySeed returns the newest map generated with seed.
func (db *DB) MapBySeed(seed int64) (MapRecord, error) {
	var rec MapRecord
	err := db.conn.Get(&rec, "SELECT * FROM maps WHERE seed = ? ORDER BY id DESC LIMIT 1", seed)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, fmt.Errorf("seed %d: %w", seed, ErrNotFound)
	}
	return rec, err
}

// LastSeed returns the seed of the most recently recorded map.
func (db *DB) LastSeed() (int64, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", "last_seed")
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(value, 10, 64)
}
