package db

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"mdnotes/mdnotes/config"
	"mdnotes/mdnotes/sources/db/models"
	"mdnotes/mdnotes/utils/logging"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	DB *gorm.DB
	// LegacyLocation is the zone assumed for zone-less timestamps left by
	// older writers of the same database file.
	LegacyLocation *time.Location
}

// nowDefaults renders the current time in models.TimestampLayout, per dialect.
var nowDefaults = map[string]string{
	"sqlite":   `strftime('%Y-%m-%dT%H:%M:%f000000Z', 'now')`,
	"postgres": `to_char(now() AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS.US"000Z"')`,
}

const notesDDL = `CREATE TABLE IF NOT EXISTS notes (
	id TEXT PRIMARY KEY,
	title TEXT,
	content TEXT,
	created TEXT NOT NULL DEFAULT (%[1]s),
	updated TEXT NOT NULL DEFAULT (%[1]s)
)`

var notesIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_notes_created ON notes (created)`,
	`CREATE INDEX IF NOT EXISTS idx_notes_updated ON notes (updated)`,
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}
}

func NewDatabase(ctx context.Context, cfg config.Config) (*Database, error) {
	var (
		database *Database
		err      error
	)
	switch cfg.DBDriver {
	case "sqlite", "":
		database, err = OpenSQLite(cfg.DBPath, cfg.DBTimeout)
	case "postgres":
		database, err = openPostgres(cfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if err != nil {
		return nil, err
	}
	logging.AppLogger.Info("database connected", zap.String("driver", cfg.DBDriver))

	if err := database.InitSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

func sqliteDSN(path string, busyTimeout time.Duration) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_busy_timeout=%d", path, sep, busyTimeout.Milliseconds())
}

// connectTimeoutSeconds rounds up; pgx reads 0 as no timeout at all.
func connectTimeoutSeconds(d time.Duration) int {
	s := int(math.Ceil(d.Seconds()))
	if s < 1 {
		return 1
	}
	return s
}

// OpenSQLite opens a local database file (or ":memory:"). The pool is capped at
// one connection so the engine's single writer serializes every transaction.
func OpenSQLite(path string, busyTimeout time.Duration) (*Database, error) {
	gdb, err := gorm.Open(sqlite.Open(sqliteDSN(path, busyTimeout)), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return &Database{DB: gdb, LegacyLocation: time.Local}, nil
}

func openPostgres(cfg config.Config) (*Database, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable connect_timeout=%d",
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		connectTimeoutSeconds(cfg.DBTimeout),
	)
	gdb, err := gorm.Open(postgres.Open(connStr), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open postgres %s:%s: %w", cfg.DBHost, cfg.DBPort, err)
	}
	return &Database{DB: gdb, LegacyLocation: time.Local}, nil
}

// InitSchema creates the notes table and its indexes when missing, then
// rewrites any timestamps not yet in models.TimestampLayout. Safe on every start.
//
// The table is declared by hand rather than through AutoMigrate: the DEFAULTs
// are dialect expressions, and a table created by an older writer must be left
// as it is instead of being altered column by column.
func (db *Database) InitSchema(ctx context.Context) error {
	dialect := db.DB.Dialector.Name()
	now, ok := nowDefaults[dialect]
	if !ok {
		return fmt.Errorf("init schema: no timestamp default for dialect %q", dialect)
	}
	tx := db.DB.WithContext(ctx)
	if err := tx.Exec(fmt.Sprintf(notesDDL, now)).Error; err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	for _, stmt := range notesIndexes {
		if err := tx.Exec(stmt).Error; err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return db.normalizeTimestamps(ctx)
}

type rawTimestamps struct {
	ID      string
	Created string
	Updated string
}

// normalizeTimestamps converts zone-less legacy values, read in
// LegacyLocation, so lexical order matches time order again.
func (db *Database) normalizeTimestamps(ctx context.Context) error {
	loc := db.LegacyLocation
	if loc == nil {
		loc = time.Local
	}
	fixed := 0
	err := db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []rawTimestamps
		err := tx.Raw(`SELECT id, CAST(created AS TEXT) AS created, CAST(updated AS TEXT) AS updated FROM notes`).
			Scan(&rows).Error
		if err != nil {
			return err
		}
		for _, row := range rows {
			if models.IsCanonical(row.Created) && models.IsCanonical(row.Updated) {
				continue
			}
			created, err := models.ParseLegacyTimestamp(row.Created, loc)
			if err != nil {
				return fmt.Errorf("note %s created: %w", row.ID, err)
			}
			updated, err := models.ParseLegacyTimestamp(row.Updated, loc)
			if err != nil {
				return fmt.Errorf("note %s updated: %w", row.ID, err)
			}
			if updated.Before(created.Time) {
				updated = created
			}
			if err := tx.Exec(`UPDATE notes SET created = ?, updated = ? WHERE id = ?`, created, updated, row.ID).Error; err != nil {
				return err
			}
			fixed++
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("normalize timestamps: %w", err)
	}
	if fixed > 0 {
		logging.AppLogger.Info("legacy timestamps normalized", zap.Int("notes", fixed))
	}
	return nil
}

func (db *Database) Close() {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return
	}
	sqlDB.Close()
}
