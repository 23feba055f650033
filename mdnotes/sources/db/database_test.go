package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"mdnotes/mdnotes/config"
	"mdnotes/mdnotes/sources/db/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitSchemaIsIdempotent(t *testing.T) {
	database, err := OpenSQLite(":memory:", time.Second)
	require.NoError(t, err)
	defer database.Close()

	ctx := context.Background()
	require.NoError(t, database.InitSchema(ctx))
	require.NoError(t, database.InitSchema(ctx))

	m := database.DB.Migrator()
	assert.True(t, m.HasTable(&models.Note{}))
	for _, col := range []string{"id", "title", "content", "created", "updated"} {
		assert.True(t, m.HasColumn(&models.Note{}, col), "missing column %s", col)
	}
}

func rawTimes(t *testing.T, database *Database, id string) rawTimestamps {
	t.Helper()
	var row rawTimestamps
	err := database.DB.Raw(`SELECT id, CAST(created AS TEXT) AS created, CAST(updated AS TEXT) AS updated FROM notes WHERE id = ?`, id).
		Scan(&row).Error
	require.NoError(t, err)
	return row
}

func TestIDOnlyInsertGetsCanonicalDefaults(t *testing.T) {
	database, err := OpenSQLite(":memory:", time.Second)
	require.NoError(t, err)
	defer database.Close()
	require.NoError(t, database.InitSchema(context.Background()))

	require.NoError(t, database.DB.Exec(`INSERT INTO notes (id) VALUES ('x')`).Error)

	row := rawTimes(t, database, "x")
	assert.True(t, models.IsCanonical(row.Created), "created %q", row.Created)
	assert.True(t, models.IsCanonical(row.Updated), "updated %q", row.Updated)

	var note models.Note
	require.NoError(t, database.DB.First(&note, "id = ?", "x").Error)
	assert.WithinDuration(t, time.Now(), note.Created.Time, time.Minute)
}

// the table layout and value formats an older writer of markdown_notes.db leaves behind
const legacyDDL = `CREATE TABLE IF NOT EXISTS notes (
	id TEXT PRIMARY KEY,
	title TEXT,
	content TEXT,
	created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

func TestInitSchemaNormalizesLegacyTimestamps(t *testing.T) {
	database, err := OpenSQLite(":memory:", time.Second)
	require.NoError(t, err)
	defer database.Close()
	database.LegacyLocation = time.FixedZone("CET", 60*60)

	require.NoError(t, database.DB.Exec(legacyDDL).Error)
	require.NoError(t, database.DB.Exec(`INSERT INTO notes (id, created, updated) VALUES
		('old', '2024-01-01 10:00:00', '2024-01-02 09:30:00.250000'),
		('skewed', '2024-01-05 12:00:00', '2024-01-05 11:00:00'),
		('new', '2024-02-01T00:00:00.000000000Z', '2024-02-01T00:00:00.000000000Z')`).Error)

	require.NoError(t, database.InitSchema(context.Background()))

	old := rawTimes(t, database, "old")
	assert.Equal(t, "2024-01-01T09:00:00.000000000Z", old.Created)
	assert.Equal(t, "2024-01-02T08:30:00.250000000Z", old.Updated)

	skewed := rawTimes(t, database, "skewed")
	assert.Equal(t, skewed.Created, skewed.Updated, "updated is clamped to created")

	fresh := rawTimes(t, database, "new")
	assert.Equal(t, "2024-02-01T00:00:00.000000000Z", fresh.Created)

	// second start leaves canonical rows alone
	require.NoError(t, database.InitSchema(context.Background()))
	assert.Equal(t, old, rawTimes(t, database, "old"))
}

func TestInitSchemaRejectsUnparseableLegacyRow(t *testing.T) {
	database, err := OpenSQLite(":memory:", time.Second)
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, database.DB.Exec(legacyDDL).Error)
	require.NoError(t, database.DB.Exec(`INSERT INTO notes (id, created, updated) VALUES ('bad', 'someday', 'someday')`).Error)
	assert.ErrorContains(t, database.InitSchema(context.Background()), "note bad")
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "notes.db?_busy_timeout=1500", sqliteDSN("notes.db", 1500*time.Millisecond))
	assert.Equal(t, "file:x.db?cache=shared&_busy_timeout=5000", sqliteDSN("file:x.db?cache=shared", 5*time.Second))
}

func TestConnectTimeoutSeconds(t *testing.T) {
	assert.Equal(t, 1, connectTimeoutSeconds(0))
	assert.Equal(t, 1, connectTimeoutSeconds(250*time.Millisecond))
	assert.Equal(t, 2, connectTimeoutSeconds(1500*time.Millisecond))
	assert.Equal(t, 5, connectTimeoutSeconds(5*time.Second))
}

func TestNewDatabaseSQLiteFile(t *testing.T) {
	cfg := config.Config{
		DBDriver:  "sqlite",
		DBPath:    filepath.Join(t.TempDir(), "notes.db"),
		DBTimeout: time.Second,
	}
	database, err := NewDatabase(context.Background(), cfg)
	require.NoError(t, err)
	database.Close()

	// reopening an existing file must not fail on the schema step
	database, err = NewDatabase(context.Background(), cfg)
	require.NoError(t, err)
	database.Close()
}

func TestNewDatabaseRejectsUnknownDriver(t *testing.T) {
	_, err := NewDatabase(context.Background(), config.Config{DBDriver: "oracle"})
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}
