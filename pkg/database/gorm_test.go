package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestNewInMemoryDB(t *testing.T) {
	db, err := NewInMemoryDB(t.Name())
	require.NoError(t, err)
	defer Close(db)

	assert.NoError(t, Ping(db))
	assert.NoError(t, db.Exec("CREATE TABLE probe (id INTEGER PRIMARY KEY)").Error)
}

func TestClosedDatabaseFailsPing(t *testing.T) {
	db, err := NewInMemoryDB(t.Name())
	require.NoError(t, err)
	require.NoError(t, Close(db))

	assert.Error(t, Ping(db))
}

func TestNewGormDBRejectsUnknownDriver(t *testing.T) {
	_, err := NewGormDB(GormConfig{Driver: "oracle", DSN: "x"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, parseLogLevel("SILENT"))
	assert.Equal(t, logger.Info, parseLogLevel("info"))
	assert.Equal(t, logger.Warn, parseLogLevel(""))
}
