package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostgresRebind(t *testing.T) {
	d := postgresDialect{}

	tests := []struct {
		in   string
		want string
	}{
		{"SELECT 1", "SELECT 1"},
		{"SELECT * FROM events WHERE id = ?", "SELECT * FROM events WHERE id = $1"},
		{
			"INSERT INTO guests (side, name) VALUES (?, ?)",
			"INSERT INTO guests (side, name) VALUES ($1, $2)",
		},
		{
			"UPDATE rooms SET room_no = ?, status = ? WHERE id = ?",
			"UPDATE rooms SET room_no = $1, status = $2 WHERE id = $3",
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, d.Rebind(tt.in))
	}
}

func TestSQLiteRebindIsIdentity(t *testing.T) {
	d := sqliteDialect{}
	q := "SELECT * FROM events WHERE id = ? AND status = ?"
	assert.Equal(t, q, d.Rebind(q))
}

func TestDialectDDLFragments(t *testing.T) {
	assert.Equal(t, "id INTEGER PRIMARY KEY AUTOINCREMENT", sqliteDialect{}.AutoIncrementPK())
	assert.Equal(t, "id SERIAL PRIMARY KEY", postgresDialect{}.AutoIncrementPK())
	assert.Equal(t, "sqlite3", sqliteDialect{}.Driver())
	assert.Equal(t, "postgres", postgresDialect{}.Driver())
}
