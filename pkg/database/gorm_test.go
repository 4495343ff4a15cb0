package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDSN(t *testing.T) {
	tests := []struct {
		in      string
		driver  Driver
		conn    string
		wantErr bool
	}{
		{in: "sqlite:///pdf_summaries.db", driver: DriverSQLite, conn: "pdf_summaries.db?_foreign_keys=on&_busy_timeout=5000"},
		{in: "sqlite:////var/data/app.db", driver: DriverSQLite, conn: "/var/data/app.db?_foreign_keys=on&_busy_timeout=5000"},
		{in: "local.db", driver: DriverSQLite, conn: "local.db?_foreign_keys=on&_busy_timeout=5000"},
		{in: "file:test.db?cache=shared", driver: DriverSQLite, conn: "file:test.db?cache=shared&_foreign_keys=on&_busy_timeout=5000"},
		{in: "postgres://u:p@localhost:5432/db", driver: DriverPostgres, conn: "postgres://u:p@localhost:5432/db"},
		{in: "host=localhost user=u dbname=db sslmode=disable", driver: DriverPostgres, conn: "host=localhost user=u dbname=db sslmode=disable"},
		{in: "", wantErr: true},
		{in: "sqlite://", wantErr: true},
		{in: "mysql://root@localhost/db", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			driver, conn, err := ParseDSN(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.driver, driver)
			assert.Equal(t, tt.conn, conn)
		})
	}
}

func TestNewGormDBFromDSNSqlite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := NewGormDBFromDSN(path, Options{})
	require.NoError(t, err)

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	require.NoError(t, sqlDB.Close())
}
