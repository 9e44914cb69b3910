// SPDX-License-Identifier: GPL-3.0-only

// Package testutil holds helpers shared by package tests.
package testutil

import (
	"numdash-server/db"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// OpenDB returns a migrated sqlite database private to the test and installs
// it as db.Conn for the duration of the test.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.Open("sqlite", filepath.Join(t.TempDir(), "numdash.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))

	previous := db.Conn
	db.Conn = conn
	t.Cleanup(func() {
		db.Conn = previous
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return conn
}
