package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"anggotaku_backend/internals/configs"
)

func TestParseURL(t *testing.T) {
	cases := []struct {
		in, dialect, dsn string
	}{
		{"sqlite:///./app.db", DialectSQLite, "./app.db"},
		{"sqlite://app.db", DialectSQLite, "app.db"},
		{"file:x?mode=memory", DialectSQLite, "file:x?mode=memory"},
		{"postgres://u:p@db:5432/anggota", DialectPostgres, "postgres://u:p@db:5432/anggota"},
		{"host=db user=u dbname=anggota", DialectPostgres, "host=db user=u dbname=anggota"},
	}
	for _, tc := range cases {
		d, dsn := ParseURL(tc.in)
		require.Equal(t, tc.dialect, d, tc.in)
		require.Equal(t, tc.dsn, dsn, tc.in)
	}
}

func TestSQLiteDSN(t *testing.T) {
	require.Equal(t, "./app.db?_foreign_keys=on", SQLiteDSN("./app.db"))
	require.Equal(t, "file:x?mode=memory&_foreign_keys=on", SQLiteDSN("file:x?mode=memory"))
	require.Equal(t, "a.db?_fk=1", SQLiteDSN("a.db?_fk=1"))
}

func TestOpenMigrateStatus(t *testing.T) {
	cfg := &configs.Config{
		DatabaseURL: "file:dbpkg_test?mode=memory&cache=shared",
	}
	db, err := Open(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, TunePool(db, cfg))
	t.Cleanup(func() { _ = Close(db) })

	ctx := context.Background()
	require.NoError(t, Ping(ctx, db))

	n, err := Migrate(ctx, db)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	// idempotent
	n, err = Migrate(ctx, db)
	require.NoError(t, err)
	require.Zero(t, n)

	st, err := MigrationStatus(ctx, db)
	require.NoError(t, err)
	require.Len(t, st, 1)
	require.True(t, st[0].Applied)
	require.EqualValues(t, 1, st[0].Version)

	for _, table := range []string{"events", "members", "attendance_links", "pins", "point_ledgers"} {
		require.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestOpenRejectsEmptyURL(t *testing.T) {
	_, err := Open(&configs.Config{DatabaseURL: "  "}, nil)
	require.Error(t, err)
}
