package database

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildPostgresDSN(t *testing.T) {
	dsn, err := buildPostgresDSN(Config{
		User:     "hr",
		Password: "secret",
		Name:     "noticeboard",
		Host:     "db.internal",
		Port:     5433,
	})
	require.NoError(t, err)
	require.Equal(t, "host=db.internal port=5433 user=hr dbname=noticeboard password=secret sslmode=disable", dsn)
}

func TestBuildPostgresDSNDefaultsAndOverrides(t *testing.T) {
	dsn, err := buildPostgresDSN(Config{
		User:    "hr",
		Name:    "noticeboard",
		Options: map[string]string{"sslmode": "require"},
	})
	require.NoError(t, err)
	require.Contains(t, dsn, "host=localhost")
	require.Contains(t, dsn, "port=5432")
	require.Contains(t, dsn, "sslmode=require")

	_, err = buildPostgresDSN(Config{Name: "noticeboard"})
	require.Error(t, err)
}

func TestBuildPostgresDSNPrefersExplicitDSN(t *testing.T) {
	dsn, err := buildPostgresDSN(Config{DSN: "postgres://hr@db/noticeboard"})
	require.NoError(t, err)
	require.Equal(t, "postgres://hr@db/noticeboard", dsn)
}

func TestBuildMySQLDSN(t *testing.T) {
	dsn, err := buildMySQLDSN(Config{
		User:     "hr",
		Password: "secret",
		Name:     "noticeboard",
		Host:     "db.internal",
		Port:     3307,
	})
	require.NoError(t, err)
	require.Equal(t, "hr:secret@tcp(db.internal:3307)/noticeboard?charset=utf8mb4&loc=Local&parseTime=True", dsn)
}

func TestBuildMySQLDSNRequiresUserAndName(t *testing.T) {
	_, err := buildMySQLDSN(Config{User: "hr"})
	require.Error(t, err)
}
