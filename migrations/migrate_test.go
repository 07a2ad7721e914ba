// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMigrate_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	_ = mock // goose talks to the db itself; no expectations means every query fails

	err = Migrate(db, "pgx")
	if err == nil {
		t.Fatal("expected error from Migrate, got nil")
	}

	if !strings.Contains(err.Error(), "migration error") {
		t.Errorf("expected wrapped migration error, got: %v", err)
	}
}

func TestMigrate_UnknownDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	err = Migrate(db, "oracle")
	if err == nil || !strings.Contains(err.Error(), "setting dialect") {
		t.Fatalf("expected dialect error, got: %v", err)
	}
}

func TestMigrate_NilDB(t *testing.T) {
	err := Migrate(nil, "sqlite3")
	if !errors.Is(err, ErrNilDB) {
		t.Fatalf("expected ErrNilDB, got: %v", err)
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	data, err := embedMigrations.ReadFile("00001_create_videos.sql")
	if err != nil {
		t.Fatalf("migration is not embedded: %v", err)
	}
	sql := string(data)
	for _, part := range []string{"-- +goose Up", "-- +goose Down", "CREATE TABLE IF NOT EXISTS videos"} {
		if !strings.Contains(sql, part) {
			t.Errorf("migration lacks %q", part)
		}
	}
}
