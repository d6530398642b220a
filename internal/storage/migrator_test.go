package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

func TestEmbeddedMigrations(t *testing.T) {
	if err := prepareGoose(); err != nil {
		t.Fatalf("prepareGoose: %v", err)
	}

	migrations, err := goose.CollectMigrations(migrationsDir, 0, goose.MaxVersion)
	if err != nil {
		t.Fatalf("CollectMigrations: %v", err)
	}
	if len(migrations) == 0 {
		t.Fatal("no migrations embedded")
	}
	if migrations[0].Version != 1 {
		t.Errorf("first migration version = %d, want 1", migrations[0].Version)
	}
}

func TestRunMigrations_DatabaseError(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	// no expectations: the first statement goose issues fails
	err = RunMigrations(context.Background(), db, zap.NewNop())
	if err == nil {
		t.Fatal("expected error from unavailable database")
	}
	if !strings.Contains(err.Error(), "storage.RunMigrations") {
		t.Errorf("err = %v, want operation prefix", err)
	}
}
