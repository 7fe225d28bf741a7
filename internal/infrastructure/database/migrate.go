package database

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/tsekovTriesCoding/activity-log-service/internal/infrastructure/database/migrations"
)

// Migrator はPostgreSQLのスキーママイグレーションを実行します
type Migrator struct {
	client *PostgresClient
}

// NewMigrator は新しいMigratorを作成します
func NewMigrator(client *PostgresClient) (*Migrator, error) {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("pgx"); err != nil {
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return &Migrator{client: client}, nil
}

// Up は未適用のマイグレーションをすべて適用します
func (m *Migrator) Up(ctx context.Context) error {
	db := m.client.SQLDB()
	defer db.Close()

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Down は直近のマイグレーションを1つ取り消します
func (m *Migrator) Down(ctx context.Context) error {
	db := m.client.SQLDB()
	defer db.Close()

	if err := goose.DownContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	return nil
}

// Status はマイグレーションの適用状況をログに出力します
func (m *Migrator) Status(ctx context.Context) error {
	db := m.client.SQLDB()
	defer db.Close()

	if err := goose.StatusContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}
	return nil
}
