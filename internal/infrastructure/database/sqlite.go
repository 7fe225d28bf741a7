package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// SQLiteClient はbun経由でSQLiteへの接続を管理する
type SQLiteClient struct {
	db *bun.DB
}

// NewSQLiteClient は新しいSQLiteClientを作成する
func NewSQLiteClient(ctx context.Context, dsn string) (*SQLiteClient, error) {
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// SQLiteは書き込みが直列化されるため接続を1本に絞る
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}

	return &SQLiteClient{db: db}, nil
}

// DB はbun.DBを返す
func (c *SQLiteClient) DB() *bun.DB {
	return c.db
}

// Close は接続を閉じる
func (c *SQLiteClient) Close() error {
	return c.db.Close()
}

// Health はSQLiteのヘルスチェックを行う
func (c *SQLiteClient) Health(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// NewSQLiteClientFromDB は既存のbun.DBをラップしたSQLiteClientを作成する
// 接続の所有権は呼び出し側に残る
func NewSQLiteClientFromDB(db *bun.DB) *SQLiteClient {
	return &SQLiteClient{db: db}
}
