package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

const defaultTimeout = 30 * time.Second

// Inspector reads table metadata and contents from a MySQL schema.
type Inspector struct {
	db      *sql.DB
	schema  string
	timeout time.Duration
}

func NewInspector(dsn string, schema string) (*Inspector, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql ping failed: %w", err)
	}

	return NewInspectorFromDB(db, schema), nil
}

// NewInspectorFromDB wraps an already opened handle.
func NewInspectorFromDB(db *sql.DB, schema string) *Inspector {
	return &Inspector{
		db:      db,
		schema:  schema,
		timeout: defaultTimeout,
	}
}

func (i *Inspector) Close() error {
	return i.db.Close()
}

// FetchSchema returns the table's columns in ordinal order.
func (i *Inspector) FetchSchema(ctx context.Context, tableName string) ([]ColumnInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	rows, err := i.db.QueryContext(ctx, `
		SELECT COLUMN_NAME, DATA_TYPE, IS_NULLABLE
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION
	`, i.schema, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []ColumnInfo
	for rows.Next() {
		var name, dataType, nullable string
		if err := rows.Scan(&name, &dataType, &nullable); err != nil {
			return nil, err
		}
		cols = append(cols, ColumnInfo{
			Name:     name,
			Type:     dataType,
			Nullable: nullable == "YES",
		})
	}
	return cols, rows.Err()
}

func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
