package source

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/lib/pq"              // PostgreSQL driver

	"github.com/dbsmedya/godrift/internal/config"
	"github.com/dbsmedya/godrift/internal/dataset"
)

// SQLLoader reads a dataset from the result of a SQL query.
type SQLLoader struct {
	cfg  *config.DatasetConfig
	name string
}

// NewSQL creates a SQLLoader for the given configuration.
func NewSQL(cfg *config.DatasetConfig, role string) *SQLLoader {
	return &SQLLoader{cfg: cfg, name: displayName(cfg, role)}
}

// Load connects, runs the configured query, and collects the full result
// set into a dataset. Columns follow the query's select order.
func (l *SQLLoader) Load(ctx context.Context) (*dataset.Dataset, error) {
	db, err := l.connectWithRetry(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return queryDataset(ctx, db, l.cfg.Query, l.name)
}

// queryDataset runs a query and collects its result set column by column.
func queryDataset(ctx context.Context, db *sql.DB, query, name string) (*dataset.Dataset, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read column names: %w", err)
	}
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to read column types: %w", err)
	}

	byColumn := make([][]interface{}, len(columns))
	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("load interrupted: %w", err)
		}

		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		for i, v := range values {
			byColumn[i] = append(byColumn[i], coerceSQLValue(v, colTypes[i]))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	ds := dataset.New(name)
	for i, colName := range columns {
		if err := ds.AddColumn(colName, byColumn[i]); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// connectWithRetry attempts to connect with exponential backoff.
func (l *SQLLoader) connectWithRetry(ctx context.Context) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 3
	backoff := time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = l.connect()
		if err == nil {
			if pingErr := db.PingContext(ctx); pingErr == nil {
				return db, nil
			} else {
				db.Close()
				err = pingErr
			}
		}

		if i < maxRetries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2 // Exponential backoff
			}
		}
	}

	return nil, fmt.Errorf("failed after %d retries: %w", maxRetries, err)
}

// connect opens a database connection for the configured driver.
func (l *SQLLoader) connect() (*sql.DB, error) {
	db, err := sql.Open(l.cfg.Driver, BuildDSN(l.cfg))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(2)
	db.SetConnMaxLifetime(10 * time.Minute)
	return db, nil
}

// BuildDSN constructs a driver DSN from configuration.
func BuildDSN(cfg *config.DatasetConfig) string {
	switch cfg.Driver {
	case "postgres":
		sslmode := "disable"
		if cfg.UseSSL {
			sslmode = "require"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, sslmode)
	default:
		// Format: user:password@tcp(host:port)/database?params
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)
		if cfg.UseSSL {
			dsn += "&tls=true"
		}
		return dsn
	}
}

// coerceSQLValue turns raw driver bytes into typed cells. Text-protocol
// results arrive as []byte even for numeric columns, so the declared
// database type decides how they parse.
func coerceSQLValue(v interface{}, ct *sql.ColumnType) interface{} {
	b, ok := v.([]byte)
	if !ok {
		return v
	}

	s := string(b)
	switch strings.ToUpper(ct.DatabaseTypeName()) {
	case "TINYINT", "SMALLINT", "MEDIUMINT", "INT", "INTEGER", "BIGINT", "INT2", "INT4", "INT8":
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
	case "DECIMAL", "NUMERIC", "FLOAT", "DOUBLE", "REAL", "FLOAT4", "FLOAT8":
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	case "BOOL", "BOOLEAN":
		if s == "1" || strings.EqualFold(s, "true") || s == "t" {
			return true
		}
		if s == "0" || strings.EqualFold(s, "false") || s == "f" {
			return false
		}
	}
	return s
}
