// Package store is the append-only PostgreSQL log of analysis results and
// decisions. Insert-only: rows are never updated or deleted.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/NinjaPuppetDev/trader-executor-sub000/models"
)

// DB represents a database connection
type DB struct {
	*sql.DB
}

// ConnectionParams holds PostgreSQL connection parameters
type ConnectionParams struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// New creates a new database connection and ensures the schema exists.
func New(params ConnectionParams) (*DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		params.Host, params.Port, params.User, params.Password, params.DBName, params.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := createTables(db); err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// createTables creates the necessary tables if they don't exist
func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS analysis_results (
			id BIGSERIAL PRIMARY KEY,
			symbol TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			current_price DOUBLE PRECISION NOT NULL,
			predicted_price DOUBLE PRECISION NOT NULL,
			regime TEXT NOT NULL,
			trend TEXT NOT NULL,
			payload JSONB NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS decisions (
			id BIGSERIAL PRIMARY KEY,
			symbol TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			decision TEXT NOT NULL,
			outcome TEXT NOT NULL,
			failure TEXT,
			payload JSONB NOT NULL
		)
	`)
	return err
}

// SaveAnalysis appends one analysis result.
func (db *DB) SaveAnalysis(ctx context.Context, result *models.BayesianRegressionResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling analysis result: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO analysis_results (symbol, created_at, current_price, predicted_price, regime, trend, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, result.Symbol, time.Now().UTC(), result.CurrentPrice, result.PredictedPrice,
		string(result.Regime), string(result.TrendDirection), payload)
	if err != nil {
		return fmt.Errorf("inserting analysis result: %w", err)
	}
	return nil
}

// SaveDecision appends one decision with its validation outcome. failure is
// empty for decisions that passed validation.
func (db *DB) SaveDecision(ctx context.Context, symbol string, d models.TradingDecision, outcome, failure string) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshaling decision: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO decisions (symbol, created_at, decision, outcome, failure, payload)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
	`, symbol, time.Now().UTC(), string(d.Decision), outcome, failure, payload)
	if err != nil {
		return fmt.Errorf("inserting decision: %w", err)
	}
	return nil
}
