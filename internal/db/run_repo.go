package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/AbdouB/psyki/internal/models"
)

// RunRepository handles run history operations
type RunRepository struct {
	db *DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create stores a new run
func (r *RunRepository) Create(run *models.Run) error {
	if err := run.Encode(); err != nil {
		return fmt.Errorf("failed to encode run: %w", err)
	}

	query := `
		INSERT INTO runs (id, kind, created_timestamp, params, summary)
		VALUES (:id, :kind, :created_timestamp, :params, :summary)
	`
	_, err := r.db.NamedExec(query, run)
	return err
}

// Get retrieves a run by ID, returning nil if it does not exist
func (r *RunRepository) Get(id string) (*models.Run, error) {
	var run models.Run
	query := `SELECT id, kind, created_timestamp, params, summary FROM runs WHERE id = ?`
	err := r.db.Get(&run, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := run.Decode(); err != nil {
		return nil, err
	}
	return &run, nil
}

// List lists runs newest first, optionally filtered by kind
func (r *RunRepository) List(kind models.RunKind, limit int) ([]*models.Run, error) {
	var runs []*models.Run
	var query string
	var args []interface{}

	if kind != "" {
		query = `SELECT id, kind, created_timestamp, params, summary FROM runs WHERE kind = ? ORDER BY created_timestamp DESC LIMIT ?`
		args = []interface{}{kind, limit}
	} else {
		query = `SELECT id, kind, created_timestamp, params, summary FROM runs ORDER BY created_timestamp DESC LIMIT ?`
		args = []interface{}{limit}
	}

	if err := r.db.Select(&runs, query, args...); err != nil {
		return nil, err
	}
	for _, run := range runs {
		if err := run.Decode(); err != nil {
			return nil, err
		}
	}
	return runs, nil
}
