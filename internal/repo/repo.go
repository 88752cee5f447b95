package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"Abutment/internal/formula"

	"github.com/google/uuid"
)

type UserRepository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetBylogin(ctx context.Context, login string) (int, string, error)
}

type EvaluationRepository interface {
	SaveEvaluation(ctx context.Context, userID int, res formula.Result) (Evaluation, error)
	ListEvaluations(ctx context.Context, userID, limit int) ([]Evaluation, error)
}

type Repository interface {
	UserRepository
	EvaluationRepository
}

// Evaluation is a saved evaluation result.
type Evaluation struct {
	ID        string         `json:"id"`
	UserID    int            `json:"-"`
	FormulaID string         `json:"formula_id"`
	Params    formula.Params `json:"params"`
	Value     float64        `json:"value"`
	Trace     string         `json:"trace"`
	CreatedAt time.Time      `json:"created_at"`
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresDB(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	login TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL,
	password TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS evaluations (
	id UUID PRIMARY KEY,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	formula_id TEXT NOT NULL,
	params JSONB NOT NULL,
	value DOUBLE PRECISION NOT NULL,
	trace TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS evaluations_user_created ON evaluations (user_id, created_at DESC);
`

func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

func (r *PostgresRepository) GetBylogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresRepository) SaveEvaluation(ctx context.Context, userID int, res formula.Result) (Evaluation, error) {
	params, err := json.Marshal(res.Params)
	if err != nil {
		return Evaluation{}, fmt.Errorf("encode params: %w", err)
	}
	ev := Evaluation{
		ID:        uuid.New().String(),
		UserID:    userID,
		FormulaID: res.ID,
		Params:    res.Params,
		Value:     res.Value,
		Trace:     res.Trace,
		CreatedAt: time.Now().UTC(),
	}
	query := `INSERT INTO evaluations (id, user_id, formula_id, params, value, trace, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.db.ExecContext(ctx, query, ev.ID, userID, ev.FormulaID, params, ev.Value, ev.Trace, ev.CreatedAt)
	if err != nil {
		return Evaluation{}, err
	}
	return ev, nil
}

func (r *PostgresRepository) ListEvaluations(ctx context.Context, userID, limit int) ([]Evaluation, error) {
	query := `SELECT id, formula_id, params, value, trace, created_at FROM evaluations
		WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Evaluation
	for rows.Next() {
		ev := Evaluation{UserID: userID}
		var params []byte
		if err := rows.Scan(&ev.ID, &ev.FormulaID, &params, &ev.Value, &ev.Trace, &ev.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(params, &ev.Params); err != nil {
			return nil, fmt.Errorf("decode params of %s: %w", ev.ID, err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
