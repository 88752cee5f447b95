package repo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"Abutment/internal/formula"

	"github.com/google/uuid"
)

// MemoryRepository keeps users and evaluations in process memory. It backs the
// server when no database is configured and is used by handler tests.
type MemoryRepository struct {
	mu          sync.RWMutex
	users       map[string]memoryUser
	nextID      int
	evaluations map[int][]Evaluation
}

type memoryUser struct {
	id       int
	email    string
	password string
}

func NewMemory() *MemoryRepository {
	return &MemoryRepository{
		users:       make(map[string]memoryUser),
		evaluations: make(map[int][]Evaluation),
	}
}

func (m *MemoryRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[login]; exists {
		return 0, fmt.Errorf("user %q already exists", login)
	}
	m.nextID++
	m.users[login] = memoryUser{id: m.nextID, email: email, password: password}
	return m.nextID, nil
}

func (m *MemoryRepository) GetBylogin(ctx context.Context, login string) (int, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[login]
	if !ok {
		return 0, "", nil
	}
	return u.id, u.password, nil
}

func (m *MemoryRepository) SaveEvaluation(ctx context.Context, userID int, res formula.Result) (Evaluation, error) {
	ev := Evaluation{
		ID:        uuid.New().String(),
		UserID:    userID,
		FormulaID: res.ID,
		Params:    res.Params,
		Value:     res.Value,
		Trace:     res.Trace,
		CreatedAt: time.Now().UTC(),
	}
	m.mu.Lock()
	m.evaluations[userID] = append(m.evaluations[userID], ev)
	m.mu.Unlock()
	return ev, nil
}

func (m *MemoryRepository) ListEvaluations(ctx context.Context, userID, limit int) ([]Evaluation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := m.evaluations[userID]
	out := make([]Evaluation, 0, min(limit, len(all)))
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}
