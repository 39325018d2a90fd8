package store

import (
	"context"
	"errors"

	"github.com/Tleuberdina/bot-project/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// Repo defines storage operations for users and business processes.
type Repo interface {
	UpsertUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, telegramID int64) (*domain.User, error)

	AddProcess(ctx context.Context, p *domain.Process) error
	ListProcesses(ctx context.Context) ([]domain.Process, error)
	ListProcessesByResponsible(ctx context.Context, responsible string) ([]domain.Process, error)
	ReplaceProcesses(ctx context.Context, ps []domain.Process) error

	Close() error
}
