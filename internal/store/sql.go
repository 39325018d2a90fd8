package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Tleuberdina/bot-project/internal/domain"
)

// dialect captures the few places where SQLite and PostgreSQL differ.
type dialect struct {
	name        string
	numbered    bool   // $1, $2 instead of ?
	byteCollate string // collation giving case-sensitive byte order
}

var (
	sqliteDialect   = dialect{name: "sqlite"}
	postgresDialect = dialect{name: "postgres", numbered: true, byteCollate: ` COLLATE "C"`}
)

// rebind rewrites ? placeholders for dialects that number them.
func (d dialect) rebind(q string) string {
	if !d.numbered {
		return q
	}
	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SQLRepo implements Repo on top of database/sql.
type SQLRepo struct {
	db  *sql.DB
	d   dialect
	now func() time.Time
}

func newSQLRepo(db *sql.DB, d dialect) *SQLRepo {
	return &SQLRepo{db: db, d: d, now: time.Now}
}

// Close releases the underlying database resources.
func (r *SQLRepo) Close() error {
	return r.db.Close()
}

// UpsertUser registers a user or, if the Telegram ID is already known,
// overwrites name and username. The original registration time is kept.
func (r *SQLRepo) UpsertUser(ctx context.Context, u *domain.User) error {
	if u == nil {
		return errors.New("nil user")
	}
	registered := unixOrNow(u.RegisteredAt, r.now())

	_, err := r.db.ExecContext(ctx, r.d.rebind(`
		INSERT INTO users (telegram_id, name, username, registered_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (telegram_id) DO UPDATE SET
			name     = excluded.name,
			username = excluded.username`),
		u.TelegramID, u.Name, toNullString(u.Username), registered,
	)
	if err != nil {
		return fmt.Errorf("upsert user %d: %w", u.TelegramID, err)
	}
	return nil
}

// GetUser returns a user by Telegram ID or ErrNotFound.
func (r *SQLRepo) GetUser(ctx context.Context, telegramID int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, r.d.rebind(`
		SELECT telegram_id, name, username, registered_at
		FROM users
		WHERE telegram_id = ?`),
		telegramID,
	)

	var (
		u          domain.User
		username   sql.NullString
		registered int64
	)
	if err := row.Scan(&u.TelegramID, &u.Name, &username, &registered); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", telegramID, ErrNotFound)
		}
		return nil, fmt.Errorf("get user %d: %w", telegramID, err)
	}
	u.Username = username.String
	u.RegisteredAt = fromUnix(registered)
	return &u, nil
}

const insertProcess = `
	INSERT INTO processes (name, responsible, frequency, deadline_time, reminder1, reminder2, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	RETURNING id`

// AddProcess appends a process and fills in its ID and CreatedAt.
// Field values are stored as given.
func (r *SQLRepo) AddProcess(ctx context.Context, p *domain.Process) error {
	if p == nil {
		return errors.New("nil process")
	}
	return r.addProcess(ctx, r.db, p)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *SQLRepo) addProcess(ctx context.Context, q queryRower, p *domain.Process) error {
	created := unixOrNow(p.CreatedAt, r.now())
	err := q.QueryRowContext(ctx, r.d.rebind(insertProcess),
		p.Name, p.Responsible, p.Frequency, p.DeadlineTime, p.Reminder1, p.Reminder2, created,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("add process %q: %w", p.Name, err)
	}
	p.CreatedAt = fromUnix(created)
	return nil
}

const selectProcesses = `
	SELECT id, name, responsible, frequency, deadline_time, reminder1, reminder2, created_at
	FROM processes`

// ListProcesses returns every process ordered by responsible, then deadline.
func (r *SQLRepo) ListProcesses(ctx context.Context) ([]domain.Process, error) {
	q := selectProcesses + `
	ORDER BY responsible` + r.d.byteCollate + `, deadline_time` + r.d.byteCollate + `, id`
	return r.queryProcesses(ctx, q)
}

// ListProcessesByResponsible returns the processes whose responsible equals
// the given name exactly, ordered by deadline.
func (r *SQLRepo) ListProcessesByResponsible(ctx context.Context, responsible string) ([]domain.Process, error) {
	q := selectProcesses + `
	WHERE responsible = ?
	ORDER BY deadline_time` + r.d.byteCollate + `, id`
	return r.queryProcesses(ctx, r.d.rebind(q), responsible)
}

func (r *SQLRepo) queryProcesses(ctx context.Context, q string, args ...any) ([]domain.Process, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query processes: %w", err)
	}
	defer rows.Close()

	var res []domain.Process
	for rows.Next() {
		var (
			p       domain.Process
			created int64
		)
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Responsible, &p.Frequency,
			&p.DeadlineTime, &p.Reminder1, &p.Reminder2, &created,
		); err != nil {
			return nil, fmt.Errorf("scan process: %w", err)
		}
		p.CreatedAt = fromUnix(created)
		res = append(res, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate processes: %w", err)
	}
	return res, nil
}

// ReplaceProcesses deletes all processes and inserts ps in a single transaction.
// IDs and CreatedAt of ps are filled in.
func (r *SQLRepo) ReplaceProcesses(ctx context.Context, ps []domain.Process) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM processes`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear processes: %w", err)
	}
	for i := range ps {
		if err := r.addProcess(ctx, tx, &ps[i]); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
