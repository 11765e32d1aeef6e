package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/RakadSK/trabajoprogwebII/internal/domain"
	"github.com/RakadSK/trabajoprogwebII/internal/platform/logger"
	"github.com/RakadSK/trabajoprogwebII/internal/store"
)

// tasksSlugConstraint is the unique constraint backing tasks.slug.
const tasksSlugConstraint = "tasks_slug_key"

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
// Returns store.ErrSlugExists if the slug unique constraint rejects the
// insert, and store.ErrInvalidEntity if the owning user does not exist.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (id, user_id, title, description, due_date, priority, completed, slug, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.UserID,
		task.Title,
		nullString(task.Description),
		nullTime(task.DueDate),
		task.Priority,
		task.Completed,
		task.Slug,
		task.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err, tasksSlugConstraint) {
			log.Debug("slug collision during task creation",
				slog.String("task_id", task.ID.String()),
				slog.String("slug", task.Slug))
			return store.ErrSlugExists
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("user_id", task.UserID.String()))
		return MapError(err)
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()),
		slog.String("slug", task.Slug))
	return nil
}

// GetBySlug implements store.TaskStore.GetBySlug
// Returns store.ErrTaskNotFound if no task has the slug.
func (s *PostgresTaskStore) GetBySlug(ctx context.Context, slug string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, title, description, due_date, priority, completed, slug, created_at
		FROM tasks
		WHERE slug = $1
	`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("slug", slug))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by slug",
			slog.String("error", err.Error()),
			slog.String("slug", slug))
		return nil, MapError(err)
	}

	return task, nil
}

// List implements store.TaskStore.List
func (s *PostgresTaskStore) List(ctx context.Context) ([]store.TaskListing, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT t.id, t.user_id, t.title, t.description, t.due_date, t.priority, t.completed, t.slug, t.created_at,
		       u.name
		FROM tasks t
		JOIN users u ON u.id = t.user_id
		ORDER BY t.created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Error("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	var listings []store.TaskListing
	for rows.Next() {
		var (
			listing     store.TaskListing
			description sql.NullString
			dueDate     sql.NullTime
		)
		err := rows.Scan(
			&listing.Task.ID,
			&listing.Task.UserID,
			&listing.Task.Title,
			&description,
			&dueDate,
			&listing.Task.Priority,
			&listing.Task.Completed,
			&listing.Task.Slug,
			&listing.Task.CreatedAt,
			&listing.OwnerName,
		)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		listing.Task.Description = description.String
		if dueDate.Valid {
			t := dueDate.Time
			listing.Task.DueDate = &t
		}
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		log.Error("task row iteration failed", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return listings, nil
}

// ListSlugsWithPrefix implements store.TaskStore.ListSlugsWithPrefix
func (s *PostgresTaskStore) ListSlugsWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// LIKE needs its wildcard characters escaped so a prefix such as
	// "100_percent" does not match unrelated slugs.
	escaped := likeEscape(prefix)

	query := `
		SELECT slug
		FROM tasks
		WHERE slug LIKE $1 ESCAPE '\'
	`

	rows, err := s.db.QueryContext(ctx, query, escaped+"%")
	if err != nil {
		log.Error("failed to list slugs",
			slog.String("error", err.Error()),
			slog.String("prefix", prefix))
		return nil, MapError(err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Error("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			log.Error("failed to scan slug row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		slugs = append(slugs, slug)
	}

	if err := rows.Err(); err != nil {
		log.Error("slug row iteration failed", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return slugs, nil
}

// rowScanner abstracts *sql.Row for scanTask.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask reads one task row, converting nullable columns.
func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task        domain.Task
		description sql.NullString
		dueDate     sql.NullTime
	)
	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&description,
		&dueDate,
		&task.Priority,
		&task.Completed,
		&task.Slug,
		&task.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Description = description.String
	if dueDate.Valid {
		t := dueDate.Time
		task.DueDate = &t
	}
	return &task, nil
}

// nullString converts an empty string to SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullTime converts a nil time pointer to SQL NULL.
func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// likeEscape escapes LIKE wildcards in s using backslash.
func likeEscape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
