package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taskwall/taskwall/internal/domain"
	"github.com/taskwall/taskwall/internal/platform/logger"
	"github.com/taskwall/taskwall/internal/store"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. If logger is nil, a default logger will be used.
func NewPostgresUserStore(db *sql.DB, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore.
var _ store.UserStore = (*PostgresUserStore)(nil)

// Create implements store.UserStore.Create.
// Returns store.ErrEmailExists if the email address is already registered.
func (s *PostgresUserStore) Create(ctx context.Context, in store.CreateUser) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	probe := domain.User{Name: in.Name, Email: in.Email, AvatarURL: in.AvatarURL}
	if err := probe.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()))
		return nil, err
	}

	query := `
		INSERT INTO users (name, email, avatar_url)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, avatar_url, created_at
	`
	var created domain.User
	err := s.db.QueryRowContext(ctx, query, in.Name, in.Email, in.AvatarURL).
		Scan(&created.ID, &created.Name, &created.Email, &created.AvatarURL, &created.CreatedAt)
	if err != nil {
		err = MapError(err)
		if errors.Is(err, store.ErrEmailExists) {
			log.Warn("user creation with duplicate email",
				slog.String("email", in.Email))
		} else {
			log.Error("failed to create user",
				slog.String("error", err.Error()),
				slog.String("email", in.Email))
		}
		return nil, err
	}

	log.Info("user created", slog.Int64("user_id", created.ID))
	return &created, nil
}

// List implements store.UserStore.List, returning users newest first.
func (s *PostgresUserStore) List(ctx context.Context) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, email, avatar_url, created_at
		FROM users
		ORDER BY id DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query users", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	users := []*domain.User{}
	for rows.Next() {
		var u domain.User
		err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.AvatarURL, &u.CreatedAt)
		if err != nil {
			log.Error("failed to scan user row", slog.String("error", err.Error()))
			return nil, err
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}
	return users, nil
}

// GetByID implements store.UserStore.GetByID.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, email, avatar_url, created_at
		FROM users
		WHERE id = $1
	`
	var u domain.User
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.AvatarURL, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.Int64("user_id", id))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// Update implements store.UserStore.Update. Unset fields keep their stored
// values. Returns store.ErrEmailExists if the new email address belongs to
// another user.
func (s *PostgresUserStore) Update(ctx context.Context, id int64, in store.UpdateUser) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if in.Name == nil && in.Email == nil && in.AvatarURL == nil {
		return s.GetByID(ctx, id)
	}
	probe := domain.User{Name: "probe", Email: "probe@example.com"}
	if in.Name != nil {
		probe.Name = *in.Name
	}
	if in.Email != nil {
		probe.Email = *in.Email
	}
	if in.AvatarURL != nil {
		probe.AvatarURL = *in.AvatarURL
	}
	if err := probe.Validate(); err != nil {
		log.Warn("user validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return nil, err
	}

	query := `
		UPDATE users
		SET name = COALESCE($1, name),
		    email = COALESCE($2, email),
		    avatar_url = COALESCE($3, avatar_url)
		WHERE id = $4
		RETURNING id, name, email, avatar_url, created_at
	`
	var updated domain.User
	err := s.db.QueryRowContext(ctx, query, in.Name, in.Email, in.AvatarURL, id).
		Scan(&updated.ID, &updated.Name, &updated.Email, &updated.AvatarURL, &updated.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found for update", slog.Int64("user_id", id))
			return nil, store.ErrUserNotFound
		}
		err = MapError(err)
		if errors.Is(err, store.ErrEmailExists) {
			log.Warn("user update with duplicate email", slog.Int64("user_id", id))
		} else {
			log.Error("failed to update user",
				slog.String("error", err.Error()),
				slog.Int64("user_id", id))
		}
		return nil, err
	}

	log.Info("user updated", slog.Int64("user_id", updated.ID))
	return &updated, nil
}

// Delete implements store.UserStore.Delete.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		err = MapError(err)
		log.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return err
	}
	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		if store.IsNotFound(err) {
			log.Debug("user not found for delete", slog.Int64("user_id", id))
		}
		return err
	}

	log.Info("user deleted", slog.Int64("user_id", id))
	return nil
}
