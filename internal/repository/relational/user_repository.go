package relational

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/codacy-badger/mayday-ticketing-db-api/internal/domain"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/database"
	apperrors "github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/errors"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/repository"
	"github.com/codacy-badger/mayday-ticketing-db-api/internal/schema"
)

// UserRepository handles user data operations
type UserRepository struct {
	base
}

// NewUserRepository creates a user repository bound to db and md
func NewUserRepository(ctx context.Context, db *database.StorageDB, md *schema.Metadata, role repository.Role) (*UserRepository, error) {
	b, err := newBase(ctx, db, md, schema.UsersTable(), role)
	if err != nil {
		return nil, err
	}
	return &UserRepository{base: b}, nil
}

// Create creates a new user, storing a bcrypt hash of the password.
// A duplicate email is a Conflict whether the lookup or the insert catches it.
func (r *UserRepository) Create(ctx context.Context, input *domain.UserInput) (*domain.User, error) {
	if err := r.requireWriter(); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := r.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.Conflict("user with this email already exists")
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	ts := now()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         input.Name,
		PasswordHash: string(hash),
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}

	if err := r.insert(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *UserRepository) insert(ctx context.Context, user *domain.User) (err error) {
	defer r.observe("insert", time.Now(), &err)

	query := `
		INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
		VALUES (:id, :email, :name, :password_hash, :created_at, :updated_at)
	`
	if _, err := r.db.DB.NamedExecContext(ctx, query, user); err != nil {
		if database.IsUniqueViolation(err) {
			return apperrors.Conflict("user with this email already exists")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getBy(ctx, "id", id)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, "email", strings.ToLower(strings.TrimSpace(email)))
}

func (r *UserRepository) getBy(ctx context.Context, column string, value any) (_ *domain.User, err error) {
	defer r.observe("select", time.Now(), &err)

	query := r.db.Rebind(`SELECT ` + r.columns() + ` FROM users WHERE ` + column + ` = ?`)

	var user domain.User
	if err := r.db.DB.GetContext(ctx, &user, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// Authenticate returns the user when password matches the stored hash
func (r *UserRepository) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := r.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Unauthorized("invalid email or password")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}
	return user, nil
}

// Delete deletes a user
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) (err error) {
	if err := r.requireWriter(); err != nil {
		return err
	}
	defer r.observe("delete", time.Now(), &err)

	result, err := r.db.DB.ExecContext(ctx, r.db.Rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("user")
	}

	return nil
}
