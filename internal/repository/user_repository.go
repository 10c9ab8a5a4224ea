package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mindspark/internal/domain"
	"mindspark/internal/repository/models"
	"mindspark/internal/util"
)

const (
	userColumns = `ID, USERNAME, EMAIL, NAME, PASSWORD_HASH, CREATED_AT, UPDATED_AT`

	insertUserQuery     = `INSERT INTO USERS (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	updateUserQuery     = `UPDATE USERS SET EMAIL = ?, NAME = ?, PASSWORD_HASH = ?, UPDATED_AT = ? WHERE ID = ?`
	getUserByIDQuery    = `SELECT ` + userColumns + ` FROM USERS WHERE ID = ?`
	getUserByNameQuery  = `SELECT ` + userColumns + ` FROM USERS WHERE USERNAME = ?`
	getUserByEmailQuery = `SELECT ` + userColumns + ` FROM USERS WHERE LOWER(EMAIL) = LOWER(?)`
	countUsersQuery     = `SELECT COUNT(*) FROM USERS`
)

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db DBTX
}

func NewSQLXUserRepository(db DBTX) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	exec := GetExecutor(ctx, r.db)

	m := fromDomainUser(user)
	if _, err := exec.ExecContext(ctx, exec.Rebind(insertUserQuery),
		m.ID, m.Username, m.Email, m.Name, m.PasswordHash, m.CreatedAt, m.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *sqlxUserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, getUserByIDQuery, id)
}

func (r *sqlxUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, getUserByNameQuery, username)
}

// GetUserByEmail matches case-insensitively.
func (r *sqlxUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, getUserByEmailQuery, email)
}

func (r *sqlxUserRepository) getOne(ctx context.Context, query string, arg string) (*domain.User, error) {
	exec := GetExecutor(ctx, r.db)

	var m models.User
	if err := exec.GetContext(ctx, &m, exec.Rebind(query), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toDomainUser(&m), nil
}

func (r *sqlxUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	exec := GetExecutor(ctx, r.db)

	m := fromDomainUser(user)
	res, err := exec.ExecContext(ctx, exec.Rebind(updateUserQuery), m.Email, m.Name, m.PasswordHash, m.UpdatedAt, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if ok, err := expectOneRow(res); err == nil && !ok {
		return domain.NewUserNotFoundError(user.ID)
	}
	return nil
}

func (r *sqlxUserRepository) CountUsers(ctx context.Context) (int, error) {
	var total int
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &total, countUsersQuery); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return total, nil
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		Name:         m.Name.String,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromDomainUser(u *domain.User) *models.User {
	if u == nil {
		return nil
	}
	return &models.User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Name:         util.StringToNullString(u.Name),
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
