package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"mindspark/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestWithTransaction_Commit(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	tm := NewTransactionManagerAdapter(db)
	users := NewSQLXUserRepository(db)
	profiles := NewSQLXProfileRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO USERS`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO USER_PROFILES`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	now := time.Now()
	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		if err := users.CreateUser(ctx, &domain.User{ID: "u", Username: "u", Email: "u@x.io", CreatedAt: now, UpdatedAt: now}); err != nil {
			return err
		}
		return profiles.CreateProfile(ctx, &domain.UserProfile{UserID: "u", CreatedAt: now, UpdatedAt: now})
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_RollbackOnError(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	tm := NewTransactionManagerAdapter(db)
	attempts := NewSQLXAttemptRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO QUIZ_ATTEMPTS`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO USER_ANSWERS`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		return attempts.CreateAttempt(ctx, &domain.QuizAttempt{
			ID: "a", Answers: []domain.UserAnswer{{ID: "x", AttemptID: "a", QuestionID: "q"}},
		})
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_NestedReusesOuter(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	tm := NewTransactionManagerAdapter(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := tm.WithTransaction(context.Background(), func(ctx context.Context) error {
		return tm.WithTransaction(ctx, func(inner context.Context) error {
			calls++
			assert.Equal(t, ctx.Value(TransactionContextKey), inner.Value(TransactionContextKey))
			return nil
		})
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExecutor_WithoutTransaction(t *testing.T) {
	db, _ := setupTestDB(t)
	defer db.Close()
	assert.Equal(t, DBTX(db), GetExecutor(context.Background(), db))
}
