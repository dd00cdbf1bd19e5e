package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eugendimant/vivalingo/pkg/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestVocabGetDuePropagatesError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVocabRepository(db)

	dbErr := errors.New("disk I/O error")
	mock.ExpectQuery("SELECT \\* FROM vocab_items").WillReturnError(dbErr)

	_, err := repo.GetDue(context.Background(), 1, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "failed to get due vocab items")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVocabRecordReviewPropagatesUpdateError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVocabRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "profile_id", "term", "ease_factor", "interval_days", "next_review", "last_reviewed",
	}).AddRow(1, 1, "plazo", 2.5, 1, nil, nil)
	mock.ExpectQuery("SELECT \\* FROM vocab_items").WillReturnRows(rows)

	dbErr := errors.New("database is locked")
	mock.ExpectExec("UPDATE vocab_items").WillReturnError(dbErr)

	_, err := repo.RecordReview(context.Background(), 1, "plazo", 4)
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMistakeLogPropagatesError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMistakeRepository(db)

	dbErr := errors.New("constraint failed")
	mock.ExpectExec("INSERT INTO mistakes").WillReturnError(dbErr)

	_, err := repo.Log(context.Background(), &models.Mistake{
		ProfileID:     1,
		UserText:      "la problema",
		CorrectedText: "el problema",
		ErrorType:     "grammar",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
