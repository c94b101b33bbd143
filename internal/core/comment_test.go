package core

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khairallah17/anomaly-tracker/internal/model"
)

func newCommentService(db *mockDB) *CommentService {
	return NewCommentService(db, NewAnomalyService(db))
}

func TestCommentService_Create_Success(t *testing.T) {
	db := &mockDB{}
	svc := newCommentService(db)
	ctx := context.Background()

	db.On("QueryRow", ctx, mock.MatchedBy(anomalySQL), mock.Anything).
		Return(&mockRow{scanFunc: anomalyScan(model.Anomaly{ID: 1, Status: model.StatusInProgress})})
	db.On("QueryRow", ctx, mock.MatchedBy(func(sql string) bool {
		return strings.Contains(sql, "INSERT INTO comments")
	}), mock.Anything).Return(&mockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*int64)) = 9
		return nil
	}})

	c := &model.Comment{AnomalyID: 1, Author: "n.ikken", Body: "Checked on site, vibration confirmed."}
	require.NoError(t, svc.Create(ctx, c))
	assert.Equal(t, int64(9), c.ID)
	assert.False(t, c.CreatedAt.IsZero())
}

func TestCommentService_Create_MissingAnomaly(t *testing.T) {
	db := &mockDB{}
	svc := newCommentService(db)
	ctx := context.Background()

	db.On("QueryRow", ctx, mock.MatchedBy(anomalySQL), mock.Anything).Return(noRowsRow())

	err := svc.Create(ctx, &model.Comment{AnomalyID: 404, Author: "x", Body: "y"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCommentService_ListByAnomaly(t *testing.T) {
	db := &mockDB{}
	svc := newCommentService(db)
	ctx := context.Background()

	rows := newMockRows(
		func(dest ...any) error {
			*(dest[0].(*int64)) = 1
			*(dest[1].(*int64)) = 7
			*(dest[2].(*string)) = "n.ikken"
			*(dest[3].(*string)) = "first"
			return nil
		},
		func(dest ...any) error {
			*(dest[0].(*int64)) = 2
			*(dest[1].(*int64)) = 7
			*(dest[2].(*string)) = "m.saidi"
			*(dest[3].(*string)) = "second"
			return nil
		},
	)
	db.On("Query", ctx, mock.AnythingOfType("string"), mock.Anything).Return(rows, nil)

	comments, err := svc.ListByAnomaly(ctx, 7)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Body)
	assert.Equal(t, "second", comments[1].Body)
}

func TestCommentService_Update_NotFound(t *testing.T) {
	db := &mockDB{}
	svc := newCommentService(db)
	ctx := context.Background()

	db.On("QueryRow", ctx, mock.AnythingOfType("string"), mock.Anything).Return(noRowsRow())

	_, err := svc.Update(ctx, 404, "new body")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCommentService_Delete_NotFound(t *testing.T) {
	db := &mockDB{}
	svc := newCommentService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.NewCommandTag("DELETE 0"), nil)

	err := svc.Delete(ctx, 404)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCommentService_Delete_Success(t *testing.T) {
	db := &mockDB{}
	svc := newCommentService(db)
	ctx := context.Background()

	db.On("Exec", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.NewCommandTag("DELETE 1"), nil)

	require.NoError(t, svc.Delete(ctx, 9))
}
