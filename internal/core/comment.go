package core

import (
	"context"
	"fmt"
	"time"

	"github.com/khairallah17/anomaly-tracker/internal/model"
)

type CommentService struct {
	db        DB
	anomalies *AnomalyService
}

func NewCommentService(db DB, anomalies *AnomalyService) *CommentService {
	return &CommentService{db: db, anomalies: anomalies}
}

// Create inserts a comment after checking the anomaly exists.
func (s *CommentService) Create(ctx context.Context, c *model.Comment) error {
	if _, err := s.anomalies.GetByID(ctx, c.AnomalyID); err != nil {
		return err
	}

	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	err := s.db.QueryRow(ctx,
		`INSERT INTO comments (anomaly_id, author, body, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		c.AnomalyID, c.Author, c.Body, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// GetByID returns a comment by ID.
func (s *CommentService) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	var c model.Comment
	err := s.db.QueryRow(ctx,
		`SELECT id, anomaly_id, author, body, created_at, updated_at FROM comments WHERE id = $1`, id,
	).Scan(&c.ID, &c.AnomalyID, &c.Author, &c.Body, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("comment", id)
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return &c, nil
}

// ListByAnomaly returns an anomaly's comments in chronological order.
func (s *CommentService) ListByAnomaly(ctx context.Context, anomalyID int64) ([]model.Comment, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, anomaly_id, author, body, created_at, updated_at
		 FROM comments WHERE anomaly_id = $1 ORDER BY created_at ASC, id ASC`, anomalyID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.AnomalyID, &c.Author, &c.Body, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// Update replaces a comment's body.
func (s *CommentService) Update(ctx context.Context, id int64, body string) (*model.Comment, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Body = body
	c.UpdatedAt = time.Now()

	_, err = s.db.Exec(ctx,
		`UPDATE comments SET body = $1, updated_at = $2 WHERE id = $3`,
		c.Body, c.UpdatedAt, c.ID)
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return c, nil
}

// Delete removes a comment.
func (s *CommentService) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("comment", id)
	}
	return nil
}
