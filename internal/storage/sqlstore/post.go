package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/keijiban-dev/keijiban/internal/domain"
	internal_errors "github.com/keijiban-dev/keijiban/internal/errors"
)

// CreatePost saves a post, claiming the next thread-local sequence number
// inside the same transaction as the insert. Two concurrent posts to one
// thread serialize on the post_count update, so the numbers stay a
// contiguous 1..N run. The UNIQUE (thread_id, post_id) index is a backstop.
func (s *Storage) CreatePost(creationData domain.PostCreationData) (domain.Post, error) {
	var post domain.Post
	err := s.requestRetry.Do(func() error {
		return s.createPost(creationData, &post)
	})
	return post, err
}

func (s *Storage) createPost(creationData domain.PostCreationData, out *domain.Post) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // The rollback will be ignored if the tx has been committed later in the function.

	var num domain.PostNum
	err = tx.QueryRow(
		s.rebind(`UPDATE threads SET post_count = post_count + 1 WHERE thread_id = ? RETURNING post_count`),
		creationData.ThreadId,
	).Scan(&num)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return internal_errors.NotFound("Thread not found")
		}
		return fmt.Errorf("failed to claim post number: %w", err)
	}

	// Resolve the reply target against the thread-local number, not the
	// surrogate id. Checked inside the transaction so the reply cannot be
	// persisted against a target that never existed.
	var repId sql.NullInt64
	if creationData.ReplyTo != nil {
		var target domain.PostNum
		err = tx.QueryRow(
			s.rebind(`SELECT post_id FROM posts WHERE thread_id = ? AND post_id = ?`),
			creationData.ThreadId, *creationData.ReplyTo,
		).Scan(&target)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return internal_errors.NotFound("Post not found")
			}
			return fmt.Errorf("failed to resolve reply target: %w", err)
		}
		repId = sql.NullInt64{Int64: target, Valid: true}
	}

	date := time.Now().UTC().Round(time.Microsecond)
	var id domain.PostId
	err = tx.QueryRow(
		s.rebind(`INSERT INTO posts (thread_id, post_id, name, message, date, rep_id) VALUES (?, ?, ?, ?, ?, ?) RETURNING id`),
		creationData.ThreadId, num, creationData.Name, creationData.Message, date, repId,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	*out = domain.Post{
		Id:       id,
		ThreadId: creationData.ThreadId,
		Num:      num,
		Name:     creationData.Name,
		Message:  creationData.Message,
		Date:     date,
		ReplyTo:  creationData.ReplyTo,
	}
	return nil
}

// ListPosts returns a thread's posts, oldest first.
func (s *Storage) ListPosts(threadId domain.ThreadId) ([]domain.Post, error) {
	rows, err := s.db.Query(
		s.rebind(`SELECT id, thread_id, post_id, name, message, date, rep_id FROM posts WHERE thread_id = ? ORDER BY date, post_id`),
		threadId,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return posts, nil
}

// GetPost fetches one post by its thread-local sequence number.
func (s *Storage) GetPost(threadId domain.ThreadId, num domain.PostNum) (domain.Post, error) {
	row := s.db.QueryRow(
		s.rebind(`SELECT id, thread_id, post_id, name, message, date, rep_id FROM posts WHERE thread_id = ? AND post_id = ?`),
		threadId, num,
	)
	post, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, internal_errors.NotFound("Post not found")
		}
		return domain.Post{}, err
	}
	return post, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (domain.Post, error) {
	var post domain.Post
	var repId sql.NullInt64
	err := row.Scan(&post.Id, &post.ThreadId, &post.Num, &post.Name, &post.Message, &post.Date, &repId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, err
		}
		return domain.Post{}, fmt.Errorf("failed to scan post: %w", err)
	}
	if repId.Valid {
		post.ReplyTo = &repId.Int64
	}
	return post, nil
}
