package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/keijiban-dev/keijiban/internal/domain"
	internal_errors "github.com/keijiban-dev/keijiban/internal/errors"
)

// CreateThread inserts a new thread row. Validation of the title is the
// caller's job, the gateway only persists.
func (s *Storage) CreateThread(creationData domain.ThreadCreationData) (domain.Thread, error) {
	var thread domain.Thread
	err := s.requestRetry.Do(func() error {
		createdAt := time.Now().UTC().Round(time.Microsecond) // database anyway rounds to microsecond
		var id domain.ThreadId
		err := s.db.QueryRow(
			s.rebind(`INSERT INTO threads (title, created_at) VALUES (?, ?) RETURNING thread_id`),
			creationData.Title, createdAt,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert thread: %w", err)
		}
		thread = domain.Thread{Id: id, Title: creationData.Title, CreatedAt: createdAt}
		return nil
	})
	return thread, err
}

func (s *Storage) GetThread(id domain.ThreadId) (domain.Thread, error) {
	var thread domain.Thread
	err := s.db.QueryRow(
		s.rebind(`SELECT thread_id, title, created_at, post_count FROM threads WHERE thread_id = ?`),
		id,
	).Scan(&thread.Id, &thread.Title, &thread.CreatedAt, &thread.PostCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Thread{}, internal_errors.NotFound("Thread not found")
		}
		return domain.Thread{}, fmt.Errorf("failed to fetch thread: %w", err)
	}
	return thread, nil
}

// ListThreads returns all threads, newest first.
func (s *Storage) ListThreads() ([]domain.Thread, error) {
	rows, err := s.db.Query(`SELECT thread_id, title, created_at, post_count FROM threads ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch threads: %w", err)
	}
	defer rows.Close()

	var threads []domain.Thread
	for rows.Next() {
		var thread domain.Thread
		if err := rows.Scan(&thread.Id, &thread.Title, &thread.CreatedAt, &thread.PostCount); err != nil {
			return nil, fmt.Errorf("failed to scan thread: %w", err)
		}
		threads = append(threads, thread)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return threads, nil
}
