package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"

	"github.com/keijiban-dev/keijiban/internal/domain"
	internal_errors "github.com/keijiban-dev/keijiban/internal/errors"
)

// Credential storage for the declared user entity. No route is wired to
// these yet, account support is a future iteration.

func (s *Storage) CreateUser(username, password string) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var user domain.User
	err = s.requestRetry.Do(func() error {
		var id int64
		err := s.db.QueryRow(
			s.rebind(`INSERT INTO users (username, password_hash) VALUES (?, ?) RETURNING id`),
			username, string(hash),
		).Scan(&id)
		if err != nil {
			if isUniqueViolation(err) {
				return &internal_errors.ErrorWithStatusCode{Message: "Username already taken", StatusCode: 409}
			}
			return fmt.Errorf("failed to insert user: %w", err)
		}
		user = domain.User{Id: id, Username: username, PasswordHash: string(hash)}
		return nil
	})
	return user, err
}

func (s *Storage) GetUser(username string) (domain.User, error) {
	var user domain.User
	err := s.db.QueryRow(
		s.rebind(`SELECT id, username, password_hash FROM users WHERE username = ?`),
		username,
	).Scan(&user.Id, &user.Username, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("User not found")
		}
		return domain.User{}, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, nil
}

func CheckPassword(user domain.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
