package store

import (
	"database/sql"

	"github.com/ElCannibal-666/Uptask-Backend/models"
)

// CreateUser inserts a new user and fills in its generated ID.
func (s *Store) CreateUser(user *models.User) error {
	insertQuery := `INSERT INTO users (name, email, password_hash, confirmed)
					VALUES (?, ?, ?, ?)`

	res, err := s.db.Exec(insertQuery, user.Name, user.Email, user.PasswordHash, user.Confirmed)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = uint(id)
	return nil
}

// UserByEmail looks a user up by the stored email value. The comparison is
// exact, no normalization.
func (s *Store) UserByEmail(email string) (*models.User, error) {
	selectQuery := `SELECT id, name, email, password_hash, confirmed, created_at, updated_at
					FROM users WHERE email = ? LIMIT 1`
	return s.scanUser(s.db.QueryRow(selectQuery, email))
}

func (s *Store) UserByID(id uint) (*models.User, error) {
	selectQuery := `SELECT id, name, email, password_hash, confirmed, created_at, updated_at
					FROM users WHERE id = ? LIMIT 1`
	return s.scanUser(s.db.QueryRow(selectQuery, id))
}

// UpdateUser saves the name and email of an existing user.
func (s *Store) UpdateUser(user *models.User) error {
	updateQuery := `UPDATE users SET name = ?, email = ?, updated_at = CURRENT_TIMESTAMP
					WHERE id = ?`
	_, err := s.db.Exec(updateQuery, user.Name, user.Email, user.ID)
	return err
}

// UpdatePassword replaces the stored password hash of a user.
func (s *Store) UpdatePassword(userID uint, passwordHash string) error {
	updateQuery := `UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP
					WHERE id = ?`
	_, err := s.db.Exec(updateQuery, passwordHash, userID)
	return err
}

// SetConfirmed marks a user account as confirmed.
func (s *Store) SetConfirmed(userID uint) error {
	updateQuery := `UPDATE users SET confirmed = 1, updated_at = CURRENT_TIMESTAMP
					WHERE id = ?`
	_, err := s.db.Exec(updateQuery, userID)
	return err
}

func (s *Store) scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Confirmed,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return &user, nil
}
