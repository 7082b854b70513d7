package store

import (
	"database/sql"

	"github.com/ElCannibal-666/Uptask-Backend/models"
)

// CreateToken stores a new one-time code for a user. A user may hold several
// live tokens at once; each is consumed independently.
func (s *Store) CreateToken(token *models.Token) error {
	insertQuery := `INSERT INTO tokens (code, user_id) VALUES (?, ?)`

	res, err := s.db.Exec(insertQuery, token.Code, token.UserID)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	token.ID = uint(id)
	return nil
}

// TokenByCode finds a live token by its code.
func (s *Store) TokenByCode(code string) (*models.Token, error) {
	selectQuery := `SELECT id, code, user_id, created_at FROM tokens WHERE code = ? LIMIT 1`

	var token models.Token
	err := s.db.QueryRow(selectQuery, code).Scan(
		&token.ID,
		&token.Code,
		&token.UserID,
		&token.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return &token, nil
}

// DeleteToken removes a consumed token.
func (s *Store) DeleteToken(id uint) error {
	_, err := s.db.Exec(`DELETE FROM tokens WHERE id = ?`, id)
	return err
}
