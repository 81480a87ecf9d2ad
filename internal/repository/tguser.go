package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/EvgrafovDR/todolist-clone/internal/model"
)

var ErrTgUserNotFound = errors.New("telegram user not found")

type TgUserRepository interface {
	Create(tgUser *model.TgUser) error
	ByTgID(tgID int64) (*model.TgUser, error)
	ByVerificationCode(code string) (*model.TgUser, error)
	Update(tgUser *model.TgUser) error
}

type tgUserRepository struct {
	db *sqlx.DB
}

func NewTgUserRepository(db *sqlx.DB) TgUserRepository {
	return &tgUserRepository{db: db}
}

func (r *tgUserRepository) Create(tgUser *model.TgUser) error {
	query := `INSERT INTO tg_users (id, tg_id, tg_chat_id, username, user_id, verification_code, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		tgUser.ID,
		tgUser.TgID,
		tgUser.TgChatID,
		tgUser.Username,
		tgUser.UserID,
		tgUser.VerificationCode,
		tgUser.CreatedAt,
		tgUser.UpdatedAt,
	)

	return err
}

func (r *tgUserRepository) ByTgID(tgID int64) (*model.TgUser, error) {
	tgUser := &model.TgUser{}
	query := `SELECT * FROM tg_users WHERE tg_id = $1`

	err := r.db.Get(tgUser, query, tgID)
	if err == sql.ErrNoRows {
		return nil, ErrTgUserNotFound
	}

	return tgUser, err
}

// ByVerificationCode returns the first identity matching the code. Codes are
// not globally unique by construction; first match wins.
func (r *tgUserRepository) ByVerificationCode(code string) (*model.TgUser, error) {
	tgUser := &model.TgUser{}
	query := `SELECT * FROM tg_users WHERE verification_code = $1 ORDER BY created_at ASC LIMIT 1`

	err := r.db.Get(tgUser, query, code)
	if err == sql.ErrNoRows {
		return nil, ErrTgUserNotFound
	}

	return tgUser, err
}

func (r *tgUserRepository) Update(tgUser *model.TgUser) error {
	query := `UPDATE tg_users
	          SET tg_chat_id = $1, username = $2, user_id = $3, verification_code = $4, updated_at = $5
	          WHERE id = $6`

	result, err := r.db.Exec(query,
		tgUser.TgChatID,
		tgUser.Username,
		tgUser.UserID,
		tgUser.VerificationCode,
		tgUser.UpdatedAt,
		tgUser.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrTgUserNotFound
	}

	return nil
}
