package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/EvgrafovDR/todolist-clone/internal/model"
)

var (
	ErrBoardNotFound       = errors.New("board not found")
	ErrParticipantNotFound = errors.New("board participant not found")
)

// ParticipantDiff is the result of reconciling a board's current participant
// set against a desired one. Applied atomically together with the board's
// title update.
type ParticipantDiff struct {
	RemoveUserIDs []string
	UpdateRoles   []model.BoardParticipant
	Add           []model.BoardParticipant
}

func (d ParticipantDiff) Empty() bool {
	return len(d.RemoveUserIDs) == 0 && len(d.UpdateRoles) == 0 && len(d.Add) == 0
}

type BoardRepository interface {
	CreateWithOwner(board *model.Board, owner *model.BoardParticipant) error
	ByID(id string) (*model.Board, error)
	ForUser(userID string) ([]*model.Board, error)
	Participants(boardID string) ([]*model.BoardParticipant, error)
	ParticipantRole(boardID, userID string) (model.Role, error)
	ApplyUpdate(board *model.Board, diff ParticipantDiff) error
	SoftDelete(board *model.Board) error
}

type boardRepository struct {
	db *sqlx.DB
}

func NewBoardRepository(db *sqlx.DB) BoardRepository {
	return &boardRepository{db: db}
}

// CreateWithOwner inserts the board and its owner participant in one
// transaction. A board never exists without an owner row.
func (r *boardRepository) CreateWithOwner(board *model.Board, owner *model.BoardParticipant) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("begin create board: %w", err)
	}
	defer rollback(tx)

	_, err = tx.Exec(
		`INSERT INTO boards (id, title, is_deleted, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		board.ID, board.Title, board.IsDeleted, board.CreatedAt, board.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert board: %w", err)
	}

	err = insertParticipant(tx, owner)
	if err != nil {
		return fmt.Errorf("insert owner participant: %w", err)
	}

	return tx.Commit()
}

func (r *boardRepository) ByID(id string) (*model.Board, error) {
	board := &model.Board{}
	query := `SELECT * FROM boards WHERE id = $1`

	err := r.db.Get(board, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrBoardNotFound
	}

	return board, err
}

// ForUser returns the non-deleted boards the user participates in, any role.
func (r *boardRepository) ForUser(userID string) ([]*model.Board, error) {
	var boards []*model.Board
	query := `SELECT b.*
	          FROM boards b
	          JOIN board_participants p ON p.board_id = b.id
	          WHERE p.user_id = $1 AND b.is_deleted = FALSE
	          ORDER BY b.created_at ASC`

	err := r.db.Select(&boards, query, userID)
	if err != nil {
		return nil, err
	}

	return boards, nil
}

func (r *boardRepository) Participants(boardID string) ([]*model.BoardParticipant, error) {
	var participants []*model.BoardParticipant
	query := `SELECT p.id, p.board_id, p.user_id, p.role, p.created_at, p.updated_at, u.username
	          FROM board_participants p
	          JOIN users u ON u.id = p.user_id
	          WHERE p.board_id = $1
	          ORDER BY p.created_at ASC`

	err := r.db.Select(&participants, query, boardID)
	if err != nil {
		return nil, err
	}

	return participants, nil
}

func (r *boardRepository) ParticipantRole(boardID, userID string) (model.Role, error) {
	var role model.Role
	query := `SELECT role FROM board_participants WHERE board_id = $1 AND user_id = $2`

	err := r.db.Get(&role, query, boardID, userID)
	if err == sql.ErrNoRows {
		return 0, ErrParticipantNotFound
	}

	return role, err
}

// ApplyUpdate commits the participant diff and the board's title update as a
// single transaction. Any failure rolls everything back.
func (r *boardRepository) ApplyUpdate(board *model.Board, diff ParticipantDiff) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("begin board update: %w", err)
	}
	defer rollback(tx)

	for _, userID := range diff.RemoveUserIDs {
		_, err = tx.Exec(
			`DELETE FROM board_participants WHERE board_id = $1 AND user_id = $2`,
			board.ID, userID,
		)
		if err != nil {
			return fmt.Errorf("delete participant: %w", err)
		}
	}

	for _, p := range diff.UpdateRoles {
		_, err = tx.Exec(
			`UPDATE board_participants SET role = $1, updated_at = $2 WHERE board_id = $3 AND user_id = $4`,
			p.Role, p.UpdatedAt, board.ID, p.UserID,
		)
		if err != nil {
			return fmt.Errorf("update participant role: %w", err)
		}
	}

	for _, p := range diff.Add {
		err = insertParticipant(tx, &p)
		if err != nil {
			return fmt.Errorf("insert participant: %w", err)
		}
	}

	result, err := tx.Exec(
		`UPDATE boards SET title = $1, updated_at = $2 WHERE id = $3`,
		board.Title, board.UpdatedAt, board.ID,
	)
	if err != nil {
		return fmt.Errorf("update board: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrBoardNotFound
	}

	return tx.Commit()
}

func (r *boardRepository) SoftDelete(board *model.Board) error {
	query := `UPDATE boards SET is_deleted = TRUE, updated_at = $1 WHERE id = $2`

	result, err := r.db.Exec(query, board.UpdatedAt, board.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrBoardNotFound
	}

	return nil
}

func insertParticipant(tx *sqlx.Tx, p *model.BoardParticipant) error {
	_, err := tx.Exec(
		`INSERT INTO board_participants (id, board_id, user_id, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.BoardID, p.UserID, p.Role, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func rollback(tx *sqlx.Tx) {
	err := tx.Rollback()
	if err != nil && err != sql.ErrTxDone {
		slog.Error("transaction rollback failed", "error", err)
	}
}
