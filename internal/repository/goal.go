package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/EvgrafovDR/todolist-clone/internal/model"
)

var ErrGoalNotFound = errors.New("goal not found")

const goalColumns = `g.id, g.category_id, g.user_id, g.title, g.description, g.due_date,
	g.status, g.priority, g.created_at, g.updated_at, c.board_id`

type GoalRepository interface {
	Create(goal *model.Goal) error
	ByID(id string) (*model.Goal, error)
	ForUser(userID string) ([]*model.Goal, error)
	Update(goal *model.Goal) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(goal *model.Goal) error {
	query := `INSERT INTO goals (id, category_id, user_id, title, description, due_date, status, priority, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(query,
		goal.ID,
		goal.CategoryID,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.DueDate,
		goal.Status,
		goal.Priority,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	return err
}

// ByID joins in the owning board id through the goal's category.
func (r *goalRepository) ByID(id string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT ` + goalColumns + `
	          FROM goals g
	          JOIN goal_categories c ON c.id = g.category_id
	          WHERE g.id = $1`

	err := r.db.Get(goal, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}

	return goal, err
}

// ForUser returns non-archived goals in non-deleted categories of non-deleted
// boards the user participates in.
func (r *goalRepository) ForUser(userID string) ([]*model.Goal, error) {
	var goals []*model.Goal
	query := `SELECT ` + goalColumns + `
	          FROM goals g
	          JOIN goal_categories c ON c.id = g.category_id
	          JOIN boards b ON b.id = c.board_id
	          JOIN board_participants p ON p.board_id = c.board_id
	          WHERE p.user_id = $1
	            AND g.status != $2
	            AND c.is_deleted = FALSE
	            AND b.is_deleted = FALSE
	          ORDER BY g.created_at ASC`

	err := r.db.Select(&goals, query, userID, model.StatusArchived)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) Update(goal *model.Goal) error {
	query := `UPDATE goals
	          SET category_id = $1, title = $2, description = $3, due_date = $4, status = $5, priority = $6, updated_at = $7
	          WHERE id = $8`

	result, err := r.db.Exec(query,
		goal.CategoryID,
		goal.Title,
		goal.Description,
		goal.DueDate,
		goal.Status,
		goal.Priority,
		goal.UpdatedAt,
		goal.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}
