package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/EvgrafovDR/todolist-clone/internal/model"
)

var ErrCommentNotFound = errors.New("goal comment not found")

const commentColumns = `gc.id, gc.goal_id, gc.user_id, gc.text, gc.created_at, gc.updated_at, c.board_id`

type CommentRepository interface {
	Create(comment *model.GoalComment) error
	ByID(id string) (*model.GoalComment, error)
	ForGoal(goalID string) ([]*model.GoalComment, error)
	Update(comment *model.GoalComment) error
	Delete(id string) error
}

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *model.GoalComment) error {
	query := `INSERT INTO goal_comments (id, goal_id, user_id, text, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query,
		comment.ID,
		comment.GoalID,
		comment.UserID,
		comment.Text,
		comment.CreatedAt,
		comment.UpdatedAt,
	)

	return err
}

// ByID joins in the owning board id through the comment's goal and category.
func (r *commentRepository) ByID(id string) (*model.GoalComment, error) {
	comment := &model.GoalComment{}
	query := `SELECT ` + commentColumns + `
	          FROM goal_comments gc
	          JOIN goals g ON g.id = gc.goal_id
	          JOIN goal_categories c ON c.id = g.category_id
	          WHERE gc.id = $1`

	err := r.db.Get(comment, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrCommentNotFound
	}

	return comment, err
}

// ForGoal returns the goal's comments, newest first.
func (r *commentRepository) ForGoal(goalID string) ([]*model.GoalComment, error) {
	var comments []*model.GoalComment
	query := `SELECT ` + commentColumns + `
	          FROM goal_comments gc
	          JOIN goals g ON g.id = gc.goal_id
	          JOIN goal_categories c ON c.id = g.category_id
	          WHERE gc.goal_id = $1
	          ORDER BY gc.created_at DESC`

	err := r.db.Select(&comments, query, goalID)
	if err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *commentRepository) Update(comment *model.GoalComment) error {
	query := `UPDATE goal_comments SET text = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(query, comment.Text, comment.UpdatedAt, comment.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCommentNotFound
	}

	return nil
}

func (r *commentRepository) Delete(id string) error {
	query := `DELETE FROM goal_comments WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCommentNotFound
	}

	return nil
}
