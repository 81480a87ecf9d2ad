package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/EvgrafovDR/todolist-clone/internal/model"
)

var ErrCategoryNotFound = errors.New("goal category not found")

type CategoryRepository interface {
	Create(category *model.GoalCategory) error
	ByID(id string) (*model.GoalCategory, error)
	ForUser(userID string) ([]*model.GoalCategory, error)
	Update(category *model.GoalCategory) error
	SoftDelete(category *model.GoalCategory) error
}

type categoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *model.GoalCategory) error {
	query := `INSERT INTO goal_categories (id, board_id, user_id, title, is_deleted, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		category.ID,
		category.BoardID,
		category.UserID,
		category.Title,
		category.IsDeleted,
		category.CreatedAt,
		category.UpdatedAt,
	)

	return err
}

func (r *categoryRepository) ByID(id string) (*model.GoalCategory, error) {
	category := &model.GoalCategory{}
	query := `SELECT * FROM goal_categories WHERE id = $1`

	err := r.db.Get(category, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrCategoryNotFound
	}

	return category, err
}

// ForUser returns non-deleted categories on non-deleted boards the user
// participates in.
func (r *categoryRepository) ForUser(userID string) ([]*model.GoalCategory, error) {
	var categories []*model.GoalCategory
	query := `SELECT c.*
	          FROM goal_categories c
	          JOIN boards b ON b.id = c.board_id
	          JOIN board_participants p ON p.board_id = c.board_id
	          WHERE p.user_id = $1 AND c.is_deleted = FALSE AND b.is_deleted = FALSE
	          ORDER BY c.created_at ASC`

	err := r.db.Select(&categories, query, userID)
	if err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *categoryRepository) Update(category *model.GoalCategory) error {
	query := `UPDATE goal_categories SET title = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.Exec(query, category.Title, category.UpdatedAt, category.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

func (r *categoryRepository) SoftDelete(category *model.GoalCategory) error {
	query := `UPDATE goal_categories SET is_deleted = TRUE, updated_at = $1 WHERE id = $2`

	result, err := r.db.Exec(query, category.UpdatedAt, category.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCategoryNotFound
	}

	return nil
}
