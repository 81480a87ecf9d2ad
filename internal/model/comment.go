package model

import (
	"time"
)

// GoalComment is scoped to a board transitively through its goal's category.
type GoalComment struct {
	ID        string    `db:"id" json:"id"`
	GoalID    string    `db:"goal_id" json:"goal"`
	UserID    string    `db:"user_id" json:"user"`
	Text      string    `db:"text" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"created"`
	UpdatedAt time.Time `db:"updated_at" json:"updated"`

	// Joined through goals -> goal_categories.
	BoardID string `db:"board_id" json:"-"`
}

func (c *GoalComment) OwningBoardID() string {
	return c.BoardID
}
