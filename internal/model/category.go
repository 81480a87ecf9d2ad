package model

import (
	"time"
)

// GoalCategory belongs to exactly one board and carries its author.
type GoalCategory struct {
	ID        string    `db:"id" json:"id"`
	BoardID   string    `db:"board_id" json:"board"`
	UserID    string    `db:"user_id" json:"user"`
	Title     string    `db:"title" json:"title"`
	IsDeleted bool      `db:"is_deleted" json:"is_deleted"`
	CreatedAt time.Time `db:"created_at" json:"created"`
	UpdatedAt time.Time `db:"updated_at" json:"updated"`
}

func (c *GoalCategory) OwningBoardID() string {
	return c.BoardID
}
