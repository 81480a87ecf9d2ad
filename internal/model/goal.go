package model

import (
	"time"
)

type GoalStatus int

const (
	StatusToDo       GoalStatus = 1
	StatusInProgress GoalStatus = 2
	StatusDone       GoalStatus = 3
	StatusArchived   GoalStatus = 4
)

func (s GoalStatus) Valid() bool {
	return s >= StatusToDo && s <= StatusArchived
}

type GoalPriority int

const (
	PriorityLow      GoalPriority = 1
	PriorityMedium   GoalPriority = 2
	PriorityHigh     GoalPriority = 3
	PriorityCritical GoalPriority = 4
)

func (p GoalPriority) Valid() bool {
	return p >= PriorityLow && p <= PriorityCritical
}

type Goal struct {
	ID          string       `db:"id" json:"id"`
	CategoryID  string       `db:"category_id" json:"category"`
	UserID      string       `db:"user_id" json:"user"`
	Title       string       `db:"title" json:"title"`
	Description *string      `db:"description" json:"description"`
	DueDate     *time.Time   `db:"due_date" json:"due_date"`
	Status      GoalStatus   `db:"status" json:"status"`
	Priority    GoalPriority `db:"priority" json:"priority"`
	CreatedAt   time.Time    `db:"created_at" json:"created"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updated"`

	// Joined from goal_categories; a goal's effective board is its
	// category's board.
	BoardID string `db:"board_id" json:"-"`
}

func (g *Goal) OwningBoardID() string {
	return g.BoardID
}
