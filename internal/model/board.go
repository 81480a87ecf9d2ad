package model

import (
	"time"
)

// Role values follow the legacy numbering: owner=1, writer=2, reader=3.
// Roles are checked by membership in explicit allowed sets, never by
// comparing the numeric values.
type Role int

const (
	RoleOwner  Role = 1
	RoleWriter Role = 2
	RoleReader Role = 3
)

// EditableRoles are the roles assignable through board updates. A board has
// exactly one owner, set at creation and immutable afterwards.
var EditableRoles = []Role{RoleWriter, RoleReader}

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleWriter, RoleReader:
		return true
	}
	return false
}

func (r Role) Editable() bool {
	for _, allowed := range EditableRoles {
		if r == allowed {
			return true
		}
	}
	return false
}

// Board is the root of an access scope. Deletion is soft only.
type Board struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	IsDeleted bool      `db:"is_deleted" json:"is_deleted"`
	CreatedAt time.Time `db:"created_at" json:"created"`
	UpdatedAt time.Time `db:"updated_at" json:"updated"`
}

func (b *Board) OwningBoardID() string {
	return b.ID
}

// BoardParticipant links a user to a board with a role. Unique per
// (board, user).
type BoardParticipant struct {
	ID        string    `db:"id" json:"id"`
	BoardID   string    `db:"board_id" json:"board"`
	UserID    string    `db:"user_id" json:"-"`
	Role      Role      `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created"`
	UpdatedAt time.Time `db:"updated_at" json:"updated"`

	// Joined from users for serialization; not a column of
	// board_participants.
	Username string `db:"username" json:"user"`
}
