// Package access derives a principal's effective permission on any entity
// scoped to a board. Entities expose the board they belong to through the
// BoardScoped interface, which keeps the checker agnostic of how the scope is
// resolved (boards resolve to themselves, goals through their category, and
// so on).
package access

import (
	"errors"

	"github.com/EvgrafovDR/todolist-clone/internal/model"
	"github.com/EvgrafovDR/todolist-clone/internal/repository"
)

type Action int

const (
	ActionRead Action = iota
	ActionWrite
)

// Kind selects which allowed-role set applies to a write. Roles are matched
// by explicit set membership, never by ordering, so renumbering roles cannot
// silently widen a permission.
type Kind int

const (
	KindBoard Kind = iota
	KindCategory
	KindGoal
	KindComment
)

var writeRoles = map[Kind][]model.Role{
	KindBoard:    {model.RoleOwner},
	KindCategory: {model.RoleOwner, model.RoleWriter},
	KindGoal:     {model.RoleOwner, model.RoleWriter},
	// Comment creation is gated like goal writes; comment edits are
	// author-only and checked by the comment service, not here.
	KindComment: {model.RoleOwner, model.RoleWriter},
}

// BoardScoped is any entity that can name the board it belongs to.
type BoardScoped interface {
	OwningBoardID() string
}

// RoleReader is the slice of the participant store the checker needs.
type RoleReader interface {
	ParticipantRole(boardID, userID string) (model.Role, error)
}

type Checker struct {
	participants RoleReader
}

func NewChecker(participants RoleReader) *Checker {
	return &Checker{participants: participants}
}

// Allowed reports whether the principal may perform the action on the target.
// An empty userID is an unauthenticated principal and is always denied. The
// check is read-only; soft-delete gating is enforced by lifecycle rules in
// the services.
func (c *Checker) Allowed(userID string, action Action, kind Kind, target BoardScoped) (bool, error) {
	if userID == "" {
		return false, nil
	}

	role, err := c.participants.ParticipantRole(target.OwningBoardID(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return false, nil
		}
		return false, err
	}

	if action == ActionRead {
		// Any participant may read, regardless of role.
		return true, nil
	}

	for _, allowed := range writeRoles[kind] {
		if role == allowed {
			return true, nil
		}
	}

	return false, nil
}
