package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EvgrafovDR/todolist-clone/internal/model"
	"github.com/EvgrafovDR/todolist-clone/internal/repository"
)

type staticRoles map[string]model.Role

func (s staticRoles) ParticipantRole(boardID, userID string) (model.Role, error) {
	role, ok := s[boardID+"/"+userID]
	if !ok {
		return 0, repository.ErrParticipantNotFound
	}
	return role, nil
}

func TestAllowedRoleMatrix(t *testing.T) {
	board := &model.Board{ID: "b1"}
	roles := staticRoles{
		"b1/owner":  model.RoleOwner,
		"b1/writer": model.RoleWriter,
		"b1/reader": model.RoleReader,
	}
	checker := NewChecker(roles)

	testCases := []struct {
		name     string
		userID   string
		action   Action
		kind     Kind
		expected bool
	}{
		{name: "unauthenticated read denied", userID: "", action: ActionRead, kind: KindBoard, expected: false},
		{name: "unauthenticated write denied", userID: "", action: ActionWrite, kind: KindBoard, expected: false},
		{name: "non-participant read denied", userID: "stranger", action: ActionRead, kind: KindBoard, expected: false},
		{name: "owner reads board", userID: "owner", action: ActionRead, kind: KindBoard, expected: true},
		{name: "writer reads board", userID: "writer", action: ActionRead, kind: KindBoard, expected: true},
		{name: "reader reads board", userID: "reader", action: ActionRead, kind: KindBoard, expected: true},
		{name: "owner writes board", userID: "owner", action: ActionWrite, kind: KindBoard, expected: true},
		{name: "writer cannot write board", userID: "writer", action: ActionWrite, kind: KindBoard, expected: false},
		{name: "reader cannot write board", userID: "reader", action: ActionWrite, kind: KindBoard, expected: false},
		{name: "owner writes category", userID: "owner", action: ActionWrite, kind: KindCategory, expected: true},
		{name: "writer writes category", userID: "writer", action: ActionWrite, kind: KindCategory, expected: true},
		{name: "reader cannot write category", userID: "reader", action: ActionWrite, kind: KindCategory, expected: false},
		{name: "writer writes goal", userID: "writer", action: ActionWrite, kind: KindGoal, expected: true},
		{name: "reader cannot write goal", userID: "reader", action: ActionWrite, kind: KindGoal, expected: false},
		{name: "writer creates comment", userID: "writer", action: ActionWrite, kind: KindComment, expected: true},
		{name: "reader cannot create comment", userID: "reader", action: ActionWrite, kind: KindComment, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := checker.Allowed(tc.userID, tc.action, tc.kind, board)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, allowed)
		})
	}
}

func TestAllowedResolvesOwningBoard(t *testing.T) {
	roles := staticRoles{"b2/reader": model.RoleReader}
	checker := NewChecker(roles)

	goal := &model.Goal{ID: "g1", BoardID: "b2"}
	comment := &model.GoalComment{ID: "c1", BoardID: "b2"}
	category := &model.GoalCategory{ID: "cat1", BoardID: "b2"}

	for _, target := range []BoardScoped{goal, comment, category} {
		allowed, err := checker.Allowed("reader", ActionRead, KindGoal, target)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := checker.Allowed("reader", ActionRead, KindGoal, &model.Goal{BoardID: "elsewhere"})
	require.NoError(t, err)
	assert.False(t, allowed)
}
