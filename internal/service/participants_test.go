package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EvgrafovDR/todolist-clone/internal/model"
)

func participant(userID string, role model.Role) *model.BoardParticipant {
	return &model.BoardParticipant{
		ID:      "row-" + userID,
		BoardID: "board-1",
		UserID:  userID,
		Role:    role,
	}
}

func TestDiffParticipants(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name        string
		current     []*model.BoardParticipant
		desired     []resolvedParticipant
		wantRemove  []string
		wantUpdates map[string]model.Role
		wantAdds    map[string]model.Role
	}{
		{
			name:    "empty desired removes everyone but the owner",
			current: []*model.BoardParticipant{participant("owner", model.RoleOwner), participant("u1", model.RoleWriter)},
			desired: nil,

			wantRemove: []string{"u1"},
		},
		{
			name:    "new participant is added",
			current: []*model.BoardParticipant{participant("owner", model.RoleOwner)},
			desired: []resolvedParticipant{{userID: "u1", role: model.RoleReader}},

			wantAdds: map[string]model.Role{"u1": model.RoleReader},
		},
		{
			name:    "role change becomes an update",
			current: []*model.BoardParticipant{participant("owner", model.RoleOwner), participant("u1", model.RoleReader)},
			desired: []resolvedParticipant{{userID: "u1", role: model.RoleWriter}},

			wantUpdates: map[string]model.Role{"u1": model.RoleWriter},
		},
		{
			name: "mixed remove, update and add",
			current: []*model.BoardParticipant{
				participant("owner", model.RoleOwner),
				participant("u1", model.RoleWriter),
				participant("u2", model.RoleReader),
			},
			desired: []resolvedParticipant{
				{userID: "u2", role: model.RoleWriter},
				{userID: "u3", role: model.RoleReader},
			},

			wantRemove:  []string{"u1"},
			wantUpdates: map[string]model.Role{"u2": model.RoleWriter},
			wantAdds:    map[string]model.Role{"u3": model.RoleReader},
		},
		{
			name: "unchanged set yields empty diff",
			current: []*model.BoardParticipant{
				participant("owner", model.RoleOwner),
				participant("u1", model.RoleWriter),
			},
			desired: []resolvedParticipant{{userID: "u1", role: model.RoleWriter}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			diff := diffParticipants("board-1", "owner", tc.current, tc.desired, now)

			assert.ElementsMatch(t, tc.wantRemove, diff.RemoveUserIDs)

			updates := map[string]model.Role{}
			for _, p := range diff.UpdateRoles {
				updates[p.UserID] = p.Role
			}
			adds := map[string]model.Role{}
			for _, p := range diff.Add {
				adds[p.UserID] = p.Role
				assert.NotEmpty(t, p.ID)
				assert.Equal(t, "board-1", p.BoardID)
			}

			if tc.wantUpdates == nil {
				tc.wantUpdates = map[string]model.Role{}
			}
			if tc.wantAdds == nil {
				tc.wantAdds = map[string]model.Role{}
			}
			assert.Equal(t, tc.wantUpdates, updates)
			assert.Equal(t, tc.wantAdds, adds)
		})
	}
}

func TestDiffParticipantsNeverTouchesOwner(t *testing.T) {
	now := time.Now()
	current := []*model.BoardParticipant{participant("owner", model.RoleOwner)}

	diff := diffParticipants("board-1", "owner", current, nil, now)
	require.True(t, diff.Empty())
}

func TestDiffParticipantsIdempotent(t *testing.T) {
	now := time.Now()
	current := []*model.BoardParticipant{
		participant("owner", model.RoleOwner),
		participant("u1", model.RoleReader),
	}
	desired := []resolvedParticipant{
		{userID: "u1", role: model.RoleWriter},
		{userID: "u2", role: model.RoleReader},
	}

	first := diffParticipants("board-1", "owner", current, desired, now)
	require.False(t, first.Empty())

	// Simulate the applied state and run the same desired set again.
	applied := []*model.BoardParticipant{
		participant("owner", model.RoleOwner),
		participant("u1", model.RoleWriter),
		participant("u2", model.RoleReader),
	}
	second := diffParticipants("board-1", "owner", applied, desired, now)
	assert.True(t, second.Empty())
}
