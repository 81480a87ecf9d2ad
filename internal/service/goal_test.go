package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EvgrafovDR/todolist-clone/internal/apperr"
	"github.com/EvgrafovDR/todolist-clone/internal/model"
	"github.com/EvgrafovDR/todolist-clone/internal/service"
)

// goalFixture sets up a board owned by alice with bob as writer and carol as
// reader, plus one category on the board.
type goalFixture struct {
	e        *env
	owner    *model.User
	writer   *model.User
	reader   *model.User
	board    *model.Board
	category *model.GoalCategory
}

func newGoalFixture(t *testing.T) *goalFixture {
	t.Helper()

	e := newEnv(t)
	owner := e.user(t, "alice")
	writer := e.user(t, "bob")
	reader := e.user(t, "carol")

	board, err := e.boards.Create(owner.ID, "work")
	require.NoError(t, err)

	_, _, err = e.boards.Update(owner.ID, board.ID, "work", []service.ParticipantInput{
		{Username: "bob", Role: model.RoleWriter},
		{Username: "carol", Role: model.RoleReader},
	})
	require.NoError(t, err)

	category, err := e.categories.Create(owner.ID, board.ID, "backlog")
	require.NoError(t, err)

	return &goalFixture{
		e:        e,
		owner:    owner,
		writer:   writer,
		reader:   reader,
		board:    board,
		category: category,
	}
}

func TestGoalCreateDefaultsAndRoles(t *testing.T) {
	f := newGoalFixture(t)

	goal, err := f.e.goals.Create(f.writer.ID, service.GoalInput{
		CategoryID: f.category.ID,
		Title:      "write report",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusToDo, goal.Status)
	assert.Equal(t, model.PriorityMedium, goal.Priority)
	assert.Equal(t, f.board.ID, goal.BoardID)

	// Readers cannot create; the failure is a validation error on the
	// category field, matching the API contract.
	_, err = f.e.goals.Create(f.reader.ID, service.GoalInput{
		CategoryID: f.category.ID,
		Title:      "sneaky goal",
	})
	verr, ok := apperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "category", verr.Field)
}

func TestGoalCreateRejectsDeletedCategory(t *testing.T) {
	f := newGoalFixture(t)

	err := f.e.categories.Delete(f.owner.ID, f.category.ID)
	require.NoError(t, err)

	_, err = f.e.goals.Create(f.owner.ID, service.GoalInput{
		CategoryID: f.category.ID,
		Title:      "too late",
	})
	verr, ok := apperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "category", verr.Field)
}

func TestGoalVisibilityFollowsBoard(t *testing.T) {
	f := newGoalFixture(t)
	outsider := f.e.user(t, "dave")

	goal, err := f.e.goals.Create(f.owner.ID, service.GoalInput{
		CategoryID: f.category.ID,
		Title:      "write report",
	})
	require.NoError(t, err)

	got, err := f.e.goals.ByID(f.reader.ID, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, goal.ID, got.ID)

	_, err = f.e.goals.ByID(outsider.ID, goal.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	goals, err := f.e.goals.List(outsider.ID)
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestGoalUpdateCannotMoveAcrossBoards(t *testing.T) {
	f := newGoalFixture(t)

	otherBoard, err := f.e.boards.Create(f.owner.ID, "personal")
	require.NoError(t, err)
	otherCategory, err := f.e.categories.Create(f.owner.ID, otherBoard.ID, "chores")
	require.NoError(t, err)

	goal, err := f.e.goals.Create(f.owner.ID, service.GoalInput{
		CategoryID: f.category.ID,
		Title:      "write report",
	})
	require.NoError(t, err)

	_, err = f.e.goals.Update(f.owner.ID, goal.ID, service.GoalInput{
		CategoryID: otherCategory.ID,
		Title:      "write report",
	})
	verr, ok := apperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "category", verr.Field)

	// Moving within the board is fine.
	sameBoardCategory, err := f.e.categories.Create(f.owner.ID, f.board.ID, "sprint")
	require.NoError(t, err)

	updated, err := f.e.goals.Update(f.owner.ID, goal.ID, service.GoalInput{
		CategoryID: sameBoardCategory.ID,
		Title:      "write report",
	})
	require.NoError(t, err)
	assert.Equal(t, sameBoardCategory.ID, updated.CategoryID)
}

func TestGoalUpdateForbiddenForReader(t *testing.T) {
	f := newGoalFixture(t)

	goal, err := f.e.goals.Create(f.owner.ID, service.GoalInput{
		CategoryID: f.category.ID,
		Title:      "write report",
	})
	require.NoError(t, err)

	_, err = f.e.goals.Update(f.reader.ID, goal.ID, service.GoalInput{
		Title: "renamed",
	})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	err = f.e.goals.Delete(f.reader.ID, goal.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestGoalDeleteArchives(t *testing.T) {
	f := newGoalFixture(t)

	goal, err := f.e.goals.Create(f.owner.ID, service.GoalInput{
		CategoryID: f.category.ID,
		Title:      "write report",
	})
	require.NoError(t, err)

	err = f.e.goals.Delete(f.owner.ID, goal.ID)
	require.NoError(t, err)

	// The row survives with archived status but drops out of listings.
	stored, err := f.e.goalRepo.ByID(goal.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusArchived, stored.Status)

	goals, err := f.e.goals.List(f.owner.ID)
	require.NoError(t, err)
	assert.Empty(t, goals)
}
