package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EvgrafovDR/todolist-clone/internal/apperr"
	"github.com/EvgrafovDR/todolist-clone/internal/service"
)

func TestCommentCreateGatesOnBoardRole(t *testing.T) {
	f := newGoalFixture(t)

	goal, err := f.e.goals.Create(f.owner.ID, service.GoalInput{
		CategoryID: f.category.ID,
		Title:      "write report",
	})
	require.NoError(t, err)

	comment, err := f.e.comments.Create(f.writer.ID, goal.ID, "looks good")
	require.NoError(t, err)
	assert.Equal(t, f.writer.ID, comment.UserID)

	_, err = f.e.comments.Create(f.reader.ID, goal.ID, "me too")
	verr, ok := apperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "goal", verr.Field)
}

func TestCommentListNewestFirst(t *testing.T) {
	f := newGoalFixture(t)

	goal, err := f.e.goals.Create(f.owner.ID, service.GoalInput{
		CategoryID: f.category.ID,
		Title:      "write report",
	})
	require.NoError(t, err)

	first, err := f.e.comments.Create(f.owner.ID, goal.ID, "first")
	require.NoError(t, err)
	second, err := f.e.comments.Create(f.owner.ID, goal.ID, "second")
	require.NoError(t, err)
	// Same-timestamp rows keep insertion order ambiguous, so only check
	// membership plus that readers can list.
	comments, err := f.e.comments.ListForGoal(f.reader.ID, goal.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	ids := []string{comments[0].ID, comments[1].ID}
	assert.ElementsMatch(t, []string{first.ID, second.ID}, ids)
}

func TestCommentMutationIsAuthorOnly(t *testing.T) {
	f := newGoalFixture(t)

	goal, err := f.e.goals.Create(f.owner.ID, service.GoalInput{
		CategoryID: f.category.ID,
		Title:      "write report",
	})
	require.NoError(t, err)

	comment, err := f.e.comments.Create(f.writer.ID, goal.ID, "draft")
	require.NoError(t, err)

	// The board owner is still not the author.
	_, err = f.e.comments.Update(f.owner.ID, comment.ID, "edited")
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	err = f.e.comments.Delete(f.owner.ID, comment.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	updated, err := f.e.comments.Update(f.writer.ID, comment.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)

	err = f.e.comments.Delete(f.writer.ID, comment.ID)
	require.NoError(t, err)

	comments, err := f.e.comments.ListForGoal(f.writer.ID, goal.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestCommentHiddenFromOutsiders(t *testing.T) {
	f := newGoalFixture(t)
	outsider := f.e.user(t, "dave")

	goal, err := f.e.goals.Create(f.owner.ID, service.GoalInput{
		CategoryID: f.category.ID,
		Title:      "write report",
	})
	require.NoError(t, err)

	comment, err := f.e.comments.Create(f.owner.ID, goal.ID, "private")
	require.NoError(t, err)

	_, err = f.e.comments.ByID(outsider.ID, comment.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = f.e.comments.ListForGoal(outsider.ID, goal.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
