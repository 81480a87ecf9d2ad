package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/EvgrafovDR/todolist-clone/internal/access"
	"github.com/EvgrafovDR/todolist-clone/internal/apperr"
	"github.com/EvgrafovDR/todolist-clone/internal/model"
	"github.com/EvgrafovDR/todolist-clone/internal/repository"
)

type CommentService struct {
	commentRepository repository.CommentRepository
	goalRepository    repository.GoalRepository
	checker           *access.Checker
}

func NewCommentService(
	commentRepository repository.CommentRepository,
	goalRepository repository.GoalRepository,
	checker *access.Checker,
) *CommentService {
	return &CommentService{
		commentRepository: commentRepository,
		goalRepository:    goalRepository,
		checker:           checker,
	}
}

// Create gates on the goal reference: the author must be owner or writer on
// the goal's board.
func (s *CommentService) Create(userID, goalID, text string) (*model.GoalComment, error) {
	goal, err := s.goalRepository.ByID(goalID)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			return nil, apperr.Validation("goal", "goal does not exist")
		}
		return nil, err
	}

	allowed, err := s.checker.Allowed(userID, access.ActionWrite, access.KindComment, goal)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperr.Validation("goal", "you must be the owner or a writer of the board")
	}

	now := time.Now()
	comment := &model.GoalComment{
		ID:        uuid.New().String(),
		GoalID:    goalID,
		UserID:    userID,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
		BoardID:   goal.BoardID,
	}

	err = s.commentRepository.Create(comment)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	return comment, nil
}

func (s *CommentService) ByID(userID, commentID string) (*model.GoalComment, error) {
	return s.visibleComment(userID, commentID)
}

// ListForGoal returns the goal's comments newest first, provided the goal is
// visible to the principal.
func (s *CommentService) ListForGoal(userID, goalID string) ([]*model.GoalComment, error) {
	goal, err := s.goalRepository.ByID(goalID)
	if err != nil {
		if errors.Is(err, repository.ErrGoalNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	allowed, err := s.checker.Allowed(userID, access.ActionRead, access.KindGoal, goal)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperr.ErrNotFound
	}

	return s.commentRepository.ForGoal(goalID)
}

// Update is author-only, independent of board role.
func (s *CommentService) Update(userID, commentID, text string) (*model.GoalComment, error) {
	comment, err := s.visibleComment(userID, commentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != userID {
		return nil, apperr.ErrForbidden
	}

	comment.Text = text
	comment.UpdatedAt = time.Now()

	err = s.commentRepository.Update(comment)
	if err != nil {
		return nil, err
	}

	return comment, nil
}

// Delete is author-only and removes the row.
func (s *CommentService) Delete(userID, commentID string) error {
	comment, err := s.visibleComment(userID, commentID)
	if err != nil {
		return err
	}

	if comment.UserID != userID {
		return apperr.ErrForbidden
	}

	return s.commentRepository.Delete(commentID)
}

func (s *CommentService) visibleComment(userID, commentID string) (*model.GoalComment, error) {
	comment, err := s.commentRepository.ByID(commentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	allowed, err := s.checker.Allowed(userID, access.ActionRead, access.KindComment, comment)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperr.ErrNotFound
	}

	return comment, nil
}
