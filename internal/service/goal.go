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

// GoalInput carries the mutable goal fields. Status and Priority fall back
// to to_do/medium when zero.
type GoalInput struct {
	CategoryID  string
	Title       string
	Description *string
	DueDate     *time.Time
	Status      model.GoalStatus
	Priority    model.GoalPriority
}

type GoalService struct {
	goalRepository     repository.GoalRepository
	categoryRepository repository.CategoryRepository
	checker            *access.Checker
}

func NewGoalService(
	goalRepository repository.GoalRepository,
	categoryRepository repository.CategoryRepository,
	checker *access.Checker,
) *GoalService {
	return &GoalService{
		goalRepository:     goalRepository,
		categoryRepository: categoryRepository,
		checker:            checker,
	}
}

func (s *GoalService) Create(userID string, in GoalInput) (*model.Goal, error) {
	category, err := s.writableCategory(userID, in.CategoryID)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == 0 {
		status = model.StatusToDo
	}
	priority := in.Priority
	if priority == 0 {
		priority = model.PriorityMedium
	}
	if !status.Valid() {
		return nil, apperr.Validation("status", "invalid status")
	}
	if !priority.Valid() {
		return nil, apperr.Validation("priority", "invalid priority")
	}

	now := time.Now()
	goal := &model.Goal{
		ID:          uuid.New().String(),
		CategoryID:  category.ID,
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      status,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
		BoardID:     category.BoardID,
	}

	err = s.goalRepository.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}

	return goal, nil
}

func (s *GoalService) ByID(userID, goalID string) (*model.Goal, error) {
	return s.visibleGoal(userID, goalID)
}

func (s *GoalService) List(userID string) ([]*model.Goal, error) {
	return s.goalRepository.ForUser(userID)
}

func (s *GoalService) Update(userID, goalID string, in GoalInput) (*model.Goal, error) {
	goal, err := s.visibleGoal(userID, goalID)
	if err != nil {
		return nil, err
	}

	err = s.requireWrite(userID, goal)
	if err != nil {
		return nil, err
	}

	if in.CategoryID != "" && in.CategoryID != goal.CategoryID {
		target, err := s.writableCategory(userID, in.CategoryID)
		if err != nil {
			return nil, err
		}
		// A goal may only move between categories on the same board.
		if target.BoardID != goal.BoardID {
			return nil, apperr.Validation("category", "moving between boards is not allowed")
		}
		goal.CategoryID = target.ID
	}

	if in.Status != 0 {
		if !in.Status.Valid() {
			return nil, apperr.Validation("status", "invalid status")
		}
		goal.Status = in.Status
	}
	if in.Priority != 0 {
		if !in.Priority.Valid() {
			return nil, apperr.Validation("priority", "invalid priority")
		}
		goal.Priority = in.Priority
	}

	goal.Title = in.Title
	goal.Description = in.Description
	goal.DueDate = in.DueDate
	goal.UpdatedAt = time.Now()

	err = s.goalRepository.Update(goal)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// Delete archives the goal instead of removing the row; archived goals drop
// out of listings.
func (s *GoalService) Delete(userID, goalID string) error {
	goal, err := s.visibleGoal(userID, goalID)
	if err != nil {
		return err
	}

	err = s.requireWrite(userID, goal)
	if err != nil {
		return err
	}

	goal.Status = model.StatusArchived
	goal.UpdatedAt = time.Now()
	return s.goalRepository.Update(goal)
}

// writableCategory validates a category reference on goal create/move the
// way the legacy serializer did: failures surface as validation errors on
// the "category" field.
func (s *GoalService) writableCategory(userID, categoryID string) (*model.GoalCategory, error) {
	if categoryID == "" {
		return nil, apperr.Validation("category", "category is required")
	}

	category, err := s.categoryRepository.ByID(categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, apperr.Validation("category", "category does not exist")
		}
		return nil, err
	}
	if category.IsDeleted {
		return nil, apperr.Validation("category", "not allowed in a deleted category")
	}

	allowed, err := s.checker.Allowed(userID, access.ActionWrite, access.KindGoal, category)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperr.Validation("category", "you must be the owner or a writer of the board")
	}

	return category, nil
}

func (s *GoalService) visibleGoal(userID, goalID string) (*model.Goal, error) {
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

	return goal, nil
}

func (s *GoalService) requireWrite(userID string, goal *model.Goal) error {
	allowed, err := s.checker.Allowed(userID, access.ActionWrite, access.KindGoal, goal)
	if err != nil {
		return err
	}
	if !allowed {
		return apperr.ErrForbidden
	}
	return nil
}
