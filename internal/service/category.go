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

type CategoryService struct {
	categoryRepository repository.CategoryRepository
	boardRepository    repository.BoardRepository
	checker            *access.Checker
}

func NewCategoryService(
	categoryRepository repository.CategoryRepository,
	boardRepository    repository.BoardRepository,
	checker *access.Checker,
) *CategoryService {
	return &CategoryService{
		categoryRepository: categoryRepository,
		boardRepository:    boardRepository,
		checker:            checker,
	}
}

// Create validates the board reference the way the legacy serializer did:
// failures on the referenced board surface as validation errors on the
// "board" field, including the role gate.
func (s *CategoryService) Create(userID, boardID, title string) (*model.GoalCategory, error) {
	board, err := s.boardRepository.ByID(boardID)
	if err != nil {
		if errors.Is(err, repository.ErrBoardNotFound) {
			return nil, apperr.Validation("board", "board does not exist")
		}
		return nil, err
	}
	if board.IsDeleted {
		return nil, apperr.Validation("board", "not allowed in a deleted board")
	}

	allowed, err := s.checker.Allowed(userID, access.ActionWrite, access.KindCategory, board)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperr.Validation("board", "you must be the owner or a writer of the board")
	}

	now := time.Now()
	category := &model.GoalCategory{
		ID:        uuid.New().String(),
		BoardID:   boardID,
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.categoryRepository.Create(category)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	return category, nil
}

func (s *CategoryService) ByID(userID, categoryID string) (*model.GoalCategory, error) {
	return s.visibleCategory(userID, categoryID)
}

func (s *CategoryService) List(userID string) ([]*model.GoalCategory, error) {
	return s.categoryRepository.ForUser(userID)
}

func (s *CategoryService) Update(userID, categoryID, title string) (*model.GoalCategory, error) {
	category, err := s.visibleCategory(userID, categoryID)
	if err != nil {
		return nil, err
	}

	err = s.requireWrite(userID, category)
	if err != nil {
		return nil, err
	}

	category.Title = title
	category.UpdatedAt = time.Now()

	err = s.categoryRepository.Update(category)
	if err != nil {
		return nil, err
	}

	return category, nil
}

func (s *CategoryService) Delete(userID, categoryID string) error {
	category, err := s.visibleCategory(userID, categoryID)
	if err != nil {
		return err
	}

	err = s.requireWrite(userID, category)
	if err != nil {
		return err
	}

	category.UpdatedAt = time.Now()
	return s.categoryRepository.SoftDelete(category)
}

func (s *CategoryService) visibleCategory(userID, categoryID string) (*model.GoalCategory, error) {
	category, err := s.categoryRepository.ByID(categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if category.IsDeleted {
		return nil, apperr.ErrNotFound
	}

	allowed, err := s.checker.Allowed(userID, access.ActionRead, access.KindCategory, category)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperr.ErrNotFound
	}

	return category, nil
}

func (s *CategoryService) requireWrite(userID string, category *model.GoalCategory) error {
	allowed, err := s.checker.Allowed(userID, access.ActionWrite, access.KindCategory, category)
	if err != nil {
		return err
	}
	if !allowed {
		return apperr.ErrForbidden
	}
	return nil
}
