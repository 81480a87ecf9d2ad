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

// ParticipantInput is a desired participant entry on board update, keyed by
// username like the API payload.
type ParticipantInput struct {
	Username string
	Role     model.Role
}

type BoardService struct {
	boardRepository repository.BoardRepository
	userRepository  repository.UserRepository
	checker         *access.Checker
}

func NewBoardService(
	boardRepository repository.BoardRepository,
	userRepository repository.UserRepository,
	checker *access.Checker,
) *BoardService {
	return &BoardService{
		boardRepository: boardRepository,
		userRepository:  userRepository,
		checker:         checker,
	}
}

// Create inserts the board together with an owner participant row for the
// creator, in one transaction.
func (s *BoardService) Create(userID, title string) (*model.Board, error) {
	now := time.Now()
	board := &model.Board{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	owner := &model.BoardParticipant{
		ID:        uuid.New().String(),
		BoardID:   board.ID,
		UserID:    userID,
		Role:      model.RoleOwner,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.boardRepository.CreateWithOwner(board, owner)
	if err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}

	return board, nil
}

func (s *BoardService) List(userID string) ([]*model.Board, error) {
	return s.boardRepository.ForUser(userID)
}

// ByID returns the board with its participants. A board that does not exist,
// is soft-deleted, or is not visible to the principal answers identically
// with ErrNotFound.
func (s *BoardService) ByID(userID, boardID string) (*model.Board, []*model.BoardParticipant, error) {
	board, err := s.visibleBoard(userID, boardID)
	if err != nil {
		return nil, nil, err
	}

	participants, err := s.boardRepository.Participants(boardID)
	if err != nil {
		return nil, nil, err
	}

	return board, participants, nil
}

// Update reconciles the board's participant set against the desired one and
// updates the title, all in a single transaction. The acting owner's own
// membership is immutable through this path.
func (s *BoardService) Update(userID, boardID, title string, desired []ParticipantInput) (*model.Board, []*model.BoardParticipant, error) {
	board, err := s.visibleBoard(userID, boardID)
	if err != nil {
		return nil, nil, err
	}

	allowed, err := s.checker.Allowed(userID, access.ActionWrite, access.KindBoard, board)
	if err != nil {
		return nil, nil, err
	}
	if !allowed {
		return nil, nil, apperr.ErrForbidden
	}

	resolved, err := s.resolveParticipants(userID, desired)
	if err != nil {
		return nil, nil, err
	}

	current, err := s.boardRepository.Participants(boardID)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	diff := diffParticipants(boardID, userID, current, resolved, now)

	board.Title = title
	board.UpdatedAt = now

	err = s.boardRepository.ApplyUpdate(board, diff)
	if err != nil {
		return nil, nil, fmt.Errorf("apply board update: %w", err)
	}

	participants, err := s.boardRepository.Participants(boardID)
	if err != nil {
		return nil, nil, err
	}

	return board, participants, nil
}

// Delete soft-deletes the board. Owner only.
func (s *BoardService) Delete(userID, boardID string) error {
	board, err := s.visibleBoard(userID, boardID)
	if err != nil {
		return err
	}

	allowed, err := s.checker.Allowed(userID, access.ActionWrite, access.KindBoard, board)
	if err != nil {
		return err
	}
	if !allowed {
		return apperr.ErrForbidden
	}

	board.UpdatedAt = time.Now()
	return s.boardRepository.SoftDelete(board)
}

func (s *BoardService) visibleBoard(userID, boardID string) (*model.Board, error) {
	board, err := s.boardRepository.ByID(boardID)
	if err != nil {
		if errors.Is(err, repository.ErrBoardNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if board.IsDeleted {
		return nil, apperr.ErrNotFound
	}

	allowed, err := s.checker.Allowed(userID, access.ActionRead, access.KindBoard, board)
	if err != nil {
		return nil, err
	}
	if !allowed {
		// Indistinguishable from a missing board to avoid existence leakage.
		return nil, apperr.ErrNotFound
	}

	return board, nil
}

type resolvedParticipant struct {
	userID string
	role   model.Role
}

// resolveParticipants maps usernames to user ids and enforces the editable
// role set. It fails before any write happens.
func (s *BoardService) resolveParticipants(ownerID string, desired []ParticipantInput) ([]resolvedParticipant, error) {
	if len(desired) == 0 {
		return nil, nil
	}

	usernames := make([]string, 0, len(desired))
	for _, d := range desired {
		if !d.Role.Editable() {
			return nil, apperr.Validation("participants", "role must be writer or reader")
		}
		usernames = append(usernames, d.Username)
	}

	users, err := s.userRepository.ByUsernames(usernames)
	if err != nil {
		return nil, err
	}

	byUsername := make(map[string]*model.User, len(users))
	for _, u := range users {
		byUsername[u.Username] = u
	}

	resolved := make([]resolvedParticipant, 0, len(desired))
	for _, d := range desired {
		user, ok := byUsername[d.Username]
		if !ok {
			return nil, apperr.Validation("participants", fmt.Sprintf("unknown user %q", d.Username))
		}
		if user.ID == ownerID {
			return nil, apperr.Validation("participants", "board owner cannot be reassigned")
		}
		resolved = append(resolved, resolvedParticipant{userID: user.ID, role: d.Role})
	}

	return resolved, nil
}

// diffParticipants computes the change set between the board's current
// participants (minus the acting owner) and the desired set: rows missing
// from desired are removed, rows with a differing role are updated, and
// unmatched desired entries become inserts. Running it twice with the same
// desired set yields an empty diff the second time.
func diffParticipants(boardID, ownerID string, current []*model.BoardParticipant, desired []resolvedParticipant, now time.Time) repository.ParticipantDiff {
	desiredRoles := make(map[string]model.Role, len(desired))
	for _, d := range desired {
		desiredRoles[d.userID] = d.role
	}

	var diff repository.ParticipantDiff
	for _, p := range current {
		if p.UserID == ownerID {
			continue
		}

		role, ok := desiredRoles[p.UserID]
		if !ok {
			diff.RemoveUserIDs = append(diff.RemoveUserIDs, p.UserID)
			continue
		}
		if p.Role != role {
			diff.UpdateRoles = append(diff.UpdateRoles, model.BoardParticipant{
				BoardID:   boardID,
				UserID:    p.UserID,
				Role:      role,
				UpdatedAt: now,
			})
		}
		delete(desiredRoles, p.UserID)
	}

	for _, d := range desired {
		role, ok := desiredRoles[d.userID]
		if !ok {
			continue
		}
		diff.Add = append(diff.Add, model.BoardParticipant{
			ID:        uuid.New().String(),
			BoardID:   boardID,
			UserID:    d.userID,
			Role:      role,
			CreatedAt: now,
			UpdatedAt: now,
		})
		delete(desiredRoles, d.userID)
	}

	return diff
}
