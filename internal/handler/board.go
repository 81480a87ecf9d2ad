package handler

import (
	"net/http"

	"github.com/EvgrafovDR/todolist-clone/internal/ctxkeys"
	"github.com/EvgrafovDR/todolist-clone/internal/model"
	"github.com/EvgrafovDR/todolist-clone/internal/service"
)

type BoardHandler struct {
	boardService *service.BoardService
}

func NewBoardHandler(boardService *service.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

type boardCreateRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}

type participantPayload struct {
	User string     `json:"user" validate:"required"`
	Role model.Role `json:"role" validate:"required"`
}

type boardUpdateRequest struct {
	Title        string               `json:"title" validate:"required,max=255"`
	Participants []participantPayload `json:"participants" validate:"dive"`
}

type boardResponse struct {
	*model.Board
	Participants []*model.BoardParticipant `json:"participants"`
}

func (h *BoardHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req boardCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	board, err := h.boardService.Create(user.ID, req.Title)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, board)
}

func (h *BoardHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	boards, err := h.boardService.List(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	if boards == nil {
		boards = []*model.Board{}
	}
	respondJSON(w, http.StatusOK, boards)
}

func (h *BoardHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	board, participants, err := h.boardService.ByID(user.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, boardResponse{Board: board, Participants: participants})
}

func (h *BoardHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req boardUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	desired := make([]service.ParticipantInput, 0, len(req.Participants))
	for _, p := range req.Participants {
		desired = append(desired, service.ParticipantInput{Username: p.User, Role: p.Role})
	}

	board, participants, err := h.boardService.Update(user.ID, r.PathValue("id"), req.Title, desired)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, boardResponse{Board: board, Participants: participants})
}

func (h *BoardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.boardService.Delete(user.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{})
}
