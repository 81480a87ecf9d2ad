package handler

import (
	"net/http"

	"github.com/EvgrafovDR/todolist-clone/internal/ctxkeys"
	"github.com/EvgrafovDR/todolist-clone/internal/model"
	"github.com/EvgrafovDR/todolist-clone/internal/service"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type commentCreateRequest struct {
	Goal string `json:"goal" validate:"required"`
	Text string `json:"text" validate:"required"`
}

type commentUpdateRequest struct {
	Text string `json:"text" validate:"required"`
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req commentCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.commentService.Create(user.ID, req.Goal, req.Text)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, comment)
}

// List requires a goal filter and returns its comments newest first.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goalID := r.URL.Query().Get("goal")
	if goalID == "" {
		respondFieldError(w, "goal", "this field is required")
		return
	}

	comments, err := h.commentService.ListForGoal(user.ID, goalID)
	if err != nil {
		respondError(w, err)
		return
	}

	if comments == nil {
		comments = []*model.GoalComment{}
	}
	respondJSON(w, http.StatusOK, comments)
}

func (h *CommentHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	comment, err := h.commentService.ByID(user.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, comment)
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req commentUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.commentService.Update(user.ID, r.PathValue("id"), req.Text)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, comment)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.commentService.Delete(user.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{})
}
