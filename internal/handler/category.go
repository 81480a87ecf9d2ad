package handler

import (
	"net/http"

	"github.com/EvgrafovDR/todolist-clone/internal/ctxkeys"
	"github.com/EvgrafovDR/todolist-clone/internal/model"
	"github.com/EvgrafovDR/todolist-clone/internal/service"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

type categoryCreateRequest struct {
	Board string `json:"board" validate:"required"`
	Title string `json:"title" validate:"required,max=255"`
}

type categoryUpdateRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req categoryCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	category, err := h.categoryService.Create(user.ID, req.Board, req.Title)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	categories, err := h.categoryService.List(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	if categories == nil {
		categories = []*model.GoalCategory{}
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	category, err := h.categoryService.ByID(user.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req categoryUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	category, err := h.categoryService.Update(user.ID, r.PathValue("id"), req.Title)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.categoryService.Delete(user.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{})
}
