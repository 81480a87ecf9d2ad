package handler

import (
	"net/http"
	"time"

	"github.com/EvgrafovDR/todolist-clone/internal/ctxkeys"
	"github.com/EvgrafovDR/todolist-clone/internal/model"
	"github.com/EvgrafovDR/todolist-clone/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

type goalRequest struct {
	Category    string  `json:"category"`
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Status      int     `json:"status" validate:"omitempty,min=1,max=4"`
	Priority    int     `json:"priority" validate:"omitempty,min=1,max=4"`
}

func (req *goalRequest) toInput() service.GoalInput {
	in := service.GoalInput{
		CategoryID:  req.Category,
		Title:       req.Title,
		Description: req.Description,
		Status:      model.GoalStatus(req.Status),
		Priority:    model.GoalPriority(req.Priority),
	}
	if req.DueDate != nil {
		// Format already checked by the datetime validation tag
		due, err := time.Parse("2006-01-02", *req.DueDate)
		if err == nil {
			in.DueDate = &due
		}
	}
	return in
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req goalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	goal, err := h.goalService.Create(user.ID, req.toInput())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goals, err := h.goalService.List(user.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	if goals == nil {
		goals = []*model.Goal{}
	}
	respondJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goal, err := h.goalService.ByID(user.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req goalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	goal, err := h.goalService.Update(user.ID, r.PathValue("id"), req.toInput())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.goalService.Delete(user.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{})
}
