package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskdock/taskdock-go/internal/middleware"
	"github.com/taskdock/taskdock-go/internal/model"
	"github.com/taskdock/taskdock-go/internal/service"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	service *service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{service: svc}
}

// HandleListTasks handles GET /task requests.
func (h *TaskHandler) HandleListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	tasks, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

// HandleGetTask handles GET /task/{id} requests. The path segment is
// overloaded: a valid object ID fetches that task, while "completed",
// "pending" or any other value selects the status filter.
func (h *TaskHandler) HandleGetTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	param := chi.URLParam(r, "id")
	if _, err := primitive.ObjectIDFromHex(param); err != nil {
		tasks, err := h.service.ListByStatus(r.Context(), userID, model.ParseStatusFilter(param))
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
			return
		}
		writeJSON(w, http.StatusOK, tasks)
		return
	}

	task, err := h.service.Get(r.Context(), userID, param)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// HandleAddTask handles POST /addtask requests.
func (h *TaskHandler) HandleAddTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.TaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	task, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

// HandleUpdateTask handles PUT /updatetask/{id} requests.
func (h *TaskHandler) HandleUpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.TaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeMutationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse("task updated successfully"))
}

// HandleDeleteTask handles DELETE /deletetask/{id} requests.
func (h *TaskHandler) HandleDeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeMutationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse("task deleted successfully"))
}

// HandleMarkCompleted handles PUT /markcompleted/{id} requests.
func (h *TaskHandler) HandleMarkCompleted(w http.ResponseWriter, r *http.Request) {
	h.setCompletion(w, r, true, "task marked as completed")
}

// HandleMarkIncomplete handles PUT /markincomplete/{id} requests.
func (h *TaskHandler) HandleMarkIncomplete(w http.ResponseWriter, r *http.Request) {
	h.setCompletion(w, r, false, "task marked as incomplete")
}

func (h *TaskHandler) setCompletion(w http.ResponseWriter, r *http.Request, completed bool, msg string) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	err := h.service.SetCompletion(r.Context(), userID, chi.URLParam(r, "id"), completed)
	if err != nil {
		h.writeMutationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse(msg))
}

func (h *TaskHandler) writeMutationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrBadTaskID):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
	}
}
