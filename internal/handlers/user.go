package handlers

import (
	"Crowdfunding/internal/repo"
	"Crowdfunding/internal/service"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserHandler обрабатывает /user/*.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger}
}

type renameUserRequest struct {
	Name *string `json:"name"`
}

// Create регистрирует пользователя с именем из пути.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ok, err := h.UserService.AddUser(r.Context(), name)
	if err != nil {
		h.Logger.Errorw("add user failed", "name", name, "error", err)
		writeResult(w, ResultError)
		return
	}
	writeResult(w, resultOf(ok))
}

// Get возвращает {id, name}; для отсутствующего пользователя data = null.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	u, err := h.UserService.GetUser(r.Context(), name)
	if err != nil {
		h.Logger.Errorw("get user failed", "name", name, "error", err)
		writeData(w, ResultError, nil)
		return
	}
	if u == nil {
		writeData(w, ResultFailed, nil)
		return
	}
	writeData(w, ResultOK, u)
}

// Update переименовывает пользователя; новое имя в теле {"name": ...}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req renameUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == nil {
		h.Logger.Warnw("bad rename request", "name", name, "error", err)
		writeResult(w, ResultError)
		return
	}

	ok, err := h.UserService.UpdateUser(r.Context(), name, *req.Name)
	if err != nil {
		h.Logger.Errorw("update user failed", "name", name, "error", err)
		writeResult(w, ResultError)
		return
	}
	writeResult(w, resultOf(ok))
}

// Delete удаляет пользователя вместе с его кампаниями.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	ok, err := h.UserService.RemoveUser(r.Context(), name)
	if err != nil {
		h.Logger.Errorw("remove user failed", "name", name, "error", err)
		writeResult(w, ResultError)
		return
	}
	writeResult(w, resultOf(ok))
}

// List ищет пользователей по ?search=; без параметра возвращает всех.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	users, err := h.UserService.SearchUsers(r.Context(), search)
	if err != nil {
		h.Logger.Errorw("search users failed", "search", search, "error", err)
		writeResult(w, ResultError)
		return
	}
	if users == nil {
		users = []repo.UserRecord{}
	}
	writeData(w, ResultOK, users)
}
