package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"todoapp/internal/logger"
	"todoapp/internal/metrics"
	"todoapp/internal/models/todo"
	"todoapp/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	msgAddFailed    = "There was an issue adding your task"
	msgUpdateFailed = "There was an issue updating your task"
	msgDeleteFailed = "There was a problem deleting that task"
)

type TodoHandler struct {
	TodoService Service
}

func NewTodoHandler(todoService Service) TodoHandler {
	return TodoHandler{
		TodoService: todoService,
	}
}

// Index отдаёт список записей с формой создания.
func (h *TodoHandler) Index(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	todos, err := h.TodoService.List(r.Context())
	if err != nil {
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "list_todos"),
			zap.String("client_ip", r.RemoteAddr))
		renderErrorPage(w, http.StatusInternalServerError, "There was an issue loading your tasks")
		return
	}

	logger.Info("HTTP_OUT: Записи получены",
		zap.Int("count", len(todos)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	renderTemplate(w, http.StatusOK, "index.html", indexView{Todos: todos})
}

// CreateTodo создаёт запись из формы и делает redirect-after-post.
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if err := r.ParseForm(); err != nil {
		logger.Warn("HTTP: Ошибка чтения формы",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		renderErrorPage(w, http.StatusBadRequest, msgAddFailed)
		return
	}

	content := r.PostFormValue("content")

	logger.Info("HTTP: Вызов сервиса создания записи")
	created, err := h.TodoService.Create(r.Context(), content)
	if err != nil {
		var businessErr *service.BusinessError
		if errors.As(err, &businessErr) && businessErr.Code == "VALIDATION_ERROR" {
			logger.Warn("HTTP: Ошибка валидации",
				zap.String("field", "content"),
				zap.String("error", "empty_field"),
				zap.String("client_ip", r.RemoteAddr))
			h.renderIndexWithError(w, r, "Task content cannot be empty")
			return
		}

		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "create_todo"),
			zap.String("client_ip", r.RemoteAddr),
			zap.Duration("ms", time.Since(start)))
		renderErrorPage(w, http.StatusInternalServerError, msgAddFailed)
		return
	}

	metrics.TodosCreated.Inc()
	logger.Info("HTTP_OUT: Запись создана",
		zap.Uint("todo_id", created.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusSeeOther))

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// UpdateForm отдаёт форму редактирования записи.
func (h *TodoHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	found, err := h.TodoService.GetByID(r.Context(), id)
	if err != nil {
		if handleBusinessError(w, err, msgUpdateFailed) {
			return
		}
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "get_todo"),
			zap.String("client_ip", r.RemoteAddr))
		renderErrorPage(w, http.StatusInternalServerError, msgUpdateFailed)
		return
	}

	renderTemplate(w, http.StatusOK, "update.html", found)
}

// UpdateTodo обновляет content и completed, затем redirect на список.
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		logger.Warn("HTTP: Ошибка чтения формы",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		renderErrorPage(w, http.StatusBadRequest, msgUpdateFailed)
		return
	}

	content := r.PostFormValue("content")
	completed := r.PostFormValue("completed") != ""

	logger.Info("HTTP: Вызов сервиса обновления записи")
	updated, err := h.TodoService.Update(r.Context(), id,
		todo.WithContent(content),
		todo.WithCompleted(completed),
	)
	if err != nil {
		var businessErr *service.BusinessError
		if errors.As(err, &businessErr) && businessErr.Code == "VALIDATION_ERROR" {
			logger.Warn("HTTP: Ошибка валидации",
				zap.String("field", "content"),
				zap.String("error", "empty_field"),
				zap.String("client_ip", r.RemoteAddr))
			renderTemplate(w, http.StatusBadRequest, "update.html", &todo.Todo{ID: id, Content: content, Completed: completed})
			return
		}
		if handleBusinessError(w, err, msgUpdateFailed) {
			return
		}

		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "update_todo"),
			zap.String("client_ip", r.RemoteAddr),
			zap.Duration("ms", time.Since(start)))
		renderErrorPage(w, http.StatusInternalServerError, msgUpdateFailed)
		return
	}

	metrics.TodosUpdated.Inc()
	logger.Info("HTTP_OUT: Запись обновлена",
		zap.Uint("todo_id", updated.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusSeeOther))

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ToggleTodo переключает флаг completed и возвращает на список.
func (h *TodoHandler) ToggleTodo(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if _, err := h.TodoService.Toggle(r.Context(), id); err != nil {
		if handleBusinessError(w, err, msgUpdateFailed) {
			return
		}
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "toggle_todo"),
			zap.String("client_ip", r.RemoteAddr))
		renderErrorPage(w, http.StatusInternalServerError, msgUpdateFailed)
		return
	}

	metrics.TodosUpdated.Inc()
	logger.Info("HTTP_OUT: Флаг записи переключён",
		zap.Uint("todo_id", id),
		zap.Duration("ms", time.Since(start)))

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// DeleteTodo удаляет запись без возможности восстановления.
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	logger.Info("HTTP: Вызов сервиса удаления записи")
	if err := h.TodoService.Delete(r.Context(), id); err != nil {
		if handleBusinessError(w, err, msgDeleteFailed) {
			return
		}

		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "delete_todo"),
			zap.String("client_ip", r.RemoteAddr),
			zap.Duration("ms", time.Since(start)))
		renderErrorPage(w, http.StatusInternalServerError, msgDeleteFailed)
		return
	}

	metrics.TodosDeleted.Inc()
	logger.Info("HTTP_OUT: Запись удалена",
		zap.Uint("todo_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusSeeOther))

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *TodoHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	if err := h.TodoService.HealthCheck(r.Context()); err != nil {
		responseWithJSON(w, http.StatusServiceUnavailable,
			toPayload("service", "todoapp"),
			toPayload("status", "unavailable"),
		)
		return
	}

	responseWithJSON(w, http.StatusOK,
		toPayload("service", "todoapp"),
		toPayload("status", "ok"),
	)
}

// renderIndexWithError перерисовывает список с сообщением об ошибке валидации.
func (h *TodoHandler) renderIndexWithError(w http.ResponseWriter, r *http.Request, message string) {
	todos, err := h.TodoService.List(r.Context())
	if err != nil {
		logger.Error("HTTP: Ошибка Service", err, zap.String("operation", "list_todos"))
		renderErrorPage(w, http.StatusInternalServerError, msgAddFailed)
		return
	}
	renderTemplate(w, http.StatusBadRequest, "index.html", indexView{Todos: todos, Error: message})
}

// parseID читает {id} из пути; нечисловой id считается несуществующим.
func parseID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		logger.Warn("HTTP: Неверное значение id",
			zap.String("id", idParam),
			zap.String("client_ip", r.RemoteAddr))
		renderErrorPage(w, http.StatusNotFound, "Task not found")
		return 0, false
	}
	return uint(id), true
}
