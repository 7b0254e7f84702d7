package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"todoapp/internal/config"
	"todoapp/internal/handlers"
	"todoapp/internal/logger"
	"todoapp/internal/metrics"
	"todoapp/internal/middleware"
	"todoapp/internal/repository/todo/inmemory"
	"todoapp/internal/repository/todo/sqlite"
	"todoapp/internal/service"

	"github.com/go-chi/chi/v5"
)

// TodoStorage — репозиторий с закрытием соединения.
type TodoStorage interface {
	service.TodoRepository
	Close()
}

type App struct {
	config    *config.Config
	server    *http.Server
	router    *chi.Mux
	storage   TodoStorage
	shutdowns []func() // функции для graceful shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	storage, err := a.newStorage()
	if err != nil {
		return err
	}
	a.storage = storage
	a.shutdowns = append(a.shutdowns, storage.Close)

	todoService := service.NewTodoService(storage)
	todoHandler := handlers.NewTodoHandler(&todoService)

	a.router = newRouter(&todoHandler)
	a.server = &http.Server{
		Addr:              a.config.GetServerAddr(),
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return nil
}

func (a *App) newStorage() (TodoStorage, error) {
	switch a.config.Repository.Type {
	case "inmemory":
		return inmemory.NewTodoStorage(), nil
	case "sqlite", "":
		storage, err := sqlite.New(a.config.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("инициализация хранилища: %w", err)
		}
		return storage, nil
	default:
		return nil, fmt.Errorf("неизвестный тип репозитория: %q", a.config.Repository.Type)
	}
}

func newRouter(todoHandler *handlers.TodoHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)
	r.Use(middleware.RateLimit(300))

	r.Get("/", todoHandler.Index)
	r.Post("/", todoHandler.CreateTodo)

	r.Route("/update/{id}", func(r chi.Router) {
		r.Get("/", todoHandler.UpdateForm)
		r.Post("/", todoHandler.UpdateTodo)
	})

	r.Get("/delete/{id}", todoHandler.DeleteTodo)
	r.Post("/toggle/{id}", todoHandler.ToggleTodo)

	r.Get("/health", todoHandler.HealthCheck)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}

// Run запускает сервер и ждёт отмены контекста для graceful shutdown.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		logger.Info("Сервер запущен: " + a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.shutdown()
		return fmt.Errorf("работа сервера: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := a.server.Shutdown(shutdownCtx)
	a.shutdown()
	if err != nil {
		return fmt.Errorf("остановка сервера: %w", err)
	}
	return nil
}

func (a *App) shutdown() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}
