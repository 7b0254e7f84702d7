package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"todoapp/internal/logger"
	"todoapp/internal/models/todo"
	repo "todoapp/internal/repository"

	"go.uber.org/zap"
)

// здесь происходит проверка правил бизнес-логики

type TodoService struct {
	repo TodoRepository
}

func NewTodoService(repo TodoRepository) TodoService {
	return TodoService{
		repo: repo,
	}
}

func (s *TodoService) HealthCheck(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		return fmt.Errorf("проверка здоровья сервиса: %w", err)
	}
	return nil
}

// Create создаёт запись; пустой content не сохраняется.
func (s *TodoService) Create(ctx context.Context, content string) (*todo.Todo, error) {
	if content == "" {
		logger.Warn("Service: Пустое содержимое записи")
		return nil, NewValidationError("content", "не может быть пустым")
	}

	newTodo := &todo.Todo{
		Content:     content,
		Completed:   false,
		DateCreated: time.Now(),
	}

	if err := s.repo.Create(ctx, newTodo); err != nil {
		return nil, fmt.Errorf("создание записи: %w", err)
	}
	return newTodo, nil
}

func (s *TodoService) List(ctx context.Context) ([]*todo.Todo, error) {
	todos, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение записей: %w", err)
	}
	return todos, nil
}

func (s *TodoService) GetByID(ctx context.Context, id uint) (*todo.Todo, error) {
	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: Запись не найдена", zap.Uint("target_id", id))
			return nil, NewNotFound(id)
		}
		return nil, fmt.Errorf("получение записи: %w", err)
	}
	return found, nil
}

// Update применяет опции к существующей записи; id и date_created не меняются.
func (s *TodoService) Update(ctx context.Context, id uint, options ...todo.TodoOption) (*todo.Todo, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: Запись не найдена", zap.Uint("target_id", id))
			return nil, NewNotFound(id)
		}
		return nil, fmt.Errorf("получение записи: %w", err)
	}

	for _, opt := range options {
		if opt != nil {
			opt(existing)
		}
	}

	if existing.Content == "" {
		logger.Warn("Service: Пустое содержимое записи", zap.Uint("target_id", id))
		return nil, NewValidationError("content", "не может быть пустым")
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewNotFound(id)
		}
		return nil, fmt.Errorf("обновление записи: %w", err)
	}
	return existing, nil
}

// Toggle переключает флаг completed.
func (s *TodoService) Toggle(ctx context.Context, id uint) (*todo.Todo, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: Запись не найдена", zap.Uint("target_id", id))
			return nil, NewNotFound(id)
		}
		return nil, fmt.Errorf("получение записи: %w", err)
	}

	return s.Update(ctx, id, todo.WithCompleted(!existing.Completed))
}

func (s *TodoService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: Запись не найдена", zap.Uint("target_id", id))
			return NewNotFound(id)
		}
		return fmt.Errorf("удаление записи: %w", err)
	}
	return nil
}
