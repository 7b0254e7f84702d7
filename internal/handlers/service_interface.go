package handlers

import (
	"context"

	"todoapp/internal/models/todo"
)

type Service interface {
	HealthCheck(context.Context) error
	Create(context.Context, string) (*todo.Todo, error)
	List(context.Context) ([]*todo.Todo, error)
	GetByID(context.Context, uint) (*todo.Todo, error)
	Update(context.Context, uint, ...todo.TodoOption) (*todo.Todo, error)
	Toggle(context.Context, uint) (*todo.Todo, error)
	Delete(context.Context, uint) error
}
