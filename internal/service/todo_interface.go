package service

import (
	"context"

	"todoapp/internal/models/todo"
)

type TodoRepository interface {
	Create(context.Context, *todo.Todo) error
	List(context.Context) ([]*todo.Todo, error)
	GetByID(context.Context, uint) (*todo.Todo, error)
	Update(context.Context, *todo.Todo) error
	Delete(context.Context, uint) error
	HealthCheck(context.Context) error
}
