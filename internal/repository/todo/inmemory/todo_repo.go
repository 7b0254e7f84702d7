package inmemory

import (
	"context"
	"sync"
	"time"

	"todoapp/internal/models/todo"
	repo "todoapp/internal/repository"
)

// TodoStorage — хранилище в памяти, порядок создания сохраняется в ids.
type TodoStorage struct {
	storage map[uint]*todo.Todo
	ids     []uint
	nextID  uint
	mtx     *sync.RWMutex
}

func NewTodoStorage() *TodoStorage {
	return &TodoStorage{
		storage: make(map[uint]*todo.Todo),
		ids:     []uint{},
		nextID:  1,
		mtx:     &sync.RWMutex{},
	}
}

func (s *TodoStorage) Close() {}

func (s *TodoStorage) HealthCheck(ctx context.Context) error {
	return nil
}

func (s *TodoStorage) Create(ctx context.Context, todoToCreate *todo.Todo) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	todoToCreate.ID = s.nextID
	s.nextID++
	if todoToCreate.DateCreated.IsZero() {
		todoToCreate.DateCreated = time.Now()
	}

	stored := *todoToCreate
	s.storage[stored.ID] = &stored
	s.ids = append(s.ids, stored.ID)
	return nil
}

func (s *TodoStorage) List(ctx context.Context) ([]*todo.Todo, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]*todo.Todo, 0, len(s.ids))
	for _, id := range s.ids {
		stored := *s.storage[id]
		res = append(res, &stored)
	}
	return res, nil
}

func (s *TodoStorage) GetByID(ctx context.Context, id uint) (*todo.Todo, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	stored, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	found := *stored
	return &found, nil
}

func (s *TodoStorage) Update(ctx context.Context, todoToUpdate *todo.Todo) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	stored, ok := s.storage[todoToUpdate.ID]
	if !ok {
		return repo.ErrNotFound
	}

	// id и date_created не меняются
	stored.Content = todoToUpdate.Content
	stored.Completed = todoToUpdate.Completed
	return nil
}

func (s *TodoStorage) Delete(ctx context.Context, id uint) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return repo.ErrNotFound
	}

	delete(s.storage, id)
	for ind, val := range s.ids {
		if val == id {
			s.ids = append(s.ids[:ind], s.ids[ind+1:]...)
			break
		}
	}
	return nil
}
