package inmemory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"todoapp/internal/models/todo"
	"todoapp/internal/repository"
	"todoapp/internal/repository/todo/inmemory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTodoStorage_New тестирует создание хранилища
func TestTodoStorage_New(t *testing.T) {
	storage := inmemory.NewTodoStorage()
	assert.NotNil(t, storage)
}

// TestTodoStorage_HealthCheck тестирует проверку здоровья
func TestTodoStorage_HealthCheck(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTodoStorage()

	err := storage.HealthCheck(ctx)
	assert.NoError(t, err)
}

// TestTodoStorage_Create тестирует создание записи
func TestTodoStorage_Create(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTodoStorage()

	todoToCreate := &todo.Todo{Content: "Test Task"}

	err := storage.Create(ctx, todoToCreate)
	require.NoError(t, err)

	// Проверяем, что поля заполнены
	assert.NotZero(t, todoToCreate.ID)
	assert.False(t, todoToCreate.DateCreated.IsZero())
	assert.False(t, todoToCreate.Completed)

	// Проверяем, что запись сохранена
	retrieved, err := storage.GetByID(ctx, todoToCreate.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Task", retrieved.Content)
}

// TestTodoStorage_GetByID тестирует получение записи по ID
func TestTodoStorage_GetByID(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTodoStorage()

	todoToCreate := &todo.Todo{Content: "Test Get Task"}
	err := storage.Create(ctx, todoToCreate)
	require.NoError(t, err)

	retrieved, err := storage.GetByID(ctx, todoToCreate.ID)
	require.NoError(t, err)
	assert.Equal(t, todoToCreate.ID, retrieved.ID)
	assert.Equal(t, "Test Get Task", retrieved.Content)

	// Пытаемся получить несуществующую запись
	_, err = storage.GetByID(ctx, 9999)
	assert.Error(t, err)
	assert.Equal(t, repository.ErrNotFound, err)
}

// TestTodoStorage_Update тестирует обновление записи
func TestTodoStorage_Update(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTodoStorage()

	created := &todo.Todo{Content: "Original Content"}
	err := storage.Create(ctx, created)
	require.NoError(t, err)

	originalCreatedAt := created.DateCreated

	updated := &todo.Todo{ID: created.ID, Content: "Updated Content", Completed: true}
	err = storage.Update(ctx, updated)
	require.NoError(t, err)

	retrieved, err := storage.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated Content", retrieved.Content)
	assert.True(t, retrieved.Completed)

	// id и date_created не меняются
	assert.Equal(t, created.ID, retrieved.ID)
	assert.Equal(t, originalCreatedAt, retrieved.DateCreated)

	// Обновление несуществующей записи
	err = storage.Update(ctx, &todo.Todo{ID: 9999, Content: "x"})
	assert.Equal(t, repository.ErrNotFound, err)
}

// TestTodoStorage_Delete тестирует удаление записи
func TestTodoStorage_Delete(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTodoStorage()

	created := &todo.Todo{Content: "Task to delete"}
	err := storage.Create(ctx, created)
	require.NoError(t, err)

	err = storage.Delete(ctx, created.ID)
	require.NoError(t, err)

	_, err = storage.GetByID(ctx, created.ID)
	assert.Equal(t, repository.ErrNotFound, err)

	// Повторное удаление сообщает not found
	err = storage.Delete(ctx, created.ID)
	assert.Equal(t, repository.ErrNotFound, err)
}

// TestTodoStorage_List тестирует порядок выдачи записей
func TestTodoStorage_List(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTodoStorage()

	contents := []string{"First", "Second", "Third"}
	for _, content := range contents {
		err := storage.Create(ctx, &todo.Todo{Content: content})
		require.NoError(t, err)
	}

	todos, err := storage.List(ctx)
	require.NoError(t, err)
	require.Len(t, todos, len(contents))

	// Порядок создания сохраняется
	for i, content := range contents {
		assert.Equal(t, content, todos[i].Content)
	}

	// После удаления средней записи порядок остальных не меняется
	err = storage.Delete(ctx, todos[1].ID)
	require.NoError(t, err)

	todos, err = storage.List(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, "First", todos[0].Content)
	assert.Equal(t, "Third", todos[1].Content)
}

// TestTodoStorage_ConcurrentCreate тестирует конкурентное создание
func TestTodoStorage_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTodoStorage()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = storage.Create(ctx, &todo.Todo{Content: fmt.Sprintf("Task %d", i)})
		}(i)
	}
	wg.Wait()

	todos, err := storage.List(ctx)
	require.NoError(t, err)
	assert.Len(t, todos, 50)

	// ID уникальны
	seen := map[uint]bool{}
	for _, item := range todos {
		assert.False(t, seen[item.ID])
		seen[item.ID] = true
	}
}
