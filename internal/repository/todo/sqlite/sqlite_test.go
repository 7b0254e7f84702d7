package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"todoapp/internal/models/todo"
	"todoapp/internal/repository"
	"todoapp/internal/repository/todo/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) (*sqlite.Storage, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "todo_test.db")
	storage, err := sqlite.New(path)
	require.NoError(t, err)
	t.Cleanup(storage.Close)

	return storage, path
}

// TestStorage_New тестирует открытие базы и миграцию
func TestStorage_New(t *testing.T) {
	storage, _ := newTestStorage(t)
	assert.NotNil(t, storage)

	err := storage.HealthCheck(context.Background())
	assert.NoError(t, err)
}

// TestStorage_New_CreatesDir тестирует создание каталога для файла базы
func TestStorage_New_CreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "todo.db")
	storage, err := sqlite.New(path)
	require.NoError(t, err)
	storage.Close()
}

// TestStorage_Create тестирует создание записи
func TestStorage_Create(t *testing.T) {
	ctx := context.Background()
	storage, _ := newTestStorage(t)

	todoToCreate := &todo.Todo{Content: "Test Task"}
	err := storage.Create(ctx, todoToCreate)
	require.NoError(t, err)

	// Хранилище присвоило id и дату создания
	assert.NotZero(t, todoToCreate.ID)
	assert.False(t, todoToCreate.DateCreated.IsZero())

	retrieved, err := storage.GetByID(ctx, todoToCreate.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Task", retrieved.Content)
	assert.False(t, retrieved.Completed)
}

// TestStorage_GetByID тестирует получение несуществующей записи
func TestStorage_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	storage, _ := newTestStorage(t)

	_, err := storage.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// TestStorage_Update тестирует обновление записи
func TestStorage_Update(t *testing.T) {
	ctx := context.Background()
	storage, _ := newTestStorage(t)

	created := &todo.Todo{Content: "Original"}
	require.NoError(t, storage.Create(ctx, created))

	created.Content = "Updated"
	created.Completed = true
	require.NoError(t, storage.Update(ctx, created))

	retrieved, err := storage.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated", retrieved.Content)
	assert.True(t, retrieved.Completed)

	// date_created не изменился
	assert.WithinDuration(t, created.DateCreated, retrieved.DateCreated, time.Second)

	// Обновление несуществующей записи
	err = storage.Update(ctx, &todo.Todo{ID: 9999, Content: "x"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// TestStorage_Delete тестирует удаление и повторное удаление
func TestStorage_Delete(t *testing.T) {
	ctx := context.Background()
	storage, _ := newTestStorage(t)

	created := &todo.Todo{Content: "Task to delete"}
	require.NoError(t, storage.Create(ctx, created))

	require.NoError(t, storage.Delete(ctx, created.ID))

	_, err := storage.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = storage.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// TestStorage_List тестирует порядок по date_created
func TestStorage_List(t *testing.T) {
	ctx := context.Background()
	storage, _ := newTestStorage(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		item := &todo.Todo{
			Content:     fmt.Sprintf("Task %d", i),
			DateCreated: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, storage.Create(ctx, item))
	}

	todos, err := storage.List(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 5)

	for i := 0; i < 5; i++ {
		assert.Equal(t, fmt.Sprintf("Task %d", i), todos[i].Content)
	}
	for i := 1; i < 5; i++ {
		assert.False(t, todos[i].DateCreated.Before(todos[i-1].DateCreated))
	}
}

// TestStorage_Reopen тестирует сохранность данных в файле
func TestStorage_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "todo_test.db")

	storage, err := sqlite.New(path)
	require.NoError(t, err)

	created := &todo.Todo{Content: "Persistent task"}
	require.NoError(t, storage.Create(ctx, created))
	storage.Close()

	reopened, err := sqlite.New(path)
	require.NoError(t, err)
	defer reopened.Close()

	todos, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "Persistent task", todos[0].Content)
}

// TestStorage_FailedStore тестирует отказ хранилища: предыдущие данные не теряются
func TestStorage_FailedStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "todo_test.db")

	storage, err := sqlite.New(path)
	require.NoError(t, err)

	created := &todo.Todo{Content: "Survivor"}
	require.NoError(t, storage.Create(ctx, created))

	// Имитация отказа хранилища: соединение закрыто
	storage.Close()

	err = storage.Create(ctx, &todo.Todo{Content: "Doomed"})
	assert.Error(t, err)

	err = storage.Update(ctx, &todo.Todo{ID: created.ID, Content: "Changed"})
	assert.Error(t, err)

	err = storage.Delete(ctx, created.ID)
	assert.Error(t, err)

	// Частичной записи не произошло
	reopened, err := sqlite.New(path)
	require.NoError(t, err)
	defer reopened.Close()

	todos, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "Survivor", todos[0].Content)
}
