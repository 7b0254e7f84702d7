package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"todoapp/internal/logger"
	"todoapp/internal/models/todo"
	repo "todoapp/internal/repository"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Storage struct {
	db *gorm.DB
}

// New открывает файл SQLite и применяет миграцию схемы.
func New(path string) (*Storage, error) {
	if path == "" {
		path = "todo.db"
	}

	if err := ensureDir(path); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.Error("Repository: Ошибка открытия базы данных", err, zap.String("path", path))
		return nil, fmt.Errorf("открытие базы: %w", err)
	}

	if err := db.AutoMigrate(&todo.Todo{}); err != nil {
		logger.Error("Repository: Ошибка миграции схемы", err)
		return nil, fmt.Errorf("миграция схемы: %w", err)
	}

	logger.Info("Repository: Успешное подключение к SQLite", zap.String("path", path))
	return &Storage{db: db}, nil
}

// ensureDir создаёт каталог для файла базы, если его ещё нет.
func ensureDir(path string) error {
	if strings.Contains(path, ":memory:") || strings.Contains(path, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(path, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("создание каталога %q: %w", dir, err)
	}
	return nil
}

func (s *Storage) Close() {
	sqlDB, err := s.db.DB()
	if err == nil {
		sqlDB.Close()
	}
	logger.Info("Repository: Закрытие соединения SQLite")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("получение соединения: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

func (s *Storage) Create(ctx context.Context, todoToCreate *todo.Todo) error {
	start := time.Now()

	if todoToCreate.DateCreated.IsZero() {
		todoToCreate.DateCreated = time.Now()
	}

	if err := s.db.WithContext(ctx).Create(todoToCreate).Error; err != nil {
		logger.Error("Repository: Не удалось добавить запись", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление записи: %w", err)
	}

	if time.Since(start) > time.Millisecond*50 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

// List возвращает все записи в порядке создания.
func (s *Storage) List(ctx context.Context) ([]*todo.Todo, error) {
	start := time.Now()

	todos := []*todo.Todo{}
	if err := s.db.WithContext(ctx).Order("date_created ASC, id ASC").Find(&todos).Error; err != nil {
		logger.Error("Repository: Не удалось получить записи", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение записей: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return todos, nil
}

func (s *Storage) GetByID(ctx context.Context, id uint) (*todo.Todo, error) {
	start := time.Now()

	found := &todo.Todo{}
	err := s.db.WithContext(ctx).First(found, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить запись", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение записи: %w", err)
	}

	if time.Since(start) > time.Millisecond*50 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return found, nil
}

func (s *Storage) Update(ctx context.Context, todoToUpdate *todo.Todo) error {
	start := time.Now()

	res := s.db.WithContext(ctx).Model(&todo.Todo{}).
		Where("id = ?", todoToUpdate.ID).
		Updates(map[string]interface{}{
			"content":   todoToUpdate.Content,
			"completed": todoToUpdate.Completed,
		})
	if res.Error != nil {
		logger.Error("Repository: Не удалось обновить запись", res.Error, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("обновление записи: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}

	if time.Since(start) > time.Millisecond*50 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, id uint) error {
	start := time.Now()

	res := s.db.WithContext(ctx).Delete(&todo.Todo{}, id)
	if res.Error != nil {
		logger.Error("Repository: Не удалось удалить запись", res.Error, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("удаление записи: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}

	if time.Since(start) > time.Millisecond*50 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return nil
}
