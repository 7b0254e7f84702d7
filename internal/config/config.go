package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Logging    LoggingConfig    `yaml:"logging"`
	Repository RepositoryConfig `yaml:"repository"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Host string `yaml:"host"`
}

type DatabaseConfig struct {
	// Путь к файлу SQLite относительно рабочего каталога.
	Path string `yaml:"path"`
}

type LoggingConfig struct {
	Development bool `yaml:"development"`
}

type RepositoryConfig struct {
	Type string `yaml:"type"` // "sqlite" или "inmemory"
}

// Load читает config.yml и применяет переопределения из окружения.
// Отсутствие файла не ошибка: работают значения по умолчанию.
func Load() (*Config, error) {
	cfg := &Config{
		Server:     ServerConfig{Port: "8080", Host: ""},
		Database:   DatabaseConfig{Path: "todo.db"},
		Repository: RepositoryConfig{Type: "sqlite"},
	}

	file, err := os.Open("config.yml")
	if err == nil {
		defer file.Close()
		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(cfg); err != nil {
			return nil, fmt.Errorf("ошибка парсинга config.yml: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("не могу открыть config.yml: %w", err)
	}

	if path := strings.TrimSpace(os.Getenv("DATABASE_PATH")); path != "" {
		cfg.Database.Path = path
	}
	if port := strings.TrimSpace(os.Getenv("SERVER_PORT")); port != "" {
		cfg.Server.Port = port
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
