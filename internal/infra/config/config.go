package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath файл конфигурации, если CONFIG_PATH не задан
const DefaultPath = "configs/values_examples.yaml"

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port string `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		Host        string `yaml:"host"`
		Port        string `yaml:"port"`
		User        string `yaml:"user"`
		Password    string `yaml:"password"`
		Name        string `yaml:"dbname"`
		AutoMigrate bool   `yaml:"auto_migrate"`
	} `yaml:"database"`
	Workflow struct {
		// AutoComplete завершает тест сразу после выдачи рекомендации
		AutoComplete bool `yaml:"auto_complete"`
	} `yaml:"workflow"`
	Report struct {
		Brand         string `yaml:"brand"`
		Compress      bool   `yaml:"compress"`
		FontDir       string `yaml:"font_dir"`
		ExportWorkers int    `yaml:"export_workers"`
	} `yaml:"report"`
}

// Path возвращает путь к файлу конфигурации из CONFIG_PATH или путь по умолчанию.
// Переменные из .env (если файл существует) загружаются до чтения окружения.
func Path() string {
	_ = godotenv.Load()
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return DefaultPath
}

func LoadConfig(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
			fmt.Println("f.Close() failed ", err)
		}
	}(f)

	config := &Config{}
	config.Server.Port = "8080"
	config.Report.Brand = "CareerPath"
	config.Report.Compress = true
	config.Report.ExportWorkers = 4
	if err := yaml.NewDecoder(f).Decode(config); err != nil {
		return nil, err
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyEnv переопределяет секреты и порт переменными окружения
func (c *Config) applyEnv() error {
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if _, err := strconv.Atoi(v); err != nil {
			return fmt.Errorf("invalid SERVER_PORT %q: %w", v, err)
		}
		c.Server.Port = v
	}
	if c.Report.ExportWorkers < 1 {
		c.Report.ExportWorkers = 1
	}
	return nil
}

// DSN строка подключения к PostgreSQL
func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Name)
}
