package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Drivers de banco suportados
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config contém todas as configurações da aplicação
type Config struct {
	Env       string
	Server    ServerConfig
	Database  DatabaseConfig
	Logging   LoggingConfig
	CORS      CORSConfig
	I18n      I18nConfig
	Telemetry TelemetryConfig
}

type ServerConfig struct {
	Port    string
	Host    string
	BaseURL string // URL base da API para construir URIs RFC 7807
}

// Addr retorna o endereço host:port de escuta
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

type DatabaseConfig struct {
	Driver        string
	Host          string
	Port          int
	User          string
	Password      string
	DBName        string
	SSLMode       string
	Path          string // arquivo sqlite quando Driver == "sqlite"
	MaxConns      int
	MinConns      int
	MaxIdleTime   time.Duration
	SlowThreshold time.Duration
}

type LoggingConfig struct {
	Level string
}

type CORSConfig struct {
	AllowedOrigins string
}

// Origins retorna a lista de origens permitidas já normalizada
func (c CORSConfig) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

type I18nConfig struct {
	DefaultLanguage string
}

type TelemetryConfig struct {
	Endpoint    string // vazio desativa o tracing
	ServiceName string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", "8080")
	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "cwsite")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_PATH", "cwsite.db")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("DB_MAX_IDLE_TIME", 300)
	v.SetDefault("DB_SLOW_QUERY_MS", 200)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("DEFAULT_LANGUAGE", "en")
	v.SetDefault("OTEL_SERVICE_NAME", "cwsite-users")
}

// Load carrega as configurações do ambiente
// Um arquivo .env no diretório atual é opcional e não sobrescreve variáveis já definidas
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom carrega as configurações usando envFile como fonte opcional
func LoadFrom(envFile string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	config := &Config{
		Env: v.GetString("ENV"),
		Server: ServerConfig{
			Port:    v.GetString("PORT"),
			Host:    v.GetString("HOST"),
			BaseURL: strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
		},
		Database: DatabaseConfig{
			Driver:        strings.ToLower(v.GetString("DB_DRIVER")),
			Host:          v.GetString("DB_HOST"),
			Port:          v.GetInt("DB_PORT"),
			User:          v.GetString("DB_USER"),
			Password:      v.GetString("DB_PASS"),
			DBName:        v.GetString("DB_NAME"),
			SSLMode:       v.GetString("DB_SSL_MODE"),
			Path:          v.GetString("DB_PATH"),
			MaxConns:      v.GetInt("DB_MAX_CONNS"),
			MinConns:      v.GetInt("DB_MIN_CONNS"),
			MaxIdleTime:   time.Duration(v.GetInt("DB_MAX_IDLE_TIME")) * time.Second,
			SlowThreshold: time.Duration(v.GetInt("DB_SLOW_QUERY_MS")) * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetString("CORS_ALLOWED_ORIGINS"),
		},
		I18n: I18nConfig{
			DefaultLanguage: v.GetString("DEFAULT_LANGUAGE"),
		},
		Telemetry: TelemetryConfig{
			Endpoint:    v.GetString("OTEL_ENDPOINT"),
			ServiceName: v.GetString("OTEL_SERVICE_NAME"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate verifica combinações inválidas de configuração
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("PORT must not be empty")
	}

	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	if c.Database.MaxConns < 1 {
		return errors.New("DB_MAX_CONNS must be at least 1")
	}

	return nil
}

// DSN retorna a connection string do PostgreSQL no formato chave/valor do libpq
// Valores vão entre aspas simples para aceitar vazios, espaços e aspas
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		quoteDSNValue(d.Host), d.Port, quoteDSNValue(d.User), quoteDSNValue(d.Password),
		quoteDSNValue(d.DBName), quoteDSNValue(d.SSLMode),
	)
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func quoteDSNValue(v string) string {
	return "'" + dsnEscaper.Replace(v) + "'"
}
