package config

import (
	"flag"
	"fmt"
	"os"
	"regexp"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Хранилища, между которыми выбирает сервер при старте.
const (
	BackendTest       = "test"
	BackendProduction = "production"
)

type Config struct {
	// Server-side settings
	StorageBackend string `env:"STORAGE_BACKEND"`
	SQLitePath     string `env:"SQLITE_PATH"`
	DatabaseDSN    string `env:"DATABASE_URI"`
	DBHost         string `env:"DB_HOST"`
	DBPort         string `env:"DB_PORT"`
	DBUser         string `env:"DB_USER"`
	DBPassword     string `env:"DB_PASSWORD"`
	DBName         string `env:"DB_NAME"`
	DBSSLMode      string `env:"DB_SSLMODE"`
	RateLimitRPS   int    `env:"RATE_LIMIT_RPS"`
	RateLimitBurst int    `env:"RATE_LIMIT_BURST"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL string `env:"-"`
	Version   bool   `env:"-"` // show client version and exit (flag only)
}

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)

// NewConfig собирает конфигурацию: файл .env (или указанный через -config), переменные окружения, флаги.
func NewConfig() *Config {
	// -config ищем до flag.Parse, чтобы файл загрузился раньше env.Parse
	if path := configFileArg(os.Args[1:]); path != "" {
		_ = godotenv.Load(path)
	} else {
		_ = godotenv.Load()
	}

	cfg := &Config{}
	_ = env.Parse(cfg)

	var configFile string
	flag.StringVar(&configFile, "config", "", "путь к файлу конфигурации (.env)")
	// Server flags
	flag.StringVar(&cfg.StorageBackend, "storage", cfg.StorageBackend, "хранилище: test (SQLite-файл) или production (PostgreSQL)")
	flag.StringVar(&cfg.SQLitePath, "sqlite", cfg.SQLitePath, "путь к файлу SQLite для test-хранилища")
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к PostgreSQL")
	flag.IntVar(&cfg.RateLimitRPS, "rps", cfg.RateLimitRPS, "лимит запросов в секунду на клиента (0: без лимита)")
	// Shared flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "host:port сервера")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	// Client flags
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.StorageBackend != BackendProduction {
		c.StorageBackend = BackendTest
	}
	if c.SQLitePath == "" {
		c.SQLitePath = "test.db"
	}
	if c.DBHost == "" {
		c.DBHost = "localhost"
	}
	if c.DBPort == "" {
		c.DBPort = "5432"
	}
	if c.DBName == "" {
		c.DBName = "crowdfunding"
	}
	if c.DBSSLMode == "" {
		c.DBSSLMode = "disable"
	}
	if c.RateLimitRPS < 0 {
		c.RateLimitRPS = 0
	}
	if c.RateLimitBurst <= 0 {
		c.RateLimitBurst = c.RateLimitRPS
	}
	// BaseURL только в виде "address:port", иначе дефолт
	if !hostPortRe.MatchString(c.BaseURL) {
		c.BaseURL = "localhost:8000"
	}
	if c.EnableHTTPS {
		c.ServerURL = "https://" + c.BaseURL
	} else {
		c.ServerURL = "http://" + c.BaseURL
	}
}

// PostgresDSN возвращает DATABASE_URI либо собирает DSN из отдельных параметров.
func (c *Config) PostgresDSN() string {
	if c.DatabaseDSN != "" {
		return c.DatabaseDSN
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func configFileArg(args []string) string {
	for i, a := range args {
		switch {
		case (a == "-config" || a == "--config") && i+1 < len(args):
			return args[i+1]
		case len(a) > 8 && a[:8] == "-config=":
			return a[8:]
		case len(a) > 9 && a[:9] == "--config=":
			return a[9:]
		}
	}
	return ""
}
