package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the bot configuration, read from the environment.
type Config struct {
	TelegramToken string `env:"TELEGRAM_BOT_TOKEN"`

	// Empty paths select the embedded defaults.
	CatalogPath    string `env:"TOTEMBOT_CATALOG"`
	CategoriesPath string `env:"TOTEMBOT_CATEGORIES"`
	AssetsDir      string `env:"TOTEMBOT_ASSETS_DIR"`

	LogFile  string `env:"TOTEMBOT_LOG_FILE"`
	LogLevel string `env:"TOTEMBOT_LOG_LEVEL" envDefault:"info"`
	Debug    bool   `env:"TOTEMBOT_DEBUG"`

	AnswerDelay time.Duration `env:"TOTEMBOT_ANSWER_DELAY" envDefault:"1s"`
	GuardianURL string        `env:"TOTEMBOT_GUARDIAN_URL" envDefault:"https://moscowzoo.ru/my-zoo/become-a-guardian/"`
}

// Load reads dotenv files (when present) into the process environment and then
// parses Config from it. Variables already set in the environment win over
// dotenv values.
func Load(dotenvFiles ...string) (Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, file := range dotenvFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}
	return Parse()
}

// Parse reads Config from the environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.AnswerDelay < 0 {
		return Config{}, fmt.Errorf("TOTEMBOT_ANSWER_DELAY must not be negative, got %s", cfg.AnswerDelay)
	}
	return cfg, nil
}

// RequireToken fails when no Telegram token is configured.
func (c Config) RequireToken() error {
	if c.TelegramToken == "" {
		return errors.New("TELEGRAM_BOT_TOKEN environment variable is required")
	}
	return nil
}
