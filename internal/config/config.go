// Load envs from .env
// Load YAML config
// Apply env overrides
// Provide default values

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	//Search criteria
	Query    string `yaml:"query"`
	MaxPosts int    `yaml:"max_posts"`

	//Paths
	OutputPath       string `yaml:"output_path"`
	StorageStatePath string `yaml:"storage_state_path"`

	Headless bool `yaml:"headless"`

	//Credentials come from env only, never from the yaml file
	Email    string `yaml:"-"`
	Password string `yaml:"-"`

	//Local LLM endpoint
	OllamaURL        string `yaml:"ollama_url"`
	OllamaModel      string `yaml:"ollama_model"`
	OllamaTimeoutSec int    `yaml:"ollama_timeout_sec"`

	//Pacing & termination tuning
	ScrollDelayMinMs int `yaml:"scroll_delay_min_ms"`
	ScrollDelayMaxMs int `yaml:"scroll_delay_max_ms"`
	LLMDelayMinMs    int `yaml:"llm_delay_min_ms"`
	LLMDelayMaxMs    int `yaml:"llm_delay_max_ms"`
	StagnationLimit  int `yaml:"stagnation_limit"`

	//Optional Telegram reporting
	TelegramToken  string `yaml:"telegram_token"`
	TelegramChatID int64  `yaml:"telegram_chat_id"`
}

func defaults() *Config {
	return &Config{
		Query:            "Data Analyst hiring",
		MaxPosts:         40,
		OutputPath:       "linkedin_data_analyst_posts.csv",
		StorageStatePath: "storage_state.json",
		Headless:         true,
		OllamaURL:        "http://localhost:11434",
		OllamaModel:      "llama3",
		OllamaTimeoutSec: 60,
		ScrollDelayMinMs: 800,
		ScrollDelayMaxMs: 1600,
		LLMDelayMinMs:    800,
		LLMDelayMaxMs:    1500,
		StagnationLimit:  5,
	}
}

func Load() *Config {
	_ = godotenv.Load()

	//Start from defaults; yaml only overrides the keys it sets
	cfg := defaults()

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Printf("Warning: Could not read config.yaml: %v", err)
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		log.Fatalf("Error parsing config.yaml: %v", err)
	}

	//Override with env vars
	cfg.Email = os.Getenv("LINKEDIN_EMAIL")
	cfg.Password = os.Getenv("LINKEDIN_PASSWORD")

	if v := os.Getenv("OLLAMA_HOST"); v != "" {
		cfg.OllamaURL = v
	}
	if v := os.Getenv("OLLAMA_MODEL"); v != "" {
		cfg.OllamaModel = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.TelegramToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.Printf("Warning: invalid TELEGRAM_CHAT_ID %q: %v", v, err)
		} else {
			cfg.TelegramChatID = id
		}
	}

	//Sanitize tuning values so the collector always terminates
	if cfg.MaxPosts <= 0 {
		cfg.MaxPosts = 40
	}
	if cfg.StagnationLimit <= 0 {
		cfg.StagnationLimit = 5
	}
	if cfg.ScrollDelayMaxMs < cfg.ScrollDelayMinMs {
		cfg.ScrollDelayMaxMs = cfg.ScrollDelayMinMs
	}
	if cfg.LLMDelayMaxMs < cfg.LLMDelayMinMs {
		cfg.LLMDelayMaxMs = cfg.LLMDelayMinMs
	}
	if cfg.OllamaTimeoutSec <= 0 {
		cfg.OllamaTimeoutSec = 60
	}

	return cfg
}
