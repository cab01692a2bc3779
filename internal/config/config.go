package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Agent    AgentConfig
	LLM      LLMConfig
	Upload   UploadConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

// AgentConfig points at the hosted knowledge agent (Lyzr-style inference API).
type AgentConfig struct {
	APIKey  string
	BaseURL string
	UserID  string
}

// LLMConfig points at the OpenAI-compatible endpoint used for text
// extraction and response structuring.
type LLMConfig struct {
	APIKey         string
	BaseURL        string
	ExtractModel   string
	StructureModel string
}

type UploadConfig struct {
	MaxFileSizeMB int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Agent: AgentConfig{
			APIKey:  getEnv("AGENT_API_KEY", ""),
			BaseURL: getEnv("AGENT_BASE_URL", "https://agent-prod.studio.lyzr.ai"),
			UserID:  getEnv("AGENT_USER_ID", "knowledge-base@local"),
		},
		LLM: LLMConfig{
			APIKey:         getEnv("LLM_API_KEY", ""),
			BaseURL:        getEnv("LLM_BASE_URL", "https://api.groq.com/openai/v1"),
			ExtractModel:   getEnv("LLM_EXTRACT_MODEL", "llama-3.1-8b-instant"),
			StructureModel: getEnv("LLM_STRUCTURE_MODEL", "llama3-8b-8192"),
		},
		Upload: UploadConfig{
			MaxFileSizeMB: getEnvAsInt("UPLOAD_MAX_FILE_SIZE_MB", 10),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
