package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Line      LineConfig
	Keys      APIKeys
	Ai        AIConfig
	Retrieval RetrievalConfig
	Knowledge KnowledgeConfig
}

type AppConfig struct {
	Port             string
	Environment      string
	LogFilePath      string
	AdminJwtSecret   string
	InboundChatTopic string
}

type DatabaseConfig struct {
	Connection string
}

type LineConfig struct {
	ChannelSecret      string
	ChannelAccessToken string
	APIBaseURL         string
}

type APIKeys struct {
	GoogleGemini string
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string
	LLMModel          string
	Temperature       float64
	MaxOutputTokens   int
	MaxReplyLength    int
	MaxRetries        int
	RetryBaseDelay    time.Duration
}

// RetrievalConfig holds the distance metric and its paired threshold.
// The two must be tuned together: a euclidean threshold does not transfer
// to cosine space and vice versa.
type RetrievalConfig struct {
	Metric    string // "cosine" or "euclidean"
	Threshold float64
	TopK      int
}

type KnowledgeConfig struct {
	IngestCommandPrefix   string
	SeedFilePath          string
	AllowDestructiveReset bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:             getEnv("APP_PORT", "3000"),
			Environment:      getEnv("GO_ENV", "development"),
			LogFilePath:      getEnv("LOG_FILE_PATH", "app.log"),
			AdminJwtSecret:   getEnv("ADMIN_JWT_SECRET", ""),
			InboundChatTopic: getEnv("INBOUND_CHAT_TOPIC_NAME", "INBOUND_CHAT_EVENT"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Line: LineConfig{
			ChannelSecret:      getEnv("LINE_CHANNEL_SECRET", ""),
			ChannelAccessToken: getEnv("LINE_CHANNEL_ACCESS_TOKEN", ""),
			APIBaseURL:         getEnv("LINE_API_BASE_URL", "https://api.line.me"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMModel:          getEnv("LLM_MODEL", "gemini-1.5-flash"),
			Temperature:       getEnvAsFloat("LLM_TEMPERATURE", 0.5),
			MaxOutputTokens:   getEnvAsInt("LLM_MAX_OUTPUT_TOKENS", 500),
			MaxReplyLength:    getEnvAsInt("REPLY_MAX_LENGTH", 2000),
			MaxRetries:        getEnvAsInt("LLM_MAX_RETRIES", 3),
			RetryBaseDelay:    getEnvAsDuration("LLM_RETRY_BASE_DELAY", 2*time.Second),
		},
		Retrieval: RetrievalConfig{
			Metric:    getEnv("RETRIEVAL_DISTANCE_METRIC", "cosine"),
			Threshold: getEnvAsFloat("RETRIEVAL_DISTANCE_THRESHOLD", 0.5),
			TopK:      getEnvAsInt("RETRIEVAL_TOP_K", 3),
		},
		Knowledge: KnowledgeConfig{
			IngestCommandPrefix:   getEnv("INGEST_COMMAND_PREFIX", "/新增知識:"),
			SeedFilePath:          getEnv("KNOWLEDGE_SEED_FILE", ""),
			AllowDestructiveReset: getEnvAsBool("ALLOW_DESTRUCTIVE_RESET", false),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
