package bootstrap

import (
	"log"

	"line-rag-assistant/internal/config"
	"line-rag-assistant/internal/controller"
	"line-rag-assistant/internal/pkg/logger"
	"line-rag-assistant/internal/pkg/serverutils"
	"line-rag-assistant/internal/repository/guard"
	"line-rag-assistant/internal/repository/implementation"
	"line-rag-assistant/internal/service"
	"line-rag-assistant/pkg/embedding"
	"line-rag-assistant/pkg/line"
	"line-rag-assistant/pkg/llm"
	"line-rag-assistant/pkg/rag"
	"line-rag-assistant/pkg/rag/response"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	WebhookController controller.IWebhookController
	AdminController   controller.IAdminController
	AdminAuth         fiber.Handler

	// Exposed for main.go: startup seeding and the background consumer.
	KnowledgeService service.IKnowledgeService
	ConsumerService  service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Storage
	knowledgeRepo := guard.NewKnowledgeGuard(implementation.NewKnowledgeRepository(db))

	// Embedding provider
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	// Generation provider
	llmProvider := llm.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.LLMModel)
	log.Printf("[INFO] Using LLM Model: %s", cfg.Ai.LLMModel)

	// Knowledge base
	seeds, err := service.LoadSeedItems(cfg.Knowledge.SeedFilePath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load knowledge seed file: %v", err)
	}
	knowledgeService := service.NewKnowledgeService(
		knowledgeRepo,
		embeddingProvider,
		seeds,
		cfg.Knowledge.AllowDestructiveReset,
		sysLogger,
	)

	// Retrieval core
	retriever, err := rag.NewRetriever(
		knowledgeRepo,
		embeddingProvider,
		rag.Config{
			Metric:    rag.Metric(cfg.Retrieval.Metric),
			Threshold: cfg.Retrieval.Threshold,
			TopK:      cfg.Retrieval.TopK,
		},
		sysLogger,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize retriever: %v", err)
	}
	policy := rag.NewPolicy(retriever)

	generator := response.NewGenerator(llmProvider, response.Config{
		Temperature:     cfg.Ai.Temperature,
		MaxOutputTokens: cfg.Ai.MaxOutputTokens,
		MaxReplyLength:  cfg.Ai.MaxReplyLength,
		MaxRetries:      cfg.Ai.MaxRetries,
		RetryBaseDelay:  cfg.Ai.RetryBaseDelay,
	}, sysLogger)

	chatService := service.NewChatService(
		knowledgeService,
		policy,
		generator,
		cfg.Knowledge.IngestCommandPrefix,
		sysLogger,
	)

	// Event bus between webhook acknowledgement and reply processing.
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	publisherService := service.NewPublisherService(cfg.App.InboundChatTopic, pubSub)

	lineClient := line.NewClient(cfg.Line.ChannelAccessToken, cfg.Line.APIBaseURL)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.InboundChatTopic,
		chatService,
		lineClient,
		sysLogger,
	)

	return &Container{
		WebhookController: controller.NewWebhookController(cfg.Line.ChannelSecret, publisherService, sysLogger),
		AdminController:   controller.NewAdminController(knowledgeService, sysLogger),
		AdminAuth:         serverutils.AdminJwtMiddleware(cfg.App.AdminJwtSecret),

		KnowledgeService: knowledgeService,
		ConsumerService:  consumerService,

		Logger: sysLogger,
	}
}
