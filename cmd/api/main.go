package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carebothq/carebot-api/internal/config"
	"github.com/carebothq/carebot-api/internal/handlers"
	"github.com/carebothq/carebot-api/internal/llm"
	"github.com/carebothq/carebot-api/internal/services"
	"github.com/carebothq/carebot-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())
	db := client.Database(cfg.MongoDatabase)
	log.Println("Successfully connected to MongoDB!")

	mongoStore := store.NewMongo(db)
	if err := mongoStore.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	st := store.FromMongo(mongoStore)

	// --- Initialize Services ---
	completion := llm.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	chatSvc := services.NewChatService(st, completion)
	doctorSvc := services.NewDoctorService(st)
	voiceSvc := services.NewVoiceService(services.NewOpenAISpeech(cfg.OpenAIAPIKey))

	h := handlers.NewHandler(st, chatSvc, doctorSvc, voiceSvc, cfg.JWTSecret)

	// --- Gin Router ---
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	h.RegisterRoutes(r)

	log.Printf("Starting server on port %s", cfg.APIPort)
	if err := r.Run(":" + cfg.APIPort); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
