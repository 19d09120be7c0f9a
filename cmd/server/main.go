package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shophub/config"
	"shophub/internal/api"
	"shophub/internal/broker"
	"shophub/internal/cart"
	"shophub/internal/chat"
	"shophub/internal/redisclient"
	"shophub/internal/service"
	"shophub/internal/store"
	"shophub/internal/util"
	"shophub/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting shophub storefront service")

	tp, err := util.InitTracer("shophub", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	db, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connected")

	redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Redis connected")

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrder)
	defer producer.Close()
	log.Println("Kafka producer initialized")

	eventPublisher := broker.NewEventPublisher(producer)

	carts := cart.NewManager()
	matcher := chat.NewMatcher()
	chats := chat.NewRegistry()

	pricing := service.Pricing{
		FreeShippingThreshold: cfg.Store.FreeShippingThreshold,
		ShippingFee:           cfg.Store.ShippingFee,
		TaxRate:               cfg.Store.TaxRate,
	}

	cacheTTL := time.Duration(cfg.Store.CatalogCacheTTLSec) * time.Second
	catalogService := service.NewCatalogService(db, redisClient, eventPublisher, cacheTTL)
	orderService := service.NewOrderService(db, carts, eventPublisher, pricing)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	consumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrder, cfg.Kafka.ConsumerGroup)
	fulfillment := worker.NewFulfillmentWorker(consumer, db, eventPublisher)
	go func() {
		if err := fulfillment.Start(workerCtx); err != nil {
			log.Printf("Fulfillment worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	replyDelay := time.Duration(cfg.Store.ChatReplyDelayMs) * time.Millisecond
	handler := api.NewHandler(catalogService, orderService, carts, matcher, chats, pricing, replyDelay)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	fulfillment.Stop()

	log.Println("Server exited")
}
