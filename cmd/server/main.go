package main

import (
	"context"
	"log"
	"net/http"

	"metro-ticketing/config"
	"metro-ticketing/internal/cache"
	"metro-ticketing/internal/database"
	"metro-ticketing/internal/handler"
	"metro-ticketing/internal/queue"
	"metro-ticketing/internal/repository"
	"metro-ticketing/internal/service"
	"metro-ticketing/internal/worker"
	"metro-ticketing/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	txManager := database.NewTxManager(pool)

	stationRepo := repository.NewStationRepository(pool)
	lineRepo := repository.NewLineRepository(pool)
	connRepo := repository.NewConnectionRepository(pool)
	walletRepo := repository.NewWalletRepository(pool)
	otpRepo := repository.NewOTPRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	scanRepo := repository.NewScanRepository(pool)

	graphCache := cache.NewGraphCache(rdb)

	notificationQueue, err := queue.NewRedisStreamNotificationQueue(rdb, "", nil)
	if err != nil {
		log.Fatalf("Failed to initialize notification queue: %v", err)
	}

	notificationWorker := worker.NewNotificationWorker(worker.NewLogSender(), notificationQueue)
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	go func() {
		if err := notificationWorker.Start(workerCtx); err != nil {
			logger.WithComponent("worker").Error("notification worker stopped", zap.Error(err))
		}
	}()

	routeService := service.NewRouteService(stationRepo, connRepo, graphCache, cfg.Fare.RatePerEdge)
	stationService := service.NewStationService(stationRepo, lineRepo, connRepo, graphCache)
	walletService := service.NewWalletService(txManager, walletRepo)
	purchaseService := service.NewPurchaseService(
		txManager,
		otpRepo,
		walletRepo,
		ticketRepo,
		stationRepo,
		lineRepo,
		routeService,
		notificationQueue,
		service.RandCodeGenerator{},
		cfg.Fare,
	)
	ticketService := service.NewTicketService(txManager, ticketRepo, scanRepo, stationRepo, routeService, cfg.Fare)

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handler.NewStationHandler(stationService).RegisterRoutes(router)
	handler.NewQuoteHandler(routeService).RegisterRoutes(router)
	handler.NewWalletHandler(walletService).RegisterRoutes(router)
	handler.NewPurchaseHandler(purchaseService).RegisterRoutes(router)
	handler.NewTicketHandler(ticketService).RegisterRoutes(router)
	handler.NewScannerHandler(ticketService).RegisterRoutes(router)

	if err := router.Run(cfg.Server.Addr); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
