package main

import (
	"context"
	"math/big"
	"net/http"
	"time"

	"github.com/unikron/swapd/src/Infrastructure/ethereum"
	"github.com/unikron/swapd/src/Infrastructure/symbiosis"
	"github.com/unikron/swapd/src/config"
	"github.com/unikron/swapd/src/logger"
	"github.com/unikron/swapd/src/swap/adapter/aggregator"
	swapHD "github.com/unikron/swapd/src/swap/delivery/http"
	swapRepo "github.com/unikron/swapd/src/swap/repository"
	swap "github.com/unikron/swapd/src/swap/usecase"
	tokenHD "github.com/unikron/swapd/src/token/delivery/http"
	token "github.com/unikron/swapd/src/token/usecase"

	_ "github.com/lib/pq"
	_ "github.com/unikron/swapd/docs" // Swagger docs

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func main() {
	cfg := config.LoadFromEnv()
	logg := logger.New(cfg.Env)
	ctx := context.Background()

	// --- Database connection ---
	logg.Infof("Connecting to database: %s", cfg.DatabaseURL)

	gormDB, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		logg.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logg.Fatalf("Failed to get generic DB handle: %v", err)
	}
	defer sqlDB.Close()

	// Connection pool tuning
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)

	// --- Aggregator clients ---
	mainnetClient, err := symbiosis.NewClient(cfg.Symbiosis.MainnetBaseURL,
		symbiosis.WithTimeout(cfg.Symbiosis.RequestTimeout),
		symbiosis.WithLogger(logg.Zerolog()),
	)
	if err != nil {
		logg.Fatalf("Failed to build mainnet aggregator client: %v", err)
	}
	testnetClient, err := symbiosis.NewClient(cfg.Symbiosis.TestnetBaseURL,
		symbiosis.WithTimeout(cfg.Symbiosis.RequestTimeout),
		symbiosis.WithLogger(logg.Zerolog()),
	)
	if err != nil {
		logg.Fatalf("Failed to build testnet aggregator client: %v", err)
	}
	agg := aggregator.NewSymbiosisPort(mainnetClient, testnetClient, cfg.Symbiosis.RouteCheckTimeout)

	// --- Wallet ---
	wallet, err := ethereum.NewEthereumClient(ctx, ethereum.Config{
		RPCURL:     cfg.Ethereum.RPCURL,
		PrivateKey: cfg.Ethereum.PrivateKey,
		ChainID:    big.NewInt(cfg.Ethereum.ChainID),
	})
	if err != nil {
		logg.Fatalf("Failed to initialize wallet: %v", err)
	}
	defer wallet.Close()
	logg.Infof("Wallet account: %s", wallet.Address())

	// --- Dependencies ---
	txRepo := swapRepo.NewTransactionRepo(gormDB, logg)
	tracker := swap.NewTracker(txRepo, logg)
	oracle := swap.NewPriceOracle()
	rate := swap.NewRateCalculator(oracle)
	pairs := swap.NewPairSupportService(agg, logg)
	quotes := swap.NewQuoteService(agg, rate, logg)
	executor := swap.NewExecutorService(pairs, agg, wallet, tracker, logg, cfg.Ethereum.SpenderAddress, cfg.Testnet)

	tokenSvc := token.NewService(mainnetClient, logg)

	swapHandler := swapHD.NewHandler(quotes, pairs, executor, tracker, logg, cfg.Testnet)
	tokenHandler := tokenHD.NewHandler(tokenSvc, logg)

	go executor.Watch(ctx)

	// --- Router ---
	r := gin.New()

	// Core middleware
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logg.Infof("%s %s status:%d duration:%s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
		)
	})

	// --- Healthcheck ---
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Swagger ---
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// --- API routes ---
	api := r.Group("/api/v1")
	swapHandler.RegisterRoutes(api)
	tokenHandler.RegisterRoutes(api)

	// --- Start server ---
	logg.Infof("Starting service on %s (env=%s testnet=%v)", cfg.ListenAddr, cfg.Env, cfg.Testnet)
	logg.Infof("Swagger UI available at http://localhost%s/swagger/index.html", cfg.ListenAddr)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Fatalf("Server terminated unexpectedly: %v", err)
	}
}
