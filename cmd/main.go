package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/horizonbank/horizon/internal/handlers"
	"github.com/horizonbank/horizon/internal/history"
	"github.com/horizonbank/horizon/internal/jwt"
	"github.com/horizonbank/horizon/internal/logger"
	"github.com/horizonbank/horizon/internal/middlewares"
	"github.com/horizonbank/horizon/internal/models"
	"github.com/horizonbank/horizon/internal/repositories"
	"github.com/horizonbank/horizon/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title Horizon Bank API
// @version 1.0.0
// @description Demo online-banking service: customer accounts, transfers and an admin console
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, logLevel, storageMode,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisAddr, redisDB, redisPassword, cacheTTLSecond,
		kafkaBroker, kafkaTopic,
		jwtSecret, jwtExp,
		seedDemo, historySeed,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort, logLevel, storageMode,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisAddr, redisDB, redisPassword, cacheTTLSecond,
		kafkaBroker, kafkaTopic,
		jwtSecret, jwtExp,
		seedDemo, historySeed,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns all
// application, database, Redis, Kafka, JWT and seeding configuration.
func parseConfig(path string) (
	appHost, appPort, logLevel, storageMode string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisAddr string, redisDB int, redisPassword string, cacheTTLSecond int,
	kafkaBroker, kafkaTopic string,
	jwtSecretKey string, jwtExpSecond int,
	seedDemo bool, historySeed int64,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8080")
	logLevel = getEnv("APP_LOG_LEVEL", "info")
	storageMode = getEnv("APP_STORAGE", "memory")

	// PostgreSQL config (used when APP_STORAGE=postgres)
	pgHost = getEnv("POSTGRES_HOST", "localhost")
	pgUser = getEnv("POSTGRES_USER", "user")
	pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	pgDB = getEnv("POSTGRES_DB", "horizon")
	if pgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if pgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if pgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Redis config; empty address disables the summary cache
	redisAddr = getEnv("REDIS_ADDR", "")
	if redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	redisPassword = getEnv("REDIS_PASSWORD", "")
	if cacheTTLSecond, err = strconv.Atoi(getEnv("CACHE_TTL_SECOND", "60")); err != nil {
		return
	}

	// Kafka config; empty broker disables event publishing
	kafkaBroker = getEnv("KAFKA_BROKER", "")
	kafkaTopic = getEnv("KAFKA_TOPIC", "horizon.transactions")

	// JWT config
	jwtSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if jwtExpSecond, err = strconv.Atoi(getEnv("JWT_EXP_SECOND", "3600")); err != nil {
		return
	}

	// Seeding config
	seedDemo = getEnv("SEED_DEMO", "true") == "true"
	if historySeed, err = strconv.ParseInt(getEnv("HISTORY_SEED", "0"), 10, 64); err != nil {
		return
	}
	if historySeed == 0 {
		historySeed = time.Now().UnixNano()
	}

	return
}

// run initializes the logger, storage, cache, Kafka and HTTP server. It seeds
// demo data, sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context,
	appHost, appPort, logLevel, storageMode string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisAddr string, redisDB int, redisPassword string, cacheTTLSecond int,
	kafkaBroker, kafkaTopic string,
	jwtSecretKey string, jwtExpSecond int,
	seedDemo bool, historySeed int64,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	lg := logger.Log
	defer lg.Sync()
	lg.Infof("Logger initialized with level %s", logLevel)

	// Storage: either the in-memory demo backend or Postgres
	var (
		userReader  services.UserReader
		userLister  services.CustomerLister
		userWriter  services.UserWriter
		acctReader  services.AccountReader
		acctWriter  services.AccountWriter
		acctCreator services.AccountCreator
		txReader    services.TransactionReader
		txCounter   services.TransactionCounter
		txWriter    services.TransactionWriter
		cardReader  services.CardReader
		cardWriter  services.CardWriter

		db *sqlx.DB
	)

	switch storageMode {
	case "memory":
		lg.Info("Using in-memory storage")
		mem := repositories.NewMemoryStorage()
		userReader = mem.Users()
		userLister = mem.Users()
		userWriter = mem.Users()
		acctReader = mem.Accounts()
		acctWriter = mem.Accounts()
		acctCreator = mem.Accounts()
		txReader = mem.Transactions()
		txCounter = mem.Transactions()
		txWriter = mem.Transactions()
		cardReader = mem.Cards()
		cardWriter = mem.Cards()

	case "postgres":
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			pgUser, pgPassword, pgHost, pgPort, pgDB)
		lg.Infof("Connecting to PostgreSQL: %s:%d/%s", pgHost, pgPort, pgDB)

		var err error
		db, err = sqlx.ConnectContext(ctx, "pgx", dsn)
		if err != nil {
			lg.Fatal("PostgreSQL connection error:", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(pgMaxOpenConns)
		db.SetMaxIdleConns(pgMaxIdleConns)
		if err := db.PingContext(ctx); err != nil {
			lg.Fatal("PostgreSQL ping failed:", err)
		}

		userReader = repositories.NewUserReadRepository(db)
		userLister = repositories.NewUserReadRepository(db)
		userWriter = repositories.NewUserWriteRepository(db, middlewares.GetTxFromContext)
		acctReader = repositories.NewAccountReadRepository(db)
		acctWriter = repositories.NewAccountWriteRepository(db, middlewares.GetTxFromContext)
		acctCreator = repositories.NewAccountWriteRepository(db, middlewares.GetTxFromContext)
		txReader = repositories.NewTransactionReadRepository(db)
		txCounter = repositories.NewTransactionReadRepository(db)
		txWriter = repositories.NewTransactionWriteRepository(db, middlewares.GetTxFromContext)
		cardReader = repositories.NewCardReadRepository(db)
		cardWriter = repositories.NewCardWriteRepository(db, middlewares.GetTxFromContext)

	default:
		return fmt.Errorf("unknown storage mode %q", storageMode)
	}

	// Redis summary cache (optional)
	var cache services.SummaryCache
	if redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			lg.Fatal("Redis connection error:", err)
		}
		defer rdb.Close()
		cache = repositories.NewSummaryCacheRepository(rdb, time.Duration(cacheTTLSecond)*time.Second)
	}

	// Kafka transaction events (optional)
	var kafkaWriter services.KafkaWriter
	if kafkaBroker != "" {
		w := &kafka.Writer{
			Addr:     kafka.TCP(kafkaBroker),
			Topic:    kafkaTopic,
			Balancer: &kafka.LeastBytes{},
		}
		defer w.Close()
		kafkaWriter = w
	}

	// Initialize JWT service
	jwtSvc := jwt.New(
		jwt.WithSecretKey(jwtSecretKey),
		jwt.WithExpiration(time.Duration(jwtExpSecond)*time.Second),
	)

	// Initialize services
	authService := services.NewAuthService(userReader, userWriter, jwtSvc)
	accountService := services.NewAccountService(acctReader, acctWriter, txReader, txWriter, cache, kafkaWriter)
	adminService := services.NewAdminService(userLister, acctReader, acctWriter, acctCreator, txWriter, cardReader, cardWriter, cache, kafkaWriter)

	// Seed demo data
	if seedDemo {
		generator := history.New(history.NewSource(historySeed), history.Config{SortByDate: true})
		seedService := services.NewSeedService(userReader, userWriter, acctCreator, txCounter, txWriter, generator)
		if err := seedService.Run(ctx); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
	}

	// Initialize handlers
	signupHandler := handlers.NewSignupHandler(authService)
	loginHandler := handlers.NewLoginHandler(authService)
	dashboardHandler := handlers.NewDashboardHandler(accountService, jwtSvc)
	transactionsHandler := handlers.NewTransactionsHandler(accountService, jwtSvc)
	transferHandler := handlers.NewTransferHandler(accountService, jwtSvc)
	adminCustomersHandler := handlers.NewAdminCustomersHandler(adminService)
	adminCreateAccountHandler := handlers.NewAdminCreateAccountHandler(adminService)
	adminCreditHandler := handlers.NewAdminCreditHandler(adminService)
	adminDebitHandler := handlers.NewAdminDebitHandler(adminService)
	adminIssueCardHandler := handlers.NewAdminIssueCardHandler(adminService)
	adminReviewCardHandler := handlers.NewAdminReviewCardHandler(adminService)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(lg))

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/signup", signupHandler)
		r.Post("/auth/login", loginHandler)

		// Customer routes with JWT middleware
		r.Group(func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware(jwtSvc))
			r.Get("/dashboard", dashboardHandler)
			r.Get("/accounts/{accountID}/transactions", transactionsHandler)
			if db != nil {
				r.With(middlewares.TxMiddleware(db)).Post("/transfer", transferHandler)
			} else {
				r.Post("/transfer", transferHandler)
			}
		})

		// Admin routes with role gate
		r.Group(func(r chi.Router) {
			r.Use(middlewares.RequireRole(jwtSvc, models.RoleAdmin))
			if db != nil {
				r.Use(middlewares.TxMiddleware(db))
			}
			r.Get("/admin/customers", adminCustomersHandler)
			r.Post("/admin/accounts", adminCreateAccountHandler)
			r.Post("/admin/accounts/{accountID}/credit", adminCreditHandler)
			r.Post("/admin/accounts/{accountID}/debit", adminDebitHandler)
			r.Post("/admin/cards", adminIssueCardHandler)
			r.Post("/admin/cards/{cardID}/review", adminReviewCardHandler)
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", appHost, appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		lg.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		lg.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Errorw("HTTP server shutdown error", "error", err)
	}

	lg.Info("HTTP server stopped gracefully")
	return nil
}
