package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"adsettle/internal/audit"
	"adsettle/internal/config"
	estimateapp "adsettle/internal/estimate/application"
	estimaterepo "adsettle/internal/estimate/infrastructure/postgres"
	estimatexlsx "adsettle/internal/estimate/infrastructure/xlsx"
	estimateinterfaces "adsettle/internal/estimate/interfaces"
	"adsettle/internal/observability/metrics"
	settlementapp "adsettle/internal/settlement/application"
	settlementrepo "adsettle/internal/settlement/infrastructure/postgres"
	settlementpricing "adsettle/internal/settlement/infrastructure/pricing"
	settlementinterfaces "adsettle/internal/settlement/interfaces"
	"adsettle/internal/storage"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	_ = godotenv.Load()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config error: %v", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("db ping error: %v", err)
	}

	if cfg.MigrateOnStart {
		if err := storage.RunMigrations(db); err != nil {
			logger.Fatalf("migrate error: %v", err)
		}
	}

	metrics.Init(db, logger)
	auditRepo := audit.NewRepository(db)

	estimateRepo := estimaterepo.NewEstimateRepository(db)
	reader := estimatexlsx.NewReader()
	extractor := estimateapp.NewExtractService(estimateapp.UUIDGenerator{}, estimateapp.SystemClock{})
	estimateService, err := estimateapp.NewEstimateService(estimateRepo, reader, extractor, logger)
	if err != nil {
		logger.Fatalf("estimate service error: %v", err)
	}
	estimateHandler, err := estimateinterfaces.NewEstimateHandler(estimateService, auditRepo)
	if err != nil {
		logger.Fatalf("estimate handler error: %v", err)
	}

	settingsRepo := settlementrepo.NewSettingsRepository(db)
	deliveryCost, err := settlementpricing.NewSettingsDeliveryCostProvider(settingsRepo)
	if err != nil {
		logger.Fatalf("delivery cost provider error: %v", err)
	}
	settlementRepo := settlementrepo.NewSettlementRepository(db)
	settlementService, err := settlementapp.NewSettlementService(settlementRepo, settlementinterfaces.NewLoggingPublisher(logger), settlementapp.SystemClock{})
	if err != nil {
		logger.Fatalf("settlement service error: %v", err)
	}
	summaryService, err := settlementapp.NewSummaryService(settlementRepo, deliveryCost)
	if err != nil {
		logger.Fatalf("summary service error: %v", err)
	}
	settlementHandler, err := settlementinterfaces.NewSettlementHandler(settlementService, summaryService, auditRepo)
	if err != nil {
		logger.Fatalf("settlement handler error: %v", err)
	}
	settingsHandler, err := settlementinterfaces.NewSettingsHandler(settingsRepo, auditRepo)
	if err != nil {
		logger.Fatalf("settings handler error: %v", err)
	}
	exportHandler, err := settlementinterfaces.NewExportHandler(summaryService, settlementService)
	if err != nil {
		logger.Fatalf("export handler error: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/v1/estimates", estimateHandler)
	mux.Handle("/api/v1/estimates/", estimateHandler)
	mux.Handle("/api/v1/settlements", settlementHandler)
	mux.Handle("/api/v1/settlements/", settlementHandler)
	mux.Handle("/api/v1/settings", settingsHandler)
	mux.Handle("/api/v1/exports/summary.xlsx", exportHandler)
	mux.Handle("/api/v1/exports/summary.pdf", exportHandler)
	mux.Handle("/api/v1/exports/settlements.csv", exportHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(mux, logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
