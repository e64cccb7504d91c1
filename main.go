package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"interview-practice/internal/api"
	"interview-practice/internal/config"
	"interview-practice/internal/interviewer"
	"interview-practice/internal/llm"
	"interview-practice/internal/metrics"
	"interview-practice/internal/session"
	"interview-practice/internal/storage"
)

func main() {
	fmt.Println("🚀 Запуск Interview Practice API...")

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	appCfg := config.LoadAppConfig()
	if err := appCfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Загружаем настройки интервью
	interviewCfg, err := config.Load(appCfg.InterviewConfigPath)
	if err != nil {
		logger.Error("failed to load interview config", "path", appCfg.InterviewConfigPath, "error", err)
		os.Exit(1)
	}

	fmt.Println("🔧 Инициализация сервисов...")

	gateway, err := llm.New(appCfg.LLM)
	if err != nil {
		logger.Error("failed to create model gateway", "error", err)
		os.Exit(1)
	}
	fmt.Println("✅ Модель инициализирована")

	opts := interviewer.Options{
		Interview: interviewCfg,
		Gateway:   appCfg.Gateway,
		Metrics:   metrics.NewMetrics(),
		Logger:    logger,
	}

	// Reports остается nil-интерфейсом, если архив выключен
	var reports api.Reports
	if appCfg.ArchiveDir != "" {
		archive := storage.NewArchive(appCfg.ArchiveDir)
		opts.Archive = archive
		reports = archive
		fmt.Printf("✅ Архив отчетов: %s\n", archive.Dir())
	}

	svc := interviewer.New(session.NewRegistry(), gateway, opts)
	handler := api.NewHandler(svc, reports, logger)

	fmt.Println("\n📋 Конфигурация:")
	for k, v := range appCfg.LLM.GetModelInfo() {
		fmt.Printf("• %s: %v\n", k, v)
	}
	fmt.Printf("• Таймаут вызова модели: %s, повторов: %d\n", appCfg.Gateway.Timeout, appCfg.Gateway.Retries)
	fmt.Printf("• Лимит слов в вопросе: %d\n", interviewCfg.QuestionWordLimit)

	mux := http.NewServeMux()
	api.RegisterRoutes(mux, handler)

	server := &http.Server{
		Addr:         appCfg.Server.Address,
		Handler:      api.Logging(logger)(api.CORS(mux)),
		ReadTimeout:  appCfg.Server.ReadTimeout,
		WriteTimeout: appCfg.Server.WriteTimeout,
	}

	ln, err := net.Listen("tcp", appCfg.Server.Address)
	if err != nil {
		logger.Error("failed to listen", "address", appCfg.Server.Address, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("\n🤖 API слушает %s\n", ln.Addr())
	logger.Info("starting server", "address", ln.Addr().String())
	if err := serve(ctx, server, ln, appCfg.Server.ShutdownTimeout, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
