package main

import (
	"contact-form-relay/config"
	v1 "contact-form-relay/internal/delivery/http/v1"
	"contact-form-relay/internal/usecase"
	"contact-form-relay/pkg/email"
	"contact-form-relay/pkg/logger"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	logger.Log.Info("Starting contact form relay", startupAttrs(cfg)...)
	logger.Log.Info("Email credential loaded", "key_prefix", keyPreview(activeKey(cfg)))

	// 3. Setup Email Sender
	sender, err := email.NewSender(cfg)
	if err != nil {
		logger.Log.Error("Failed to build email sender", "error", err)
		os.Exit(1)
	}

	// 4. Setup UseCases
	relayUC := usecase.NewRelayUsecase(sender, cfg)

	// 5. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		RelayUC: relayUC,
		Config:  cfg,
	})

	// 6. Start Server
	srv := &http.Server{
		Addr:        cfg.Addr(),
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// The redirect cannot be written until the outbound send finishes,
		// so the write timeout must outlast it.
		WriteTimeout: cfg.SendTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

// startupAttrs collects the startup summary attributes. The sending domain
// only exists for mailgun.
func startupAttrs(cfg *config.Config) []any {
	attrs := []any{
		"addr", cfg.Addr(),
		"provider", cfg.EmailProvider,
		"recipient", cfg.ContactEmailTo,
		"redirect_url", cfg.RedirectURL,
	}
	if cfg.EmailProvider == config.ProviderMailgun {
		attrs = append(attrs, "domain", cfg.MailgunDomain)
	}
	return attrs
}

// activeKey returns the credential for the selected provider.
func activeKey(cfg *config.Config) string {
	if cfg.EmailProvider == config.ProviderResend {
		return cfg.ResendAPIKey
	}
	return cfg.MailgunAPIKey
}

// keyPreview shows just enough of a credential to confirm which one was
// loaded without writing it to the logs.
func keyPreview(key string) string {
	if len(key) <= 6 {
		return key
	}
	return key[:6] + "..."
}
