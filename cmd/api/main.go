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

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/cuongnguyenngoc/web3mail/internal/client"
	"github.com/cuongnguyenngoc/web3mail/internal/config"
	"github.com/cuongnguyenngoc/web3mail/internal/repository"
	"github.com/cuongnguyenngoc/web3mail/internal/server"
	"github.com/cuongnguyenngoc/web3mail/internal/service"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	db := client.InitSqliteClient(cfg.DatabaseURL)

	var backend client.StorageBackend
	switch cfg.Storage.Backend {
	case "s3":
		var err error
		backend, err = client.NewS3Client(context.Background(), &cfg.Storage)
		if err != nil {
			log.Fatal("init s3 backend: ", err)
		}
	default:
		backend = client.NewIPFSClient(cfg.Storage.IPFSAPIURL)
	}

	store, err := service.NewObjectStore(backend, cfg.Storage.Passphrase, cfg.Storage.KeySalt)
	if err != nil {
		log.Fatal("init object store: ", err)
	}

	checkoutClient := client.NewCheckoutClient(&cfg.Checkout)

	accountRepo := repository.NewAccountRepository(db)
	emailRepo := repository.NewEmailRepository(db)
	paymentRepo := repository.NewPaymentSessionRepository(db)
	webhookEventRepo := repository.NewWebhookEventRepository(db)

	ledger := service.NewCreditLedger(db, accountRepo)
	authService := service.NewWalletAuthService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLMin, cfg.Auth.ChallengeTTLSec, accountRepo)
	emailService := service.NewEmailService(db, ledger, store, service.NewSimulatedStamper(), emailRepo)
	paymentService := service.NewPaymentService(db, checkoutClient, cfg.BaseURL, ledger, paymentRepo, webhookEventRepo)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(
		authService,
		emailService,
		paymentService,
		ledger,
		service.NewAssistantService(),
		service.NewChainService(),
	)

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
