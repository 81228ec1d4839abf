package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"haw/internal/api"
	"haw/internal/client"
	"haw/internal/config"
	"haw/internal/logger"
	"haw/internal/wallet"
)

// @title        Hoosat Agent Wallet API
// @version      1.0
// @description  Local daemon over the encrypted wallet store. Binds localhost only.
// @BasePath     /
func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Get()

	log := logger.New(cfg.LogLevel, cfg.LogPretty)

	log.Info().
		Str("port", config.GetPort()).
		Str("walletDir", config.GetWalletDir()).
		Msg("starting hoosat-walletd")

	store, err := wallet.NewStore(config.GetWalletDir(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open wallet store")
	}

	// The daemon holds the vault open for its lifetime. The password comes
	// from HOOSAT_AGENT_PASSWORD or an interactive prompt at startup.
	password, err := store.Session().Password()
	if err != nil {
		password, err = config.PromptForPassword("Vault password: ")
		if err != nil {
			log.Fatal().Err(err).Msg("failed to read password")
		}
	}
	if !store.Initialized() {
		if err := store.Initialize(password); err != nil {
			log.Fatal().Err(err).Msg("failed to initialize wallet store")
		}
		log.Info().Str("dir", store.Dir()).Msg("wallet store initialized")
	} else if err := store.Unlock(password); err != nil {
		log.Fatal().Err(err).Msg("failed to unlock wallet store")
	}
	clear(password)

	apiURL := config.GetAPIURL()
	if apiURL == "" {
		network := config.GetNetwork()
		if network == "" {
			network = store.DefaultNetwork()
		}
		apiURL = store.APIEndpoint(network)
	}
	hc := client.NewHoosatClient(apiURL)
	router := api.SetupRouter(store, hc, log)

	// Localhost only, the daemon has no authentication of its own
	addr := "127.0.0.1:" + config.GetPort()
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	store.Lock()
	log.Info().Msg("server exited")
}
