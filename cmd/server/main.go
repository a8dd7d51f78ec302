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

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dungeonmania/server/config"
	"dungeonmania/server/handlers"
	"dungeonmania/server/messages"
	"dungeonmania/server/persistence"
	"dungeonmania/server/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow connections from any origin during development
		return true
	},
}

func main() {
	cfg := config.Load()

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := openStorage(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize persistence", zap.String("db_type", cfg.DBType), zap.Error(err))
	}
	defer db.Close()

	clientManager := handlers.NewClientManager(log)

	var opts []services.ServiceOption
	if cfg.AutoTick {
		opts = append(opts, services.WithAutoTick(func(update *messages.UpdateMessage) {
			clientManager.BroadcastToGame(update.GameID, messages.BaseMessage{Type: messages.MessageTypeUpdate, Payload: update})
		}))
	}
	gameService := services.NewGameService(db, log, opts...)
	defer gameService.Shutdown()

	server := &http.Server{
		Addr:    cfg.ListenAddr(),
		Handler: handlers.NewRouter(gameService, clientManager, upgrader, log),
	}

	go func() {
		if !cfg.Headless {
			log.Info(fmt.Sprintf("connect to %s://%s/ws", cfg.Scheme(), cfg.ListenAddr()))
		}
		log.Info("server starting",
			zap.String("addr", cfg.ListenAddr()),
			zap.Bool("secure", cfg.Secure),
			zap.Bool("auto_tick", cfg.AutoTick))

		var err error
		if cfg.Secure {
			err = server.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Warn("graceful shutdown failed", zap.Error(err))
	}
}

func openStorage(cfg config.Config, log *zap.Logger) (persistence.Storage, error) {
	switch cfg.DBType {
	case "postgres":
		log.Info("using PostgreSQL persistence")
		return persistence.NewPostgresStore(cfg.DatabaseURL, log)
	case "bolt":
		log.Info("using bbolt persistence", zap.String("file", cfg.DBFile))
		return persistence.NewBoltStore(cfg.DBFile)
	default:
		log.Info("using JSON persistence", zap.String("file", cfg.DBFile))
		return persistence.NewJSONStore(cfg.DBFile)
	}
}

func newLogger(levelName string) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if level == zapcore.DebugLevel {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
