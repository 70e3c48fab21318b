package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"github.com/ID-JA/bookie/pkg/db"
	"github.com/ID-JA/bookie/pkg/logger"
	"github.com/ID-JA/bookie/pkg/mq"
	"github.com/ID-JA/bookie/pkg/obs"
	"github.com/ID-JA/bookie/services/notification-service/internal/dispatcher"
	"github.com/ID-JA/bookie/services/notification-service/internal/handlers"
	"github.com/ID-JA/bookie/services/notification-service/internal/notifier"
	"github.com/ID-JA/bookie/services/notification-service/internal/repository"
	"github.com/ID-JA/bookie/services/notification-service/internal/worker"
)

type Cfg struct {
	PGNotifyDSN string `envconfig:"PG_NOTIFY_DSN" required:"true"`
	HTTPAddr    string `envconfig:"NOTIFY_HTTP_ADDR" default:":8001"`

	RabbitURL      string   `envconfig:"RABBIT_URL" required:"true"`
	NotifyExchange string   `envconfig:"NOTIFY_EXCHANGE" default:"notification.exchange"`
	NotifyQueue    string   `envconfig:"NOTIFY_QUEUE" default:"notifications"`
	NotifyBindings []string `envconfig:"NOTIFY_BINDINGS" default:"notification.*"`

	SMTPHost        string        `envconfig:"SMTP_SERVER" required:"true"`
	SMTPPort        int           `envconfig:"SMTP_PORT" default:"587"`
	SMTPEmail       string        `envconfig:"SMTP_EMAIL" required:"true"`
	SMTPPassword    string        `envconfig:"SMTP_PASSWORD" required:"true"`
	SMTPSendTimeout time.Duration `envconfig:"SMTP_SEND_TIMEOUT" default:"15s"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
}

func main() {
	_ = godotenv.Load()

	var cfg Cfg
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatal(err)
	}
	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat, "notification-service")
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	shutdownTracer, err := obs.InitTracer("notification-service")
	if err != nil {
		zlog.Fatal("init tracer", zap.Error(err))
	}

	gdb, err := db.Open(cfg.PGNotifyDSN)
	if err != nil {
		zlog.Fatal("open store", zap.Error(err))
	}
	logRepo := repository.NewDeliveryLogRepo(gdb)
	if err := logRepo.Migrate(); err != nil {
		zlog.Fatal("migrate email_logs", zap.Error(err))
	}

	mailer := notifier.NewSMTP(notifier.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		From:     cfg.SMTPEmail,
		Password: cfg.SMTPPassword,
		Timeout:  cfg.SMTPSendTimeout,
	})
	disp := dispatcher.New(mailer, logRepo, zlog)

	// prefetch 1: one message in flight, processed to completion before the
	// next fetch
	var cons *mq.Consumer
	for {
		cons, err = mq.NewConsumer(cfg.RabbitURL, cfg.NotifyExchange, cfg.NotifyQueue,
			"notification-service", cfg.NotifyBindings, 1)
		if err == nil {
			break
		}
		zlog.Warn("rabbitmq connect failed, retrying in 2s", zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	defer cons.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := worker.New(cons, disp, zlog).Run(ctx); err != nil {
			zlog.Error("consumer stopped", zap.Error(err))
		}
	}()
	zlog.Info("consumer started",
		zap.String("queue", cfg.NotifyQueue),
		zap.Strings("bindings", cfg.NotifyBindings),
	)

	r := gin.Default()
	handlers.Register(r, handlers.NewNotifyHandler(disp))
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		zlog.Info("notification-service listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("http server", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	cancel()

	shCtx, shCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shCancel()
	if err := srv.Shutdown(shCtx); err != nil {
		zlog.Warn("http shutdown", zap.Error(err))
	}
	_ = shutdownTracer(shCtx)
	zlog.Info("notification-service stopped")
}
