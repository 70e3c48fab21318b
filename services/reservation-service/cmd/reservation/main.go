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
	"github.com/ID-JA/bookie/services/reservation-service/internal/handlers"
	"github.com/ID-JA/bookie/services/reservation-service/internal/repository"
	"github.com/ID-JA/bookie/services/reservation-service/internal/service"
)

type Cfg struct {
	PGReservationDSN string `envconfig:"PG_RESERVATION_DSN" required:"true"`
	HTTPAddr         string `envconfig:"RESERVATION_HTTP_ADDR" default:":8000"`

	// RabbitMQ for publishing notification.* events
	RabbitURL      string `envconfig:"RABBIT_URL" required:"true"`
	NotifyExchange string `envconfig:"NOTIFY_EXCHANGE" default:"notification.exchange"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
}

func main() {
	_ = godotenv.Load()

	var cfg Cfg
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatal(err)
	}
	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat, "reservation-service")
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	shutdownTracer, err := obs.InitTracer("reservation-service")
	if err != nil {
		zlog.Fatal("init tracer", zap.Error(err))
	}

	// store unreachable at boot is fatal
	gdb, err := db.Open(cfg.PGReservationDSN)
	if err != nil {
		zlog.Fatal("open store", zap.Error(err))
	}
	roomRepo := repository.NewRoomRepo(gdb)
	resRepo := repository.NewReservationRepo(gdb)
	if err := roomRepo.Migrate(); err != nil {
		zlog.Fatal("migrate rooms", zap.Error(err))
	}
	if err := resRepo.Migrate(); err != nil {
		zlog.Fatal("migrate reservations", zap.Error(err))
	}

	pub, err := mq.NewPublisher(cfg.RabbitURL, cfg.NotifyExchange)
	if err != nil {
		zlog.Fatal("connect rabbitmq", zap.Error(err))
	}
	defer pub.Close()

	roomSvc := service.NewRoomService(roomRepo, resRepo)
	resSvc := service.NewReservationService(resRepo, pub, zlog)

	r := gin.Default()
	handlers.Register(r, handlers.NewRoomsHandler(roomSvc), handlers.NewReservationsHandler(resSvc))

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		zlog.Info("reservation-service listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("http server", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Warn("http shutdown", zap.Error(err))
	}
	_ = shutdownTracer(ctx)
	zlog.Info("reservation-service stopped")
}
