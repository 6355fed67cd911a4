package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"unicode"
	"unicode/utf8"

	myPostgresRepo "github.com/Miraines/MoonyAndStarry/contacts-service/internal/adapters/db/postgres"
	myRedisRepo "github.com/Miraines/MoonyAndStarry/contacts-service/internal/adapters/db/redis"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/adapters/mail"
	myMinio "github.com/Miraines/MoonyAndStarry/contacts-service/internal/adapters/storage/minio"
	myHTTP "github.com/Miraines/MoonyAndStarry/contacts-service/internal/adapters/transport/http"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/app/auth/hash"
	authsvc "github.com/Miraines/MoonyAndStarry/contacts-service/internal/app/auth/service"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/app/auth/token"
	contactssvc "github.com/Miraines/MoonyAndStarry/contacts-service/internal/app/contacts/service"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/infra/config"
	lg "github.com/Miraines/MoonyAndStarry/contacts-service/internal/infra/log"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/infra/migrate"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	zapLog := lg.Must(os.Getenv("LOG_LEVEL"))
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("failed to load config", zap.Error(err))
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zapLog.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := migrate.Up(sqlDB); err != nil {
		zapLog.Fatal("run migrations", zap.Error(err))
	}

	redisCli := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisCli.Close()

	validate := validator.New()
	_ = validate.RegisterValidation("strongpwd", func(fl validator.FieldLevel) bool {
		pwd := fl.Field().String()
		var hasUpper, hasDigit bool
		for _, r := range pwd {
			if unicode.IsUpper(r) {
				hasUpper = true
			}
			if unicode.IsDigit(r) {
				hasDigit = true
			}
		}
		return utf8.RuneCountInString(pwd) >= 8 && hasUpper && hasDigit
	})

	hasher, err := hash.New(cfg.PasswordPepper)
	if err != nil {
		zapLog.Fatal("init hasher", zap.Error(err))
	}

	mailer, err := mail.New(cfg)
	if err != nil {
		zapLog.Fatal("init mailer", zap.Error(err))
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	avatars, err := myMinio.New(startupCtx, cfg)
	cancelStartup()
	if err != nil {
		zapLog.Fatal("init avatar storage", zap.Error(err))
	}

	userRepo := myPostgresRepo.NewUserRepo(db)
	contactRepo := myPostgresRepo.NewContactRepo(db)
	tokenRepo := myRedisRepo.NewRevocationStore(redisCli, cfg.RedisTimeout)
	codec := token.NewCodec(cfg)

	authService := authsvc.New(userRepo, tokenRepo, codec, hasher, mailer, avatars, validate, zapLog)
	contactService := contactssvc.New(contactRepo, validate)

	pingDB := func(ctx context.Context) error {
		var one int
		return db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error
	}

	router, err := myHTTP.NewRouter(cfg, authService, contactService, validate, pingDB, zapLog)
	if err != nil {
		zapLog.Fatal("build router", zap.Error(err))
	}

	srv := &http.Server{Addr: cfg.HTTPAddress, Handler: router}
	rootCtx, cancel := context.WithCancel(context.Background())
	g, _ := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		zapLog.Info("http server listening", zap.String("addr", cfg.HTTPAddress))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLog.Info("shutdown signal received")
	cancel()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLog.Error("shutdown error", zap.Error(err))
	}
	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
}
