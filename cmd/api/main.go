package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace/internal/config"
	"marketplace/internal/domain/model"
	"marketplace/internal/handler"
	"marketplace/internal/infra/db"
	infraRepo "marketplace/internal/infra/repository"
	"marketplace/internal/logger"
	"marketplace/internal/metrics"
	"marketplace/internal/server"
	"marketplace/internal/usecase"
	auth "marketplace/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	// .envがあれば読む（コンテナでは環境変数を直接渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger.InitLogger(cfg)
	log := logger.GetLogger()
	defer log.Sync() //nolint:errcheck

	metrics.InitMetrics(cfg.MetricsPrefix)

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal("db connect failed", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Business{},
		&model.Category{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
		&model.DeliveryUpdate{},
	); err != nil {
		log.Fatal("migrate failed", zap.Error(err))
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	businessRepo := infraRepo.NewBusinessGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	paymentRepo := infraRepo.NewPaymentGormRepository(gormDB)
	deliveryRepo := infraRepo.NewDeliveryUpdateGormRepository(gormDB)
	statsRepo := infraRepo.NewStatsGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	clock := &realClock{}
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 24 * time.Hour,
	}

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher, clock)
	loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, clock)
	productUC := usecase.NewProductUsecase(productRepo, businessRepo, categoryRepo)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo, productRepo)
	businessUC := usecase.NewBusinessUsecase(businessRepo)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, orderItemRepo, paymentRepo, deliveryRepo)
	sellerOrderUC := usecase.NewSellerOrderUsecase(orderRepo, orderItemRepo, businessRepo, deliveryRepo)
	adminUC := usecase.NewAdminUsecase(orderRepo, orderItemRepo, businessRepo, userRepo)
	statsUC := usecase.NewStatsUsecase(statsRepo, businessRepo, userRepo)
	reportUC := usecase.NewReportUsecase(orderRepo, orderItemRepo, businessRepo)

	//Handler生成
	cookieSecure := cfg.GoEnv == "prod"
	handlers := server.Handlers{
		Auth:     handler.NewAuthHandler(registerUC, loginUC, userRepo, cookieSecure),
		Product:  handler.NewProductHandler(productUC),
		Category: handler.NewCategoryHandler(categoryUC),
		Business: handler.NewBusinessHandler(businessUC),
		Order:    handler.NewOrderHandler(orderUC),
		Seller:   handler.NewSellerHandler(sellerOrderUC, statsUC, reportUC),
		Admin:    handler.NewAdminHandler(adminUC, statsUC),
	}

	//Server起動
	srv := server.New(cfg)
	srv.RegisterRoutes(handlers)

	go func() {
		if err := srv.Start(); err != nil {
			log.Info("server stopped", zap.Error(err))
		}
	}()
	log.Info("server started", zap.String("port", cfg.Port))

	//SIGINT/SIGTERMでシャットダウン
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
	if err := db.Close(gormDB); err != nil {
		log.Error("db close failed", zap.Error(err))
	}
}
