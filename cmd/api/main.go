package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "procurement-backend/internal/adapter/http"
	"procurement-backend/internal/adapter/middleware"
	"procurement-backend/internal/adapter/repository/mysql"
	"procurement-backend/internal/config"
	"procurement-backend/internal/domain/policy"
	"procurement-backend/internal/infrastructure/cache"
	"procurement-backend/internal/infrastructure/db"
	"procurement-backend/internal/notification"
	ucbc "procurement-backend/internal/usecase/budgetcode"
	ucreq "procurement-backend/internal/usecase/requisition"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	var notifier notification.Notifier = notification.LogNotifier{}
	if len(cfg.KafkaBrokers) > 0 {
		kn, err := notification.NewKafkaNotifier(notification.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		if err != nil {
			log.Fatalf("kafka: %v", err)
		}
		defer kn.Close()
		notifier = kn
	}
	dispatcher := notification.NewDispatcher(notifier)

	codes := mysql.NewBudgetCodeRepository(gdb)
	reqs := mysql.NewRequisitionRepository(gdb)
	steps := mysql.NewStepRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	bcUsecase := ucbc.NewUsecase(codes, steps, tx, policy.BudgetCode(), dispatcher)
	reqUsecase := ucreq.NewUsecase(reqs, steps, tx, policy.Requisition(), dispatcher)

	h := httpadp.NewHandler()
	bcHandler := httpadp.NewBudgetCodeHandler(bcUsecase)
	reqHandler := httpadp.NewRequisitionHandler(reqUsecase)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)

	api := e.Group("",
		middleware.JWTAuth([]byte(cfg.JWTSecret)),
		middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second),
	)

	api.POST("/budget-codes", bcHandler.Create)
	api.GET("/budget-codes", bcHandler.List)
	api.GET("/budget-codes/pending-approvals", bcHandler.PendingApprovals)
	api.GET("/budget-codes/:code_id", bcHandler.Get)
	api.DELETE("/budget-codes/:code_id", bcHandler.Delete)
	api.POST("/budget-codes/:code_id/approve", bcHandler.Approve)
	api.GET("/budget-codes/:code_id/approval-history", bcHandler.ApprovalHistory)

	api.POST("/requisitions", reqHandler.Create)
	api.GET("/requisitions", reqHandler.List)
	api.GET("/requisitions/pending-approvals", reqHandler.PendingApprovals)
	api.GET("/requisitions/:requisition_id", reqHandler.Get)
	api.DELETE("/requisitions/:requisition_id", reqHandler.Delete)
	api.POST("/requisitions/:requisition_id/approve", reqHandler.Approve)
	api.POST("/requisitions/:requisition_id/finance-verification", reqHandler.FinanceVerification)
	api.GET("/requisitions/:requisition_id/approval-history", reqHandler.ApprovalHistory)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
