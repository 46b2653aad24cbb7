package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "gmfn-backend/internal/adapter/http"
	"gmfn-backend/internal/adapter/middleware"
	"gmfn-backend/internal/adapter/repository/mysql"
	"gmfn-backend/internal/config"
	"gmfn-backend/internal/infrastructure/cache"
	"gmfn-backend/internal/infrastructure/db"
	guarantorUC "gmfn-backend/internal/usecase/guarantor"
	loanUC "gmfn-backend/internal/usecase/loan"
	"gmfn-backend/internal/usecase/member"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal(err)
	}
	if err := db.Bootstrap(gdb); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := mysql.NewUserRepository(gdb)
	clanRepo := mysql.NewClanRepository(gdb)
	memberRepo := mysql.NewMembershipRepository(gdb)
	loanRepo := mysql.NewLoanRepository(gdb)
	guarantorRepo := mysql.NewGuarantorRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	members := member.NewUsecase(userRepo, clanRepo, memberRepo)
	loans := loanUC.NewUsecase(loanRepo, memberRepo, guarantorRepo, uow)
	guarantors := guarantorUC.NewUsecase(loanRepo, memberRepo, guarantorRepo, uow)

	h := httpadp.NewHandler()
	authH := httpadp.NewAuthHandler(members)
	loanH := httpadp.NewLoanHandler(loans, members)
	guarantorH := httpadp.NewGuarantorHandler(guarantors, members)
	clanH := httpadp.NewClanHandler(members)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)
	e.POST("/auth/signup", authH.Signup)
	e.POST("/auth/login", authH.Login)

	api := e.Group("",
		middleware.RequireUser(userRepo),
		middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second),
	)
	api.GET("/loans", loanH.ListMyLoans)
	api.GET("/loans/admin/all", loanH.ListAllLoans)
	api.POST("/loans", loanH.CreateLoan)
	api.GET("/loans/:loan_id", loanH.GetLoan)
	api.PATCH("/loans/:loan_id", loanH.UpdateLoanStatus)
	api.POST("/loans/:loan_id/guarantors", guarantorH.InviteGuarantor)
	api.GET("/loans/:loan_id/guarantors", guarantorH.ListGuarantors)
	api.PATCH("/loans/:loan_id/guarantors/:guarantor_id", guarantorH.DecideGuarantor)
	api.PATCH("/clans/:clan_id/members/:user_id/pool", clanH.SetPoolBalance)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
