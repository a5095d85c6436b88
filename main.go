package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "INOPNC-backend/docs"
	"INOPNC-backend/internal/attendance"
	"INOPNC-backend/internal/laborhours"
	"INOPNC-backend/internal/payroll"
	"INOPNC-backend/internal/platform/auth"
	"INOPNC-backend/internal/platform/db"
)

func main() {
	// 設定読み込み
	cfgPath := "config/config.yaml"
	if v := os.Getenv("INOPNC_CONFIG"); v != "" {
		cfgPath = v
	}
	cfg, err := db.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
	mode := cfg.Mode
	log.Printf("[INFO] mode:%s version:%s\n", mode, cfg.Version)

	conn, err := db.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
	defer conn.Close()
	log.Printf("[INFO] connected to DB: %s", cfg.DB.DBName)

	holidays := cfg.HolidayCalendar()
	log.Printf("[INFO] holidays loaded: %s years=%v", holidays, holidays.Years())

	r := setupRouter(cfg, conn, holidays)

	srv := &http.Server{
		Addr:              ":8443",
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// TLS設定（config/tls/<mode>/ 配下）
	certFile := fmt.Sprintf("config/tls/%s/%s", mode, cfg.Certificate.Cert)
	keyFile := fmt.Sprintf("config/tls/%s/%s", mode, cfg.Certificate.Key)

	go func() {
		log.Println("[INFO] listening on https://0.0.0.0:8443")
		if err := srv.ListenAndServeTLS(certFile, keyFile); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}

// setupRouter: /api/v1 を権限ごとに分ける
//   - public:  ログインのみ
//   - api:     認証済み（参照系）
//   - manager: 현장관리자・admin（공수入力・급여参照）
//   - admin:   admin のみ（명세서発行・出力・アカウント管理）
func setupRouter(cfg *db.Config, conn *sql.DB, holidays *laborhours.HolidayCalendar) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	if cfg.Mode == db.ModeDev {
		// CORS（開発中のみ。Next.js の dev サーバー）
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "Location"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// ヘルス
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	secret := cfg.JWTSecret()
	public := r.Group("/api/v1")
	api := r.Group("/api/v1", auth.RequireAuth(secret))
	manager := r.Group("/api/v1", auth.RequireAuth(secret), auth.RequireRole(auth.RoleAdmin, auth.RoleSiteManager))
	admin := r.Group("/api/v1", auth.RequireAuth(secret), auth.RequireRole(auth.RoleAdmin))

	auth.RegisterRoutes(public, api, admin, auth.NewService(conn, secret, cfg.TokenTTL()))

	attSvc := attendance.NewService(conn, holidays)
	attendance.RegisterRoutes(api, attSvc)
	attendance.RegisterManagerRoutes(manager, attSvc)

	paySvc := payroll.NewService(conn, payroll.Rates{
		Hourly:   cfg.Payroll.DefaultHourlyRate,
		Overtime: cfg.Payroll.DefaultOvertimeRate,
	})
	payroll.RegisterRoutes(manager, paySvc)
	payroll.RegisterAdminRoutes(admin, paySvc)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "route not found"}})
	})
	return r
}
