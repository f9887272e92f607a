package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"device-loans-backend/internal/deviceloans"
	"device-loans-backend/internal/devices"
	"device-loans-backend/internal/platform/auth"
	"device-loans-backend/internal/platform/config"
	"device-loans-backend/internal/platform/cosmos"
	"device-loans-backend/internal/platform/httpmw"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = config.DefaultPath
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}

	log.Printf("[INFO] mode:%s", cfg.Mode)
	dev := cfg.Mode == "dev"

	// Cosmos ハンドルはここで1個作って各サービスに渡す。
	// 接続と設定解決は初回アクセス時に一度だけ走る。
	provider := cosmos.NewProvider()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), httpmw.RequestID(), httpmw.Metrics())
	_ = r.SetTrustedProxies(nil)

	if dev {
		origins := cfg.CORSOrigins
		if len(origins) == 0 {
			origins = []string{"http://localhost:3000"}
		}
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", httpmw.HeaderRequestID},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
			AllowCredentials: true,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", httpmw.MetricsHandler())

	// 旧来の公開ルート（デバイスカタログ一覧）
	devices.RegisterRoutes(r, devices.NewService(devices.NewStore(provider)), dev)

	// /api/v1
	api := r.Group("/api/v1")
	api.Use(httpmw.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))

	var guard gin.HandlerFunc
	if authSvc := auth.FromEnv(); authSvc != nil {
		auth.RegisterRoutes(api, authSvc)
		guard = auth.RequireAuth(authSvc.Secret())
	} else {
		log.Printf("[INFO] %s not set, mutating routes are unguarded", auth.EnvSecret)
	}

	deviceloans.RegisterRoutes(api, deviceloans.NewService(deviceloans.NewStore(provider)), dev, guard)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	go func() {
		log.Printf("[INFO] listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("[INFO] shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
