package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"chat-client/internal/gateway"
	"chat-client/internal/push"
	"chat-client/internal/store"
	"chat-client/internal/syncer"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	token := os.Getenv("CHAT_TOKEN")
	if token == "" {
		logger.Fatal("CHAT_TOKEN is required")
	}
	serverURL := getEnv("CHAT_SERVER_URL", "http://localhost:8000/api/chat")
	wsURL := getEnv("CHAT_WS_URL", "ws://localhost:8000/ws/")
	cacheDir := getEnv("CHAT_CACHE_DIR", ".chat-client")
	metricsAddr := getEnv("METRICS_ADDR", ":9100")

	if err := os.MkdirAll(cacheDir, 0o700); err != nil {
		logger.Fatal("create cache dir", zap.Error(err))
	}

	friends, err := store.OpenFriends(filepath.Join(cacheDir, "friends.db"))
	if err != nil {
		logger.Fatal("open friends store", zap.Error(err))
	}
	defer friends.Close()

	convs, err := store.OpenConversations(filepath.Join(cacheDir, "conversations.db"))
	if err != nil {
		logger.Fatal("open conversations store", zap.Error(err))
	}
	defer convs.Close()

	gw := gateway.New(serverURL, func() string { return token })
	engine := syncer.New(gw, friends, convs, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	user, err := gw.UserInfo(ctx)
	if err != nil {
		logger.Fatal("resolve user", zap.Error(err))
	}
	logger.Info("signed in", zap.String("username", user.Username))

	bootstrap(ctx, engine, logger)

	go serveDiagnostics(metricsAddr, logger)

	listener := push.NewListener(wsURL, token, logger)
	go func() {
		if err := listener.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("push listener stopped", zap.Error(err))
		}
	}()

	for ev := range listener.Events() {
		if err := engine.HandleEvent(ctx, ev); err != nil {
			logger.Warn("event not applied", zap.Stringer("type", ev.Type), zap.Error(err))
		}
	}
	logger.Info("shutting down")
}

// bootstrap establishes the baseline cache with full pulls of every
// collection. Individual failures are logged, not fatal: the push listener
// will trigger retries as events arrive.
func bootstrap(ctx context.Context, engine *syncer.Engine, logger *zap.Logger) {
	if err := engine.PullFriends(ctx); err != nil {
		logger.Warn("pull friends", zap.Error(err))
	}
	if n, err := engine.PullFriendRequests(ctx); err != nil {
		logger.Warn("pull friend requests", zap.Error(err))
	} else if n > 0 {
		logger.Info("pending friend requests", zap.Int("count", n))
	}
	if err := engine.PullGroups(ctx); err != nil {
		logger.Warn("pull groups", zap.Error(err))
	}
	if n, err := engine.PullGroupRequests(ctx); err != nil {
		logger.Warn("pull group requests", zap.Error(err))
	} else if n > 0 {
		logger.Info("pending group requests", zap.Int("count", n))
	}
	unread, err := engine.PullAllMessages(ctx)
	if err != nil {
		logger.Warn("pull messages", zap.Error(err))
	}
	total := 0
	for _, n := range unread {
		total += n
	}
	logger.Info("bootstrap complete",
		zap.Int("conversations", len(unread)), zap.Int("unread", total))
}

func serveDiagnostics(addr string, logger *zap.Logger) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if err := router.Run(addr); err != nil {
		logger.Error("diagnostics server error", zap.Error(err))
	}
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
