package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/boardman/internal/metrics"
	"github.com/hitoshi/boardman/internal/middleware"
)

// HealthChecker はヘルスチェックに必要なインターフェース。
// bun.DBの部分集合として定義する。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	TokenVerifier     middleware.TokenVerifier
	UserFinder        middleware.UserFinder
	CookieConfig      middleware.CookieConfig
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Metrics           middleware.HTTPMetricsRecorder
	AuthMetrics       AuthMetricsRecorder

	// 運用エンドポイント
	HealthChecker HealthChecker
	Gatherer      prometheus.Gatherer

	// サービス層
	AuthService    AuthService
	AccountService AccountService
	BoardService   BoardService
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → CORS → SecurityHeaders → Metrics → Logging
//
// 認証が必要なルートではさらに Auth → RateLimit(General) が適用される。
// サインアップ・サインインにはIP単位のレート制限のみが適用される。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	if deps.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	}
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))

	authHandler := NewAuthHandler(deps.AuthService, deps.CookieConfig, deps.AuthMetrics)
	userHandler := NewUserHandler(deps.AccountService)
	postHandler := NewPostHandler(deps.BoardService)
	commentHandler := NewCommentHandler(deps.BoardService)

	// --- 運用エンドポイント ---

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := deps.HealthChecker.PingContext(req.Context()); err != nil {
			slog.Error("health check failed",
				slog.String("error", err.Error()),
			)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	// --- APIルート ---

	r.Route("/api", func(r chi.Router) {
		// 認証エンドポイント（IP単位のレート制限のみ）
		r.Group(func(r chi.Router) {
			r.Use(deps.RateLimiter.AuthEndpointMiddleware())

			r.Post("/sign-up", authHandler.SignUp)
			r.Post("/sign-in", authHandler.SignIn)
		})

		// 認証不要の参照系ルート
		r.Get("/posts", postHandler.ListPosts)
		r.Get("/posts/{postId}", postHandler.GetPost)
		r.Get("/posts/{postId}/comments", commentHandler.ListComments)

		// 認証が必要なルート
		// ミドルウェアスタック: Auth → RateLimit(General)
		r.Group(func(r chi.Router) {
			r.Use(middleware.NewAuthMiddleware(deps.TokenVerifier, deps.UserFinder, deps.CookieConfig))
			r.Use(deps.RateLimiter.GeneralMiddleware())

			// アカウント管理
			r.Get("/users", userHandler.Me)
			r.Patch("/users", userHandler.UpdateProfile)

			// 掲示板への書き込み
			r.Post("/posts", postHandler.CreatePost)
			r.Post("/posts/{postId}/comments", commentHandler.CreateComment)
		})
	})

	return r
}
