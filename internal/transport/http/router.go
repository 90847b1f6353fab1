package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/daeseda/laundry-api/internal/application/order"
	"github.com/daeseda/laundry-api/internal/application/review"
	"github.com/daeseda/laundry-api/internal/application/session"
	"github.com/daeseda/laundry-api/internal/application/user"
	"github.com/daeseda/laundry-api/internal/application/verification"
	"github.com/daeseda/laundry-api/internal/config"
	"github.com/daeseda/laundry-api/internal/domain"
	"github.com/daeseda/laundry-api/internal/transport/http/handler"
	appmiddleware "github.com/daeseda/laundry-api/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		// No signing keys: authenticated routes reject everything rather than
		// letting requests through unchecked.
		authMw = func(http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"error":"authentication unavailable"}`))
			})
		}
	}

	// 5 requests/second, burst of 10 — applied to signup, login and the mail
	// verification endpoints so codes cannot be brute-forced from one address.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	verificationSvc := verification.NewService(deps.CodeStore, deps.UserRepo, deps.Mailer, cfg.VerificationCodeTTL)
	userSvc := user.NewService(deps.UserRepo, deps.SessionRepo)
	sessionSvc := session.NewService(deps.SessionRepo, deps.UserRepo, deps.JWTProvider, cfg.RefreshTokenTTL)
	orderSvc := order.NewService(deps.OrderRepo, deps.CatalogRepo, deps.NoticeRepo, deps.UserRepo, deps.SMSSender)
	reviewSvc := review.NewService(deps.ReviewRepo, deps.OrderRepo, deps.S3Store)

	healthH := handler.NewHealthHandler()
	userH := handler.NewUserHandler(userSvc)
	mailH := handler.NewMailHandler(verificationSvc)
	sessionH := handler.NewSessionHandler(sessionSvc)
	orderH := handler.NewOrderHandler(orderSvc)
	reviewH := handler.NewReviewHandler(reviewSvc)

	r.Get("/health-check", healthH.Check)

	r.Route("/users", func(r chi.Router) {
		r.Get("/signup", userH.SignupForm)
		r.With(sensitiveRL.Limit).Post("/signup", userH.Signup)
		r.With(sensitiveRL.Limit).Post("/login", sessionH.Login)
		r.Post("/refresh", sessionH.Refresh)
		r.With(sensitiveRL.Limit).Post("/mailAuthentication", mailH.RequestCode)
		r.With(sensitiveRL.Limit).Post("/mailConfirm", mailH.ConfirmCode)

		r.Group(func(r chi.Router) {
			r.Use(authMw)
			r.Use(appmiddleware.RequireRole(domain.RoleUser, domain.RoleAdmin))

			r.Post("/logout", sessionH.Logout)
			r.Get("/myInfo", userH.MyInfo)
			r.Patch("/name", userH.UpdateField(user.FieldName))
			r.Patch("/nickname", userH.UpdateField(user.FieldNickname))
			r.Patch("/phone", userH.UpdateField(user.FieldPhone))
			r.Delete("/delete", userH.Delete)
			r.Get("/list", userH.List)
		})
	})

	r.Route("/orders", func(r chi.Router) {
		r.Use(authMw)
		r.Use(appmiddleware.RequireRole(domain.RoleUser, domain.RoleAdmin))

		r.Get("/order-form", orderH.OrderForm)
		r.Post("/request", orderH.Request)
		r.Delete("/withdraw", orderH.Withdraw)
		r.Get("/list", orderH.List)
		r.Patch("/cash", orderH.Cash)
		r.Get("/notices", orderH.Notices)
	})

	r.Route("/review", func(r chi.Router) {
		r.Get("/list", reviewH.List)
		r.Get("/{reviewId}", reviewH.Get)
		r.Get("/{reviewId}/image", reviewH.Image)

		r.Group(func(r chi.Router) {
			r.Use(authMw)
			r.Use(appmiddleware.RequireRole(domain.RoleUser, domain.RoleAdmin))

			r.Post("/register", reviewH.Register)
		})
	})

	return r
}
