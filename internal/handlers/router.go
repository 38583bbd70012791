package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hudada-hub/duanju-admin-sub001/internal/middleware"
	"github.com/hudada-hub/duanju-admin-sub001/internal/service"
	"golang.org/x/time/rate"
)

type Handler struct {
	userService       service.UserService
	withdrawalService service.WithdrawalService
	pointsService     service.PointsService
	secretKey         string
}

func NewHandler(userService service.UserService, withdrawalService service.WithdrawalService, pointsService service.PointsService, secretKey string) *Handler {
	return &Handler{
		userService:       userService,
		withdrawalService: withdrawalService,
		pointsService:     pointsService,
		secretKey:         secretKey,
	}
}

func NewRouter(handler *Handler, secretKey string) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.NewLoggingMiddleware())
	r.Use(middleware.NewGzipMiddleware())

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Invalid URL format", http.StatusNotFound)
	})

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", handler.Register)
		r.Post("/login", handler.Login)
	})

	// The gateway authenticates with its signature, not a bearer token.
	r.Post("/api/gateway/notify", handler.GatewayNotify)

	limiter := middleware.NewCallerLimiter(rate.Limit(20), 40)

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTMiddleware(secretKey))
		r.Use(middleware.RateLimitMiddleware(limiter))

		r.Post("/api/withdrawals", handler.SubmitWithdrawal)
		r.Get("/api/withdrawals", handler.GetWithdrawals)
		r.Get("/api/withdrawals/{id}", handler.GetWithdrawal)

		r.Post("/api/admin/points/adjust", handler.AdjustPoints)
		r.Get("/api/admin/points/{userID}/logs", handler.GetPointLogs)
	})

	return r
}
