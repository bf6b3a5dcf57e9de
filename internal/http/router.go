package httpapi

import (
	"net/http"

	"hostelmate-data/internal/domain"
	"hostelmate-data/internal/service"

	"go.uber.org/zap"
)

// API 路由前缀
const apiPrefix = "/api/v1"

// Router 使用标准库 http.ServeMux；方法在各 handler 内判断
type Router struct {
	mux    *http.ServeMux
	auth   *Authenticator
	logger *zap.Logger
}

func NewRouter(auth *Authenticator, logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		auth:   auth,
		logger: logger,
	}
}

// Handle 公开接口
func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

// HandleAuth 需要登录的接口
func (r *Router) HandleAuth(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, r.auth.Require(h))
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterHealthRoutes /healthz
func (r *Router) RegisterHealthRoutes() {
	r.Handle("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, Ok(map[string]string{"status": "ok"}))
	})
}

// RegisterDashboardRoutes 仪表盘
func (r *Router) RegisterDashboardRoutes(h *DashboardHandler) {
	r.HandleAuth(apiPrefix+"/dashboard/kpis", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			methodNotAllowed(w, req)
			return
		}
		h.GetKPIs(w, req)
	})
	r.HandleAuth(apiPrefix+"/dashboard/export", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			methodNotAllowed(w, req)
			return
		}
		h.Export(w, req)
	})
}

// RegisterMeRoutes /me
func (r *Router) RegisterMeRoutes(h *MeHandler) {
	r.HandleAuth(apiPrefix+"/me", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			methodNotAllowed(w, req)
			return
		}
		h.Me(w, req)
	})
}

// RegisterEntityRoutes 全部实体的 CRUD 路由
func (r *Router) RegisterEntityRoutes(s *service.Services) {
	registerEntity[domain.Property](r, "/properties", s.Properties)
	registerEntity[domain.Unit](r, "/units", s.Units)
	registerEntity[domain.Bed](r, "/beds", s.Beds)
	registerEntity[domain.Tenant](r, "/tenants", s.Tenants)
	registerEntity[domain.BookingAgreement](r, "/booking-agreements", s.Bookings)
	registerEntity[domain.Payment](r, "/payments", s.Payments)
	registerEntity[domain.Expense](r, "/expenses", s.Expenses)
	registerEntity[domain.Subscription](r, "/subscriptions", s.Subscriptions)
	registerEntity[domain.SubscriptionPlan](r, "/subscription-plans", s.Plans)
}

func registerEntity[T any](r *Router, path string, svc entityService[T]) {
	h := NewEntityHandler(apiPrefix+path, svc, r.logger)
	r.HandleAuth(apiPrefix+path, h.Collection)
	r.HandleAuth(apiPrefix+path+"/", h.Item)
}
