package http

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/smetchik/backend/internal/backend/service"
	"github.com/smetchik/backend/internal/backend/store"
	"github.com/smetchik/backend/pkg/httpx"
	"github.com/smetchik/backend/pkg/slogx"

	_ "github.com/smetchik/backend/api/backend" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Domain is one of the logical sub-APIs. In split mode each domain gets its
// own listener.
type Domain string

const (
	DomainAuth    Domain = "auth"    // /auth/*, /account/*
	DomainSupport Domain = "support" // /support/*
	DomainScan    Domain = "scan"    // /api/v1/scan/*
)

// AllDomains lists every domain in registration order.
func AllDomains() []Domain {
	return []Domain{DomainAuth, DomainSupport, DomainScan}
}

// Limits bounds request bodies and request rates.
type Limits struct {
	JSONBodyBytes int64
	UploadBytes   int64
	RateLimits    httpx.RateLimitProfiles
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	limits       Limits

	store          store.Store
	TokenService   *service.TokenService
	UserService    *service.UserService
	MFAService     *service.MFAService
	ResetService   *service.ResetService
	SupportService *service.SupportService
	ScanService    *service.ScanService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger, limits Limits) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		limits:       limits,
		store:        st,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ApplyRoutes registers the given domains plus the system routes. With no
// arguments every domain is registered.
func (r *Router) ApplyRoutes(domains ...Domain) {
	if len(domains) == 0 {
		domains = AllDomains()
	}

	if slices.Contains(domains, DomainAuth) {
		r.registerAuth()
		r.registerAccount()
	}
	if slices.Contains(domains, DomainSupport) {
		r.registerSupport()
	}
	if slices.Contains(domains, DomainScan) {
		r.registerScan()
	}
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())

	// Anything unmatched, including a known path with the wrong method.
	r.Mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		httpx.WriteError(w, http.StatusNotFound, "Not found")
	})
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title						Smetchik Backend API
//	@version					1.0.0
//	@description				Reference backend for the Smetchik construction-estimate app: accounts, support tickets and room scans.
//	@description
//	@description				Errors are always JSON of the form {"error": "message"}.
//
//	@BasePath					/
//	@schemes					http
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Access token from login or register. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	auth := &AuthHandler{
		UserService:  r.UserService,
		TokenService: r.TokenService,
		MaxBodyBytes: r.limits.JSONBodyBytes,
	}
	reset := &ResetHandler{
		ResetService: r.ResetService,
		MaxBodyBytes: r.limits.JSONBodyBytes,
	}

	// Credential endpoints share the strict per-IP budget.
	strict := func(h http.HandlerFunc) http.Handler {
		return httpx.Chain(h, httpx.RateLimitByIP(r.limits.RateLimits.Strict))
	}

	r.Mux.Handle("POST /auth/login", strict(auth.HandleLogin))
	r.Mux.Handle("POST /auth/register", strict(auth.HandleRegister))
	r.Mux.Handle("POST /auth/refresh", strict(auth.HandleRefresh))
	r.Mux.Handle("POST /auth/request-reset", strict(reset.HandleRequestReset))
	r.Mux.Handle("POST /auth/reset-password", strict(reset.HandleResetPassword))
}

func (r *Router) registerAccount() {
	h := &AccountHandler{
		UserService:  r.UserService,
		MFAService:   r.MFAService,
		MaxBodyBytes: r.limits.JSONBodyBytes,
	}

	secured := func(h http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(h,
			httpx.AuthnMiddleware(r.TokenService, true),
			httpx.RateLimitByUser(limit),
		)
	}

	r.Mux.Handle("POST /account/change-password", secured(h.HandleChangePassword, r.limits.RateLimits.Moderate))
	r.Mux.Handle("POST /account/2fa", secured(h.HandleSetTwoFA, r.limits.RateLimits.Moderate))
	r.Mux.Handle("GET /account/2fa", secured(h.HandleTwoFAStatus, r.limits.RateLimits.Moderate))
	r.Mux.Handle("POST /account/2fa/verify", secured(h.HandleVerifyTwoFA, r.limits.RateLimits.Strict))

	// Delete answers 200 even when nobody is signed in.
	r.Mux.Handle("POST /account/delete",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.AuthnMiddleware(r.TokenService, false),
			httpx.RateLimitByUser(r.limits.RateLimits.Moderate),
		),
	)
}

func (r *Router) registerSupport() {
	h := &SupportHandler{
		SupportService: r.SupportService,
		MaxBodyBytes:   r.limits.JSONBodyBytes,
	}

	// Ticket intake must never be refused, so it carries no rate limit.
	r.Mux.HandleFunc("POST /support/tickets", h.HandleCreate)
	r.Mux.HandleFunc("GET /support/tickets", h.HandleList)
}

func (r *Router) registerScan() {
	h := &ScanHandler{
		ScanService:    r.ScanService,
		MaxBodyBytes:   r.limits.JSONBodyBytes,
		MaxUploadBytes: r.limits.UploadBytes,
	}

	r.Mux.Handle("POST /api/v1/scan/process",
		httpx.Chain(http.HandlerFunc(h.HandleProcess),
			httpx.RateLimitByIP(r.limits.RateLimits.Lenient),
		),
	)
	r.Mux.Handle("POST /api/v1/scan/finish",
		httpx.Chain(http.HandlerFunc(h.HandleFinish),
			httpx.RateLimitByIP(r.limits.RateLimits.Lenient),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
