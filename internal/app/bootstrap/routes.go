// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	authgooglefeature "github.com/lexhub/lexhub/internal/app/features/authgoogle"
	casesfeature "github.com/lexhub/lexhub/internal/app/features/cases"
	clientsfeature "github.com/lexhub/lexhub/internal/app/features/clients"
	dashboardfeature "github.com/lexhub/lexhub/internal/app/features/dashboard"
	documentsfeature "github.com/lexhub/lexhub/internal/app/features/documents"
	errorsfeature "github.com/lexhub/lexhub/internal/app/features/errors"
	healthfeature "github.com/lexhub/lexhub/internal/app/features/health"
	invoicesfeature "github.com/lexhub/lexhub/internal/app/features/invoices"
	knowledgefeature "github.com/lexhub/lexhub/internal/app/features/knowledge"
	loginfeature "github.com/lexhub/lexhub/internal/app/features/login"
	logoutfeature "github.com/lexhub/lexhub/internal/app/features/logout"
	notesfeature "github.com/lexhub/lexhub/internal/app/features/notes"
	teamfeature "github.com/lexhub/lexhub/internal/app/features/team"
	firmstore "github.com/lexhub/lexhub/internal/app/store/firms"
	userstore "github.com/lexhub/lexhub/internal/app/store/users"
	"github.com/lexhub/lexhub/internal/app/system/auth"
	"github.com/lexhub/lexhub/internal/app/system/scope"
	"github.com/lexhub/lexhub/internal/app/system/tenant"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler. WAFFLE calls this after
// config, DB connection, schema, and Startup have completed.
//
// Middleware order matters: the session middleware loads the caller first,
// then the tenant middleware binds the firm for the request's subdomain.
// Both must run before any feature handler asks the scope engine to narrow
// a query.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	users := userstore.New(db)
	firms := firmstore.New(db)

	// Fresh user state per request: role and permission changes take effect
	// immediately.
	sessionMgr.SetUserFetcher(users)

	engine := scope.NewEngine(db, logger)
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()
	r.Use(sessionMgr.LoadSessionUser)
	r.Use(tenant.Middleware(appCfg.PrimaryDomain, firms, appCfg.MultiFirm, logger))

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(users, sessionMgr, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	googleHandler := authgooglefeature.NewHandler(db, users, sessionMgr,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
	if googleHandler.IsConfigured() {
		r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))
	}

	// Application surface: everything below requires a signed-in caller.
	// Row-level visibility inside each feature is the scope engine's job.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)

		r.Mount("/cases", casesfeature.Routes(casesfeature.NewHandler(db, engine, errLog, logger)))
		r.Mount("/clients", clientsfeature.Routes(clientsfeature.NewHandler(db, engine, errLog, logger)))
		r.Mount("/documents", documentsfeature.Routes(documentsfeature.NewHandler(db, engine, errLog, logger)))
		r.Mount("/invoices", invoicesfeature.Routes(invoicesfeature.NewHandler(db, engine, errLog, logger)))
		r.Mount("/notes", notesfeature.Routes(notesfeature.NewHandler(db, engine, errLog, logger)))
		r.Mount("/knowledge", knowledgefeature.Routes(knowledgefeature.NewHandler(db, engine, errLog, logger)))
		r.Mount("/team", teamfeature.Routes(teamfeature.NewHandler(db, engine, errLog, logger)))
		r.Mount("/dashboard", dashboardfeature.Routes(dashboardfeature.NewHandler(db, engine, errLog, logger)))
	})

	return r, nil
}
