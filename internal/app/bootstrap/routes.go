// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	errorsfeature "github.com/CUInterface/CanopyAI-Survey/internal/app/features/errors"
	healthfeature "github.com/CUInterface/CanopyAI-Survey/internal/app/features/health"
	homefeature "github.com/CUInterface/CanopyAI-Survey/internal/app/features/home"
	loginfeature "github.com/CUInterface/CanopyAI-Survey/internal/app/features/login"
	logoutfeature "github.com/CUInterface/CanopyAI-Survey/internal/app/features/logout"
	resultsfeature "github.com/CUInterface/CanopyAI-Survey/internal/app/features/results"
	suggestfeature "github.com/CUInterface/CanopyAI-Survey/internal/app/features/suggest"
	surveyfeature "github.com/CUInterface/CanopyAI-Survey/internal/app/features/survey"
	votefeature "github.com/CUInterface/CanopyAI-Survey/internal/app/features/vote"
	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/auth"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// The route map is small: public landing, sign-in/out, a sign-in-gated
// survey page with its JSON vote endpoint and suggestion form, and public
// results with a CSV export.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	db := deps.MongoDatabase

	r := chi.NewRouter()

	// Global auth middleware: loads the session member into context so
	// handlers can use auth.CurrentMember(r).
	r.Use(auth.LoadSessionMember)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages
	homeHandler := homefeature.NewHandler(db, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	resultsHandler := resultsfeature.NewHandler(db, errLog, logger)
	r.Mount("/results", resultsfeature.Routes(resultsHandler))
	r.Get("/export", resultsHandler.HandleExport)

	// Authentication
	loginHandler := loginfeature.NewHandler(db, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Signed-in area: voting page, vote API, suggestion intake
	surveyHandler := surveyfeature.NewHandler(db, errLog, logger)
	voteHandler := votefeature.NewHandler(db, logger)
	suggestHandler := suggestfeature.NewHandler(db, errLog, logger)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Mount("/survey", surveyfeature.Routes(surveyHandler))
		pr.Mount("/vote", votefeature.Routes(voteHandler))
		pr.Mount("/suggest", suggestfeature.Routes(suggestHandler))
	})

	// Friendly 404 instead of the default text response.
	errHandler := errorsfeature.NewHandler()
	r.NotFound(errHandler.NotFound)

	return r, nil
}
