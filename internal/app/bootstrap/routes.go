// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	authfeature "github.com/taskhubhq/taskhub/internal/app/features/auth"
	errorsfeature "github.com/taskhubhq/taskhub/internal/app/features/errors"
	healthfeature "github.com/taskhubhq/taskhub/internal/app/features/health"
	projectsfeature "github.com/taskhubhq/taskhub/internal/app/features/projects"
	tasksfeature "github.com/taskhubhq/taskhub/internal/app/features/tasks"
	usersfeature "github.com/taskhubhq/taskhub/internal/app/features/users"
	workspacesfeature "github.com/taskhubhq/taskhub/internal/app/features/workspaces"
	activitystore "github.com/taskhubhq/taskhub/internal/app/store/activity"
	"github.com/taskhubhq/taskhub/internal/app/system/activitylog"
	"github.com/taskhubhq/taskhub/internal/app/system/auth"
	"github.com/taskhubhq/taskhub/internal/app/system/mailer"
	"github.com/taskhubhq/taskhub/internal/app/system/token"
)

// activityLogger lives at package scope so Shutdown can drain it after the
// HTTP server stops accepting requests.
var activityLogger *activitylog.Logger

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// TaskHub initializes the session store, the token signer, the mailer, and
// the async activity logger, then mounts the JSON API feature routers:
// health, auth, users, workspaces, projects, and tasks.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	errLog := errorsfeature.NewErrorLogger(logger)
	tokens := token.NewSigner(appCfg.JWTSecret)

	mail := mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		Username: appCfg.MailSMTPUser,
		Password: appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		Enabled:  appCfg.MailEnabled,
	}, logger)

	// Activity entries are written off the request path; handlers enqueue
	// and move on.
	activityLogger = activitylog.New(activitystore.New(deps.TaskHubMongoDatabase), logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.TaskHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Account lifecycle: register, login, logout, verify, reset
	authHandler := authfeature.NewHandler(deps.TaskHubMongoDatabase, errLog, tokens, mail, appCfg.FrontendURL, logger)
	r.Mount("/auth", authfeature.Routes(authHandler))

	// Signed-in user's own profile
	usersHandler := usersfeature.NewHandler(deps.TaskHubMongoDatabase, errLog, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler))

	// Workspaces: membership, invitations, ownership
	workspacesHandler := workspacesfeature.NewHandler(deps.TaskHubMongoDatabase, errLog, activityLogger, tokens, mail, appCfg.FrontendURL, logger)
	r.Mount("/workspaces", workspacesfeature.Routes(workspacesHandler))

	// Projects within workspaces
	projectsHandler := projectsfeature.NewHandler(deps.TaskHubMongoDatabase, errLog, activityLogger, logger)
	r.Mount("/projects", projectsfeature.Routes(projectsHandler))

	// Tasks, sub-tasks, comments, watchers, activity feeds
	tasksHandler := tasksfeature.NewHandler(deps.TaskHubMongoDatabase, errLog, activityLogger, logger)
	r.Mount("/tasks", tasksfeature.Routes(tasksHandler))

	return r, nil
}
