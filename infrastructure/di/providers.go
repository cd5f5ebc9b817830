package di

import (
	"go.uber.org/zap"

	"sayitloud/application/analysis"
	"sayitloud/application/api"
	"sayitloud/application/optimistic"
	"sayitloud/application/session"
	"sayitloud/application/store"
	"sayitloud/application/views"
	"sayitloud/infrastructure/config"
	"sayitloud/infrastructure/persistence"
	"sayitloud/infrastructure/persistence/file"
	"sayitloud/infrastructure/transport"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideStorage creates the file-backed persisted state storage
func ProvideStorage(cfg *config.Config) (persistence.Storage, error) {
	return file.NewFileStorage(cfg.StateDir)
}

// ProvideSessionStore creates the session store
func ProvideSessionStore(storage persistence.Storage, logger *zap.Logger) *session.Store {
	return session.NewStore(storage, logger)
}

// ProvideTransport creates the transport client. The session store serves
// as both the token source and the invalidation target of the 401 policy.
func ProvideTransport(cfg *config.Config, sess *session.Store, navigator transport.Navigator, logger *zap.Logger) *transport.Client {
	return transport.NewClient(cfg.APIURL, cfg.HTTPTimeout, sess, sess, navigator, logger)
}

// ProvideAPIClient creates the typed API surface
func ProvideAPIClient(t *transport.Client, logger *zap.Logger) *api.Client {
	return api.NewClient(t, logger)
}

// ProvideEntityStore creates the shared normalized entity store
func ProvideEntityStore(logger *zap.Logger) *store.Store {
	return store.NewStore(logger)
}

// ProvideRunner creates the optimistic mutation runner
func ProvideRunner(logger *zap.Logger) *optimistic.Runner {
	return optimistic.NewRunner(logger)
}

// ProvideAnalysisTrigger creates the detached analysis trigger
func ProvideAnalysisTrigger(apiClient *api.Client, logger *zap.Logger) *analysis.Trigger {
	return analysis.NewTrigger(apiClient, logger)
}

// ProvideViewDeps bundles the collaborators shared by every view
func ProvideViewDeps(apiClient *api.Client, entityStore *store.Store, runner *optimistic.Runner, sess *session.Store, logger *zap.Logger) views.Deps {
	return views.Deps{
		API:     apiClient,
		Store:   entityStore,
		Runner:  runner,
		Session: sess,
		Logger:  logger,
	}
}
