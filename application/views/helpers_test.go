package views

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sayitloud/application/analysis"
	"sayitloud/application/api"
	"sayitloud/application/optimistic"
	"sayitloud/application/session"
	"sayitloud/application/store"
	"sayitloud/domain/entities"
	"sayitloud/infrastructure/persistence/memory"
	"sayitloud/infrastructure/transport"
)

// testEnv wires the full client core against a stub server whose handler
// each test provides.
type testEnv struct {
	deps     Deps
	session  *session.Store
	analysis *analysis.Trigger
	server   *httptest.Server
}

func newTestEnv(t *testing.T, handler http.HandlerFunc) *testEnv {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := zap.NewNop()
	sess := session.NewStore(memory.NewMemoryStorage(), logger)
	require.NoError(t, sess.Hydrate())

	tc := transport.NewClient(server.URL, 5*time.Second, sess, sess, transport.NavigatorFunc(func() {}), logger)
	apiClient := api.NewClient(tc, logger)

	env := &testEnv{
		deps: Deps{
			API:     apiClient,
			Store:   store.NewStore(logger),
			Runner:  optimistic.NewRunner(logger),
			Session: sess,
			Logger:  logger,
		},
		session:  sess,
		analysis: analysis.NewTrigger(apiClient, logger),
		server:   server,
	}
	t.Cleanup(env.analysis.Close)
	return env
}

// login seeds an authenticated identity the views act as.
func (e *testEnv) login(t *testing.T, id, username string) {
	t.Helper()
	require.NoError(t, e.session.Login(&entities.AuthenticatedUser{
		User:  entities.User{ID: id, Username: username, Email: username + "@example.com"},
		Token: "tok-" + id,
	}))
}

func feedPost(id, ownerID, content string, likes ...string) entities.Post {
	return entities.Post{
		ID:      id,
		User:    entities.User{ID: ownerID, Username: "user-" + ownerID},
		Content: content,
		Likes:   likes,
	}
}

func mustJSON(t *testing.T, w http.ResponseWriter, v string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	_, err := w.Write([]byte(v))
	require.NoError(t, err)
}
