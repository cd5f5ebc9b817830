package integration

import (
	"context"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sayitloud/application/api"
	"sayitloud/application/optimistic"
	"sayitloud/infrastructure/config"
	"sayitloud/infrastructure/di"
	"sayitloud/infrastructure/transport"
	pkgerrors "sayitloud/pkg/errors"
)

type clientUnderTest struct {
	container   *di.Container
	navigations *int32
}

// newClient wires a full container, exactly as the CLI does, against the
// fake backend.
func newClient(t *testing.T, serverURL string) *clientUnderTest {
	t.Helper()

	cfg := &config.Config{
		APIURL:      serverURL + "/api",
		HTTPTimeout: 5 * time.Second,
		StateDir:    t.TempDir(),
		Environment: "production",
		LogLevel:    "error",
	}

	var navigations int32
	container, err := di.InitializeContainer(cfg, transport.NavigatorFunc(func() {
		atomic.AddInt32(&navigations, 1)
	}))
	require.NoError(t, err)
	t.Cleanup(container.Close)
	require.NoError(t, container.Session.Hydrate())

	return &clientUnderTest{container: container, navigations: &navigations}
}

func (c *clientUnderTest) signup(t *testing.T, username string) {
	t.Helper()
	user, err := c.container.API.Signup(context.Background(), api.SignupArgs{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.NoError(t, c.container.Session.Login(user))
}

func TestFullClientFlow(t *testing.T) {
	backend := newFakeBackend()
	server := httptest.NewServer(backend)
	defer server.Close()

	ctx := context.Background()

	alice := newClient(t, server.URL)
	alice.signup(t, "alice")

	bob := newClient(t, server.URL)
	bob.signup(t, "bob")

	// alice posts; the confirmed post lands at the head of her feed and the
	// analysis request fires detached
	aliceFeed := alice.container.FeedView()
	defer aliceFeed.Close()
	require.NoError(t, aliceFeed.Load(ctx))

	post, err := aliceFeed.CreatePost(ctx, "hello, world", nil)
	require.NoError(t, err)
	require.Len(t, aliceFeed.Posts(), 1)
	assert.Equal(t, "alice", aliceFeed.Posts()[0].User.Username)

	alice.container.Analysis.Close()
	assert.Equal(t, 1, backend.analyzeCount())

	// bob sees the post, likes it and comments on it
	bobFeed := bob.container.FeedView()
	defer bobFeed.Close()
	require.NoError(t, bobFeed.Load(ctx))
	require.Len(t, bobFeed.Posts(), 1)

	outcome, err := bobFeed.ToggleLike(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, optimistic.OutcomeCommitted, outcome)
	assert.True(t, bobFeed.Posts()[0].LikedBy(bob.mustUserID(t)))

	bobDetail := bob.container.PostDetailView(post.ID)
	defer bobDetail.Close()
	require.NoError(t, bobDetail.Load(ctx))
	comment, err := bobDetail.AddComment(ctx, "nice one", nil)
	require.NoError(t, err)
	assert.Equal(t, "bob", comment.User.Username)

	// alice receives both notifications and clears them
	aliceNotifications := alice.container.NotificationsView()
	defer aliceNotifications.Close()
	require.NoError(t, aliceNotifications.Load(ctx))
	require.Len(t, aliceNotifications.Notifications(), 2)
	assert.Equal(t, 2, aliceNotifications.UnreadCount())

	outcome, err = aliceNotifications.MarkAllRead(ctx)
	require.NoError(t, err)
	assert.Equal(t, optimistic.OutcomeCommitted, outcome)
	assert.Equal(t, 0, aliceNotifications.UnreadCount())

	// a fresh load reflects the server-side flags
	reloaded := alice.container.NotificationsView()
	defer reloaded.Close()
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, 0, reloaded.UnreadCount())
}

func TestSessionSurvivesRestart(t *testing.T) {
	backend := newFakeBackend()
	server := httptest.NewServer(backend)
	defer server.Close()

	cfg := &config.Config{
		APIURL:      server.URL + "/api",
		HTTPTimeout: 5 * time.Second,
		StateDir:    t.TempDir(),
		Environment: "production",
		LogLevel:    "error",
	}

	first, err := di.InitializeContainer(cfg, transport.NavigatorFunc(func() {}))
	require.NoError(t, err)
	defer first.Close()
	require.NoError(t, first.Session.Hydrate())

	user, err := first.API.Signup(context.Background(), api.SignupArgs{
		Username: "alice", Email: "alice@example.com", Password: "secret1",
	})
	require.NoError(t, err)
	require.NoError(t, first.Session.Login(user))

	// a second container over the same state dir picks up the session
	second, err := di.InitializeContainer(cfg, transport.NavigatorFunc(func() {}))
	require.NoError(t, err)
	defer second.Close()
	require.NoError(t, second.Session.Hydrate())

	restored, ok := second.Session.Current()
	require.True(t, ok)
	assert.Equal(t, "alice", restored.Username)

	feed := second.FeedView()
	defer feed.Close()
	assert.NoError(t, feed.Load(context.Background()))
}

func TestSessionExpiryClearsStateAndRedirects(t *testing.T) {
	backend := newFakeBackend()
	server := httptest.NewServer(backend)
	defer server.Close()

	ctx := context.Background()

	client := newClient(t, server.URL)
	client.signup(t, "alice")
	token := client.container.Session.Token()
	require.NotEmpty(t, token)

	backend.revoke(token)

	feed := client.container.FeedView()
	defer feed.Close()
	err := feed.Load(ctx)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsSessionExpired(err))

	// the 401 policy cleared the session and issued exactly one redirect
	_, ok := client.container.Session.Current()
	assert.False(t, ok)
	assert.Empty(t, client.container.Session.Token())
	assert.Equal(t, int32(1), atomic.LoadInt32(client.navigations))

	// the persisted state is gone too: a rehydrated store stays empty
	fresh, err := di.InitializeContainer(client.container.Config, transport.NavigatorFunc(func() {}))
	require.NoError(t, err)
	defer fresh.Close()
	require.NoError(t, fresh.Session.Hydrate())
	_, ok = fresh.Session.Current()
	assert.False(t, ok)
}

func (c *clientUnderTest) mustUserID(t *testing.T) string {
	t.Helper()
	user, ok := c.container.Session.Current()
	require.True(t, ok)
	return user.ID
}
