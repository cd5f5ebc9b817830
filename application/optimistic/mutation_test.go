package optimistic

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	pkgerrors "sayitloud/pkg/errors"
)

func TestRunCommitKeepsOptimisticValue(t *testing.T) {
	runner := NewRunner(zap.NewNop())

	likes := 0
	outcome, err := runner.Run(context.Background(), Key{EntityID: "p1", Action: "like"}, Mutation{
		Apply:  func() { likes++ },
		Call:   func(ctx context.Context) error { return nil },
		Revert: func() { likes-- },
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeCommitted, outcome)
	assert.Equal(t, 1, likes)
}

func TestRunFailureRevertsToSnapshot(t *testing.T) {
	runner := NewRunner(zap.NewNop())

	likes := 0
	rejection := pkgerrors.NewRejectedError("nope", 500)
	outcome, err := runner.Run(context.Background(), Key{EntityID: "p1", Action: "like"}, Mutation{
		Apply:  func() { likes++ },
		Call:   func(ctx context.Context) error { return rejection },
		Revert: func() { likes-- },
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsRejected(err))
	assert.Equal(t, OutcomeRolledBack, outcome)
	assert.Equal(t, 0, likes)
}

func TestRunFailureWithoutRevertStillRollsBack(t *testing.T) {
	runner := NewRunner(zap.NewNop())

	applied := false
	outcome, err := runner.Run(context.Background(), Key{EntityID: "all", Action: "read"}, Mutation{
		Apply: func() { applied = true },
		Call: func(ctx context.Context) error {
			return pkgerrors.NewRejectedError("nope", 500)
		},
	})
	require.Error(t, err)
	assert.Equal(t, OutcomeRolledBack, outcome)
	assert.True(t, applied, "the optimistic value stays without a rollback path")
}

func TestRunSessionExpiryAbandonsWithoutRevert(t *testing.T) {
	runner := NewRunner(zap.NewNop())

	reverted := false
	outcome, err := runner.Run(context.Background(), Key{EntityID: "p1", Action: "like"}, Mutation{
		Apply:  func() {},
		Call:   func(ctx context.Context) error { return pkgerrors.NewSessionExpiredError() },
		Revert: func() { reverted = true },
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeAbandoned, outcome)
	assert.False(t, reverted)
}

func TestRunSameKeyReentrySkipped(t *testing.T) {
	runner := NewRunner(zap.NewNop())
	key := Key{EntityID: "p1", Action: "like"}

	started := make(chan struct{})
	release := make(chan struct{})
	calls := 0
	var mu sync.Mutex

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = runner.Run(context.Background(), key, Mutation{
			Apply: func() {},
			Call: func(ctx context.Context) error {
				mu.Lock()
				calls++
				mu.Unlock()
				close(started)
				<-release
				return nil
			},
		})
	}()

	<-started
	assert.True(t, runner.InFlight(key))

	outcome, err := runner.Run(context.Background(), key, Mutation{
		Apply: func() { t.Error("apply must not run for a skipped mutation") },
		Call: func(ctx context.Context) error {
			t.Error("call must not run for a skipped mutation")
			return nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, outcome)

	close(release)
	wg.Wait()
	assert.Equal(t, 1, calls)
	assert.False(t, runner.InFlight(key))
}

func TestRunDistinctKeysProceedIndependently(t *testing.T) {
	runner := NewRunner(zap.NewNop())

	firstStarted := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = runner.Run(context.Background(), Key{EntityID: "p1", Action: "like"}, Mutation{
			Apply: func() {},
			Call: func(ctx context.Context) error {
				close(firstStarted)
				<-release
				return nil
			},
		})
	}()

	<-firstStarted

	done := make(chan Outcome, 1)
	go func() {
		outcome, _ := runner.Run(context.Background(), Key{EntityID: "p2", Action: "like"}, Mutation{
			Apply: func() {},
			Call:  func(ctx context.Context) error { return nil },
		})
		done <- outcome
	}()

	select {
	case outcome := <-done:
		assert.Equal(t, OutcomeCommitted, outcome)
	case <-time.After(2 * time.Second):
		t.Fatal("mutation for a distinct key was blocked")
	}

	close(release)
	wg.Wait()
}

func TestRunKeyAvailableAgainAfterSettling(t *testing.T) {
	runner := NewRunner(zap.NewNop())
	key := Key{EntityID: "p1", Action: "like"}

	calls := 0
	m := Mutation{
		Apply: func() {},
		Call: func(ctx context.Context) error {
			calls++
			return nil
		},
	}

	for i := 0; i < 3; i++ {
		outcome, err := runner.Run(context.Background(), key, m)
		require.NoError(t, err)
		assert.Equal(t, OutcomeCommitted, outcome)
	}
	assert.Equal(t, 3, calls)
}

func TestRunRequiresApplyAndCall(t *testing.T) {
	runner := NewRunner(zap.NewNop())

	_, err := runner.Run(context.Background(), Key{EntityID: "p1", Action: "like"}, Mutation{})
	assert.Error(t, err)
}
