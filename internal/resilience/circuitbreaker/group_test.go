package circuitbreaker

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fail(cb *CircuitBreaker, n int) {
	for i := 0; i < n; i++ {
		_, _ = cb.Execute(func() (interface{}, error) {
			return nil, errors.New("failure")
		})
	}
}

func TestGroup_ReusesBreakerPerKey(t *testing.T) {
	g := NewGroup(testConfig(), nil)

	a := g.For("aws.amazon.com")
	assert.Same(t, a, g.For("aws.amazon.com"))
	assert.NotSame(t, a, g.For("example.com"))
	assert.Equal(t, "test-circuit/aws.amazon.com", a.Name())
	assert.Equal(t, "test-circuit", g.Name())
	assert.Equal(t, 2, g.Len())
}

func TestGroup_FailingKeyDoesNotAffectOthers(t *testing.T) {
	g := NewGroup(testConfig(), nil)

	fail(g.For("down.example.com"), 3)

	assert.True(t, g.For("down.example.com").IsOpen())
	assert.True(t, g.IsOpen())
	assert.Equal(t, []string{"down.example.com"}, g.OpenKeys())

	result, err := g.For("aws.amazon.com").Execute(func() (interface{}, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
}

func TestGroup_EvictsNonOpenBreakersWhenFull(t *testing.T) {
	g := NewGroup(testConfig(), nil)
	g.maxKeys = 2

	fail(g.For("down.example.com"), 3)
	g.For("a.example.com")
	g.For("b.example.com")

	assert.Equal(t, 2, g.Len())
	assert.True(t, g.For("down.example.com").IsOpen(), "open breakers survive eviction")
}

func TestGroup_ConcurrentFor(t *testing.T) {
	g := NewGroup(testConfig(), nil)

	var wg sync.WaitGroup
	got := make([]*CircuitBreaker, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = g.For("aws.amazon.com")
		}(i)
	}
	wg.Wait()

	for _, cb := range got {
		assert.Same(t, got[0], cb)
	}
}

func TestNew_IsSuccessfulExcludesErrors(t *testing.T) {
	ignored := errors.New("caller error")
	cfg := testConfig()
	cfg.IsSuccessful = func(err error) bool { return err == nil || errors.Is(err, ignored) }
	cb := New(cfg, nil)

	for i := 0; i < 5; i++ {
		_, err := cb.Execute(func() (interface{}, error) {
			return nil, ignored
		})
		assert.ErrorIs(t, err, ignored)
	}

	assert.False(t, cb.IsOpen())
}
