package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_PriorityOrder(t *testing.T) {
	Clear()
	defer Clear()

	var order []string
	Register("background", PriorityBackground, func(*Context) error {
		order = append(order, "background")
		return nil
	})
	Register("infra", PriorityInfrastructure, func(*Context) error {
		order = append(order, "infra")
		return nil
	})
	Register("core", PriorityCore, func(*Context) error {
		order = append(order, "core")
		return nil
	})

	require.NoError(t, Run(NewContext(nil)))
	assert.Equal(t, []string{"infra", "core", "background"}, order)
}

func TestRun_FailFastStopsRemainingHooks(t *testing.T) {
	Clear()
	defer Clear()

	ran := false
	Register("first", PriorityInfrastructure, func(*Context) error {
		return assert.AnError
	})
	Register("second", PriorityCore, func(*Context) error {
		ran = true
		return nil
	})

	err := Run(NewContext(nil))
	require.Error(t, err)
	assert.False(t, ran, "FailFast must stop before later-priority hooks run")
}

func TestRunWithPolicy_ContinueOnError(t *testing.T) {
	Clear()
	defer Clear()

	ran := false
	Register("first", PriorityInfrastructure, func(*Context) error {
		return assert.AnError
	}).WithErrorPolicy(ContinueOnError)
	Register("second", PriorityCore, func(*Context) error {
		ran = true
		return nil
	})

	err := RunWithPolicy(NewContext(nil), FailFast)
	require.Error(t, err)
	assert.True(t, ran, "ContinueOnError must let later hooks run")
}

func TestOnlyIf_SkipsDisabledHook(t *testing.T) {
	Clear()
	defer Clear()

	ran := false
	Register("conditional", PriorityInfrastructure, func(*Context) error {
		ran = true
		return nil
	}).OnlyIf(func(*Context) bool { return false })

	require.NoError(t, Run(NewContext(nil)))
	assert.False(t, ran)
}

func TestContext_SetGetMustGet(t *testing.T) {
	ctx := NewContext(nil)
	ctx.Set("key", "value")

	v, ok := ctx.Get("key")
	require.True(t, ok)
	assert.Equal(t, "value", v)

	_, ok = ctx.Get("missing")
	assert.False(t, ok)

	assert.Panics(t, func() { ctx.MustGet("missing") })
	assert.NotPanics(t, func() { ctx.MustGet("key") })
}
