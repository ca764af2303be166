package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommand struct {
	name     string
	aliases  []string
	category string
	admin    bool
	ran      int
}

func (c *fakeCommand) Name() string        { return c.name }
func (c *fakeCommand) Description() string { return "fake" }
func (c *fakeCommand) Aliases() []string   { return c.aliases }
func (c *fakeCommand) Category() string    { return c.category }
func (c *fakeCommand) RequireAdmin() bool  { return c.admin }
func (c *fakeCommand) Run(ctx interface{}) error {
	c.ran++
	return nil
}

func TestRegisterCommandResolvesAliases(t *testing.T) {
	t.Cleanup(func() { registry = map[string]Command{} })

	cmd := &fakeCommand{name: "Ping", aliases: []string{"P"}}
	RegisterCommand(cmd)

	for _, lookup := range []string{"ping", "PING", "p"} {
		got, ok := GetCommand(lookup)
		require.True(t, ok, lookup)
		assert.Equal(t, "Ping", got.Name())
	}

	_, ok := GetCommand("pong")
	assert.False(t, ok)
}

func TestAllCommandsDeduplicatesAndOrders(t *testing.T) {
	t.Cleanup(func() { registry = map[string]Command{} })

	RegisterCommand(&fakeCommand{name: "zeta", aliases: []string{"z"}, category: "🕯️ Information"})
	RegisterCommand(&fakeCommand{name: "alpha", category: "🕯️ Information"})
	RegisterCommand(&fakeCommand{name: "beta", category: "📢 Utilities"})

	all := AllCommands()
	require.Len(t, all, 3)
	assert.Equal(t, "alpha", all[0].Name())
	assert.Equal(t, "zeta", all[1].Name())
	assert.Equal(t, "beta", all[2].Name())
}

func TestApplyMiddlewaresWrapsInOrder(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(cmd Command) Command {
			return &wrappedCommand{
				Command: cmd,
				wrap: func(ctx interface{}) error {
					order = append(order, name)
					return cmd.Run(ctx)
				},
			}
		}
	}

	inner := &fakeCommand{name: "x"}
	cmd := ApplyMiddlewares(inner, tag("first"), tag("second"))

	require.NoError(t, cmd.Run(nil))
	assert.Equal(t, []string{"second", "first"}, order)
	assert.Equal(t, 1, inner.ran)
}

func TestMiddlewarePassesThroughUnknownContext(t *testing.T) {
	inner := &fakeCommand{name: "x", admin: true}
	cmd := ApplyMiddlewares(inner, WithAdminOnly(), WithGuildOnly())

	require.NoError(t, cmd.Run("not a message context"))
	assert.Equal(t, 1, inner.ran)
}
