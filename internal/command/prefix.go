// /internal/command/prefix.go
package command

import (
	"fmt"
	"strings"

	"parley/internal/core"
	"parley/pkg/argparse"
)

var prefixParser = argparse.MustNew(argparse.Schema{
	"c": {Name: "clear"},
}, argparse.Policy{})

type PrefixCommand struct{}

func (c *PrefixCommand) Name() string        { return "prefix" }
func (c *PrefixCommand) Description() string { return "Set this server's command prefix, or `-c` to clear" }
func (c *PrefixCommand) Aliases() []string   { return []string{} }
func (c *PrefixCommand) Category() string    { return "⚙️ Settings" }
func (c *PrefixCommand) RequireAdmin() bool  { return true }

func (c *PrefixCommand) ArgParser() *argparse.Parser { return prefixParser }

func (c *PrefixCommand) Run(ctx interface{}) error {
	msg, ok := ctx.(*core.MessageContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	rec := prefixParser.Parse(msg.Raw)

	if rec.Flag("clear") {
		if err := msg.Storage.SetPrefix(msg.Event.GuildID, ""); err != nil {
			return err
		}
		return core.MessageRespond(msg.Session, msg.Event.ChannelID,
			fmt.Sprintf("Prefix reset to the default `%s`.", msg.Config.CommandPrefix))
	}

	prefix := strings.TrimSpace(rec.Remainder())
	if prefix == "" {
		current, err := msg.Storage.GetPrefix(msg.Event.GuildID)
		if err != nil {
			return err
		}
		if current == "" {
			current = msg.Config.CommandPrefix
		}
		return core.MessageRespond(msg.Session, msg.Event.ChannelID,
			fmt.Sprintf("Current prefix is `%s`.", current))
	}
	if len(prefix) > 5 {
		return core.MessageRespond(msg.Session, msg.Event.ChannelID, "Keep the prefix under 6 characters.")
	}

	if err := msg.Storage.SetPrefix(msg.Event.GuildID, prefix); err != nil {
		return err
	}
	return core.MessageRespond(msg.Session, msg.Event.ChannelID,
		fmt.Sprintf("Prefix set to `%s`.", prefix))
}

func init() {
	core.RegisterCommand(
		core.ApplyMiddlewares(
			&PrefixCommand{},
			core.WithCommandLog(),
			core.WithAdminOnly(),
			core.WithGuildOnly(),
		),
	)
}
