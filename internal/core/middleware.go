package core

import (
	"fmt"
	"time"

	"parley/pkg/argparse"
	"parley/pkg/cooldown"

	"github.com/rs/zerolog/log"
)

type Middleware func(Command) Command

type wrappedCommand struct {
	Command
	wrap func(ctx interface{}) error
}

func (w *wrappedCommand) Run(ctx interface{}) error {
	if w.wrap != nil {
		return w.wrap(ctx)
	}
	return w.Command.Run(ctx)
}

// wrappedCommand must keep forwarding the optional interfaces, otherwise a
// middleware layer would hide them from the CLI and help.
func (w *wrappedCommand) ArgParser() *argparse.Parser {
	if ap, ok := w.Command.(ArgParserProvider); ok {
		return ap.ArgParser()
	}
	return nil
}

func WithGuildOnly() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				if v, ok := ctx.(*MessageContext); ok && v.Event.GuildID == "" {
					return MessageRespond(v.Session, v.Event.ChannelID, "This command only works in a server.")
				}
				return cmd.Run(ctx)
			},
		}
	}
}

func WithAdminOnly() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				v, ok := ctx.(*MessageContext)
				if !ok {
					return cmd.Run(ctx)
				}
				if !cmd.RequireAdmin() {
					return cmd.Run(ctx)
				}
				if v.Event.Member == nil || !IsAdministrator(v.Session, v.Config, v.Event.GuildID, v.Event.Member) {
					return MessageRespond(v.Session, v.Event.ChannelID, "You need administrator rights for that.")
				}
				return cmd.Run(ctx)
			},
		}
	}
}

// WithCooldown rate-limits a command per user.
func WithCooldown(reg *cooldown.Registry) Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				v, ok := ctx.(*MessageContext)
				if !ok {
					return cmd.Run(ctx)
				}
				key := cmd.Name() + ":" + v.Event.Author.ID
				if !reg.Allow(key) {
					wait := reg.Retry(key).Round(time.Second)
					return MessageRespond(v.Session, v.Event.ChannelID,
						fmt.Sprintf("Slow down, try again in %s.", wait))
				}
				return cmd.Run(ctx)
			},
		}
	}
}

// WithCommandLog records every invocation in the guild's command history.
func WithCommandLog() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				if v, ok := ctx.(*MessageContext); ok && v.Event.GuildID != "" {
					if err := LogCommand(v.Session, v.Storage, v.Event, cmd.Name(), v.Raw); err != nil {
						log.Warn().Err(err).Str("command", cmd.Name()).Msg("failed to log command")
					}
				}
				return cmd.Run(ctx)
			},
		}
	}
}

func ApplyMiddlewares(cmd Command, mws ...Middleware) Command {
	for _, mw := range mws {
		cmd = mw(cmd)
	}
	return cmd
}
