// /internal/command/purge.go
package command

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"parley/internal/core"
	"parley/pkg/argparse"

	"github.com/rs/zerolog/log"
)

const purgeFetchLimit = 100

var purgeParser = argparse.MustNew(argparse.Schema{
	"n": {Name: "count", Arity: 1},
	"u": {Name: "user", Arity: 1},
	"s": {Name: "silent"},
}, argparse.Policy{})

type PurgeCommand struct{}

func (c *PurgeCommand) Name() string        { return "purge" }
func (c *PurgeCommand) Description() string { return "Delete recent messages: `purge -n 20 -u @someone`" }
func (c *PurgeCommand) Aliases() []string   { return []string{"clean"} }
func (c *PurgeCommand) Category() string    { return "🧹 Cleanup" }
func (c *PurgeCommand) RequireAdmin() bool  { return true }

func (c *PurgeCommand) ArgParser() *argparse.Parser { return purgeParser }

func (c *PurgeCommand) Run(ctx interface{}) error {
	msg, ok := ctx.(*core.MessageContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	if !core.CheckBotPermissions(msg.Session, msg.Event.ChannelID) {
		return core.MessageRespond(msg.Session, msg.Event.ChannelID,
			"I need the Manage Messages permission in this channel.")
	}

	rec := purgeParser.Parse(msg.Raw)

	count := 10
	if v, ok := rec.Value("count"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > purgeFetchLimit {
			return core.MessageRespond(msg.Session, msg.Event.ChannelID,
				fmt.Sprintf("Count must be a number between 1 and %d.", purgeFetchLimit))
		}
		count = n
	}

	userID := ""
	if v, ok := rec.Value("user"); ok && v != "" {
		userID = strings.Trim(v, "<@!>")
	}

	messages, err := msg.Session.ChannelMessages(msg.Event.ChannelID, purgeFetchLimit, msg.Event.ID, "", "")
	if err != nil {
		return fmt.Errorf("fetch messages: %w", err)
	}

	// Bulk deletion silently skips messages older than two weeks.
	cutoff := time.Now().Add(-14 * 24 * time.Hour)
	var ids []string
	for _, m := range messages {
		if len(ids) >= count {
			break
		}
		if userID != "" && m.Author.ID != userID {
			continue
		}
		if m.Timestamp.Before(cutoff) {
			continue
		}
		ids = append(ids, m.ID)
	}

	if len(ids) == 0 {
		return core.MessageRespond(msg.Session, msg.Event.ChannelID, "Nothing recent enough to delete.")
	}

	if err := msg.Session.ChannelMessagesBulkDelete(msg.Event.ChannelID, ids); err != nil {
		return fmt.Errorf("bulk delete: %w", err)
	}
	if err := msg.Session.ChannelMessageDelete(msg.Event.ChannelID, msg.Event.ID); err != nil {
		log.Debug().Err(err).Msg("failed to delete purge invocation")
	}

	log.Info().
		Str("channel", msg.Event.ChannelID).
		Str("by", msg.Event.Author.ID).
		Int("deleted", len(ids)).
		Msg("purge completed")

	if rec.Flag("silent") {
		return nil
	}
	return core.MessageRespond(msg.Session, msg.Event.ChannelID,
		fmt.Sprintf("🧹 Deleted %d message(s).", len(ids)))
}

func init() {
	core.RegisterCommand(
		core.ApplyMiddlewares(
			&PurgeCommand{},
			core.WithCommandLog(),
			core.WithAdminOnly(),
			core.WithGuildOnly(),
		),
	)
}
