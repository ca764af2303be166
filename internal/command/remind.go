// /internal/command/remind.go
package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"parley/internal/core"
	"parley/internal/storage"
	"parley/pkg/argparse"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

var remindParser = argparse.MustNew(argparse.Schema{
	"e":  {Name: "every"},           // repeat at the given interval
	"ch": {Name: "channel", Arity: 1},
	"l":  {Name: "list"},
	"rm": {Name: "remove", Arity: 1},
}, argparse.Policy{})

type RemindCommand struct{}

func (c *RemindCommand) Name() string        { return "remind" }
func (c *RemindCommand) Description() string { return "Set a reminder: `remind 10m stretch your legs`" }
func (c *RemindCommand) Aliases() []string   { return []string{"reminder"} }
func (c *RemindCommand) Category() string    { return "📢 Utilities" }
func (c *RemindCommand) RequireAdmin() bool  { return false }

func (c *RemindCommand) ArgParser() *argparse.Parser { return remindParser }

func (c *RemindCommand) Run(ctx interface{}) error {
	msg, ok := ctx.(*core.MessageContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	rec := remindParser.Parse(msg.Raw)

	if rec.Flag("list") {
		return c.list(msg)
	}
	if id, ok := rec.Value("remove"); ok && id != "" {
		return c.remove(msg, id)
	}

	rest := strings.Fields(rec.Remainder())
	if len(rest) < 2 {
		return core.MessageRespond(msg.Session, msg.Event.ChannelID,
			"Usage: `remind 10m <text>` with optional `-e` to repeat and `-ch <channel>`.")
	}

	delay, err := time.ParseDuration(rest[0])
	if err != nil || delay < time.Second {
		return core.MessageRespond(msg.Session, msg.Event.ChannelID,
			fmt.Sprintf("Can't read `%s` as a duration. Try `90s`, `10m` or `2h30m`.", rest[0]))
	}
	text := strings.Join(rest[1:], " ")

	channelID := msg.Event.ChannelID
	if ch, ok := rec.Value("channel"); ok && ch != "" {
		channelID = strings.Trim(ch, "<#>")
	}

	reminder := storage.Reminder{
		ID:        fmt.Sprintf("%s-%d", msg.Event.Author.ID, time.Now().UnixNano()),
		GuildID:   msg.Event.GuildID,
		ChannelID: channelID,
		UserID:    msg.Event.Author.ID,
		Text:      text,
		DueAt:     time.Now().Add(delay),
	}
	if rec.Flag("every") {
		reminder.Every = delay
	}

	if err := msg.Storage.AddReminder(msg.Event.GuildID, reminder); err != nil {
		return err
	}
	if err := scheduleReminder(msg.Session, msg.Storage, reminder); err != nil {
		return err
	}

	when := reminder.DueAt.Format("15:04:05 MST")
	if reminder.Every > 0 {
		return core.MessageRespond(msg.Session, msg.Event.ChannelID,
			fmt.Sprintf("⏰ Okay, every %s starting at %s: %s", delay, when, text))
	}
	return core.MessageRespond(msg.Session, msg.Event.ChannelID,
		fmt.Sprintf("⏰ Okay, at %s: %s", when, text))
}

func (c *RemindCommand) list(msg *core.MessageContext) error {
	reminders, err := msg.Storage.Reminders(msg.Event.GuildID)
	if err != nil {
		return err
	}
	if len(reminders) == 0 {
		return core.MessageRespond(msg.Session, msg.Event.ChannelID, "No reminders set for this server.")
	}

	var b strings.Builder
	for _, r := range reminders {
		repeat := ""
		if r.Every > 0 {
			repeat = fmt.Sprintf(" (every %s)", r.Every)
		}
		fmt.Fprintf(&b, "`%s` — <t:%d:R>%s: %s\n", r.ID, r.DueAt.Unix(), repeat, r.Text)
	}
	return core.MessageRespond(msg.Session, msg.Event.ChannelID, b.String())
}

func (c *RemindCommand) remove(msg *core.MessageContext, id string) error {
	if err := msg.Storage.DeleteReminder(msg.Event.GuildID, id); err != nil {
		return core.MessageRespond(msg.Session, msg.Event.ChannelID,
			fmt.Sprintf("No reminder with ID `%s` here.", id))
	}
	reminderJobs.Stop(id)
	return core.MessageRespond(msg.Session, msg.Event.ChannelID, "Reminder removed.")
}

// scheduleReminder starts the timer job for one reminder. Repeating
// reminders reschedule themselves until removed.
func scheduleReminder(s *discordgo.Session, st *storage.Storage, r storage.Reminder) error {
	return reminderJobs.Start(r.ID, func(ctx context.Context) error {
		for {
			delay := time.Until(r.DueAt)
			if delay < 0 {
				delay = 0
			}
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil
			case <-timer.C:
			}

			if _, err := s.ChannelMessageSend(r.ChannelID,
				fmt.Sprintf("⏰ <@%s> %s", r.UserID, r.Text)); err != nil {
				log.Warn().Err(err).Str("reminder", r.ID).Msg("failed to deliver reminder")
			}

			if r.Every <= 0 {
				if err := st.DeleteReminder(r.GuildID, r.ID); err != nil {
					log.Warn().Err(err).Str("reminder", r.ID).Msg("failed to delete fired reminder")
				}
				return nil
			}

			r.DueAt = time.Now().Add(r.Every)
			if err := st.AddReminder(r.GuildID, r); err != nil {
				log.Warn().Err(err).Str("reminder", r.ID).Msg("failed to reschedule reminder")
			}
		}
	})
}

// RestoreReminders reschedules every stored reminder, used on startup.
func RestoreReminders(s *discordgo.Session, st *storage.Storage) {
	reminders, err := st.AllReminders()
	if err != nil {
		log.Error().Err(err).Msg("failed to load reminders")
		return
	}
	for _, r := range reminders {
		if err := scheduleReminder(s, st, r); err != nil {
			log.Warn().Err(err).Str("reminder", r.ID).Msg("failed to restore reminder")
		}
	}
	if len(reminders) > 0 {
		log.Info().Int("count", len(reminders)).Msg("reminders restored")
	}
}

func init() {
	core.RegisterCommand(
		core.ApplyMiddlewares(
			&RemindCommand{},
			core.WithCommandLog(),
			core.WithCooldown(cooldowns),
			core.WithGuildOnly(),
		),
	)
}
