package discord

import (
	"context"
	"fmt"
	"strings"

	"parley/internal/command"
	"parley/internal/config"
	"parley/internal/core"
	"parley/internal/storage"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// Bot is a Discord bot
type Bot struct {
	dg      *discordgo.Session
	storage *storage.Storage
	cfg     *config.Config
}

// StartBot runs the Discord bot until ctx is cancelled
func StartBot(ctx context.Context, cfg *config.Config, storage *storage.Storage) error {
	b := &Bot{
		cfg:     cfg,
		storage: storage,
	}
	if err := b.run(ctx, cfg.DiscordToken); err != nil {
		return fmt.Errorf("bot run error: %w", err)
	}
	return nil
}

func (b *Bot) run(ctx context.Context, token string) error {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	b.dg = dg

	b.configureIntents()
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onGuildCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	log.Info().Msg("❎ Shutdown signal received. Cleaning up...")
	return nil
}

func (b *Bot) configureIntents() {
	b.dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent
}

// onReady restores timers and announces the bot
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	botInfo, err := s.User("@me")
	if err != nil {
		log.Warn().Err(err).Msg("Error retrieving bot user")
		return
	}

	command.RestoreReminders(s, b.storage)

	log.Info().
		Str("username", botInfo.Username).
		Int("guilds", len(r.Guilds)).
		Msg("✅ Discord bot is running")
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	log.Info().Str("guild", g.Guild.ID).Str("name", g.Guild.Name).Msg("Bot added to guild")
}

// onMessageCreate dispatches prefixed chat commands. The command name is the
// first word after the prefix; everything else goes to the command raw.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.ID == s.State.User.ID || m.Author.Bot {
		return
	}

	prefix := b.guildPrefix(m.GuildID)
	if !strings.HasPrefix(m.Content, prefix) {
		return
	}

	parts := strings.SplitN(strings.TrimPrefix(m.Content, prefix), " ", 2)
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return
	}
	raw := ""
	if len(parts) > 1 {
		raw = parts[1]
	}

	cmd, ok := core.GetCommand(name)
	if !ok {
		return
	}

	ctx := &core.MessageContext{
		Session: s,
		Event:   m,
		Storage: b.storage,
		Config:  b.cfg,
		Raw:     raw,
	}
	if err := cmd.Run(ctx); err != nil {
		log.Error().Err(err).Str("command", cmd.Name()).Msg("Error running command")
		_ = core.MessageRespond(s, m.ChannelID, fmt.Sprintf("Something went wrong: %v", err))
	}
}

func (b *Bot) guildPrefix(guildID string) string {
	if guildID != "" {
		if custom, err := b.storage.GetPrefix(guildID); err == nil && custom != "" {
			return custom
		}
	}
	return b.cfg.CommandPrefix
}
