package core

import (
	"time"

	"parley/internal/config"
	"parley/internal/storage"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

const EmbedColor = 0x4e8fb0

func MessageRespond(s *discordgo.Session, channelID string, content string) error {
	_, err := s.ChannelMessageSend(channelID, content)
	return err
}

func MessageRespondEmbed(s *discordgo.Session, channelID string, embed *discordgo.MessageEmbed) error {
	_, err := s.ChannelMessageSendEmbed(channelID, embed)
	return err
}

func LogCommand(s *discordgo.Session, st *storage.Storage, ev *discordgo.MessageCreate, commandName, param string) error {
	channel, err := s.State.Channel(ev.ChannelID)
	if err != nil {
		channel, err = s.Channel(ev.ChannelID)
		if err != nil {
			log.Warn().Err(err).Str("channel", ev.ChannelID).Msg("failed to fetch channel")
		}
	}
	channelName := ""
	if channel != nil {
		channelName = channel.Name
	}

	guild, err := s.State.Guild(ev.GuildID)
	if err != nil {
		guild, err = s.Guild(ev.GuildID)
		if err != nil {
			log.Warn().Err(err).Str("guild", ev.GuildID).Msg("failed to fetch guild")
		}
	}
	guildName := ""
	if guild != nil {
		guildName = guild.Name
	}

	return st.AppendCommandToHistory(ev.GuildID, storage.CommandHistoryRecord{
		ChannelID:   ev.ChannelID,
		ChannelName: channelName,
		GuildName:   guildName,
		UserID:      ev.Author.ID,
		Username:    ev.Author.Username,
		Command:     commandName,
		Param:       param,
		Datetime:    time.Now().UTC(),
	})
}

func IsAdministrator(s *discordgo.Session, cfg *config.Config, guildID string, member *discordgo.Member) bool {
	if cfg != nil && member.User.ID == cfg.DeveloperID {
		return true
	}

	guild, err := s.State.Guild(guildID)
	if err != nil || guild == nil {
		guild, err = s.Guild(guildID)
		if err != nil {
			return false
		}
	}

	if member.User.ID == guild.OwnerID {
		return true
	}

	for _, r := range member.Roles {
		role, _ := s.State.Role(guildID, r)
		if role != nil && role.Permissions&discordgo.PermissionAdministrator != 0 {
			return true
		}
	}

	return false
}

func CheckBotPermissions(s *discordgo.Session, channelID string) bool {
	botID := s.State.User.ID
	perms, err := s.UserChannelPermissions(botID, channelID)
	if err != nil {
		return false
	}
	return perms&discordgo.PermissionManageMessages != 0
}
