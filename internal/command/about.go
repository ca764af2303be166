// /internal/command/about.go
package command

import (
	"fmt"
	"strings"
	"time"

	"parley/internal/core"
	"parley/internal/version"

	embed "github.com/clinet/discordgo-embed"
)

type AboutCommand struct{}

func (c *AboutCommand) Name() string        { return "about" }
func (c *AboutCommand) Description() string { return "Discover the origin of this bot" }
func (c *AboutCommand) Aliases() []string   { return []string{} }
func (c *AboutCommand) Category() string    { return "🕯️ Information" }
func (c *AboutCommand) RequireAdmin() bool  { return false }

func (c *AboutCommand) Run(ctx interface{}) error {
	msg, ok := ctx.(*core.MessageContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	buildDate := version.BuildDate
	if t, err := time.Parse(time.RFC3339, version.BuildDate); err == nil {
		buildDate = t.Format("2006-01-02")
	}
	goVer := strings.TrimPrefix(version.GoVersion(), "go")

	embedMsg := embed.NewEmbed().
		SetColor(core.EmbedColor).
		SetDescription(fmt.Sprintf("ℹ️ **About %s**\n\n%s", version.AppName, version.AppDescription)).
		AddField("Release", fmt.Sprintf("%s (Go %s)", buildDate, goVer))

	return core.MessageRespondEmbed(msg.Session, msg.Event.ChannelID, embedMsg.MessageEmbed)
}

func init() {
	core.RegisterCommand(
		core.ApplyMiddlewares(
			&AboutCommand{},
			core.WithCooldown(cooldowns),
		),
	)
}
