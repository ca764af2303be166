// /internal/command/help.go
package command

import (
	"fmt"
	"strings"

	"parley/internal/core"

	embed "github.com/clinet/discordgo-embed"
)

type HelpCommand struct{}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "List commands, or `help <command>` for details" }
func (c *HelpCommand) Aliases() []string   { return []string{"commands"} }
func (c *HelpCommand) Category() string    { return "🕯️ Information" }
func (c *HelpCommand) RequireAdmin() bool  { return false }

func (c *HelpCommand) Run(ctx interface{}) error {
	msg, ok := ctx.(*core.MessageContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	if name := strings.TrimSpace(msg.Raw); name != "" {
		return c.detail(msg, name)
	}

	byCategory := map[string][]core.Command{}
	var order []string
	for _, cmd := range core.AllCommands() {
		cat := cmd.Category()
		if _, seen := byCategory[cat]; !seen {
			order = append(order, cat)
		}
		byCategory[cat] = append(byCategory[cat], cmd)
	}

	embedMsg := embed.NewEmbed().
		SetColor(core.EmbedColor).
		SetDescription("Here's what I can do. Use `help <command>` for details.")
	for _, cat := range order {
		var b strings.Builder
		for _, cmd := range byCategory[cat] {
			fmt.Fprintf(&b, "`%s` — %s\n", cmd.Name(), cmd.Description())
		}
		embedMsg = embedMsg.AddField(cat, b.String())
	}

	return core.MessageRespondEmbed(msg.Session, msg.Event.ChannelID, embedMsg.MessageEmbed)
}

func (c *HelpCommand) detail(msg *core.MessageContext, name string) error {
	cmd, ok := core.GetCommand(name)
	if !ok {
		return core.MessageRespond(msg.Session, msg.Event.ChannelID,
			fmt.Sprintf("No command named `%s`.", name))
	}

	embedMsg := embed.NewEmbed().
		SetColor(core.EmbedColor).
		SetTitle(cmd.Name()).
		SetDescription(cmd.Description())
	if aliases := cmd.Aliases(); len(aliases) > 0 {
		embedMsg = embedMsg.AddField("Aliases", strings.Join(aliases, ", "))
	}
	if cmd.RequireAdmin() {
		embedMsg = embedMsg.AddField("Access", "Administrators only")
	}

	return core.MessageRespondEmbed(msg.Session, msg.Event.ChannelID, embedMsg.MessageEmbed)
}

func init() {
	core.RegisterCommand(
		core.ApplyMiddlewares(
			&HelpCommand{},
			core.WithCooldown(cooldowns),
		),
	)
}
