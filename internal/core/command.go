package core

import (
	"parley/internal/config"
	"parley/internal/storage"
	"parley/pkg/argparse"

	"github.com/bwmarrin/discordgo"
)

type Command interface {
	Name() string
	Description() string
	Aliases() []string
	Category() string
	RequireAdmin() bool
	Run(ctx interface{}) error
}

// ArgParserProvider is implemented by commands that parse their free-form
// message text through an argument schema. The CLI and the help command use
// it to expose the schema without running the command.
type ArgParserProvider interface {
	ArgParser() *argparse.Parser
}

// MessageContext is what the runtime hands a command invoked from a chat
// message. Raw holds everything after the command name, unparsed.
type MessageContext struct {
	Session *discordgo.Session
	Event   *discordgo.MessageCreate
	Storage *storage.Storage
	Config  *config.Config
	Raw     string
}
