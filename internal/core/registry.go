package core

import (
	"sort"
	"strings"

	"parley/internal/config"
)

var registry = map[string]Command{}

// RegisterCommand registers a command under its name and every alias.
func RegisterCommand(cmd Command) {
	registry[strings.ToLower(cmd.Name())] = cmd
	for _, a := range cmd.Aliases() {
		registry[strings.ToLower(a)] = cmd
	}
}

// GetCommand returns the command with the given name or alias.
func GetCommand(name string) (Command, bool) {
	cmd, ok := registry[strings.ToLower(name)]
	return cmd, ok
}

// AllCommands returns all registered commands, deduplicated and ordered by
// category weight then name, the order the help listing uses.
func AllCommands() []Command {
	seen := map[string]bool{}
	list := make([]Command, 0)
	for _, cmd := range registry {
		if seen[cmd.Name()] {
			continue
		}
		list = append(list, cmd)
		seen[cmd.Name()] = true
	}
	sort.Slice(list, func(i, j int) bool {
		wi, wj := config.CategoryWeights[list[i].Category()], config.CategoryWeights[list[j].Category()]
		if wi != wj {
			return wi < wj
		}
		return list[i].Name() < list[j].Name()
	})
	return list
}
