// cmd/cli/main.go
//
// Interactive shell for trying command argument parsing without a Discord
// session. Type `<command> <args...>` and the parsed fields are printed.
package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	_ "parley/internal/command"

	"parley/internal/core"
	v "parley/internal/version"
)

func main() {
	fmt.Printf("%s argument shell. Commands: %s. Ctrl-D to exit.\n", v.AppName, commandNames())

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			runLine(line)
		}
		fmt.Print("> ")
	}
	fmt.Println()
}

func runLine(line string) {
	parts := strings.SplitN(line, " ", 2)
	name := parts[0]
	raw := ""
	if len(parts) > 1 {
		raw = parts[1]
	}

	cmd, ok := core.GetCommand(name)
	if !ok {
		fmt.Printf("unknown command %q\n", name)
		return
	}

	provider, ok := cmd.(core.ArgParserProvider)
	if !ok || provider.ArgParser() == nil {
		fmt.Printf("%s takes no structured arguments\n", cmd.Name())
		return
	}

	rec := provider.ArgParser().Parse(raw)
	fields := rec.Fields()

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-12s %#v\n", k, fields[k])
	}
}

func commandNames() string {
	var names []string
	for _, cmd := range core.AllCommands() {
		names = append(names, cmd.Name())
	}
	return strings.Join(names, ", ")
}
