// /internal/command/roll.go
package command

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"parley/internal/core"
	"parley/pkg/argparse"
)

var diceRegex = regexp.MustCompile(`(?i)^(\d*)d(\d+)$`)

// Every bare word lands in the dice bucket, so `roll 2d6 d20 -v` works
// without naming the option.
var rollParser = argparse.MustNew(argparse.Schema{
	"d": {Name: "dice", Arity: argparse.ArityUnbounded},
	"v": {Name: "verbose"},
}, argparse.Policy{DefaultKey: "d"})

type RollCommand struct{}

func (c *RollCommand) Name() string        { return "roll" }
func (c *RollCommand) Description() string { return "Roll dice: `roll 2d6 d20 -v`" }
func (c *RollCommand) Aliases() []string   { return []string{"dice"} }
func (c *RollCommand) Category() string    { return "🎲 Gameplay" }
func (c *RollCommand) RequireAdmin() bool  { return false }

func (c *RollCommand) ArgParser() *argparse.Parser { return rollParser }

func (c *RollCommand) Run(ctx interface{}) error {
	msg, ok := ctx.(*core.MessageContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}

	rec := rollParser.Parse(msg.Raw)

	specs := []string{"d20"}
	if v, ok := rec.Value("dice"); ok && v != "" {
		specs = strings.Fields(v)
	}
	verbose := rec.Flag("verbose")

	total := 0
	var lines []string
	for _, spec := range specs {
		count, sides, err := parseDiceSpec(spec)
		if err != nil {
			return core.MessageRespond(msg.Session, msg.Event.ChannelID,
				fmt.Sprintf("Can't read `%s`: %v. Try something like `2d6`.", spec, err))
		}

		sum := 0
		rolls := make([]string, 0, count)
		for i := 0; i < count; i++ {
			r := rand.Intn(sides) + 1
			sum += r
			rolls = append(rolls, strconv.Itoa(r))
		}
		total += sum

		if verbose {
			lines = append(lines, fmt.Sprintf("`%s` → [%s] = **%d**", spec, strings.Join(rolls, ", "), sum))
		} else {
			lines = append(lines, fmt.Sprintf("`%s` → **%d**", spec, sum))
		}
	}

	reply := strings.Join(lines, "\n")
	if len(specs) > 1 {
		reply += fmt.Sprintf("\nTotal: **%d**", total)
	}
	return core.MessageRespond(msg.Session, msg.Event.ChannelID, "🎲 "+reply)
}

func parseDiceSpec(spec string) (count, sides int, err error) {
	matches := diceRegex.FindStringSubmatch(spec)
	if matches == nil {
		return 0, 0, fmt.Errorf("not a dice expression")
	}

	count = 1
	if matches[1] != "" {
		count, err = strconv.Atoi(matches[1])
		if err != nil || count < 1 {
			return 0, 0, fmt.Errorf("invalid dice count")
		}
	}

	sides, err = strconv.Atoi(matches[2])
	if err != nil || sides < 2 {
		return 0, 0, fmt.Errorf("invalid number of sides")
	}

	if count > 100 || sides > 1000 {
		return 0, 0, fmt.Errorf("too big, max 100 dice with 1000 sides")
	}
	return count, sides, nil
}

func init() {
	core.RegisterCommand(
		core.ApplyMiddlewares(
			&RollCommand{},
			core.WithCommandLog(),
			core.WithCooldown(cooldowns),
		),
	)
}
