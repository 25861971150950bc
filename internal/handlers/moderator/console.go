package moderator

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/KirkDiggler/grimoire/internal/engine"
)

// Console is a Moderator that reads answers from a terminal
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

var _ Moderator = (*Console)(nil)

// NewConsole reads answers line by line from in and writes prompts to out
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

func (c *Console) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", ErrNoInput
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// ask prints question and re-reads until parse accepts the line
func (c *Console) ask(ctx context.Context, question string, parse func(line string) error) error {
	for {
		fmt.Fprint(c.out, question)
		line, err := c.readLine(ctx)
		if err != nil {
			return err
		}
		if err := parse(line); err != nil {
			fmt.Fprintf(c.out, "  %v\n", err)
			continue
		}
		return nil
	}
}

// ChoosePlayers reads seat numbers separated by spaces or commas
func (c *Console) ChoosePlayers(ctx context.Context, prompt *Prompt) ([]engine.PlayerIndex, error) {
	fmt.Fprint(c.out, renderPrompt(prompt))
	fmt.Fprint(c.out, renderGrimoire(prompt.Players))

	var chosen []engine.PlayerIndex
	err := c.ask(ctx, fmt.Sprintf("choose %d seat(s): ", prompt.Count), func(line string) error {
		seats, err := parseInts(line)
		if err != nil {
			return err
		}
		chosen = seats
		return nil
	})
	return chosen, err
}

// ChooseRoles reads role numbers from the candidate list or role ids
func (c *Console) ChooseRoles(ctx context.Context, prompt *Prompt) ([]engine.RoleName, error) {
	fmt.Fprint(c.out, renderPrompt(prompt))
	fmt.Fprint(c.out, renderCandidates(prompt.Candidates))

	var chosen []engine.RoleName
	err := c.ask(ctx, fmt.Sprintf("choose %d role(s): ", prompt.Count), func(line string) error {
		chosen = nil
		for _, field := range fields(line) {
			if n, err := strconv.Atoi(field); err == nil {
				if n < 1 || n > len(prompt.Candidates) {
					return fmt.Errorf("no role numbered %d", n)
				}
				chosen = append(chosen, prompt.Candidates[n-1])
				continue
			}
			chosen = append(chosen, roleID(field))
		}
		if len(chosen) == 0 {
			return fmt.Errorf("choose at least one role")
		}
		return nil
	})
	return chosen, err
}

// InputNumber reads a single number
func (c *Console) InputNumber(ctx context.Context, prompt *Prompt) (int, error) {
	fmt.Fprint(c.out, renderPrompt(prompt))

	var n int
	err := c.ask(ctx, "votes: ", func(line string) error {
		v, err := strconv.Atoi(line)
		if err != nil {
			return fmt.Errorf("%q is not a number", line)
		}
		n = v
		return nil
	})
	return n, err
}

// Display prints the information and waits for enter
func (c *Console) Display(ctx context.Context, prompt *Prompt) error {
	fmt.Fprint(c.out, renderPrompt(prompt))
	fmt.Fprint(c.out, "press enter when shown ")
	_, err := c.readLine(ctx)
	return err
}

// Reject prints why an answer was refused
func (c *Console) Reject(ctx context.Context, prompt *Prompt, reason string) error {
	fmt.Fprintf(c.out, "  rejected: %s\n", reason)
	return nil
}

// Announce prints a title and its lines
func (c *Console) Announce(ctx context.Context, title string, lines []string) error {
	fmt.Fprintf(c.out, "== %s ==\n", title)
	for _, line := range lines {
		fmt.Fprintf(c.out, "  %s\n", line)
	}
	return nil
}

// DayAction reads one day command
func (c *Console) DayAction(ctx context.Context, day *DayPrompt) (*DayAction, error) {
	fmt.Fprint(c.out, renderDayMenu(day))

	var action *DayAction
	err := c.ask(ctx, "> ", func(line string) error {
		parsed, err := parseDayAction(line)
		if err != nil {
			return err
		}
		action = parsed
		return nil
	})
	return action, err
}

func parseDayAction(line string) (*DayAction, error) {
	parts := fields(line)
	if len(parts) == 0 {
		return nil, fmt.Errorf("enter a command")
	}
	seats, err := parseInts(strings.Join(parts[1:], " "))
	if err != nil {
		return nil, err
	}

	want := map[string]int{"n": 2, "x": 1, "a": 1, "g": 1, "e": 0}
	n, ok := want[parts[0]]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDayAction, parts[0])
	}
	if len(seats) != n {
		return nil, fmt.Errorf("%q takes %d seat(s)", parts[0], n)
	}

	switch parts[0] {
	case "n":
		return &DayAction{Kind: DayActionNominate, Player: seats[0], Target: seats[1]}, nil
	case "x":
		return &DayAction{Kind: DayActionExecute, Player: engine.NoPlayer, Target: seats[0]}, nil
	case "a":
		return &DayAction{Kind: DayActionAbility, Player: seats[0], Target: engine.NoPlayer}, nil
	case "g":
		return &DayAction{Kind: DayActionGhostVote, Player: seats[0], Target: engine.NoPlayer}, nil
	default:
		return &DayAction{Kind: DayActionEndDay, Player: engine.NoPlayer, Target: engine.NoPlayer}, nil
	}
}

func fields(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
}

func parseInts(line string) ([]int, error) {
	var out []int
	for _, field := range fields(line) {
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("%q is not a seat number", field)
		}
		out = append(out, n)
	}
	return out, nil
}

var roleIDReplacer = strings.NewReplacer("_", "", "-", "")

// roleID turns "Fortune_Teller" style input into a role id
func roleID(s string) engine.RoleName {
	return engine.RoleName(roleIDReplacer.Replace(strings.ToLower(s)))
}
