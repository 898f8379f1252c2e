// ABOUTME: Interactive menu loop for recording body metrics.
// ABOUTME: Reads commands and prompts from a reader and drives the Tracker.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/bodymetrics/internal/models"
	"github.com/harperreed/bodymetrics/internal/tracker"
)

const (
	menuWidth = 49
	separator = "--------------------------------------------------"
)

// ErrInputClosed is returned when input ends in the middle of an operation.
var ErrInputClosed = errors.New("input closed")

var quitCommands = map[string]bool{"quit": true, "x": true, "abort": true}

// Console runs the menu loop over a pair of streams.
type Console struct {
	in      *bufio.Scanner
	out     io.Writer
	tracker *tracker.Tracker
	once    bool
}

// New creates a Console reading from in and writing to out.
func New(in io.Reader, out io.Writer, t *tracker.Tracker) *Console {
	return &Console{
		in:      bufio.NewScanner(in),
		out:     out,
		tracker: t,
	}
}

// SetSingleShot makes Run exit after the first completed operation.
func (c *Console) SetSingleShot(once bool) {
	c.once = once
}

// Run prints the menu and processes commands until the user quits or input
// ends. Table failures abort the loop and are returned.
func (c *Console) Run(ctx context.Context) error {
	c.printMenu()

	legal := true
	for {
		command, err := c.readLine()
		if errors.Is(err, ErrInputClosed) {
			return nil
		}
		if err != nil {
			return err
		}

		if legal {
			fmt.Fprintln(c.out, separator)
		}
		legal = true

		switch {
		case quitCommands[strings.ToLower(command)]:
			return nil
		case command == "1":
			if err := c.addDailyEntry(ctx); err != nil {
				return err
			}
		case command == "2":
			if err := c.updateHeight(ctx); err != nil {
				return err
			}
		default:
			legal = false
			fmt.Fprintln(c.out, "Illegal command: Please choose from the commands above.")
			continue
		}

		if c.once {
			return nil
		}
		c.printMenu()
	}
}

func (c *Console) printMenu() {
	fmt.Fprintln(c.out, "Enter a command number to continue:")
	fmt.Fprintln(c.out, menuLine("Add daily entry for today", "1"))
	fmt.Fprintln(c.out, menuLine("Update height", "2"))
	fmt.Fprintln(c.out, menuLine("Quit", "X"))
}

// menuLine pads label with dots to the menu width and appends key.
func menuLine(label, key string) string {
	if len(label) < menuWidth {
		label += strings.Repeat(".", menuWidth-len(label))
	}
	return label + key
}

func (c *Console) addDailyEntry(ctx context.Context) error {
	m, err := c.promptMetrics()
	if err != nil {
		return err
	}

	res, err := c.tracker.AddDailyEntry(ctx, m)
	if err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintln(c.out, res.Message)
	fmt.Fprintln(c.out, separator)
	return nil
}

func (c *Console) updateHeight(ctx context.Context) error {
	for {
		date, err := c.promptDate()
		if err != nil {
			return err
		}

		height, err := c.prompt("Enter the new height to update to: ")
		if err != nil {
			return err
		}

		res, err := c.tracker.UpdateHeight(ctx, date, height, c.promptMetrics)
		if errors.Is(err, tracker.ErrFutureDate) {
			color.New(color.FgRed).Fprintln(c.out, "Date Error: A future record cannot be edited.")
			fmt.Fprintln(c.out, separator)
			continue
		}
		if err != nil {
			return err
		}

		color.New(color.FgGreen).Fprintln(c.out, res.Message)
		fmt.Fprintln(c.out, separator)
		return nil
	}
}

// promptDate asks until the answer is "today" or a valid yyyy-mm-dd date.
func (c *Console) promptDate() (time.Time, error) {
	for {
		input, err := c.prompt(`Enter date (yyyy-mm-dd) from which to edit or "today": `)
		if err != nil {
			return time.Time{}, err
		}

		date, err := models.ParseDate(input, c.tracker.Today())
		if err == nil {
			return date, nil
		}
		color.New(color.FgRed).Fprintln(c.out, "Date Error: Enter a date in the format prescribed above.")
	}
}

func (c *Console) promptMetrics() (models.Metrics, error) {
	var m models.Metrics
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Enter current mass (kg): ", &m.Mass},
		{"Enter current body fat (%): ", &m.BodyFat},
		{"Enter current water composition (%): ", &m.Water},
		{"Enter current muscle composition (%): ", &m.Muscle},
	}

	for _, f := range fields {
		v, err := c.prompt(f.prompt)
		if err != nil {
			return models.Metrics{}, err
		}
		*f.dst = v
	}
	return m, nil
}

func (c *Console) prompt(text string) (string, error) {
	fmt.Fprint(c.out, text)
	return c.readLine()
}

// readLine returns the next line with trailing whitespace removed.
func (c *Console) readLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", ErrInputClosed
	}
	return strings.TrimRight(c.in.Text(), " \t\r\n"), nil
}
