// Command dicegrid prints dice rolls without running the server.
//
//	dicegrid roll                  random roll
//	dicegrid daily [--date D]      the daily puzzle (default: today, local time)
//	dicegrid seed <string>         the roll for an arbitrary seed
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli"

	"github.com/robalobadob/dicegrid/internal/daily"
	"github.com/robalobadob/dicegrid/internal/dice"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("dicegrid")
	}
}

func newApp(out io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "dicegrid"
	app.Usage = "roll the twelve letter dice"
	app.Version = "0.1.0"
	app.Writer = out

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "json",
			Usage: "print the dice as a JSON array",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:  "roll",
			Usage: "random roll",
			Action: func(c *cli.Context) error {
				return printDice(c, dice.RandomRoll(), "")
			},
		},
		{
			Name:  "daily",
			Usage: "daily puzzle dice",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "date, d",
					Usage: "puzzle date as `YYYY-MM-DD` (default today)",
				},
			},
			Action: func(c *cli.Context) error {
				date := c.String("date")
				if date == "" {
					date = daily.Today(time.Now(), time.Local)
				} else if !daily.ValidDate(date) {
					return cli.NewExitError(fmt.Sprintf("invalid date %q, want YYYY-MM-DD", date), 2)
				}
				return printDice(c, daily.Dice(date), date)
			},
		},
		{
			Name:      "seed",
			Usage:     "roll for an arbitrary seed",
			ArgsUsage: "<seed>",
			Action: func(c *cli.Context) error {
				return printDice(c, dice.SeededRoll(c.Args().First()), "")
			},
		},
	}
	return app
}

// printDice writes the dice space-separated, prefixed by label when set,
// or as a bare JSON array with --json.
func printDice(c *cli.Context, d []string, label string) error {
	w := c.App.Writer
	if c.GlobalBool("json") {
		return json.NewEncoder(w).Encode(d)
	}
	if label != "" {
		fmt.Fprintf(w, "%s  ", label)
	}
	_, err := fmt.Fprintln(w, strings.Join(d, " "))
	return err
}
