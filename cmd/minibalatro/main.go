package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/minibalatro/internal/config"
	"github.com/lox/minibalatro/internal/deck"
	"github.com/lox/minibalatro/internal/display"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every command
type Globals struct {
	Config  string `short:"c" default:"minibalatro.hcl" type:"path" help:"HCL config file (defaults apply when missing)"`
	Debug   bool   `help:"Enable debug logging"`
	NoColor bool   `help:"Disable colour output"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play an interactive game"`
	Classify ClassifyCmd      `cmd:"" help:"Classify and score up to five cards"`
	Best     BestCmd          `cmd:"" help:"Find the best five-card hand among many cards"`
	Simulate SimulateCmd      `cmd:"" help:"Brute-force the best score over many seeds"`
	About    VersionCmd       `cmd:"version" help:"Print version information"`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("minibalatro %s\n", version)
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("minibalatro"),
		kong.Description("Poker-hand scoring game and brute-force hand search"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// Logger returns a logger writing to w at the level chosen by --debug
func (g *Globals) Logger(w io.Writer) *log.Logger {
	level := log.InfoLevel
	if g.Debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
}

// Renderer returns a stdout renderer honouring --no-color
func (g *Globals) Renderer() *display.Renderer {
	return display.New(os.Stdout, g.NoColor)
}

// LoadConfig reads the config file named by --config
func (g *Globals) LoadConfig() (*config.Config, error) {
	return config.Load(g.Config)
}

// parseCardArgs joins card arguments so "Ah Kd", "Ah,Kd" and "AhKd" parse
// the same way
func parseCardArgs(args []string) ([]*deck.Card, error) {
	return deck.ParseCards(strings.Join(args, " "))
}
