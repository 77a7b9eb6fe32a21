// Command unitinfo inspects the units of the effect engine.
//
// Usage:
//
//	unitinfo list
//	unitinfo info LP2A
//	unitinfo graph LP2A --from 20 --to 20000 --points 24 --set 0=1.5
//	unitinfo tail reverb --set 2=1
//	unitinfo audition phaser --seconds 4 --source saw --freq 110
//
// Parameter overrides address float slots by index ("0=1.5") and int
// slots with an "i" prefix ("i0=2").
package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/cwbudde/algo-voicefx/dsp/unit"
)

var version = "0.1.0"

// CLI defines the command-line interface.
type CLI struct {
	SampleRate float64          `short:"r" default:"${samplerate}" help:"Processing sample rate in Hz."`
	Version    kong.VersionFlag `short:"v" help:"Show version information."`

	List     ListCmd     `cmd:"" help:"List every unit."`
	Info     InfoCmd     `cmd:"" help:"Show the parameters and selectors of a unit."`
	Graph    GraphCmd    `cmd:"" help:"Print the frequency response of a unit."`
	Tail     TailCmd     `cmd:"" help:"Compare the reported and the measured tail of a unit."`
	Audition AuditionCmd `cmd:"" help:"Play a unit through the sound card."`
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("unitinfo"),
		kong.Description("Inspect the filter, effect and oscillator units."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{
			"version":    version,
			"samplerate": "48000",
		},
	)

	e := &env{
		out: os.Stdout,
		ctx: unit.Context{SampleRate: cli.SampleRate},
	}
	if err := ctx.Run(e); err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}
