package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/unit"
	"github.com/cwbudde/algo-voicefx/internal/audition"
)

// AuditionCmd streams a unit to the default audio device.
type AuditionCmd struct {
	unitArgs

	Seconds float64 `default:"3" help:"Playback length in seconds."`
	Source  string  `default:"saw" enum:"saw,sine,noise,silence" help:"Test signal: saw, sine, noise or silence."`
	Freq    float64 `default:"110" help:"Test signal frequency in Hz."`
	Level   float64 `default:"-12" help:"Test signal level in dB."`
}

// Run executes the command.
func (c *AuditionCmd) Run(e *env) error {
	u, err := c.build(e)
	if err != nil {
		return err
	}

	src, err := audition.ParseSource(c.Source)
	if err != nil {
		return fmt.Errorf("%w (want %s)", err, strings.Join(audition.SourceNames(), ", "))
	}

	sr := unit.SampleRateOf(u)
	frames := int(c.Seconds * sr)
	stream, err := audition.NewStream(u, src, c.Freq, core.DBToLinear(c.Level), frames)
	if err != nil {
		return err
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(sr),
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return fmt.Errorf("audio device: %w", err)
	}
	<-ready

	player := ctx.NewPlayer(stream)
	defer player.Close()

	fmt.Fprintf(e.out, "%s %s (%s at %.0f Hz, %.1f s)\n",
		keyStyle.Render("playing:"), titleStyle.Render(u.Name()), c.Source, c.Freq, c.Seconds)

	player.Play()
	for player.IsPlaying() {
		time.Sleep(20 * time.Millisecond)
	}
	return player.Err()
}
