package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/unit"
	"github.com/cwbudde/algo-voicefx/dsp/unit/catalog"
	"github.com/cwbudde/algo-voicefx/measure/decay"
	"github.com/cwbudde/algo-voicefx/measure/response"
)

// env is bound into every command's Run method.
type env struct {
	out io.Writer
	ctx unit.Context
}

var errOverride = errors.New("bad parameter override")

// unitArgs selects a unit and optional parameter overrides.
type unitArgs struct {
	Unit string   `arg:"" help:"Unit name (see list)."`
	Set  []string `short:"s" placeholder:"SLOT=VALUE" help:"Parameter override, e.g. 0=1.5 or i0=2."`
}

func (a *unitArgs) build(e *env) (unit.Unit, error) {
	p := &unit.Params{}
	u, err := catalog.New(a.Unit, e.ctx, p)
	if err != nil {
		return nil, err
	}
	if err := applyOverrides(p, a.Set); err != nil {
		return nil, err
	}
	return u, nil
}

func applyOverrides(p *unit.Params, sets []string) error {
	for _, s := range sets {
		key, val, ok := strings.Cut(s, "=")
		if !ok {
			return fmt.Errorf("%w: %q", errOverride, s)
		}

		if idx, isInt := strings.CutPrefix(key, "i"); isInt {
			i, err := strconv.Atoi(idx)
			if err != nil || i < 0 || i >= unit.NumIntParams {
				return fmt.Errorf("%w: int slot %q", errOverride, key)
			}
			v, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("%w: %q: %w", errOverride, s, err)
			}
			p.I[i] = v
			continue
		}

		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= unit.NumFloatParams {
			return fmt.Errorf("%w: float slot %q", errOverride, key)
		}
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("%w: %q: %w", errOverride, s, err)
		}
		p.F[i] = v
	}
	return nil
}

func formatTail(n int) string {
	if n >= core.TailInfinite {
		return "infinite"
	}
	return strconv.Itoa(n)
}

// ListCmd prints every unit with its slot counts and tail.
type ListCmd struct{}

// Run executes the command.
func (c *ListCmd) Run(e *env) error {
	tw := tabwriter.NewWriter(e.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Unit\tSlots\tSelectors\tTail\tGraph")
	fmt.Fprintln(tw, "----\t-----\t---------\t----\t-----")

	for _, name := range catalog.Names() {
		u, err := catalog.New(name, e.ctx, nil)
		if err != nil {
			return err
		}
		graph := "-"
		if u.InitFreqGraph() {
			graph = "yes"
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n",
			name, len(u.Descriptors()), u.IPCount(), formatTail(u.TailLength()), graph)
	}
	return tw.Flush()
}

// InfoCmd prints the slots and selectors of one unit.
type InfoCmd struct {
	unitArgs
}

// Run executes the command.
func (c *InfoCmd) Run(e *env) error {
	u, err := c.build(e)
	if err != nil {
		return err
	}

	fmt.Fprintln(e.out, titleStyle.Render(u.Name()))
	fmt.Fprintf(e.out, "%s %s\n", keyStyle.Render("tail:"), formatTail(u.TailLength()))

	fmt.Fprintln(e.out, sectionStyle.Render("Parameters"))
	tw := tabwriter.NewWriter(e.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Slot\tLabel\tDescriptor\tDefault")
	for i, s := range u.Descriptors() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, s.Label, s.Desc.String(), s.Desc.Display(s.Desc.Default))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if u.IPCount() == 0 {
		return nil
	}
	fmt.Fprintln(e.out, sectionStyle.Render("Selectors"))
	tw = tabwriter.NewWriter(e.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Slot\tLabel\tEntries")
	for id := range u.IPCount() {
		entries := make([]string, u.IPEntryCount(id))
		for k := range entries {
			entries[k] = u.IPEntryLabel(id, k)
		}
		fmt.Fprintf(tw, "i%d\t%s\t%s\n", id, u.IPLabel(id), strings.Join(entries, " | "))
	}
	return tw.Flush()
}

// GraphCmd prints the analytic and optionally the measured response.
type GraphCmd struct {
	unitArgs

	From    float64 `default:"20" help:"Lowest frequency in Hz."`
	To      float64 `default:"20000" help:"Highest frequency in Hz."`
	Points  int     `default:"24" help:"Number of log-spaced points."`
	Measure string  `short:"m" default:"none" enum:"none,impulse,tone" help:"Also measure the rendered response: none, impulse or tone."`
	Level   float64 `default:"-12" help:"Tone level in dB for --measure=tone."`
}

// Run executes the command.
func (c *GraphCmd) Run(e *env) error {
	u, err := c.build(e)
	if err != nil {
		return err
	}

	hasGraph := u.InitFreqGraph()
	if !hasGraph && c.Measure == "none" {
		return fmt.Errorf("%s has no frequency graph, try --measure", u.Name())
	}

	freqs := response.LogSpace(c.From, c.To, c.Points)
	measured, err := c.measure(u, freqs)
	if err != nil {
		return err
	}
	// Measuring renders through the unit; refresh the graph state.
	hasGraph = u.InitFreqGraph()

	tw := tabwriter.NewWriter(e.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Hz\tGraph [dB]\tMeasured [dB]\t")
	for i, hz := range freqs {
		g, m := "-", "-"
		if hasGraph {
			g = fmt.Sprintf("%.2f", core.LinearToDB(u.FreqGraph(hz)))
		}
		if measured != nil {
			m = fmt.Sprintf("%.2f", measured[i])
		}
		fmt.Fprintf(tw, "%.1f\t%s\t%s\t\n", hz, g, m)
	}
	return tw.Flush()
}

func (c *GraphCmd) measure(u unit.Unit, freqs []float64) ([]float64, error) {
	out := make([]float64, len(freqs))
	switch c.Measure {
	case "impulse":
		r, err := response.Measure(u, 1<<15)
		if err != nil {
			return nil, err
		}
		for i, hz := range freqs {
			out[i] = r.DB(hz)
		}
	case "tone":
		sr := unit.SampleRateOf(u)
		for i, hz := range freqs {
			g, err := response.ToneGain(u, hz, core.DBToLinear(c.Level), int(sr/4))
			if err != nil {
				return nil, err
			}
			out[i] = core.LinearToDB(g)
		}
	default:
		return nil, nil
	}
	return out, nil
}

// TailCmd compares TailLength with the rendered decay of an impulse and
// reports the reverberation time when the response decays far enough.
type TailCmd struct {
	unitArgs

	Threshold float64 `default:"-80" help:"Silence threshold in dB."`
	Limit     float64 `default:"30" help:"Longest decay to render, in seconds."`
}

// Run executes the command.
func (c *TailCmd) Run(e *env) error {
	u, err := c.build(e)
	if err != nil {
		return err
	}

	reported := u.TailLength()
	u.Suspend()
	var in, out core.Block
	in[0] = 1
	u.Process(in[:], out[:], 0)

	limit := int(c.Limit * unit.SampleRateOf(u))
	measured := unit.SilentTail(u, core.DBToLinear(c.Threshold), limit)

	fmt.Fprintf(e.out, "%s %s\n", keyStyle.Render("reported:"), formatTail(reported))
	if measured < 0 {
		fmt.Fprintf(e.out, "%s still sounding after %.1f s\n", keyStyle.Render("measured:"), c.Limit)
		return nil
	}
	n := measured + core.BlockSize
	fmt.Fprintf(e.out, "%s %d\n", keyStyle.Render("measured:"), n)

	d, err := decay.Measure(u, float64(n)/unit.SampleRateOf(u))
	if err != nil {
		// Too short to fit a decay slope.
		return nil //nolint:nilerr
	}
	fmt.Fprintf(e.out, "%s %.3f s\n", keyStyle.Render("RT60:"), d.RT60)
	fmt.Fprintf(e.out, "%s %.3f s\n", keyStyle.Render("EDT:"), d.EDT)
	return nil
}
