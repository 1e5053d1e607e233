package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/battleputt/internal/export"
	"github.com/san-kum/battleputt/internal/metrics"
	"github.com/san-kum/battleputt/internal/optim"
	"github.com/san-kum/battleputt/internal/sim"
	"github.com/san-kum/battleputt/internal/tunables"
	"github.com/san-kum/battleputt/internal/viz"
)

var (
	frames    int
	putt      bool
	realtime  bool
	show      bool
	svgPath   string
	canvasSVG string
	jsonPath  string
	csvPath   string
	sweep     string

	tuneFields []string
	tunePoints int
	tuneMetric string
	tuneMin    bool
)

func newSimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sim",
		Short: "run the course headless and report ball telemetry",
		RunE:  runSim,
	}
	cmd.Flags().IntVar(&frames, "frames", 300, "frames to run")
	cmd.Flags().BoolVar(&putt, "putt", true, "putt on the first frame")
	cmd.Flags().BoolVar(&realtime, "realtime", false, "pace frames at the loop interval")
	cmd.Flags().BoolVar(&show, "show", false, "print the final frame")
	cmd.Flags().StringVar(&svgPath, "svg", "", "write the trail as svg")
	cmd.Flags().StringVar(&canvasSVG, "canvas-svg", "", "write the final frame as svg")
	cmd.Flags().StringVar(&jsonPath, "json", "", "write parameters, metrics and samples as json")
	cmd.Flags().StringVar(&csvPath, "csv", "", "write per-step samples as csv")
	cmd.Flags().StringVar(&sweep, "sweep", "", "sweep one parameter, e.g. rampAngle=0.2,0.5,0.8")
	return cmd
}

func newTuneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tune",
		Short: "grid-search parameters for the best putt",
		RunE:  runTune,
	}
	cmd.Flags().IntVar(&frames, "frames", 300, "frames per putt")
	cmd.Flags().StringSliceVar(&tuneFields, "field", []string{"rampAngle"}, "parameters to search")
	cmd.Flags().IntVar(&tunePoints, "points", 5, "grid points per parameter")
	cmd.Flags().StringVar(&tuneMetric, "metric", "distance", "metric to optimize")
	cmd.Flags().BoolVar(&tuneMin, "min", false, "minimize instead of maximize")
	return cmd
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSim(cmd *cobra.Command, args []string) error {
	if sweep != "" {
		return runSweep(cmd)
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	cfg := s.cfg.SimConfig()
	cfg.KeepSamples = jsonPath != "" || csvPath != ""
	cfg.MaxFrames = frames

	sc := s.scene
	r := viz.NewCanvasRenderer(80, 24, s.cfg.World.Width, s.cfg.World.Height)
	loop, err := sim.New(sc, r, cfg)
	if err != nil {
		return err
	}
	for _, m := range metrics.Standard(func() float64 { return s.params.BallMass }) {
		loop.AddMetric(m)
	}
	height := metrics.HeightHistory(frames)
	loop.AddObserver(height)

	if putt {
		sc.KeyDown()
	}

	ctx, cancel := signalContext()
	defer cancel()

	var result *sim.Result
	if realtime {
		result, err = loop.Run(ctx)
	} else {
		result, err = loop.RunFrames(ctx, frames)
	}
	if err != nil {
		if ctx.Err() == nil {
			return err
		}
		fmt.Println("interrupted")
	}

	fmt.Printf("frames %d  steps %d  state %s\n", result.Frames, result.Steps, sc.State())
	printMetrics(result.Metrics)
	if height.Len() > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(height.Values(),
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("ball height")))
	}
	if show {
		fmt.Println(r.Canvas.String())
	}

	return writeOutputs(s, r, result)
}

func writeOutputs(s *session, r *viz.CanvasRenderer, result *sim.Result) error {
	if svgPath != "" {
		svg := export.TrailToSVG(s.scene.Trail.Points(), s.cfg.World.Width, s.cfg.World.Height, 800, 800, "#ffffff")
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("trail written to %s\n", svgPath)
	}
	if canvasSVG != "" {
		if err := os.WriteFile(canvasSVG, []byte(export.CanvasToSVG(r.Canvas, 4)), 0644); err != nil {
			return err
		}
		fmt.Printf("frame written to %s\n", canvasSVG)
	}
	if jsonPath != "" {
		if err := writeFile(jsonPath, func(f *os.File) error {
			return export.WriteJSON(f, export.NewRunData(*s.params, s.cfg.Loop.StepsPerFrame, result))
		}); err != nil {
			return err
		}
		fmt.Printf("run written to %s\n", jsonPath)
	}
	if csvPath != "" {
		if err := writeFile(csvPath, func(f *os.File) error {
			return export.WriteCSV(f, result.Samples)
		}); err != nil {
			return err
		}
		fmt.Printf("samples written to %s\n", csvPath)
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printMetrics(m map[string]float64) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range []string{"max_speed", "apex", "distance", "kinetic_energy"} {
		if v, ok := m[name]; ok {
			fmt.Fprintf(w, "%s\t%.3f\n", name, v)
		}
	}
	w.Flush()
}

// parseSweep splits "field=v1,v2,..." into a field and its values.
func parseSweep(expr string) (tunables.Field, []float64, error) {
	name, list, ok := strings.Cut(expr, "=")
	if !ok {
		return tunables.FieldUnknown, nil, fmt.Errorf("sweep %q: want field=v1,v2", expr)
	}
	f := tunables.ParseField(name)
	if f == tunables.FieldUnknown {
		return f, nil, fmt.Errorf("%w: %s", tunables.ErrUnknownField, name)
	}

	var values []float64
	for _, raw := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return f, nil, fmt.Errorf("%w: %s=%q", tunables.ErrInvalidValue, name, raw)
		}
		values = append(values, v)
	}
	return f, values, nil
}

func runSweep(cmd *cobra.Command) error {
	field, values, err := parseSweep(sweep)
	if err != nil {
		return err
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	sw := &sim.Sweep{
		Base:    *s.params,
		Field:   field,
		Values:  values,
		Frames:  frames,
		Config:  s.cfg.SimConfig(),
		Options: s.cfg.SceneOptions(),
		Metrics: func(p tunables.Params) []sim.Metric {
			return metrics.Standard(func() float64 { return p.BallMass })
		},
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := sw.Run(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tmax_speed\tapex\tdistance\n", field)
	for i, res := range results {
		fmt.Fprintf(w, "%g\t%.3f\t%.3f\t%.3f\n", values[i],
			res.Metrics["max_speed"], res.Metrics["apex"], res.Metrics["distance"])
	}
	return w.Flush()
}

func runTune(cmd *cobra.Command, args []string) error {
	fields := make([]tunables.Field, len(tuneFields))
	ranges := make([][]float64, len(tuneFields))
	for i, name := range tuneFields {
		f := tunables.ParseField(name)
		if f == tunables.FieldUnknown || f.Kind() != tunables.Number {
			return fmt.Errorf("%w: %s", tunables.ErrUnknownField, name)
		}
		fields[i] = f
		ranges[i] = optim.Span(f, tunePoints)
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	g := optim.NewGridSearch(fields, ranges)
	g.Maximize = !tuneMin

	simCfg := s.cfg.SimConfig()
	opts := s.cfg.SceneOptions()
	run := func(ctx context.Context, p tunables.Params) (*sim.Result, error) {
		mass := p.BallMass
		return sim.Putt(ctx, p, frames, simCfg, opts, metrics.Standard(func() float64 { return mass })...)
	}

	ctx, cancel := signalContext()
	defer cancel()

	best, val, err := g.Search(ctx, *s.params, run, tuneMetric)
	if err != nil {
		return err
	}

	fmt.Printf("best %s %.3f\n", tuneMetric, val)
	for _, f := range fields {
		fmt.Printf("  %s = %s\n", f, best.Format(f))
	}
	return nil
}
