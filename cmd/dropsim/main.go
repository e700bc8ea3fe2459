package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dropsim/internal/analysis"
	"github.com/san-kum/dropsim/internal/automation"
	"github.com/san-kum/dropsim/internal/config"
	"github.com/san-kum/dropsim/internal/dynamo"
	"github.com/san-kum/dropsim/internal/experiment"
	"github.com/san-kum/dropsim/internal/export"
	"github.com/san-kum/dropsim/internal/gui"
	"github.com/san-kum/dropsim/internal/metrics"
	"github.com/san-kum/dropsim/internal/physics"
	"github.com/san-kum/dropsim/internal/sim"
	"github.com/san-kum/dropsim/internal/storage"
	"github.com/san-kum/dropsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	// Configuration sources, applied in order: preset, config file, flags.
	preset     string
	configFile string

	dt          float64
	duration    float64
	seed        int64
	integrator  string
	collision   string
	damping     float64
	radius      float64
	gravity     float64
	restitution float64
	colorMode   string
	spawnMode   string
	count       int
	ceiling     bool
	width       float64
	height      float64

	// Viewers
	theme    string
	fixedDt  float64
	snapshot string

	// Stored run inspection
	particleID uint64
	outFile    string
	frameIdx   int
	trailID    uint64

	// Batch studies
	compareKind string
	sweepParam  string
	sweepMin    float64
	sweepMax    float64
	sweepSteps  int
	trials      int
	saveRun     bool
	progress    bool
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("dropsim: ")

	rootCmd := &cobra.Command{
		Use:   "dropsim",
		Short: "bouncing droplet simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the interactive window when no command is given.
			return runGUI(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dropsim", "data directory")
	addSimFlags(rootCmd)
	rootCmd.Flags().Float64Var(&fixedDt, "fixed-dt", 0, "fixed frame step for the window (0 uses the measured frame time)")

	runCmd := &cobra.Command{
		Use:   "run [name]",
		Short: "run a headless simulation and store it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().BoolVar(&progress, "progress", false, "log progress every simulated second")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot one droplet of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().Uint64Var(&particleID, "id", 0, "particle id (default: first recorded)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "bounce and frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().Uint64Var(&particleID, "id", 0, "particle id (default: first recorded)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default: stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default: stdout)")

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render a stored run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default: stdout)")
	svgCmd.Flags().IntVar(&frameIdx, "frame", -1, "render a single frame instead of the trajectories")
	svgCmd.Flags().Uint64Var(&trailID, "trail", 0, "render only the trail of this particle id")

	liveCmd := &cobra.Command{
		Use:   "live [name]",
		Short: "run the simulation in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().StringVar(&theme, "theme", "dusk", "colour theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	liveCmd.Flags().StringVar(&snapshot, "snapshot", "", "write the last terminal frame as SVG on quit")

	guiCmd := &cobra.Command{
		Use:   "gui [name]",
		Short: "run the simulation in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	addSimFlags(guiCmd)
	guiCmd.Flags().Float64Var(&fixedDt, "fixed-dt", 0, "fixed frame step (0 uses the measured frame time)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file from the defaults or a preset",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	addSimFlags(initCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark frame throughput",
		RunE:  benchWorld,
	}
	addSimFlags(benchCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [name1] [name2] ...",
		Short: "compare integrators or contact resolvers on the same configuration",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareComponents,
	}
	addSimFlags(compareCmd)
	compareCmd.Flags().StringVar(&compareKind, "kind", "integrator", "component kind (integrator, collision)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&saveRun, "save", false, "store the run")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one parameter and report the metrics",
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "restitution", "parameter (restitution, gravity, radius, damping, dt)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.2, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1.0, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "run one configuration over many seeds",
		RunE:  runMonteCarlo,
	}
	addSimFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, exportCmd, exportCSVCmd, exportJSONCmd, svgCmd,
		liveCmd, guiCmd, presetsCmd, initCmd, benchCmd, compareCmd, scenarioCmd, sweepCmd, monteCarloCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	f.Float64Var(&duration, "time", config.DefaultDuration, "duration")
	f.Int64Var(&seed, "seed", 0, "random seed")
	f.StringVar(&integrator, "integrator", "semi_implicit", "integrator")
	f.StringVar(&collision, "collision", "snapshot", "contact resolver")
	f.Float64Var(&damping, "damping", physics.DefaultDamping, "contact damping")
	f.Float64Var(&radius, "radius", config.DefaultRadius, "droplet radius")
	f.Float64Var(&gravity, "gravity", config.DefaultGravity, "gravity")
	f.Float64Var(&restitution, "restitution", config.DefaultRestitution, "restitution")
	f.StringVar(&colorMode, "color-mode", string(dynamo.ColorVelocity), "colour mode (static, velocity, heat)")
	f.StringVar(&spawnMode, "spawn", string(dynamo.SpawnRest), "spawn velocity (rest, kick, random)")
	f.IntVar(&count, "count", 0, "droplets in the initial batch")
	f.BoolVar(&ceiling, "ceiling", false, "close the top of the viewport")
	f.Float64Var(&width, "width", config.DefaultWidth, "viewport width")
	f.Float64Var(&height, "height", config.DefaultHeight, "viewport height")
}

// resolveConfig starts from the defaults or a preset, replaces them with the
// config file if one is given, and finally applies explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("collision") {
		cfg.Collision = collision
	}
	if flags.Changed("damping") {
		cfg.Damping = damping
	}
	if flags.Changed("radius") {
		cfg.Particle.Radius = radius
	}
	if flags.Changed("gravity") {
		cfg.Particle.Gravity = gravity
	}
	if flags.Changed("restitution") {
		cfg.Particle.Restitution = restitution
	}
	if flags.Changed("color-mode") {
		cfg.Particle.ColorMode = colorMode
	}
	if flags.Changed("spawn") {
		cfg.Spawn.Mode = spawnMode
	}
	if flags.Changed("count") {
		cfg.Batch.Count = count
	}
	if flags.Changed("ceiling") {
		cfg.Ceiling = ceiling
	}
	if flags.Changed("width") {
		cfg.Viewport.Width = width
	}
	if flags.Changed("height") {
		cfg.Viewport.Height = height
	}
	return cfg, cfg.Validate()
}

func runName(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if preset != "" {
		return preset
	}
	return "dropsim"
}

func runMetadata(name string, cfg *config.Config) storage.RunMetadata {
	return storage.RunMetadata{
		Name:       name,
		Seed:       cfg.Seed,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Integrator: cfg.Integrator,
		Collision:  cfg.Collision,
		Width:      cfg.Viewport.Width,
		Height:     cfg.Viewport.Height,
	}
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	name := runName(args)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	bounds, err := cfg.Bounds()
	if err != nil {
		return err
	}
	exp := experiment.New(cfg)
	if err := exp.Setup(registry, registry.DefaultMetrics(bounds)); err != nil {
		return err
	}
	s := exp.GetSimulator()
	if batch := exp.Batch(); len(batch) > 0 {
		s.AddMetric(metrics.NewApex(batch[0], bounds.Height))
	}
	if progress {
		s.AddObserver(&sim.Progress{Report: func(t float64, n int) {
			log.Printf("t=%.1fs droplets=%d", t, n)
		}})
	}

	fmt.Printf("running %s simulation (%d droplets)...\n", name, len(exp.Batch()))
	start := time.Now()

	result, err := exp.Run(cmd.Context(), nil)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(runMetadata(name, cfg), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tDURATION\tDT\tINTEG\tCOLLISION\tDROPLETS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2fs\t%.4fs\t%s\t%s\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.Collision,
			run.Particles,
		)
	}

	return w.Flush()
}

// loadRun reads a stored run and picks the particle to inspect.
func loadRun(cmd *cobra.Command, runID string) (*storage.RunMetadata, *dynamo.Result, uint64, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, 0, err
	}
	result, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, 0, err
	}

	if cmd.Flags().Changed("id") {
		return meta, result, particleID, nil
	}
	for _, frame := range result.Frames {
		if len(frame) > 0 {
			return meta, result, frame[0].ID, nil
		}
	}
	return nil, nil, 0, fmt.Errorf("run %s recorded no droplets", runID)
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, result, id, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}

	_, heights, vy := analysis.Series(result, id, meta.Height)
	if len(heights) == 0 {
		return fmt.Errorf("droplet %d not found in run %s", id, meta.ID)
	}

	live := make([]float64, len(result.Frames))
	for i, frame := range result.Frames {
		live[i] = float64(len(frame))
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("droplet: %d\n", id)
	fmt.Printf("samples: %d\n\n", len(heights))

	plots := []struct {
		data    []float64
		caption string
	}{
		{heights, "height above floor"},
		{vy, "vertical velocity (down is positive)"},
		{live, "live droplets"},
	}
	for _, p := range plots {
		graph := asciigraph.Plot(p.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, result, id, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("bounce analysis: %s\n", meta.ID)
	fmt.Printf("droplet: %d\n\n", id)

	bounces := analysis.FindBounces(result, id, meta.Height)
	if len(bounces) == 0 {
		fmt.Println("no floor bounces")
	} else {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "#\tTIME\tIMPACT\tREBOUND\tRESTITUTION")
		for i, b := range bounces {
			fmt.Fprintf(w, "%d\t%.3fs\t%.2f\t%.2f\t%.4f\n", i+1, b.Time, b.ImpactVel, b.ReboundVel, b.Restitution())
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	_, heights, _ := analysis.Series(result, id, meta.Height)
	ps := analysis.PowerSpectrum(heights)
	if len(ps) > 8 {
		graph := asciigraph.Plot(ps[:len(ps)/4],
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (height)"),
		)
		fmt.Println()
		fmt.Println(graph)
	}

	apex := metrics.NewApex(id, meta.Height)
	for _, frame := range result.Frames {
		apex.ObserveFrame(frame)
	}
	if peaks := apex.Peaks(); len(peaks) > 0 {
		fmt.Println("\napex heights:")
		for i, h := range peaks {
			fmt.Printf("  %d: %.2f\n", i+1, h)
		}
		if ratio := apex.Value(); ratio > 0 {
			fmt.Printf("apex ratio: %.4f (restitution ~%.4f)\n", ratio, math.Sqrt(ratio))
		}
	}

	freq := analysis.BounceFrequency(result, id, meta.Height, meta.Dt)
	fmt.Printf("\ndominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	portrait := analysis.NewPhasePortrait(result, id, meta.Height)
	if s := portrait.ToASCII(70, 20); s != "" {
		fmt.Println("\nphase portrait (height vs upward velocity):")
		fmt.Println(s)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	result, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if outFile != "" {
		return storage.ExportCSV(outFile, result)
	}
	return storage.WriteFramesCSV(os.Stdout, result)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	result, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	result.Metrics = meta.Metrics

	if outFile != "" {
		return storage.ExportJSON(outFile, *meta, result)
	}
	return storage.ExportJSONStdout(*meta, result)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	result, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	var svg string
	if cmd.Flags().Changed("trail") {
		_, track, err := st.Track(args[0], trailID)
		if err != nil {
			return err
		}
		if len(track) < 2 {
			return fmt.Errorf("particle %d has no trail in run %s", trailID, args[0])
		}
		svg = export.TrajectoryToSVG(track, meta.Width, meta.Height, config.DefaultColor)
	} else if frameIdx >= 0 {
		if frameIdx >= len(result.Frames) {
			return fmt.Errorf("frame %d out of range (run has %d)", frameIdx, len(result.Frames))
		}
		svg = export.FrameToSVG(result.Frames[frameIdx], meta.Width, meta.Height)
	} else {
		svg = export.RunToSVG(result, meta.Width, meta.Height)
	}

	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	exp := experiment.New(cfg)
	if err := exp.Setup(experiment.NewRegistry(), nil); err != nil {
		return err
	}
	final, err := viz.Run(viz.NewModel(exp.World(), cfg.Dt, runName(args), theme))
	if err != nil {
		return err
	}
	if snapshot == "" {
		return nil
	}
	if err := os.WriteFile(snapshot, []byte(export.CanvasToSVG(final.Canvas(), 4)), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", snapshot)
	return nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	exp := experiment.New(cfg)
	if err := exp.Setup(experiment.NewRegistry(), nil); err != nil {
		return err
	}
	gui.Run(exp.World(), runName(args), fixedDt)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tDROPLETS\tRADIUS\tGRAVITY\tRESTITUTION\tSPAWN\tCOLOUR")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%.1f\t%.1f\t%.2f\t%s\t%s\n",
			name,
			p.Batch.Count,
			p.Particle.Radius,
			p.Particle.Gravity,
			p.Particle.Restitution,
			p.Spawn.Mode,
			p.Particle.ColorMode,
		)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

func benchWorld(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	registry := experiment.NewRegistry()

	counts := []int{1, 10, 50}
	dts := []float64{1.0 / 30, 1.0 / 60, 1.0 / 240}

	fmt.Printf("benchmarking %s/%s over %.1fs\n\n", base.Integrator, base.Collision, base.Duration)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DROPLETS\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, n := range counts {
		for _, step := range dts {
			cfg := *base
			cfg.Dt = step
			cfg.Batch = config.BatchConfig{Count: n, Spacing: 2.5}
			cfg.Spawn.Mode = string(dynamo.SpawnRandom)

			exp := experiment.New(&cfg)
			if err := exp.Setup(registry, nil); err != nil {
				return err
			}

			steps := 0
			start := time.Now()
			err := exp.GetSimulator().RunWithCallback(cmd.Context(), nil, cfg.SimConfig(), func(*sim.World, int) bool {
				steps++
				return true
			})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%d\t%.4fs\t%d\t%v\t%.0f\n",
				n, step, steps, elapsed, float64(steps)/elapsed.Seconds())
		}
	}

	return w.Flush()
}

func compareComponents(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	registry := experiment.NewRegistry()

	fmt.Printf("comparing %ss (dt=%.4f, duration=%.1fs, droplets=%d)\n\n", compareKind, base.Dt, base.Duration, base.Batch.Count)
	fmt.Printf("%-14s  %-12s  %-12s  %-12s  %-12s\n", compareKind, "energy_loss", "max_overlap", "containment", "time_ms")
	fmt.Println(strings.Repeat("-", 70))

	for _, name := range args {
		cfg := *base
		switch compareKind {
		case "integrator":
			cfg.Integrator = name
		case "collision":
			cfg.Collision = name
		default:
			return fmt.Errorf("unknown component kind: %s", compareKind)
		}

		bounds, err := cfg.Bounds()
		if err != nil {
			return err
		}
		exp := experiment.New(&cfg)
		if err := exp.Setup(registry, registry.DefaultMetrics(bounds)); err != nil {
			fmt.Printf("%-14s  error: %v\n", name, err)
			continue
		}

		start := time.Now()
		result, err := exp.Run(cmd.Context(), nil)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Printf("%-14s  error: %v\n", name, err)
			continue
		}

		fmt.Printf("%-14s  %12.6f  %12.6f  %12.6f  %12.2f\n", name,
			result.Metrics["energy_loss"],
			result.Metrics["max_overlap"],
			result.Metrics["containment"],
			float64(elapsed.Microseconds())/1000)
	}

	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	if scenario.Name == "" {
		scenario.Name = strings.TrimSuffix(args[0], ".yaml")
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Printf("%s\n", scenario.Description)
	}

	start := time.Now()
	result, err := automation.RunScenario(cmd.Context(), scenario, experiment.NewRegistry())
	if err != nil {
		return err
	}
	fmt.Printf("completed %d steps in %v\n", result.StepsTaken, time.Since(start))
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)

	if !saveRun {
		return nil
	}
	cfg, err := scenario.BaseConfig()
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(runMetadata(scenario.Name, cfg), result)
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sweep := &automation.ParameterSweep{
		Base:      base,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
		Progress: func(i, n int, value float64) {
			log.Printf("sweep %d/%d: %s=%.4f", i, n, sweepParam, value)
		},
	}
	results, err := automation.RunSweep(cmd.Context(), sweep, experiment.NewRegistry())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tENERGY_LOSS\tMAX_OVERLAP\tCONTAINMENT\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%.6f\t%.6f\t%.6f\n", r.ParamValue, r.EnergyLoss, r.MaxOverlap, r.Containment)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	mc := &automation.MonteCarloConfig{
		Base:      base,
		NumTrials: trials,
		SeedStart: base.Seed,
	}
	start := time.Now()
	results, err := automation.RunMonteCarlo(cmd.Context(), mc, experiment.NewRegistry())
	if err != nil {
		return err
	}

	losses := make([]float64, len(results))
	for i, r := range results {
		losses[i] = r.EnergyLoss
	}
	contained, escaped := automation.MonteCarloStats(results)

	fmt.Printf("%d trials in %v\n", len(results), time.Since(start))
	fmt.Printf("contained: %d\n", contained)
	fmt.Printf("escaped: %d\n\n", escaped)
	if len(losses) > 1 {
		fmt.Println(asciigraph.Plot(losses,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("energy loss per trial"),
		))
	}
	return nil
}
