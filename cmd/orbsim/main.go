package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/san-kum/orbsim/internal/automation"
	"github.com/san-kum/orbsim/internal/config"
	"github.com/san-kum/orbsim/internal/gui"
	"github.com/san-kum/orbsim/internal/metrics"
	"github.com/san-kum/orbsim/internal/optim"
	"github.com/san-kum/orbsim/internal/orb"
	"github.com/san-kum/orbsim/internal/sim"
	"github.com/san-kum/orbsim/internal/storage"
	"github.com/san-kum/orbsim/internal/tui"
	"github.com/san-kum/orbsim/internal/viz"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	fps        int
	seed       int64
	theme      string
	// run
	duration time.Duration
	numRuns  int
	realtime bool
	watch    bool
	persist  bool
	scenario string
	// sweep
	sweepParams []string
	sweepMetric string
	maximize    bool
	// live
	pick bool
	// gui
	winWidth  int32
	winHeight int32
	// analysis
	column  string
	columns []string
	// export-svg
	svgWidth  int
	svgHeight int
	// config
	writePath string
)

const positionFile = "position.json"

func main() {
	rootCmd := &cobra.Command{
		Use:          "orbsim",
		Short:        "pointer-following orb animation",
		SilenceUsage: true,
		RunE:         runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", config.DefaultPreset, "settings preset")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	addSessionFlags(rootCmd.Flags())
	rootCmd.Flags().BoolVar(&pick, "pick", false, "choose a preset from a menu first")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "orb in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSessionFlags(liveCmd.Flags())
	liveCmd.Flags().BoolVar(&pick, "pick", false, "choose a preset from a menu first")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "orb in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	addSessionFlags(guiCmd.Flags())
	guiCmd.Flags().Int32Var(&winWidth, "width", 1280, "window width")
	guiCmd.Flags().Int32Var(&winHeight, "height", 720, "window height")

	runCmd := &cobra.Command{
		Use:   "run [script]",
		Short: "run a scripted session and record it",
		Long:  fmt.Sprintf("run a scripted session and record it\n\nscripts: %v\nor pass --scenario with a yaml timeline", sim.ListScripts()),
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScript,
	}
	addSessionFlags(runCmd.Flags())
	runCmd.Flags().DurationVar(&duration, "time", 10*time.Second, "session length")
	runCmd.Flags().IntVar(&numRuns, "runs", 1, "number of seeds to run in parallel")
	runCmd.Flags().BoolVar(&realtime, "realtime", false, "play against the wall clock")
	runCmd.Flags().BoolVar(&watch, "watch", false, "draw frames while running")
	runCmd.Flags().BoolVar(&persist, "persist", false, "restore and save the orb position")
	runCmd.Flags().StringVar(&scenario, "scenario", "", "yaml scenario file instead of a built-in script")

	sweepCmd := &cobra.Command{
		Use:   "sweep [script]",
		Short: "grid search over orb settings",
		Long:  "grid search over orb settings\n\nexample: orbsim sweep wander --param fade_rate=0.01,0.03,0.1 --metric mean_opacity --maximize",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addSessionFlags(sweepCmd.Flags())
	sweepCmd.Flags().DurationVar(&duration, "time", 10*time.Second, "session length per trial")
	sweepCmd.Flags().StringVar(&scenario, "scenario", "", "yaml scenario file instead of a built-in script")
	sweepCmd.Flags().StringArrayVar(&sweepParams, "param", nil, "setting to sweep, name=v1,v2,... (repeatable)")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "path_length", "metric to rank trials by")
	sweepCmd.Flags().BoolVar(&maximize, "maximize", false, "rank by the largest value")
	_ = sweepCmd.MarkFlagRequired("param")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot recorded frames",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&columns, "columns", []string{"x", "y", "sx", "opacity"}, "frame columns to plot")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis and run metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&column, "column", "sx", "frame column to analyze")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the orb and pointer paths to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 480, "image height")

	deleteCmd := &cobra.Command{
		Use:   "delete [run_id]",
		Short: "delete a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  deleteRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list settings presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			fmt.Println("themes:")
			for _, t := range viz.ThemeNames() {
				fmt.Printf("  %s\n", t)
			}
			return nil
		},
	}

	positionCmd := &cobra.Command{
		Use:   "position",
		Short: "show the saved orb position",
		Args:  cobra.NoArgs,
		RunE:  showPosition,
	}
	positionCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "forget the saved orb position",
		Args:  cobra.NoArgs,
		RunE:  clearPosition,
	})

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective config as yaml",
		Args:  cobra.NoArgs,
		RunE:  printConfig,
	}
	addSessionFlags(configCmd.Flags())
	configCmd.Flags().StringVar(&writePath, "write", "", "also save the config to this path")

	rootCmd.AddCommand(liveCmd, guiCmd, runCmd, sweepCmd, listCmd, plotCmd, analyzeCmd,
		exportJSONCmd, exportCSVCmd, exportSVGCmd, deleteCmd, presetsCmd, positionCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSessionFlags(fs *pflag.FlagSet) {
	fs.IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	fs.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	fs.StringVar(&theme, "theme", config.DefaultTheme, "terminal theme")
}

// loadConfig resolves preset, then config file, then explicitly set flags.
func loadConfig(cmd *cobra.Command, presetName string) (*config.Config, error) {
	cfg := config.GetPreset(presetName)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets())
	}
	if configFile != "" {
		loaded, err := config.LoadWith(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func sessionSeed(cfg *config.Config) int64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return time.Now().UnixNano()
}

func positionStore(cfg *config.Config) *storage.PositionFile {
	return storage.NewPositionFile(filepath.Join(cfg.DataDir, positionFile))
}

func liveSession(cfg *config.Config, logger *slog.Logger) (viz.Model, error) {
	sink := viz.NewSink()
	ctrl, err := orb.New(cfg.Orb, sink,
		orb.WithLight(sink.Light()),
		orb.WithTheme(sink),
		orb.WithStore(positionStore(cfg)),
		orb.WithSeed(sessionSeed(cfg)),
		orb.WithLogger(logger),
	)
	if err != nil {
		return viz.Model{}, err
	}

	t, ok := viz.GetTheme(cfg.Theme)
	if !ok {
		logger.Warn("unknown theme, using default", "theme", cfg.Theme, "available", viz.ThemeNames())
	}
	return viz.NewModel(ctrl, sink, viz.WithTheme(t), viz.WithFPS(cfg.FPS), viz.WithLogger(logger)), nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, preset)
	if err != nil {
		return err
	}
	// the terminal belongs to the UI, so logs go to a file
	logger, closeLog, err := newFileLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	if pick {
		picker := viz.NewPicker(config.ListPresets(), func(name string) (viz.Model, error) {
			pcfg, err := loadConfig(cmd, name)
			if err != nil {
				return viz.Model{}, err
			}
			return liveSession(pcfg, logger)
		})
		return viz.RunPicker(picker)
	}

	m, err := liveSession(cfg, logger)
	if err != nil {
		return err
	}
	return viz.Run(m)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, preset)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.LogLevel, os.Stderr)
	if err != nil {
		return err
	}

	surface := gui.NewSurface()
	ctrl, err := orb.New(cfg.Orb, surface,
		orb.WithLight(surface.Light()),
		orb.WithTheme(surface),
		orb.WithStore(positionStore(cfg)),
		orb.WithSeed(sessionSeed(cfg)),
		orb.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	return gui.Run(ctrl, surface, gui.Config{
		Width:  winWidth,
		Height: winHeight,
		FPS:    int32(cfg.FPS),
		Logger: logger,
	})
}

// scriptSource returns the script name and a constructor for it. A
// scenario file wins over a named script; scenarios ignore the seed.
func scriptSource(args []string) (string, func(orb.Settings, int64) (sim.Script, error), error) {
	if scenario != "" {
		if len(args) > 0 {
			return "", nil, fmt.Errorf("give a script name or --scenario, not both")
		}
		sc, err := automation.LoadScenario(scenario)
		if err != nil {
			return "", nil, err
		}
		return sc.Name(), func(orb.Settings, int64) (sim.Script, error) { return sc, nil }, nil
	}
	if len(args) == 0 {
		return "", nil, fmt.Errorf("missing script (available: %v)", sim.ListScripts())
	}
	name := args[0]
	return name, func(s orb.Settings, seed int64) (sim.Script, error) {
		return sim.GetScript(name, s, seed)
	}, nil
}

func runScript(cmd *cobra.Command, args []string) error {
	name, newScript, err := scriptSource(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, preset)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.LogLevel, os.Stderr)
	if err != nil {
		return err
	}

	runSeed := sessionSeed(cfg)
	script, err := newScript(cfg.Orb, runSeed)
	if err != nil {
		return err
	}
	simCfg := sim.Config{FPS: cfg.FPS, Duration: duration, Seed: runSeed}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if numRuns > 1 {
		return runEnsemble(ctx, st, cfg, name, newScript, simCfg)
	}

	opts := []orb.Option{orb.WithLogger(logger)}
	if persist {
		opts = append(opts, orb.WithStore(positionStore(cfg)))
	}
	runner := sim.NewRunner(cfg.Orb, script, opts...)
	ms := metrics.Default()
	for _, m := range ms {
		runner.AddObserver(m)
	}
	if watch {
		r := tui.NewLiveRenderer(os.Stdout, name, cfg.Orb, 30)
		r.Start()
		defer r.Stop()
		runner.AddObserver(r)
	}

	if !watch {
		fmt.Printf("running %s session...\n", name)
	}
	start := time.Now()

	var result *sim.Result
	if realtime {
		result, err = runner.RunRealtime(ctx, simCfg, logger)
	} else {
		result, err = runner.Run(ctx, simCfg)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	values := summarize(ms, result, cfg.FPS)
	runID, err := st.Save(cfg.Orb, result, values)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", len(result.Frames))
	printMetrics(values)
	return nil
}

func runEnsemble(ctx context.Context, st *storage.Store, cfg *config.Config, name string,
	newScript func(orb.Settings, int64) (sim.Script, error), simCfg sim.Config) error {
	scriptFor := func(s int64) sim.Script {
		script, _ := newScript(cfg.Orb, s)
		return script
	}

	fmt.Printf("running %d %s sessions...\n", numRuns, name)
	results, err := sim.NewEnsemble(cfg.Orb, scriptFor, numRuns, simCfg.Seed).Run(ctx, simCfg)
	if err != nil {
		return err
	}

	for _, res := range results {
		ms := metrics.Default()
		metrics.Replay(ms, res.Frames)
		values := summarize(ms, res, cfg.FPS)
		runID, err := st.Save(cfg.Orb, res, values)
		if err != nil {
			return err
		}
		fmt.Printf("  %s seed=%d idle=%.3f path=%.3f\n", runID, res.Config.Seed, values["idle_fraction"], values["path_length"])
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	name, newScript, err := scriptSource(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, preset)
	if err != nil {
		return err
	}

	var params []optim.Param
	for _, raw := range sweepParams {
		p, err := optim.ParseParam(raw)
		if err != nil {
			return err
		}
		params = append(params, p)
	}
	g := optim.NewGridSearch(params...)
	g.Maximize = maximize

	simCfg := sim.Config{FPS: cfg.FPS, Duration: duration, Seed: sessionSeed(cfg)}
	eval := func(ctx context.Context, s orb.Settings) (map[string]float64, error) {
		script, err := newScript(s, simCfg.Seed)
		if err != nil {
			return nil, err
		}
		runner := sim.NewRunner(s, script)
		ms := metrics.Default()
		for _, m := range ms {
			runner.AddObserver(m)
		}
		res, err := runner.Run(ctx, simCfg)
		if err != nil {
			return nil, err
		}
		return summarize(ms, res, cfg.FPS), nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("sweeping %d %s sessions by %s...\n", g.Size(), name, sweepMetric)
	best, trials, err := g.Search(ctx, cfg.Orb, eval, sweepMetric)
	printTrials(params, trials, sweepMetric)
	if err != nil {
		return err
	}

	fmt.Printf("\nbest %s: %.6f\n", sweepMetric, best.Metrics[sweepMetric])
	for _, p := range params {
		fmt.Printf("  %s: %g\n", p.Name, best.Params[p.Name])
	}
	return nil
}
