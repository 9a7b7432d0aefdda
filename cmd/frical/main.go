package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/frical/internal/calib"
	"github.com/san-kum/frical/internal/config"
	"github.com/san-kum/frical/internal/storage"
	"github.com/san-kum/frical/internal/trial"
	"github.com/san-kum/frical/internal/viz"
	"github.com/san-kum/frical/internal/world"
)

var (
	dataDir    string
	configFile string
	preset     string

	truth      float64
	start      float64
	steps      int
	dt         float64
	impulseX   float64
	impulseY   float64
	iterations int
	tolerance  float64

	targetX  float64
	svgPath  string
	samples  int
	friction float64
	paceMs   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "frical",
		Short: "friction calibration lab for a rigid-body oracle",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".frical", "data directory")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "show divergence between ground truth and a mis-parameterized oracle",
		RunE:  runDemo,
	}
	addScenarioFlags(demoCmd)

	calibrateCmd := &cobra.Command{
		Use:   "calibrate",
		Short: "recover the friction coefficient by bisection",
		RunE:  runCalibrate,
	}
	addScenarioFlags(calibrateCmd)
	calibrateCmd.Flags().Float64Var(&targetX, "target", 0, "target final x (default: ground-truth trial)")
	calibrateCmd.Flags().StringVar(&svgPath, "svg", "", "write convergence chart to an SVG file")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sample the friction/displacement curve and audit monotonicity",
		RunE:  runSweep,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&samples, "samples", 20, "number of grid intervals over [0,1]")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "plot the x trajectory of a single trial",
		RunE:  runTrace,
	}
	addScenarioFlags(traceCmd)
	traceCmd.Flags().Float64Var(&friction, "friction", config.DefaultTrueFriction, "friction coefficient for the trial")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a calibration with live visualization",
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().Float64Var(&targetX, "target", 0, "target final x (default: ground-truth trial)")
	liveCmd.Flags().IntVar(&paceMs, "pace", 400, "milliseconds between iterations")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved calibration runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run's convergence history",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available scenario presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(demoCmd, calibrateCmd, sweepCmd, traceCmd, liveCmd, listCmd, plotCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&truth, "truth", config.DefaultTrueFriction, "ground-truth friction")
	cmd.Flags().Float64Var(&start, "start", config.DefaultOracleStart, "oracle's initial friction guess")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "simulation steps per trial")
	cmd.Flags().Float64Var(&dt, "dt", world.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&impulseX, "impulse-x", config.DefaultImpulseX, "impulse x component")
	cmd.Flags().Float64Var(&impulseY, "impulse-y", config.DefaultImpulseY, "impulse y component")
	cmd.Flags().IntVar(&iterations, "iterations", config.DefaultMaxIterations, "maximum search iterations")
	cmd.Flags().Float64Var(&tolerance, "tolerance", config.DefaultTolerance, "acceptable positional error")
	cmd.Flags().StringVar(&configFile, "config", "", "scenario config file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a named scenario preset")
}

// loadScenario resolves the scenario in override order: defaults, then
// preset, then config file, then explicit CLI flags.
func loadScenario(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("truth") {
		cfg.TrueFriction = truth
	}
	if cmd.Flags().Changed("start") {
		cfg.OracleStart = start
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("impulse-x") {
		cfg.Impulse.X = impulseX
	}
	if cmd.Flags().Changed("impulse-y") {
		cfg.Impulse.Y = impulseY
	}
	if cmd.Flags().Changed("iterations") {
		cfg.MaxIterations = iterations
	}
	if cmd.Flags().Changed("tolerance") {
		cfg.Tolerance = tolerance
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	runner, err := trial.NewRunnerDt(cfg.Steps, cfg.ImpulseVec(), cfg.Dt)
	if err != nil {
		return err
	}

	fmt.Printf("ground-truth friction: %.4f\n", cfg.TrueFriction)
	fmt.Printf("oracle's initial guess: %.4f\n\n", cfg.OracleStart)
	fmt.Printf("running both worlds for %d steps...\n\n", cfg.Steps)

	truthX := runner.Run(cfg.TrueFriction)
	oracleX := runner.Run(cfg.OracleStart)

	fmt.Printf("final x, ground-truth world: %.2f\n", truthX)
	fmt.Printf("final x, oracle's world:     %.2f\n", oracleX)
	fmt.Printf("\ndivergence: %.2f units\n", math.Abs(truthX-oracleX))

	return nil
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	runner, err := trial.NewRunnerDt(cfg.Steps, cfg.ImpulseVec(), cfg.Dt)
	if err != nil {
		return err
	}

	target := targetX
	fromTruth := !cmd.Flags().Changed("target")
	if fromTruth {
		target = runner.Run(cfg.TrueFriction)
		fmt.Printf("ground-truth trial at friction %.4f: x = %.2f\n\n", cfg.TrueFriction, target)
	}

	engine, err := calib.NewEngine(runner, cfg.MaxIterations, cfg.Tolerance)
	if err != nil {
		return err
	}
	engine.AddObserver(func(t calib.Trial) {
		fmt.Printf("iteration %02d: guess=%.4f error=%.2f\n", t.Iteration, t.Guess, t.Error)
	})

	result, err := engine.Calibrate(context.Background(), target)
	if err != nil {
		return err
	}

	fmt.Println()
	if engine.Converged() {
		fmt.Printf("converged: friction = %.4f\n", result)
	} else {
		fmt.Printf("budget exhausted: best guess = %.4f\n", result)
	}
	if fromTruth {
		fmt.Printf("error in friction: %.4f\n", math.Abs(result-cfg.TrueFriction))
	}

	fmt.Println()
	fmt.Println(viz.ConvergenceChart(engine.History()))

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		TargetX:       target,
		Result:        result,
		Converged:     engine.Converged(),
		Iterations:    len(engine.History()),
		Steps:         cfg.Steps,
		Dt:            cfg.Dt,
		ImpulseX:      cfg.Impulse.X,
		ImpulseY:      cfg.Impulse.Y,
		MaxIterations: cfg.MaxIterations,
		Tolerance:     cfg.Tolerance,
	}, engine.History())
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)

	if svgPath != "" {
		svg := viz.ConvergenceSVG(engine.History(), 800, 500)
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("convergence chart written to %s\n", svgPath)
	}

	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	runner, err := trial.NewRunnerDt(cfg.Steps, cfg.ImpulseVec(), cfg.Dt)
	if err != nil {
		return err
	}

	points, err := runner.Sweep(context.Background(), trial.Grid(samples))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FRICTION\tFINAL X")
	for _, p := range points {
		fmt.Fprintf(w, "%.3f\t%.2f\n", p.Friction, p.FinalX)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	violations := 0
	for i := 1; i < len(points); i++ {
		if points[i].FinalX > points[i-1].FinalX {
			violations++
		}
	}
	fmt.Println()
	if violations == 0 {
		fmt.Println("monotonicity holds across the grid")
	} else {
		fmt.Printf("warning: %d monotonicity violation(s) — bisection may misbehave\n", violations)
	}

	fmt.Println()
	fmt.Println(viz.SweepChart(points))
	return nil
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	runner, err := trial.NewRunnerDt(cfg.Steps, cfg.ImpulseVec(), cfg.Dt)
	if err != nil {
		return err
	}

	xs := runner.Trajectory(friction)
	fmt.Println(viz.TrajectoryChart(xs, friction))
	fmt.Printf("final x: %.2f\n", xs[len(xs)-1])
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	runner, err := trial.NewRunnerDt(cfg.Steps, cfg.ImpulseVec(), cfg.Dt)
	if err != nil {
		return err
	}

	target := targetX
	if !cmd.Flags().Changed("target") {
		target = runner.Run(cfg.TrueFriction)
	}

	engine, err := calib.NewEngine(runner, cfg.MaxIterations, cfg.Tolerance)
	if err != nil {
		return err
	}

	return viz.RunLive(engine, target, time.Duration(paceMs)*time.Millisecond)
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
	fmt.Fprintln(w, "ID\tTIME\tTARGET X\tRESULT\tITERS\tCONVERGED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.4f\t%d\t%v\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.TargetX,
			run.Result,
			run.Iterations,
			run.Converged,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	history, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		return fmt.Errorf("no history to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("target x: %.2f\n", meta.TargetX)
	fmt.Printf("result: %.4f (converged: %v)\n\n", meta.Result, meta.Converged)
	fmt.Println(viz.ConvergenceChart(history))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	history, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}

	out := struct {
		Meta    *storage.RunMetadata `json:"meta"`
		History []calib.Trial        `json:"history"`
	}{meta, history}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
