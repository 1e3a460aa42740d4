package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/planetary/internal/config"
	"github.com/san-kum/planetary/internal/engine"
	"github.com/san-kum/planetary/internal/scenario"
	"github.com/san-kum/planetary/internal/storage"
	"github.com/san-kum/planetary/internal/units"
	"github.com/san-kum/planetary/internal/viz"
)

var (
	dataDir    string
	dt         float64
	timeUnits  string
	spaceUnits string
	massUnits  string
	limit      int
	noHistory  bool
	configFile string
	preset     string
	// random command
	seed      int64
	minBodies int
	maxBodies int
	outFile   string
	// live view
	frameRate int
	// plot
	plotBody   string
	plotAxis   string
	plotHeight int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "planetary",
		Short: "2d gravitational n-body lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".planetary", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario.json]",
		Short: "run a scenario to its step limit and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	addEngineFlags(runCmd)

	randomCmd := &cobra.Command{
		Use:   "random",
		Short: "generate a random scenario",
		RunE:  randomScenario,
	}
	randomCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	randomCmd.Flags().IntVar(&minBodies, "min-bodies", 1, "minimum body count")
	randomCmd.Flags().IntVar(&maxBodies, "max-bodies", 10, "maximum body count")
	randomCmd.Flags().StringVar(&outFile, "out", "", "write scenario JSON here instead of stdout")

	liveCmd := &cobra.Command{
		Use:   "live [scenario.json]",
		Short: "watch a scenario evolve in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addEngineFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotBody, "body", "", "body label (default: first)")
	plotCmd.Flags().StringVar(&plotAxis, "axis", "y", "coordinate axis: x or y")
	plotCmd.Flags().IntVar(&plotHeight, "height", 15, "plot height in rows")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	unitsCmd := &cobra.Command{
		Use:   "units",
		Short: "show recognized unit names",
		Run: func(cmd *cobra.Command, args []string) {
			for _, kind := range []units.Kind{units.Time, units.Space, units.Mass} {
				fmt.Printf("%-6s %s\n", kind, strings.Join(units.Names(kind), " "))
			}
		},
	}

	rootCmd.AddCommand(runCmd, randomCmd, liveCmd, plotCmd, listCmd, unitsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addEngineFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "step size, in time units")
	cmd.Flags().StringVar(&timeUnits, "time-units", "secs", "time unit name")
	cmd.Flags().StringVar(&spaceUnits, "space-units", "m", "space unit name")
	cmd.Flags().StringVar(&massUnits, "mass-units", "kg", "mass unit name")
	cmd.Flags().IntVar(&limit, "limit", config.DefaultLimit, "maximum number of steps")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "disable position history tracking")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "built-in scenario name")
}

// applyConfig loads the yaml config, if any, and folds its values under the
// CLI flags: an explicitly set flag always wins.
func applyConfig(cmd *cobra.Command) (scenarioPath string, err error) {
	if configFile == "" {
		return "", nil
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	if !cmd.Flags().Changed("dt") {
		dt = cfg.Dt
	}
	if !cmd.Flags().Changed("time-units") {
		timeUnits = cfg.TimeUnits
	}
	if !cmd.Flags().Changed("space-units") {
		spaceUnits = cfg.SpaceUnits
	}
	if !cmd.Flags().Changed("mass-units") {
		massUnits = cfg.MassUnits
	}
	if !cmd.Flags().Changed("limit") {
		limit = cfg.Limit
	}
	if !cmd.Flags().Changed("no-history") {
		noHistory = cfg.NoHistory
	}
	if !cmd.Flags().Changed("preset") {
		preset = cfg.Preset
	}
	return cfg.Scenario, nil
}

// resolveRecord picks the scenario source: explicit file argument, then
// preset, then the config file's scenario path.
func resolveRecord(args []string, cfgScenario string) (scenario.Record, string, error) {
	switch {
	case len(args) == 1:
		rec, err := scenario.Load(args[0])
		if err != nil {
			return nil, "", err
		}
		name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		return rec, name, nil
	case preset != "":
		rec := scenario.Preset(preset)
		if rec == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, scenario.PresetNames())
		}
		return rec, preset, nil
	case cfgScenario != "":
		rec, err := scenario.Load(cfgScenario)
		if err != nil {
			return nil, "", err
		}
		name := strings.TrimSuffix(filepath.Base(cfgScenario), filepath.Ext(cfgScenario))
		return rec, name, nil
	}
	return nil, "", fmt.Errorf("no scenario given: pass a file, --preset, or a config with a scenario path")
}

func buildSystem(cmd *cobra.Command, args []string) (*engine.System, string, error) {
	cfgScenario, err := applyConfig(cmd)
	if err != nil {
		return nil, "", err
	}
	rec, name, err := resolveRecord(args, cfgScenario)
	if err != nil {
		return nil, "", err
	}
	sys, err := engine.New(rec, engine.Options{
		Dt:           dt,
		TimeUnits:    timeUnits,
		SpaceUnits:   spaceUnits,
		MassUnits:    massUnits,
		Limit:        limit,
		TrackHistory: !noHistory,
	})
	if err != nil {
		return nil, "", err
	}
	return sys, name, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sys, name, err := buildSystem(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s (%d bodies, %d steps)...\n", name, sys.N(), sys.Limit)
	start := time.Now()

	seq := engine.NewSequence(sys)
	final := sys
	for {
		s, err := seq.Next()
		if errors.Is(err, engine.ErrEndOfSequence) {
			break
		}
		if err != nil {
			return fmt.Errorf("step %d: %w", seq.Index()+1, err)
		}
		final = s
	}

	elapsed := time.Since(start)

	fmt.Printf("completed %d steps in %v\n", seq.Index(), elapsed)
	for i, label := range final.Labels {
		fmt.Printf("  %-12s pos (%.6g, %.6g)  vel (%.6g, %.6g)\n",
			label, final.Pos[i].X, final.Pos[i].Y, final.Vel[i].X, final.Vel[i].Y)
	}

	if final.History != nil {
		runID, err := st.Save(name, timeUnits, spaceUnits, massUnits, final)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	return nil
}

func randomScenario(cmd *cobra.Command, args []string) error {
	r := scenario.NewRandomizer(seed)
	r.MinBodies = minBodies
	r.MaxBodies = maxBodies

	rec := r.Record()

	if outFile != "" {
		if err := scenario.Save(outFile, rec); err != nil {
			return err
		}
		fmt.Printf("wrote %d bodies to %s (seed %d)\n", len(rec), outFile, seed)
		return nil
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	sys, name, err := buildSystem(cmd, args)
	if err != nil {
		return err
	}
	return viz.RunLive(sys, name, frameRate)
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	meta, err := st.Load(args[0])
	if err != nil {
		return fmt.Errorf("unknown run: %s", args[0])
	}
	history, err := st.LoadHistory(args[0])
	if err != nil {
		return err
	}

	body := 0
	label := meta.Labels[0]
	if plotBody != "" {
		body = -1
		for i, l := range meta.Labels {
			if l == plotBody {
				body, label = i, l
				break
			}
		}
		if body == -1 {
			return fmt.Errorf("no body labeled %q in run %s (labels: %v)", plotBody, args[0], meta.Labels)
		}
	}

	graph, err := viz.PlotHistory(history, body, plotAxis, label, plotHeight)
	if err != nil {
		return err
	}
	fmt.Println(graph)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tBODIES\tSTEPS\tDT\tUNITS\tWHEN")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%g\t%s/%s/%s\t%s\n",
			r.ID, r.Scenario, r.Bodies, r.Steps, r.Dt,
			r.TimeUnits, r.SpaceUnits, r.MassUnits,
			r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}
