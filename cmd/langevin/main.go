package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/langevin/internal/analysis"
	"github.com/san-kum/langevin/internal/boundary"
	"github.com/san-kum/langevin/internal/config"
	"github.com/san-kum/langevin/internal/forces"
	"github.com/san-kum/langevin/internal/integrators"
	"github.com/san-kum/langevin/internal/md"
	"github.com/san-kum/langevin/internal/storage"
	"github.com/san-kum/langevin/internal/thermo"
	"github.com/san-kum/langevin/internal/trajectory"
	"github.com/san-kum/langevin/internal/tui"
	"github.com/san-kum/langevin/internal/units"
)

var (
	dataDir     string
	configFile  string
	natoms      int
	temperature float64
	nsteps      int
	dt          float64
	relaxation  float64
	seed        int64
	outputFile  string
	compression string
	boundaryTyp string
	dumpFreq    int
	quiet       bool
	plotDir     string
	pngFile     string
	exportFile  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "langevin",
		Short: "Langevin dynamics simulator for non-interacting particles",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".langevin", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&plotDir, "plots", "", "write temperature/energy PNG plots to this directory")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with a live temperature view",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the temperature series of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&pngFile, "png", "", "save PNG instead of drawing in the terminal")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export the thermo series of a stored run to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&exportFile, "out", "thermo.csv", "output CSV path")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().IntVar(&natoms, "natoms", config.DefaultNatoms, "number of particles")
	cmd.Flags().Float64Var(&temperature, "temp", config.DefaultTemperature, "target temperature (K)")
	cmd.Flags().IntVar(&nsteps, "steps", config.DefaultNsteps, "number of timesteps")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	cmd.Flags().Float64Var(&relaxation, "tau", config.DefaultRelaxation, "thermostat relaxation time (s)")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&outputFile, "out", "", "trajectory output file (LAMMPS dump)")
	cmd.Flags().StringVar(&compression, "compression", "", "trajectory compression (gzip, zstd)")
	cmd.Flags().StringVar(&boundaryTyp, "boundary", config.DefaultBoundaryType, "boundary type (reflective, periodic)")
	cmd.Flags().IntVar(&dumpFreq, "dump-freq", config.DefaultDumpFrequency, "snapshot every N steps")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "suppress progress output")
}

// loadConfig merges defaults, config file, and explicitly set CLI flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("natoms") {
		cfg.Natoms = natoms
	}
	if cmd.Flags().Changed("temp") {
		cfg.Temperature = temperature
	}
	if cmd.Flags().Changed("steps") {
		cfg.Nsteps = nsteps
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("tau") {
		cfg.RelaxationTime = relaxation
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputFile = outputFile
	}
	if cmd.Flags().Changed("compression") {
		cfg.Compression = compression
	}
	if cmd.Flags().Changed("boundary") {
		cfg.BoundaryType = boundaryTyp
	}
	if cmd.Flags().Changed("dump-freq") {
		cfg.DumpFrequency = dumpFreq
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("quiet") {
		cfg.Verbose = !quiet
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildEngine assembles the per-step pipeline from a validated config.
func buildEngine(cfg *config.Config) (*md.Engine, *thermo.Monitor, *trajectory.Writer, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	box := cfg.ToBox()

	state, err := md.NewRandomState(cfg.Natoms, cfg.PerParticleMass(), box, rng)
	if err != nil {
		return nil, nil, nil, err
	}
	frc, err := forces.NewLangevin(cfg.Params(), rng)
	if err != nil {
		return nil, nil, nil, err
	}
	bnd, err := boundary.New(cfg.BoundaryType, box)
	if err != nil {
		return nil, nil, nil, err
	}

	monitor := thermo.NewMonitor()
	eng := md.New(state, frc, integrators.NewEuler(), bnd, monitor, box)

	var writer *trajectory.Writer
	if cfg.OutputFile != "" {
		writer, err = trajectory.NewWriter(cfg.OutputFile, cfg.Radius, cfg.Compression)
		if err != nil {
			return nil, nil, nil, err
		}
		eng.SetSink(writer)
	}
	return eng, monitor, writer, nil
}

// progressObserver surfaces intermediate temperatures roughly ten times per
// run, the way the verbose mode always has.
type progressObserver struct {
	log      *slog.Logger
	interval int
	total    int
}

func newProgressObserver(total int) *progressObserver {
	interval := total / 10
	if interval < 1 {
		interval = 1
	}
	return &progressObserver{
		log:      slog.New(slog.NewTextHandler(os.Stderr, nil)),
		interval: interval,
		total:    total,
	}
}

func (p *progressObserver) OnStep(s md.ThermoSample) {
	if (s.Step+1)%p.interval != 0 {
		return
	}
	p.log.Info("progress",
		"step", fmt.Sprintf("%d/%d", s.Step+1, p.total),
		"temperature_K", fmt.Sprintf("%.2f", s.Temperature),
		"time_ps", fmt.Sprintf("%.3f", s.Time/units.Picosecond))
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	eng, monitor, writer, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	if writer != nil {
		defer writer.Close()
	}
	eng.AddObserver(newProgressObserver(cfg.Nsteps))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	result, err := eng.Run(ctx, md.RunConfig{
		Steps:         cfg.Nsteps,
		Dt:            cfg.Dt,
		DumpFrequency: cfg.DumpFrequency,
		Verbose:       cfg.Verbose,
		CheckFinite:   cfg.CheckFinite,
	})
	if err != nil {
		return fmt.Errorf("simulation %s: %w", eng.State(), err)
	}
	elapsed := time.Since(start)

	sum := monitor.Summarize()
	fmt.Printf("simulation complete: %d steps in %s\n", result.StepsTaken, elapsed.Round(time.Millisecond))
	fmt.Printf("  mean temperature: %.2f K (target %.2f K, std %.2f K)\n",
		sum.MeanTemperature, cfg.Temperature, sum.StdDevTemperature)
	fmt.Printf("  snapshots written: %d\n", result.SnapshotsWritten)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Seed:            cfg.Seed,
		Natoms:          cfg.Natoms,
		Nsteps:          cfg.Nsteps,
		Dt:              cfg.Dt,
		Temperature:     cfg.Temperature,
		RelaxationTime:  cfg.RelaxationTime,
		BoundaryType:    cfg.BoundaryType,
		MeanTemperature: sum.MeanTemperature,
		StdTemperature:  sum.StdDevTemperature,
		Snapshots:       result.SnapshotsWritten,
	}, monitor.Samples())
	if err != nil {
		return err
	}
	fmt.Printf("  saved as: %s\n", runID)

	if plotDir != "" {
		if err := os.MkdirAll(plotDir, 0755); err != nil {
			return err
		}
		samples := monitor.Samples()
		if err := analysis.PlotTemperature(samples, cfg.Temperature, plotDir+"/temperature.png"); err != nil {
			return err
		}
		if err := analysis.PlotEnergy(samples, plotDir+"/energy.png"); err != nil {
			return err
		}
		fmt.Printf("  plots written to: %s\n", plotDir)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	eng, _, writer, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	if writer != nil {
		defer writer.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return tui.Run(ctx, eng, md.RunConfig{
		Steps:         cfg.Nsteps,
		Dt:            cfg.Dt,
		DumpFrequency: cfg.DumpFrequency,
		CheckFinite:   cfg.CheckFinite,
	}, cfg.Temperature)
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

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tATOMS\tSTEPS\tBOUNDARY\tTARGET (K)\tMEAN T (K)\tDATE")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%.1f\t%.1f\t%s\n",
			r.ID, r.Natoms, r.Nsteps, r.BoundaryType, r.Temperature,
			r.MeanTemperature, r.Timestamp.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("run %s has no samples", args[0])
	}

	if pngFile != "" {
		if err := analysis.PlotTemperature(samples, meta.Temperature, pngFile); err != nil {
			return err
		}
		fmt.Printf("plot saved to: %s\n", pngFile)
		return nil
	}

	temps := analysis.Temperatures(samples)
	// Downsample long series so the graph fits a terminal.
	const maxPoints = 160
	if len(temps) > maxPoints {
		stride := len(temps) / maxPoints
		ds := make([]float64, 0, maxPoints)
		for i := 0; i < len(temps); i += stride {
			ds = append(ds, temps[i])
		}
		temps = ds
	}
	fmt.Println(asciigraph.Plot(temps,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("temperature (K), target %.1f K", meta.Temperature))))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	f, err := os.Create(exportFile)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&samples, f); err != nil {
		return err
	}
	fmt.Printf("exported %d samples to %s\n", len(samples), exportFile)
	return nil
}
