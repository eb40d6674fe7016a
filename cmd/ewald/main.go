package main

import (
	"fmt"
	"math"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/ewald/internal/config"
	"github.com/san-kum/ewald/internal/ewald"
	"github.com/san-kum/ewald/internal/export"
	"github.com/san-kum/ewald/internal/tui"
)

var (
	configFile string
	c0Override float64
	c1Override float64
	jsonOut    bool
	csvOut     bool
	svgOut     string
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
)

var (
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	energyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ewald",
		Short: "Coulomb energy of periodic charge/dipole arrays by Ewald summation",
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "crystal config file (yaml)")
	rootCmd.PersistentFlags().Float64Var(&c0Override, "c0", 0, "override accuracy parameter")
	rootCmd.PersistentFlags().Float64Var(&c1Override, "c1", 0, "override balance parameter")

	energyCmd := &cobra.Command{
		Use:   "energy [preset]",
		Short: "compute the electrostatic energy",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnergy,
	}
	energyCmd.Flags().BoolVar(&jsonOut, "json", false, "emit result as json")
	energyCmd.Flags().BoolVar(&csvOut, "csv", false, "emit result as csv")
	energyCmd.Flags().StringVar(&svgOut, "svg", "", "write cell projection svg to file")

	neighborsCmd := &cobra.Command{
		Use:   "neighbors [preset]",
		Short: "show per-site neighbor counts",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runNeighbors,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "sweep c0 or c1 and plot the energy",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "c1", "parameter to sweep (c0 or c1)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.4, "sweep start")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 10.0, "sweep end")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 15, "number of samples")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in crystal presets",
		RunE:  runPresets,
	}

	exploreCmd := &cobra.Command{
		Use:   "explore [preset]",
		Short: "interactively explore the summation parameters",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExplore,
	}

	rootCmd.AddCommand(energyCmd, neighborsCmd, sweepCmd, presetsCmd, exploreCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the crystal description: --config wins, then the
// preset argument, then the cscl preset.
func loadConfig(args []string) (*config.Config, string, error) {
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, "", err
		}
		return cfg, configFile, nil
	}
	name := "cscl"
	if len(args) > 0 {
		name = args[0]
	}
	cfg, ok := config.Presets[name]
	if !ok {
		return nil, "", fmt.Errorf("unknown preset %q (see `ewald presets`)", name)
	}
	copied := *cfg
	return &copied, name, nil
}

func applyOverrides(cfg *config.Config) {
	if c0Override > 0 {
		cfg.C0 = c0Override
	}
	if c1Override > 0 {
		cfg.C1 = c1Override
	}
}

func buildSystem(cfg *config.Config) (*ewald.System, error) {
	sys, err := cfg.System()
	if err != nil {
		return nil, err
	}
	for _, ev := range sys.WrapEvents() {
		fmt.Fprintln(os.Stderr, warnStyle.Render(fmt.Sprintf(
			"warning: site %d at (%.4f, %.4f, %.4f) outside cell, fractional (%.4f, %.4f, %.4f); wrapped",
			ev.Site, ev.Position[0], ev.Position[1], ev.Position[2],
			ev.Fractional[0], ev.Fractional[1], ev.Fractional[2])))
	}
	return sys, nil
}

func runEnergy(cmd *cobra.Command, args []string) error {
	cfg, source, err := loadConfig(args)
	if err != nil {
		return err
	}
	applyOverrides(cfg)
	sys, err := buildSystem(cfg)
	if err != nil {
		return err
	}

	nbrs, err := sys.Neighbors()
	if err != nil {
		return err
	}
	count := 0
	for _, g := range nbrs {
		count += len(g)
	}

	e, err := sys.Energy(ewald.EnergyOptions{
		Charges:   cfg.ChargeArray(),
		Dipoles:   cfg.DipoleArray(),
		Neighbors: nbrs,
	})
	if err != nil {
		return err
	}

	result := export.Result{
		Source:        source,
		Sites:         sys.NumSites(),
		C0:            sys.C0,
		C1:            sys.C1,
		Sigma:         sys.Sigma(),
		RealCutoff:    sys.RealSpaceCutoff(),
		FourierCutoff: sys.FourierSpaceCutoff(),
		NeighborCount: count,
		Energy:        e,
	}
	if cfg.RefDistance > 0 {
		product := e * cfg.RefDistance
		result.MadelungProduct = &product
	}

	if svgOut != "" {
		if err := os.WriteFile(svgOut, []byte(export.CellSVG(sys, cfg.ChargeArray(), 480)), 0644); err != nil {
			return err
		}
	}
	switch {
	case jsonOut:
		return export.WriteJSON(os.Stdout, result)
	case csvOut:
		return export.WriteCSV(os.Stdout, []export.Result{result})
	}

	printRow := func(label, value string) {
		fmt.Printf("  %s %s\n", labelStyle.Render(fmt.Sprintf("%-15s", label)), valueStyle.Render(value))
	}
	fmt.Println(valueStyle.Render(source))
	printRow("sites", fmt.Sprintf("%d", result.Sites))
	printRow("c0 / c1", fmt.Sprintf("%g / %g", result.C0, result.C1))
	printRow("sigma", fmt.Sprintf("%.6f", result.Sigma))
	printRow("real cutoff", fmt.Sprintf("%.6f", result.RealCutoff))
	printRow("fourier cutoff", fmt.Sprintf("%.6f", result.FourierCutoff))
	printRow("neighbors", fmt.Sprintf("%d", result.NeighborCount))
	fmt.Printf("  %s %s\n", labelStyle.Render(fmt.Sprintf("%-15s", "energy")), energyStyle.Render(fmt.Sprintf("%.14f", e)))
	if result.MadelungProduct != nil {
		printRow("energy * d", fmt.Sprintf("%.14f", *result.MadelungProduct))
	}
	return nil
}

func runNeighbors(cmd *cobra.Command, args []string) error {
	cfg, source, err := loadConfig(args)
	if err != nil {
		return err
	}
	applyOverrides(cfg)
	sys, err := buildSystem(cfg)
	if err != nil {
		return err
	}
	nbrs, err := sys.Neighbors()
	if err != nil {
		return err
	}

	fmt.Printf("%s  (real cutoff %.4f)\n", source, sys.RealSpaceCutoff())
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SITE\tPOSITION\tNEIGHBORS")
	total := 0
	for i, group := range nbrs {
		p := sys.Positions[i]
		fmt.Fprintf(w, "%d\t(%.4f, %.4f, %.4f)\t%d\n", i, p[0], p[1], p[2], len(group))
		total += len(group)
	}
	fmt.Fprintf(w, "\t\t%d total\n", total)
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, source, err := loadConfig(args)
	if err != nil {
		return err
	}
	applyOverrides(cfg)
	if sweepParam != "c0" && sweepParam != "c1" {
		return fmt.Errorf("unknown sweep parameter %q (want c0 or c1)", sweepParam)
	}
	if sweepSteps < 2 {
		return fmt.Errorf("need at least 2 steps, got %d", sweepSteps)
	}

	energies := make([]float64, 0, sweepSteps)
	for i := 0; i < sweepSteps; i++ {
		v := sweepMin + (sweepMax-sweepMin)*float64(i)/float64(sweepSteps-1)
		trial := *cfg
		if sweepParam == "c0" {
			trial.C0 = v
		} else {
			trial.C1 = v
		}
		sys, err := trial.System()
		if err != nil {
			return err
		}
		e, err := sys.Energy(ewald.EnergyOptions{
			Charges: trial.ChargeArray(),
			Dipoles: trial.DipoleArray(),
		})
		if err != nil {
			return err
		}
		energies = append(energies, e)
	}

	lo, hi := energies[0], energies[0]
	for _, e := range energies {
		lo = math.Min(lo, e)
		hi = math.Max(hi, e)
	}

	fmt.Println(asciigraph.Plot(energies,
		asciigraph.Height(12),
		asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("%s: energy vs %s in [%g, %g]", source, sweepParam, sweepMin, sweepMax)),
	))
	fmt.Printf("\nmax deviation: %.3e\n", hi-lo)
	return nil
}

func runPresets(cmd *cobra.Command, args []string) error {
	names := make([]string, 0, len(config.Presets))
	for name := range config.Presets {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSITES\tDESCRIPTION")
	for _, name := range names {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%d\t%s\n", name, len(p.Positions), p.Name)
	}
	return w.Flush()
}

func runExplore(cmd *cobra.Command, args []string) error {
	cfg, source, err := loadConfig(args)
	if err != nil {
		return err
	}
	applyOverrides(cfg)
	return tui.Run(cfg, source)
}
