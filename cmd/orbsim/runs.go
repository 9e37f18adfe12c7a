package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbsim/internal/analysis"
	"github.com/san-kum/orbsim/internal/config"
	"github.com/san-kum/orbsim/internal/export"
	"github.com/san-kum/orbsim/internal/metrics"
	"github.com/san-kum/orbsim/internal/optim"
	"github.com/san-kum/orbsim/internal/sim"
	"github.com/san-kum/orbsim/internal/storage"
	"github.com/spf13/cobra"
)

// summarize adds the breathing frequency to the accumulated metrics.
func summarize(ms []metrics.Metric, result *sim.Result, fps int) map[string]float64 {
	values := metrics.Collect(ms)
	if sx, err := analysis.Series(result.Frames, "sx"); err == nil {
		values["dominant_freq"] = analysis.DominantFrequency(sx, fps)
	}
	return values
}

func printMetrics(values map[string]float64) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, values[name])
	}
}

func openStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd, preset)
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.DataDir), nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCRIPT\tTIME\tDURATION\tFPS\tFRAMES\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
			run.ID,
			run.Script,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.FPS,
			run.Frames,
			run.Seed,
		)
	}

	return w.Flush()
}

func loadRun(cmd *cobra.Command, runID string) (*storage.RunMetadata, []sim.Frame, error) {
	st, err := openStore(cmd)
	if err != nil {
		return nil, nil, err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(frames) == 0 {
		return nil, nil, fmt.Errorf("run %s has no frames", runID)
	}
	return meta, frames, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("script: %s\n", meta.Script)
	fmt.Printf("frames: %d\n\n", len(frames))

	for _, col := range columns {
		data, err := analysis.Series(frames, col)
		if err != nil {
			return err
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(col+" vs time"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}
	data, err := analysis.Series(frames, column)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("script: %s\n\n", meta.Script)

	ps := analysis.PowerSpectrum(data)
	if len(ps) > 8 {
		plotData := ps[:len(ps)/4]
		graph := asciigraph.Plot(plotData,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum ("+column+")"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	freq := analysis.DominantFrequency(data, meta.FPS)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	fmt.Printf("configured period: %.3f s\n", meta.Settings.Period)

	ms := metrics.Default()
	metrics.Replay(ms, frames)
	printMetrics(metrics.Collect(ms))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, frames)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, frames, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}
	return storage.WriteFramesCSV(os.Stdout, frames)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}
	return export.PathSVG(os.Stdout, frames, meta.Settings, svgWidth, svgHeight)
}

func printTrials(params []optim.Param, trials []optim.Trial, metric string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, p := range params {
		fmt.Fprintf(w, "%s\t", strings.ToUpper(p.Name))
	}
	fmt.Fprintf(w, "%s\n", strings.ToUpper(metric))

	for _, tr := range trials {
		for _, p := range params {
			fmt.Fprintf(w, "%g\t", tr.Params[p.Name])
		}
		if tr.Err != nil {
			fmt.Fprintf(w, "error: %v\n", tr.Err)
			continue
		}
		fmt.Fprintf(w, "%.6f\n", tr.Metrics[metric])
	}
	w.Flush()
}

func deleteRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	if err := st.Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", args[0])
	return nil
}

func showPosition(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, preset)
	if err != nil {
		return err
	}
	pf := positionStore(cfg)
	p, ok := pf.Load()
	if !ok {
		fmt.Printf("no saved position in %s\n", pf.Path())
		return nil
	}
	fmt.Printf("x: %.4f\ny: %.4f\n", p.X, p.Y)
	return nil
}

func clearPosition(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, preset)
	if err != nil {
		return err
	}
	if err := positionStore(cfg).Clear(); err != nil {
		return err
	}
	fmt.Println("saved position cleared")
	return nil
}

func printConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, preset)
	if err != nil {
		return err
	}
	out, err := cfg.Marshal()
	if err != nil {
		return err
	}
	fmt.Print(out)

	if writePath != "" {
		if err := config.Save(writePath, cfg); err != nil {
			return err
		}
		fmt.Printf("\nsaved to %s\n", writePath)
	}
	return nil
}
