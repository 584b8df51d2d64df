package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/kolam/internal/client"
	"github.com/san-kum/kolam/internal/config"
	"github.com/san-kum/kolam/internal/export"
	"github.com/san-kum/kolam/internal/pattern"
	"github.com/san-kum/kolam/internal/server"
	"github.com/san-kum/kolam/internal/store"
	"github.com/san-kum/kolam/internal/tui"
)

var (
	configFile string
	serverURL  string
	dataDir    string
	listenAddr string
	speed      float64
	theme      string
	localSVG   bool
)

// loadConfig merges the config file (if any) with CLI flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("server") {
		cfg.ServerURL = serverURL
	}
	if cmd.Flags().Changed("data") {
		cfg.DataDir = dataDir
	}
	if cmd.Flags().Changed("listen") {
		cfg.Listen = listenAddr
	}
	if cmd.Flags().Changed("speed") {
		cfg.Speed = speed
	}
	if cmd.Flags().Changed("theme") {
		cfg.Theme = theme
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "kolam",
		Short: "kolam pattern analysis client and service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return tui.Run(cfg)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&serverURL, "server", config.DefaultServerURL, "analysis service URL")
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.Float64Var(&speed, "speed", config.DefaultSpeed, "playback speed")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "run the analysis service",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&listenAddr, "listen", config.DefaultListen, "listen address")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [image]",
		Short: "upload an image for analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored analyses",
		RunE:  runList,
	}

	viewCmd := &cobra.Command{
		Use:   "view [id|record.json]",
		Short: "replay a stored analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  runView,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [id]",
		Short: "export a stored analysis as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportSVG,
	}
	exportSVGCmd.Flags().BoolVar(&localSVG, "local", false, "render locally instead of via the service")

	exportEqCmd := &cobra.Command{
		Use:   "export-equations [id]",
		Short: "export a stored analysis' equations as text",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportEquations,
	}

	rootCmd.AddCommand(serveCmd, analyzeCmd, listCmd, viewCmd, exportSVGCmd, exportEqCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := store.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	srv := server.New(st, log.New(os.Stderr, "kolam: ", log.LstdFlags))
	return srv.ListenAndServe(cfg.Listen)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := store.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	c := client.New(cfg.ServerURL)
	rec, err := c.Analyze(ctx, args[0])
	if err != nil {
		return err
	}

	id, err := st.Save(rec, "", nil)
	if err != nil {
		return err
	}

	fmt.Printf("analyzed %s\n\n", args[0])
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "id\t%s\n", id)
	fmt.Fprintf(w, "pattern\t%s\n", rec.Type)
	fmt.Fprintf(w, "symmetry\t%s\n", rec.Symmetry)
	fmt.Fprintf(w, "complexity\t%s\n", rec.Complexity)
	fmt.Fprintf(w, "grid\t%d x %d %s\n", rec.Grid.Dimensions[0], rec.Grid.Dimensions[1], rec.Grid.Type)
	fmt.Fprintf(w, "dots\t%d\n", len(rec.Grid.Dots))
	fmt.Fprintf(w, "paths\t%d (%d points)\n", len(rec.Paths), rec.TotalPoints())
	fmt.Fprintf(w, "x(t)\t%s\n", rec.Equations.XFunction)
	fmt.Fprintf(w, "y(t)\t%s\n", rec.Equations.YFunction)
	fmt.Fprintf(w, "r^2\t%.3f\n", rec.Equations.RSquared)
	return w.Flush()
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := store.New(cfg.DataDir)
	entries, err := st.List()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("no stored analyses")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tIMAGE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			e.ID,
			e.Timestamp.Format("2006-01-02 15:04:05"),
			e.ImageFile,
		)
	}
	return w.Flush()
}

// loadRecord resolves either a stored analysis id or a record JSON
// file on disk.
func loadRecord(cfg *config.Config, ref string) (*pattern.Record, error) {
	if strings.HasSuffix(ref, ".json") {
		data, err := os.ReadFile(ref)
		if err != nil {
			return nil, err
		}
		var rec pattern.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decode %s: %w", ref, err)
		}
		return &rec, nil
	}
	return store.New(cfg.DataDir).Load(ref)
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	rec, err := loadRecord(cfg, args[0])
	if err != nil {
		return err
	}
	return tui.RunRecord(cfg, rec)
}

func runExportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	rec, err := loadRecord(cfg, args[0])
	if err != nil {
		return err
	}

	var svg string
	if localSVG {
		svg = export.SVG(rec.Paths, rec.Grid.Dots)
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		svg, err = client.New(cfg.ServerURL).ExportSVG(ctx, rec.Paths, rec.Grid.Dots)
		if err != nil {
			return err
		}
	}

	name := export.SVGFilename(rec.ID)
	if err := export.WriteFile(name, svg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", name)
	return nil
}

func runExportEquations(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	rec, err := loadRecord(cfg, args[0])
	if err != nil {
		return err
	}

	name := export.EquationsFilename(rec.ID)
	if err := export.WriteFile(name, export.EquationsReport(rec)); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", name)
	return nil
}
