package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/ukaji3/studentperf-go/internal/server"
	"github.com/ukaji3/studentperf-go/pkg/studentperf"
	"github.com/ukaji3/studentperf-go/pkg/studentperf/metrics"
	"github.com/ukaji3/studentperf-go/pkg/studentperf/models"
	"github.com/ukaji3/studentperf-go/pkg/studentperf/output"
)

var (
	outputPath  string
	pretty      bool
	format      string
	restore     bool
	minAvg      string
	sortBy      string
	locale      string
	reportPath  string
	xlsxPath    string
	inspect     bool
	studentName string
	marks       string
	savePath    string
	listenAddr  string
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [input.csv|-]",
		Short: "Compute class metrics from a CSV of marks",
		Long: `analyze reads a CSV file (or stdin with "-" or no argument), computes the
metrics and prints them. The input is cached for later commands; --restore
analyzes the cached input instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: withApp(runAnalyze),
	}
	cmd.Flags().BoolVar(&restore, "restore", false, "Analyze the cached input")
	addViewFlags(cmd)
	addRenderFlags(cmd)
	return cmd
}

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [input.csv|-]",
		Short: "Append a manually entered student and recompute",
		Long: `add appends one student to the dataset read from the given file, or to the
cached input when no file is given, and prints the recomputed metrics.
With nothing to start from, a header Name,Subject 1..N is created.
Use --save to write the updated table as CSV.`,
		Args: cobra.MaximumNArgs(1),
		RunE: withApp(runAdd),
	}
	cmd.Flags().StringVar(&studentName, "name", "", "Student name")
	cmd.Flags().StringVar(&marks, "marks", "", "Comma-separated marks, one per subject")
	cmd.Flags().StringVar(&savePath, "save", "", "Write the updated table as CSV to this path")
	addViewFlags(cmd)
	addRenderFlags(cmd)
	return cmd
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [input.csv|-]",
		Short: "Export the full table as CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  withApp(runExport),
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	return cmd
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [input.csv|-]",
		Short: "Write an xlsx report with charts",
		Args:  cobra.MaximumNArgs(1),
		RunE:  withApp(runReport),
	}
	cmd.Flags().StringVarP(&xlsxPath, "output", "o", "report.xlsx", "Output xlsx path")
	cmd.Flags().BoolVar(&inspect, "inspect", false, "List the charts of the written report")
	addViewFlags(cmd)
	return cmd
}

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the cached input",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the cached input",
			Args:  cobra.NoArgs,
			RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
				text, ok, err := a.store.Get(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to read cache: %w", err)
				}
				if !ok {
					return fmt.Errorf("no cached input: %w", studentperf.ErrNoData)
				}
				_, err = io.WriteString(cmd.OutOrStdout(), text)
				return err
			}),
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete the cached input",
			Args:  cobra.NoArgs,
			RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
				return a.session.Clear(cmd.Context())
			}),
		},
	)
	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analyzer over HTTP",
		Args:  cobra.NoArgs,
		RunE:  withApp(runServe),
	}
	cmd.Flags().StringVar(&listenAddr, "addr", "", "Listen address (default from config)")
	return cmd
}

func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&minAvg, "min-avg", "", "Only show students with an average at least this")
	cmd.Flags().StringVar(&sortBy, "sort", string(metrics.SortNone), "Sort: none, avg_desc, avg_asc, name")
	cmd.Flags().StringVar(&locale, "locale", "", "Collation locale for --sort name (BCP 47)")
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&reportPath, "report", "", "Also write an xlsx report to this path")
}

func runAnalyze(cmd *cobra.Command, args []string, a *app) error {
	if restore && len(args) > 0 {
		return errors.New("--restore does not take an input file")
	}
	if !restore && len(args) == 0 {
		args = []string{"-"}
	}

	source, err := a.load(cmd.Context(), cmd, args)
	if err != nil {
		return err
	}
	return render(cmd, a, source)
}

func runAdd(cmd *cobra.Command, args []string, a *app) error {
	if strings.TrimSpace(marks) == "" {
		return errors.New("--marks is required")
	}

	source := "manual"
	if len(args) > 0 {
		s, err := a.load(cmd.Context(), cmd, args)
		if err != nil {
			return err
		}
		source = s
	} else if restored, err := a.session.Restore(cmd.Context()); err != nil {
		return err
	} else if restored {
		source = "cache"
	}

	if _, err := a.session.AddStudent(cmd.Context(), studentName, marks); err != nil {
		return err
	}

	if savePath != "" {
		if err := writeFile(savePath, a.session.Export); err != nil {
			return fmt.Errorf("failed to save table: %w", err)
		}
	}
	return render(cmd, a, source)
}

func runExport(cmd *cobra.Command, args []string, a *app) error {
	if _, err := a.load(cmd.Context(), cmd, args); err != nil {
		return err
	}
	if outputPath == "" {
		return a.session.Export(cmd.OutOrStdout())
	}
	if err := writeFile(outputPath, a.session.Export); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runReport(cmd *cobra.Command, args []string, a *app) error {
	if _, err := a.load(cmd.Context(), cmd, args); err != nil {
		return err
	}
	view, err := currentView(a)
	if err != nil {
		return err
	}
	if err := output.SaveReport(xlsxPath, view); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	a.logger.InfoContext(cmd.Context(), "report written",
		slog.String("path", xlsxPath),
		slog.Int("students", len(view.Students)))

	if !inspect {
		return nil
	}
	charts, err := output.InspectChartsFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("failed to inspect report: %w", err)
	}
	for _, ch := range charts {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d series\n", path.Base(ch.Part), ch.ChartType, ch.Title, len(ch.Series))
	}
	return nil
}

func runServe(cmd *cobra.Command, _ []string, a *app) error {
	if listenAddr != "" {
		a.cfg.Server.Addr = listenAddr
	}
	if !strings.EqualFold(a.cfg.Logging.Level, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(a.session, a.cfg.Server, a.logger, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
	return srv.Run(ctx)
}

// render prints the current view in the selected format and writes the
// optional xlsx report.
func render(cmd *cobra.Command, a *app, source string) error {
	view, err := currentView(a)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case "json":
		data, err = output.ToJSON(output.NewDocument(source, view), pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		data = append(data, '\n')
	case "text":
		var sb strings.Builder
		if err := output.FormatText(&sb, view); err != nil {
			return err
		}
		data = []byte(sb.String())
	default:
		return fmt.Errorf("invalid format: %s (must be text or json)", format)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return err
	}

	if reportPath != "" {
		if err := output.SaveReport(reportPath, view); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}

func currentView(a *app) (models.ClassMetrics, error) {
	opts, err := viewOptions()
	if err != nil {
		return models.ClassMetrics{}, err
	}
	return a.session.View(opts)
}

func viewOptions() (studentperf.ViewOptions, error) {
	sort, err := metrics.ParseSortBy(sortBy)
	if err != nil {
		return studentperf.ViewOptions{}, err
	}
	opts := studentperf.ViewOptions{
		MinAverage: metrics.ParseMinAverage(minAvg),
		SortBy:     sort,
	}
	if locale != "" {
		tag, err := language.Parse(locale)
		if err != nil {
			return studentperf.ViewOptions{}, fmt.Errorf("invalid locale %q: %w", locale, err)
		}
		opts.Locale = tag
	}
	return opts, nil
}

func writeFile(path string, write func(io.Writer) error) error {
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
