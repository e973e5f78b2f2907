// Package main provides the CLI entrypoint for lrslens.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/edmetric/lrslens/internal/analytics"
	"github.com/edmetric/lrslens/internal/config"
	"github.com/edmetric/lrslens/internal/dashui"
	"github.com/edmetric/lrslens/internal/export"
	"github.com/edmetric/lrslens/internal/ingest"
	"github.com/edmetric/lrslens/internal/model"
	"github.com/edmetric/lrslens/internal/report"
	"github.com/edmetric/lrslens/internal/sample"
	"github.com/edmetric/lrslens/internal/store"
	"github.com/edmetric/lrslens/internal/xapi"
)

const (
	defaultSampleCount = 200
	defaultSampleDays  = 30
)

var (
	reportActor  string
	reportSince  string
	reportLast   int
	reportStrict bool

	exportFormat string
	exportOut    string

	sampleCount int
	sampleDays  int
	sampleSeed  int64

	dbPath string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lrslens",
		Short:         "Learning-analytics dashboard over local xAPI statements",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runReportCmd,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the statement database (default: XDG data dir)")
	addReportFlags(rootCmd)

	rootCmd.AddCommand(newIngestCmd())
	rootCmd.AddCommand(newDashboardCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newSampleCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&reportActor, "actor", "", "filter by actor mbox or name")
	cmd.Flags().StringVar(&reportSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&reportLast, "last", 0, "limit to last N statements")
	cmd.Flags().BoolVar(&reportStrict, "strict", false, "abort on invalid statements instead of skipping them")
}

func runReportCmd(cmd *cobra.Command, _ []string) error {
	r, st, err := buildReport(cmd)
	if st != nil {
		defer closeStore(st)
	}
	if err != nil {
		return err
	}
	if err := report.Render(cmd.OutOrStdout(), r); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

func newIngestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <file>...",
		Short: "Ingest statement batches into the local database",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runIngestCmd,
	}
}

func runIngestCmd(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	total, inserted := 0, 0
	for _, path := range args {
		batch, err := ingest.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to ingest %s: %w", path, err)
		}
		n, err := st.PutStatements(ctx, batch.Statements)
		if err != nil {
			return fmt.Errorf("failed to store statements from %s: %w", path, err)
		}
		total += len(batch.Statements)
		inserted += n
		if batch.HasMore {
			logErrf("%s is a partial export; fetch the remaining batches for complete metrics\n", path)
		}
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Ingested %d statements (%d new, %d duplicates)\n", total, inserted, total-inserted); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive dashboard",
		RunE:  runDashboardCmd,
	}
	addReportFlags(cmd)
	return cmd
}

func runDashboardCmd(cmd *cobra.Command, _ []string) error {
	cfg, st, eng, err := buildContext(cmd)
	if st != nil {
		defer closeStore(st)
	}
	if err != nil {
		return err
	}
	program := tea.NewProgram(dashui.NewModel(st, eng, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the summary as JSON, CSV, or XLSX",
		RunE:  runExportCmd,
	}
	addReportFlags(cmd)
	cmd.Flags().StringVar(&exportFormat, "format", "json", "output format: json, csv, or xlsx")
	cmd.Flags().StringVar(&exportOut, "out", "", "output file (default: stdout; required for xlsx)")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	r, st, err := buildReport(cmd)
	if st != nil {
		defer closeStore(st)
	}
	if err != nil {
		return err
	}

	format := strings.ToLower(strings.TrimSpace(exportFormat))
	if format == "xlsx" {
		if exportOut == "" {
			return fmt.Errorf("--out is required for xlsx export")
		}
		if err := export.WriteWorkbook(exportOut, r.Summary); err != nil {
			return err
		}
		logErrf("Wrote %s\n", exportOut)
		return nil
	}

	out := cmd.OutOrStdout()
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				logErrf("failed to close output file: %v\n", cerr)
			}
		}()
		out = f
	}

	switch format {
	case "json":
		return export.WriteJSON(out, r.Summary)
	case "csv":
		return export.WriteTimelineCSV(out, r.Summary.Timeline)
	default:
		return fmt.Errorf("unknown format %q (expected json, csv, or xlsx)", exportFormat)
	}
}

func newSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate a sample statement batch on stdout",
		Args:  cobra.NoArgs,
		RunE:  runSampleCmd,
	}
	cmd.Flags().IntVar(&sampleCount, "count", defaultSampleCount, "number of statements")
	cmd.Flags().IntVar(&sampleDays, "days", defaultSampleDays, "spread statements over the last N days")
	cmd.Flags().Int64Var(&sampleSeed, "seed", 0, "random seed (0 uses the current time)")
	return cmd
}

func runSampleCmd(cmd *cobra.Command, _ []string) error {
	if sampleCount <= 0 {
		return fmt.Errorf("--count must be > 0")
	}
	if sampleDays <= 0 {
		return fmt.Errorf("--days must be > 0")
	}
	stmts := sample.New(sampleSeed).Generate(sampleCount, sampleDays, time.Now())
	return writeStatements(cmd.OutOrStdout(), stmts)
}

func writeStatements(w io.Writer, stmts []model.Statement) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(stmts); err != nil {
		return fmt.Errorf("failed to encode statements: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// buildContext merges flags with the config file, opens the store, and
// constructs the aggregation engine. The returned store is non-nil once
// opened and must be closed by the caller even on error.
func buildContext(cmd *cobra.Command) (model.ReportConfig, *store.Store, *analytics.Engine, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.ReportConfig{}, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "actor", &reportActor, fileCfg.Report.Actor)
	applyStringConfig(cmd, "since", &reportSince, fileCfg.Report.Since)
	applyIntConfig(cmd, "last", &reportLast, fileCfg.Report.Last)
	applyBoolConfig(cmd, "strict", &reportStrict, fileCfg.Report.Strict)

	cfg, err := parseReportConfig()
	if err != nil {
		return model.ReportConfig{}, nil, nil, err
	}

	st, err := openStore()
	if err != nil {
		return model.ReportConfig{}, nil, nil, err
	}

	eng := analytics.New(buildVocabulary(fileCfg))
	eng.Strict = reportStrict
	return cfg, st, eng, nil
}

func buildReport(cmd *cobra.Command) (report.Report, *store.Store, error) {
	cfg, st, eng, err := buildContext(cmd)
	if err != nil {
		return report.Report{}, st, err
	}
	r, err := report.Build(context.Background(), st, eng, cfg, time.Now())
	if err != nil {
		return report.Report{}, st, fmt.Errorf("failed to build report: %w", err)
	}
	return r, st, nil
}

func parseReportConfig() (model.ReportConfig, error) {
	var sinceTime *time.Time
	if reportSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", reportSince, time.Local)
		if err != nil {
			return model.ReportConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if reportLast < 0 {
		return model.ReportConfig{}, fmt.Errorf("--last must be >= 0")
	}
	return model.ReportConfig{
		Actor: strings.TrimSpace(reportActor),
		Since: sinceTime,
		Last:  reportLast,
	}, nil
}

func buildVocabulary(fileCfg config.FileConfig) xapi.Vocabulary {
	return xapi.DefaultVocabulary().Apply(xapi.Override{
		CompletionVerbs: fileCfg.Vocabulary.CompletionVerbs,
		ModuleTypes:     fileCfg.Vocabulary.ModuleTypes,
		QuizTypes:       fileCfg.Vocabulary.QuizTypes,
		AssignmentTypes: fileCfg.Vocabulary.AssignmentTypes,
		VideoTypes:      fileCfg.Vocabulary.VideoTypes,
	})
}

func openStore() (*store.Store, error) {
	path := dbPath
	if path == "" {
		path = config.DefaultDBPath()
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return `# lrslens configuration
# Uncomment a value to enable it. CLI flags override config values.

[report]
# actor = ""              # Filter by actor mbox or name
# last = 0                # Limit to last N statements (0 = all)
# since = ""              # Start date (YYYY-MM-DD)
# strict = false          # Abort on invalid statements

[vocabulary]
# Provider-specific URIs merged into the built-in ADL/w3id vocabulary.
# completion-verbs = ["https://lms.example.com/verbs/finished"]
# module-types = []
# quiz-types = []
# assignment-types = []
# video-types = []
`
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
