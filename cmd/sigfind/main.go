// Package main provides the sigfind CLI.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/kailayerhq/sigfind/discovery"
	"github.com/kailayerhq/sigfind/discovery/ignore"
	"github.com/kailayerhq/sigfind/internal/config"
	"github.com/kailayerhq/sigfind/internal/explainer"
	"github.com/kailayerhq/sigfind/internal/metrics"
	"github.com/kailayerhq/sigfind/internal/modulemap"
	"github.com/kailayerhq/sigfind/internal/style"
)

// Version is the current sigfind CLI version.
var Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:     "sigfind",
	Short:   "sigfind - locate symbols by structure, not import path",
	Long:    `sigfind walks a source tree, extracts top-level symbols, and ranks them against a structural signature without executing any of the code it scans.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagJSON || !colorEnabled() {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
		if flagMetrics {
			metricsRegistry = prometheus.NewRegistry()
			rec, err := metrics.New(&metrics.Config{Namespace: "sigfind", Registry: metricsRegistry})
			if err != nil {
				return err
			}
			metricsRecorder = rec
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if metricsRegistry == nil {
			return nil
		}
		return printMetrics(cmd.ErrOrStderr())
	},
}

// metricsRegistry and metricsRecorder are non-nil only when --metrics is
// set; newEngine wires metricsRecorder in as the Engine's Recorder so the
// counters/histogram it feeds are the ones printed at exit.
var (
	metricsRegistry *prometheus.Registry
	metricsRecorder *metrics.Prometheus
)

// printMetrics renders metricsRegistry in the same text exposition format
// a scrape endpoint would serve, by driving promhttp's handler against an
// in-memory request instead of standing up a real listener for a process
// that is about to exit anyway.
func printMetrics(w io.Writer) error {
	handler := promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	_, err := w.Write(rec.Body.Bytes())
	return err
}

var (
	flagRoot        string
	flagIgnore      []string
	flagKind        string
	flagMethods     []string
	flagDecorators  []string
	flagBases       []string
	flagModule      string
	flagModulePat   string
	flagRegex       bool
	flagCaseInsens  bool
	flagAll         bool
	flagLoad        bool
	flagJSON        bool
	flagExplain     bool
	flagVerbose     bool
	flagQueryFile   string
	flagQueryName   string
	flagGroup       string
	flagMetrics     bool
)

var findCmd = &cobra.Command{
	Use:   "find <name>",
	Short: "Find the best-matching symbol for a structural signature",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFind,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every candidate symbol sigfind can see, unscored",
	RunE:  runList,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", "", "project root to search (default: current directory)")
	rootCmd.PersistentFlags().StringSliceVar(&flagIgnore, "ignore", nil, "forward-slash path prefixes to prune from traversal")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&flagExplain, "explain", false, "print an explanation panel alongside the result")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "print progress as sigfind walks and scores the tree")
	rootCmd.PersistentFlags().BoolVar(&flagMetrics, "metrics", false, "record hit/miss/score metrics and print them as Prometheus text on exit")

	findCmd.Flags().StringVar(&flagKind, "kind", "class", "class | function | any")
	findCmd.Flags().StringSliceVar(&flagMethods, "methods", nil, "required method names")
	findCmd.Flags().StringSliceVar(&flagDecorators, "decorators", nil, "required decorator names")
	findCmd.Flags().StringSliceVar(&flagBases, "bases", nil, "required base class names")
	findCmd.Flags().StringVar(&flagModule, "module", "", "exact dotted module path")
	findCmd.Flags().StringVar(&flagModulePat, "module-pattern", "", "regex the dotted module path must match")
	findCmd.Flags().BoolVar(&flagRegex, "regex", false, "treat <name> as a regular expression")
	findCmd.Flags().BoolVar(&flagCaseInsens, "case-insensitive", false, "case-insensitive literal name match")
	findCmd.Flags().BoolVar(&flagAll, "all", false, "return every positive-scoring match, ranked")
	findCmd.Flags().BoolVar(&flagLoad, "load", false, "materialize the winning symbol via its language runtime")
	findCmd.Flags().StringVar(&flagQueryFile, "query-file", "", "load the signature from a sigfind.query.yaml file instead of flags")
	findCmd.Flags().StringVar(&flagQueryName, "query", "", "name of the signature to load from --query-file")
	findCmd.Flags().StringVar(&flagGroup, "group", "", "with --all, bucket results by the module rules in this sigfind.modules.yaml file")

	rootCmd.AddCommand(findCmd, listCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.Styles.Error.Render(err.Error()))
		os.Exit(1)
	}
}

func colorEnabled() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func runFind(cmd *cobra.Command, args []string) error {
	var sig discovery.Signature
	var err error

	if flagQueryFile != "" {
		if flagQueryName == "" {
			return fmt.Errorf("--query requires a signature name when --query-file is set")
		}
		sig, err = config.LoadSignature(flagQueryFile, flagQueryName)
		if err != nil {
			return err
		}
	} else {
		if len(args) != 1 {
			return fmt.Errorf("find requires <name> unless --query-file is set")
		}
		caseSensitive := !flagCaseInsens
		sig = discovery.Signature{
			Name:          args[0],
			Kind:          discovery.Kind(flagKind),
			Methods:       flagMethods,
			Decorators:    flagDecorators,
			Bases:         flagBases,
			Module:        flagModule,
			ModulePattern: flagModulePat,
			Regex:         flagRegex,
			CaseSensitive: &caseSensitive,
		}
		if err := sig.Compile(); err != nil {
			return err
		}
	}

	if flagVerbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "walking %s for %s\n", rootOrCwd(), sig.String())
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}

	if flagAll {
		if flagGroup != "" {
			return runFindGrouped(cmd, engine, sig)
		}
		results, err := engine.DiscoverAll(sig)
		if err != nil {
			return reportMiss(cmd, sig, err)
		}
		return printResults(cmd, results)
	}

	result, err := engine.DiscoverNoLoad(sig)
	if err != nil {
		return reportMiss(cmd, sig, err)
	}

	if flagExplain {
		explainer.ForFind(rootOrCwd(), sig, 1).Print(cmd.OutOrStdout())
	}

	if flagLoad {
		loaded, err := result.Load()
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(cmd, loaded)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", style.RenderScore(result.Score), loaded.Output)
		return nil
	}

	return printResults(cmd, []discovery.DiscoveryResult{*result})
}

func runList(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "walking %s\n", rootOrCwd())
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}

	candidates := engine.ListCandidates()

	if flagExplain {
		files := make(map[string]struct{}, len(candidates))
		for _, c := range candidates {
			files[c.FilePath] = struct{}{}
		}
		explainer.ForList(rootOrCwd(), len(files), len(candidates)).Print(cmd.OutOrStdout())
	}

	if flagJSON {
		return printJSON(cmd, candidates)
	}

	for _, c := range candidates {
		fmt.Fprintf(cmd.OutOrStdout(), "%-8s %-30s %s:%d\n", c.Kind, c.Name, c.FilePath, c.Line)
	}
	return nil
}

func newEngine() (*discovery.Engine, error) {
	opts := []discovery.Option{}
	if len(flagIgnore) > 0 {
		opts = append(opts, discovery.WithIgnorePrefixes(flagIgnore...))
	}
	root := rootOrCwd()
	if matcher, err := ignore.LoadFromDir(root); err == nil {
		opts = append(opts, discovery.WithIgnoreMatcher(matcher))
	}
	if metricsRecorder != nil {
		opts = append(opts, discovery.WithMetrics(metricsRecorder))
	}
	return discovery.New(flagRoot, opts...)
}

func rootOrCwd() string {
	if flagRoot != "" {
		return flagRoot
	}
	wd, _ := os.Getwd()
	return wd
}

func reportMiss(cmd *cobra.Command, sig discovery.Signature, err error) error {
	if flagJSON {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), style.ErrorBox("No match", sig.String()))
	return err
}

func runFindGrouped(cmd *cobra.Command, engine *discovery.Engine, sig discovery.Signature) error {
	matcher, err := modulemap.LoadRulesOrEmpty(flagGroup)
	if err != nil {
		return err
	}
	root := rootOrCwd()
	grouped, err := engine.DiscoverAllGrouped(sig, func(c discovery.Candidate) string {
		return matcher.GroupKey(root, c)
	})
	if err != nil {
		return reportMiss(cmd, sig, err)
	}

	if flagJSON {
		return printJSON(cmd, grouped)
	}

	for module, results := range grouped {
		name := module
		if name == "" {
			name = "(ungrouped)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", name)
		for _, r := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s  %s:%d\n", style.RenderScore(r.Score), r.Name, r.FilePath, r.Line)
		}
	}
	return nil
}

func printResults(cmd *cobra.Command, results []discovery.DiscoveryResult) error {
	if flagJSON {
		return printJSON(cmd, results)
	}
	for _, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s:%d\n", style.RenderScore(r.Score), r.Name, r.FilePath, r.Line)
	}
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
