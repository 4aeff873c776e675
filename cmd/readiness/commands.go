package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"readiness/internal/analyzer"
	"readiness/internal/decoder"
	"readiness/internal/domain"
	"readiness/internal/schema"
)

type analyzeOptions struct {
	webhooks   bool
	sandboxEnv bool
	retries    bool
	schemaPath string
	maxRows    int
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "readiness",
		Short:         "Measure invoice datasets against the GETS schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newAnalyzeCmd(), newSchemaCmd())
	return root
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Print the readiness report of a csv, json or xlsx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.OutOrStdout(), args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.webhooks, analyzer.QuestionWebhooks, false, "the integration consumes webhooks")
	cmd.Flags().BoolVar(&opts.sandboxEnv, "sandbox-env", false, "a sandbox environment exists")
	cmd.Flags().BoolVar(&opts.retries, analyzer.QuestionRetries, false, "failed submissions are retried")
	cmd.Flags().StringVar(&opts.schemaPath, "schema", "", "schema file (default: embedded GETS v0.1)")
	cmd.Flags().IntVar(&opts.maxRows, "max-rows", decoder.DefaultMaxRows, "rows kept for analysis")
	return cmd
}

func runAnalyze(out io.Writer, path string, opts *analyzeOptions) error {
	if opts.maxRows <= 0 {
		return fmt.Errorf("--max-rows must be positive")
	}
	target, err := schema.Load(opts.schemaPath)
	if err != nil {
		return err
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return fmt.Errorf("%s: %w", path, domain.ErrUnsupportedFileType)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	decoded, err := decoder.New(opts.maxRows).Decode(fileType, data)
	if err != nil {
		return err
	}

	engine := analyzer.New(target, "none")
	report := engine.AnalyzeData(analyzer.Dataset{Headers: decoded.Headers, Rows: decoded.Rows}, analyzer.Questionnaire{
		analyzer.QuestionWebhooks:   opts.webhooks,
		analyzer.QuestionSandboxEnv: opts.sandboxEnv,
		analyzer.QuestionRetries:    opts.retries,
	})

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func newSchemaCmd() *cobra.Command {
	var schemaPath string
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the schema field paths in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target, err := schema.Load(schemaPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s v%s\n", target.Name(), target.Version())
			for _, f := range target.Fields() {
				if len(f.Enum) > 0 {
					fmt.Fprintf(out, "%s\t%s\n", f.Path, strings.Join(f.Enum, ","))
					continue
				}
				fmt.Fprintln(out, f.Path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&schemaPath, "schema", "", "schema file (default: embedded GETS v0.1)")
	return cmd
}
