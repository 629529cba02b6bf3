package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/provos/terraform-secure/internal/analyze"
	"github.com/provos/terraform-secure/internal/extract"
	"github.com/provos/terraform-secure/internal/llm"
	"github.com/provos/terraform-secure/internal/report"
	"github.com/provos/terraform-secure/internal/terraform"
	"github.com/provos/terraform-secure/internal/tui"
	"github.com/provos/terraform-secure/internal/vcs"
)

type analyzeOptions struct {
	Dir       string
	StatePath string
	PlanFile  string
	Provider  string
	Model     string
	NoCache   bool
}

var analyzeCmdRunner = runAnalyze

func newAnalyzeCmd(root *rootFlags) *cobra.Command {
	opts := analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze [directory]",
		Short: "Assess the security impact of planned terraform changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Dir = args[0]
			}
			return analyzeCmdRunner(cmd.OutOrStdout(), root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.StatePath, "state", "", "Path to a terraform state file to plan against")
	cmd.Flags().StringVar(&opts.PlanFile, "plan-file", "", "Analyze a previously saved plan result instead of running terraform")
	cmd.Flags().StringVar(&opts.Provider, "provider", "", "Override the configured LLM provider (ollama or openai)")
	cmd.Flags().StringVar(&opts.Model, "model", "", "Override the configured model name")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "Bypass the LLM response cache")

	return cmd
}

func runAnalyze(out io.Writer, root *rootFlags, opts analyzeOptions) error {
	if opts.Dir == "" && opts.PlanFile == "" {
		return errors.New("a configuration directory or --plan-file is required")
	}

	app, err := newAppContext(root)
	if err != nil {
		return err
	}
	applyOverrides(app, opts)

	var result *terraform.Result
	if opts.PlanFile != "" {
		result, err = terraform.LoadResult(opts.PlanFile)
	} else {
		result, err = acquirePlan(app, opts.Dir, opts.StatePath)
	}
	if err != nil {
		return err
	}

	doc, err := result.Plan()
	if err != nil {
		return err
	}

	changes := extract.FromPlan(doc)
	if len(changes) == 0 {
		fmt.Fprintln(out, "No changes detected")
		return nil
	}

	analysis, err := generateAnalysis(app, opts, changes)
	if err != nil {
		return err
	}

	meta := report.Metadata{Directory: opts.Dir, PlanFile: opts.PlanFile}
	if opts.Dir != "" {
		meta.Revision = vcs.Revision(opts.Dir)
	}

	fmt.Fprint(out, report.Render(analysis, changes, meta, app.interactive))
	return nil
}

func applyOverrides(app *appContext, opts analyzeOptions) {
	if opts.Provider != "" {
		app.settings.LLM.Provider = opts.Provider
	}
	if opts.Model != "" {
		app.settings.LLM.Model = opts.Model
	}
}

func generateAnalysis(app *appContext, opts analyzeOptions, changes extract.ChangeSet) (*analyze.SecurityAnalysis, error) {
	var client llm.Client = llm.NewOpenAIClient(app.settings.LLM, app.log)
	if app.settings.Cache.Enabled && !opts.NoCache {
		client = llm.WithCache(client, app.settings.CacheDir(), app.settings.LLM.Model, app.log)
	}

	analyzer := analyze.New(client, app.settings.LLM.Provider, app.settings.LLM.Temperature, app.log)

	var analysis *analyze.SecurityAnalysis
	err := tui.Run("generating security analysis", app.interactive, func() error {
		var analysisErr error
		analysis, analysisErr = analyzer.Analyze(context.Background(), changes)
		return analysisErr
	})
	if err != nil {
		return nil, err
	}
	return analysis, nil
}
