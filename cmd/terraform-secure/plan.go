package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/provos/terraform-secure/internal/extract"
	"github.com/provos/terraform-secure/internal/terraform"
	"github.com/provos/terraform-secure/internal/tui"
)

type planOptions struct {
	Dir        string
	StatePath  string
	OutputPath string
}

var planCmdRunner = runPlan

func newPlanCmd(root *rootFlags) *cobra.Command {
	opts := planOptions{}

	cmd := &cobra.Command{
		Use:   "plan <directory>",
		Short: "Run terraform plan and print the extracted resource changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Dir = args[0]
			return planCmdRunner(cmd.OutOrStdout(), root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.StatePath, "state", "", "Path to a terraform state file to plan against")
	cmd.Flags().StringVarP(&opts.OutputPath, "output", "o", "", "Save the full plan result to a JSON file")

	return cmd
}

func runPlan(out io.Writer, root *rootFlags, opts planOptions) error {
	app, err := newAppContext(root)
	if err != nil {
		return err
	}

	result, err := acquirePlan(app, opts.Dir, opts.StatePath)
	if err != nil {
		return err
	}

	if opts.OutputPath != "" {
		if err := result.Save(opts.OutputPath); err != nil {
			return err
		}
		app.log.WithFields(map[string]any{"path": opts.OutputPath}).Info("plan result saved")
	}

	doc, err := result.Plan()
	if err != nil {
		return err
	}

	changes := extract.FromPlan(doc)
	return printChanges(out, changes)
}

// acquirePlan runs terraform in dir, showing a spinner when interactive.
func acquirePlan(app *appContext, dir, statePath string) (*terraform.Result, error) {
	if err := requireDirectory(dir); err != nil {
		return nil, err
	}
	if statePath != "" {
		if err := requireFile(statePath); err != nil {
			return nil, err
		}
	}

	runner := terraform.NewRunner(app.settings.Terraform.Binary, app.log)

	var result *terraform.Result
	err := tui.Run("running terraform plan", app.interactive, func() error {
		var planErr error
		result, planErr = runner.Plan(context.Background(), dir, statePath)
		return planErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func printChanges(out io.Writer, changes extract.ChangeSet) error {
	if len(changes) == 0 {
		fmt.Fprintln(out, "No changes detected")
		return nil
	}

	encoded, err := json.MarshalIndent(map[string]extract.ChangeSet{"changes": changes}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(encoded))
	return nil
}
