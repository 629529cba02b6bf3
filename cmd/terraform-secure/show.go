package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/provos/terraform-secure/internal/extract"
	"github.com/provos/terraform-secure/internal/report"
	"github.com/provos/terraform-secure/internal/terraform"
)

type showOptions struct {
	PlanFile string
	AsJSON   bool
}

var showCmdRunner = runShow

func newShowCmd(root *rootFlags) *cobra.Command {
	opts := showOptions{}

	cmd := &cobra.Command{
		Use:   "show <plan-file>",
		Short: "Display the extracted changes from a saved plan result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.PlanFile = args[0]
			return showCmdRunner(cmd.OutOrStdout(), root, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.AsJSON, "json", false, "Print the change set as JSON instead of a rendered report")

	return cmd
}

func runShow(out io.Writer, root *rootFlags, opts showOptions) error {
	app, err := newAppContext(root)
	if err != nil {
		return err
	}

	result, err := terraform.LoadResult(opts.PlanFile)
	if err != nil {
		return err
	}

	doc, err := result.Plan()
	if err != nil {
		return err
	}

	changes := extract.FromPlan(doc)
	app.log.WithFields(map[string]any{"resources": len(changes)}).Debug("loaded saved plan result")

	if opts.AsJSON {
		return printChanges(out, changes)
	}

	meta := report.Metadata{PlanFile: opts.PlanFile}
	fmt.Fprint(out, report.Render(nil, changes, meta, app.interactive))
	return nil
}
