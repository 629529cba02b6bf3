// Package terraform acquires plan documents by driving the terraform binary.
// It owns process lifecycle and temporary state-file handling; the diff
// engine only ever sees the parsed document.
package terraform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/provos/terraform-secure/internal/logger"
	secerrors "github.com/provos/terraform-secure/pkg/errors"
)

const (
	stateFileName = "terraform.tfstate"
	planFileName  = "tfplan"
)

// Runner drives terraform init/plan/show against a configuration directory.
type Runner struct {
	binary string
	log    *logger.Logger
}

// NewRunner creates a Runner using the given terraform binary name or path.
// An empty binary defaults to "terraform" resolved via PATH.
func NewRunner(binary string, log *logger.Logger) *Runner {
	if binary == "" {
		binary = "terraform"
	}
	return &Runner{binary: binary, log: log}
}

// Plan runs terraform init, plan, and show -json in dir and returns the
// captured result. When stateFile is non-empty it is copied into dir as
// terraform.tfstate for the duration of the run; the copy and the generated
// plan artifact are removed on every exit path.
func (r *Runner) Plan(ctx context.Context, dir string, stateFile string) (*Result, error) {
	if stateFile != "" {
		copied := filepath.Join(dir, stateFileName)
		if err := copyFile(stateFile, copied); err != nil {
			return nil, secerrors.NewPlanError("plan", "", err)
		}
		defer removeIfPresent(copied, r.log)
	}
	defer removeIfPresent(filepath.Join(dir, planFileName), r.log)

	if _, stderr, err := r.run(ctx, dir, "init"); err != nil {
		return nil, secerrors.NewPlanError("init", stderr, err)
	}

	planStdout, planStderr, planErr := r.run(ctx, dir, "plan", "-out="+planFileName, "-detailed-exitcode")
	returnCode := exitCode(planErr)
	// -detailed-exitcode uses 2 for "plan succeeded, changes present".
	if planErr != nil && returnCode != 2 {
		return nil, secerrors.NewPlanError("plan", planStderr, planErr)
	}

	result := &Result{
		Stdout:     planStdout,
		Stderr:     planStderr,
		ReturnCode: returnCode,
	}

	showStdout, showStderr, showErr := r.run(ctx, dir, "show", "-json", planFileName)
	if showErr != nil {
		return nil, secerrors.NewPlanError("show", showStderr, showErr)
	}

	if !json.Valid([]byte(showStdout)) {
		result.Error = "terraform show produced invalid JSON"
		return result, secerrors.NewPlanError("show", showStderr, errors.New(result.Error))
	}

	result.JSONPlan = json.RawMessage(showStdout)
	r.log.WithFields(map[string]any{"dir": dir, "exit_code": returnCode}).Debug("plan acquired")
	return result, nil
}

func (r *Runner) run(ctx context.Context, dir string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer source.Close()

	target, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}

	if _, err := io.Copy(target, source); err != nil {
		target.Close()
		return err
	}
	return target.Close()
}

func removeIfPresent(path string, log *logger.Logger) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.WithFields(map[string]any{"path": path}).Warn("failed to clean up temporary file")
	}
}
