package vcs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

func initGitRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.tf"), []byte(`resource "null_resource" "x" {}`), 0o644))
	_, err = wt.Add("main.tf")
	require.NoError(t, err)

	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "terraform-secure",
			Email: "tfsecure@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)

	return dir
}

func TestRevisionReturnsShortHash(t *testing.T) {
	t.Parallel()

	dir := initGitRepo(t)
	revision := Revision(dir)
	require.Len(t, revision, 12)
}

func TestRevisionDetectsDirtyWorktree(t *testing.T) {
	t.Parallel()

	dir := initGitRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.tf"), []byte("# drift"), 0o644))

	revision := Revision(dir)
	require.Contains(t, revision, "-dirty")
}

func TestRevisionDetectsDotGitAbove(t *testing.T) {
	t.Parallel()

	dir := initGitRepo(t)
	nested := filepath.Join(dir, "modules", "network")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	require.NotEmpty(t, Revision(nested))
}

func TestRevisionOutsideRepositoryIsEmpty(t *testing.T) {
	t.Parallel()

	require.Empty(t, Revision(t.TempDir()))
}
