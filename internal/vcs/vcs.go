// Package vcs resolves version-control metadata for a terraform
// configuration directory so reports can name the exact revision that was
// analyzed.
package vcs

import (
	git "github.com/go-git/go-git/v5"
)

// Revision returns the short commit hash of HEAD for the repository
// containing dir, plus a "-dirty" suffix when the worktree has uncommitted
// changes. Returns an empty string when dir is not inside a repository;
// revision stamping is best effort and never fails the run.
func Revision(dir string) string {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}

	head, err := repo.Head()
	if err != nil {
		return ""
	}

	revision := head.Hash().String()[:12]
	if worktreeDirty(repo) {
		revision += "-dirty"
	}
	return revision
}

func worktreeDirty(repo *git.Repository) bool {
	worktree, err := repo.Worktree()
	if err != nil {
		return false
	}
	status, err := worktree.Status()
	if err != nil {
		return false
	}
	return !status.IsClean()
}
