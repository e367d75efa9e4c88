// Package gitutil resolves git repository context for the current working
// directory, used to annotate session logs and the agent prompt.
package gitutil

import (
	"github.com/go-git/go-git/v5"
)

// Info describes the repository enclosing a directory.
type Info struct {
	Root   string
	Branch string
}

// Describe returns repository info for path, searching parent directories for
// a .git the way the git CLI does. Returns ok=false when path is not inside a
// repository or the head cannot be resolved; that is not an error condition.
func Describe(path string) (Info, bool) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Info{}, false
	}

	wt, err := repo.Worktree()
	if err != nil {
		return Info{}, false
	}

	info := Info{Root: wt.Filesystem.Root()}

	head, err := repo.Head()
	if err != nil {
		// Repository with no commits yet: root is still useful.
		return info, true
	}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	} else {
		info.Branch = head.Hash().String()[:7]
	}
	return info, true
}
