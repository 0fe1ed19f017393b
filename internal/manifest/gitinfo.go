package manifest

import (
	"github.com/go-git/go-git/v5"
)

// HeadCommit returns the HEAD commit SHA when the content root lives inside
// a git work tree, or "" when it does not. Scan provenance is best-effort;
// any git failure simply leaves the record without a commit.
func HeadCommit(root string) string {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	return head.Hash().String()
}
