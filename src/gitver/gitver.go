// Package gitver resolves the git state of the tree being built, shown in
// the run context block. Detection is best-effort: a tree that is not a git
// checkout simply has no stamp.
package gitver

import (
	"fmt"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Info holds the resolved git stamp.
type Info struct {
	SHA       string // short HEAD hash
	Branch    string // current branch, "" when detached
	Tag       string // tag pointing at HEAD, "" when none
	IsRelease bool   // true if HEAD is exactly at a tag
}

// Detect resolves HEAD and any tag pointing at it.
func Detect(rootDir string) (*Info, error) {
	repo, err := git.PlainOpenWithOptions(rootDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("gitver: opening repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("gitver: resolving HEAD: %w", err)
	}

	v := &Info{SHA: head.Hash().String()[:7]}
	if head.Name().IsBranch() {
		v.Branch = head.Name().Short()
	}

	if tag := tagAt(repo, head.Hash()); tag != "" {
		v.Tag = tag
		v.IsRelease = true
	}
	return v, nil
}

// tagAt returns the name of a tag whose target is the given commit,
// resolving annotated tags through their tag object.
func tagAt(repo *git.Repository, hash plumbing.Hash) string {
	tags, err := repo.Tags()
	if err != nil {
		return ""
	}
	defer tags.Close()

	var found string
	_ = tags.ForEach(func(ref *plumbing.Reference) error {
		target := ref.Hash()
		if obj, err := repo.TagObject(ref.Hash()); err == nil {
			target = obj.Target
		}
		if target == hash {
			found = ref.Name().Short()
		}
		return nil
	})
	return found
}

// String renders the stamp for the context block.
func (v *Info) String() string {
	switch {
	case v.Tag != "":
		return fmt.Sprintf("%s (%s)", v.Tag, v.SHA)
	case v.Branch != "":
		return fmt.Sprintf("%s @ %s", v.SHA, v.Branch)
	default:
		return v.SHA
	}
}
