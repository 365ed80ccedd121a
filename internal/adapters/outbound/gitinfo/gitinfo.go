package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// Reader implements domain.CommitReader using go-git. Archives of checked
// out repositories often carry their .git directory; when one is present
// the HEAD commit is worth keeping in the record.
type Reader struct{}

func New() *Reader {
	return &Reader{}
}

// Head returns the HEAD commit hash of the repository at root. Trees that
// are not git repositories return an error; callers treat that as absence,
// not failure.
func (r *Reader) Head(root string) (string, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}
	return head.Hash().String(), nil
}
