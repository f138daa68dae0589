package contract

import (
	"context"
	"fmt"
	"regexp"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/huangsam/repopulse/schema"
)

// coAuthorPattern matches Co-authored-by trailers in commit messages.
var coAuthorPattern = regexp.MustCompile(`(?mi)^Co-authored-by:\s*(.*?)\s*<([^>]+)>\s*$`)

// GoGitClient implements GitClient over a local repository using the
// pure-Go go-git library, so no git executable is required.
type GoGitClient struct {
	repo     *git.Repository
	workDir  string
	headHash plumbing.Hash
}

var _ GitClient = &GoGitClient{} // Compile-time check

// OpenGoGitClient opens the repository at repoPath and records the
// current HEAD so the working tree can be restored later.
func OpenGoGitClient(repoPath string) (*GoGitClient, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open git repository at %q: %w. If this is not a Git repository, verify the path or run 'git init'", repoPath, err)
	}
	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("cannot resolve HEAD of %q: %w. The repository may have no commits yet", repoPath, err)
	}
	return &GoGitClient{
		repo:     repo,
		workDir:  repoPath,
		headHash: head.Hash(),
	}, nil
}

// WorkDir implements the GitClient interface.
func (c *GoGitClient) WorkDir() string {
	return c.workDir
}

// Revisions implements the GitClient interface. Commits come back
// oldest-first so normalization can assign keys in history order.
func (c *GoGitClient) Revisions(ctx context.Context) ([]schema.Revision, error) {
	iter, err := c.repo.Log(&git.LogOptions{
		From:  c.headHash,
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot walk commit history: %w", err)
	}
	defer iter.Close()

	var revs []schema.Revision
	err = iter.ForEach(func(commit *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		revs = append(revs, revisionFromCommit(commit))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cannot read commit history: %w", err)
	}

	// The log walks newest to oldest; reverse into history order.
	for i, j := 0, len(revs)-1; i < j; i, j = i+1, j-1 {
		revs[i], revs[j] = revs[j], revs[i]
	}
	return revs, nil
}

// revisionFromCommit extracts the raw revision facts from one commit.
func revisionFromCommit(commit *object.Commit) schema.Revision {
	parents := make([]string, 0, len(commit.ParentHashes))
	for _, p := range commit.ParentHashes {
		parents = append(parents, p.String())
	}

	return schema.Revision{
		Hash: commit.Hash.String(),
		Author: schema.Person{
			Name:  commit.Author.Name,
			Email: commit.Author.Email,
		},
		AuthoredAt: commit.Author.When.UTC(),
		Committer: schema.Person{
			Name:  commit.Committer.Name,
			Email: commit.Committer.Email,
		},
		CommittedAt:    commit.Committer.When.UTC(),
		Message:        commit.Message,
		Encoding:       string(commit.Encoding),
		Signature:      commit.PGPSignature,
		ParentHashes:   parents,
		CoAuthorEmails: ParseCoAuthorEmails(commit.Message),
	}
}

// ParseCoAuthorEmails extracts co-author emails from the commit
// message's Co-authored-by trailers, in order of appearance.
func ParseCoAuthorEmails(message string) []string {
	matches := coAuthorPattern.FindAllStringSubmatch(message, -1)
	if len(matches) == 0 {
		return nil
	}
	emails := make([]string, 0, len(matches))
	for _, m := range matches {
		emails = append(emails, m[2])
	}
	return emails
}

// TagTargets implements the GitClient interface. Annotated tags are
// peeled to their target commit; tags that do not resolve to a commit
// are omitted.
func (c *GoGitClient) TagTargets(_ context.Context) (map[string]string, error) {
	tags, err := c.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("cannot list tags: %w", err)
	}
	defer tags.Close()

	targets := make(map[string]string)
	err = tags.ForEach(func(ref *plumbing.Reference) error {
		hash := ref.Hash()
		if tagObj, tagErr := c.repo.TagObject(hash); tagErr == nil {
			hash = tagObj.Target
		}
		if _, commitErr := c.repo.CommitObject(hash); commitErr != nil {
			return nil // Dangling tag; drop it.
		}
		targets[ref.Name().Short()] = hash.String()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cannot resolve tags: %w", err)
	}
	return targets, nil
}

// Checkout implements the GitClient interface.
func (c *GoGitClient) Checkout(ctx context.Context, hash string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	wt, err := c.repo.Worktree()
	if err != nil {
		return fmt.Errorf("cannot access working tree: %w", err)
	}
	if err := wt.Checkout(&git.CheckoutOptions{
		Hash:  plumbing.NewHash(hash),
		Force: true,
	}); err != nil {
		return fmt.Errorf("cannot check out revision %s: %w", hash, err)
	}
	return nil
}

// CheckoutLatest implements the GitClient interface.
func (c *GoGitClient) CheckoutLatest(ctx context.Context) error {
	return c.Checkout(ctx, c.headHash.String())
}
