// Package vcs records the source state of a run as a version-control tag.
package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os/exec"
	"strings"

	"github.com/specialistvlad/seedrun/internal/ctxlog"
)

// TagPrefix namespaces every tag this package creates.
const TagPrefix = "seedrun/"

const tagAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Tagger labels the current source state and returns the tag name.
type Tagger interface {
	Tag(ctx context.Context, message string) (string, error)
}

// Error is a failed version-control operation.
type Error struct {
	Op     string
	Output string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("git %s failed: %v", e.Op, e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// GitTagger tags the working tree of a git repository, including uncommitted
// changes, by committing them temporarily.
type GitTagger struct {
	dir  string
	rand *rand.Rand
}

// NewGitTagger creates a tagger for the repository containing dir.
func NewGitTagger(dir string) *GitTagger {
	return &GitTagger{dir: dir}
}

// Tag stages everything, commits if there is anything to commit, creates an
// annotated tag carrying message and undoes the temporary commit. The working
// tree is left as it was; the index is reset to match HEAD.
func (g *GitTagger) Tag(ctx context.Context, message string) (string, error) {
	logger := ctxlog.FromContext(ctx)

	if _, err := g.git(ctx, "add", "--all"); err != nil {
		return "", err
	}

	_, headErr := g.git(ctx, "rev-parse", "--verify", "--quiet", "HEAD")
	hadHead := headErr == nil

	committed := false
	if _, err := g.git(ctx, "diff", "--cached", "--quiet"); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
			return "", err
		}
		if _, err := g.git(ctx, "commit", "--quiet", "--no-verify", "-m", "seedrun: snapshot"); err != nil {
			return "", err
		}
		committed = true
	}

	name := TagPrefix + g.randomSuffix(8)
	if message == "" {
		message = name
	}
	_, tagErr := g.git(ctx, "tag", "-a", name, "-m", message)

	if committed {
		if err := g.undoCommit(ctx, hadHead); err != nil {
			return "", errors.Join(tagErr, err)
		}
	} else {
		_, _ = g.git(ctx, "reset", "--quiet")
	}
	if tagErr != nil {
		return "", tagErr
	}

	logger.Info("Created tag.", "tag", name, "temporary_commit", committed)
	return name, nil
}

func (g *GitTagger) undoCommit(ctx context.Context, hadHead bool) error {
	if !hadHead {
		// The snapshot was the first commit; drop the branch ref entirely.
		if _, err := g.git(ctx, "update-ref", "-d", "HEAD"); err != nil {
			return err
		}
		_, err := g.git(ctx, "reset", "--quiet")
		return err
	}
	_, err := g.git(ctx, "reset", "--quiet", "HEAD^")
	return err
}

func (g *GitTagger) randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		var k int
		if g.rand != nil {
			k = g.rand.IntN(len(tagAlphabet))
		} else {
			k = rand.IntN(len(tagAlphabet))
		}
		b[i] = tagAlphabet[k]
	}
	return string(b)
}

func (g *GitTagger) git(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	ctxlog.FromContext(ctx).Debug("Running git.", "args", args)
	if err := cmd.Run(); err != nil {
		return out.String(), &Error{Op: args[0], Output: out.String(), Err: err}
	}
	return out.String(), nil
}
