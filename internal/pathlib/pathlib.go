package pathlib

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/indigo-web/reactor/internal/uridecode"
)

const (
	// DefaultIndex is the document served for the "" and "/" targets unless
	// the resolver was configured otherwise.
	DefaultIndex = "index.html"
	// MaxSegments limits the number of path segments kept during normalization.
	MaxSegments = 4096
	// MaxPathLen limits the length of the root joined with the normalized path.
	MaxPathLen = 4096
)

// ErrUnresolvable is the only error returned by the resolver. Traversal attempts,
// missing files and exceeded limits are intentionally indistinguishable.
var ErrUnresolvable = errors.New("path cannot be resolved")

// Resolver maps request targets onto files beneath the root.
type Resolver struct {
	root   string
	index  string
	strict bool
}

// NewResolver returns a resolver serving the root. When strict is set, containment
// requires a path separator right after the canonical root, rejecting siblings sharing
// the root's name as a prefix.
func NewResolver(root, index string, strict bool) Resolver {
	if len(index) == 0 {
		index = DefaultIndex
	}

	return Resolver{
		root:   root,
		index:  index,
		strict: strict,
	}
}

// Resolve is a shorthand for a non-strict resolver with the default index document.
func Resolve(root, target string) (string, error) {
	return NewResolver(root, DefaultIndex, false).Resolve(target)
}

// Resolve returns the canonical absolute path of the file the target refers to. The
// file must exist.
func (r Resolver) Resolve(target string) (string, error) {
	if len(target) == 0 || target == "/" {
		target = "/" + r.index
	}

	normalized, ok := Normalize(uridecode.DecodeString(target))
	if !ok {
		return "", ErrUnresolvable
	}

	candidate := r.root + normalized
	if len(candidate) >= MaxPathLen {
		return "", ErrUnresolvable
	}

	realCandidate, err := canonical(candidate)
	if err != nil {
		return "", ErrUnresolvable
	}

	realRoot, err := canonical(r.root)
	if err != nil {
		return "", ErrUnresolvable
	}

	if !r.contains(realRoot, realCandidate) {
		return "", ErrUnresolvable
	}

	return realCandidate, nil
}

func (r Resolver) contains(root, path string) bool {
	if !strings.HasPrefix(path, root) {
		return false
	}

	if !r.strict || len(path) == len(root) || strings.HasSuffix(root, string(os.PathSeparator)) {
		return true
	}

	return path[len(root)] == os.PathSeparator
}

// Normalize collapses empty, "." and ".." segments of a slash-separated path and
// returns it with a single leading slash. Climbing above the first segment or
// exceeding MaxSegments results in false.
func Normalize(path string) (string, bool) {
	segments := make([]string, 0, 16)

	for len(path) > 0 {
		var segment string
		if slash := strings.IndexByte(path, '/'); slash == -1 {
			segment, path = path, ""
		} else {
			segment, path = path[:slash], path[slash+1:]
		}

		switch segment {
		case "", ".":
		case "..":
			if len(segments) == 0 {
				return "", false
			}

			segments = segments[:len(segments)-1]
		default:
			if len(segments) >= MaxSegments {
				return "", false
			}

			segments = append(segments, segment)
		}
	}

	return "/" + strings.Join(segments, "/"), true
}

// canonical makes the path absolute and resolves all symlinks. The path must exist.
func canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return filepath.EvalSymlinks(abs)
}
