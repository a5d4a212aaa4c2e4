package registry

import (
	"errors"
	"fmt"
	"hash"
	"io"
	"strings"
)

var (
	// ErrUnknownAlgorithm means the identifier doesn't match any
	// algorithm in the table, or a digest length matched more than
	// one algorithm during inference.
	ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

	// ErrNoImplementation means the algorithm is registered (so
	// manifests naming it still parse and length-validate) but no
	// digest implementation is available in this build.
	ErrNoImplementation = errors.New("hash algorithm has no implementation")
)

// Algorithm describes one entry in the capability table: a digest
// family variant with a fixed output size. The table is built once at
// startup and is read-only, so Algorithm pointers are safe to share
// across goroutines.
type Algorithm struct {
	// Name is the canonical display name, e.g. "SHA3-256". This is
	// the spelling used in BSD-style manifest lines.
	Name string

	// ID is the lowercase identifier accepted on the command line
	// and in JSON manifests, e.g. "sha3-256".
	ID string

	// Size is the digest length in bytes. It is constant for the
	// life of the process and every digest bound to this algorithm
	// is validated against it.
	Size int

	// Classification is empty for algorithms with no known breaks,
	// constants.ClassDeprecated for those broken in theory, and
	// constants.ClassObsolete for those broken in practice.
	// Informational only.
	Classification string

	newHash func() hash.Hash
}

func (a *Algorithm) String() string {
	return a.Name
}

// Supported reports whether a digest implementation is available.
func (a *Algorithm) Supported() bool {
	return a.newHash != nil
}

// Insecure reports whether the algorithm carries a deprecated or
// obsolete classification.
func (a *Algorithm) Insecure() bool {
	return a.Classification != ""
}

// NewHash returns a fresh hash state for this algorithm.
func (a *Algorithm) NewHash() (hash.Hash, error) {
	if a.newHash == nil {
		return nil, fmt.Errorf("%s: %w", a.Name, ErrNoImplementation)
	}
	return a.newHash(), nil
}

// Compute streams all of r through the algorithm and returns the
// digest plus the number of bytes read. It is deterministic and has
// no side effects beyond consuming the reader.
func (a *Algorithm) Compute(r io.Reader) ([]byte, int64, error) {
	h, err := a.NewHash()
	if err != nil {
		return nil, 0, err
	}
	n, err := io.Copy(h, r)
	if err != nil {
		return nil, n, err
	}
	return h.Sum(nil), n, nil
}

var byIdentifier map[string]*Algorithm

func init() {
	byIdentifier = make(map[string]*Algorithm, len(algorithms)*2)
	for _, a := range algorithms {
		byIdentifier[strings.ToLower(a.ID)] = a
		byIdentifier[strings.ToLower(a.Name)] = a
	}
}

// Resolve maps an identifier to an Algorithm. Matching is
// case-insensitive and accepts both the lowercase ID ("sha3-256")
// and the display name ("SHA3-256").
func Resolve(identifier string) (*Algorithm, error) {
	a := byIdentifier[strings.ToLower(strings.TrimSpace(identifier))]
	if a == nil {
		return nil, fmt.Errorf("'%s': %w", identifier, ErrUnknownAlgorithm)
	}
	return a, nil
}

// List returns all registered algorithms in stable alphabetical
// order by canonical name.
func List() []*Algorithm {
	list := make([]*Algorithm, len(algorithms))
	copy(list, algorithms)
	return list
}

// InferFromLength returns the single algorithm whose digest size
// matches, for SFV manifests that don't declare an algorithm. If
// zero or more than one algorithm has that size, the length is
// ambiguous and this returns ErrUnknownAlgorithm. The security
// classification never narrows the candidate set.
func InferFromLength(size int) (*Algorithm, error) {
	var match *Algorithm
	for _, a := range algorithms {
		if a.Size != size {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("digest length %d is ambiguous: %w", size, ErrUnknownAlgorithm)
		}
		match = a
	}
	if match == nil {
		return nil, fmt.Errorf("no algorithm has digest length %d: %w", size, ErrUnknownAlgorithm)
	}
	return match, nil
}
