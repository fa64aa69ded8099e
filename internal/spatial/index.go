// Package spatial provides immutable 2D indexes answering exact radius queries
// over a fixed point set. Point ids are the positions in the slice handed to
// Build.
package spatial

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"unitsight/internal/geometry"
)

var (
	// ErrInvalidArgument marks contract violations by the caller.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNegativeRadius is returned by RadiusSearch for r < 0 or NaN.
	ErrNegativeRadius = fmt.Errorf("%w: negative radius", ErrInvalidArgument)
	// ErrUnknownKind is returned by Build for an unsupported index kind.
	ErrUnknownKind = errors.New("unknown index kind")
)

// Index answers radius queries against the point set it was built from.
// Implementations are safe for concurrent readers.
type Index interface {
	// RadiusSearch returns the ids of all points p with
	// geometry.WithinRadius(center, p, r). Order is unspecified.
	RadiusSearch(center geometry.Point, r float64) ([]int, error)
	// Len returns the number of indexed points.
	Len() int
}

// Kind selects an Index implementation.
type Kind string

const (
	KindKDTree Kind = "kdtree"
	KindRTree  Kind = "rtree"
	KindBrute  Kind = "brute"
)

// Kinds lists the supported index kinds.
func Kinds() []Kind {
	return []Kind{KindKDTree, KindRTree, KindBrute}
}

// ParseKind maps a name to a Kind. The empty string selects the k-d tree.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindKDTree, nil
	case KindKDTree, KindRTree, KindBrute:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Build constructs an index of the given kind. The points slice is copied.
func Build(kind Kind, points []geometry.Point) (Index, error) {
	switch kind {
	case KindKDTree, "":
		return NewKDTree(points), nil
	case KindRTree:
		return NewRTree(points), nil
	case KindBrute:
		return NewBrute(points), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

func checkRadius(r float64) error {
	if r < 0 || math.IsNaN(r) {
		return fmt.Errorf("%w: %v", ErrNegativeRadius, r)
	}
	return nil
}

// Brute scans every point. It is the reference the tree indexes are tested
// against and is adequate for very small scenarios.
type Brute struct {
	points []geometry.Point
}

// NewBrute copies points into a linear-scan index.
func NewBrute(points []geometry.Point) *Brute {
	return &Brute{points: append([]geometry.Point(nil), points...)}
}

// RadiusSearch implements Index.
func (b *Brute) RadiusSearch(center geometry.Point, r float64) ([]int, error) {
	if err := checkRadius(r); err != nil {
		return nil, err
	}
	var ids []int
	for i, p := range b.points {
		if geometry.WithinRadius(center, p, r) {
			ids = append(ids, i)
		}
	}
	return ids, nil
}

// Len implements Index.
func (b *Brute) Len() int { return len(b.points) }
