package activate

import "errors"

// ID identifies a registry slot. It is assigned once when the slot is
// allocated and survives every score overwrite, eviction and Clear. IDs are
// never zero; NoID marks "nothing".
type ID uint32

// NoID is returned in place of an ID when an operation did not produce one
// (a rejected Put, a Drop on an empty registry).
const NoID ID = 0

// Index is the set of integer types a Pool can hand back to its callbacks.
// Named types such as `type ChunkID int` satisfy it. T must be able to
// represent every index of the pool's watch domain.
type Index interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

var (
	// ErrInvalidCapacity is returned when a registry or pool is created with
	// fewer than one slot, or resized to a negative capacity.
	ErrInvalidCapacity = errors.New("invalid capacity")
	// ErrInvalidSize is returned when a pool's watch domain size is negative.
	ErrInvalidSize = errors.New("invalid watch domain size")
	// ErrNilScore is returned when a PoolConfig has no Score function.
	ErrNilScore = errors.New("nil score function")
)
