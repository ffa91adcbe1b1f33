package extend

// Arena is the resizable, lazily-shifted container for FrontValues
// described in spec.md §4.5/§9: FrontValues never reference each other by
// pointer, only by an integer index into the arena, and the arena
// periodically slides its backing storage left to reclaim a prefix that's
// fallen out of the live window.
//
// This is a direct adaptation of circular/bitmap.go's virtual-offset
// scheme (that package's `firstPos`/`bits` pair, generalized here from
// "circular bitmap of uintptr words" to "linear array of FrontValue
// structs" since the wavefront's active window is never actually
// circular -- the lazy left-shift alone is what's worth keeping from that
// file).
type Arena struct {
	data     []FrontValue
	offset   int // O: data[i-offset] holds logical index i
	trimLeft int // current trimleft
	valid    int // current valid count
}

// NewArena allocates an arena with room for at least initialCap entries.
func NewArena(initialCap int) *Arena {
	if initialCap < 16 {
		initialCap = 16
	}
	return &Arena{data: make([]FrontValue, initialCap)}
}

// TrimLeft and Valid expose the arena's current window, per spec.md §3's
// "[trimleft, trimleft+valid)" invariant.
func (a *Arena) TrimLeft() int { return a.trimLeft }
func (a *Arena) Valid() int    { return a.valid }
func (a *Arena) Empty() bool   { return a.valid == 0 }

// At returns a pointer to the FrontValue at logical index i, which must
// satisfy trimLeft <= i < trimLeft+valid.
func (a *Arena) At(i int) *FrontValue {
	return &a.data[i-a.offset]
}

// Reset reinitializes the arena to hold a single entry at logical index
// i0, used for the d=0 seed diagonal.
func (a *Arena) Reset(i0 int, v FrontValue) {
	a.offset = 0
	a.trimLeft = i0
	a.valid = 0
	a.ensureCapacity(i0, 1)
	a.data[i0-a.offset] = v
	a.valid = 1
}

// SetWindow replaces the live window with [newTrimLeft, newTrimLeft+n),
// growing the backing array first (and lowering the offset when the new
// window starts left of it). The caller fills in a.At(i) for i in the new
// window itself; SetWindow only manages storage and does not preserve
// entry contents. Shifting is done separately by MaybeShift.
func (a *Arena) SetWindow(newTrimLeft, n int) {
	a.ensureCapacity(newTrimLeft, n)
	a.trimLeft = newTrimLeft
	a.valid = n
}

// ensureCapacity grows the backing slice (geometric growth, as spec.md
// §4.1 prescribes for KmerPos buffers and §4.5 prescribes for this arena)
// so that [trimLeft, trimLeft+n) is addressable. A window that starts left
// of the current offset (the wavefront widening leftward after a
// MaybeShift) moves the offset down to trimLeft.
func (a *Arena) ensureCapacity(trimLeft, n int) {
	if trimLeft < a.offset {
		a.offset = trimLeft
	}
	needed := trimLeft - a.offset + n
	if needed > len(a.data) {
		newCap := len(a.data)*2 + 256
		for newCap < needed {
			newCap = newCap*2 + 256
		}
		grown := make([]FrontValue, newCap)
		copy(grown, a.data)
		a.data = grown
	}
}

// MaybeShift implements the lazy-shift policy: shift when trimLeft-offset
// exceeds both the current valid window size and (ulen+vlen)/1000.
func (a *Arena) MaybeShift(ulen, vlen int) {
	threshold := (ulen + vlen) / 1000
	drift := a.trimLeft - a.offset
	if drift > a.valid && drift > threshold {
		copy(a.data, a.data[drift:drift+a.valid])
		a.offset = a.trimLeft
	}
}
