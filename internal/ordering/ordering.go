// Package ordering keeps sibling positions dense. Siblings are lists within a
// board or cards within a list; the algorithm is the same for both.
package ordering

// Item is the positional part of a sibling: its id, the container it lives
// in and its position among the container's children.
type Item[ID comparable] struct {
	ID        ID  `json:"id"`
	Position  int `json:"position"`
	Container ID  `json:"containerId"`
}

// NextPosition returns the position for a sibling appended to a container
// whose highest position is maxPos. ok is false when the container is empty.
func NextPosition(maxPos int, ok bool) int {
	if !ok {
		return 1
	}
	return maxPos + 1
}

// Reindex assigns position = index to every item, in slice order.
func Reindex[ID comparable](items []Item[ID]) []Item[ID] {
	for i := range items {
		items[i].Position = i
	}
	return items
}

// Move relocates the item at from to index to and reindexes the result.
// The input slice is not modified. Out of range indexes are clamped.
func Move[ID comparable](siblings []Item[ID], from, to int) []Item[ID] {
	out := append([]Item[ID](nil), siblings...)
	if len(out) == 0 {
		return out
	}
	from = clamp(from, len(out)-1)
	to = clamp(to, len(out)-1)

	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = insert(out, to, moved)
	return Reindex(out)
}

// Transfer moves the item at from in source into dest at index to, rewriting
// its container to destID. Both sets come back densely reindexed and the
// moved item appears only in the destination.
func Transfer[ID comparable](source, dest []Item[ID], from, to int, destID ID) ([]Item[ID], []Item[ID]) {
	src := append([]Item[ID](nil), source...)
	dst := append([]Item[ID](nil), dest...)
	if len(src) == 0 {
		return Reindex(src), Reindex(dst)
	}
	from = clamp(from, len(src)-1)
	to = clamp(to, len(dst))

	moved := src[from]
	src = append(src[:from], src[from+1:]...)
	moved.Container = destID
	dst = insert(dst, to, moved)
	return Reindex(src), Reindex(dst)
}

// Drop describes the outcome of a drag gesture. A nil destination means the
// item was released outside any container.
type Drop[ID comparable] struct {
	SourceContainer ID
	SourceIndex     int
	DestContainer   *ID
	DestIndex       int
}

// IsNoop reports whether the drop leaves everything in place.
func (d Drop[ID]) IsNoop() bool {
	if d.DestContainer == nil {
		return true
	}
	return *d.DestContainer == d.SourceContainer && d.DestIndex == d.SourceIndex
}

func insert[ID comparable](items []Item[ID], at int, item Item[ID]) []Item[ID] {
	items = append(items, Item[ID]{})
	copy(items[at+1:], items[at:])
	items[at] = item
	return items
}

func clamp(i, hi int) int {
	if i < 0 {
		return 0
	}
	if i > hi {
		return hi
	}
	return i
}
