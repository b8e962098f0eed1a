// internal/engine/discovery/compare.go

package discovery

// MaxCompare is the largest number of vendors a comparison can hold.
const MaxCompare = 3

// CompareSet is the bounded selection of vendor IDs held for side-by-side
// comparison. Not safe for concurrent use; a set belongs to one session.
type CompareSet struct {
	ids []string
}

func NewCompareSet() *CompareSet {
	return &CompareSet{}
}

// Add inserts a vendor ID. Adding an ID already in the set is a no-op that
// reports success. A fourth distinct ID is rejected with no state change.
func (c *CompareSet) Add(vendorID string) bool {
	if c.Contains(vendorID) {
		return true
	}
	if len(c.ids) >= MaxCompare {
		return false
	}
	c.ids = append(c.ids, vendorID)
	return true
}

func (c *CompareSet) Remove(vendorID string) {
	for i, id := range c.ids {
		if id == vendorID {
			c.ids = append(c.ids[:i], c.ids[i+1:]...)
			return
		}
	}
}

func (c *CompareSet) Contains(vendorID string) bool {
	for _, id := range c.ids {
		if id == vendorID {
			return true
		}
	}
	return false
}

// IDs returns the held vendor IDs in insertion order.
func (c *CompareSet) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

func (c *CompareSet) Len() int {
	return len(c.ids)
}

func (c *CompareSet) Clear() {
	c.ids = nil
}
