package ulog

// WildcardTag is the reserved tag that holds the process-wide default
// threshold. Setting it changes the effective level of every tag that has
// no explicit entry of its own.
const WildcardTag = "*"

type levelEntry struct {
	tag   string
	level Level
}

// levelRegistry maps tags to minimum-severity thresholds. Lookup is a
// linear scan: tag cardinality is small and bounded, and the scan beats a
// map for the handful of entries seen in practice.
//
// The registry itself is not locked; callers serialize access through the
// logger's platform lock.
type levelRegistry struct {
	entries  []levelEntry
	capacity int

	// Threshold used before any wildcard entry exists, fixed at
	// construction from the logger's default level.
	fallback Level
}

func newLevelRegistry(capacity int, fallback Level) *levelRegistry {
	if capacity <= 0 {
		capacity = DefaultRegistryCapacity
	}
	return &levelRegistry{
		entries:  make([]levelEntry, 0, capacity),
		capacity: capacity,
		fallback: fallback,
	}
}

// set inserts or updates the threshold for tag. Re-setting a tag updates
// the existing entry in place; duplicates never accumulate. When the
// registry is full, new tags are silently dropped and evaluate as the
// wildcard default. The wildcard itself always finds room: it replaces
// the oldest non-wildcard entry if it has to.
func (r *levelRegistry) set(tag string, level Level) {
	for i := range r.entries {
		if r.entries[i].tag == tag {
			r.entries[i].level = level
			return
		}
	}
	if len(r.entries) < r.capacity {
		r.entries = append(r.entries, levelEntry{tag: tag, level: level})
		return
	}
	if tag == WildcardTag {
		r.entries[0] = levelEntry{tag: tag, level: level}
	}
}

// get returns the explicit threshold for tag if one exists, else the
// wildcard default. The wildcard entry is created lazily on the first
// query that misses, seeded with the construction-time default.
func (r *levelRegistry) get(tag string) Level {
	wildcard := -1
	for i := range r.entries {
		if r.entries[i].tag == tag {
			return r.entries[i].level
		}
		if r.entries[i].tag == WildcardTag {
			wildcard = i
		}
	}
	if wildcard >= 0 {
		return r.entries[wildcard].level
	}
	r.set(WildcardTag, r.fallback)
	return r.fallback
}
