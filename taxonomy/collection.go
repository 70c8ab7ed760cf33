package taxonomy

import "sort"

// Collection is one validated vocabulary: entries indexed by fides_key plus
// a parent-to-children adjacency index. It is immutable after Build and
// safe for concurrent readers.
type Collection struct {
	kind     Kind
	byKey    map[string]*Entry
	children map[string][]string
	keys     []string
}

// Load validates a sequence of raw entry records against the field schema
// and applies schema defaults. It fails with a *SchemaError on the first
// malformed record. Load does not check cross-record invariants; pass the
// result to Build for those.
func Load(records []Entry) ([]Entry, error) {
	entries := make([]Entry, 0, len(records))
	for i := range records {
		entry := records[i]
		if err := entry.Validate(); err != nil {
			return nil, err
		}
		entry.normalize()
		entries = append(entries, entry)
	}
	return entries, nil
}

// Build verifies the global invariants over schema-valid entries and
// constructs the queryable collection: every fides_key unique, every
// parent_key resolvable, and no cycles in the parent relation.
//
// It fails with *DuplicateKeyError, *DanglingReferenceError, or
// *CycleError identifying the offending key(s).
func Build(kind Kind, entries []Entry) (*Collection, error) {
	c := &Collection{
		kind:     kind,
		byKey:    make(map[string]*Entry, len(entries)),
		children: make(map[string][]string),
		keys:     make([]string, 0, len(entries)),
	}

	// Copy into collection-owned storage so later caller mutations of the
	// input slice cannot reach the built collection.
	owned := make([]Entry, len(entries))
	copy(owned, entries)

	for i := range owned {
		entry := &owned[i]
		if _, exists := c.byKey[entry.FidesKey]; exists {
			return nil, &DuplicateKeyError{Key: entry.FidesKey}
		}
		c.byKey[entry.FidesKey] = entry
		c.keys = append(c.keys, entry.FidesKey)
	}
	sort.Strings(c.keys)

	for _, key := range c.keys {
		entry := c.byKey[key]
		if entry.ParentKey == "" {
			continue
		}
		if _, exists := c.byKey[entry.ParentKey]; !exists {
			return nil, &DanglingReferenceError{Key: entry.FidesKey, ParentKey: entry.ParentKey}
		}
		c.children[entry.ParentKey] = append(c.children[entry.ParentKey], entry.FidesKey)
	}

	if err := c.checkAcyclic(); err != nil {
		return nil, err
	}
	return c, nil
}

// New loads and builds a collection in one step.
func New(kind Kind, records []Entry) (*Collection, error) {
	entries, err := Load(records)
	if err != nil {
		return nil, err
	}
	return Build(kind, entries)
}

// checkAcyclic walks each entry's parent chain with a visited-set guard.
// A key seen twice during one walk is a cycle. Chains already proven to
// terminate are skipped on later walks.
func (c *Collection) checkAcyclic() error {
	terminated := make(map[string]bool, len(c.byKey))

	for _, start := range c.keys {
		if terminated[start] {
			continue
		}
		visited := make(map[string]bool)
		var path []string

		key := start
		for key != "" {
			if terminated[key] {
				break
			}
			if visited[key] {
				// Trim the path to the cycle itself and close it.
				for i, k := range path {
					if k == key {
						return &CycleError{Keys: append(path[i:], key)}
					}
				}
				return &CycleError{Keys: append(path, key)}
			}
			visited[key] = true
			path = append(path, key)
			key = c.byKey[key].ParentKey
		}

		for _, k := range path {
			terminated[k] = true
		}
	}
	return nil
}

// Kind returns the vocabulary kind this collection holds.
func (c *Collection) Kind() Kind {
	return c.kind
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	return len(c.keys)
}

// Get returns the entry for a fides_key. The returned entry must be
// treated as read-only.
func (c *Collection) Get(fidesKey string) (*Entry, error) {
	entry, ok := c.byKey[fidesKey]
	if !ok {
		return nil, &NotFoundError{Key: fidesKey}
	}
	return entry, nil
}

// Has reports whether a fides_key exists in the collection.
func (c *Collection) Has(fidesKey string) bool {
	_, ok := c.byKey[fidesKey]
	return ok
}

// Entries returns all entries in ascending fides_key order.
func (c *Collection) Entries() []*Entry {
	entries := make([]*Entry, 0, len(c.keys))
	for _, key := range c.keys {
		entries = append(entries, c.byKey[key])
	}
	return entries
}

// Roots returns the entries with no parent, in ascending fides_key order.
func (c *Collection) Roots() []*Entry {
	var roots []*Entry
	for _, key := range c.keys {
		if entry := c.byKey[key]; entry.ParentKey == "" {
			roots = append(roots, entry)
		}
	}
	return roots
}

// ChildrenOf returns the direct children of a fides_key, in ascending
// fides_key order.
func (c *Collection) ChildrenOf(fidesKey string) ([]*Entry, error) {
	if _, ok := c.byKey[fidesKey]; !ok {
		return nil, &NotFoundError{Key: fidesKey}
	}
	keys := c.children[fidesKey]
	entries := make([]*Entry, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, c.byKey[key])
	}
	return entries, nil
}

// AncestorsOf returns the entry's lineage in root-to-parent order. A root
// entry yields an empty slice.
func (c *Collection) AncestorsOf(fidesKey string) ([]*Entry, error) {
	entry, ok := c.byKey[fidesKey]
	if !ok {
		return nil, &NotFoundError{Key: fidesKey}
	}
	var ancestors []*Entry
	for key := entry.ParentKey; key != ""; {
		parent := c.byKey[key]
		ancestors = append(ancestors, parent)
		key = parent.ParentKey
	}
	// Walked parent-to-root; callers want root-to-parent.
	for i, j := 0, len(ancestors)-1; i < j; i, j = i+1, j-1 {
		ancestors[i], ancestors[j] = ancestors[j], ancestors[i]
	}
	return ancestors, nil
}

// DescendantsOf returns the full subtree under a fides_key, excluding the
// entry itself. Order follows ascending fides_key within each level.
func (c *Collection) DescendantsOf(fidesKey string) ([]*Entry, error) {
	if _, ok := c.byKey[fidesKey]; !ok {
		return nil, &NotFoundError{Key: fidesKey}
	}
	var descendants []*Entry
	queue := append([]string(nil), c.children[fidesKey]...)
	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]
		descendants = append(descendants, c.byKey[key])
		queue = append(queue, c.children[key]...)
	}
	return descendants, nil
}

// IsDescendant reports whether candidate sits anywhere under ancestor.
// An entry is not its own descendant. Unknown keys report false.
func (c *Collection) IsDescendant(candidateKey, ancestorKey string) bool {
	entry, ok := c.byKey[candidateKey]
	if !ok {
		return false
	}
	if _, ok := c.byKey[ancestorKey]; !ok {
		return false
	}
	for key := entry.ParentKey; key != ""; {
		if key == ancestorKey {
			return true
		}
		key = c.byKey[key].ParentKey
	}
	return false
}

// Defaults returns the system-provided entries, in ascending key order.
func (c *Collection) Defaults() []*Entry {
	return c.partition(true)
}

// Custom returns the user-defined entries, in ascending key order.
func (c *Collection) Custom() []*Entry {
	return c.partition(false)
}

func (c *Collection) partition(isDefault bool) []*Entry {
	var entries []*Entry
	for _, key := range c.keys {
		if entry := c.byKey[key]; entry.IsDefault == isDefault {
			entries = append(entries, entry)
		}
	}
	return entries
}
