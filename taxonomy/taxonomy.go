package taxonomy

// Manifest is the serialized form of a taxonomy: raw entry records grouped
// by vocabulary. Field names match the interchange format, so a manifest
// round-trips through YAML or JSON unchanged.
type Manifest struct {
	DataCategories []Entry `yaml:"data_category,omitempty" json:"data_category,omitempty"`
	DataUses       []Entry `yaml:"data_use,omitempty" json:"data_use,omitempty"`
	DataQualifiers []Entry `yaml:"data_qualifier,omitempty" json:"data_qualifier,omitempty"`
	DataSubjects   []Entry `yaml:"data_subject,omitempty" json:"data_subject,omitempty"`
}

// Records returns the manifest's records for one vocabulary kind.
func (m *Manifest) Records(kind Kind) []Entry {
	switch kind {
	case KindDataCategory:
		return m.DataCategories
	case KindDataUse:
		return m.DataUses
	case KindDataQualifier:
		return m.DataQualifiers
	case KindDataSubject:
		return m.DataSubjects
	}
	return nil
}

// Append adds another manifest's records to this one.
func (m *Manifest) Append(other *Manifest) {
	m.DataCategories = append(m.DataCategories, other.DataCategories...)
	m.DataUses = append(m.DataUses, other.DataUses...)
	m.DataQualifiers = append(m.DataQualifiers, other.DataQualifiers...)
	m.DataSubjects = append(m.DataSubjects, other.DataSubjects...)
}

// Len returns the total number of records across all vocabularies.
func (m *Manifest) Len() int {
	return len(m.DataCategories) + len(m.DataUses) + len(m.DataQualifiers) + len(m.DataSubjects)
}

// Taxonomy holds one validated collection per vocabulary kind.
type Taxonomy struct {
	collections map[Kind]*Collection
}

// BuildTaxonomy loads and builds every vocabulary in a manifest. Each kind
// is validated independently; fides_keys are unique within a kind, not
// across kinds.
func BuildTaxonomy(m *Manifest) (*Taxonomy, error) {
	t := &Taxonomy{collections: make(map[Kind]*Collection, len(Kinds))}
	for _, kind := range Kinds {
		collection, err := New(kind, m.Records(kind))
		if err != nil {
			return nil, err
		}
		t.collections[kind] = collection
	}
	return t, nil
}

// Collection returns the collection for a vocabulary kind. Unknown kinds
// return nil.
func (t *Taxonomy) Collection(kind Kind) *Collection {
	return t.collections[kind]
}

// DataCategories returns the data category collection.
func (t *Taxonomy) DataCategories() *Collection { return t.collections[KindDataCategory] }

// DataUses returns the data use collection.
func (t *Taxonomy) DataUses() *Collection { return t.collections[KindDataUse] }

// DataQualifiers returns the data qualifier collection.
func (t *Taxonomy) DataQualifiers() *Collection { return t.collections[KindDataQualifier] }

// DataSubjects returns the data subject collection.
func (t *Taxonomy) DataSubjects() *Collection { return t.collections[KindDataSubject] }

// Len returns the total number of entries across all collections.
func (t *Taxonomy) Len() int {
	n := 0
	for _, c := range t.collections {
		n += c.Len()
	}
	return n
}

// Manifest returns a serializable view of the taxonomy with entries in
// ascending fides_key order per vocabulary.
func (t *Taxonomy) Manifest() *Manifest {
	m := &Manifest{}
	for _, kind := range Kinds {
		records := make([]Entry, 0, t.collections[kind].Len())
		for _, entry := range t.collections[kind].Entries() {
			records = append(records, *entry)
		}
		switch kind {
		case KindDataCategory:
			m.DataCategories = records
		case KindDataUse:
			m.DataUses = records
		case KindDataQualifier:
			m.DataQualifiers = records
		case KindDataSubject:
			m.DataSubjects = records
		}
	}
	return m
}

// Merge combines two built taxonomies into a new one, revalidating the
// union. Custom entries may attach under parents defined in the base;
// a fides_key present in both fails with *DuplicateKeyError. Neither
// input is modified.
func Merge(base, overlay *Taxonomy) (*Taxonomy, error) {
	m := base.Manifest()
	m.Append(overlay.Manifest())
	return BuildTaxonomy(m)
}
