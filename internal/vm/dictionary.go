package vm

// Dictionary offsets, identical across both known image versions
// (spec.md Section 3 / Section 9).
const (
	DictOffsetLink  = 0
	DictOffsetXT    = 1
	DictOffsetClass = 2
	DictOffsetName  = 3
)

// DictionaryHead returns the address of the most recently defined word,
// cached from cell 2 at image-load time by convention (spec.md Section
// 6.1).
func (m *Machine) DictionaryHead() (int32, error) {
	return m.Load(2)
}

// Lookup walks the dictionary list from head, comparing extracted names
// for byte equality, and returns the matching entry's base address, or 0
// if name is not found (spec.md Section 4.5).
func (m *Machine) Lookup(name string) (int32, error) {
	head, err := m.DictionaryHead()
	if err != nil {
		return 0, err
	}
	needle := []byte(name)
	for entry := head; entry != 0; {
		got, err := m.Extract(entry + DictOffsetName)
		if err != nil {
			return 0, err
		}
		if string(got) == string(needle) {
			return entry, nil
		}
		entry, err = m.Load(entry + DictOffsetLink)
		if err != nil {
			return 0, err
		}
	}
	return 0, nil
}

// XTFor resolves name to its execution token, 0 if unresolved.
func (m *Machine) XTFor(name string) (int32, error) {
	entry, err := m.Lookup(name)
	if err != nil || entry == 0 {
		return 0, err
	}
	return m.Load(entry + DictOffsetXT)
}

// WordAt walks the dictionary looking for the entry whose cells span addr,
// returning its name and the offset of addr within it. A diagnostic
// helper; neither the trace callback nor Dump calls it.
func (m *Machine) WordAt(addr int32) (name string, offset int32) {
	head, err := m.DictionaryHead()
	if err != nil {
		return "", 0
	}
	for entry := head; entry != 0; {
		if entry < addr {
			got, err := m.Extract(entry + DictOffsetName)
			if err != nil || len(got) == 0 {
				return "", 0
			}
			return string(got), addr - entry
		}
		var err error
		entry, err = m.Load(entry + DictOffsetLink)
		if err != nil {
			return "", 0
		}
	}
	return "", 0
}
