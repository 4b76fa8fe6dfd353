package lexer

// IdentTable is a dense, first-appearance-order identifier table. Ids
// are stable for the rest of the compilation and the table is queried
// in reverse for diagnostics.
type IdentTable struct {
	ids   map[string]uint32
	names []string
}

// NewIdentTable returns an empty identifier table.
func NewIdentTable() *IdentTable {
	return &IdentTable{ids: make(map[string]uint32)}
}

// Intern returns name's id, assigning a new dense id on first sight.
func (t *IdentTable) Intern(name string) uint32 {
	if id, ok := t.ids[name]; ok {
		return id
	}
	id := uint32(len(t.names))
	t.ids[name] = id
	t.names = append(t.names, name)
	return id
}

// Name returns the identifier text for id, or "" if out of range.
func (t *IdentTable) Name(id uint32) string {
	if int(id) < 0 || int(id) >= len(t.names) {
		return ""
	}
	return t.names[id]
}

// Len returns N, the number of distinct identifiers interned.
func (t *IdentTable) Len() int { return len(t.names) }

// LiteralTable is a raw-text → dense id table. Decoded values are
// filled in later by the driver, after lexing.
type LiteralTable struct {
	ids  map[string]uint32
	raws []string
}

// NewLiteralTable returns an empty literal table.
func NewLiteralTable() *LiteralTable {
	return &LiteralTable{ids: make(map[string]uint32)}
}

// Intern returns raw's id, assigning a new dense id on first sight.
func (t *LiteralTable) Intern(raw string) uint32 {
	if id, ok := t.ids[raw]; ok {
		return id
	}
	id := uint32(len(t.raws))
	t.ids[raw] = id
	t.raws = append(t.raws, raw)
	return id
}

// RawText returns the literal's source text.
func (t *LiteralTable) RawText(id uint32) string {
	if int(id) < 0 || int(id) >= len(t.raws) {
		return ""
	}
	return t.raws[id]
}

// Len returns the number of distinct literals interned.
func (t *LiteralTable) Len() int { return len(t.raws) }

// Decode decodes every interned literal and returns the id → value
// map. Kept as a method on LiteralTable rather than the driver since
// the decoding rule is intrinsic to the table's own contents.
func (t *LiteralTable) Decode() (map[uint32]NumberValue, []error) {
	values := make(map[uint32]NumberValue, len(t.raws))
	var errs []error
	for id, raw := range t.raws {
		v, err := decodeNumber(raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		values[uint32(id)] = v
	}
	return values, errs
}
