package erp

// TableMapper is an in-memory identifier mapping table.
// Implements ports.IdentifierMapper. The table is read-only after
// construction, so lookups are safe across concurrent requests.
type TableMapper struct {
	table map[string]string
}

// NewTableMapper creates a mapper over the given table. A nil table
// behaves as an empty one.
func NewTableMapper(table map[string]string) *TableMapper {
	copied := make(map[string]string, len(table))
	for k, v := range table {
		copied[k] = v
	}

	return &TableMapper{table: copied}
}

// Lookup implements ports.IdentifierMapper.
func (m *TableMapper) Lookup(id string) (string, bool) {
	mapped, ok := m.table[id]
	return mapped, ok
}

// IdentityMapper forwards every identifier unchanged.
type IdentityMapper struct{}

// Lookup implements ports.IdentifierMapper.
func (IdentityMapper) Lookup(id string) (string, bool) {
	return id, true
}
