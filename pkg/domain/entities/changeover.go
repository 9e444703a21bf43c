package entities

// DefaultChangeoverMinutes is charged for a SKU pair with no matrix entry.
const DefaultChangeoverMinutes = 60

// ChangeoverEntry represents the setup minutes lost switching a line from one
// SKU to another. The matrix is not guaranteed symmetric.
type ChangeoverEntry struct {
	From    SKUCode
	To      SKUCode
	Minutes int
}

type changeoverKey struct {
	from SKUCode
	to   SKUCode
}

// ChangeoverMatrix provides keyed lookup of changeover minutes with the
// missing-pair default applied.
type ChangeoverMatrix struct {
	minutes    map[changeoverKey]int
	defaultMin int
}

// NewChangeoverMatrix builds a matrix from entries with the standard
// missing-pair default.
func NewChangeoverMatrix(entries []ChangeoverEntry) *ChangeoverMatrix {
	return NewChangeoverMatrixWithDefault(entries, DefaultChangeoverMinutes)
}

// NewChangeoverMatrixWithDefault builds a matrix with a custom missing-pair
// default.
func NewChangeoverMatrixWithDefault(entries []ChangeoverEntry, defaultMin int) *ChangeoverMatrix {
	m := &ChangeoverMatrix{
		minutes:    make(map[changeoverKey]int, len(entries)),
		defaultMin: defaultMin,
	}
	for _, e := range entries {
		m.minutes[changeoverKey{from: e.From, to: e.To}] = e.Minutes
	}
	return m
}

// Minutes returns the changeover time from one SKU to another. A line with no
// prior SKU (empty from) pays nothing, as does staying on the same SKU.
// Unknown pairs fall back to the matrix default.
func (m *ChangeoverMatrix) Minutes(from, to SKUCode) int {
	if from == "" || from == to {
		return 0
	}
	if min, ok := m.minutes[changeoverKey{from: from, to: to}]; ok {
		return min
	}
	return m.defaultMin
}
