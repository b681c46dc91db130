package layout

import "github.com/ukaji3/xlgrid/pkg/xlgrid/models"

// Column is one entry of a FieldOrder. Unbound columns carry no field and
// are never written.
type Column struct {
	Field string
	Bound bool
}

// FieldOrder maps each body column to the field it renders.
type FieldOrder []Column

// Fields returns the field of every column, "" for unbound ones.
func (o FieldOrder) Fields() []string {
	out := make([]string, len(o))
	for i, c := range o {
		if c.Bound {
			out[i] = c.Field
		}
	}
	return out
}

// Column returns the index of the first column rendering field, or -1.
func (o FieldOrder) Column(field string) int {
	for i, c := range o {
		if c.Bound && c.Field == field {
			return i
		}
	}
	return -1
}

func boundColumns(fields []string) FieldOrder {
	order := make(FieldOrder, len(fields))
	for i, f := range fields {
		order[i] = Column{Field: f, Bound: true}
	}
	return order
}

// Resolve derives the effective header and the column order for a write.
//
// fallback is the field list of the first record. When l carries no field
// mapping, a plain header row built from fallback is placed below l (or at
// row 0 when l is empty) and the order follows fallback. Otherwise the order
// has MaxColumn()+1 entries, each mapped cell claiming the column of its
// address's first column.
//
// l is never modified; a derived copy is returned when a row is added.
// Resolving the same unmodified layout twice yields the same order.
func Resolve(l *Layout, fallback []string) (*Layout, FieldOrder) {
	if l.HasFieldMapping() {
		order := make(FieldOrder, l.MaxColumn()+1)
		for _, c := range l.Cells() {
			if c.Mapped {
				order[c.Address.FirstCol] = Column{Field: c.Key, Bound: true}
			}
		}
		return l, order
	}

	var eff *Layout
	if l.IsEmpty() {
		eff = &Layout{maxRow: -1, maxCol: -1}
	} else {
		eff = l.Clone()
	}
	if len(fallback) == 0 {
		return eff, FieldOrder{}
	}

	start := eff.MaxRow() + 1
	synthetic := NewRow()
	for i, f := range fallback {
		synthetic.cells = append(synthetic.cells, Cell{
			Key:     f,
			Name:    f,
			Address: models.CellAddress{FirstRow: start, LastRow: start, FirstCol: i, LastCol: i},
		})
		synthetic.track(synthetic.cells[i].Address)
	}
	eff.rows = append(eff.rows, synthetic)
	eff.stale = true
	return eff, boundColumns(fallback)
}
