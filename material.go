package materials // import "kastelo.dev/materials"

import "strconv"

// Field names bound by ingestion.
const (
	FieldIdentifier = "identifier"
	FieldQuantity   = "quantity"
	FieldUnit       = "unit"
)

var requiredFields = []string{FieldIdentifier, FieldQuantity, FieldUnit}

type Table struct {
	Fields  []string
	Records []Record
}

func (t *Table) HasField(name string) bool {
	for _, f := range t.Fields {
		if f == name {
			return true
		}
	}
	return false
}

type Record struct {
	Row        int
	Identifier string
	Quantity   Quantity
	Unit       string
}

// Quantity is a numeric cell value. Valid is false for empty or
// non-numeric cells; Raw keeps whatever text the cell held.
type Quantity struct {
	Value float64
	Valid bool
	Raw   string
}

func NewQuantity(v float64) Quantity {
	return Quantity{Value: v, Valid: true, Raw: strconv.FormatFloat(v, 'f', -1, 64)}
}

func ParseQuantity(s string) Quantity {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Quantity{Raw: s}
	}
	return Quantity{Value: v, Valid: true, Raw: s}
}

func (q Quantity) Float64() float64 {
	if !q.Valid {
		return 0
	}
	return q.Value
}

// QuantityText is the display form of a quantity, "120" rather than
// "120.000000". Absent quantities render as the empty string.
func QuantityText(q Quantity) string {
	if !q.Valid {
		return ""
	}
	return strconv.FormatFloat(q.Value, 'f', -1, 64)
}

type FilteredRecord struct {
	Record
	QuantityWithUnit string
	Recyclable       Recyclability
}

type SummaryRow struct {
	Recyclable Recyclability
	Quantity   float64
}

type RecyclingSummary []SummaryRow

func (s RecyclingSummary) Total() float64 {
	var total float64
	for _, row := range s {
		total += row.Quantity
	}
	return total
}

// Get returns the summed quantity for r and whether r is present.
func (s RecyclingSummary) Get(r Recyclability) (float64, bool) {
	for _, row := range s {
		if row.Recyclable == r {
			return row.Quantity, true
		}
	}
	return 0, false
}
