package materials

// Filter keeps the records whose identifier is in allow, preserving order.
func Filter(records []Record, allow AllowList) []Record {
	var res []Record
	for _, rec := range records {
		if allow.Contains(rec.Identifier) {
			res = append(res, rec)
		}
	}
	return res
}

// Derive adds the display quantity and the recyclability flag to each
// record.
func Derive(records []Record, lookup RecyclingLookup) []FilteredRecord {
	res := make([]FilteredRecord, 0, len(records))
	for _, rec := range records {
		res = append(res, FilteredRecord{
			Record:           rec,
			QuantityWithUnit: QuantityText(rec.Quantity) + " " + rec.Unit,
			Recyclable:       lookup.Lookup(rec.Identifier),
		})
	}
	return res
}

// Summarize sums quantity per recyclability flag. Rows are ordered
// Possible, NotPossible, Unmapped and only flags that occur are present.
// Invalid quantities count as zero.
func Summarize(records []FilteredRecord) RecyclingSummary {
	totals := make(map[Recyclability]float64)
	for _, rec := range records {
		totals[rec.Recyclable] += rec.Quantity.Float64()
	}

	var res RecyclingSummary
	for _, r := range []Recyclability{Possible, NotPossible, Unmapped} {
		if total, ok := totals[r]; ok {
			res = append(res, SummaryRow{Recyclable: r, Quantity: total})
		}
	}
	return res
}

// Shares returns each value's fraction of the total, as pie slices are
// sized. Negative values count as zero, so shares are never negative and
// sum to one unless every value is zero or less.
func Shares(values []float64) []float64 {
	var total float64
	for _, v := range values {
		total += max(v, 0)
	}
	res := make([]float64, len(values))
	if total == 0 {
		return res
	}
	for i, v := range values {
		res[i] = max(v, 0) / total
	}
	return res
}

func Quantities(records []FilteredRecord) []float64 {
	res := make([]float64, len(records))
	for i, rec := range records {
		res[i] = rec.Quantity.Float64()
	}
	return res
}

func (s RecyclingSummary) Quantities() []float64 {
	res := make([]float64, len(s))
	for i, row := range s {
		res[i] = row.Quantity
	}
	return res
}
