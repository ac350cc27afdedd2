package services

// Depreciation methods
const (
	DepreciationStraight  = "straight"
	DepreciationDeclining = "declining"
)

// DepreciatedValue computes the book value of an asset at currentYear.
//
// Pure function, evaluated once per asset per requested year to build the
// depreciation time series, so report output must be stable for identical
// input.
//
// Rules:
//   - currentYear before purchaseYear yields 0.
//   - age is clamped to [0, years] for depreciation purposes.
//   - straight: price * (1 - age*(100/years)/100), floored at 0.
//   - declining: decliningPercents[i] applied successively for each of the
//     first age years; an index beyond the slice counts as 0 percent.
func DepreciatedValue(price float64, purchaseYear, currentYear int, method string, years int, decliningPercents []float64) float64 {
	if currentYear < purchaseYear {
		return 0
	}
	if years <= 0 {
		return price
	}

	age := currentYear - purchaseYear
	if age > years {
		age = years
	}

	value := price

	switch method {
	case DepreciationDeclining:
		for i := 0; i < age; i++ {
			percent := 0.0
			if i < len(decliningPercents) {
				percent = decliningPercents[i]
			}
			value = value * (1 - percent/100)
		}
	default: // straight line
		rate := 100.0 / float64(years)
		value = price * (1 - float64(age)*rate/100)
	}

	if value < 0 {
		return 0
	}
	return value
}

// DepreciationPoint is one year in a projection series.
type DepreciationPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// DepreciationSeries builds the year-by-year projection from purchaseYear
// through purchaseYear+years inclusive.
func DepreciationSeries(price float64, purchaseYear int, method string, years int, decliningPercents []float64) []DepreciationPoint {
	series := make([]DepreciationPoint, 0, years+1)
	for y := purchaseYear; y <= purchaseYear+years; y++ {
		series = append(series, DepreciationPoint{
			Year:  y,
			Value: DepreciatedValue(price, purchaseYear, y, method, years, decliningPercents),
		})
	}
	return series
}
