package takehome

import "github.com/shopspring/decimal"

// FilingStatus selects the federal bracket schedule.
type FilingStatus string

// Supported filing statuses.
const (
	Single       FilingStatus = "single"
	MarriedJoint FilingStatus = "married_joint"
)

type bracket struct {
	upTo decimal.Decimal // zero means no upper bound
	rate decimal.Decimal
}

type schedule struct {
	standardDeduction  decimal.Decimal
	brackets           []bracket
	medicareAdditional decimal.Decimal // wages above this pay the additional Medicare tax
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Tax year 2024.
var (
	socialSecurityRate    = d("0.062")
	socialSecurityWageCap = d("168600")
	medicareRate          = d("0.0145")
	medicareAdditional    = d("0.009")
)

var schedules = map[FilingStatus]schedule{
	Single: {
		standardDeduction: d("14600"),
		brackets: []bracket{
			{d("11600"), d("0.10")},
			{d("47150"), d("0.12")},
			{d("100525"), d("0.22")},
			{d("191950"), d("0.24")},
			{d("243725"), d("0.32")},
			{d("609350"), d("0.35")},
			{decimal.Zero, d("0.37")},
		},
		medicareAdditional: d("200000"),
	},
	MarriedJoint: {
		standardDeduction: d("29200"),
		brackets: []bracket{
			{d("23200"), d("0.10")},
			{d("94300"), d("0.12")},
			{d("201050"), d("0.22")},
			{d("383900"), d("0.24")},
			{d("487450"), d("0.32")},
			{d("731200"), d("0.35")},
			{decimal.Zero, d("0.37")},
		},
		medicareAdditional: d("250000"),
	},
}

// DefaultStateRates are approximate flat effective rates on wage income for
// a physician-level salary, in percent, keyed by full state name.
var DefaultStateRates = map[string]float64{
	"Alabama":              5.0,
	"Alaska":               0,
	"Arizona":              2.5,
	"Arkansas":             4.4,
	"California":           9.3,
	"Colorado":             4.4,
	"Connecticut":          6.5,
	"Delaware":             6.6,
	"District of Columbia": 8.5,
	"Florida":              0,
	"Georgia":              5.39,
	"Hawaii":               8.25,
	"Idaho":                5.8,
	"Illinois":             4.95,
	"Indiana":              3.05,
	"Iowa":                 5.7,
	"Kansas":               5.7,
	"Kentucky":             4.0,
	"Louisiana":            4.25,
	"Maine":                7.15,
	"Maryland":             5.75,
	"Massachusetts":        5.0,
	"Michigan":             4.25,
	"Minnesota":            7.85,
	"Mississippi":          4.7,
	"Missouri":             4.8,
	"Montana":              5.9,
	"Nebraska":             5.84,
	"Nevada":               0,
	"New Hampshire":        0,
	"New Jersey":           6.37,
	"New Mexico":           4.9,
	"New York":             6.85,
	"North Carolina":       4.5,
	"North Dakota":         2.5,
	"Ohio":                 3.5,
	"Oklahoma":             4.75,
	"Oregon":               8.75,
	"Pennsylvania":         3.07,
	"Rhode Island":         5.99,
	"South Carolina":       6.4,
	"South Dakota":         0,
	"Tennessee":            0,
	"Texas":                0,
	"Utah":                 4.65,
	"Vermont":              7.6,
	"Virginia":             5.75,
	"Washington":           0,
	"West Virginia":        5.12,
	"Wisconsin":            6.27,
	"Wyoming":              0,
}
