package model

import "github.com/shopspring/decimal"

// DateTimeLayout is the second-precision layout used for sale dates.
const DateTimeLayout = "2006-01-02 15:04:05"

// DateLayout is the day prefix of DateTimeLayout, used by the daily report.
const DateLayout = "2006-01-02"

func init() {
	// Snapshot files and API responses carry money as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}
