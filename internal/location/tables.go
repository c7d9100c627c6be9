package location

// DefaultTable returns the built-in correction and alias table. Deployments
// can overlay additional entries from a YAML file (see internal/tables).
func DefaultTable() *Table {
	return &Table{
		Corrections: map[string]string{
			// Pacific Northwest misspellings
			"tukwilla":  "Tukwila, WA",
			"tukwila":   "Tukwila, WA",
			"seatle":    "Seattle, WA",
			"seattel":   "Seattle, WA",
			"tacome":    "Tacoma, WA",
			"takoma":    "Tacoma, WA",
			"spokan":    "Spokane, WA",
			"bellview":  "Bellevue, WA",
			"portland or": "Portland, OR",

			// Common shorthand
			"nyc":          "New York, NY",
			"new york city": "New York, NY",
			"sf":           "San Francisco, CA",
			"san fran":     "San Francisco, CA",
			"philly":       "Philadelphia, PA",
			"vegas":        "Las Vegas, NV",
			"nola":         "New Orleans, LA",
			"chi town":     "Chicago, IL",

			// Frequent misspellings elsewhere
			"pheonix":      "Phoenix, AZ",
			"cincinatti":   "Cincinnati, OH",
			"pittsburg":    "Pittsburgh, PA",
			"albuqerque":   "Albuquerque, NM",
			"tuscon":       "Tucson, AZ",
		},
		Aliases: map[string]string{
			"la":            "los angeles",
			"los angelos":   "los angeles",
			"nyc":           "new york",
			"new york city": "new york",
			"sf":            "san francisco",
			"san fran":      "san francisco",
			"philly":        "philadelphia",
			"vegas":         "las vegas",
			"nola":          "new orleans",
			"st. louis":     "st louis",
			"saint louis":   "st louis",
			"ft worth":      "fort worth",
			"ft. worth":     "fort worth",
		},
	}
}

// Default returns a Normalizer built from the built-in table.
func Default() *Normalizer {
	return New(DefaultTable())
}
