package model

// FundamentalRatios is the canonical ratio set for one symbol. Ratios that
// the provider did not report are absent from the map, never zero-filled.
type FundamentalRatios struct {
	Type     SecurityType       `json:"type"`
	Ratios   map[string]float64 `json:"ratios"`
	Category string             `json:"category,omitempty"` // etf/fund only
}

// Get returns the named ratio and whether it is present.
func (f FundamentalRatios) Get(name string) (float64, bool) {
	v, ok := f.Ratios[name]
	return v, ok
}
