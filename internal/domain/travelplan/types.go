package travelplan

// Preferences is the structured trip-preference object a plan is generated
// from. The two optional slices default to empty, never nil, before the
// builder sees them.
type Preferences struct {
	StartDate          string   `json:"start_date"`
	EndDate            string   `json:"end_date"`
	Preferences        []string `json:"preferences"`
	Pace               string   `json:"pace"`
	MandatoryLocations []string `json:"mandatory_locations"`
	NumTravelers       int      `json:"num_travelers"`
	ExcludedLocations  []string `json:"excluded_locations"`
	SpecificInterests  []string `json:"specific_interests"`
}

// PlanDay is one day of a generated itinerary.
type PlanDay struct {
	Date       string   `json:"date"`
	Activities []string `json:"activities"`
}

// Plan is a multi-day travel itinerary.
type Plan struct {
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	NumTravelers int       `json:"num_travelers"`
	Days         []PlanDay `json:"days"`
}
