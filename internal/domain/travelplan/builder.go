package travelplan

import (
	"context"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// activitiesPerDay maps pace onto how many stops a day carries.
var activitiesPerDay = map[string]int{
	"relaxed":  1,
	"moderate": 2,
	"packed":   3,
}

// ItineraryBuilder is the built-in generation collaborator: a
// deterministic day-by-day spread of the mandatory locations across the
// date range, honoring the pace and skipping excluded locations.
type ItineraryBuilder struct{}

func NewItineraryBuilder() *ItineraryBuilder {
	return &ItineraryBuilder{}
}

func (b *ItineraryBuilder) Build(_ context.Context, prefs Preferences) (*Plan, error) {
	start, err := time.Parse(dateLayout, prefs.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parse start date: %w", err)
	}
	end, err := time.Parse(dateLayout, prefs.EndDate)
	if err != nil {
		return nil, fmt.Errorf("parse end date: %w", err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s precedes start date %s", prefs.EndDate, prefs.StartDate)
	}

	excluded := make(map[string]bool, len(prefs.ExcludedLocations))
	for _, loc := range prefs.ExcludedLocations {
		excluded[loc] = true
	}

	var stops []string
	for _, loc := range prefs.MandatoryLocations {
		if !excluded[loc] {
			stops = append(stops, loc)
		}
	}
	stops = append(stops, prefs.SpecificInterests...)

	perDay := activitiesPerDay[prefs.Pace]
	if perDay == 0 {
		perDay = 2
	}

	plan := &Plan{
		StartDate:    prefs.StartDate,
		EndDate:      prefs.EndDate,
		NumTravelers: prefs.NumTravelers,
	}

	next := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		activities := make([]string, 0, perDay)
		for i := 0; i < perDay && next < len(stops); i++ {
			activities = append(activities, stops[next])
			next++
		}
		plan.Days = append(plan.Days, PlanDay{
			Date:       day.Format(dateLayout),
			Activities: activities,
		})
	}

	return plan, nil
}
