package travelplan_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"bagtrack-server-go/internal/domain/travelplan"
	platformerrors "bagtrack-server-go/internal/platform/errors"
)

// capturingBuilder records the preferences it is invoked with.
type capturingBuilder struct {
	prefs  *travelplan.Preferences
	result *travelplan.Plan
	err    error
}

func (b *capturingBuilder) Build(_ context.Context, prefs travelplan.Preferences) (*travelplan.Plan, error) {
	b.prefs = &prefs
	return b.result, b.err
}

func validPreferences() travelplan.Preferences {
	return travelplan.Preferences{
		StartDate:          "2026-09-01",
		EndDate:            "2026-09-03",
		Preferences:        []string{"culture"},
		Pace:               "moderate",
		MandatoryLocations: []string{"Kandy", "Galle"},
		NumTravelers:       2,
	}
}

func TestService_Generate_MissingFields(t *testing.T) {
	builder := &capturingBuilder{}
	svc := travelplan.NewService(builder)

	mutations := map[string]func(*travelplan.Preferences){
		"start_date":          func(p *travelplan.Preferences) { p.StartDate = "" },
		"end_date":            func(p *travelplan.Preferences) { p.EndDate = "" },
		"preferences":         func(p *travelplan.Preferences) { p.Preferences = nil },
		"pace":                func(p *travelplan.Preferences) { p.Pace = "" },
		"mandatory_locations": func(p *travelplan.Preferences) { p.MandatoryLocations = nil },
		"num_travelers":       func(p *travelplan.Preferences) { p.NumTravelers = 0 },
	}

	for field, mutate := range mutations {
		t.Run(field, func(t *testing.T) {
			prefs := validPreferences()
			mutate(&prefs)

			plan, err := svc.Generate(context.Background(), prefs)

			assert.Nil(t, plan)
			assert.True(t, platformerrors.IsKind(err, platformerrors.KindValidation))
			assert.Equal(t, "missing required fields", platformerrors.ClientMessage(err))
			assert.Nil(t, builder.prefs, "builder must not run on invalid input")
		})
	}
}

func TestService_Generate_DefaultsOptionalFields(t *testing.T) {
	builder := &capturingBuilder{result: &travelplan.Plan{}}
	svc := travelplan.NewService(builder)

	_, err := svc.Generate(context.Background(), validPreferences())

	assert.NoError(t, err)
	// Omitted optional fields arrive at the builder as empty slices.
	assert.NotNil(t, builder.prefs.ExcludedLocations)
	assert.Len(t, builder.prefs.ExcludedLocations, 0)
	assert.NotNil(t, builder.prefs.SpecificInterests)
	assert.Len(t, builder.prefs.SpecificInterests, 0)
}

func TestService_Generate_BuilderFailureNormalized(t *testing.T) {
	builder := &capturingBuilder{err: errors.New("model quota exceeded for key sk-123")}
	svc := travelplan.NewService(builder)

	plan, err := svc.Generate(context.Background(), validPreferences())

	assert.Nil(t, plan)
	assert.True(t, platformerrors.IsKind(err, platformerrors.KindInternal))
	assert.Equal(t, "error generating travel plan", platformerrors.ClientMessage(err))
}

func TestItineraryBuilder_Build(t *testing.T) {
	builder := travelplan.NewItineraryBuilder()

	prefs := validPreferences()
	prefs.ExcludedLocations = []string{"Galle"}
	prefs.SpecificInterests = []string{"tea estate"}

	plan, err := builder.Build(context.Background(), prefs)

	assert.NoError(t, err)
	assert.Len(t, plan.Days, 3)
	assert.Equal(t, "2026-09-01", plan.Days[0].Date)
	assert.Equal(t, "2026-09-03", plan.Days[2].Date)
	assert.Equal(t, 2, plan.NumTravelers)

	var all []string
	for _, day := range plan.Days {
		all = append(all, day.Activities...)
	}
	assert.Contains(t, all, "Kandy")
	assert.Contains(t, all, "tea estate")
	assert.NotContains(t, all, "Galle")
}

func TestItineraryBuilder_Build_InvalidRange(t *testing.T) {
	builder := travelplan.NewItineraryBuilder()

	prefs := validPreferences()
	prefs.StartDate = "2026-09-05"
	prefs.EndDate = "2026-09-01"

	_, err := builder.Build(context.Background(), prefs)
	assert.Error(t, err)
}
