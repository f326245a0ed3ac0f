package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bagtrack-server-go/internal/platform/errors"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		input      Input
		wantID     string
		wantLat    float64
		wantLng    float64
		wantLoc    bool
		wantErr    bool
		wantErrMsg string
	}{
		{
			name:       "neither id nor scan",
			input:      Input{},
			wantErr:    true,
			wantErrMsg: "must supply a device id or scan",
		},
		{
			name:   "typed id only",
			input:  Input{DeviceID: "356938035643809"},
			wantID: "356938035643809",
		},
		{
			name:   "typed id trimmed",
			input:  Input{DeviceID: "  D42  "},
			wantID: "D42",
		},
		{
			name:       "blank typed id",
			input:      Input{DeviceID: "   "},
			wantErr:    true,
			wantErrMsg: "device id required",
		},
		{
			name:       "scan that is not structured data",
			input:      Input{Scanned: "not-json"},
			wantErr:    true,
			wantErrMsg: "invalid scan format",
		},
		{
			name:       "scan missing device id",
			input:      Input{Scanned: `{"location":{"lat":1,"lng":2}}`},
			wantErr:    true,
			wantErrMsg: "device id required",
		},
		{
			name:    "scan with location",
			input:   Input{Scanned: `{"deviceId":"D1","location":{"lat":1,"lng":2}}`},
			wantID:  "D1",
			wantLoc: true,
			wantLat: 1,
			wantLng: 2,
		},
		{
			name:   "scan without location",
			input:  Input{Scanned: `{"deviceId":"D2"}`},
			wantID: "D2",
		},
		{
			name:    "scan takes precedence over typed id",
			input:   Input{DeviceID: "typed", Scanned: `{"deviceId":"scanned"}`},
			wantID:  "scanned",
			wantLoc: false,
		},
		{
			name:       "scan present but unparseable ignores typed id",
			input:      Input{DeviceID: "typed", Scanned: "{broken"},
			wantErr:    true,
			wantErrMsg: "invalid scan format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.IsKind(err, errors.KindValidation))
				assert.Equal(t, tt.wantErrMsg, errors.ClientMessage(err))
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantID, got.DeviceID)
			if tt.wantLoc {
				assert.NotNil(t, got.Location)
				assert.Equal(t, tt.wantLat, got.Location.Lat)
				assert.Equal(t, tt.wantLng, got.Location.Lng)
			} else {
				assert.Nil(t, got.Location)
			}
		})
	}
}
