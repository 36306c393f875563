package datasource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeLenient(t *testing.T) {
	type reading struct {
		Temp     *float64 `json:"temp"`
		Humidity *float64 `json:"humidity"`
		Station  string   `json:"station"`
	}

	tests := []struct {
		name     string
		payload  string
		ok       bool
		temp     bool
		humidity bool
	}{
		{"well formed", `{"temp":31,"humidity":70,"station":"MAA"}`, true, true, true},
		{"mistyped field", `{"temp":31,"humidity":"70","station":"MAA"}`, true, true, false},
		{"mistyped first field", `{"temp":"31","humidity":70,"station":"MAA"}`, true, false, true},
		{"wrong top-level shape", `[1,2,3]`, true, false, false},
		{"not json", `<html>`, false, false, false},
		{"truncated", `{"temp":31,`, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r reading
			assert.Equal(t, tt.ok, DecodeLenient(RawPayload(tt.payload), &r))
			assert.Equal(t, tt.temp, r.Temp != nil)
			assert.Equal(t, tt.humidity, r.Humidity != nil)
		})
	}
}
