package ports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKnown(t *testing.T) {
	p := Lookup("  Singapore ")
	assert.Equal(t, "Port of Singapore", p.Name)
	assert.Equal(t, "Asia/Singapore", p.Timezone)
	require.NotNil(t, p.Lat)
	assert.InDelta(t, 1.2966, *p.Lat, 1e-6)
	assert.True(t, Known("ROTTERDAM"))
}

func TestLookupUnknown(t *testing.T) {
	p := Lookup("Port Elizabeth")
	assert.Equal(t, "Port Elizabeth", p.Name)
	assert.Equal(t, "Unknown", p.Country)
	assert.Equal(t, "UTC", p.Timezone)
	assert.Nil(t, p.Lat)
	assert.False(t, Known("Port Elizabeth"))
}

func TestDistanceNM(t *testing.T) {
	sin, rot := Lookup("singapore"), Lookup("rotterdam")
	d := DistanceNM(*sin.Lat, *sin.Lon, *rot.Lat, *rot.Lon)
	// Roughly 5,700 nm great-circle.
	assert.InDelta(t, 5700, d, 150)

	assert.Zero(t, DistanceNM(1.5, 100, 1.5, 100))
}
