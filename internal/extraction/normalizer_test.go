package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace collapse", "vessel  arrived\n\tat   berth", "vessel arrived at berth"},
		{"dash date separator", "arrived on 15-03-2024", "arrived on 15/03/2024"},
		{"dot date separator", "arrived on 15.03.2024", "arrived on 15/03/2024"},
		{"dot time with hrs", "commenced at 18.45 hrs", "commenced at 18:45"},
		{"compact time with hrs", "pilot embarked 0630 hrs", "pilot embarked 06:30"},
		{"already canonical", "loading commenced at 11:00 on 15/03/2024", "loading commenced at 11:00 on 15/03/2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"MV OCEAN STAR arrived at Singapore anchorage on 15-03-2024 at 06.45 hrs.",
		"Loading suspended 1430 hrs due to rain. Resumed 1600 hrs.",
		"no temporal content at all",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", in)
	}
}
