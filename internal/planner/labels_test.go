package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimelineLabels(t *testing.T) {
	tests := []struct {
		name string
		date string
		want []string
	}{
		{
			name: "christmas",
			date: "2025-12-25",
			want: []string{"Nov 13 – Nov 27", "Nov 27 – Dec 11", "Dec 18 – Dec 24", "Dec 25 (Event Day)"},
		},
		{
			name: "crosses year boundary",
			date: "2026-01-20",
			want: []string{"Dec 09 – Dec 23", "Dec 23 – Jan 06", "Jan 13 – Jan 19", "Jan 20 (Event Day)"},
		},
		{
			name: "surrounding whitespace",
			date: " 2025-07-04 ",
			want: []string{"May 23 – Jun 06", "Jun 06 – Jun 20", "Jun 27 – Jul 03", "Jul 04 (Event Day)"},
		},
		{
			name: "unparseable",
			date: "bad-date",
			want: []string{"6–4 Weeks Before", "4–2 Weeks Before", "1 Week Before", "Event Day"},
		},
		{
			name: "empty",
			date: "",
			want: []string{"6–4 Weeks Before", "4–2 Weeks Before", "1 Week Before", "Event Day"},
		},
		{
			name: "wrong layout",
			date: "12/25/2025",
			want: []string{"6–4 Weeks Before", "4–2 Weeks Before", "1 Week Before", "Event Day"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimelineLabels(tt.date))
		})
	}
}

func TestTimelineLabels_Pure(t *testing.T) {
	first := TimelineLabels("2025-12-25")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, TimelineLabels("2025-12-25"))
	}
}

func TestTimelineLabels_FixedLabelsNotShared(t *testing.T) {
	labels := TimelineLabels("nope")
	labels[0] = "mutated"

	assert.Equal(t, "6–4 Weeks Before", TimelineLabels("nope")[0])
}
