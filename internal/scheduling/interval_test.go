package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(h, m int) time.Time {
	return time.Date(2025, 10, 15, h, m, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    Interval
		b    Interval
		want bool
	}{
		{
			name: "adjacent intervals do not overlap",
			a:    Interval{Start: at(9, 0), End: at(10, 0)},
			b:    Interval{Start: at(10, 0), End: at(11, 0)},
			want: false,
		},
		{
			name: "partial overlap",
			a:    Interval{Start: at(9, 0), End: at(10, 0)},
			b:    Interval{Start: at(9, 30), End: at(10, 30)},
			want: true,
		},
		{
			name: "identical intervals overlap",
			a:    Interval{Start: at(9, 0), End: at(10, 0)},
			b:    Interval{Start: at(9, 0), End: at(10, 0)},
			want: true,
		},
		{
			name: "containment",
			a:    Interval{Start: at(9, 0), End: at(12, 0)},
			b:    Interval{Start: at(10, 0), End: at(11, 0)},
			want: true,
		},
		{
			name: "disjoint intervals",
			a:    Interval{Start: at(9, 0), End: at(10, 0)},
			b:    Interval{Start: at(14, 0), End: at(15, 0)},
			want: false,
		},
		{
			name: "adjacent in reverse order",
			a:    Interval{Start: at(10, 0), End: at(11, 0)},
			b:    Interval{Start: at(9, 0), End: at(10, 0)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			// Пересечение симметрично
			assert.Equal(t, tt.want, Overlaps(tt.b, tt.a))
		})
	}
}

func TestInterval_Label(t *testing.T) {
	assert.Equal(t, "09:00 - 09:30", Interval{Start: at(9, 0), End: at(9, 30)}.Label())

	// Слот, заканчивающийся в полночь, отображает конец как "00:00"
	midnight := at(23, 30).Add(30 * time.Minute)
	assert.Equal(t, "23:30 - 00:00", Interval{Start: at(23, 30), End: midnight}.Label())
}
