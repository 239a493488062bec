package layout

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func lines(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprint(i)
	}
	return out
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name       string
		n          int
		height     int
		focus      int
		offset     int
		wantFirst  string
		wantOffset int
		wantLen    int
	}{
		{"fits", 5, 10, 3, 4, "0", 0, 5},
		{"focus below", 20, 5, 12, 0, "8", 8, 5},
		{"focus above", 20, 5, 2, 10, "2", 2, 5},
		{"keeps offset", 20, 5, 11, 9, "9", 9, 5},
		{"clamps end", 20, 5, 19, 30, "15", 15, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, off := Window(lines(tt.n), tt.height, tt.focus, tt.offset)
			assert.Len(t, got, tt.wantLen)
			assert.Equal(t, tt.wantFirst, got[0])
			assert.Equal(t, tt.wantOffset, off)
		})
	}
}

func TestWindowZeroHeight(t *testing.T) {
	got, off := Window(lines(3), 0, 0, 0)
	assert.Nil(t, got)
	assert.Zero(t, off)
}

func TestIsTooSmall(t *testing.T) {
	assert.True(t, IsTooSmall(MinWidth-1, MinHeight))
	assert.True(t, IsTooSmall(MinWidth, MinHeight-1))
	assert.False(t, IsTooSmall(MinWidth, MinHeight))
}

func TestRenderHeaderAndFooter(t *testing.T) {
	header := RenderHeader("Alan Turing", "localhost:8000", 100)
	assert.Contains(t, header, "Wiki Quiz")
	assert.Contains(t, header, "Alan Turing")
	assert.Contains(t, header, "localhost:8000")

	footer := RenderFooter([]KeyHint{{Key: "Enter", Description: "Generate"}}, 100)
	assert.Contains(t, footer, "Generate")
}
