package placeholder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForIndex_Cycles(t *testing.T) {
	t.Parallel()

	assert.Len(t, images, 6)
	assert.Equal(t, images[0], ForIndex(0))
	assert.Equal(t, images[5], ForIndex(5))
	assert.Equal(t, images[0], ForIndex(6))
	assert.Equal(t, images[1], ForIndex(-1))
	for _, img := range images {
		assert.True(t, IsStock(img), img)
	}
}

func TestIsStock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want bool
	}{
		{"https://images.unsplash.com/photo-1?w=400", true},
		{"https://unsplash.com/photos/abc", true},
		{"https://upload.wikimedia.org/thumb/a.jpg", false},
		{"https://notunsplash.com.example.org/a.jpg", false},
		{"images.unsplash.com/photo-1", true},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsStock(tt.url))
		})
	}
}

func TestIsReal(t *testing.T) {
	t.Parallel()

	assert.True(t, IsReal("https://upload.wikimedia.org/a.jpg"))
	assert.False(t, IsReal(ForIndex(2)))
	assert.False(t, IsReal(""))
}
