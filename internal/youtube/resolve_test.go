package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_BareID(t *testing.T) {
	id, ok := Resolve("84WIaK3bl_s")
	assert.True(t, ok)
	assert.Equal(t, "84WIaK3bl_s", id)
}

func TestResolve_FixedPoint(t *testing.T) {
	// Resolving an already-resolved ID must return it unchanged.
	first, ok := Resolve("https://youtu.be/84WIaK3bl_s")
	assert.True(t, ok)

	second, ok := Resolve(first)
	assert.True(t, ok)
	assert.Equal(t, first, second)
}

func TestResolve_URLShapes(t *testing.T) {
	tests := []struct {
		name string
		ref  string
	}{
		{"watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"watch extra params", "https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ&t=42"},
		{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"shortlink", "https://youtu.be/dQw4w9WgXcQ"},
		{"v path", "https://www.youtube.com/v/dQw4w9WgXcQ"},
		{"e path", "https://www.youtube.com/e/dQw4w9WgXcQ"},
		{"no scheme", "youtu.be/dQw4w9WgXcQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := Resolve(tt.ref)
			assert.True(t, ok)
			assert.Equal(t, "dQw4w9WgXcQ", id)
		})
	}
}

func TestResolve_Invalid(t *testing.T) {
	tests := []struct {
		name string
		ref  string
	}{
		{"empty", ""},
		{"too short", "abc123"},
		{"twelve chars", "abcdefghijkl"},
		{"plain url", "https://example.com/audio.mp3"},
		{"watch without id", "https://www.youtube.com/watch?v="},
		{"illegal characters", "dQw4w9WgXc!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := Resolve(tt.ref)
			assert.False(t, ok)
			assert.Empty(t, id)
		})
	}
}

func TestResolve_Deterministic(t *testing.T) {
	ref := "https://www.youtube.com/watch?v=3JZ_D3ELwOQ"
	a, okA := Resolve(ref)
	b, okB := Resolve(ref)
	assert.Equal(t, okA, okB)
	assert.Equal(t, a, b)
}

func TestThumbnailURL(t *testing.T) {
	assert.Equal(t, "https://img.youtube.com/vi/84WIaK3bl_s/0.jpg", ThumbnailURL("84WIaK3bl_s"))
}

func TestEmbedURL(t *testing.T) {
	assert.Equal(t,
		"https://www.youtube.com/embed/84WIaK3bl_s?autoplay=1&enablejsapi=1",
		EmbedURL("84WIaK3bl_s", true))
	assert.Equal(t,
		"https://www.youtube.com/embed/84WIaK3bl_s?autoplay=0&enablejsapi=1",
		EmbedURL("84WIaK3bl_s", false))
}
