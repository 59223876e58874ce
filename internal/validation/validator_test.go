package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubugingoapp/ubugingo-server/internal/errors"
	"github.com/ubugingoapp/ubugingo-server/internal/validation"
)

type chapterUpload struct {
	Book    string `json:"book" validate:"required"`
	Chapter int    `json:"chapter" validate:"required,min=1"`
	URL     string `json:"url" validate:"required"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	err := v.Validate(chapterUpload{Book: "matthew", Chapter: 5, URL: "https://youtu.be/84WIaK3bl_s"})
	assert.NoError(t, err)
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name       string
		req        chapterUpload
		wantErrMsg string
	}{
		{
			name:       "missing book",
			req:        chapterUpload{Chapter: 1, URL: "84WIaK3bl_s"},
			wantErrMsg: "book",
		},
		{
			name:       "missing url",
			req:        chapterUpload{Book: "mark", Chapter: 1},
			wantErrMsg: "url",
		},
		{
			name:       "zero chapter",
			req:        chapterUpload{Book: "mark", URL: "84WIaK3bl_s"},
			wantErrMsg: "chapter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrValidation))
			assert.Contains(t, err.Error(), tt.wantErrMsg)
		})
	}
}

func TestValidator_UsesJSONFieldNames(t *testing.T) {
	v := validation.New()

	type renamed struct {
		VideoURL string `json:"url" validate:"required"`
	}

	err := v.Validate(renamed{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "url ")
	assert.NotContains(t, err.Error(), "VideoURL")
}
