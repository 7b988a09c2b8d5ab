package shared

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name        string
		requestBody string
		wantErr     bool
		errContains string
	}{
		{
			name:        "valid json",
			requestBody: `{"title": "ship it", "order": 2}`,
			wantErr:     false,
		},
		{
			name:        "invalid json",
			requestBody: `{"title": "ship it", "order": 2,}`, // trailing comma
			wantErr:     true,
			errContains: "invalid character",
		},
		{
			name:        "empty body",
			requestBody: "",
			wantErr:     true,
			errContains: "EOF",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(
				http.MethodPost,
				"/test",
				bytes.NewBufferString(tc.requestBody),
			)

			var target struct {
				Title string `json:"title"`
				Order int    `json:"order"`
			}
			err := DecodeJSON(req, &target)

			if tc.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.errContains)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "ship it", target.Title)
			assert.Equal(t, 2, target.Order)
		})
	}
}

// errorReader always fails, standing in for a broken request body.
type errorReader struct{}

func (er errorReader) Read(p []byte) (n int, err error) {
	return 0, io.ErrUnexpectedEOF
}

func TestDecodeJSONWithReadError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/test", errorReader{})

	var target struct{}
	err := DecodeJSON(req, &target)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected EOF")
}

// selfValidating exercises the Validate() error preference over struct tags.
type selfValidating struct {
	Title string `validate:"required"`
}

func (v *selfValidating) Validate() error {
	if v.Title == "invalid" {
		return &validator.ValidationErrors{}
	}
	return nil
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     interface{}
		wantErr bool
	}{
		{
			name:    "valid request with validator method",
			req:     &selfValidating{Title: "ship it"},
			wantErr: false,
		},
		{
			name:    "invalid request with validator method",
			req:     &selfValidating{Title: "invalid"},
			wantErr: true,
		},
		{
			name: "tagged struct without method",
			req: &struct {
				Title string `validate:"required"`
			}{Title: "ship it"},
			wantErr: false,
		},
		{
			name: "tagged struct failing",
			req: &struct {
				Title string `validate:"required"`
			}{},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRequest(tc.req)

			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
