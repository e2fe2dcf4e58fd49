package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "length mismatch",
			err:  New(ErrCodeLengthMismatch, "x and y contain a different number of values: %d != %d", 5, 4),
			want: "LENGTH_MISMATCH: x and y contain a different number of values: 5 != 4",
		},
		{
			name: "wrapped write failure",
			err:  Wrap(ErrCodeOutput, errors.New("disk full"), "write %s", "out.png"),
			want: "OUTPUT: write out.png: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(ErrCodeImageLoad, fs.ErrNotExist, "open %s", "sample_image.png")

	if err.Code != ErrCodeImageLoad {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeImageLoad)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is should see the wrapped fs.ErrNotExist")
	}
	if errors.Unwrap(err) != fs.ErrNotExist {
		t.Errorf("Unwrap() = %v", errors.Unwrap(err))
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeDegenerateData, "singular covariance"), ErrCodeDegenerateData, true},
		{"other code", New(ErrCodeInvalidInput, "negative samples"), ErrCodeLengthMismatch, false},
		{"outermost code wins", Wrap(ErrCodeOutput, New(ErrCodeInvalidPath, "inner"), "outer"), ErrCodeInvalidPath, false},
		{"behind fmt wrapping", fmt.Errorf("render: %w", New(ErrCodeImageLoad, "bad png")), ErrCodeImageLoad, true},
		{"plain error", errors.New("plain"), ErrCodeInvalidInput, false},
		{"nil", nil, ErrCodeInvalidInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCodeAndUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode Code
		wantMsg  string
	}{
		{"coded", New(ErrCodeInvalidConfig, "alpha must be in (0, 1]"), ErrCodeInvalidConfig, "alpha must be in (0, 1]"},
		{"coded behind fmt", fmt.Errorf("load: %w", New(ErrCodeInvalidFormat, "bad toml")), ErrCodeInvalidFormat, "bad toml"},
		{"plain", errors.New("plain error"), "", "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.wantCode {
				t.Errorf("GetCode() = %q, want %q", got, tt.wantCode)
			}
			if got := UserMessage(tt.err); got != tt.wantMsg {
				t.Errorf("UserMessage() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %q", got)
	}
}
