package handlers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"rekakata/internal/groq"
	"rekakata/internal/platform"
	"rekakata/internal/validate"
)

func TestSessionID(t *testing.T) {
	assert.Equal(t, "tg-42", sessionID(42))
	assert.Equal(t, "tg-0", sessionID(0))
}

func TestErrorReply(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "empty input",
			err:  validate.ErrEmptyInput,
			want: "masih kosong",
		},
		{
			name: "wrapped empty input",
			err:  fmt.Errorf("validate: %w", validate.ErrEmptyInput),
			want: "masih kosong",
		},
		{
			name: "too long",
			err:  fmt.Errorf("%w: 2500 characters", validate.ErrInputTooLong),
			want: "terlalu panjang",
		},
		{
			name: "unsupported platform",
			err:  fmt.Errorf("%w: %q", platform.ErrUnsupportedPlatform, "snapchat"),
			want: "belum didukung",
		},
		{
			name: "rate limited",
			err:  &groq.GenerationError{Reason: groq.ReasonRateLimited, Err: errors.New("429")},
			want: "banyak permintaan",
		},
		{
			name: "unauthorized",
			err:  &groq.GenerationError{Reason: groq.ReasonUnauthorized, Err: errors.New("401")},
			want: "Konfigurasi API",
		},
		{
			name: "timeout",
			err:  &groq.GenerationError{Reason: groq.ReasonTimeout, Err: errors.New("deadline")},
			want: "kehabisan waktu",
		},
		{
			name: "unknown generation failure",
			err:  &groq.GenerationError{Reason: groq.ReasonUnknown, Err: errors.New("boom")},
			want: "saat generate",
		},
		{
			name: "anything else",
			err:  errors.New("disk full"),
			want: "coba lagi nanti",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Contains(t, errorReply(tc.err), tc.want)
		})
	}
}
