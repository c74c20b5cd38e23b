package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MWPuppire/votd/internal/netbible"
	"github.com/MWPuppire/votd/internal/verse"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "timeout through fetch wrap",
			err:  fmt.Errorf("%w: %w", verse.ErrFetchFailed, netbible.ErrTimeout),
			want: "timeout exceeded",
		},
		{
			name: "connect through fetch wrap",
			err:  fmt.Errorf("%w: %w", verse.ErrFetchFailed, netbible.ErrConnect),
			want: "couldn't connect to the server; are you connected to the Internet?",
		},
		{
			name: "error status through fetch wrap",
			err:  fmt.Errorf("%w: %w", verse.ErrFetchFailed, netbible.ErrStatus),
			want: "the verse service returned an error; try again later",
		},
		{
			name: "bare timeout",
			err:  netbible.ErrTimeout,
			want: "timeout exceeded",
		},
		{
			name: "anything else verbatim",
			err:  errors.New("configuration file already exists, use --force to overwrite"),
			want: "configuration file already exists, use --force to overwrite",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, userMessage(tt.err))
		})
	}
}
