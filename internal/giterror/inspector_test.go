package giterror

import (
	"errors"
	"fmt"
	"net/url"
	"testing"
)

func TestIsTransportError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "connection refused",
			err:  errors.New("Post \"https://api.github.com/graphql\": dial tcp: connection refused"),
			want: true,
		},
		{
			name: "connection reset",
			err:  errors.New("read tcp: connection reset by peer"),
			want: true,
		},
		{
			name: "malformed chunked response",
			err:  errors.New("malformed chunked encoding"),
			want: true,
		},
		{
			name: "unexpected EOF mid-body",
			err:  errors.New("unexpected EOF"),
			want: true,
		},
		{
			name: "wrapped url.Error",
			err:  fmt.Errorf("query failed: %w", &url.Error{Op: "Post", URL: "https://api.github.com/graphql", Err: errors.New("broken pipe")}),
			want: true,
		},
		{
			name: "bad status is not a transport error",
			err:  errors.New("non-200 OK status code: 502 Bad Gateway"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsTransportError(tt.err); got != tt.want {
				t.Errorf("IsTransportError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsStatusError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "non-200 from graphql client",
			err:  errors.New("non-200 OK status code: 502 Bad Gateway body: \"\""),
			want: true,
		},
		{
			name: "rate limited",
			err:  errors.New("API rate limit exceeded"),
			want: true,
		},
		{
			name: "service unavailable",
			err:  errors.New("503 Service Unavailable"),
			want: true,
		},
		{
			name: "plain transport failure",
			err:  errors.New("dial tcp: no such host"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsStatusError(tt.err); got != tt.want {
				t.Errorf("IsStatusError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
