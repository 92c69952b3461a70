package giterror

import (
	"errors"
	"net"
	"net/url"
	"strings"
)

// Inspector provides methods for analyzing GitHub API errors.
type Inspector interface {
	// IsTransportError returns true if the error is a network-level failure
	// (dropped connection, malformed chunked response, DNS, timeout).
	IsTransportError(err error) bool

	// IsStatusError returns true if the error represents a non-success
	// response from the API (bad status code, rate limit, server error).
	IsStatusError(err error) bool
}

// GitHubErrorInspector implements the Inspector interface for GitHub API errors.
type GitHubErrorInspector struct{}

// NewInspector creates a new GitHubErrorInspector.
func NewInspector() Inspector {
	return &GitHubErrorInspector{}
}

// IsTransportError checks if the error is a network transport error.
func (i *GitHubErrorInspector) IsTransportError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "broken pipe") ||
		strings.Contains(errStr, "unexpected eof") ||
		strings.Contains(errStr, "malformed chunked encoding") ||
		strings.Contains(errStr, "protocol error") ||
		strings.Contains(errStr, "tls handshake") ||
		strings.Contains(errStr, "network is unreachable")
}

// IsStatusError checks if the error is a non-success API response.
func (i *GitHubErrorInspector) IsStatusError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "non-200 ok status code") ||
		strings.Contains(errStr, "status code") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "bad gateway") ||
		strings.Contains(errStr, "service unavailable") ||
		strings.Contains(errStr, "502") ||
		strings.Contains(errStr, "503")
}
