// Package giterror classifies failures returned by the GitHub GraphQL client
// so the retry layer can pick the right fixed delay: a short one for transient
// transport problems, a longer one for upstream HTTP/API failures.
package giterror
