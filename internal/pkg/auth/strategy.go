package auth

import "time"

// Strategy issues and verifies staff access tokens.
type Strategy interface {
	IssueToken(subject string) (string, error)
	ParseToken(token string) (string, error)
	Name() string
}

// Options tunes token issuance.
type Options struct {
	TTL time.Duration
}
