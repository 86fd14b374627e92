package main

import (
	"fmt"
	"io"

	"github.com/lithoprint/printdesk/internal/pkg/auth"
)

// issueStaffToken mints a signed staff token and writes it to w. Operators
// run `printdesk issue-staff-token` against the deployed secret and paste
// the value into the dashboard client.
func issueStaffToken(w io.Writer, secret, subject string) error {
	strategy := auth.NewHMACStrategy(secret, auth.Options{})
	token, err := strategy.IssueToken(subject)
	if err != nil {
		return fmt.Errorf("issue staff token: %w", err)
	}
	_, err = fmt.Fprintln(w, token)
	return err
}
