// Package email validates contact addresses supplied on submissions.
package email

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// maxLength is the SMTP path limit for a forward address.
const maxLength = 254

var validate = validator.New()

// Valid reports whether addr is a single well-formed address.
func Valid(addr string) bool {
	if addr == "" || len(addr) > maxLength {
		return false
	}
	if strings.ContainsAny(addr, " \t\r\n") {
		return false
	}
	return validate.Var(addr, "email") == nil
}

// Domain returns the lower-cased part after the last '@', or "" when absent.
func Domain(addr string) string {
	at := strings.LastIndexByte(addr, '@')
	if at < 0 || at == len(addr)-1 {
		return ""
	}
	return strings.ToLower(addr[at+1:])
}
