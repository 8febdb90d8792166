// Package validator holds the request checks run before any store access.
// Every function is pure: it inspects a decoded request body and reports the
// problems it found, in field order.
package validator

import (
    "regexp"
    "strings"
    "time"
)

// Result collects validation messages in the order they were found.
type Result struct {
    Messages []string
}

// OK reports whether no problem was recorded.
func (r Result) OK() bool { return len(r.Messages) == 0 }

// Error joins the messages with single spaces.
func (r Result) Error() string { return strings.Join(r.Messages, " ") }

func (r *Result) add(msg string) { r.Messages = append(r.Messages, msg) }

// check records msg when cond is false.
func (r *Result) check(cond bool, msg string) {
    if !cond {
        r.add(msg)
    }
}

// ValidNIC reports whether nic carries the "v" marker, in either case.
func ValidNIC(nic string) bool {
    return strings.ContainsAny(nic, "vV")
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// parseClock parses an HH:MM time of day.
func parseClock(s string) (time.Time, bool) {
    if !clockPattern.MatchString(s) {
        return time.Time{}, false
    }
    t, err := time.Parse("15:04", s)
    return t, err == nil
}

// nic validates a NIC field under the given label.
func (r *Result) nic(label, v string) {
    if blank(v) {
        r.add(label + " is required.")
        return
    }
    r.check(ValidNIC(v), "Wrong "+label+" format.")
}
