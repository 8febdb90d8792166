package utils

import (
    "fmt"
    "strings"
    "time"
)

// FormatRemaining renders d as "M minutes S seconds".  Units are singular
// for a value of one and zero components are left out; a zero or negative
// duration renders as "0 seconds".  Sub-second remainders are truncated.
func FormatRemaining(d time.Duration) string {
    if d < time.Second {
        return "0 seconds"
    }
    total := int64(d / time.Second)
    mins, secs := total/60, total%60
    parts := make([]string, 0, 2)
    if mins > 0 {
        parts = append(parts, plural(mins, "minute"))
    }
    if secs > 0 {
        parts = append(parts, plural(secs, "second"))
    }
    return strings.Join(parts, " ")
}

func plural(n int64, unit string) string {
    if n == 1 {
        return fmt.Sprintf("%d %s", n, unit)
    }
    return fmt.Sprintf("%d %ss", n, unit)
}
