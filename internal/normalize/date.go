package normalize

import (
	"strings"
	"time"
)

// DateLayout is a time.Parse layout declared by a bank format.
type DateLayout string

const (
	ISODate   DateLayout = "2006-01-02"
	SlashDate DateLayout = "2006/01/02"
)

// ParseDate parses raw strictly against layout. The result is midnight UTC.
func ParseDate(raw string, layout DateLayout) (time.Time, error) {
	t, err := time.Parse(string(layout), strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, &ValueError{Field: "date", Raw: raw, Reason: "expected layout " + string(layout)}
	}
	return t, nil
}
