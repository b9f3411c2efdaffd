package converter

import "time"

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04:05"
)

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

func formatDateTime(t time.Time) string {
	return t.UTC().Format(DateTimeLayout)
}
