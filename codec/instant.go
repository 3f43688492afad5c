package codec

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Layouts accepted for string instants, tried in order.
var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// InstantCodec writes time.Time as an RFC 3339 UTC string with nanoseconds.
// Years outside 0000-9999 have no RFC 3339 form and are written as epoch
// seconds with a nine digit fraction instead. Decode reads both forms.
type InstantCodec struct{}

// Encode implements Codec.
func (InstantCodec) Encode(t time.Time) ([]byte, error) {
	utc := t.UTC()
	if y := utc.Year(); y < 0 || y > 9999 {
		return []byte(formatEpoch(utc)), nil
	}
	return strconv.AppendQuote(nil, utc.Format(time.RFC3339Nano)), nil
}

// Decode implements Codec.
func (InstantCodec) Decode(data []byte) (time.Time, error) {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 {
		return time.Time{}, formatError(ErrInvalidInstant, nil, map[string]any{"reason": "empty value"})
	}

	switch {
	case raw[0] == '"':
		s, err := strconv.Unquote(string(raw))
		if err != nil {
			return time.Time{}, formatError(ErrInvalidInstant, err, nil)
		}
		t, err := parseInstant(s)
		if err != nil {
			return time.Time{}, formatError(ErrInvalidInstant, err, map[string]any{"value": s})
		}
		return t, nil

	case raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9'):
		t, err := parseEpoch(string(raw))
		if err != nil {
			return time.Time{}, formatError(ErrInvalidInstant, err, map[string]any{"value": string(raw)})
		}
		return t, nil
	}

	return time.Time{}, formatError(ErrInvalidInstant, nil, map[string]any{
		"value":  string(raw),
		"reason": "expected string or number",
	})
}

var _ Codec[time.Time] = InstantCodec{}

// EpochInstantCodec writes time.Time as epoch seconds with a nine digit
// fraction. It reads the same forms as InstantCodec.
type EpochInstantCodec struct{}

// Encode implements Codec.
func (EpochInstantCodec) Encode(t time.Time) ([]byte, error) {
	return []byte(formatEpoch(t)), nil
}

// Decode implements Codec.
func (EpochInstantCodec) Decode(data []byte) (time.Time, error) {
	return InstantCodec{}.Decode(data)
}

var _ Codec[time.Time] = EpochInstantCodec{}

func parseInstant(s string) (time.Time, error) {
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("instant %q is not an ISO-8601 timestamp", s)
}

// formatEpoch renders t as an exact decimal number of seconds.
func formatEpoch(t time.Time) string {
	sec, nsec := t.Unix(), int64(t.Nanosecond())
	if nsec == 0 {
		return strconv.FormatInt(sec, 10)
	}
	if sec < 0 {
		// Unix floors, so -4.7s is sec=-5, nsec=3e8.
		return fmt.Sprintf("-%d.%09d", -(sec + 1), 1e9-nsec)
	}
	return fmt.Sprintf("%d.%09d", sec, nsec)
}

func parseEpoch(s string) (time.Time, error) {
	if strings.ContainsAny(s, "eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return time.Time{}, err
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return time.Time{}, fmt.Errorf("epoch %q out of range", s)
		}
		whole := math.Floor(f)
		return time.Unix(int64(whole), int64((f-whole)*1e9)).UTC(), nil
	}

	negative := strings.HasPrefix(s, "-")
	whole, frac, hasFrac := strings.Cut(s, ".")

	sec, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return time.Time{}, err
	}

	var nsec int64
	if hasFrac {
		if frac == "" || strings.TrimLeft(frac, "0123456789") != "" {
			return time.Time{}, fmt.Errorf("epoch %q has an invalid fraction", s)
		}
		if len(frac) > 9 {
			frac = frac[:9]
		}
		frac += strings.Repeat("0", 9-len(frac))
		nsec, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return time.Time{}, err
		}
		if negative {
			nsec = -nsec
		}
	}

	return time.Unix(sec, nsec).UTC(), nil
}
