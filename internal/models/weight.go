package models

import (
	"bytes"
	"math"
	"strconv"
	"strings"
)

// Weight is the weight of a mail request. The client sends either a number,
// a numeric string or null, so decoding never fails: a value that is present
// but not a finite number is kept as Set with Valid false.
type Weight struct {
	Value float64
	Set   bool
	Valid bool
}

// NewWeight returns a present, numeric weight
func NewWeight(v float64) Weight {
	return Weight{Value: v, Set: true, Valid: true}
}

func (w *Weight) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*w = Weight{}
		return nil
	}

	raw := string(data)
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}

	*w = Weight{Set: true}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	w.Value = v
	w.Valid = true
	return nil
}

func (w Weight) MarshalJSON() ([]byte, error) {
	if !w.Set || !w.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(w.Value, 'f', -1, 64)), nil
}
