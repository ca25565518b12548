package models

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
	"github.com/spf13/cast"

	"watchlist/internal/errors"
)

// YearInput holds a year as received: a JSON number, a numeric string, "" or null.
type YearInput string

// YearOf builds a YearInput from an integer year.
func YearOf(year int) YearInput {
	return YearInput(strconv.Itoa(year))
}

func (y *YearInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*y = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*y = YearInput(s)
		return nil
	}
	*y = YearInput(data)
	return nil
}

func (y YearInput) MarshalJSON() ([]byte, error) {
	n := y.Int()
	if n == nil {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(*n)), nil
}

// maxAbsYear bounds accepted years so float-to-int conversion stays defined.
const maxAbsYear = math.MaxInt32

// Int normalizes the year: empty, non-numeric, non-integral and out-of-range
// values give nil.
func (y YearInput) Int() *int {
	s := strings.TrimSpace(string(y))
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n > maxAbsYear || n < -maxAbsYear {
			return nil
		}
		return &n
	}
	f, err := cast.ToFloat64E(s)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) || math.Abs(f) > maxAbsYear {
		return nil
	}
	n := int(f)
	return &n
}

type CreateMovieInput struct {
	Title    string    `json:"title" validate:"required|maxLen:300"`
	Year     YearInput `json:"year,omitempty"`
	Director string    `json:"director,omitempty" validate:"maxLen:200"`
	Notes    string    `json:"notes,omitempty" validate:"maxLen:2000"`
	Tier     Tier      `json:"tier,omitempty"`
	Favorite bool      `json:"favorite,omitempty"`
	Seen     bool      `json:"seen,omitempty"`
}

// Normalize trims the string fields.
func (in CreateMovieInput) Normalize() CreateMovieInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Year = YearInput(strings.TrimSpace(string(in.Year)))
	in.Director = strings.TrimSpace(in.Director)
	in.Notes = strings.TrimSpace(in.Notes)
	return in
}

// Validate checks a normalized input.
func (in CreateMovieInput) Validate() error {
	if in.Title == "" {
		return errors.Validation("title is required")
	}
	v := validate.Struct(&in)
	if !v.Validate() {
		return errors.Validation(v.Errors.One())
	}
	if !in.Tier.Valid() {
		return errors.Validationf("invalid tier %q", string(in.Tier))
	}
	return nil
}

// PerUserPatch is a partial update of one user's state; nil fields are left unchanged.
type PerUserPatch struct {
	Seen     *bool `json:"seen,omitempty"`
	Favorite *bool `json:"favorite,omitempty"`
	Tier     *Tier `json:"tier,omitempty"`
}

func (p PerUserPatch) Validate() error {
	if p.Tier != nil && !p.Tier.Valid() {
		return errors.Validationf("invalid tier %q", string(*p.Tier))
	}
	return nil
}

func (p PerUserPatch) IsEmpty() bool {
	return p.Seen == nil && p.Favorite == nil && p.Tier == nil
}
