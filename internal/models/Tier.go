package models

import (
	"strings"

	"watchlist/internal/errors"
)

// Tier is a per-user letter rating. TierNone is the empty string on the wire.
type Tier string

const (
	TierS    Tier = "S"
	TierA    Tier = "A"
	TierB    Tier = "B"
	TierC    Tier = "C"
	TierD    Tier = "D"
	TierNone Tier = ""
)

// TierLanes is the display order of the tier board.
var TierLanes = []Tier{TierS, TierA, TierB, TierC, TierD, TierNone}

// Rank orders tiers S > A > B > C > D > none. Unknown tiers rank as none.
func (t Tier) Rank() int {
	switch t {
	case TierS:
		return 5
	case TierA:
		return 4
	case TierB:
		return 3
	case TierC:
		return 2
	case TierD:
		return 1
	default:
		return 0
	}
}

func (t Tier) Valid() bool {
	switch t {
	case TierS, TierA, TierB, TierC, TierD, TierNone:
		return true
	}
	return false
}

func (t Tier) String() string {
	if t == TierNone {
		return "-"
	}
	return string(t)
}

// ParseTier accepts a letter in any case, or "", "-" and "none" for TierNone.
func ParseTier(s string) (Tier, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "" || v == "-" || v == "NONE" {
		return TierNone, nil
	}
	t := Tier(v)
	if !t.Valid() {
		return TierNone, errors.Validationf("invalid tier %q", s)
	}
	return t, nil
}
