package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/setlist/internal/shared"
)

// SortField names the song attribute a column is sorted by.
type SortField string

const (
	SortNone  SortField = ""
	SortKey   SortField = "key"
	SortTempo SortField = "tempo"
	SortTitle SortField = "title"
)

// SortOrder is the direction of a [SortSpec].
type SortOrder string

const (
	Neutral SortOrder = "neutral"
	Asc     SortOrder = "asc"
	Desc    SortOrder = "desc"
)

// SortSpec describes how the unlocked part of a column is displayed.
//
// The zero value is the neutral sort.
type SortSpec struct {
	Field SortField `json:"field"`
	Order SortOrder `json:"order"`
}

// IsNeutral reports whether s leaves stored order untouched.
func (s SortSpec) IsNeutral() bool {
	return s.Field == SortNone || s.Order == "" || s.Order == Neutral
}

func (s SortSpec) String() string {
	if s.IsNeutral() {
		return string(Neutral)
	}
	return fmt.Sprintf("%s:%s", s.Field, s.Order)
}

// ParseSortSpec parses "field:order" (e.g. "tempo:desc"). A bare field means ascending;
// "" and "neutral" give the neutral [SortSpec].
func ParseSortSpec(s string) (SortSpec, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == string(Neutral) {
		return SortSpec{Order: Neutral}, nil
	}

	fieldPart, orderPart, hasOrder := strings.Cut(s, ":")

	var spec SortSpec
	switch f := SortField(fieldPart); f {
	case SortKey, SortTempo, SortTitle:
		spec.Field = f
	default:
		return SortSpec{}, fmt.Errorf("%w: unknown field %q (must be key, tempo or title)", shared.ErrInvalidSort, fieldPart)
	}

	spec.Order = Asc
	if hasOrder {
		switch o := SortOrder(orderPart); o {
		case Asc, Desc, Neutral:
			spec.Order = o
		default:
			return SortSpec{}, fmt.Errorf("%w: unknown order %q (must be asc, desc or neutral)", shared.ErrInvalidSort, orderPart)
		}
	}
	return spec, nil
}
