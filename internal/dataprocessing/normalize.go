package dataprocessing

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"webagg/internal/errors"
	"webagg/pkg/contracts/domain"
)

// Normalized is the output of the time normalizer: both record sets share
// one month ordering derived from the session data.
type Normalized struct {
	Sessions []domain.SessionRecord
	CartAdds []domain.CartAddRecord
	Months   domain.MonthOrdering
}

// Normalizer parses date and month tokens into (Year, MonthName) and
// canonicalizes device categories.
type Normalizer struct {
	centuryPrefix string
	title         cases.Caser
	validate      *validator.Validate
}

// NewNormalizer creates a normalizer expanding two-digit years with
// centuryPrefix ("20" when empty).
func NewNormalizer(centuryPrefix string) *Normalizer {
	if centuryPrefix == "" {
		centuryPrefix = "20"
	}
	return &Normalizer{
		centuryPrefix: centuryPrefix,
		title:         cases.Title(language.Und),
		validate:      validator.New(),
	}
}

// Normalize derives time fields on copies of both record sets, builds the
// month ordering from sessions and restricts cart-add months to it.
func (n *Normalizer) Normalize(sessions []domain.SessionRecord, cartAdds []domain.CartAddRecord) (*Normalized, error) {
	outSessions := make([]domain.SessionRecord, len(sessions))
	for i, rec := range sessions {
		year, month, err := n.ParseSessionDate(rec.RawDate)
		if err != nil {
			return nil, errors.NewMalformedDateError(SessionsTable, sourceRow(rec.Row, i), rec.RawDate, err.Error())
		}
		rec.Year = year
		rec.MonthNumber = month
		rec.MonthName, _ = domain.MonthName(month)
		rec.DeviceCategory = n.title.String(rec.DeviceCategory)

		if err := n.validate.Struct(rec); err != nil {
			return nil, errors.NewParsingError(fmt.Sprintf("invalid %s row %d", SessionsTable, sourceRow(rec.Row, i)), err)
		}
		outSessions[i] = rec
	}

	months := BuildMonthOrdering(outSessions)

	outCarts := make([]domain.CartAddRecord, len(cartAdds))
	for i, rec := range cartAdds {
		month, err := ParseMonthNumber(rec.RawMonth)
		if err != nil {
			return nil, errors.NewMalformedDateError(CartAddsTable, sourceRow(rec.Row, i), rec.RawMonth, err.Error())
		}
		rec.MonthNumber = month
		rec.MonthName, _ = domain.MonthName(month)
		rec.MonthIndex = months.Rank(rec.MonthName)

		if err := n.validate.Struct(rec); err != nil {
			return nil, errors.NewParsingError(fmt.Sprintf("invalid %s row %d", CartAddsTable, sourceRow(rec.Row, i)), err)
		}
		outCarts[i] = rec
	}

	return &Normalized{
		Sessions: outSessions,
		CartAdds: outCarts,
		Months:   months,
	}, nil
}

// sourceRow is the row reported in errors: the record's table row when the
// decoder set one, its position otherwise.
func sourceRow(row, index int) int {
	if row > 0 {
		return row
	}
	return index + 1
}

// ParseSessionDate splits an "M/D/YY" date into a four-digit year and a
// month number. Two-digit years are always placed in the configured
// century; a four-digit year is used as written.
func (n *Normalizer) ParseSessionDate(raw string) (year, month int, err error) {
	parts := strings.Split(strings.TrimSpace(raw), "/")
	if len(parts) != 3 {
		return 0, 0, fmt.Errorf("expected M/D/YY with 2 delimiters, found %d", len(parts)-1)
	}

	month, err = ParseMonthNumber(parts[0])
	if err != nil {
		return 0, 0, err
	}

	yy := strings.TrimSpace(parts[2])
	switch {
	case yy == "":
		return 0, 0, fmt.Errorf("missing year")
	case len(yy) <= 2:
		if len(yy) == 1 {
			yy = "0" + yy
		}
		yy = n.centuryPrefix + yy
	case len(yy) != 4:
		return 0, 0, fmt.Errorf("year %q must have 2 or 4 digits", parts[2])
	}

	year, err = strconv.Atoi(yy)
	if err != nil {
		return 0, 0, fmt.Errorf("year %q is not a number", parts[2])
	}

	return year, month, nil
}

// ParseMonthNumber coerces a month token ("7", "07", "7.0") to 1-12.
func ParseMonthNumber(raw string) (int, error) {
	v, err := parseWhole(raw)
	if err != nil {
		return 0, fmt.Errorf("month: %w", err)
	}
	if v < 1 || v > 12 {
		return 0, fmt.Errorf("month %d out of range 1-12", v)
	}
	return int(v), nil
}

// BuildMonthOrdering orders sessions chronologically by (Year, month
// number) and keeps the first-seen sequence of month names.
func BuildMonthOrdering(sessions []domain.SessionRecord) domain.MonthOrdering {
	idx := make([]int, len(sessions))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		sa, sb := sessions[idx[a]], sessions[idx[b]]
		if sa.Year != sb.Year {
			return sa.Year < sb.Year
		}
		return sa.MonthNumber < sb.MonthNumber
	})

	names := make([]string, 0, 12)
	for _, i := range idx {
		names = append(names, sessions[i].MonthName)
	}
	return domain.NewMonthOrdering(names)
}
