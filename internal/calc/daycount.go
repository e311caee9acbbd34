package calc

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	daysInYear     = 365
	daysInLeapYear = 366
	secondsPerDay  = 24 * 60 * 60
)

// DateRange is a pair of calendar dates. From may fall after To.
type DateRange struct {
	From time.Time
	To   time.Time
}

// NewDateRange creates a range between two calendar dates
func NewDateRange(from, to time.Time) DateRange {
	return DateRange{From: civil(from), To: civil(to)}
}

// Days returns the signed number of days from From to To
func (r DateRange) Days() int {
	return DaysBetween(r.From, r.To)
}

// YearLength returns 365 or 366 for the range
func (r DateRange) YearLength() int {
	return YearLengthForRange(r.From, r.To)
}

// Fraction returns the day-count fraction of the range
func (r DateRange) Fraction() decimal.Decimal {
	return DayCountFraction(r.From, r.To)
}

// Accrual applies a yearly rate in percent over the range
func (r DateRange) Accrual(rate decimal.NullDecimal) decimal.Decimal {
	return Accrual(rate, r.From, r.To)
}

// Reversed swaps From and To
func (r DateRange) Reversed() DateRange {
	return DateRange{From: r.To, To: r.From}
}

// Ordered returns the range with From not after To
func (r DateRange) Ordered() DateRange {
	from, to := ordered(r.From, r.To)
	return DateRange{From: from, To: to}
}

// Contains reports whether t falls in [From, To] once the bounds are ordered
func (r DateRange) Contains(t time.Time) bool {
	lo, hi := ordered(civil(r.From), civil(r.To))
	d := civil(t)
	return !d.Before(lo) && !d.After(hi)
}

// DaysBetween returns the number of calendar days from from to to.
// The result is negative when from is after to.
func DaysBetween(from, to time.Time) int {
	return int((civil(to).Unix() - civil(from).Unix()) / secondsPerDay)
}

// YearLengthForRange returns the length of the year used to turn a day count into a fraction.
//
// Logic:
//   - 366 if both dates fall in the same leap year
//   - 366 if a February 29 lies in [min(from, to), max(from, to))
//   - 365 otherwise
func YearLengthForRange(from, to time.Time) int {
	from, to = civil(from), civil(to)
	if from.Year() == to.Year() && isLeap(from.Year()) {
		return daysInLeapYear
	}
	lo, hi := ordered(from, to)
	if containsLeapDay(lo, hi) {
		return daysInLeapYear
	}
	return daysInYear
}

// DayCountFraction returns DaysBetween(from, to) divided by the year length of the range,
// at DivisionScale. The direction is kept: a reversed range gives a negative fraction.
func DayCountFraction(from, to time.Time) decimal.Decimal {
	days := OfInt(int64(DaysBetween(from, to)))
	yearLength := OfInt(int64(YearLengthForRange(from, to)))
	return Divide(days, yearLength)
}

// Accrual applies a yearly rate in percent proportionally over [from, to]
func Accrual(rate decimal.NullDecimal, from, to time.Time) decimal.Decimal {
	return Multiply(Of(DayCountFraction(from, to)), Of(ToFraction(rate)))
}

// containsLeapDay reports whether some February 29 falls in [lo, hi)
func containsLeapDay(lo, hi time.Time) bool {
	for y := lo.Year(); y <= hi.Year(); y++ {
		if !isLeap(y) {
			continue
		}
		leapDay := time.Date(y, time.February, 29, 0, 0, 0, 0, time.UTC)
		if !leapDay.Before(lo) && leapDay.Before(hi) {
			return true
		}
	}
	return false
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// civil drops the clock and zone of t, keeping its calendar date
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ordered(a, b time.Time) (time.Time, time.Time) {
	if a.After(b) {
		return b, a
	}
	return a, b
}
