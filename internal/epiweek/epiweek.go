package epiweek

import (
	"errors"
	"fmt"
	"time"
)

// Lag is the number of weeks subtracted from the current week to account
// for influenza reporting delay.
const Lag = 2

// ErrWeekOutOfRange is returned when the lagged week falls before the first
// week of the year.
var ErrWeekOutOfRange = errors.New("epiweek: lagged week out of range")

// Compute returns the epiweek identifier <year><week> for t, where week is
// the ISO-8601 week of t minus Lag, zero padded to two digits.
func Compute(t time.Time) (string, error) {
	year, week := t.ISOWeek()
	week -= Lag
	if week < 1 {
		return "", fmt.Errorf("%w: %s is ISO week %d of %d", ErrWeekOutOfRange, t.Format(time.DateOnly), week+Lag, year)
	}
	return fmt.Sprintf("%d%02d", year, week), nil
}
