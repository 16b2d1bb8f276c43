package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	PeriodAM = "AM"
	PeriodPM = "PM"
)

var ErrInvalidScheduleTime = errors.New("invalid schedule time")

type ScheduleTime struct {
	Hour   int
	Minute int
	Period string
}

func (s ScheduleTime) String() string {
	return fmt.Sprintf("%d:%02d %s", s.Hour, s.Minute, s.Period)
}

// FormatScheduleTime renders "H:MM AM|PM" with an unpadded hour.
func FormatScheduleTime(hour, minute int, period string) (string, error) {
	st := ScheduleTime{Hour: hour, Minute: minute, Period: period}
	if err := st.validate(); err != nil {
		return "", err
	}
	return st.String(), nil
}

func ParseScheduleTime(value string) (ScheduleTime, error) {
	clock, period, ok := strings.Cut(value, " ")
	if !ok {
		return ScheduleTime{}, fmt.Errorf("%w: %q", ErrInvalidScheduleTime, value)
	}
	h, m, ok := strings.Cut(clock, ":")
	if !ok || len(m) != 2 || len(h) == 0 || len(h) > 2 || h[0] == '0' || !isDigits(h) || !isDigits(m) {
		return ScheduleTime{}, fmt.Errorf("%w: %q", ErrInvalidScheduleTime, value)
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return ScheduleTime{}, fmt.Errorf("%w: %q", ErrInvalidScheduleTime, value)
	}
	minute, err := strconv.Atoi(m)
	if err != nil {
		return ScheduleTime{}, fmt.Errorf("%w: %q", ErrInvalidScheduleTime, value)
	}

	st := ScheduleTime{Hour: hour, Minute: minute, Period: period}
	if err = st.validate(); err != nil {
		return ScheduleTime{}, err
	}
	return st, nil
}

func (s ScheduleTime) validate() error {
	if s.Hour < 1 || s.Hour > 12 {
		return fmt.Errorf("%w: hour %d out of range", ErrInvalidScheduleTime, s.Hour)
	}
	if s.Minute < 0 || s.Minute > 59 {
		return fmt.Errorf("%w: minute %d out of range", ErrInvalidScheduleTime, s.Minute)
	}
	if s.Period != PeriodAM && s.Period != PeriodPM {
		return fmt.Errorf("%w: period %q", ErrInvalidScheduleTime, s.Period)
	}
	return nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
