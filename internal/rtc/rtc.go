// Package rtc provides the wall clock the face displays.
package rtc

import (
	"errors"
	"time"
)

// ErrNoTime is returned when no usable time could be read. The face keeps
// showing the last time it drew.
var ErrNoTime = errors.New("could not obtain a time")

// Source reports the current local time.
type Source interface {
	Now() (time.Time, error)
}

// Reading is the part of a time the face cares about.
type Reading struct {
	Hour, Minute int
	Month, Day   int
	Time         time.Time
}

func At(t time.Time) Reading {
	return Reading{
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Time:   t,
	}
}

// Read reads src and shifts the result by offset whole hours.
func Read(src Source, offset int) (Reading, error) {
	t, err := src.Now()
	if err != nil {
		return Reading{}, err
	}
	if offset != 0 {
		t = t.Add(time.Duration(offset) * time.Hour)
	}
	return At(t), nil
}

// System reads the host clock.
type System struct {
	Clock func() time.Time
}

func NewSystem() *System { return &System{Clock: time.Now} }

func (s *System) Now() (time.Time, error) {
	if s.Clock == nil {
		return time.Time{}, ErrNoTime
	}
	return s.Clock(), nil
}

// Fixed always returns the same time; Set changes it.
type Fixed struct {
	T   time.Time
	Err error
}

func (f *Fixed) Now() (time.Time, error) { return f.T, f.Err }
func (f *Fixed) Set(t time.Time)         { f.T = t }
