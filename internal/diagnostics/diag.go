// Package diagnostics holds the events streamed to /diag.
package diagnostics

import "time"

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

// Codes emitted by the clock.
const (
	CodeSpecialStart = "SPECIAL.START"
	CodeSpecialEnd   = "SPECIAL.END"
	CodeStage        = "SPECIAL.STAGE"
	CodeTimeDrawn    = "TIME.DRAWN"
	CodeTimeFailed   = "TIME.FAILED"
	CodeHourOffset   = "TIME.OFFSET"
	CodeTestRunning  = "TEST.RUNNING"
	CodeTestDone     = "TEST.DONE"
)

type Diagnostic struct {
	Severity       Severity       `json:"severity"`
	Code           string         `json:"code"`
	Summary        string         `json:"summary"`
	Detail         string         `json:"detail,omitempty"`
	LikelyCauses   []string       `json:"likely_causes,omitempty"`
	SuggestedFixes []string       `json:"suggested_fixes,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
	At             time.Time      `json:"at"`
}

func New(sev Severity, code, summary string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Summary: summary, At: time.Now()}
}

// With adds one evidence field.
func (d Diagnostic) With(k string, v any) Diagnostic {
	ev := make(map[string]any, len(d.Evidence)+1)
	for kk, vv := range d.Evidence {
		ev[kk] = vv
	}
	ev[k] = v
	d.Evidence = ev
	return d
}

// Sink receives diagnostics; nil sinks are allowed at call sites.
type Sink func(Diagnostic)

func (s Sink) Push(d Diagnostic) {
	if s != nil {
		s(d)
	}
}

// ClockUnreadable describes a failed time read.
func ClockUnreadable(err error) Diagnostic {
	d := New(Warn, CodeTimeFailed, "Could not read the clock")
	d.Detail = err.Error()
	d.LikelyCauses = []string{"RTC not wired or wrong I2C bus", "RTC battery flat"}
	d.SuggestedFixes = []string{"check -rtc-bus and wiring", "run with -clock system"}
	return d
}
