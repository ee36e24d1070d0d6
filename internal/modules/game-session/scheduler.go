package gamesession

import "time"

// Scheduler runs fn once after d. The returned func cancels the call if it
// has not fired yet.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

type clockScheduler struct{}

func NewScheduler() Scheduler {
	return clockScheduler{}
}

func (clockScheduler) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() {
		t.Stop()
	}
}
