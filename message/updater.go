package message

import "sync"

// Target is a zone that can have its message replaced
type Target interface {
	Override(text string)
}

// Notifier is told about every post, e.g. to sound a chime
type Notifier interface {
	Notify(msgs []string)
}

// Updater pushes posted messages straight onto a fixed set of zones
// Message i goes to target i; extra messages are ignored and surplus targets keep their content
type Updater struct {
	mu       sync.Mutex
	targets  []Target
	notifier Notifier
	last     []string
}

// NewUpdater binds the targets in order
func NewUpdater(targets ...Target) *Updater {
	return &Updater{targets: targets}
}

// SetNotifier installs n, nil removes it
func (u *Updater) SetNotifier(n Notifier) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.notifier = n
}

// Post overrides the targets and returns how many were updated
func (u *Updater) Post(msgs ...string) int {
	u.mu.Lock()
	targets := u.targets
	notifier := u.notifier
	u.last = append([]string(nil), msgs...)
	u.mu.Unlock()

	n := min(len(targets), len(msgs))
	for i := 0; i < n; i++ {
		targets[i].Override(msgs[i])
	}
	if notifier != nil && len(msgs) > 0 {
		notifier.Notify(msgs)
	}
	return n
}

// Last returns the most recent post
func (u *Updater) Last() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.last...)
}

// Targets returns the number of bound zones
func (u *Updater) Targets() int {
	return len(u.targets)
}
