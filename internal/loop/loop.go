// Package loop schedules the per-frame tick of a viewing session.
package loop

import "fmt"

type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Advancer moves frame state forward by one tick.
type Advancer interface {
	Advance()
}

// Controller runs advance then draw once per scheduled frame and
// reschedules itself while running.
type Controller struct {
	sched   Scheduler
	clock   Advancer
	draw    func()
	state   State
	pending FrameID
	ticks   uint64
}

func NewController(sched Scheduler, clock Advancer, draw func()) *Controller {
	return &Controller{sched: sched, clock: clock, draw: draw}
}

// Start schedules the first tick. It does nothing when already running.
func (c *Controller) Start() {
	if c.state == Running {
		return
	}
	c.state = Running
	c.pending = c.sched.RequestFrame(c.tick)
}

// Stop cancels the next tick. A tick that is in progress still completes
// but does not reschedule.
func (c *Controller) Stop() {
	if c.state == Stopped {
		return
	}
	c.state = Stopped
	if c.pending != 0 {
		c.sched.CancelFrame(c.pending)
		c.pending = 0
	}
}

// Toggle starts a stopped controller and stops a running one.
func (c *Controller) Toggle() {
	if c.state == Running {
		c.Stop()
	} else {
		c.Start()
	}
}

func (c *Controller) State() State { return c.state }

// Ticks counts completed ticks.
func (c *Controller) Ticks() uint64 { return c.ticks }

func (c *Controller) tick() {
	c.pending = 0
	// a scheduler that could not honour CancelFrame may still call us
	if c.state != Running {
		return
	}
	c.clock.Advance()
	c.draw()
	c.ticks++
	// draw may have stopped and restarted us, which already rescheduled
	if c.state == Running && c.pending == 0 {
		c.pending = c.sched.RequestFrame(c.tick)
	}
}
