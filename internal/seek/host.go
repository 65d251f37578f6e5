package seek

import "github.com/tessro/holdseek/internal/gesture"

var _ gesture.HoldTarget = (*Controller)(nil)

// OnHoldStart activates a session in the direction of the hold position.
func (c *Controller) OnHoldStart(x, width float64, playing bool) error {
	_, err := c.Activate(c.layout.Classify(x, width), playing)
	return err
}

// OnHoldDrag forwards the total horizontal displacement of the hold.
func (c *Controller) OnHoldDrag(deltaX, width float64) {
	c.OnDrag(deltaX, width)
}

// OnHoldEnd terminates the session when the pointer lifts.
func (c *Controller) OnHoldEnd() {
	c.Terminate()
}

// OnHoldCancelled is handled the same as OnHoldEnd.
func (c *Controller) OnHoldCancelled() {
	c.Terminate()
}
