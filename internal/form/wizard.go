package form

import (
	"errors"
	"fmt"
)

var ErrInvalidTransition = errors.New("wizard: invalid transition")

type Step int

const (
	StepDetails Step = iota
	StepSponsors
	StepTicketPrices
	StepVenue
	StepSubmit
)

func (s Step) String() string {
	switch s {
	case StepDetails:
		return "details"
	case StepSponsors:
		return "sponsors"
	case StepTicketPrices:
		return "ticket_prices"
	case StepVenue:
		return "venue"
	case StepSubmit:
		return "submit"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

type move int

const (
	moveNext move = iota
	moveBack
)

// transitions lists every legal move. Anything missing is rejected.
var transitions = map[Step]map[move]Step{
	StepDetails:      {moveNext: StepSponsors},
	StepSponsors:     {moveNext: StepTicketPrices, moveBack: StepDetails},
	StepTicketPrices: {moveNext: StepVenue, moveBack: StepSponsors},
	StepVenue:        {moveNext: StepSubmit, moveBack: StepTicketPrices},
	StepSubmit:       {moveBack: StepVenue},
}

// Wizard is the linear event-creation flow. The zero value starts at
// StepDetails. It is not safe for concurrent use on its own; EventForm
// guards it.
type Wizard struct {
	step Step
}

func (w *Wizard) Step() Step { return w.step }

func (w *Wizard) Next() (Step, error) { return w.apply(moveNext) }

func (w *Wizard) Back() (Step, error) { return w.apply(moveBack) }

func (w *Wizard) Reset() { w.step = StepDetails }

func (w *Wizard) apply(m move) (Step, error) {
	to, ok := transitions[w.step][m]
	if !ok {
		name := "next"
		if m == moveBack {
			name = "back"
		}
		return w.step, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, name, w.step)
	}
	w.step = to
	return to, nil
}
