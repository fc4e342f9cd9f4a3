package flows

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/invest_portal/internal/apperrors"
	portssvc "github.com/SscSPs/invest_portal/internal/core/ports/services"
	"github.com/looplab/fsm"
)

// Events understood by every wizard.
const (
	EventNext   = "next"
	EventBack   = "back"
	EventSubmit = "submit"
	EventReset  = "reset"
)

// StepSuccess is the terminal state every wizard reaches after a successful submit.
const StepSuccess = "success"

// Step is one data-entry screen of a wizard.
type Step struct {
	Name string
	// Validate checks the fields owned by the step.
	Validate func() error
	// Action runs after Validate when the step is left forward. On the last
	// step it is the submission.
	Action func(ctx context.Context) error
	// Policy overrides the wizard's message policy for errors of this step.
	Policy *apperrors.MessagePolicy
}

// State is the transport-independent view of a wizard.
type State struct {
	Flow            string   `json:"flow"`
	Step            string   `json:"step"`
	Steps           []string `json:"steps"`
	Error           string   `json:"error,omitempty"`
	Notice          string   `json:"notice,omitempty"`
	RedirectToLogin bool     `json:"redirect_to_login,omitempty"`
	CanBack         bool     `json:"can_back"`
	CanSubmit       bool     `json:"can_submit"`
}

// Wizard drives an ordered list of steps with a looplab/fsm machine. It is not
// safe for concurrent use; flows serialise access with their own mutex.
type Wizard struct {
	name    string
	steps   []Step
	machine *fsm.FSM
	session portssvc.SessionSvc
	policy  apperrors.MessagePolicy
	logger  *slog.Logger

	errMsg   string
	notice   string
	redirect bool
}

func newWizard(name string, steps []Step, session portssvc.SessionSvc, policy apperrors.MessagePolicy, logger *slog.Logger) *Wizard {
	if logger == nil {
		logger = slog.Default()
	}
	w := &Wizard{
		name:    name,
		steps:   steps,
		session: session,
		policy:  policy,
		logger:  logger.With(slog.String("flow", name)),
	}

	last := steps[len(steps)-1].Name
	all := make([]string, 0, len(steps)+1)
	events := fsm.Events{}
	for i, step := range steps {
		all = append(all, step.Name)
		if i+1 < len(steps) {
			events = append(events, fsm.EventDesc{Name: EventNext, Src: []string{step.Name}, Dst: steps[i+1].Name})
		}
		if i > 0 {
			events = append(events, fsm.EventDesc{Name: EventBack, Src: []string{step.Name}, Dst: steps[i-1].Name})
		}
	}
	all = append(all, StepSuccess)
	events = append(events,
		fsm.EventDesc{Name: EventSubmit, Src: []string{last}, Dst: StepSuccess},
		fsm.EventDesc{Name: EventReset, Src: all, Dst: steps[0].Name},
	)

	w.machine = fsm.NewFSM(steps[0].Name, events, fsm.Callbacks{
		"before_" + EventNext:   w.leaveStep,
		"before_" + EventSubmit: w.leaveStep,
		"enter_state": func(_ context.Context, e *fsm.Event) {
			w.logger.Debug("Wizard step changed", slog.String("event", e.Event), slog.String("from", e.Src), slog.String("to", e.Dst))
		},
	})
	return w
}

// leaveStep validates and runs the action of the step being left; it must not
// call back into the machine.
func (w *Wizard) leaveStep(ctx context.Context, e *fsm.Event) {
	step, ok := w.step(e.Src)
	if !ok {
		return
	}
	if step.Validate != nil {
		if err := step.Validate(); err != nil {
			e.Cancel(err)
			return
		}
	}
	if step.Action != nil {
		if err := step.Action(ctx); err != nil {
			e.Cancel(err)
		}
	}
}

func (w *Wizard) step(name string) (Step, bool) {
	for _, s := range w.steps {
		if s.Name == name {
			return s, true
		}
	}
	return Step{}, false
}

// Current returns the active step name.
func (w *Wizard) Current() string { return w.machine.Current() }

// Next validates the current step, runs its action and advances.
func (w *Wizard) Next(ctx context.Context) error { return w.fire(ctx, EventNext) }

// Back moves to the previous step without validation.
func (w *Wizard) Back(ctx context.Context) error { return w.fire(ctx, EventBack) }

// Submit validates the last step and performs the submission.
func (w *Wizard) Submit(ctx context.Context) error { return w.fire(ctx, EventSubmit) }

// Reset returns to the first step. Callers restore their fields first.
func (w *Wizard) Reset(ctx context.Context) error {
	w.notice = ""
	return w.fire(ctx, EventReset)
}

// SetNotice records an informational message shown with the current step.
func (w *Wizard) SetNotice(msg string) { w.notice = msg }

// Fail records err as the wizard's error outside of a transition, e.g. for
// field updates that are rejected immediately.
func (w *Wizard) Fail(ctx context.Context, err error) error {
	w.errMsg, w.redirect = "", false
	return w.fail(ctx, err, w.policy)
}

// Rewind returns to the named earlier step and records err there. Flows use it
// when input owned by that step no longer holds at submit time.
func (w *Wizard) Rewind(ctx context.Context, name string, err error) error {
	if _, ok := w.step(name); ok {
		w.logger.Debug("Wizard step rewound", slog.String("from", w.machine.Current()), slog.String("to", name))
		w.machine.SetState(name)
	}
	return w.Fail(ctx, err)
}

// ClearError forgets the last error.
func (w *Wizard) ClearError() {
	w.errMsg, w.redirect = "", false
}

func (w *Wizard) fire(ctx context.Context, event string) error {
	from := w.machine.Current()
	w.errMsg, w.redirect = "", false

	err := w.machine.Event(ctx, event)
	if err == nil {
		return nil
	}

	var canceled fsm.CanceledError
	if errors.As(err, &canceled) && canceled.Err != nil {
		policy := w.policy
		if step, ok := w.step(from); ok && step.Policy != nil {
			policy = *step.Policy
		}
		return w.fail(ctx, canceled.Err, policy)
	}

	var noTransition fsm.NoTransitionError
	if errors.As(err, &noTransition) {
		return nil
	}

	wrapped := fmt.Errorf("%w: cannot %s from %s", apperrors.ErrInvalidTransition, event, from)
	w.errMsg = fmt.Sprintf("Cannot %s from this step.", event)
	return wrapped
}

func (w *Wizard) fail(ctx context.Context, err error, policy apperrors.MessagePolicy) error {
	if apperrors.IsUnauthorized(err) && w.session != nil {
		if clearErr := w.session.Clear(ctx); clearErr != nil {
			w.logger.Warn("Failed to clear session", slog.String("error", clearErr.Error()))
		}
		w.redirect = true
	}
	w.errMsg = policy.Describe(err)
	if !errors.Is(err, apperrors.ErrValidation) {
		w.logger.Warn("Wizard step failed", slog.String("step", w.machine.Current()), slog.String("error", err.Error()))
	}
	return err
}

// State returns a snapshot of the wizard.
func (w *Wizard) State() State {
	names := make([]string, 0, len(w.steps)+1)
	for _, s := range w.steps {
		names = append(names, s.Name)
	}
	names = append(names, StepSuccess)

	return State{
		Flow:            w.name,
		Step:            w.machine.Current(),
		Steps:           names,
		Error:           w.errMsg,
		Notice:          w.notice,
		RedirectToLogin: w.redirect,
		CanBack:         w.machine.Can(EventBack),
		CanSubmit:       w.machine.Can(EventSubmit),
	}
}
