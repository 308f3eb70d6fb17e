package statemachine

import (
	"context"
	"fmt"

	"github.com/TeamSoftLion/crm/internal/models"
	"github.com/TeamSoftLion/crm/pkg/logger"
	"github.com/looplab/fsm"
)

// Charge events
const (
	EventSettle  = "settle"
	EventPartPay = "part_pay"
	EventReopen  = "reopen"
)

// ChargeFSM wraps a tuition charge with its state machine
type ChargeFSM struct {
	charge *models.TuitionCharge
	fsm    *fsm.FSM
}

// NewChargeFSM creates a new charge state machine
func NewChargeFSM(charge *models.TuitionCharge) *ChargeFSM {
	cfsm := &ChargeFSM{
		charge: charge,
	}

	cfsm.fsm = fsm.NewFSM(
		charge.Status,
		fsm.Events{
			// pending/partial → paid (allocations or discount cover the effective amount)
			{Name: EventSettle, Src: []string{models.ChargeStatusPending, models.ChargeStatusPartiallyPaid}, Dst: models.ChargeStatusPaid},

			// pending/paid → partial (first allocation, or amount raised above what was paid)
			{Name: EventPartPay, Src: []string{models.ChargeStatusPending, models.ChargeStatusPaid}, Dst: models.ChargeStatusPartiallyPaid},

			// partial/paid → pending (nothing allocated against a non-zero amount)
			{Name: EventReopen, Src: []string{models.ChargeStatusPartiallyPaid, models.ChargeStatusPaid}, Dst: models.ChargeStatusPending},
		},
		fsm.Callbacks{},
	)

	return cfsm
}

// MoveTo drives the charge to target and reports whether the status changed.
// A charge carrying a status the machine does not know is overwritten.
func (c *ChargeFSM) MoveTo(ctx context.Context, target string) (bool, error) {
	if c.fsm.Current() == target {
		return false, nil
	}

	event, err := eventFor(target)
	if err != nil {
		return false, err
	}

	if !c.fsm.Can(event) {
		logger.Warn("Charge had unexpected status, overwriting",
			"charge_id", c.charge.ID, "status", c.charge.Status, "target", target)
		c.fsm.SetState(target)
		c.charge.Status = target
		return true, nil
	}

	if err := c.fsm.Event(ctx, event); err != nil {
		return false, fmt.Errorf("failed to %s charge: %w", event, err)
	}

	c.charge.Status = c.fsm.Current()
	return true, nil
}

// Current returns the current state
func (c *ChargeFSM) Current() string {
	return c.fsm.Current()
}

// Can checks if a transition is possible
func (c *ChargeFSM) Can(event string) bool {
	return c.fsm.Can(event)
}

func eventFor(target string) (string, error) {
	switch target {
	case models.ChargeStatusPaid:
		return EventSettle, nil
	case models.ChargeStatusPartiallyPaid:
		return EventPartPay, nil
	case models.ChargeStatusPending:
		return EventReopen, nil
	default:
		return "", fmt.Errorf("unknown charge status %q", target)
	}
}
