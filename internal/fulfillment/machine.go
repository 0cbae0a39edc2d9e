// Package fulfillment drives the order lifecycle from packing through
// delivery. The legal status moves are encoded in a pure transition
// table; the admin and delivery services gate every action against it
// before any backend call, then re-fetch the canonical order instead
// of assuming success.
package fulfillment

import (
	"fmt"

	"kirana-kart/internal/model"
)

// Event is an action an admin or delivery actor performs on an order.
type Event string

const (
	// EventMarkPacked is the admin marking a pending order as packed.
	EventMarkPacked Event = "mark_packed"

	// EventStartDelivery is the assigned delivery partner picking the
	// order up.
	EventStartDelivery Event = "start_delivery"

	// EventDeliver is the delivery partner completing the handoff with
	// the customer's OTP.
	EventDeliver Event = "deliver"
)

// transitions is the full set of legal status moves. The pipeline is
// strictly forward: no skips, no reversals.
var transitions = map[model.OrderStatus]map[Event]model.OrderStatus{
	model.StatusPending: {
		EventMarkPacked: model.StatusPacked,
	},
	model.StatusPacked: {
		EventStartDelivery: model.StatusOutForDelivery,
	},
	model.StatusOutForDelivery: {
		EventDeliver: model.StatusDelivered,
	},
}

// Transition returns the status an order in state moves to on event,
// or ErrInvalidTransition when the move is not in the table.
func Transition(state model.OrderStatus, event Event) (model.OrderStatus, error) {
	if next, ok := transitions[state][event]; ok {
		return next, nil
	}
	return state, model.NewDomainError(
		model.ErrCodeInvalidTransition,
		fmt.Sprintf("cannot %s an order in status %s", event, state),
	)
}

// CanAssign reports whether a delivery partner may be assigned to an
// order in the given status. Assignment happens while the order is
// packed and does not itself change the status.
func CanAssign(state model.OrderStatus) bool {
	return state == model.StatusPacked
}
