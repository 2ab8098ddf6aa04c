package receipt

// Status is the approval state of a fuel receipt.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition leaves this status.
// Re-submission means creating a new receipt; terminal records are the audit
// trail and never mutate again.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Action is a requested lifecycle transition.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// transitions is the explicit transition table. Anything not listed is an
// illegal transition.
var transitions = map[Status]map[Action]Status{
	StatusPending: {
		ActionApprove: StatusApproved,
		ActionReject:  StatusRejected,
	},
}

// Transition resolves the next status for an action applied to the current
// status. Illegal combinations return ErrAlreadyProcessed for terminal
// states and ErrUnknownAction for actions outside the table.
func Transition(current Status, action Action) (Status, error) {
	if current.Terminal() {
		return current, ErrAlreadyProcessed
	}
	next, ok := transitions[current][action]
	if !ok {
		return current, ErrUnknownAction
	}
	return next, nil
}
