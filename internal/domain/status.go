package domain

// validTransitions lists the moves a booking may make. CANCELED is terminal.
var validTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCanceled},
	BookingStatusConfirmed: {BookingStatusCanceled},
	BookingStatusCanceled:  {},
}

func (s BookingStatus) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return s.IsValid() && len(validTransitions[s]) == 0
}

func (s BookingStatus) String() string {
	return string(s)
}

// CheckInitial validates the status a new booking is created with.
func CheckInitial(s BookingStatus) error {
	if s == BookingStatusPending || s == BookingStatusConfirmed {
		return nil
	}
	return NewError(KindInvalidRequest, "initial status must be PENDING or CONFIRMED")
}

// CheckConfirm validates PENDING -> CONFIRMED.
func CheckConfirm(s BookingStatus) error {
	switch s {
	case BookingStatusPending:
		return nil
	case BookingStatusConfirmed:
		return NewError(KindAlreadyConfirmed, "booking is already confirmed")
	default:
		return NewError(KindInvalidState, "booking is not pending")
	}
}

// CheckCancel reports whether a booking in status s has to be moved to CANCELED.
// An already canceled booking yields (false, nil).
func CheckCancel(s BookingStatus) (bool, error) {
	if s == BookingStatusCanceled {
		return false, nil
	}
	if !s.CanTransitionTo(BookingStatusCanceled) {
		return false, NewError(KindInvalidState, "booking cannot be canceled from status "+s.String())
	}
	return true, nil
}
