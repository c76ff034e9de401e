package listing

import "errors"

var (
	ErrNoActiveModes   = errors.New("listing has no bookable charter mode")
	ErrNegativePrice   = errors.New("unit price cannot be negative")
	ErrInvalidDuration = errors.New("minimum duration must be positive")
)

// Default minimums applied when a catalog entry leaves the field unset.
const (
	DefaultMinHours  = 2
	DefaultMinNights = 3
)

// RateEntry is the per-mode rate configuration of a listing. UnitPrice
// is in whole units of the listing currency. MinDuration is hours for
// hourly charters and nights for stays; daily charters always bill
// exactly one unit and ignore it.
type RateEntry struct {
	Active      bool
	UnitPrice   int64
	MinDuration int
}

// MinimumFor resolves the effective minimum duration of the entry,
// falling back to the mode default when unset.
func (e RateEntry) MinimumFor(mode Mode) int {
	if e.MinDuration > 0 {
		return e.MinDuration
	}
	switch mode {
	case ModeHourly:
		return DefaultMinHours
	case ModeStay:
		return DefaultMinNights
	default:
		return 1
	}
}

// Bookable reports whether the entry may be offered to customers. An
// active entry without a positive price exists in the data model (the
// admin toggles the flag independently of setting a price) but must
// never be offered.
func (e RateEntry) Bookable() bool {
	return e.Active && e.UnitPrice > 0
}

func (e RateEntry) validate() error {
	if e.UnitPrice < 0 {
		return ErrNegativePrice
	}
	if e.MinDuration < 0 {
		return ErrInvalidDuration
	}
	return nil
}

// RateCatalog holds the three mode configurations of a listing.
// Missing modes are treated as inactive.
type RateCatalog map[Mode]RateEntry

func (c RateCatalog) Entry(mode Mode) RateEntry {
	return c[mode]
}

// ActiveModes returns every mode that is both active and positively
// priced, in fallback priority order.
func (c RateCatalog) ActiveModes() []Mode {
	modes := make([]Mode, 0, len(fallbackOrder))
	for _, m := range fallbackOrder {
		if c[m].Bookable() {
			modes = append(modes, m)
		}
	}
	return modes
}

// DefaultMode selects the mode to preselect for a booking form. A
// requested mode wins when it is bookable; otherwise the fixed
// fallback order daily, hourly, stay applies. An empty catalog is an
// ErrNoActiveModes condition, never a silently substituted mode.
func (c RateCatalog) DefaultMode(requested *Mode) (Mode, error) {
	if requested != nil && c[*requested].Bookable() {
		return *requested, nil
	}
	for _, m := range fallbackOrder {
		if c[m].Bookable() {
			return m, nil
		}
	}
	return "", ErrNoActiveModes
}

func (c RateCatalog) validate() error {
	for mode, entry := range c {
		if !mode.IsValid() {
			return ErrUnknownMode
		}
		if err := entry.validate(); err != nil {
			return err
		}
	}
	return nil
}
