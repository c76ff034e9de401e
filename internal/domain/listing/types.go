package listing

import "errors"

var ErrUnknownMode = errors.New("unknown charter mode")

// Mode is one of the three mutually exclusive rental structures a
// listing can offer.
type Mode string

const (
	ModeHourly Mode = "hourly"
	ModeDaily  Mode = "daily"
	ModeStay   Mode = "stay"
)

// fallbackOrder is the product-defined preselection priority: daily
// charters are the most common offering, so they win ties.
var fallbackOrder = []Mode{ModeDaily, ModeHourly, ModeStay}

func (m Mode) String() string {
	return string(m)
}

func (m Mode) IsValid() bool {
	switch m {
	case ModeHourly, ModeDaily, ModeStay:
		return true
	default:
		return false
	}
}

// UnitLabel names the billing unit of the mode.
func (m Mode) UnitLabel() string {
	switch m {
	case ModeHourly:
		return "hour"
	case ModeDaily:
		return "day"
	case ModeStay:
		return "night"
	default:
		return ""
	}
}

func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.IsValid() {
		return "", ErrUnknownMode
	}
	return m, nil
}
