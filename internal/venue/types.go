package venue

import "fmt"

// Side is which side of the book an order or trade sits on.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// ParseSide parses the wire-level "buy"/"sell" strings.
func ParseSide(s string) (Side, error) {
	switch s {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return 0, fmt.Errorf("%w: side %q", ErrInvalidEnum, s)
	}
}

// MarshalJSON renders a Side as its wire-level string, never a bare int.
func (s Side) MarshalJSON() ([]byte, error) { return []byte(`"` + s.String() + `"`), nil }

// UnmarshalJSON accepts only the wire-level "buy"/"sell" strings.
func (s *Side) UnmarshalJSON(b []byte) error {
	str := string(b)
	if len(str) < 2 || str[0] != '"' || str[len(str)-1] != '"' {
		return fmt.Errorf("%w: side %s", ErrInvalidEnum, str)
	}
	parsed, err := ParseSide(str[1 : len(str)-1])
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// OrderType is one of the five order-submission behaviors spec.md §3 names.
type OrderType int

const (
	Market OrderType = iota
	Limit
	IOC
	FOK
	StopLoss
)

func (t OrderType) String() string {
	switch t {
	case Market:
		return "market"
	case Limit:
		return "limit"
	case IOC:
		return "ioc"
	case FOK:
		return "fok"
	case StopLoss:
		return "stoploss"
	default:
		return fmt.Sprintf("OrderType(%d)", int(t))
	}
}

// ParseOrderType parses the wire-level order_type strings.
func ParseOrderType(s string) (OrderType, error) {
	switch s {
	case "market":
		return Market, nil
	case "limit":
		return Limit, nil
	case "ioc":
		return IOC, nil
	case "fok":
		return FOK, nil
	case "stoploss":
		return StopLoss, nil
	default:
		return 0, fmt.Errorf("%w: order_type %q", ErrInvalidEnum, s)
	}
}

// MarshalJSON renders an OrderType as its wire-level string.
func (t OrderType) MarshalJSON() ([]byte, error) { return []byte(`"` + t.String() + `"`), nil }

// UnmarshalJSON accepts only the wire-level order_type strings.
func (t *OrderType) UnmarshalJSON(b []byte) error {
	str := string(b)
	if len(str) < 2 || str[0] != '"' || str[len(str)-1] != '"' {
		return fmt.Errorf("%w: order_type %s", ErrInvalidEnum, str)
	}
	parsed, err := ParseOrderType(str[1 : len(str)-1])
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Status is the outcome of a submit, cancel, or modify operation.
type Status string

const (
	StatusFilled     Status = "filled"
	StatusPartial    Status = "partial"
	StatusResting    Status = "resting"
	StatusCanceled   Status = "canceled"
	StatusModified   Status = "modified"
	StatusStopPlaced Status = "stop_placed"
)

// ReasonFOKNotFillable is the reason string surfaced on a canceled FOK.
const ReasonFOKNotFillable = "fok_not_fillable"
