package constant

import "fmt"

type OrderStatus int

const (
	OrderStatusPending   OrderStatus = 1
	OrderStatusConfirmed OrderStatus = 2
)

var orderStatusNames = map[OrderStatus]string{
	OrderStatusPending:   "pending",
	OrderStatusConfirmed: "confirmed",
}

func (s OrderStatus) String() string {
	if name, ok := orderStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// MarshalText renders the status by name in JSON; the database keeps the number.
func (s OrderStatus) MarshalText() ([]byte, error) {
	if _, ok := orderStatusNames[s]; !ok {
		return nil, fmt.Errorf("unknown order status %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *OrderStatus) UnmarshalText(b []byte) error {
	for status, name := range orderStatusNames {
		if name == string(b) {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown order status %q", b)
}
