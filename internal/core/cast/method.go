package cast

import (
	"fmt"
	"strings"
)

// Method names a casting procedure.
type Method int

const (
	MethodUnspecified Method = iota
	MethodCoin
	MethodYarrow
	MethodNumber
	MethodTime
	MethodManual
)

// Methods lists every casting method.
var Methods = []Method{MethodCoin, MethodYarrow, MethodNumber, MethodTime, MethodManual}

func (m Method) String() string {
	switch m {
	case MethodCoin:
		return "coin"
	case MethodYarrow:
		return "yarrow"
	case MethodNumber:
		return "number"
	case MethodTime:
		return "time"
	case MethodManual:
		return "manual"
	default:
		return "unspecified"
	}
}

// Random reports whether the method draws from a Source.
func (m Method) Random() bool {
	return m == MethodCoin || m == MethodYarrow
}

// ParseMethod resolves a method label. Traditional names are accepted as
// aliases.
func ParseMethod(raw string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "coin", "coins":
		return MethodCoin, nil
	case "yarrow", "dayan":
		return MethodYarrow, nil
	case "number", "numbers", "meihua_number":
		return MethodNumber, nil
	case "time", "meihua_time":
		return MethodTime, nil
	case "manual":
		return MethodManual, nil
	default:
		return MethodUnspecified, fmt.Errorf("%w: %q", ErrUnknownMethod, raw)
	}
}

// MarshalText encodes the method label.
func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a method label.
func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
