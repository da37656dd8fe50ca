package graph

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateTimeLayout is the wire format of the DateTime scalar.
const DateTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// DateTime is the DateTime scalar. Output is always UTC.
type DateTime struct {
	time.Time
}

// ImplementsGraphQLType maps this Go type to the DateTime scalar.
func (DateTime) ImplementsGraphQLType(name string) bool {
	return name == "DateTime"
}

// UnmarshalGraphQL accepts RFC 3339 strings.
func (t *DateTime) UnmarshalGraphQL(input interface{}) error {
	switch v := input.(type) {
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return fmt.Errorf("invalid DateTime %q: %w", v, err)
		}
		t.Time = parsed.UTC()
		return nil
	case time.Time:
		t.Time = v.UTC()
		return nil
	default:
		return fmt.Errorf("wrong type for DateTime: %T", input)
	}
}

// String formats the value as it appears on the wire.
func (t DateTime) String() string {
	return t.UTC().Format(DateTimeLayout)
}

// MarshalJSON implements json.Marshaler.
func (t DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}
