package garage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// ConfigKind discriminates the value types a vertex config entry can hold.
type ConfigKind int

const (
	NumberValue ConfigKind = iota
	StringValue
	ChoiceValue
)

func (k ConfigKind) String() string {
	switch k {
	case NumberValue:
		return "number"
	case StringValue:
		return "string"
	case ChoiceValue:
		return "choice"
	default:
		return fmt.Sprintf("ConfigKind(%d)", int(k))
	}
}

// Choice is a selection from a fixed list, as stored by the editor for
// drop-down settings such as a click vertex's `send`.
type Choice struct {
	Chosen  string   `json:"chosen"`
	Choices []string `json:"choices,omitempty"`
}

// ConfigValue is a tagged union of the supported config value types.
type ConfigValue struct {
	Kind   ConfigKind
	Number float64
	String string
	Choice Choice
}

// Number builds a numeric config value.
func Number(v float64) ConfigValue { return ConfigValue{Kind: NumberValue, Number: v} }

// String builds a text config value.
func String(s string) ConfigValue { return ConfigValue{Kind: StringValue, String: s} }

// ChoiceOf builds a choice config value.
func ChoiceOf(chosen string, choices ...string) ConfigValue {
	return ConfigValue{Kind: ChoiceValue, Choice: Choice{Chosen: chosen, Choices: choices}}
}

// AsNumber returns the value when it is numeric.
func (v ConfigValue) AsNumber() (float64, bool) {
	if v.Kind != NumberValue {
		return 0, false
	}
	return v.Number, true
}

// AsText returns a string value, or the chosen entry of a choice.
func (v ConfigValue) AsText() (string, bool) {
	switch v.Kind {
	case StringValue:
		return v.String, true
	case ChoiceValue:
		return v.Choice.Chosen, true
	default:
		return "", false
	}
}

func (v ConfigValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case NumberValue:
		return json.Marshal(v.Number)
	case StringValue:
		return json.Marshal(v.String)
	case ChoiceValue:
		return json.Marshal(v.Choice)
	default:
		return nil, fmt.Errorf("unknown config value kind %s", v.Kind)
	}
}

func (v *ConfigValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty config value")
	}
	switch data[0] {
	case 'n':
		return fmt.Errorf("config value cannot be null")
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = String(s)
	case '{':
		var c Choice
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}
		*v = ConfigValue{Kind: ChoiceValue, Choice: c}
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("config value must be a number, string or choice object: %s", data)
		}
		*v = Number(n)
	}
	return nil
}

// Config is a vertex's kind-specific settings.
type Config map[string]ConfigValue

// UnmarshalJSON accepts an empty JSON array as an empty config, which is what
// older editor builds wrote for vertexes without settings.
func (c *Config) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*c = nil
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		if len(items) != 0 {
			return fmt.Errorf("config must be an object, got a non-empty array")
		}
		*c = Config{}
		return nil
	}
	var m map[string]ConfigValue
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return err
	}
	*c = m
	return nil
}

// Keys returns the config keys in sorted order.
func (c Config) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
