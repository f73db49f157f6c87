package garage

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DescriptorVariant discriminates the two shapes a plug or jack entry can take.
type DescriptorVariant int

const (
	// LabelOnly entries are cosmetic headings between sockets.
	LabelOnly DescriptorVariant = iota
	// NamedSlot entries are real sockets that edges can attach to.
	NamedSlot
)

func (v DescriptorVariant) String() string {
	switch v {
	case LabelOnly:
		return "label"
	case NamedSlot:
		return "slot"
	default:
		return fmt.Sprintf("DescriptorVariant(%d)", int(v))
	}
}

// Descriptor is one entry of a vertex's plug or jack list.
type Descriptor struct {
	Variant DescriptorVariant
	// ID is set for NamedSlot only.
	ID string
	// Label is always set for LabelOnly and optional for NamedSlot.
	Label *string
}

// Label builds a cosmetic descriptor.
func Label(text string) Descriptor {
	return Descriptor{Variant: LabelOnly, Label: &text}
}

// Slot builds a named socket descriptor without a label.
func Slot(id string) Descriptor {
	return Descriptor{Variant: NamedSlot, ID: id}
}

// LabeledSlot builds a named socket descriptor with a label.
func LabeledSlot(id, label string) Descriptor {
	return Descriptor{Variant: NamedSlot, ID: id, Label: &label}
}

// LabelText returns the label, or "" when there is none.
func (d Descriptor) LabelText() string {
	if d.Label == nil {
		return ""
	}
	return *d.Label
}

func (d Descriptor) marshal(idKey string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if d.Variant == NamedSlot {
		id, err := json.Marshal(d.ID)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, "%q:%s", idKey, id)
		if d.Label == nil {
			buf.WriteByte('}')
			return buf.Bytes(), nil
		}
		buf.WriteByte(',')
	}
	label, err := json.Marshal(d.LabelText())
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(&buf, `"label":%s}`, label)
	return buf.Bytes(), nil
}

func (d *Descriptor) unmarshal(data []byte, idKey string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return fmt.Errorf("descriptor must be an object")
	}

	var out Descriptor
	if raw, ok := fields["label"]; ok {
		var label string
		if err := json.Unmarshal(raw, &label); err != nil {
			return fmt.Errorf("descriptor label: %w", err)
		}
		out.Label = &label
	}
	if raw, ok := fields[idKey]; ok {
		if err := json.Unmarshal(raw, &out.ID); err != nil {
			return fmt.Errorf("descriptor %s: %w", idKey, err)
		}
		out.Variant = NamedSlot
	} else if out.Label != nil {
		out.Variant = LabelOnly
	} else {
		return fmt.Errorf("descriptor needs either %q or \"label\"", idKey)
	}

	*d = out
	return nil
}

// PlugDescriptor is a Descriptor serialized with the `plugId` key.
type PlugDescriptor struct{ Descriptor }

func (d PlugDescriptor) MarshalJSON() ([]byte, error) { return d.marshal("plugId") }

func (d *PlugDescriptor) UnmarshalJSON(data []byte) error {
	return d.Descriptor.unmarshal(data, "plugId")
}

// JackDescriptor is a Descriptor serialized with the `jackId` key.
type JackDescriptor struct{ Descriptor }

func (d JackDescriptor) MarshalJSON() ([]byte, error) { return d.marshal("jackId") }

func (d *JackDescriptor) UnmarshalJSON(data []byte) error {
	return d.Descriptor.unmarshal(data, "jackId")
}

// Plugs wraps descriptors for use as a vertex's plug list.
func Plugs(ds ...Descriptor) []PlugDescriptor {
	out := make([]PlugDescriptor, len(ds))
	for i, d := range ds {
		out[i] = PlugDescriptor{d}
	}
	return out
}

// Jacks wraps descriptors for use as a vertex's jack list.
func Jacks(ds ...Descriptor) []JackDescriptor {
	out := make([]JackDescriptor, len(ds))
	for i, d := range ds {
		out[i] = JackDescriptor{d}
	}
	return out
}
