package kind

import "github.com/specialistvlad/verton/internal/garage"

// Template returns a new vertex of kind k with one named descriptor per
// socket, ready to be added to a garage. Config is empty; kinds that need
// settings (constant, calculate, compare) must be configured by the caller.
func Template(k garage.Kind, header string) (garage.Vertex, bool) {
	spec, ok := Lookup(k)
	if !ok {
		return garage.Vertex{}, false
	}
	v := garage.Vertex{
		Header: header,
		Kind:   k,
		Plugs:  make([]garage.PlugDescriptor, 0, len(spec.Plugs)),
		Jacks:  make([]garage.JackDescriptor, 0, len(spec.Jacks)),
		Config: garage.Config{},
	}
	for _, p := range spec.Plugs {
		v.Plugs = append(v.Plugs, garage.PlugDescriptor{Descriptor: garage.Slot(p)})
	}
	for _, j := range spec.Jacks {
		v.Jacks = append(v.Jacks, garage.JackDescriptor{Descriptor: garage.Slot(j)})
	}
	return v, true
}
