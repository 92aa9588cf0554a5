package host

// WithInputs returns h with inputs taking precedence over h's own inputs.
// Empty values fall through to h.
func WithInputs(h Host, inputs map[string]string) Host {
	return &overlay{Host: h, inputs: inputs}
}

type overlay struct {
	Host
	inputs map[string]string
}

func (o *overlay) Input(name string) string {
	if v := o.inputs[name]; v != "" {
		return v
	}
	return o.Host.Input(name)
}
