package fitting

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"Ducted/internal/calc/calcerr"
	"Ducted/internal/calc/duct"
)

// Config names one fitting and the duct shape it sits in. On the wire the
// variant parameters live under "params":
//
//	{"type": "elbow", "shape": "round", "params": {"radius_ratio": 1.5}}
type Config struct {
	Fitting Fitting
	Shape   duct.Shape
}

type wireJSON struct {
	Type   Type            `json:"type"`
	Shape  duct.Shape      `json:"shape,omitempty"`
	Params json.RawMessage `json:"params,omitempty"`
}

type wireYAML struct {
	Type   Type       `yaml:"type"`
	Shape  duct.Shape `yaml:"shape,omitempty"`
	Params yaml.Node  `yaml:"params,omitempty"`
}

func (c Config) MarshalJSON() ([]byte, error) {
	if c.Fitting == nil {
		return nil, fmt.Errorf("fitting config has no fitting")
	}
	params, err := json.Marshal(c.Fitting)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireJSON{Type: c.Fitting.Type(), Shape: c.Shape, Params: params})
}

// UnmarshalJSON rejects unknown fitting types and unknown parameter names
// instead of falling back to a default K-factor.
func (c *Config) UnmarshalJSON(data []byte) error {
	var w wireJSON
	if err := strictJSON(data, &w); err != nil {
		return calcerr.InvalidInput(opDecode, "fitting", nil, err.Error())
	}
	f, err := variantFor(w.Type)
	if err != nil {
		return err
	}
	if len(w.Params) > 0 && !bytes.Equal(bytes.TrimSpace(w.Params), []byte("null")) {
		if err := strictJSON(w.Params, f); err != nil {
			return calcerr.InvalidInput(opDecode, "params", nil, fmt.Sprintf("%s: %v", w.Type, err))
		}
	}
	return c.set(f, w.Shape)
}

func (c Config) MarshalYAML() (any, error) {
	if c.Fitting == nil {
		return nil, fmt.Errorf("fitting config has no fitting")
	}
	return struct {
		Type   Type       `yaml:"type"`
		Shape  duct.Shape `yaml:"shape,omitempty"`
		Params Fitting    `yaml:"params,omitempty"`
	}{c.Fitting.Type(), c.Shape, c.Fitting}, nil
}

func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	var w wireYAML
	if err := strictYAML(value, &w); err != nil {
		return calcerr.InvalidInput(opDecode, "fitting", nil, err.Error())
	}
	f, err := variantFor(w.Type)
	if err != nil {
		return err
	}
	if !w.Params.IsZero() {
		if err := strictYAML(&w.Params, f); err != nil {
			return calcerr.InvalidInput(opDecode, "params", nil, fmt.Sprintf("%s: %v", w.Type, err))
		}
	}
	return c.set(f, w.Shape)
}

func (c *Config) set(f Fitting, shape duct.Shape) error {
	if err := f.check(); err != nil {
		return calcerr.InvalidInput(opDecode, "params", nil, fmt.Sprintf("%s: %v", f.Type(), err))
	}
	c.Fitting = f
	c.Shape = shape
	return nil
}

const opDecode = "fitting.decode"

func variantFor(t Type) (Fitting, error) {
	if t == "" {
		return nil, calcerr.InvalidInput(opDecode, "type", nil, "fitting type is missing")
	}
	f, ok := newVariant(t)
	if !ok {
		return nil, calcerr.InvalidInput(opDecode, "type", string(t), "unknown fitting type")
	}
	return f, nil
}

func strictJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// strictYAML re-encodes a node so the decoder can reject unknown keys;
// yaml.Node.Decode has no such option.
func strictYAML(n *yaml.Node, v any) error {
	raw, err := yaml.Marshal(n)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	return dec.Decode(v)
}

// ParseInline builds a Config from a type name and parameters written as
// "key=value;key=value". Values that parse as numbers or booleans are
// passed as such; the usual decoding checks apply.
func ParseInline(typ, params string) (Config, error) {
	p := map[string]any{}
	for _, pair := range strings.Split(params, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return Config{}, calcerr.InvalidInput(opDecode, "params", pair, "parameter is not key=value")
		}
		p[strings.TrimSpace(k)] = scalar(strings.TrimSpace(v))
	}
	raw, err := json.Marshal(map[string]any{"type": strings.ToLower(strings.TrimSpace(typ)), "params": p})
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func scalar(s string) any {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}
