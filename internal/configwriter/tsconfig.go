package configwriter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// mergeTSConfigPaths sets compilerOptions.baseUrl and adds paths entries,
// keeping every other key in its original order.
func mergeTSConfigPaths(data []byte, baseURL string, paths map[string][]string) ([]byte, error) {
	root, err := parseObject(data)
	if err != nil {
		return nil, fmt.Errorf("parsing tsconfig: %w", err)
	}

	opts := newObject()
	if raw, ok := root.values["compilerOptions"]; ok {
		if opts, err = parseObject(raw); err != nil {
			return nil, fmt.Errorf("parsing compilerOptions: %w", err)
		}
	}

	if baseURL != "" {
		if err := opts.setValue("baseUrl", baseURL); err != nil {
			return nil, err
		}
	}

	if len(paths) > 0 {
		p := newObject()
		if raw, ok := opts.values["paths"]; ok {
			if p, err = parseObject(raw); err != nil {
				return nil, fmt.Errorf("parsing compilerOptions.paths: %w", err)
			}
		}
		keys := make([]string, 0, len(paths))
		for k := range paths {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := p.setValue(k, paths[k]); err != nil {
				return nil, err
			}
		}
		opts.setObject("paths", p)
	}

	root.setObject("compilerOptions", opts)

	var out bytes.Buffer
	if err := root.write(&out, ""); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	if !json.Valid(out.Bytes()) {
		return nil, fmt.Errorf("merged tsconfig is not valid JSON")
	}
	return out.Bytes(), nil
}

// object is a JSON object that remembers key order. Values that are never
// set keep their original bytes.
type object struct {
	keys     []string
	values   map[string]json.RawMessage
	children map[string]*object
}

func newObject() *object {
	return &object{values: map[string]json.RawMessage{}, children: map[string]*object{}}
}

func parseObject(data []byte) (*object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected an object, got %v", tok)
	}

	o := newObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected a key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("value of %q: %w", key, err)
		}
		o.set(key, raw)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after object")
	}
	return o, nil
}

func (o *object) set(key string, raw json.RawMessage) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = raw
	delete(o.children, key)
}

func (o *object) setValue(key string, v any) error {
	raw, err := encode(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	o.set(key, raw)
	return nil
}

func (o *object) setObject(key string, child *object) {
	o.set(key, nil)
	o.children[key] = child
}

// write prints o with two-space indentation. Untouched values are copied
// verbatim.
func (o *object) write(buf *bytes.Buffer, indent string) error {
	if len(o.keys) == 0 {
		buf.WriteString("{}")
		return nil
	}
	buf.WriteString("{\n")
	for i, k := range o.keys {
		key, err := encode(k)
		if err != nil {
			return err
		}
		buf.WriteString(indent + "  ")
		buf.Write(key)
		buf.WriteString(": ")
		if child, ok := o.children[k]; ok {
			if err := child.write(buf, indent+"  "); err != nil {
				return err
			}
		} else {
			buf.Write(o.values[k])
		}
		if i < len(o.keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(indent + "}")
	return nil
}

// encode marshals v on one line without escaping <, > and &.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
