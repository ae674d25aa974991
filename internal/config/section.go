package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Entry struct {
	Key   string
	Value string
}

// Section is an ordered list of Key=Value entries. Order is kept so files
// survive a read and write unchanged.
type Section struct {
	entries []Entry
}

func NewSection(entries ...Entry) Section {
	return Section{entries: slices.Clone(entries)}
}

func (s Section) Clone() Section {
	return Section{entries: slices.Clone(s.entries)}
}

func (s Section) Entries() []Entry {
	return slices.Clone(s.entries)
}

func (s Section) Len() int {
	return len(s.entries)
}

// IsZero lets yaml omitempty see through the unexported entries.
func (s Section) IsZero() bool {
	return len(s.entries) == 0
}

func (s Section) Get(key string) (string, bool) {
	for _, e := range s.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

func (s *Section) Set(key, value string) {
	for i := range s.entries {
		if s.entries[i].Key == key {
			s.entries[i].Value = value
			return
		}
	}
	s.entries = append(s.entries, Entry{Key: key, Value: value})
}

func (s *Section) Delete(key string) {
	s.entries = slices.DeleteFunc(s.entries, func(e Entry) bool { return e.Key == key })
}

// GetInt returns ok false when the key is missing or not a number.
func (s Section) GetInt(key string) (int, bool) {
	v, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return i, true
}

func (s *Section) SetInt(key string, value int) {
	s.Set(key, strconv.Itoa(value))
}

// GetBool accepts 0/1 as written by SetBool plus anything strconv.ParseBool
// understands.
func (s Section) GetBool(key string) (bool, bool) {
	v, ok := s.Get(key)
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

func (s *Section) SetBool(key string, value bool) {
	if value {
		s.Set(key, "1")
	} else {
		s.Set(key, "0")
	}
}

func (s Section) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range s.entries {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Value},
		)
	}
	return node, nil
}

func (s *Section) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: section must be a mapping", value.Line)
	}

	s.entries = nil
	for i := 0; i+1 < len(value.Content); i += 2 {
		k, v := value.Content[i], value.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: value of %q must be a scalar", v.Line, k.Value)
		}
		s.entries = append(s.entries, Entry{Key: k.Value, Value: v.Value})
	}
	return nil
}

func (s Section) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range s.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *Section) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("section must be an object")
	}

	s.entries = nil
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}

		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			// Accept bare numbers and booleans.
			value = string(raw)
		}
		s.entries = append(s.entries, Entry{Key: key, Value: value})
	}

	_, err = dec.Token()
	return err
}
