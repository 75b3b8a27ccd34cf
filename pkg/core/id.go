package core

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ID identifies notes and lines. The zero value means "none".
type ID string

// IsZero reports whether the id is unset.
func (id ID) IsZero() bool { return id == "" }

// String implements fmt.Stringer.
func (id ID) String() string { return string(id) }

// UnmarshalJSON accepts both strings and bare numbers.
// Snapshots written by the browser widget carried millisecond timestamps as
// numeric ids; their digits are kept verbatim.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}

// UnmarshalYAML accepts any scalar node.
func (id *ID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("invalid id at line %d: expected scalar", node.Line)
	}
	*id = ID(node.Value)
	return nil
}

// IDGenerator produces identifiers for new notes and lines.
type IDGenerator interface {
	NewID() ID
}

// IDGeneratorFunc adapts a plain function to IDGenerator.
type IDGeneratorFunc func() ID

// NewID implements IDGenerator.
func (f IDGeneratorFunc) NewID() ID { return f() }

// UUIDGenerator issues random UUIDs. Unlike wall-clock ids they cannot
// collide when two lines are created within the same tick.
var UUIDGenerator IDGenerator = IDGeneratorFunc(func() ID {
	return ID(uuid.NewString())
})
