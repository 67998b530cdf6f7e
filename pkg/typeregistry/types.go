package typeregistry

import (
	"fmt"
	"strings"
)

// TypeID is the wire identifier of a column/value type. The numeric values are
// fixed by the RPC protocol and must never be renumbered.
type TypeID int32

const (
	// Scalars
	Boolean   TypeID = 0
	TinyInt   TypeID = 1
	SmallInt  TypeID = 2
	Int       TypeID = 3
	BigInt    TypeID = 4
	Float     TypeID = 5
	Double    TypeID = 6
	String    TypeID = 7
	Timestamp TypeID = 8
	Binary    TypeID = 9

	// Nested
	Array       TypeID = 10
	Map         TypeID = 11
	Struct      TypeID = 12
	Union       TypeID = 13
	UserDefined TypeID = 14

	// Scalars added in later protocol versions
	Decimal           TypeID = 15
	Null              TypeID = 16
	Date              TypeID = 17
	Varchar           TypeID = 18
	Char              TypeID = 19
	IntervalYearMonth TypeID = 20
	IntervalDayTime   TypeID = 21
	TimestampLocalTZ  TypeID = 22
)

var wireNames = map[TypeID]string{
	Boolean:           "BOOLEAN_TYPE",
	TinyInt:           "TINYINT_TYPE",
	SmallInt:          "SMALLINT_TYPE",
	Int:               "INT_TYPE",
	BigInt:            "BIGINT_TYPE",
	Float:             "FLOAT_TYPE",
	Double:            "DOUBLE_TYPE",
	String:            "STRING_TYPE",
	Timestamp:         "TIMESTAMP_TYPE",
	Binary:            "BINARY_TYPE",
	Array:             "ARRAY_TYPE",
	Map:               "MAP_TYPE",
	Struct:            "STRUCT_TYPE",
	Union:             "UNION_TYPE",
	UserDefined:       "USER_DEFINED_TYPE",
	Decimal:           "DECIMAL_TYPE",
	Null:              "NULL_TYPE",
	Date:              "DATE_TYPE",
	Varchar:           "VARCHAR_TYPE",
	Char:              "CHAR_TYPE",
	IntervalYearMonth: "INTERVAL_YEAR_MONTH_TYPE",
	IntervalDayTime:   "INTERVAL_DAY_TIME_TYPE",
	TimestampLocalTZ:  "TIMESTAMP_WITH_LOCAL_TIME_ZONE_TYPE",
}

// String returns the wire enum name of the id, e.g. "DECIMAL_TYPE".
// Use Registry.DisplayName for the client-facing label.
func (id TypeID) String() string {
	if s, ok := wireNames[id]; ok {
		return s
	}
	return fmt.Sprintf("TypeID(%d)", int32(id))
}

// Category is a set of type classification flags. A type may carry more than
// one flag: every collection type is also complex.
type Category uint8

const (
	Primitive Category = 1 << iota
	Complex
	Collection
)

var categoryNames = []struct {
	flag Category
	name string
}{
	{Primitive, "primitive"},
	{Complex, "complex"},
	{Collection, "collection"},
}

// Has reports whether every flag in f is set in c.
func (c Category) Has(f Category) bool {
	return f != 0 && c&f == f
}

// Names returns the lowercase names of the flags set in c.
func (c Category) Names() []string {
	out := make([]string, 0, len(categoryNames))
	for _, cn := range categoryNames {
		if c&cn.flag != 0 {
			out = append(out, cn.name)
		}
	}
	return out
}

func (c Category) String() string {
	if c == 0 {
		return "none"
	}
	return strings.Join(c.Names(), ",")
}

// MarshalText renders the flag set as a comma separated list so descriptors
// encode cleanly as JSON and YAML. The empty set encodes as "".
func (c Category) MarshalText() ([]byte, error) {
	return []byte(strings.Join(c.Names(), ",")), nil
}

// MetadataKind enumerates the attributes that parameterize a column type.
type MetadataKind int

const (
	CharacterMaximumLength MetadataKind = iota
	Precision
	Scale
)

// Attribute keys as they appear in per-column type qualifier maps.
const (
	CharacterMaximumLengthKey = "characterMaximumLength"
	PrecisionKey              = "precision"
	ScaleKey                  = "scale"
)

// MetadataKinds lists every metadata kind in declaration order.
var MetadataKinds = []MetadataKind{CharacterMaximumLength, Precision, Scale}

// Key returns the attribute key for the kind, or "" for an undefined kind.
func (k MetadataKind) Key() string {
	switch k {
	case CharacterMaximumLength:
		return CharacterMaximumLengthKey
	case Precision:
		return PrecisionKey
	case Scale:
		return ScaleKey
	default:
		return ""
	}
}

func (k MetadataKind) String() string {
	if key := k.Key(); key != "" {
		return key
	}
	return fmt.Sprintf("MetadataKind(%d)", int(k))
}

func (k MetadataKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// MetadataKey returns the attribute key for kind.
func MetadataKey(kind MetadataKind) string {
	return kind.Key()
}

// Descriptor is a snapshot of everything the registry knows about one type.
type Descriptor struct {
	ID         TypeID         `json:"id" yaml:"id"`
	Name       string         `json:"name" yaml:"name"`
	WireName   string         `json:"wireName" yaml:"wireName"`
	Categories Category       `json:"categories" yaml:"categories"`
	Qualifiers []MetadataKind `json:"qualifiers,omitempty" yaml:"qualifiers,omitempty"`
}
