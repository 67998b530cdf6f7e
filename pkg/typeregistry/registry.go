package typeregistry

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// Logger is the subset of pkg/logger the registry writes to.
type Logger interface {
	Debugf(format string, args ...interface{})
}

type definition struct {
	id         TypeID
	name       string
	categories Category
	qualifiers []MetadataKind
}

// builtinTypes is the closed set of types known to the protocol.
var builtinTypes = []definition{
	{id: Boolean, name: "BOOLEAN", categories: Primitive},
	{id: TinyInt, name: "TINYINT", categories: Primitive},
	{id: SmallInt, name: "SMALLINT", categories: Primitive},
	{id: Int, name: "INT", categories: Primitive},
	{id: BigInt, name: "BIGINT", categories: Primitive},
	{id: Float, name: "FLOAT", categories: Primitive},
	{id: Double, name: "DOUBLE", categories: Primitive},
	{id: String, name: "STRING", categories: Primitive},
	{id: Timestamp, name: "TIMESTAMP", categories: Primitive},
	{id: Binary, name: "BINARY", categories: Primitive},
	{id: Array, name: "ARRAY", categories: Complex | Collection},
	{id: Map, name: "MAP", categories: Complex | Collection},
	{id: Struct, name: "STRUCT", categories: Complex},
	{id: Union, name: "UNIONTYPE", categories: Complex},
	// The protocol constants leave this id unnamed; USER_DEFINED is the label
	// clients already render for it.
	{id: UserDefined, name: "USER_DEFINED", categories: Complex},
	{id: Decimal, name: "DECIMAL", categories: Primitive, qualifiers: []MetadataKind{Precision, Scale}},
	{id: Null, name: "NULL", categories: Primitive},
	{id: Date, name: "DATE", categories: Primitive},
	{id: Varchar, name: "VARCHAR", categories: Primitive, qualifiers: []MetadataKind{CharacterMaximumLength}},
	{id: Char, name: "CHAR", categories: Primitive, qualifiers: []MetadataKind{CharacterMaximumLength}},
	{id: IntervalYearMonth, name: "INTERVAL_YEAR_MONTH", categories: Primitive},
	{id: IntervalDayTime, name: "INTERVAL_DAY_TIME", categories: Primitive},
	{id: TimestampLocalTZ, name: "TIMESTAMP WITH LOCAL TIME ZONE", categories: Primitive},
}

// Registry answers classification and naming queries for type ids.
// It is never modified after New returns.
type Registry struct {
	entries map[TypeID]definition
	ids     []TypeID
	byName  map[string]TypeID
	log     Logger
}

// Option configures a Registry at construction.
type Option func(*Registry)

// WithLogger routes the registry's debug output to l. A nil l disables it.
func WithLogger(l Logger) Option {
	return func(r *Registry) {
		r.log = l
	}
}

// New builds a registry holding every type known to the protocol.
func New(opts ...Option) *Registry {
	return newRegistry(builtinTypes, opts...)
}

func newRegistry(defs []definition, opts ...Option) *Registry {
	r := &Registry{
		entries: make(map[TypeID]definition, len(defs)),
		ids:     make([]TypeID, 0, len(defs)),
		byName:  make(map[string]TypeID, len(defs)*2),
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, d := range defs {
		if len(d.qualifiers) > 0 {
			d.qualifiers = append([]MetadataKind(nil), d.qualifiers...)
		}
		r.entries[d.id] = d
		r.ids = append(r.ids, d.id)

		// Display name, then wire enum name; display names win on collision.
		if d.name != "" {
			r.byName[fold(d.name)] = d.id
		}
	}
	for _, d := range defs {
		if wire, ok := wireNames[d.id]; ok {
			if _, taken := r.byName[fold(wire)]; !taken {
				r.byName[fold(wire)] = d.id
			}
		}
	}
	sort.Slice(r.ids, func(i, j int) bool { return r.ids[i] < r.ids[j] })

	r.debugf("type registry initialized with %d types", len(r.ids))
	return r
}

var defaultRegistry = sync.OnceValue(func() *Registry { return New() })

// Default returns a process-wide registry, built on first use. Prefer passing
// a *Registry explicitly; Default is meant for main packages and tools.
func Default() *Registry {
	return defaultRegistry()
}

func (r *Registry) debugf(format string, args ...interface{}) {
	if r.log != nil {
		r.log.Debugf(format, args...)
	}
}

// fold returns the caseless form of s used as the name index key.
// A Caser is stateful, so one is created per call.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Known reports whether id belongs to the registry.
func (r *Registry) Known(id TypeID) bool {
	_, ok := r.entries[id]
	return ok
}

// Categories returns the flag set of id and whether id is known.
func (r *Registry) Categories(id TypeID) (Category, bool) {
	d, ok := r.entries[id]
	return d.categories, ok
}

// IsPrimitive reports whether id is a scalar type. Unknown ids return false.
func (r *Registry) IsPrimitive(id TypeID) bool {
	return r.entries[id].categories.Has(Primitive)
}

// IsComplex reports whether id is a nested type. Unknown ids return false.
func (r *Registry) IsComplex(id TypeID) bool {
	return r.entries[id].categories.Has(Complex)
}

// IsCollection reports whether id is a homogeneous container (ARRAY, MAP).
// Unknown ids return false.
func (r *Registry) IsCollection(id TypeID) bool {
	return r.entries[id].categories.Has(Collection)
}

// DisplayName returns the canonical uppercase label of id. For an unknown id
// the error wraps ErrUnknownTypeID and is an *UnknownTypeIDError.
func (r *Registry) DisplayName(id TypeID) (string, error) {
	d, ok := r.entries[id]
	if !ok {
		r.debugf("display name requested for unknown type id %d", int32(id))
		return "", &UnknownTypeIDError{ID: id}
	}
	return d.name, nil
}

// MustDisplayName returns the display name of id or panics if id is unknown.
func (r *Registry) MustDisplayName(id TypeID) string {
	name, err := r.DisplayName(id)
	if err != nil {
		panic("typeregistry: " + err.Error())
	}
	return name
}

// MetadataKey returns the attribute key for kind.
func (r *Registry) MetadataKey(kind MetadataKind) string {
	return kind.Key()
}

// Qualifiers returns the metadata kinds that parameterize columns of type id,
// e.g. precision and scale for DECIMAL. The result is a copy.
func (r *Registry) Qualifiers(id TypeID) []MetadataKind {
	d, ok := r.entries[id]
	if !ok || len(d.qualifiers) == 0 {
		return nil
	}
	return append([]MetadataKind(nil), d.qualifiers...)
}

// Describe returns a snapshot of id's entry.
func (r *Registry) Describe(id TypeID) (Descriptor, error) {
	d, ok := r.entries[id]
	if !ok {
		r.debugf("descriptor requested for unknown type id %d", int32(id))
		return Descriptor{}, fmt.Errorf("describe type: %w", &UnknownTypeIDError{ID: id})
	}
	return Descriptor{
		ID:         d.id,
		Name:       d.name,
		WireName:   d.id.String(),
		Categories: d.categories,
		Qualifiers: r.Qualifiers(id),
	}, nil
}

// IDs returns every known id in ascending order.
func (r *Registry) IDs() []TypeID {
	return append([]TypeID(nil), r.ids...)
}

// Descriptors returns a descriptor for every known id in ascending id order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.ids))
	for _, id := range r.ids {
		d, _ := r.Describe(id)
		out = append(out, d)
	}
	return out
}

// ParseTypeID resolves a free-form name to a type id. It accepts display
// names ("timestamp with local time zone"), wire enum names ("DECIMAL_TYPE")
// and decimal ids ("15"), ignoring case and surrounding space.
func (r *Registry) ParseTypeID(name string) (TypeID, bool) {
	n := strings.TrimSpace(name)
	if n == "" {
		return 0, false
	}
	if v, err := strconv.ParseInt(n, 10, 32); err == nil {
		id := TypeID(v)
		return id, r.Known(id)
	}
	id, ok := r.byName[fold(n)]
	return id, ok
}

// Validate checks the classification invariants: no type is both primitive
// and complex, every collection is complex, every type has one category
// and a display name. All violations are reported together.
func (r *Registry) Validate() error {
	var errs []error
	for _, id := range r.ids {
		d := r.entries[id]
		c := d.categories
		if c.Has(Primitive) && c.Has(Complex) {
			errs = append(errs, fmt.Errorf("type %d (%s) is both primitive and complex", int32(id), id))
		}
		if c.Has(Collection) && !c.Has(Complex) {
			errs = append(errs, fmt.Errorf("type %d (%s) is a collection but not complex", int32(id), id))
		}
		if !c.Has(Primitive) && !c.Has(Complex) {
			errs = append(errs, fmt.Errorf("type %d (%s) has no category", int32(id), id))
		}
		if d.name == "" {
			errs = append(errs, fmt.Errorf("type %d (%s) has no display name", int32(id), id))
		}
	}
	return errors.Join(errs...)
}
