package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/redbco/redb-typeregistry/cmd/typectl/internal/config"
	"github.com/redbco/redb-typeregistry/pkg/logger"
	"github.com/redbco/redb-typeregistry/pkg/typeregistry"
	"gopkg.in/yaml.v3"
)

// MetadataKey is one row of the keys listing.
type MetadataKey struct {
	Kind string `json:"kind" yaml:"kind"`
	Key  string `json:"key" yaml:"key"`
}

// ListTypes writes every registered type to w.
func ListTypes(w io.Writer, reg *typeregistry.Registry, format string) error {
	descriptors := reg.Descriptors()
	if format != config.OutputTable {
		return encode(w, format, descriptors)
	}
	return writeDescriptorTable(w, descriptors)
}

// DescribeTypes resolves each argument (id or name) and writes its descriptor.
// Every argument is attempted; unresolved ones are reported in the returned error.
func DescribeTypes(w io.Writer, reg *typeregistry.Registry, log *logger.Logger, args []string, format string) error {
	var (
		found []typeregistry.Descriptor
		errs  []error
	)
	for _, arg := range args {
		id, ok := reg.ParseTypeID(arg)
		if !ok {
			log.WithFields(map[string]string{"arg": arg}).Warn("unknown type")
			errs = append(errs, fmt.Errorf("%q: %w", arg, typeregistry.ErrUnknownTypeID))
			continue
		}
		d, err := reg.Describe(id)
		if err != nil {
			log.WithFields(map[string]string{"arg": arg, "type_id": strconv.Itoa(int(id))}).Warn("unknown type")
			errs = append(errs, fmt.Errorf("%q: %w", arg, err))
			continue
		}
		found = append(found, d)
	}

	if len(found) > 0 {
		var err error
		if format != config.OutputTable {
			err = encode(w, format, found)
		} else {
			err = writeDescriptorTable(w, found)
		}
		if err != nil {
			return err
		}
	}
	return errors.Join(errs...)
}

// ListKeys writes the metadata attribute keys.
func ListKeys(w io.Writer, reg *typeregistry.Registry, format string) error {
	keys := make([]MetadataKey, 0, len(typeregistry.MetadataKinds))
	for _, kind := range typeregistry.MetadataKinds {
		keys = append(keys, MetadataKey{Kind: kindName(kind), Key: reg.MetadataKey(kind)})
	}
	if format != config.OutputTable {
		return encode(w, format, keys)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "KIND\tKEY")
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%s\n", k.Kind, k.Key)
	}
	return tw.Flush()
}

// Check validates the registry invariants and prints a summary.
func Check(w io.Writer, reg *typeregistry.Registry, log *logger.Logger) error {
	if err := reg.Validate(); err != nil {
		log.Errorf("type registry check failed: %v", err)
		return fmt.Errorf("type registry is inconsistent: %w", err)
	}

	var primitive, complexTypes, collection int
	for _, id := range reg.IDs() {
		if reg.IsPrimitive(id) {
			primitive++
		}
		if reg.IsComplex(id) {
			complexTypes++
		}
		if reg.IsCollection(id) {
			collection++
		}
	}
	fmt.Fprintf(w, "OK: %d types (%d primitive, %d complex, %d collection)\n",
		len(reg.IDs()), primitive, complexTypes, collection)
	return nil
}

func kindName(kind typeregistry.MetadataKind) string {
	switch kind {
	case typeregistry.CharacterMaximumLength:
		return "CharacterMaximumLength"
	case typeregistry.Precision:
		return "Precision"
	case typeregistry.Scale:
		return "Scale"
	default:
		return kind.String()
	}
}

func writeDescriptorTable(w io.Writer, descriptors []typeregistry.Descriptor) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tWIRE NAME\tCATEGORIES\tQUALIFIERS")
	for _, d := range descriptors {
		qualifiers := make([]string, 0, len(d.Qualifiers))
		for _, q := range d.Qualifiers {
			qualifiers = append(qualifiers, q.Key())
		}
		q := strings.Join(qualifiers, ",")
		if q == "" {
			q = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", d.ID, d.Name, d.WireName, d.Categories, q)
	}
	return tw.Flush()
}

func encode(w io.Writer, format string, v interface{}) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return config.ValidateOutput(format)
	}
}
