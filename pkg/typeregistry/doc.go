// Package typeregistry is the single source of truth for the column/value types
// a SQL-over-RPC service reports to its clients. It classifies each type
// identifier as primitive, complex or collection, supplies the canonical display
// name clients expect, and defines the metadata keys used to parameterize
// column types such as VARCHAR(n) or DECIMAL(p,s).
//
// A Registry is immutable once built and safe for concurrent use. Services
// should build one at startup and pass it to the components that need it:
//
//	import "github.com/redbco/redb-typeregistry/pkg/typeregistry"
//
//	reg := typeregistry.New(typeregistry.WithLogger(log))
//
//	func columnTypeName(reg *typeregistry.Registry, id typeregistry.TypeID) string {
//	    name, err := reg.DisplayName(id)
//	    if err != nil {
//	        // errors.Is(err, typeregistry.ErrUnknownTypeID)
//	        return ""
//	    }
//	    return name
//	}
//
// Free-form names coming from configuration or user input can be resolved
// with ParseTypeID, which accepts display names ("DECIMAL"), wire enum names
// ("DECIMAL_TYPE") and decimal ids ("15").
package typeregistry
