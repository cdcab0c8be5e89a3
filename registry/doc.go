// Package registry owns the collection of stored organization trees.
//
// A Registry assigns monotonically increasing int64 identifiers, serializes
// every read and mutation of a single tree behind that tree's own lock, and
// lets operations on different trees proceed in parallel. Mutations are
// computed on a copy of the tree and committed only after the configured
// Store accepts the new document, so a failed save leaves the previous
// version in place.
//
// # Example
//
//	reg, err := registry.New(registry.WithLogger(document.NewSlogAdapter(slog.Default())))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	id, err := reg.Create(body)
//	...
//	out, err := reg.InsertNode(id, "person[@id='1']/children", fragment)
package registry
