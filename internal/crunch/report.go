package crunch

import (
	"fmt"
	"io"
	"text/tabwriter"

	"jsmin/internal/symbols"
)

// Entry describes one binding considered by the pass.
type Entry struct {
	ScopeID   uint32 `msgpack:"scope" json:"scope" yaml:"scope"`
	ScopeKind string `msgpack:"kind" json:"kind" yaml:"kind"`
	Name      string `msgpack:"name" json:"name" yaml:"name"`
	Crunched  string `msgpack:"crunched,omitempty" json:"crunched,omitempty" yaml:"crunched,omitempty"`
	Type      string `msgpack:"type" json:"type" yaml:"type"`
	Refs      int    `msgpack:"refs" json:"refs" yaml:"refs"`
}

// Report lists the bindings in the order they were processed.
type Report struct {
	Entries []Entry `msgpack:"entries" json:"entries" yaml:"entries"`
	Renamed int     `msgpack:"renamed" json:"renamed" yaml:"renamed"`
}

func (r *Report) add(scope *symbols.Scope, f *symbols.Field, renamed bool) {
	e := Entry{
		ScopeID:   uint32(scope.ID),
		ScopeKind: scope.Kind.String(),
		Name:      f.Name(),
		Type:      f.Type.String(),
		Refs:      f.RefCount(),
	}
	if renamed {
		e.Crunched = f.CrunchedName()
		r.Renamed++
	}
	r.Entries = append(r.Entries, e)
}

// Lookup returns the entry for name in scope, if any.
func (r *Report) Lookup(scope uint32, name string) (Entry, bool) {
	for _, e := range r.Entries {
		if e.ScopeID == scope && e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// WriteTable prints the report as aligned columns.
func (r *Report) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCOPE\tNAME\tCRUNCHED\tTYPE\tREFS")
	for _, e := range r.Entries {
		crunched := e.Crunched
		if crunched == "" {
			crunched = "-"
		}
		fmt.Fprintf(tw, "%s#%d\t%s\t%s\t%s\t%d\n", e.ScopeKind, e.ScopeID, e.Name, crunched, e.Type, e.Refs)
	}
	fmt.Fprintf(tw, "renamed %d of %d\n", r.Renamed, len(r.Entries))
	return tw.Flush()
}
