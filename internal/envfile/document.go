package envfile

import (
	"sort"

	"github.com/geodata/etlprov/internal/config"
)

// Section is a commented group of entries in the secrets file.
type Section struct {
	Title   string
	Entries []config.KeyValue
}

// Document is the ordered content of a secrets file.
type Document struct {
	Environment string
	Sections    []Section
}

// NewDocument assembles the secrets document from both profiles, the runtime
// options and the fixed runtime paths.
func NewDocument(source, destination *config.ConnectionProfile, opts *config.RuntimeOptions, paths config.Paths) *Document {
	return &Document{
		Environment: paths.Environment,
		Sections: []Section{
			{Title: sectionTitle(source.Kind), Entries: source.Values()},
			{Title: sectionTitle(destination.Kind), Entries: destination.Values()},
			{Title: "ETL runtime options", Entries: opts.Values()},
			{Title: "Paths", Entries: paths.Values()},
		},
	}
}

func sectionTitle(kind config.Kind) string {
	return kind.StoreName() + " (" + string(kind) + ")"
}

// Entries returns every entry in file order.
func (d *Document) Entries() []config.KeyValue {
	var out []config.KeyValue
	for _, s := range d.Sections {
		out = append(out, s.Entries...)
	}
	return out
}

// Values returns the entries as a map.
func (d *Document) Values() map[string]string {
	values := make(map[string]string)
	for _, kv := range d.Entries() {
		values[kv.Key] = kv.Value
	}
	return values
}

// Get returns the value for key.
func (d *Document) Get(key string) (string, bool) {
	for _, kv := range d.Entries() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

var canonicalOrder = func() map[string]int {
	opts := config.DefaultRuntimeOptions()
	opts.Extended = true
	doc := NewDocument(
		&config.ConnectionProfile{Kind: config.KindSource},
		&config.ConnectionProfile{Kind: config.KindDestination},
		&opts, config.DefaultPaths(),
	)

	order := make(map[string]int)
	for i, kv := range doc.Entries() {
		order[kv.Key] = i
	}
	return order
}()

// Ordered returns parsed values in the order provision writes them. Keys
// etlprov does not know about follow, sorted by name.
func Ordered(values map[string]string) []config.KeyValue {
	out := make([]config.KeyValue, 0, len(values))
	for k, v := range values {
		out = append(out, config.KeyValue{Key: k, Value: v})
	}

	sort.Slice(out, func(i, j int) bool {
		oi, iKnown := canonicalOrder[out[i].Key]
		oj, jKnown := canonicalOrder[out[j].Key]
		switch {
		case iKnown && jKnown:
			return oi < oj
		case iKnown != jKnown:
			return iKnown
		default:
			return out[i].Key < out[j].Key
		}
	})
	return out
}
