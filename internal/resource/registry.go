package resource

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"bizadmin/internal/domain"

	"golang.org/x/sync/singleflight"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Registry maps studly singular names ("Product") to entity types. It is
// filled at startup and read concurrently afterwards.
type Registry struct {
	mu       sync.RWMutex
	entities map[string]Entity

	descriptors sync.Map // studly name -> Descriptor
	fill        singleflight.Group
}

func NewRegistry() *Registry {
	return &Registry{entities: map[string]Entity{}}
}

// Register adds e under its studly name derived from e.Table().
func (r *Registry) Register(e Entity) {
	name := StudlySingular(e.Table())
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entities[name] = e
	r.descriptors.Delete(name)
}

// Resolve maps a route name ("products", "product", "purchase-orders")
// to its entity type.
func (r *Registry) Resolve(name string) (Entity, error) {
	key := StudlySingular(name)
	r.mu.RLock()
	e, ok := r.entities[key]
	r.mu.RUnlock()
	if !ok || key == "" {
		return nil, domain.NotFoundError{Resource: strings.TrimSpace(name)}
	}
	return e, nil
}

// Descriptor resolves name and returns its cached descriptor.
func (r *Registry) Descriptor(name string) (Descriptor, error) {
	e, err := r.Resolve(name)
	if err != nil {
		return Descriptor{}, err
	}
	key := StudlySingular(name)
	if d, ok := r.descriptors.Load(key); ok {
		return d.(Descriptor), nil
	}

	v, err, _ := r.fill.Do(key, func() (any, error) {
		d := Describe(e.Table(), e)
		r.descriptors.Store(key, d)
		return d, nil
	})
	if err != nil {
		return Descriptor{}, fmt.Errorf("describe %s: %w", key, err)
	}
	return v.(Descriptor), nil
}

// Names lists the canonical route names of every registered entity.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.entities))
	for _, e := range r.entities {
		out = append(out, e.Table())
	}
	sort.Strings(out)
	return out
}

// StudlySingular turns "purchase_orders" / "purchase-orders" /
// "PurchaseOrders" / "Products" into "PurchaseOrder" / "Product".
func StudlySingular(name string) string {
	words := splitWords(strings.TrimSpace(name))
	if len(words) == 0 {
		return ""
	}
	for i := range words {
		words[i] = strings.ToLower(words[i])
	}
	words[len(words)-1] = Singular(words[len(words)-1])

	// Casers keep state, one per call.
	title := cases.Title(language.Und)
	var b strings.Builder
	for _, w := range words {
		b.WriteString(title.String(w))
	}
	return b.String()
}

// splitWords breaks on separators and on lower-to-upper case changes, so
// "purchaseOrder" and "PurchaseOrder" both give [purchase Order].
func splitWords(s string) []string {
	var (
		words []string
		cur   []rune
		prev  rune
	)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	for _, r := range s {
		switch {
		case r == '-' || r == '_' || r == '.' || unicode.IsSpace(r):
			flush()
		case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
		prev = r
	}
	flush()
	return words
}

// Singular covers the regular English plurals used by table names.
func Singular(word string) string {
	switch {
	case len(word) > 3 && strings.HasSuffix(word, "ies"):
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "sses"),
		strings.HasSuffix(word, "uses"),
		strings.HasSuffix(word, "xes"),
		strings.HasSuffix(word, "zes"),
		strings.HasSuffix(word, "ches"),
		strings.HasSuffix(word, "shes"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "ss"):
		return word
	case len(word) > 1 && strings.HasSuffix(word, "s"):
		return word[:len(word)-1]
	default:
		return word
	}
}
