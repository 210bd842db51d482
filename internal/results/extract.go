package results

// DefaultIndexField is the member holding a trial's 1-based index
const DefaultIndexField = "index"

// Predicate selects object nodes during traversal
type Predicate func(obj *Object) bool

// IndexEquals matches objects whose "index" member is the number target and
// which also carry field
func IndexEquals(target float64, field string) Predicate {
	return func(obj *Object) bool {
		idx, ok := obj.Get(DefaultIndexField)
		if !ok {
			return false
		}
		v, ok := NumberValue(idx)
		if !ok || v != target {
			return false
		}
		return obj.Has(field)
	}
}

// FindMatchingValues walks doc depth-first and collects the numeric value of
// field from every object accepted by pred. A matching object contributes
// before its children are visited. Non-numeric field values are skipped.
// The result is never nil.
func FindMatchingValues(doc Node, pred Predicate, field string) []float64 {
	values := []float64{}
	Walk(doc, func(obj *Object) {
		if !pred(obj) {
			return
		}
		v, ok := obj.Get(field)
		if !ok {
			return
		}
		if f, ok := NumberValue(v); ok {
			values = append(values, f)
		}
	})
	return values
}

// Walk calls visit for every object in doc, in pre-order
func Walk(doc Node, visit func(obj *Object)) {
	switch n := doc.(type) {
	case *Object:
		if n == nil {
			return
		}
		visit(n)
		for _, m := range n.Members {
			Walk(m.Value, visit)
		}
	case Array:
		for _, item := range n {
			Walk(item, visit)
		}
	}
}

// Keys returns every distinct object key in doc in first-seen order
func Keys(doc Node) []string {
	seen := make(map[string]bool)
	var keys []string
	Walk(doc, func(obj *Object) {
		for _, m := range obj.Members {
			if !seen[m.Key] {
				seen[m.Key] = true
				keys = append(keys, m.Key)
			}
		}
	})
	return keys
}
