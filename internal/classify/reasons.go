package classify

// reasonList accumulates reason sentences, dropping duplicates while
// preserving insertion order so reactions stay deterministic.
type reasonList struct {
	seen  map[string]struct{}
	items []string
}

func newReasonList() *reasonList {
	return &reasonList{seen: make(map[string]struct{})}
}

func (r *reasonList) add(reason string) {
	if reason == "" {
		return
	}
	if _, ok := r.seen[reason]; ok {
		return
	}
	r.seen[reason] = struct{}{}
	r.items = append(r.items, reason)
}

func (r *reasonList) build() []string {
	out := make([]string, len(r.items))
	copy(out, r.items)
	return out
}
