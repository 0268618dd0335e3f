package domain

// Selection partitions candidate files into those that must re-execute
// and those whose fingerprints still match the cache. Both slices keep
// candidate order and are free of duplicates.
type Selection struct {
	ToRun  []string
	Cached []string
}

// Empty reports whether the selection holds no candidates at all.
func (s Selection) Empty() bool {
	return len(s.ToRun) == 0 && len(s.Cached) == 0
}
