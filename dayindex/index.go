// Package dayindex keeps records bucketed by calendar day.
//
// Buckets hold records in arrival order. Every record id appears in exactly
// one bucket; patching or rebuilding with an id that is already indexed
// replaces the earlier copy in place.
package dayindex

import (
	"sort"

	"personal-planner/models"
)

// Record is anything the index can hold
type Record interface {
	RecordID() string
}

// KeyFunc derives the day a record belongs to
type KeyFunc[T Record] func(T) models.DateKey

type Index[T Record] struct {
	keyOf   KeyFunc[T]
	buckets map[models.DateKey][]T
	days    map[string]models.DateKey
}

func New[T Record](keyOf KeyFunc[T]) *Index[T] {
	return &Index[T]{
		keyOf:   keyOf,
		buckets: make(map[models.DateKey][]T),
		days:    make(map[string]models.DateKey),
	}
}

// Rebuild discards the current contents and groups records by day in one pass
func (ix *Index[T]) Rebuild(records []T) {
	ix.buckets = make(map[models.DateKey][]T)
	ix.days = make(map[string]models.DateKey, len(records))
	for _, r := range records {
		ix.Patch(r)
	}
}

// Patch appends r to its day, or replaces the indexed copy with the same id
func (ix *Index[T]) Patch(r T) {
	key := ix.keyOf(r)
	id := r.RecordID()

	if prev, ok := ix.days[id]; ok {
		if prev == key {
			bucket := ix.buckets[key]
			for i := range bucket {
				if bucket[i].RecordID() == id {
					bucket[i] = r
					return
				}
			}
		}
		ix.remove(prev, id)
	}

	ix.buckets[key] = append(ix.buckets[key], r)
	ix.days[id] = key
}

// Mutate replaces every record matching pred with transform(record), across all days.
// It returns the number of records replaced.
func (ix *Index[T]) Mutate(pred func(T) bool, transform func(T) T) int {
	n := 0
	for key, bucket := range ix.buckets {
		next := make([]T, len(bucket))
		for i, r := range bucket {
			if pred(r) {
				next[i] = transform(r)
				n++
				continue
			}
			next[i] = r
		}
		ix.buckets[key] = next
	}
	return n
}

// Day returns a copy of the records on key, in arrival order
func (ix *Index[T]) Day(key models.DateKey) []T {
	bucket := ix.buckets[key]
	out := make([]T, len(bucket))
	copy(out, bucket)
	return out
}

func (ix *Index[T]) Has(key models.DateKey) bool {
	return len(ix.buckets[key]) > 0
}

// Find looks a record up by id
func (ix *Index[T]) Find(id string) (T, bool) {
	var zero T
	key, ok := ix.days[id]
	if !ok {
		return zero, false
	}
	for _, r := range ix.buckets[key] {
		if r.RecordID() == id {
			return r, true
		}
	}
	return zero, false
}

// Keys returns the non-empty days in ascending order
func (ix *Index[T]) Keys() []models.DateKey {
	keys := make([]models.DateKey, 0, len(ix.buckets))
	for k, bucket := range ix.buckets {
		if len(bucket) > 0 {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	return keys
}

// Len returns the number of indexed records
func (ix *Index[T]) Len() int {
	return len(ix.days)
}

func (ix *Index[T]) remove(key models.DateKey, id string) {
	bucket := ix.buckets[key]
	for i := range bucket {
		if bucket[i].RecordID() == id {
			ix.buckets[key] = append(bucket[:i:i], bucket[i+1:]...)
			break
		}
	}
	if len(ix.buckets[key]) == 0 {
		delete(ix.buckets, key)
	}
	delete(ix.days, id)
}
