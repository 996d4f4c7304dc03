package datastruct

import (
	"github.com/indigo-web/utils/strcomp"
)

type Pair struct {
	Key, Value string
}

// KeyValue is an ordered storage of string pairs with a hard limit on the number of
// entries. Duplicate keys are preserved as separate pairs in order of insertion; nothing
// is ever merged. It is used to store request headers.
type KeyValue struct {
	pairs      []Pair
	valuesBuff []string
	limit      int
}

// NewKeyValue returns an instance holding at most limit pairs. Storage for all of them
// is allocated upfront, so the instance never grows.
func NewKeyValue(limit int) *KeyValue {
	return &KeyValue{
		pairs: make([]Pair, 0, limit),
		limit: limit,
	}
}

// Add appends a new pair. If the storage is already full, the pair is dropped and
// false is returned.
func (k *KeyValue) Add(key, value string) (ok bool) {
	if len(k.pairs) >= k.limit {
		return false
	}

	k.pairs = append(k.pairs, Pair{Key: key, Value: value})
	return true
}

// Values returns all values by the key. Returns nil if key doesn't exist.
//
// WARNING: calling it twice will override values, returned by the first call. Consider
// copying the returned slice for safe use
func (k *KeyValue) Values(key string) []string {
	k.valuesBuff = k.valuesBuff[:0]

	for _, pair := range k.pairs {
		if strcomp.EqualFold(pair.Key, key) {
			k.valuesBuff = append(k.valuesBuff, pair.Value)
		}
	}

	if len(k.valuesBuff) == 0 {
		return nil
	}

	return k.valuesBuff
}

// Len returns the number of stored pairs.
func (k *KeyValue) Len() int {
	return len(k.pairs)
}

// Limit returns the maximal number of pairs.
func (k *KeyValue) Limit() int {
	return k.limit
}

// Clear all the entries. However, all the allocated space won't be freed
func (k *KeyValue) Clear() {
	k.pairs = k.pairs[:0]
}
