package feather

// HashTable is an open-chaining hash table parameterized by a key/value
// lifecycle hook. It backs the command table, the reference table and the
// foreign-instance table; dict values use their own table-backed internal
// representation (see objtype_dict.go) for ordered iteration instead.
//
// The optional onFree hook runs exactly once per entry removed by Delete
// or overwritten by Set. The tables this package creates pass nil, so no
// hook runs for them.
type HashTable[K comparable, V any] struct {
	buckets []hashBucket[K, V]
	count   int
	onFree  func(K, V)
}

type hashBucket[K comparable, V any] struct {
	entries []hashEntry[K, V]
}

type hashEntry[K comparable, V any] struct {
	key K
	val V
}

const htInitialBuckets = 16

// NewHashTable creates an empty table. onFree, if non-nil, is invoked once
// for every entry removed via Delete or overwritten via Set.
func NewHashTable[K comparable, V any](onFree func(K, V)) *HashTable[K, V] {
	return &HashTable[K, V]{
		buckets: make([]hashBucket[K, V], htInitialBuckets),
		onFree:  onFree,
	}
}

func (h *HashTable[K, V]) bucketIndex(key K) int {
	return int(hashKey(key) % uint64(len(h.buckets)))
}

// Get looks up key, returning the stored value and whether it was present.
func (h *HashTable[K, V]) Get(key K) (V, bool) {
	b := &h.buckets[h.bucketIndex(key)]
	for _, e := range b.entries {
		if e.key == key {
			return e.val, true
		}
	}
	var zero V
	return zero, false
}

// Set inserts or overwrites key's value. If an existing entry is replaced,
// onFree is called on the old value before it is discarded.
func (h *HashTable[K, V]) Set(key K, val V) {
	if float64(h.count+1) > float64(len(h.buckets))*0.75 {
		h.grow()
	}
	idx := h.bucketIndex(key)
	b := &h.buckets[idx]
	for i, e := range b.entries {
		if e.key == key {
			if h.onFree != nil {
				h.onFree(e.key, e.val)
			}
			b.entries[i].val = val
			return
		}
	}
	b.entries = append(b.entries, hashEntry[K, V]{key: key, val: val})
	h.count++
}

// Delete removes key if present, running onFree on its value.
func (h *HashTable[K, V]) Delete(key K) bool {
	idx := h.bucketIndex(key)
	b := &h.buckets[idx]
	for i, e := range b.entries {
		if e.key == key {
			if h.onFree != nil {
				h.onFree(e.key, e.val)
			}
			b.entries = append(b.entries[:i], b.entries[i+1:]...)
			h.count--
			return true
		}
	}
	return false
}

// Len returns the number of entries currently stored.
func (h *HashTable[K, V]) Len() int { return h.count }

// ForEach calls fn for every entry. fn must not mutate the table.
func (h *HashTable[K, V]) ForEach(fn func(K, V)) {
	for _, b := range h.buckets {
		for _, e := range b.entries {
			fn(e.key, e.val)
		}
	}
}

// Keys returns all keys currently stored, in unspecified order.
func (h *HashTable[K, V]) Keys() []K {
	keys := make([]K, 0, h.count)
	h.ForEach(func(k K, _ V) { keys = append(keys, k) })
	return keys
}

func (h *HashTable[K, V]) grow() {
	old := h.buckets
	h.buckets = make([]hashBucket[K, V], len(old)*2)
	for _, b := range old {
		for _, e := range b.entries {
			idx := h.bucketIndex(e.key)
			h.buckets[idx].entries = append(h.buckets[idx].entries, e)
		}
	}
}

// hashKey computes an FNV-1a hash over the key's bytes. Supported key
// kinds are string and any fixed-width integer (the two kinds this
// interpreter ever keys tables by: command/variable names and 64-bit
// reference ids).
func hashKey[K comparable](key K) uint64 {
	switch k := any(key).(type) {
	case string:
		return fnv1a(k)
	case int64:
		return fnv1aUint(uint64(k))
	case int:
		return fnv1aUint(uint64(k))
	default:
		fatalf("hashtable: unsupported key kind %T", key)
		return 0
	}
}

func fnv1a(s string) uint64 {
	const offset64 = 14695981039346656037
	const prime64 = 1099511628211
	h := uint64(offset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime64
	}
	return h
}

func fnv1aUint(v uint64) uint64 {
	const offset64 = 14695981039346656037
	const prime64 = 1099511628211
	h := uint64(offset64)
	for i := 0; i < 8; i++ {
		h ^= v & 0xff
		h *= prime64
		v >>= 8
	}
	return h
}
