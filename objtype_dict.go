package feather

import "strings"

// DictType is the structured form for a dictionary: a hash table keyed by
// value, compared by string equality, that preserves insertion order for
// its string form and for `dict keys`/iteration.
type DictType struct {
	Items map[string]*Obj
	Order []string
}

// NewDictType creates an empty, ordered dict.
func NewDictType() *DictType {
	return &DictType{Items: make(map[string]*Obj)}
}

func (t *DictType) Name() string { return "dict" }

func (t *DictType) Dup() ObjType {
	items := make(map[string]*Obj, len(t.Items))
	for k, v := range t.Items {
		items[k] = v
	}
	order := make([]string, len(t.Order))
	copy(order, t.Order)
	return &DictType{Items: items, Order: order}
}

func (t *DictType) UpdateString() string {
	var b strings.Builder
	for i, k := range t.Order {
		if i > 0 {
			b.WriteByte(' ')
		}
		quoteListElement(&b, k)
		b.WriteByte(' ')
		quoteListElement(&b, t.Items[k].String())
	}
	return b.String()
}

func (t *DictType) IntoDict() (map[string]*Obj, []string, bool) {
	return t.Items, t.Order, true
}

func (t *DictType) IntoList() ([]*Obj, bool) {
	list := make([]*Obj, 0, len(t.Order)*2)
	for _, k := range t.Order {
		list = append(list, NewStringObj(k), t.Items[k])
	}
	return list, true
}

// Set inserts or overwrites key, preserving the existing position on
// overwrite and appending a new one otherwise.
func (t *DictType) Set(key string, val *Obj) {
	if _, exists := t.Items[key]; !exists {
		t.Order = append(t.Order, key)
	}
	val.IncrRef()
	if old := t.Items[key]; old != nil {
		old.DecrRef()
	}
	t.Items[key] = val
}

// Unset removes key if present, returning whether it was.
func (t *DictType) Unset(key string) bool {
	old, ok := t.Items[key]
	if !ok {
		return false
	}
	old.DecrRef()
	delete(t.Items, key)
	for i, k := range t.Order {
		if k == key {
			t.Order = append(t.Order[:i], t.Order[i+1:]...)
			break
		}
	}
	return true
}

// NewDictObj creates a dict value from alternating key/value elements.
// Returns an error if the number of elements is odd.
func NewDictObj(kvs ...*Obj) (*Obj, error) {
	if len(kvs)%2 != 0 {
		return nil, newEvalError("missing value to go with key")
	}
	d := NewDictType()
	for i := 0; i+1 < len(kvs); i += 2 {
		d.Set(kvs[i].String(), kvs[i+1])
	}
	return &Obj{intrep: d, dirty: true}, nil
}

func asDict(o *Obj) (*DictType, error) {
	if o == nil {
		return NewDictType(), nil
	}
	if dt, ok := o.intrep.(*DictType); ok {
		return dt, nil
	}
	if id, ok := o.intrep.(IntoDict); ok {
		if items, order, ok := id.IntoDict(); ok {
			return &DictType{Items: items, Order: order}, nil
		}
	}
	elems, err := asListFromString(o)
	if err != nil {
		return nil, err
	}
	if len(elems)%2 != 0 {
		return nil, newEvalError("missing value to go with key")
	}
	d := NewDictType()
	for i := 0; i+1 < len(elems); i += 2 {
		d.Set(elems[i].String(), elems[i+1])
	}
	if o.refCount <= 1 {
		o.shimmer(d)
	}
	return d, nil
}

// asListFromString parses o's string form as a list even when o already
// carries an unrelated structured form (used by asDict so that shimmering
// dict<->list<->string is always driven from the authoritative string).
func asListFromString(o *Obj) ([]*Obj, error) {
	return parseListToObjs(o.String())
}
