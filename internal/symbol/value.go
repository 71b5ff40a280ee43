package symbol

import (
	"fmt"
	"sync/atomic"
)

// Value is an opaque symbolic identifier for a runtime value or memory
// address. Values are immutable once minted; equality is identity.
type Value uint64

// None is the zero Value, used where an operation produces no value.
const None Value = 0

var counter atomic.Uint64

// Fresh mints a previously unseen value.
func Fresh() Value {
	return Value(counter.Add(1))
}

func (v Value) String() string {
	if v == None {
		return "v?"
	}
	return fmt.Sprintf("v%d", uint64(v))
}
