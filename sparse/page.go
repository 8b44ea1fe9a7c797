package sparse

import "fmt"

// Page is the value bound to one page slot: a piece of memory and a byte offset into it. A Page
// with a null Memory is unbound.
type Page struct {
	Memory ResourceId
	Offset uint64
}

func (p Page) IsNull() bool {
	return p.Memory.IsNull()
}

func (p Page) String() string {
	return fmt.Sprintf("%s:%d", p.Memory, p.Offset)
}
