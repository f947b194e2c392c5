package domain

// Category is a read-only lookup entity referenced by order items.
type Category struct {
	ID   uint64
	Name string
}
