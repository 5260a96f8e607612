package branch

// Branch is an organizational location reports are filed against. Rows are
// created administratively and never deleted.
type Branch struct {
	ID   int64
	Name string
}
