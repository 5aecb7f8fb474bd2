package report

import "github.com/google/uuid"

// InstanceID identifies an element across clones. Clones keep the token of
// their source; derived copies receive a fresh one unless the caller asks to
// preserve it. The zero value identifies nothing.
type InstanceID struct {
	id uuid.UUID
}

// NewInstanceID returns a fresh identity token.
func NewInstanceID() InstanceID {
	return InstanceID{id: uuid.New()}
}

// IsZero reports whether the token is unset.
func (i InstanceID) IsZero() bool {
	return i.id == uuid.Nil
}

func (i InstanceID) String() string {
	return i.id.String()
}

// short returns a compact form used in generated names.
func (i InstanceID) short() string {
	return i.id.String()[:8]
}
