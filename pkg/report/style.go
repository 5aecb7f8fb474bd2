package report

import (
	"sort"
	"sync"
)

// StyleKey names a visual or layout property.
type StyleKey struct {
	name         string
	defaultValue any
	inherit      bool
}

var (
	styleKeysMu sync.RWMutex
	styleKeys   = map[string]*StyleKey{}
)

// Well-known style keys.
var (
	StyleLayout             = NewStyleKey("layout", "canvas", false)
	StyleVisible            = NewStyleKey("visible", true, false)
	StyleFontFamily         = NewStyleKey("font-family", "Serif", true)
	StyleFontSize           = NewStyleKey("font-size", 10, true)
	StyleBold               = NewStyleKey("font-bold", false, true)
	StyleItalic             = NewStyleKey("font-italic", false, true)
	StyleTextColor          = NewStyleKey("text-color", "#000000", true)
	StyleBackgroundColor    = NewStyleKey("background-color", nil, false)
	StyleAlignment          = NewStyleKey("alignment", "left", true)
	StyleMinWidth           = NewStyleKey("min-width", 0.0, false)
	StyleMinHeight          = NewStyleKey("min-height", 0.0, false)
	StylePagebreakBefore    = NewStyleKey("pagebreak-before", false, false)
	StylePagebreakAfter     = NewStyleKey("pagebreak-after", false, false)
	StyleRepeatHeader       = NewStyleKey("repeat-header", false, false)
	StyleDisplayOnFirstPage = NewStyleKey("display-on-firstpage", true, false)
	StyleDisplayOnLastPage  = NewStyleKey("display-on-lastpage", true, false)
)

// NewStyleKey registers a style key. Registering an existing name returns
// the existing key.
func NewStyleKey(name string, defaultValue any, inherit bool) *StyleKey {
	styleKeysMu.Lock()
	defer styleKeysMu.Unlock()
	if k, ok := styleKeys[name]; ok {
		return k
	}
	k := &StyleKey{name: name, defaultValue: defaultValue, inherit: inherit}
	styleKeys[name] = k
	return k
}

// LookupStyleKey returns the registered key with the given name.
func LookupStyleKey(name string) (*StyleKey, bool) {
	styleKeysMu.RLock()
	defer styleKeysMu.RUnlock()
	k, ok := styleKeys[name]
	return k, ok
}

func (k *StyleKey) Name() string      { return k.name }
func (k *StyleKey) DefaultValue() any { return k.defaultValue }

// Inherit reports whether the property falls back to the parent element.
func (k *StyleKey) Inherit() bool { return k.inherit }

func (k *StyleKey) String() string { return k.name }

// ElementStyleSheet holds the locally defined style properties of one
// element. Writes notify the owning element.
type ElementStyleSheet struct {
	owner         *Element
	props         map[*StyleKey]any
	shared        bool
	changeTracker int64
}

func newElementStyleSheet(owner *Element) *ElementStyleSheet {
	return &ElementStyleSheet{owner: owner, props: make(map[*StyleKey]any)}
}

// StyleProperty returns the local value, else the element type default,
// else the key default.
func (s *ElementStyleSheet) StyleProperty(key *StyleKey) any {
	if v, ok := s.props[key]; ok {
		return v
	}
	if s.owner != nil {
		if v, ok := s.owner.elementType.DefaultStyle(key); ok {
			return v
		}
	}
	return key.defaultValue
}

// LocalStyleProperty returns the value defined directly on this sheet.
func (s *ElementStyleSheet) LocalStyleProperty(key *StyleKey) (any, bool) {
	v, ok := s.props[key]
	return v, ok
}

// BooleanStyleProperty returns the property as a bool; non-bool values read as false.
func (s *ElementStyleSheet) BooleanStyleProperty(key *StyleKey) bool {
	b, _ := s.StyleProperty(key).(bool)
	return b
}

// SetStyleProperty defines a local value. A nil value removes the local
// definition.
func (s *ElementStyleSheet) SetStyleProperty(key *StyleKey, value any) {
	old, had := s.props[key]
	if value == nil && !had {
		return
	}
	if s.shared {
		props := make(map[*StyleKey]any, len(s.props))
		for k, v := range s.props {
			props[k] = v
		}
		s.props = props
		s.shared = false
	}
	if value == nil {
		delete(s.props, key)
	} else {
		s.props[key] = value
	}
	s.changeTracker++
	if s.owner != nil {
		s.owner.NotifyNodePropertiesChanged(StyleChange{Key: key, OldValue: old, NewValue: value})
	}
}

// Keys returns the locally defined keys sorted by name.
func (s *ElementStyleSheet) Keys() []*StyleKey {
	keys := make([]*StyleKey, 0, len(s.props))
	for k := range s.props {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].name < keys[j].name })
	return keys
}

// ChangeTracker returns a counter that grows with every write.
func (s *ElementStyleSheet) ChangeTracker() int64 {
	return s.changeTracker
}

// copyFor returns a sheet for another owner that shares storage until the
// first write on either side.
func (s *ElementStyleSheet) copyFor(owner *Element) *ElementStyleSheet {
	s.shared = true
	return &ElementStyleSheet{owner: owner, props: s.props, shared: true, changeTracker: s.changeTracker}
}

// StyleChange is the parameter of the change event fired by style writes.
type StyleChange struct {
	Key      *StyleKey
	OldValue any
	NewValue any
}

// ResolveStyleProperty returns the effective value of key for e. Inheritable
// keys that are not defined locally are looked up along the parent chain
// before falling back to the element type and key defaults.
func ResolveStyleProperty(e ReportElement, key *StyleKey) any {
	el := e.AsElement()
	if v, ok := el.style.props[key]; ok {
		return v
	}
	if key.inherit {
		for p := el.parent; p != nil; p = p.AsElement().parent {
			if v, ok := p.AsElement().style.props[key]; ok {
				return v
			}
		}
	}
	return el.style.StyleProperty(key)
}
