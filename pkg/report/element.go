package report

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
)

// ChangeType classifies a change notification.
type ChangeType int

const (
	NodePropertiesChanged ChangeType = iota
	NodeChildAdded
	NodeChildRemoved
	NodeStructureChanged
)

func (t ChangeType) String() string {
	switch t {
	case NodePropertiesChanged:
		return "properties_changed"
	case NodeChildAdded:
		return "child_added"
	case NodeChildRemoved:
		return "child_removed"
	case NodeStructureChanged:
		return "structure_changed"
	default:
		return "unknown"
	}
}

// ChangeEvent describes one mutation. The same event travels from the
// mutated element up to the root of its tree.
type ChangeEvent struct {
	Source    ReportElement
	Type      ChangeType
	Parameter any
}

// AttributeChange is the parameter of the change event fired by attribute writes.
type AttributeChange struct {
	Namespace string
	Name      string
	OldValue  any
	NewValue  any
}

// ChangeListener receives the change events that reach a report definition.
type ChangeListener interface {
	NodeChanged(ev ChangeEvent)
}

// ChangeListenerFunc adapts a function to ChangeListener.
type ChangeListenerFunc func(ev ChangeEvent)

func (f ChangeListenerFunc) NodeChanged(ev ChangeEvent) { f(ev) }

// ReportElement is implemented by every node of a report tree. All
// implementations embed Element.
type ReportElement interface {
	AsElement() *Element
	ObjectID() InstanceID
	Name() string
	ElementType() *ElementType
	Parent() Section
	ChangeTracker() int64
	// Clone copies the subtree and keeps every identity token.
	Clone() ReportElement
	// Derive copies the subtree for a new processing run. Identity tokens
	// are regenerated unless preserveIDs is set.
	Derive(preserveIDs bool) ReportElement

	copyElement(m copyMode) ReportElement
}

// changeSink is implemented by elements that publish change events to listeners.
type changeSink interface {
	fireModelChanged(ev ChangeEvent)
}

type copyMode struct {
	derive      bool
	preserveIDs bool
}

func (m copyMode) String() string {
	if m.derive {
		return "derive"
	}
	return "clone"
}

// Element is the base node of a report tree. Used on its own it is a leaf
// such as a label or a text field; sections embed it.
//
// Elements are not safe for concurrent use. Callers that share a tree
// between goroutines must synchronise externally, or hand each goroutine its
// own Derive copy.
type Element struct {
	self                 ReportElement
	objectID             InstanceID
	elementType          *ElementType
	attributes           *AttributeMap
	attributeExpressions map[attributeKey]Expression
	style                *ElementStyleSheet
	styleExpressions     map[*StyleKey]Expression
	parent               Section
	changeTracker        int64
}

// NewElement creates a leaf element of the given type. A nil type yields
// LegacyType.
func NewElement(t *ElementType) *Element {
	e := &Element{}
	e.init(e, t)
	return e
}

func (e *Element) init(self ReportElement, t *ElementType) {
	if t == nil {
		t = LegacyType
	}
	e.self = self
	e.objectID = NewInstanceID()
	e.elementType = t
	e.attributes = NewAttributeMap()
	e.style = newElementStyleSheet(e)
}

// AsElement returns the embedded base element.
func (e *Element) AsElement() *Element { return e }

// ObjectID returns the identity token.
func (e *Element) ObjectID() InstanceID { return e.objectID }

// ElementType returns the element's type tag.
func (e *Element) ElementType() *ElementType { return e.elementType }

// SetElementType changes the type tag of the element.
func (e *Element) SetElementType(t *ElementType) {
	if t == nil {
		t = LegacyType
	}
	e.elementType = t
	e.NotifyNodePropertiesChanged(t)
}

// Parent returns the section that owns this element, or nil.
func (e *Element) Parent() Section { return e.parent }

// ChangeTracker returns a counter that grows with every change to this
// element or any of its descendants.
func (e *Element) ChangeTracker() int64 { return e.changeTracker }

func (e *Element) Name() string {
	s, _ := e.attributes.Get(CoreNamespace, AttrName).(string)
	return s
}

func (e *Element) SetName(name string) {
	if name == "" {
		e.SetAttribute(CoreNamespace, AttrName, nil)
		return
	}
	e.SetAttribute(CoreNamespace, AttrName, name)
}

// Attribute returns the value stored under (namespace, name), or nil.
func (e *Element) Attribute(namespace, name string) any {
	return e.attributes.Get(namespace, name)
}

// SetAttribute stores an attribute value and notifies the tree. A nil value
// removes the attribute.
func (e *Element) SetAttribute(namespace, name string, value any) {
	e.SetAttributeNotify(namespace, name, value, true)
}

// SetAttributeNotify stores an attribute value. With notify set to false no
// change event is fired; use this only for values computed from state that
// is already tracked, never for new design data.
func (e *Element) SetAttributeNotify(namespace, name string, value any, notify bool) {
	old := e.attributes.Set(namespace, name, value)
	if notify {
		e.NotifyNodePropertiesChanged(AttributeChange{
			Namespace: namespace,
			Name:      name,
			OldValue:  old,
			NewValue:  value,
		})
	}
}

// AttributeNamespaces returns the namespaces that hold attributes.
func (e *Element) AttributeNamespaces() []string {
	return e.attributes.Namespaces()
}

// AttributeNames returns the attribute names within a namespace.
func (e *Element) AttributeNames(namespace string) []string {
	return e.attributes.Names(namespace)
}

// Attributes returns a snapshot of the attribute map. Writes to the
// snapshot do not affect the element.
func (e *Element) Attributes() *AttributeMap {
	return e.attributes.Clone()
}

func (e *Element) stringAttribute(namespace, name string) string {
	s, _ := e.attributes.Get(namespace, name).(string)
	return s
}

func (e *Element) intAttribute(namespace, name string, def int) int {
	switch v := e.attributes.Get(namespace, name).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

func (e *Element) boolAttribute(namespace, name string) (value, ok bool) {
	value, ok = e.attributes.Get(namespace, name).(bool)
	return value, ok
}

func (e *Element) stringsAttribute(namespace, name string) []string {
	v, _ := e.attributes.Get(namespace, name).([]string)
	return append([]string(nil), v...)
}

func (e *Element) setStringsAttribute(namespace, name string, values []string) {
	if len(values) == 0 {
		e.SetAttribute(namespace, name, nil)
		return
	}
	e.SetAttribute(namespace, name, append([]string(nil), values...))
}

// AttributeExpression returns the expression computing (namespace, name), or nil.
func (e *Element) AttributeExpression(namespace, name string) Expression {
	return e.attributeExpressions[attributeKey{namespace, name}]
}

// SetAttributeExpression attaches an expression that computes an attribute
// at processing time. A nil expression removes it.
func (e *Element) SetAttributeExpression(namespace, name string, expr Expression) {
	key := attributeKey{namespace, name}
	if expr == nil {
		if _, ok := e.attributeExpressions[key]; !ok {
			return
		}
		delete(e.attributeExpressions, key)
	} else {
		if e.attributeExpressions == nil {
			e.attributeExpressions = make(map[attributeKey]Expression)
		}
		e.attributeExpressions[key] = expr
	}
	e.NotifyNodePropertiesChanged(AttributeChange{Namespace: namespace, Name: name, NewValue: expr})
}

// AttributeExpressionNames returns the attribute names with an expression in a namespace.
func (e *Element) AttributeExpressionNames(namespace string) []string {
	var names []string
	for k := range e.attributeExpressions {
		if k.namespace == namespace {
			names = append(names, k.name)
		}
	}
	sort.Strings(names)
	return names
}

// Style returns the element's style sheet. Writes through the sheet notify
// the tree.
func (e *Element) Style() *ElementStyleSheet { return e.style }

// StyleExpression returns the expression computing key, or nil.
func (e *Element) StyleExpression(key *StyleKey) Expression {
	return e.styleExpressions[key]
}

// SetStyleExpression attaches an expression that computes a style property
// at processing time. A nil expression removes it.
func (e *Element) SetStyleExpression(key *StyleKey, expr Expression) {
	if expr == nil {
		if _, ok := e.styleExpressions[key]; !ok {
			return
		}
		delete(e.styleExpressions, key)
	} else {
		if e.styleExpressions == nil {
			e.styleExpressions = make(map[*StyleKey]Expression)
		}
		e.styleExpressions[key] = expr
	}
	e.NotifyNodePropertiesChanged(StyleChange{Key: key, NewValue: expr})
}

// StyleExpressionKeys returns the keys that have a style expression.
func (e *Element) StyleExpressionKeys() []*StyleKey {
	keys := make([]*StyleKey, 0, len(e.styleExpressions))
	for k := range e.styleExpressions {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].name < keys[j].name })
	return keys
}

func (e *Element) IsVisible() bool {
	return e.style.BooleanStyleProperty(StyleVisible)
}

func (e *Element) SetVisible(visible bool) {
	e.style.SetStyleProperty(StyleVisible, visible)
}

// ReportDefinition returns the nearest report definition containing this
// element, which is the element itself for definitions.
func (e *Element) ReportDefinition() ReportDefinition {
	var cur ReportElement = e.self
	for cur != nil {
		if d, ok := cur.(ReportDefinition); ok {
			return d
		}
		p := cur.Parent()
		if p == nil {
			return nil
		}
		cur = p
	}
	return nil
}

// MasterReport returns the master report at the top of this element's tree.
func (e *Element) MasterReport() *MasterReport {
	var cur ReportElement = e.self
	for cur != nil {
		if m, ok := cur.(*MasterReport); ok {
			return m
		}
		p := cur.Parent()
		if p == nil {
			return nil
		}
		cur = p
	}
	return nil
}

// NotifyNodePropertiesChanged fires a property change event.
func (e *Element) NotifyNodePropertiesChanged(param any) {
	e.fire(NodePropertiesChanged, param)
}

// NotifyNodeChildAdded fires a child-added event.
func (e *Element) NotifyNodeChildAdded(child ReportElement) {
	e.fire(NodeChildAdded, child)
}

// NotifyNodeChildRemoved fires a child-removed event.
func (e *Element) NotifyNodeChildRemoved(child ReportElement) {
	e.fire(NodeChildRemoved, child)
}

// NotifyNodeStructureChanged fires a structure change event.
func (e *Element) NotifyNodeStructureChanged() {
	e.fire(NodeStructureChanged, nil)
}

func (e *Element) fire(t ChangeType, param any) {
	changeNotificationTotal.WithLabelValues(t.String()).Inc()
	e.updateChangedFlag(ChangeEvent{Source: e.self, Type: t, Parameter: param})
}

func (e *Element) updateChangedFlag(ev ChangeEvent) {
	e.changeTracker++
	if sink, ok := e.self.(changeSink); ok {
		sink.fireModelChanged(ev)
	}
	if e.parent != nil {
		e.parent.AsElement().updateChangedFlag(ev)
	}
}

// Clone copies the subtree rooted at this element. The copy keeps every
// identity token and has no parent.
func (e *Element) Clone() ReportElement {
	return e.copyRoot(copyMode{})
}

// Derive copies the subtree rooted at this element for a new processing run.
// The copy has no parent, drops computed attributes and, unless preserveIDs
// is set, carries fresh identity tokens.
func (e *Element) Derive(preserveIDs bool) ReportElement {
	return e.copyRoot(copyMode{derive: true, preserveIDs: preserveIDs})
}

func (e *Element) copyRoot(m copyMode) ReportElement {
	n := e.self.copyElement(m)
	if GetLogger().IsDebugMode() {
		WithFields(Fields{"source": describe(e.self), "copy": describe(n), "operation": m.String()}).Debug("copied subtree")
	}
	return n
}

func (e *Element) copyElement(m copyMode) ReportElement {
	n := &Element{}
	e.copyInto(n, n, m)
	return n
}

// copyInto fills dst with a copy of e's own state. Subclasses copy their
// children themselves.
func (e *Element) copyInto(dst *Element, self ReportElement, m copyMode) {
	elementCopyTotal.WithLabelValues(m.String()).Inc()
	dst.self = self
	dst.elementType = e.elementType
	dst.objectID = e.objectID
	if m.derive && !m.preserveIDs {
		dst.objectID = NewInstanceID()
	}
	dst.attributes = e.attributes.copyFor(m.derive)
	if len(e.attributeExpressions) > 0 {
		dst.attributeExpressions = make(map[attributeKey]Expression, len(e.attributeExpressions))
		for k, x := range e.attributeExpressions {
			dst.attributeExpressions[k] = x.Clone()
		}
	}
	dst.style = e.style.copyFor(dst)
	if len(e.styleExpressions) > 0 {
		dst.styleExpressions = make(map[*StyleKey]Expression, len(e.styleExpressions))
		for k, x := range e.styleExpressions {
			dst.styleExpressions[k] = x.Clone()
		}
	}
	dst.parent = nil
	dst.changeTracker = e.changeTracker
}

// CopyInto copies this element's attributes, attribute expressions, style
// properties and style expressions onto target. Children are not copied.
func (e *Element) CopyInto(target ReportElement) {
	t := target.AsElement()
	if t == e {
		return
	}
	e.attributes.Each(func(ns, name string, v any) {
		if cl, ok := v.(AttributeCloner); ok {
			v = cl.CloneAttribute()
		}
		t.SetAttribute(ns, name, v)
	})
	for k, x := range e.attributeExpressions {
		t.SetAttributeExpression(k.namespace, k.name, x.Clone())
	}
	for _, k := range e.style.Keys() {
		t.style.SetStyleProperty(k, e.style.props[k])
	}
	for k, x := range e.styleExpressions {
		t.SetStyleExpression(k, x.Clone())
	}
}

// ResourceKey references an external resource such as an image. Persisted
// reports embed the resource content.
type ResourceKey struct {
	Schema     string
	Identifier string
	Content    []byte
}

var errResourceNotLoaded = errors.New("resource content not loaded")

// PersistableAttribute is one attribute as a persistence layer writes it.
type PersistableAttribute struct {
	Namespace string
	Name      string
	Value     any
	// Embedded holds the resource content for resource-key attributes.
	Embedded []byte
}

// PersistableAttributes returns the attributes a persistence layer writes:
// transient and computed non-design values are skipped, and resource keys
// are embedded by value.
func (e *Element) PersistableAttributes() ([]PersistableAttribute, error) {
	var result []PersistableAttribute
	var err error
	e.attributes.Each(func(ns, name string, v any) {
		if err != nil {
			return
		}
		md, known := LookupAttributeMetaData(ns, name)
		if known && (md.Transient || (md.Computed && !md.DesignTimeValue)) {
			return
		}
		attr := PersistableAttribute{Namespace: ns, Name: name, Value: v}
		if known && md.ResourceKey {
			content, embedErr := embedResource(v)
			if embedErr != nil {
				err = WithContext(embedErr, "embed resource key", map[string]interface{}{
					"namespace": ns,
					"name":      name,
					"element":   describe(e.self),
				})
				return
			}
			attr.Embedded = content
		}
		result = append(result, attr)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func embedResource(v any) ([]byte, error) {
	var key *ResourceKey
	switch k := v.(type) {
	case ResourceKey:
		key = &k
	case *ResourceKey:
		key = k
	default:
		return nil, fmt.Errorf("value of type %T is not a resource key", v)
	}
	if key == nil || key.Content == nil {
		return nil, errResourceNotLoaded
	}
	return append([]byte(nil), key.Content...), nil
}

// isNilElement reports whether e is nil or a typed nil pointer.
func isNilElement(e any) bool {
	if e == nil {
		return true
	}
	v := reflect.ValueOf(e)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// sameElement reports whether a and b are the same node.
func sameElement(a, b ReportElement) bool {
	if isNilElement(a) || isNilElement(b) {
		return false
	}
	return a.AsElement() == b.AsElement()
}

// describe renders an element for error messages and logs.
func describe(e ReportElement) string {
	if isNilElement(e) {
		return "<nil>"
	}
	el := e.AsElement()
	if name := el.Name(); name != "" {
		return fmt.Sprintf("%s[%s]", el.elementType.Name(), name)
	}
	return fmt.Sprintf("%s#%s", el.elementType.Name(), el.objectID.short())
}
