package report

import (
	"sync"
)

// Attribute namespaces. These strings appear in persisted report definitions
// and are matched verbatim by output modules.
const (
	CoreNamespace       = "http://reporting.pentaho.org/namespaces/engine/attributes/core"
	CrosstabNamespace   = "http://reporting.pentaho.org/namespaces/engine/attributes/crosstab"
	HTMLNamespace       = "http://reporting.pentaho.org/namespaces/engine/attributes/html"
	PDFNamespace        = "http://reporting.pentaho.org/namespaces/engine/attributes/pdf"
	ExcelNamespace      = "http://reporting.pentaho.org/namespaces/engine/attributes/excel"
	TableNamespace      = "http://reporting.pentaho.org/namespaces/engine/attributes/table"
	XMLNamespace        = "http://reporting.pentaho.org/namespaces/engine/attributes/xml"
	WizardNamespace     = "http://reporting.pentaho.org/namespaces/engine/attributes/wizard"
	DesignTimeNamespace = "http://reporting.pentaho.org/namespaces/engine/attributes/designtime"
	InternalNamespace   = "http://reporting.pentaho.org/namespaces/engine/attributes/internal"
	PentahoNamespace    = "http://reporting.pentaho.org/namespaces/engine/attributes/pentaho"
)

// Attribute names in CoreNamespace.
const (
	AttrName                = "name"
	AttrValue               = "value"
	AttrField               = "field"
	AttrGroupFields         = "group-fields"
	AttrQuery               = "query"
	AttrQueryLimit          = "query-limit"
	AttrQueryTimeout        = "query-timeout"
	AttrUserQueryLimit      = "user-query-limit"
	AttrQueryLimitInherited = "query-limit-inherited"
	AttrResourceIdentifier  = "resource-identifier"
	AttrDescription         = "description"
)

// Attribute names in CrosstabNamespace.
const (
	AttrPaddingFields = "padding-fields"
	AttrRowField      = "row-field"
	AttrColumnField   = "column-field"
	AttrPrintSummary  = "print-summary"
	AttrPrintTitle    = "print-title"
)

// Attribute names in InternalNamespace.
const (
	AttrPreProcessors      = "report-preprocessors"
	AttrStructureFunctions = "structure-functions"
	AttrComputedStyle      = "computed-style"
	AttrPreviewState       = "preview-state"
	AttrFileName           = "file-name"
)

// AttributeMetaData describes how an attribute is treated when a tree is
// derived or persisted.
type AttributeMetaData struct {
	Namespace string
	Name      string
	// Computed values are produced by report processing rather than by the
	// report designer. Derive drops them unless DesignTimeValue is set.
	Computed bool
	// DesignTimeValue marks computed values that are still part of the design.
	DesignTimeValue bool
	// Transient values are never persisted.
	Transient bool
	// ResourceKey values are embedded by value when persisted.
	ResourceKey bool
}

type attributeKey struct {
	namespace string
	name      string
}

var (
	attributeRegistryMu sync.RWMutex
	attributeRegistry   = map[attributeKey]AttributeMetaData{}
)

func init() {
	for _, md := range []AttributeMetaData{
		{Namespace: InternalNamespace, Name: AttrComputedStyle, Computed: true, Transient: true},
		{Namespace: InternalNamespace, Name: AttrPreviewState, Transient: true},
		{Namespace: InternalNamespace, Name: AttrFileName, Computed: true, DesignTimeValue: true, Transient: true},
		{Namespace: CoreNamespace, Name: AttrResourceIdentifier, ResourceKey: true},
	} {
		RegisterAttributeMetaData(md)
	}
}

// RegisterAttributeMetaData adds or replaces the metadata of an attribute.
func RegisterAttributeMetaData(md AttributeMetaData) {
	attributeRegistryMu.Lock()
	defer attributeRegistryMu.Unlock()
	attributeRegistry[attributeKey{md.Namespace, md.Name}] = md
}

// LookupAttributeMetaData returns the registered metadata of an attribute.
func LookupAttributeMetaData(namespace, name string) (AttributeMetaData, bool) {
	attributeRegistryMu.RLock()
	defer attributeRegistryMu.RUnlock()
	md, ok := attributeRegistry[attributeKey{namespace, name}]
	return md, ok
}

// dropOnDerive reports whether a derive must discard the attribute value.
func dropOnDerive(namespace, name string) bool {
	md, ok := LookupAttributeMetaData(namespace, name)
	return ok && md.Computed && !md.DesignTimeValue
}
