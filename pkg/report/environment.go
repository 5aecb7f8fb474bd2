package report

import (
	"sort"
	"time"
)

// ReportEnvironment exposes the runtime environment of a report run, such
// as server URLs or the current user.
type ReportEnvironment interface {
	EnvironmentProperty(key string) (string, bool)
	Locale() string
	// Derive returns an independent copy for a derived report.
	Derive() ReportEnvironment
}

// DefaultReportEnvironment is a property-map environment.
type DefaultReportEnvironment struct {
	locale string
	props  map[string]string
}

// NewDefaultReportEnvironment creates an environment seeded from cfg. A nil
// cfg uses the global configuration.
func NewDefaultReportEnvironment(cfg *Config) *DefaultReportEnvironment {
	if cfg == nil {
		cfg = GetGlobalConfig()
	}
	env := &DefaultReportEnvironment{locale: cfg.Locale, props: make(map[string]string, len(cfg.EnvironmentProperties))}
	for k, v := range cfg.EnvironmentProperties {
		env.props[k] = v
	}
	return env
}

func (e *DefaultReportEnvironment) EnvironmentProperty(key string) (string, bool) {
	v, ok := e.props[key]
	return v, ok
}

func (e *DefaultReportEnvironment) SetEnvironmentProperty(key, value string) {
	e.props[key] = value
}

// PropertyNames returns the property keys, sorted.
func (e *DefaultReportEnvironment) PropertyNames() []string {
	names := make([]string, 0, len(e.props))
	for k := range e.props {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (e *DefaultReportEnvironment) Locale() string { return e.locale }

func (e *DefaultReportEnvironment) SetLocale(locale string) { e.locale = locale }

func (e *DefaultReportEnvironment) Derive() ReportEnvironment {
	n := &DefaultReportEnvironment{locale: e.locale, props: make(map[string]string, len(e.props))}
	for k, v := range e.props {
		n.props[k] = v
	}
	return n
}

// ResourceBundleFactory supplies localized messages to a report.
type ResourceBundleFactory interface {
	Locale() string
	// Message looks up key in the named bundle.
	Message(bundle, key string) (string, bool)
	// Derive returns an independent copy for a derived report.
	Derive() ResourceBundleFactory
}

// DefaultResourceBundleFactory serves messages from in-memory bundles.
type DefaultResourceBundleFactory struct {
	locale  string
	bundles map[string]map[string]string
}

func NewDefaultResourceBundleFactory(locale string) *DefaultResourceBundleFactory {
	return &DefaultResourceBundleFactory{locale: locale, bundles: make(map[string]map[string]string)}
}

func (f *DefaultResourceBundleFactory) Locale() string { return f.locale }

// AddBundle registers messages under a bundle name, replacing any earlier bundle.
func (f *DefaultResourceBundleFactory) AddBundle(name string, messages map[string]string) {
	b := make(map[string]string, len(messages))
	for k, v := range messages {
		b[k] = v
	}
	f.bundles[name] = b
}

func (f *DefaultResourceBundleFactory) Message(bundle, key string) (string, bool) {
	v, ok := f.bundles[bundle][key]
	return v, ok
}

func (f *DefaultResourceBundleFactory) Derive() ResourceBundleFactory {
	n := NewDefaultResourceBundleFactory(f.locale)
	for name, messages := range f.bundles {
		n.AddBundle(name, messages)
	}
	return n
}

// PageDefinition is the physical page setup in points.
type PageDefinition struct {
	Width        float64
	Height       float64
	TopMargin    float64
	BottomMargin float64
	LeftMargin   float64
	RightMargin  float64
}

// DefaultPageDefinition returns an A4 portrait page with one inch margins.
func DefaultPageDefinition() PageDefinition {
	return PageDefinition{
		Width:        595,
		Height:       842,
		TopMargin:    72,
		BottomMargin: 72,
		LeftMargin:   72,
		RightMargin:  72,
	}
}

// ContentWidth returns the printable width.
func (p PageDefinition) ContentWidth() float64 { return p.Width - p.LeftMargin - p.RightMargin }

// ContentHeight returns the printable height.
func (p PageDefinition) ContentHeight() float64 { return p.Height - p.TopMargin - p.BottomMargin }

// Document metadata keys.
const (
	MetaTitle       = "title"
	MetaCreator     = "creator"
	MetaDescription = "description"
	MetaCreated     = "created"
)

// DocumentMetaData holds descriptive properties of a report document.
type DocumentMetaData struct {
	entries map[string]any
}

func NewDocumentMetaData() *DocumentMetaData {
	return &DocumentMetaData{entries: make(map[string]any)}
}

func (m *DocumentMetaData) Get(key string) any { return m.entries[key] }

// Set stores a value; nil removes the key.
func (m *DocumentMetaData) Set(key string, value any) {
	if value == nil {
		delete(m.entries, key)
		return
	}
	m.entries[key] = value
}

func (m *DocumentMetaData) Title() string {
	s, _ := m.entries[MetaTitle].(string)
	return s
}

func (m *DocumentMetaData) Created() time.Time {
	t, _ := m.entries[MetaCreated].(time.Time)
	return t
}

// Keys returns the stored keys, sorted.
func (m *DocumentMetaData) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *DocumentMetaData) Clone() *DocumentMetaData {
	n := NewDocumentMetaData()
	for k, v := range m.entries {
		n.entries[k] = v
	}
	return n
}
