package binding

import (
	"slices"

	"go.bytecodealliance.org/wit"

	icubridge "github.com/wippyai/icu-bridge"
	"github.com/wippyai/icu-bridge/errors"
	"github.com/wippyai/icu-bridge/schema"
	"github.com/wippyai/icu-bridge/transcoder"
)

// Method is a validated signature with its resolved names.
type Method struct {
	layout transcoder.ResultLayout
	sig    Signature
	class  string
	name   string
}

// Name returns "Class.method".
func (m *Method) Name() string { return m.name }

// Class returns the type that owns the entry point.
func (m *Method) Class() string { return m.class }

// Signature returns a copy of the descriptor.
func (m *Method) Signature() Signature { return m.sig }

// Catalog is a validated set of signatures.
type Catalog struct {
	methods map[string]*Method
	lenders map[string][]string
	order   []string
	classes []string
}

// NewCatalog validates sigs and builds the borrow graph.
func NewCatalog(sigs ...Signature) (*Catalog, error) {
	c := &Catalog{
		methods: make(map[string]*Method, len(sigs)),
		lenders: make(map[string][]string),
	}

	constructible := make(map[string]struct{})
	for _, s := range sigs {
		if s.Return.Kind == Object {
			constructible[s.Return.Class] = struct{}{}
		}
	}

	for i := range sigs {
		m, err := newMethod(sigs[i], constructible)
		if err != nil {
			return nil, err
		}
		if _, dup := c.methods[m.name]; dup {
			return nil, errors.InvalidDescriptor(m.sig.Symbol, "duplicate method %s", m.name)
		}
		c.methods[m.name] = m
		c.order = append(c.order, m.name)
		c.addEdges(m)
	}

	for class := range constructible {
		c.classes = append(c.classes, class)
	}
	slices.Sort(c.classes)
	return c, nil
}

func newMethod(s Signature, constructible map[string]struct{}) (*Method, error) {
	class, method, ok := schema.SplitSymbol(s.Symbol)
	if !ok {
		return nil, errors.InvalidDescriptor(s.Symbol, "entry point name does not follow icu4x_<Type>_<method>_mv1")
	}
	m := &Method{sig: s, class: class, name: class + "." + method}

	if s.Self {
		if _, ok := constructible[class]; !ok {
			return nil, errors.InvalidDescriptor(s.Symbol, "receiver class %s has no constructor", class)
		}
	} else if s.SelfBorrowed {
		return nil, errors.InvalidDescriptor(s.Symbol, "static function cannot borrow its receiver")
	}

	borrows := s.SelfBorrowed
	for _, p := range s.Params {
		if err := checkParam(s.Symbol, p, constructible); err != nil {
			return nil, err
		}
		borrows = borrows || p.Borrowed
	}

	if err := checkReturn(s.Symbol, s.Return); err != nil {
		return nil, err
	}
	if borrows && s.Return.Kind != Object {
		return nil, errors.InvalidDescriptor(s.Symbol, "only object results can borrow, got %s", s.Return.Kind)
	}

	if s.Failure != nil {
		if err := checkFailure(s.Symbol, s.Failure); err != nil {
			return nil, err
		}
		layout, err := transcoder.NewResultLayout(s.okType(), s.errType())
		if err != nil {
			return nil, errors.InvalidDescriptor(s.Symbol, "result layout: %v", err)
		}
		m.layout = layout
	}
	return m, nil
}

func checkParam(symbol string, p Param, constructible map[string]struct{}) error {
	if p.Name == "" {
		return errors.InvalidDescriptor(symbol, "unnamed parameter")
	}
	switch p.Kind {
	case Primitive:
		if _, isString := p.Type.(wit.String); isString {
			return errors.InvalidDescriptor(symbol, "parameter %s: strings are declared with Str", p.Name)
		}
		if _, _, err := transcoder.SizeAlign(p.Type); err != nil || p.Type == nil {
			return errors.InvalidDescriptor(symbol, "parameter %s: %s is not a scalar", p.Name, transcoder.TypeName(p.Type))
		}
		if p.Borrowed {
			return errors.InvalidDescriptor(symbol, "parameter %s: scalars cannot be lent", p.Name)
		}
	case Enum:
		if p.Enum == nil {
			return errors.InvalidDescriptor(symbol, "parameter %s: enum without codec", p.Name)
		}
		if p.Borrowed {
			return errors.InvalidDescriptor(symbol, "parameter %s: enums cannot be lent", p.Name)
		}
	case Handle:
		if _, ok := constructible[p.Class]; !ok {
			return errors.InvalidDescriptor(symbol, "parameter %s: class %q has no constructor", p.Name, p.Class)
		}
	case String:
	default:
		return errors.InvalidDescriptor(symbol, "parameter %s: unknown kind %d", p.Name, p.Kind)
	}
	if p.Lossy && p.Kind != String {
		return errors.InvalidDescriptor(symbol, "parameter %s: only strings can be lossy", p.Name)
	}
	return nil
}

func checkReturn(symbol string, r Return) error {
	switch r.Kind {
	case Void, Text:
	case Scalar:
		if _, _, err := transcoder.SizeAlign(r.Type); err != nil || r.Type == nil {
			return errors.InvalidDescriptor(symbol, "return type %s is not a scalar", transcoder.TypeName(r.Type))
		}
	case EnumValue:
		if r.Enum == nil {
			return errors.InvalidDescriptor(symbol, "enum return without codec")
		}
	case Object:
		if r.Class == "" {
			return errors.InvalidDescriptor(symbol, "object return without class")
		}
	default:
		return errors.InvalidDescriptor(symbol, "unknown return kind %d", r.Kind)
	}
	return nil
}

// checkFailure requires every decoded error to be a Go error.
func checkFailure(symbol string, f *Failure) error {
	if f.Codec == nil {
		if f.Unit == nil {
			return errors.InvalidDescriptor(symbol, "unit failure without an error value")
		}
		return nil
	}
	for _, name := range f.Codec.Names() {
		v, err := f.Codec.Parse(name)
		if err != nil {
			return errors.InvalidDescriptor(symbol, "error case %s: %v", name, err)
		}
		if _, ok := v.(error); !ok {
			return errors.InvalidDescriptor(symbol, "error case %s of %s does not implement error", name, f.Codec.TypeName())
		}
	}
	return nil
}

func (c *Catalog) addEdges(m *Method) {
	if m.sig.Return.Kind != Object {
		return
	}
	borrower := m.sig.Return.Class
	add := func(lender string) {
		if !slices.Contains(c.lenders[borrower], lender) {
			c.lenders[borrower] = append(c.lenders[borrower], lender)
		}
	}
	if m.sig.SelfBorrowed {
		add(m.class)
	}
	for _, p := range m.sig.Params {
		if !p.Borrowed {
			continue
		}
		if p.Kind == String {
			add(bufferClass(p.Encoding))
		} else {
			add(p.Class)
		}
	}
}

// Lookup returns the method named "Class.method".
func (c *Catalog) Lookup(name string) (*Method, bool) {
	m, ok := c.methods[name]
	return m, ok
}

// Methods returns method names in declaration order.
func (c *Catalog) Methods() []string {
	return append([]string(nil), c.order...)
}

// Classes returns the sorted names of classes the catalog can construct.
func (c *Catalog) Classes() []string {
	return append([]string(nil), c.classes...)
}

// Lenders returns the classes an object of class may borrow from.
func (c *Catalog) Lenders(class string) []string {
	return append([]string(nil), c.lenders[class]...)
}

// Symbols returns every entry point the catalog needs from a core:
// the allocator, the writeable protocol when text is returned, each
// method and each constructible class's destructor.
func (c *Catalog) Symbols() []string {
	out := []string{schema.Alloc, schema.Free}
	text := false
	for _, name := range c.order {
		m := c.methods[name]
		out = append(out, m.sig.Symbol)
		text = text || m.sig.Return.Kind == Text
	}
	if text {
		out = append(out, schema.WriteableCreate, schema.WriteableGetBytes, schema.WriteableLen, schema.WriteableDestroy)
	}
	for _, class := range c.classes {
		out = append(out, schema.Destructor(class))
	}
	return out
}

// Check reports the entry points core does not export.
func (c *Catalog) Check(core icubridge.Core) error {
	var missing []string
	for _, sym := range c.Symbols() {
		if !core.Has(sym) {
			missing = append(missing, sym)
		}
	}
	if len(missing) > 0 {
		return errors.NewMissingSymbolsError(missing)
	}
	return nil
}

func bufferClass(enc transcoder.Encoding) string {
	if enc == transcoder.UTF16 {
		return "Utf16Buffer"
	}
	return "Utf8Buffer"
}
