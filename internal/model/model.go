// Package model defines the core data structures shared by every stage of
// the GIR-to-target-surface translation pipeline: the parsed module
// wrapper, the tagged-variant Declaration, type references, and the
// class-specific shapes the member synthesizer and overload reconciler
// operate on.
package model

// DeclKind tags the variant a Declaration carries.
type DeclKind string

const (
	KindEnumeration DeclKind = "enumeration"
	KindBitfield    DeclKind = "bitfield"
	KindConstant    DeclKind = "constant"
	KindAlias       DeclKind = "alias"
	KindCallback    DeclKind = "callback"
	KindFunction    DeclKind = "function"
	KindRecord      DeclKind = "record"
	KindUnion       DeclKind = "union"
	KindClass       DeclKind = "class"
	KindInterface   DeclKind = "interface"
)

// Direction is a parameter's GIR direction annotation.
type Direction string

const (
	DirIn    Direction = "in"
	DirOut   Direction = "out"
	DirInout Direction = "inout"
)

// Module is one parsed GIR document: identity, ordered direct
// dependencies (from <include>), and the transitively-closed dependency
// set computed during module-graph construction.
type Module struct {
	Namespace   string
	Version     string
	PackageName string // "<namespace>-<version>"

	Directs []*Module // ordered, from <include> order
	Closure map[string]*Module
	Decls   []*Declaration
}

// QualifiedName returns "<Namespace>.<Name>".
func (m *Module) QualifiedName(name string) string {
	return m.Namespace + "." + name
}

// IsRootObjectModule reports whether this module is the GIR namespace
// that defines the root object class (conventionally "GObject").
func (m *Module) IsRootObjectModule() bool {
	return m.Namespace == "GObject"
}

// NamespaceOf extracts the namespace prefix of a fully-qualified name
// ("<Namespace>.<Name>"). GIR namespaces never themselves contain a dot,
// so splitting on the first one is unambiguous.
func NamespaceOf(qualifiedName string) string {
	for i := 0; i < len(qualifiedName); i++ {
		if qualifiedName[i] == '.' {
			return qualifiedName[:i]
		}
	}
	return qualifiedName
}

// TypeRefShape distinguishes the outer shape of a TypeRef.
type TypeRefShape string

const (
	ShapePlain        TypeRefShape = "plain"    // primitive or named type
	ShapeArray        TypeRefShape = "array"    // array-of element
	ShapeList         TypeRefShape = "list"     // GLib list/slist-of element
	ShapeCallbackType TypeRefShape = "callback" // inline callback signature
)

// TypeRef is a lowered reference to a GIR type: either a primitive tag, a
// named type ("<Namespace>.<Name>"), an inline callback signature, or an
// array/list wrapping an element TypeRef. Nullable is orthogonal to shape.
type TypeRef struct {
	Shape TypeRefShape

	// Plain shape.
	Primitive string // non-empty iff this is a built-in C-type tag, e.g. "utf8", "gint"
	Named     string // non-empty iff this is a named type reference "<Namespace>.<Name>"

	// Array/list shape.
	Element        *TypeRef
	LengthParamIdx int // -1 when absent
	HasLengthParam bool

	// Callback shape.
	Callback *CallableSignature

	CType    string // raw GIR c:type, used by TypeResolver step 2
	Nullable bool
}

// Parameter is one entry of a CallableSignature's parameter list.
type Parameter struct {
	Name      string
	Direction Direction
	Nullable  bool
	AllowNone bool
	Optional  bool // GIR optional="1" annotation, distinct from computed optionality

	ClosureIndex int // -1 when absent
	DestroyIndex int // -1 when absent
	LengthIndex  int // -1 when absent

	Type TypeRef
}

// IsNullableAnnotated reports whether any of the three GIR nullability
// annotations are present on this parameter.
func (p *Parameter) IsNullableAnnotated() bool {
	return p.Nullable || p.AllowNone || p.Optional
}

// CallableSignature is the parameter list + return type shared by
// functions, methods, virtual methods, constructors, callbacks, and
// signal handlers.
type CallableSignature struct {
	Parameters        []Parameter
	Return            TypeRef
	ReturnNullable    bool
	OutArrayLengthIdx int // -1 when absent; index into Parameters
	Introspectable    bool

	ShadowedBy string // this callable is dropped in favor of the one named here
	Shadows    string // this callable's emitted name is overridden to the one named here

	CIdentifier string
}

// Field is a class/record/union member field.
type Field struct {
	Name           string
	Type           TypeRef
	Private        bool
	Introspectable bool
}

// Property is a GObject property.
type Property struct {
	Name           string
	Type           TypeRef
	Writable       bool
	ConstructOnly  bool
	Private        bool
	Introspectable bool
}

// Signal is a GObject glib:signal.
type Signal struct {
	Name           string
	Signature      CallableSignature
	Introspectable bool
}

// Member is a named callable (method, virtual method, constructor, or
// static function) with an owning qualified class name, used by the
// inheritance closure walkers and the overload reconciler.
type Member struct {
	Name       string
	Signature  CallableSignature
	IsVirtual  bool
	OwnerClass string // qualified name of the class/interface that declares it
}

// ClassDeclaration is the payload for KindClass and KindInterface
// Declarations (interfaces omit Parent and store every prerequisite in
// Implements).
type ClassDeclaration struct {
	SimpleName    string
	QualifiedName string

	Parent     string   // qualified name, "" for interfaces and the root object class
	Implements []string // qualified interface names (for interfaces: the prerequisites)

	Fields         []Field
	Properties     []Property
	Methods        []Member
	VirtualMethods []Member
	Signals        []Signal
	Constructors   []Member
	StaticFuncs    []Member

	// IsGTypeStructFor holds the qualified class name this record is the
	// GType struct for, "" if this declaration is not such a record.
	IsGTypeStructFor string

	IsInterface bool
	Abstract    bool
}

// EnumMember is one <member> of an enumeration or bitfield.
type EnumMember struct {
	Name        string // transformed target-surface identifier
	RawName     string // original GIR name, before NameTransform
	Value       string
	CIdentifier string
	GLibNick    string
}

// EnumDeclaration is the payload for KindEnumeration and KindBitfield.
type EnumDeclaration struct {
	Members    []EnumMember
	IsBitfield bool
}

// ConstantDeclaration is the payload for KindConstant.
type ConstantDeclaration struct {
	Type  TypeRef
	Value string
}

// AliasDeclaration is the payload for KindAlias.
type AliasDeclaration struct {
	Target TypeRef
}

// CallbackDeclaration is the payload for KindCallback.
type CallbackDeclaration struct {
	Signature CallableSignature
}

// FunctionDeclaration is the payload for KindFunction (module-level
// functions, not class methods).
type FunctionDeclaration struct {
	Signature CallableSignature
}

// RecordDeclaration is the payload for KindRecord and KindUnion.
type RecordDeclaration struct {
	Fields           []Field
	Methods          []Member
	Constructors     []Member
	IsGTypeStructFor string // "" unless this record backs a class's static methods
	IsUnion          bool
}

// Declaration is the tagged variant over the ten GIR construct kinds. Only
// the field matching Kind is populated; the rest are nil. Owner and
// QualifiedName are stamped once, during SymbolTable population, and are
// never mutated afterward (§3/§5 populate-then-freeze discipline).
type Declaration struct {
	Kind           DeclKind
	QualifiedName  string
	SimpleName     string
	Owner          *Module
	Introspectable bool

	Enum     *EnumDeclaration
	Constant *ConstantDeclaration
	Alias    *AliasDeclaration
	Callback *CallbackDeclaration
	Function *FunctionDeclaration
	Record   *RecordDeclaration
	Class    *ClassDeclaration // also used for KindInterface
}
