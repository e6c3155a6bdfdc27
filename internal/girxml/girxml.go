// Package girxml is the XML parsing collaborator the core calls through a
// narrow interface (§1 "out of scope: the XML parser"). It performs no
// semantic translation — no name transforms, no type lowering, no
// inheritance reasoning — it only maps GIR elements onto Go structs with
// encoding/xml. Every field the core needs downstream is exposed as a raw
// string; interpretation happens in internal/loadmodule and beyond.
package girxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// Repository is the root <repository> element of a GIR document.
type Repository struct {
	XMLName   xml.Name    `xml:"repository"`
	Includes  []Include   `xml:"include"`
	Namespace Namespace   `xml:"namespace"`
}

type Include struct {
	Name    string `xml:"name,attr"`
	Version string `xml:"version,attr"`
}

type Namespace struct {
	Name    string `xml:"name,attr"`
	Version string `xml:"version,attr"`

	Enumerations []Enumeration `xml:"enumeration"`
	Bitfields    []Enumeration `xml:"bitfield"`
	Constants    []Constant    `xml:"constant"`
	Aliases      []Alias       `xml:"alias"`
	Callbacks    []Callback    `xml:"callback"`
	Functions    []Function    `xml:"function"`
	Classes      []Class       `xml:"class"`
	Interfaces   []Interface   `xml:"interface"`
	Records      []Record      `xml:"record"`
	Unions       []Union       `xml:"union"`
}

type Enumeration struct {
	Name           string   `xml:"name,attr"`
	Introspectable string   `xml:"introspectable,attr"`
	GLibTypeName   string   `xml:"glib:type-name,attr"`
	Members        []Member `xml:"member"`
}

type Member struct {
	Name        string `xml:"name,attr"`
	Value       string `xml:"value,attr"`
	CIdentifier string `xml:"identifier,attr"` // c:identifier
	GLibNick    string `xml:"nick,attr"`        // glib:nick
}

type Constant struct {
	Name           string `xml:"name,attr"`
	Value          string `xml:"value,attr"`
	Introspectable string `xml:"introspectable,attr"`
	Type           *Type  `xml:"type"`
	Array          *Array `xml:"array"`
}

type Alias struct {
	Name           string `xml:"name,attr"`
	Introspectable string `xml:"introspectable,attr"`
	Type           *Type  `xml:"type"`
	Array          *Array `xml:"array"`
}

type Callback struct {
	Name            string      `xml:"name,attr"`
	Introspectable  string      `xml:"introspectable,attr"`
	Parameters      *Parameters `xml:"parameters"`
	ReturnValue     *ReturnVal  `xml:"return-value"`
}

type Function struct {
	Name            string      `xml:"name,attr"`
	CIdentifier     string      `xml:"identifier,attr"`
	Introspectable  string      `xml:"introspectable,attr"`
	ShadowedBy      string      `xml:"shadowed-by,attr"`
	Shadows         string      `xml:"shadows,attr"`
	Parameters      *Parameters `xml:"parameters"`
	ReturnValue     *ReturnVal  `xml:"return-value"`
}

type Method = Function
type VirtualMethod = Function
type Constructor = Function

type Class struct {
	Name              string       `xml:"name,attr"`
	Parent            string       `xml:"parent,attr"`
	Abstract          string       `xml:"abstract,attr"`
	Introspectable    string       `xml:"introspectable,attr"`
	GLibIsGTypeStruct string       `xml:"glib:is-gtype-struct-for,attr"`
	Implements        []Implements `xml:"implements"`
	Fields            []Field      `xml:"field"`
	Properties        []Property   `xml:"property"`
	Methods           []Method     `xml:"method"`
	VirtualMethods    []VirtualMethod `xml:"virtual-method"`
	Constructors      []Constructor   `xml:"constructor"`
	Functions         []Function      `xml:"function"`
	Signals           []Signal        `xml:"signal"` // glib:signal
}

type Interface struct {
	Name           string        `xml:"name,attr"`
	Introspectable string        `xml:"introspectable,attr"`
	Prerequisites  []Prerequisite `xml:"prerequisite"`
	Properties     []Property    `xml:"property"`
	Methods        []Method      `xml:"method"`
	VirtualMethods []VirtualMethod `xml:"virtual-method"`
	Signals        []Signal      `xml:"signal"`
}

type Record struct {
	Name              string    `xml:"name,attr"`
	Introspectable    string    `xml:"introspectable,attr"`
	GLibIsGTypeStruct string    `xml:"glib:is-gtype-struct-for,attr"`
	Fields            []Field   `xml:"field"`
	Methods           []Method  `xml:"method"`
	Constructors      []Constructor `xml:"constructor"`
}

type Union struct {
	Name           string   `xml:"name,attr"`
	Introspectable string   `xml:"introspectable,attr"`
	Fields         []Field  `xml:"field"`
	Methods        []Method `xml:"method"`
}

type Implements struct {
	Name string `xml:"name,attr"`
}

type Prerequisite struct {
	Name string `xml:"name,attr"`
}

type Field struct {
	Name           string `xml:"name,attr"`
	Private        string `xml:"private,attr"`
	Introspectable string `xml:"introspectable,attr"`
	Type           *Type  `xml:"type"`
	Array          *Array `xml:"array"`
}

type Property struct {
	Name          string `xml:"name,attr"`
	Writable      string `xml:"writable,attr"`
	ConstructOnly string `xml:"construct-only,attr"`
	Private       string `xml:"private,attr"`
	Introspectable string `xml:"introspectable,attr"`
	Type          *Type  `xml:"type"`
	Array         *Array `xml:"array"`
}

type Signal struct {
	Name           string      `xml:"name,attr"`
	Introspectable string      `xml:"introspectable,attr"`
	Parameters     *Parameters `xml:"parameters"`
	ReturnValue    *ReturnVal  `xml:"return-value"`
}

type Parameters struct {
	InstanceParameter *Parameter `xml:"instance-parameter"`
	Parameters        []Parameter `xml:"parameter"`
}

type Parameter struct {
	Name         string `xml:"name,attr"`
	Direction    string `xml:"direction,attr"`
	Nullable     string `xml:"nullable,attr"`
	AllowNone    string `xml:"allow-none,attr"`
	Optional     string `xml:"optional,attr"`
	Closure      string `xml:"closure,attr"`
	Destroy      string `xml:"destroy,attr"`
	Type         *Type  `xml:"type"`
	Array        *Array `xml:"array"`
}

type ReturnVal struct {
	Nullable  string `xml:"nullable,attr"`
	Type      *Type  `xml:"type"`
	Array     *Array `xml:"array"`
}

type Type struct {
	Name  string `xml:"name,attr"`
	CType string `xml:"type,attr"` // c:type
}

type Array struct {
	Length string `xml:"length,attr"`
	CType  string `xml:"type,attr"`
	Type   *Type  `xml:"type"`
}

// Parse reads and unmarshals one GIR document from path.
func Parse(path string) (*Repository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return ParseReader(f)
}

// ParseReader unmarshals one GIR document from r. Split out from Parse so
// callers that already hold file contents (e.g. tests) never touch disk.
func ParseReader(r io.Reader) (*Repository, error) {
	var repo Repository
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&repo); err != nil {
		return nil, fmt.Errorf("decoding GIR document: %w", err)
	}
	if repo.Namespace.Name == "" {
		return nil, ErrNoNamespace
	}
	return &repo, nil
}

// ErrNoNamespace is returned when a document has no <namespace> element —
// the one fatal error kind of §7 (missing-namespace).
var ErrNoNamespace = fmt.Errorf("GIR document has no <namespace> element")
