package syntax

import (
	"swiftstyle/internal/source"
)

// NodeID indexes a node inside its Tree's arena (1-based, 0 = none).
type NodeID uint32

// NoNodeID is the absent-node sentinel.
const NoNodeID NodeID = 0

// IsValid reports whether the ID refers to a node.
func (id NodeID) IsValid() bool { return id != NoNodeID }

// NodeKind tags what a tree node represents. The parser is tolerant: regions it
// cannot understand become Unknown nodes and traversal continues.
type NodeKind uint8

const (
	Unknown NodeKind = iota
	File

	// Declarations
	ImportDecl
	ClassDecl
	StructDecl
	EnumDecl
	ActorDecl
	ProtocolDecl
	ExtensionDecl
	FuncDecl
	InitDecl
	DeinitDecl
	SubscriptDecl
	VarDecl
	LetDecl
	TypealiasDecl
	AssociatedtypeDecl
	OperatorDecl
	PrecedenceGroupDecl
	EnumCaseDecl
	EnumCaseElement

	// Declaration structure
	Attribute
	Param
	InheritanceClause
	InheritedType
	PatternBinding
	TypeAnnotation
	Initializer
	AccessorBlock
	Accessor
	CodeBlock

	// Statements
	IfStmt
	GuardStmt
	ForStmt
	WhileStmt
	RepeatStmt
	SwitchStmt
	CaseClause
	DefaultClause
	DoStmt
	CatchClause
	DeferStmt
	ReturnStmt
	BreakStmt
	ContinueStmt
	FallthroughStmt
	ThrowStmt

	// Expressions
	IdentExpr
	MemberExpr
	CallExpr
	SubscriptExpr
	ClosureExpr
	AssignExpr
	InoutExpr
	ForceUnwrapExpr
	ForceCastExpr
	ForceTryExpr
	OptionalChainExpr
	LiteralExpr
	ArrayExpr
	TupleExpr
	PrefixExpr
	BinaryExpr
	TernaryExpr

	kindCount
)

// KindCount is the number of distinct node kinds, bounding kind-indexed
// tables and bitsets.
const KindCount = uint(kindCount)

var kindNames = [...]string{
	Unknown:             "Unknown",
	File:                "File",
	ImportDecl:          "ImportDecl",
	ClassDecl:           "ClassDecl",
	StructDecl:          "StructDecl",
	EnumDecl:            "EnumDecl",
	ActorDecl:           "ActorDecl",
	ProtocolDecl:        "ProtocolDecl",
	ExtensionDecl:       "ExtensionDecl",
	FuncDecl:            "FuncDecl",
	InitDecl:            "InitDecl",
	DeinitDecl:          "DeinitDecl",
	SubscriptDecl:       "SubscriptDecl",
	VarDecl:             "VarDecl",
	LetDecl:             "LetDecl",
	TypealiasDecl:       "TypealiasDecl",
	AssociatedtypeDecl:  "AssociatedtypeDecl",
	OperatorDecl:        "OperatorDecl",
	PrecedenceGroupDecl: "PrecedenceGroupDecl",
	EnumCaseDecl:        "EnumCaseDecl",
	EnumCaseElement:     "EnumCaseElement",
	Attribute:           "Attribute",
	Param:               "Param",
	InheritanceClause:   "InheritanceClause",
	InheritedType:       "InheritedType",
	PatternBinding:      "PatternBinding",
	TypeAnnotation:      "TypeAnnotation",
	Initializer:         "Initializer",
	AccessorBlock:       "AccessorBlock",
	Accessor:            "Accessor",
	CodeBlock:           "CodeBlock",
	IfStmt:              "IfStmt",
	GuardStmt:           "GuardStmt",
	ForStmt:             "ForStmt",
	WhileStmt:           "WhileStmt",
	RepeatStmt:          "RepeatStmt",
	SwitchStmt:          "SwitchStmt",
	CaseClause:          "CaseClause",
	DefaultClause:       "DefaultClause",
	DoStmt:              "DoStmt",
	CatchClause:         "CatchClause",
	DeferStmt:           "DeferStmt",
	ReturnStmt:          "ReturnStmt",
	BreakStmt:           "BreakStmt",
	ContinueStmt:        "ContinueStmt",
	FallthroughStmt:     "FallthroughStmt",
	ThrowStmt:           "ThrowStmt",
	IdentExpr:           "IdentExpr",
	MemberExpr:          "MemberExpr",
	CallExpr:            "CallExpr",
	SubscriptExpr:       "SubscriptExpr",
	ClosureExpr:         "ClosureExpr",
	AssignExpr:          "AssignExpr",
	InoutExpr:           "InoutExpr",
	ForceUnwrapExpr:     "ForceUnwrapExpr",
	ForceCastExpr:       "ForceCastExpr",
	ForceTryExpr:        "ForceTryExpr",
	OptionalChainExpr:   "OptionalChainExpr",
	LiteralExpr:         "LiteralExpr",
	ArrayExpr:           "ArrayExpr",
	TupleExpr:           "TupleExpr",
	PrefixExpr:          "PrefixExpr",
	BinaryExpr:          "BinaryExpr",
	TernaryExpr:         "TernaryExpr",
}

func (k NodeKind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "NodeKind(?)"
}

// IsDecl reports whether the kind is a declaration.
func (k NodeKind) IsDecl() bool {
	return k >= ImportDecl && k <= EnumCaseElement
}

// IsTypeDecl reports whether the kind declares a nominal type.
func (k NodeKind) IsTypeDecl() bool {
	switch k {
	case ClassDecl, StructDecl, EnumDecl, ActorDecl, ProtocolDecl:
		return true
	default:
		return false
	}
}

// IsExpr reports whether the kind is an expression.
func (k NodeKind) IsExpr() bool {
	return k >= IdentExpr && k <= TernaryExpr
}

// Modifiers is the set of declaration modifiers seen before a declaration,
// access levels included.
type Modifiers uint32

const (
	ModPublic Modifiers = 1 << iota
	ModPrivate
	ModFileprivate
	ModInternal
	ModOpen
	ModFinal
	ModStatic
	ModClassMember // "class func" / "class var"
	ModOverride
	ModLazy
	ModWeak
	ModUnowned
	ModMutating
	ModNonmutating
	ModConvenience
	ModRequired
	ModIndirect
	ModDynamic
	ModOptionalMember // "optional" protocol member
)

// accessMask covers the five access-control modifiers.
const accessMask = ModPublic | ModPrivate | ModFileprivate | ModInternal | ModOpen

// Has reports whether every modifier in m2 is present.
func (m Modifiers) Has(m2 Modifiers) bool { return m&m2 == m2 }

// HasAccessLevel reports whether any access-control modifier is present.
func (m Modifiers) HasAccessLevel() bool { return m&accessMask != 0 }

// modNames lists every modifier bit with its spelling, in declaration order.
var modNames = []struct {
	bit  Modifiers
	name string
}{
	{ModPublic, "public"},
	{ModPrivate, "private"},
	{ModFileprivate, "fileprivate"},
	{ModInternal, "internal"},
	{ModOpen, "open"},
	{ModFinal, "final"},
	{ModStatic, "static"},
	{ModClassMember, "class"},
	{ModOverride, "override"},
	{ModLazy, "lazy"},
	{ModWeak, "weak"},
	{ModUnowned, "unowned"},
	{ModMutating, "mutating"},
	{ModNonmutating, "nonmutating"},
	{ModConvenience, "convenience"},
	{ModRequired, "required"},
	{ModIndirect, "indirect"},
	{ModDynamic, "dynamic"},
	{ModOptionalMember, "optional"},
}

// Names returns the spellings of the set modifiers.
func (m Modifiers) Names() []string {
	if m == 0 {
		return nil
	}
	var out []string
	for _, mn := range modNames {
		if m&mn.bit != 0 {
			out = append(out, mn.name)
		}
	}
	return out
}

// modifierBits maps contextual modifier spellings to their bits. Access
// keywords and "static" arrive as keyword tokens and are mapped in the parser.
var modifierBits = map[string]Modifiers{
	"final":       ModFinal,
	"override":    ModOverride,
	"lazy":        ModLazy,
	"weak":        ModWeak,
	"unowned":     ModUnowned,
	"mutating":    ModMutating,
	"nonmutating": ModNonmutating,
	"convenience": ModConvenience,
	"required":    ModRequired,
	"indirect":    ModIndirect,
	"dynamic":     ModDynamic,
	"optional":    ModOptionalMember,
}

// Node is one vertex of the syntax tree. Name and NameSpan are set for nodes
// that declare or reference a name; Mods only for declarations. Nodes are
// immutable once the parse finishes.
type Node struct {
	Kind     NodeKind
	Span     source.Span
	NameSpan source.Span
	Name     string
	Mods     Modifiers
	Children []NodeID
}
