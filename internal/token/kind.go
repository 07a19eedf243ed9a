package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token, including backtick-escaped ones.
	Ident
	// DollarIdent represents an anonymous closure argument or projection ($0, $wrapped).
	DollarIdent

	// KwAssociatedtype represents the 'associatedtype' keyword.
	KwAssociatedtype // associatedtype
	// KwClass represents the 'class' keyword.
	KwClass // class
	// KwDeinit represents the 'deinit' keyword.
	KwDeinit // deinit
	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwExtension represents the 'extension' keyword.
	KwExtension // extension
	// KwFileprivate represents the 'fileprivate' keyword.
	KwFileprivate // fileprivate
	// KwFunc represents the 'func' keyword.
	KwFunc // func
	// KwImport represents the 'import' keyword.
	KwImport // import
	// KwInit represents the 'init' keyword.
	KwInit // init
	// KwInout represents the 'inout' keyword.
	KwInout // inout
	// KwInternal represents the 'internal' keyword.
	KwInternal // internal
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwOpen represents the 'open' keyword.
	KwOpen // open
	// KwOperator represents the 'operator' keyword.
	KwOperator // operator
	// KwPrecedencegroup represents the 'precedencegroup' keyword.
	KwPrecedencegroup // precedencegroup
	// KwPrivate represents the 'private' keyword.
	KwPrivate // private
	// KwProtocol represents the 'protocol' keyword.
	KwProtocol // protocol
	// KwPublic represents the 'public' keyword.
	KwPublic // public
	// KwRethrows represents the 'rethrows' keyword.
	KwRethrows // rethrows
	// KwStatic represents the 'static' keyword.
	KwStatic // static
	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwSubscript represents the 'subscript' keyword.
	KwSubscript // subscript
	// KwTypealias represents the 'typealias' keyword.
	KwTypealias // typealias
	// KwVar represents the 'var' keyword.
	KwVar // var

	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwCase represents the 'case' keyword.
	KwCase // case
	// KwCatch represents the 'catch' keyword.
	KwCatch // catch
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwDefault represents the 'default' keyword.
	KwDefault // default
	// KwDefer represents the 'defer' keyword.
	KwDefer // defer
	// KwDo represents the 'do' keyword.
	KwDo // do
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwFallthrough represents the 'fallthrough' keyword.
	KwFallthrough // fallthrough
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwGuard represents the 'guard' keyword.
	KwGuard // guard
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwIn represents the 'in' keyword.
	KwIn // in
	// KwRepeat represents the 'repeat' keyword.
	KwRepeat // repeat
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwSwitch represents the 'switch' keyword.
	KwSwitch // switch
	// KwThrow represents the 'throw' keyword.
	KwThrow // throw
	// KwWhere represents the 'where' keyword.
	KwWhere // where
	// KwWhile represents the 'while' keyword.
	KwWhile // while

	// KwAny represents the 'Any' keyword.
	KwAny // Any
	// KwAs represents the 'as' keyword.
	KwAs // as
	// KwAwait represents the 'await' keyword.
	KwAwait // await
	// KwFalse represents the 'false' keyword.
	KwFalse // false
	// KwIs represents the 'is' keyword.
	KwIs // is
	// KwNil represents the 'nil' keyword.
	KwNil // nil
	// KwSelf represents the 'self' keyword.
	KwSelf // self
	// KwSelfType represents the 'Self' keyword.
	KwSelfType // Self
	// KwSuper represents the 'super' keyword.
	KwSuper // super
	// KwThrows represents the 'throws' keyword.
	KwThrows // throws
	// KwTrue represents the 'true' keyword.
	KwTrue // true
	// KwTry represents the 'try' keyword.
	KwTry // try

	// IntLit represents an integer literal token.
	IntLit
	// FloatLit represents a float literal token.
	FloatLit
	// StringLit represents a string literal token, including multiline and raw forms.
	StringLit

	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
	// LBracket represents the left bracket token.
	LBracket // [
	// RBracket represents the right bracket token.
	RBracket // ]
	// Comma represents the comma token.
	Comma // ,
	// Colon represents the colon token.
	Colon // :
	// Semicolon represents the semicolon token.
	Semicolon // ;
	// At represents the attribute marker token.
	At // @
	// Pound represents the compiler directive marker token.
	Pound // #
	// Underscore represents the wildcard pattern token.
	Underscore // _
	// Backslash represents the key path marker token.
	Backslash // \
	// Dot represents the dot token.
	Dot // .
	// DotDotDot represents the closed range operator token.
	DotDotDot // ...
	// DotDotLt represents the half-open range operator token.
	DotDotLt // ..<
	// Arrow represents the function return arrow token.
	Arrow // ->
	// Assign represents the assignment token.
	Assign // =
	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the slash operator token.
	Slash // /
	// Percent represents the percent operator token.
	Percent // %
	// PlusAssign represents the plus assign operator token.
	PlusAssign // +=
	// MinusAssign represents the minus assign operator token.
	MinusAssign // -=
	// StarAssign represents the star assign operator token.
	StarAssign // *=
	// SlashAssign represents the slash assign operator token.
	SlashAssign // /=
	// PercentAssign represents the percent assign operator token.
	PercentAssign // %=
	// AmpAssign represents the amp assign operator token.
	AmpAssign // &=
	// PipeAssign represents the pipe assign operator token.
	PipeAssign // |=
	// CaretAssign represents the caret assign operator token.
	CaretAssign // ^=
	// ShlAssign represents the shift left assign operator token.
	ShlAssign // <<=
	// ShrAssign represents the shift right assign operator token.
	ShrAssign // >>=
	// EqEq represents the equality operator token.
	EqEq // ==
	// EqEqEq represents the identity operator token.
	EqEqEq // ===
	// Bang represents the bang token, prefix negation or postfix force unwrap.
	Bang // !
	// BangEq represents the inequality operator token.
	BangEq // !=
	// BangEqEq represents the identity inequality operator token.
	BangEqEq // !==
	// Lt represents the less than operator token.
	Lt // <
	// LtEq represents the less or equal operator token.
	LtEq // <=
	// Gt represents the greater than operator token.
	Gt // >
	// GtEq represents the greater or equal operator token.
	GtEq // >=
	// Shl represents the shift left operator token.
	Shl // <<
	// Shr represents the shift right operator token.
	Shr // >>
	// Amp represents the amp token, bitwise and or inout argument marker.
	Amp // &
	// Pipe represents the pipe operator token.
	Pipe // |
	// Caret represents the caret operator token.
	Caret // ^
	// Tilde represents the tilde operator token.
	Tilde // ~
	// AndAnd represents the logical and operator token.
	AndAnd // &&
	// OrOr represents the logical or operator token.
	OrOr // ||
	// Question represents the question token, optional chaining or ternary.
	Question // ?
	// QuestionQuestion represents the nil coalescing operator token.
	QuestionQuestion // ??
	// Op represents any other operator character sequence, such as custom operators.
	Op
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Ident:       "Ident",
	DollarIdent: "DollarIdent",

	KwAssociatedtype:  "associatedtype",
	KwClass:           "class",
	KwDeinit:          "deinit",
	KwEnum:            "enum",
	KwExtension:       "extension",
	KwFileprivate:     "fileprivate",
	KwFunc:            "func",
	KwImport:          "import",
	KwInit:            "init",
	KwInout:           "inout",
	KwInternal:        "internal",
	KwLet:             "let",
	KwOpen:            "open",
	KwOperator:        "operator",
	KwPrecedencegroup: "precedencegroup",
	KwPrivate:         "private",
	KwProtocol:        "protocol",
	KwPublic:          "public",
	KwRethrows:        "rethrows",
	KwStatic:          "static",
	KwStruct:          "struct",
	KwSubscript:       "subscript",
	KwTypealias:       "typealias",
	KwVar:             "var",

	KwBreak:       "break",
	KwCase:        "case",
	KwCatch:       "catch",
	KwContinue:    "continue",
	KwDefault:     "default",
	KwDefer:       "defer",
	KwDo:          "do",
	KwElse:        "else",
	KwFallthrough: "fallthrough",
	KwFor:         "for",
	KwGuard:       "guard",
	KwIf:          "if",
	KwIn:          "in",
	KwRepeat:      "repeat",
	KwReturn:      "return",
	KwSwitch:      "switch",
	KwThrow:       "throw",
	KwWhere:       "where",
	KwWhile:       "while",

	KwAny:      "Any",
	KwAs:       "as",
	KwAwait:    "await",
	KwFalse:    "false",
	KwIs:       "is",
	KwNil:      "nil",
	KwSelf:     "self",
	KwSelfType: "Self",
	KwSuper:    "super",
	KwThrows:   "throws",
	KwTrue:     "true",
	KwTry:      "try",

	IntLit:    "IntLit",
	FloatLit:  "FloatLit",
	StringLit: "StringLit",

	LParen:           "(",
	RParen:           ")",
	LBrace:           "{",
	RBrace:           "}",
	LBracket:         "[",
	RBracket:         "]",
	Comma:            ",",
	Colon:            ":",
	Semicolon:        ";",
	At:               "@",
	Pound:            "#",
	Underscore:       "_",
	Backslash:        "\\",
	Dot:              ".",
	DotDotDot:        "...",
	DotDotLt:         "..<",
	Arrow:            "->",
	Assign:           "=",
	Plus:             "+",
	Minus:            "-",
	Star:             "*",
	Slash:            "/",
	Percent:          "%",
	PlusAssign:       "+=",
	MinusAssign:      "-=",
	StarAssign:       "*=",
	SlashAssign:      "/=",
	PercentAssign:    "%=",
	AmpAssign:        "&=",
	PipeAssign:       "|=",
	CaretAssign:      "^=",
	ShlAssign:        "<<=",
	ShrAssign:        ">>=",
	EqEq:             "==",
	EqEqEq:           "===",
	Bang:             "!",
	BangEq:           "!=",
	BangEqEq:         "!==",
	Lt:               "<",
	LtEq:             "<=",
	Gt:               ">",
	GtEq:             ">=",
	Shl:              "<<",
	Shr:              ">>",
	Amp:              "&",
	Pipe:             "|",
	Caret:            "^",
	Tilde:            "~",
	AndAnd:           "&&",
	OrOr:             "||",
	Question:         "?",
	QuestionQuestion: "??",
	Op:               "Op",
}

// String returns the token spelling for fixed-text kinds and the class name
// for the rest, in the manner of go/token.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsAccessLevel reports whether the kind is an access control keyword.
func (k Kind) IsAccessLevel() bool {
	switch k {
	case KwOpen, KwPublic, KwInternal, KwFileprivate, KwPrivate:
		return true
	default:
		return false
	}
}

// IsDeclIntro reports whether the kind starts a declaration.
func (k Kind) IsDeclIntro() bool {
	switch k {
	case KwClass, KwStruct, KwEnum, KwProtocol, KwExtension, KwFunc, KwInit,
		KwDeinit, KwSubscript, KwVar, KwLet, KwTypealias, KwAssociatedtype,
		KwImport, KwCase, KwOperator, KwPrecedencegroup:
		return true
	default:
		return false
	}
}
