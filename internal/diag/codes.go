package diag

import (
	"fmt"
)

// Code is a compact numeric diagnostic identifier. Codes are grouped in
// thousand-blocks per producing phase; the 3000 block is reserved for style
// rules and renders as the rule name instead of a numeric ID.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                Code = 1000
	LexUnknownChar         Code = 1001
	LexUnterminatedString  Code = 1002
	LexUnterminatedComment Code = 1003
	LexBadNumber           Code = 1004
	LexBadEscape           Code = 1005
	LexUnterminatedIdent   Code = 1006
	LexTokenTooLong        Code = 1007

	// Syntax
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynUnclosedDelimiter Code = 2002
	SynExpectIdentifier  Code = 2003
	SynExpectTypeName    Code = 2004
	SynExpectDeclaration Code = 2005
	SynExpectLBrace      Code = 2006
	SynExpectRBrace      Code = 2007
	SynExpectCaseLabel   Code = 2008
	SynTooManyErrors     Code = 2009

	// Style rules (rendered by rule name, see styleNames)
	StyleInfo               Code = 3000
	StyleForceUnwrap        Code = 3001
	StylePreferLet          Code = 3002
	StyleExplicitAccess     Code = 3003
	StyleEnumDefaultCase    Code = 3004
	StyleFinalClass         Code = 3005
	StyleColonSpacing       Code = 3006
	StyleTrailingWhitespace Code = 3007
	StyleTypeName           Code = 3008
	StyleIdentifierName     Code = 3009

	// I/O and configuration
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002
	IOConfigError    Code = 4003

	// Internal failures
	IntRulePanic    Code = 5001
	IntCacheCorrupt Code = 5002

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

// styleNames maps style codes to their stable rule names. These names are the
// public identity of a rule: they appear in output, config, and suppression
// directives.
var styleNames = map[Code]string{
	StyleForceUnwrap:        "force-unwrap",
	StylePreferLet:          "prefer-let",
	StyleExplicitAccess:     "explicit-access",
	StyleEnumDefaultCase:    "enum-default-case",
	StyleFinalClass:         "final-class",
	StyleColonSpacing:       "colon-spacing",
	StyleTrailingWhitespace: "trailing-whitespace",
	StyleTypeName:           "type-name",
	StyleIdentifierName:     "identifier-name",
}

var codeDescription = map[Code]string{
	UnknownCode:            "Unknown error",
	LexInfo:                "Lexical information",
	LexUnknownChar:         "Unknown character",
	LexUnterminatedString:  "Unterminated string literal",
	LexUnterminatedComment: "Unterminated block comment",
	LexBadNumber:           "Malformed numeric literal",
	LexBadEscape:           "Invalid escape sequence",
	LexUnterminatedIdent:   "Unterminated backtick identifier",
	LexTokenTooLong:        "Token too long",

	SynInfo:              "Syntax information",
	SynUnexpectedToken:   "Unexpected token",
	SynUnclosedDelimiter: "Unclosed delimiter",
	SynExpectIdentifier:  "Expected identifier",
	SynExpectTypeName:    "Expected type name",
	SynExpectDeclaration: "Expected declaration",
	SynExpectLBrace:      "Expected '{'",
	SynExpectRBrace:      "Expected '}'",
	SynExpectCaseLabel:   "Expected 'case' or 'default'",
	SynTooManyErrors:     "Too many syntax errors, giving up on file",

	StyleInfo:               "Style information",
	StyleForceUnwrap:        "Force unwrap used",
	StylePreferLet:          "Variable never mutated, prefer 'let'",
	StyleExplicitAccess:     "Missing explicit access level",
	StyleEnumDefaultCase:    "Default case in enum switch",
	StyleFinalClass:         "Class is neither final nor open",
	StyleColonSpacing:       "Colon spacing",
	StyleTrailingWhitespace: "Trailing whitespace",
	StyleTypeName:           "Type name style",
	StyleIdentifierName:     "Identifier name style",

	IOLoadFileError:  "Cannot read file",
	IOWriteFileError: "Cannot write file",
	IOConfigError:    "Configuration error",

	IntRulePanic:    "Rule crashed while checking",
	IntCacheCorrupt: "Result cache entry corrupt",

	ObsInfo:    "Observability information",
	ObsTimings: "Pipeline timings",
}

// ID returns the stable string identity of the code. Style codes resolve to
// their rule name; everything else gets a prefixed numeric form.
func (c Code) ID() string {
	if name, ok := styleNames[c]; ok {
		return name
	}
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("STY%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("INT%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

// IsStyle reports whether the code belongs to the style rule block.
func (c Code) IsStyle() bool {
	return c >= 3000 && c < 4000
}

// IsInternal reports whether the code marks an internal tool failure.
func (c Code) IsInternal() bool {
	return c >= 5000 && c < 6000
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
