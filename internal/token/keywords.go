package token

var keywords = map[string]Kind{
	"associatedtype":  KwAssociatedtype,
	"class":           KwClass,
	"deinit":          KwDeinit,
	"enum":            KwEnum,
	"extension":       KwExtension,
	"fileprivate":     KwFileprivate,
	"func":            KwFunc,
	"import":          KwImport,
	"init":            KwInit,
	"inout":           KwInout,
	"internal":        KwInternal,
	"let":             KwLet,
	"open":            KwOpen,
	"operator":        KwOperator,
	"precedencegroup": KwPrecedencegroup,
	"private":         KwPrivate,
	"protocol":        KwProtocol,
	"public":          KwPublic,
	"rethrows":        KwRethrows,
	"static":          KwStatic,
	"struct":          KwStruct,
	"subscript":       KwSubscript,
	"typealias":       KwTypealias,
	"var":             KwVar,

	"break":       KwBreak,
	"case":        KwCase,
	"catch":       KwCatch,
	"continue":    KwContinue,
	"default":     KwDefault,
	"defer":       KwDefer,
	"do":          KwDo,
	"else":        KwElse,
	"fallthrough": KwFallthrough,
	"for":         KwFor,
	"guard":       KwGuard,
	"if":          KwIf,
	"in":          KwIn,
	"repeat":      KwRepeat,
	"return":      KwReturn,
	"switch":      KwSwitch,
	"throw":       KwThrow,
	"where":       KwWhere,
	"while":       KwWhile,

	"Any":    KwAny,
	"as":     KwAs,
	"await":  KwAwait,
	"false":  KwFalse,
	"is":     KwIs,
	"nil":    KwNil,
	"self":   KwSelf,
	"Self":   KwSelfType,
	"super":  KwSuper,
	"throws": KwThrows,
	"true":   KwTrue,
	"try":    KwTry,
}

// LookupKeyword returns the keyword kind for ident, if it is reserved.
// Contextual keywords (final, override, lazy, weak, actor, some, ...) are
// plain identifiers here; declaration parsing recognizes them by text.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Modifier names that are contextual keywords before a declaration.
var declModifiers = map[string]struct{}{
	"final":       {},
	"override":    {},
	"required":    {},
	"convenience": {},
	"lazy":        {},
	"weak":        {},
	"unowned":     {},
	"mutating":    {},
	"nonmutating": {},
	"dynamic":     {},
	"indirect":    {},
	"optional":    {},
	"nonisolated": {},
	"isolated":    {},
	"borrowing":   {},
	"consuming":   {},
	"infix":       {},
	"prefix":      {},
	"postfix":     {},
}

// IsDeclModifier reports whether ident is a contextual declaration modifier.
func IsDeclModifier(ident string) bool {
	_, ok := declModifiers[ident]
	return ok
}
