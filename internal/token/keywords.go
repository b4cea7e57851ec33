package token

// keywords maps reserved words to their token kinds.
// Spy смешивает питоновские ключевые слова с модификаторами из C++/Java.
var keywords = map[string]Kind{
	"interface":  KwInterface,
	"class":      KwClass,
	"abstract":   KwAbstract,
	"final":      KwFinal,
	"static":     KwStatic,
	"extends":    KwExtends,
	"implements": KwImplements,
	"def":        KwDef,
	"return":     KwReturn,
	"if":         KwIf,
	"elif":       KwElif,
	"else":       KwElse,
	"for":        KwFor,
	"in":         KwIn,
	"while":      KwWhile,
	"not":        KwNot,
	"and":        KwAnd,
	"or":         KwOr,
	"is":         KwIs,
	"None":       KwNone,
	"True":       KwTrue,
	"False":      KwFalse,
	"self":       KwSelf,
	"super":      KwSuper,
	"pass":       KwPass,
	"raise":      KwRaise,
	"import":     KwImport,
	"from":       KwFrom,
	"break":      KwBreak,
	"continue":   KwContinue,
}

// LookupKeyword returns the keyword kind for s, or Ident if s is not reserved.
func LookupKeyword(s string) Kind {
	if k, ok := keywords[s]; ok {
		return k
	}
	return Ident
}
