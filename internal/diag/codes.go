package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexUnterminatedString Code = 1001
	LexInvalidNumber      Code = 1002
	LexStrayCharacter     Code = 1003

	// Синтаксические
	SynExpectedToken        Code = 2001
	SynUnexpectedToken      Code = 2002
	SynMalformedDeclaration Code = 2003

	// Разрешение имён
	ResUnresolvedBase       Code = 3001
	ResDuplicateDeclaration Code = 3002
	ResUndefinedName        Code = 3003

	// Наследование
	SemaInheritanceCycle       Code = 3101
	SemaExtendsFinalClass      Code = 3102
	SemaExtendsNonClass        Code = 3103
	SemaImplementsNonInterface Code = 3104

	// Модификаторы
	SemaAbstractInstantiation           Code = 3201
	SemaConcreteClassHasAbstractMembers Code = 3202
	SemaOverrideOfFinalMethod           Code = 3203
	SemaAbstractAndFinal                Code = 3204
	SemaStaticCannotBeAbstract          Code = 3205
	SemaStaticUsesSelf                  Code = 3206
	SemaMissingSuperInit                Code = 3207
	SemaOverrideSignatureMismatch       Code = 3208
	SemaInterfaceHasBody                Code = 3209
	SemaInterfaceHasField               Code = 3210
	SemaAbstractOutsideAbstractClass    Code = 3211
	SemaAbstractHasBody                 Code = 3212
	SemaConstructorBadModifier          Code = 3213

	// Рантайм (backend)
	RunAttributeError      Code = 4001
	RunTypeError           Code = 4002
	RunValueError          Code = 4003
	RunNotImplementedError Code = 4004
	RunZeroDivision        Code = 4005
	RunIndexError          Code = 4006
	RunKeyError            Code = 4007
	RunNameError           Code = 4008
	RunRecursionLimit      Code = 4009
)

// codeTitles are the stable, user-facing code names. They never change
// between versions; tooling matches on them.
var codeTitles = map[Code]string{
	UnknownCode:                         "Unknown",
	LexUnterminatedString:               "UnterminatedString",
	LexInvalidNumber:                    "InvalidNumber",
	LexStrayCharacter:                   "StrayCharacter",
	SynExpectedToken:                    "ExpectedToken",
	SynUnexpectedToken:                  "UnexpectedToken",
	SynMalformedDeclaration:             "MalformedDeclaration",
	ResUnresolvedBase:                   "UnresolvedBase",
	ResDuplicateDeclaration:             "DuplicateDeclaration",
	ResUndefinedName:                    "UndefinedName",
	SemaInheritanceCycle:                "InheritanceCycle",
	SemaExtendsFinalClass:               "ExtendsFinalClass",
	SemaExtendsNonClass:                 "ExtendsNonClass",
	SemaImplementsNonInterface:          "ImplementsNonInterface",
	SemaAbstractInstantiation:           "AbstractInstantiation",
	SemaConcreteClassHasAbstractMembers: "ConcreteClassHasAbstractMembers",
	SemaOverrideOfFinalMethod:           "OverrideOfFinalMethod",
	SemaAbstractAndFinal:                "AbstractAndFinal",
	SemaStaticCannotBeAbstract:          "StaticCannotBeAbstract",
	SemaStaticUsesSelf:                  "StaticUsesSelf",
	SemaMissingSuperInit:                "MissingSuperInit",
	SemaOverrideSignatureMismatch:       "OverrideSignatureMismatch",
	SemaInterfaceHasBody:                "InterfaceHasBody",
	SemaInterfaceHasField:               "InterfaceHasField",
	SemaAbstractOutsideAbstractClass:    "AbstractOutsideAbstractClass",
	SemaAbstractHasBody:                 "AbstractHasBody",
	SemaConstructorBadModifier:          "ConstructorBadModifier",
	RunAttributeError:                   "AttributeError",
	RunTypeError:                        "TypeError",
	RunValueError:                       "ValueError",
	RunNotImplementedError:              "NotImplementedError",
	RunZeroDivision:                     "ZeroDivision",
	RunIndexError:                       "IndexError",
	RunKeyError:                         "KeyError",
	RunNameError:                        "NameError",
	RunRecursionLimit:                   "RecursionLimit",
}

// ID returns the numeric code identifier grouped by phase.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("RUN%04d", ic)
	}
	return "E0000"
}

// Title returns the stable code name (e.g. "AbstractInstantiation").
func (c Code) Title() string {
	title, ok := codeTitles[c]
	if !ok {
		return codeTitles[UnknownCode]
	}
	return title
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
