// Package token defines the lexical vocabulary of the Spy language:
// token kinds, the keyword table, and the Token value produced by the lexer.
package token
