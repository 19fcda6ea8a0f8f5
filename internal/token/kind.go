// Package token defines the lexical token kinds shared by the MiniZinc and
// E-Prime dialects (§4.1, §9.2).
package token

// Kind discriminates the category of a source token. The MiniZinc and
// E-Prime dialects share one token stream; dialect-specific keywords that
// collide with identifiers in the other dialect are still given distinct
// kinds so the parser can reject them outside their home dialect.
type Kind uint8

const (
	Invalid Kind = iota
	EOF

	Ident

	// Literals.
	IntLit
	FloatLit
	BoolLit
	StringLit
	AbsentLit // <>, the absent-value literal

	// MiniZinc keywords.
	KwAnn
	KwAnnotation
	KwAny
	KwArray
	KwBool
	KwCase
	KwConstraint
	KwDefault
	KwDiff
	KwDiv
	KwElse
	KwElseif
	KwEndif
	KwEnum
	KwFalse
	KwFloat
	KwFunction
	KwIf
	KwImport
	KwIn
	KwInclude
	KwInt
	KwIntersect
	KwLet
	KwList
	KwMaximize
	KwMinimize
	KwMod
	KwNot
	KwOf
	KwOp
	KwOpt
	KwOutput
	KwPar
	KwPredicate
	KwRecord
	KwSatisfy
	KwSet
	KwSolve
	KwString
	KwSubset
	KwSuperset
	KwSymdiff
	KwTest
	KwThen
	KwTrue
	KwTuple
	KwType
	KwUnion
	KwVar
	KwWhere
	KwXor

	// E-Prime keywords (§9.2 dialect-specific surface).
	KwEPFind
	KwEPSuchThat
	KwEPGiven
	KwEPLetting
	KwEPMatrix
	KwEPIndexed
	KwEPBy
	KwEPOf
	KwEPNew
	KwEPDomain
	KwEPForAll
	KwEPExists
	KwEPSum

	// Operators and punctuation.
	Plus             // +
	Minus            // -
	Star             // *
	Slash            // /
	Percent          // %
	Tilde            // ~
	TildePlus        // ~+
	TildeMinus       // ~-
	TildeStar        // ~*
	Eq               // =
	EqEq             // ==
	Neq              // !=
	Lt               // <
	Le               // <=
	Gt               // >
	Ge               // >=
	Arrow            // ->
	LeftArrow        // <-
	DoubleArrow      // <->
	Not              // not
	Question         // ?
	DotDot           // ..
	PlusPlus         // ++
	ColonColon       // ::
	Colon            // :
	Comma            // ,
	Semicolon        // ;
	LParen           // (
	RParen           // )
	LBracket         // [
	RBracket         // ]
	LBrace           // {
	RBrace           // }
	Pipe             // |
	Underscore       // _
	Percentage       // % (line comment lead, not emitted as a token)
	AndAnd           // /\
	OrOr             // \/
	Caret            // ^
	Backslash        // \ (lone, invalid outside /\ and \/)
)

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}

	return "?"
}

var kindNames = map[Kind]string{
	Invalid: "invalid", EOF: "eof", Ident: "identifier",
	IntLit: "int literal", FloatLit: "float literal", BoolLit: "bool literal", StringLit: "string literal",
	AbsentLit: "absent literal",
}

// IsKeyword reports whether k is a reserved word in either dialect.
func (k Kind) IsKeyword() bool {
	return k >= KwAnn && k <= KwEPSum
}

// IsEPrimeOnly reports whether k is reserved only in the E-Prime dialect.
func (k Kind) IsEPrimeOnly() bool {
	return k >= KwEPFind && k <= KwEPSum
}
