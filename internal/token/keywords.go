package token

// minizincKeywords maps reserved words recognised in .mzn files.
var minizincKeywords = map[string]Kind{
	"ann": KwAnn, "annotation": KwAnnotation, "any": KwAny, "array": KwArray,
	"bool": KwBool, "case": KwCase, "constraint": KwConstraint, "default": KwDefault,
	"diff": KwDiff, "div": KwDiv, "else": KwElse, "elseif": KwElseif, "endif": KwEndif,
	"enum": KwEnum, "false": KwFalse, "float": KwFloat, "function": KwFunction,
	"if": KwIf, "import": KwImport, "in": KwIn, "include": KwInclude, "int": KwInt,
	"intersect": KwIntersect, "let": KwLet, "list": KwList, "maximize": KwMaximize,
	"minimize": KwMinimize, "mod": KwMod, "not": KwNot, "of": KwOf, "op": KwOp,
	"opt": KwOpt, "output": KwOutput, "par": KwPar, "predicate": KwPredicate,
	"record": KwRecord, "satisfy": KwSatisfy, "set": KwSet, "solve": KwSolve,
	"string": KwString, "subset": KwSubset, "superset": KwSuperset, "symdiff": KwSymdiff,
	"test": KwTest, "then": KwThen, "true": KwTrue, "tuple": KwTuple, "type": KwType,
	"union": KwUnion, "var": KwVar, "where": KwWhere, "xor": KwXor,
}

// eprimeKeywords maps reserved words recognised in .eprime files. E-Prime
// reuses the MiniZinc type/literal keywords and layers its own statement
// vocabulary on top (§9.2).
var eprimeKeywords = map[string]Kind{
	"find": KwEPFind, "such": KwEPSuchThat, "that": KwEPSuchThat, "given": KwEPGiven,
	"letting": KwEPLetting, "matrix": KwEPMatrix, "indexed": KwEPIndexed, "by": KwEPBy,
	"of": KwEPOf, "new": KwEPNew, "domain": KwEPDomain,
	"forAll": KwEPForAll, "exists": KwEPExists, "sum": KwEPSum,
	"true": KwTrue, "false": KwFalse, "int": KwInt, "bool": KwBool,
}

// LookupKeyword resolves ident as a keyword: when eprime is set the E-Prime
// vocabulary is tried first, then the MiniZinc keywords.
func LookupKeyword(ident string, eprime bool) (Kind, bool) {
	if eprime {
		if k, ok := eprimeKeywords[ident]; ok {
			return k, true
		}
	}

	k, ok := minizincKeywords[ident]

	return k, ok
}
