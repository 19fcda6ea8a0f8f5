package types

import "strings"

// TypeName renders t as the pretty-printable form name-mangle (§4.14)
// qualifies an overloaded function's mangled name with, e.g. `var int`,
// `array[int] of float`, `tuple(int, float)`.
func (in *Interner) TypeName(t TypeID) string {
	d := in.Lookup(t)

	var b strings.Builder

	if d.Inst == InstVar {
		b.WriteString("var ")
	}

	if d.Opt == OptOpt {
		b.WriteString("opt ")
	}

	if d.Set == IsSet {
		b.WriteString("set of ")
	}

	switch d.Kind {
	case KindBottom:
		b.WriteString("bottom")
	case KindError:
		b.WriteString("error")
	case KindBool:
		b.WriteString("bool")
	case KindInt:
		b.WriteString("int")
	case KindFloat:
		b.WriteString("float")
	case KindString:
		b.WriteString("string")
	case KindAnn:
		b.WriteString("ann")
	case KindEnum:
		b.WriteString(d.EnumName)
	case KindArray:
		b.WriteString("array[")

		for i, ix := range d.Index {
			if i > 0 {
				b.WriteString(", ")
			}

			b.WriteString(in.TypeName(ix))
		}

		b.WriteString("] of ")
		b.WriteString(in.TypeName(d.Element))
	case KindTuple:
		b.WriteString("tuple(")
		writeFieldTypes(&b, in, d.Fields)
		b.WriteString(")")
	case KindRecord:
		b.WriteString("record(")
		writeFieldTypes(&b, in, d.Fields)
		b.WriteString(")")
	case KindOp:
		b.WriteString("op(")
		b.WriteString(in.TypeName(d.Result))
		b.WriteString(" : ")

		for i, p := range d.Params {
			if i > 0 {
				b.WriteString(", ")
			}

			b.WriteString(in.TypeName(p))
		}

		b.WriteString(")")
	case KindTyVar:
		b.WriteString("$")
		b.WriteString(d.TyVarName)
	default:
		b.WriteString("?")
	}

	return b.String()
}

func writeFieldTypes(b *strings.Builder, in *Interner, fields []Field) {
	for i, f := range fields {
		if i > 0 {
			b.WriteString(", ")
		}

		if f.Name != "" {
			b.WriteString(f.Name)
			b.WriteString(": ")
		}

		b.WriteString(in.TypeName(f.Type))
	}
}
