package types

import "fortio.org/safecast"

// Builtins stores the TypeIDs of the fixed primitive spine, interned once
// per database (mirrors the teacher's types.Interner.builtins).
type Builtins struct {
	Bottom, Error                   TypeID
	ParBool, ParInt, ParFloat       TypeID
	ParString, ParAnn               TypeID
	VarBool, VarInt, VarFloat       TypeID
}

// Interner deduplicates Data descriptors into TypeIDs by a canonical
// structural key (§4.2, §9.1).
type Interner struct {
	data     []Data
	index    map[string]TypeID
	builtins Builtins
}

// NewInterner constructs an interner pre-seeded with the primitive spine.
func NewInterner() *Interner {
	in := &Interner{index: make(map[string]TypeID, 64)}
	in.data = append(in.data, Data{Kind: KindBottom}) // reserve NoType/bottom

	in.builtins.Bottom = TypeID(0)
	in.builtins.Error = in.Intern(Data{Kind: KindError})
	in.builtins.ParBool = in.Intern(Data{Kind: KindBool})
	in.builtins.ParInt = in.Intern(Data{Kind: KindInt})
	in.builtins.ParFloat = in.Intern(Data{Kind: KindFloat})
	in.builtins.ParString = in.Intern(Data{Kind: KindString})
	in.builtins.ParAnn = in.Intern(Data{Kind: KindAnn})
	in.builtins.VarBool = in.Intern(Data{Kind: KindBool, Inst: InstVar})
	in.builtins.VarInt = in.Intern(Data{Kind: KindInt, Inst: InstVar})
	in.builtins.VarFloat = in.Intern(Data{Kind: KindFloat, Inst: InstVar})

	return in
}

// Builtins returns the pre-interned primitive TypeIDs.
func (in *Interner) Builtins() Builtins { return in.builtins }

// Intern returns the TypeID for d, interning it if not already present.
func (in *Interner) Intern(d Data) TypeID {
	key := d.key()
	if id, ok := in.index[key]; ok {
		return id
	}

	idx, err := safecast.Conv[uint32](len(in.data))
	if err != nil {
		panic("types: interner overflow")
	}

	id := TypeID(idx)
	in.data = append(in.data, d)
	in.index[key] = id

	return id
}

// Lookup returns the structural descriptor for id (§4.9 "lookup(db) returns
// TyData").
func (in *Interner) Lookup(id TypeID) Data {
	return in.data[id]
}

// Array interns `array[index] of element`.
func (in *Interner) Array(index []TypeID, element TypeID) TypeID {
	return in.Intern(Data{Kind: KindArray, Index: index, Element: element})
}

// Tuple interns `tuple(fields...)`.
func (in *Interner) Tuple(fields ...TypeID) TypeID {
	fs := make([]Field, len(fields))
	for i, f := range fields {
		fs[i] = Field{Type: f}
	}

	return in.Intern(Data{Kind: KindTuple, Fields: fs})
}

// Record interns `record(fields...)`, sorting fields by name so that
// structurally equal records always share one ID (§3.2).
func (in *Interner) Record(fields []Field) TypeID {
	sorted := make([]Field, len(fields))
	copy(sorted, fields)
	sortFieldsByName(sorted)

	return in.Intern(Data{Kind: KindRecord, Fields: sorted})
}

// Op interns a function type `op(result : params)`.
func (in *Interner) Op(result TypeID, params ...TypeID) TypeID {
	return in.Intern(Data{Kind: KindOp, Result: result, Params: params})
}

// Enum interns the nominal `enum(name)` type.
func (in *Interner) Enum(name string) TypeID {
	return in.Intern(Data{Kind: KindEnum, EnumName: name})
}

// TyVar interns a fresh type-inst variable descriptor with the given
// capability flags.
func (in *Interner) TyVar(name string, caps CapabilityFlags) TypeID {
	return in.Intern(Data{Kind: KindTyVar, TyVarName: name, TyVarCaps: caps})
}

// MakeVar returns t with its inst modifier forced to var.
func (in *Interner) MakeVar(t TypeID) TypeID {
	d := in.Lookup(t)
	d.Inst = InstVar

	return in.Intern(d)
}

// MakeOpt returns t with its opt modifier forced to opt.
func (in *Interner) MakeOpt(t TypeID) TypeID {
	d := in.Lookup(t)
	d.Opt = OptOpt

	return in.Intern(d)
}

// WithInst returns t with its inst modifier set to inst.
func (in *Interner) WithInst(t TypeID, inst Inst) TypeID {
	d := in.Lookup(t)
	d.Inst = inst

	return in.Intern(d)
}

// WithOpt returns t with its opt modifier set to opt.
func (in *Interner) WithOpt(t TypeID, opt Opt) TypeID {
	d := in.Lookup(t)
	d.Opt = opt

	return in.Intern(d)
}

func sortFieldsByName(fs []Field) {
	for i := 1; i < len(fs); i++ {
		for j := i; j > 0 && fs[j-1].Name > fs[j].Name; j-- {
			fs[j-1], fs[j] = fs[j], fs[j-1]
		}
	}
}

// IsFunction reports whether t is an op (function) type.
func (in *Interner) IsFunction(t TypeID) bool { return in.Lookup(t).Kind == KindOp }

// KnownPar reports whether t's top-level inst is par; element and field
// types are not inspected.
func (in *Interner) KnownPar(t TypeID) bool { return in.Lookup(t).Inst == InstPar }

// KnownOccurs reports whether t is definitely non-opt.
func (in *Interner) KnownOccurs(t TypeID) bool { return in.Lookup(t).Opt == OptNonOpt }
