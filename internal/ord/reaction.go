// Package ord decodes structured reaction records from their binary blob
// form. Only the slices of the schema this tool reads are materialized:
// the reaction id and the input-slot → component → identifier tree.
package ord

import "strconv"

// Reaction is a decoded structured reaction record.
type Reaction struct {
	ID     string
	Inputs map[string]Input
}

// Input is one named input slot holding components that serve a related
// purpose in the reaction.
type Input struct {
	Components []Compound
}

// Compound is one chemical species within an input slot.
type Compound struct {
	Role        string // decoded role name, or the raw enum integer as a string
	Identifiers []Identifier
}

// Identifier is a typed representation of a chemical species.
type Identifier struct {
	Type  string // decoded type name, or the raw enum integer as a string
	Value string
}

// reactionRoleNames mirrors the record schema's ReactionRoleType enum.
var reactionRoleNames = map[int64]string{
	0:  "UNSPECIFIED",
	1:  "REACTANT",
	2:  "REAGENT",
	3:  "SOLVENT",
	4:  "CATALYST",
	5:  "WORKUP",
	6:  "INTERNAL_STANDARD",
	7:  "AUTHENTIC_STANDARD",
	8:  "PRODUCT",
	9:  "BYPRODUCT",
	10: "SIDE_PRODUCT",
}

// identifierTypeNames mirrors the record schema's CompoundIdentifierType enum.
var identifierTypeNames = map[int64]string{
	0:  "UNSPECIFIED",
	1:  "CUSTOM",
	2:  "SMILES",
	3:  "INCHI",
	4:  "MOLBLOCK",
	5:  "IUPAC_NAME",
	6:  "NAME",
	7:  "CAS_NUMBER",
	8:  "PUBCHEM_CID",
	9:  "CHEMSPIDER_ID",
	10: "CXSMILES",
	11: "INCHI_KEY",
}

// RoleName resolves a role enum value, falling back to the raw integer in
// string form when the value is unknown.
func RoleName(v int64) string {
	if name, ok := reactionRoleNames[v]; ok {
		return name
	}
	return strconv.FormatInt(v, 10)
}

// IdentifierTypeName resolves an identifier-type enum value, falling back to
// the raw integer in string form when the value is unknown.
func IdentifierTypeName(v int64) string {
	if name, ok := identifierTypeNames[v]; ok {
		return name
	}
	return strconv.FormatInt(v, 10)
}
