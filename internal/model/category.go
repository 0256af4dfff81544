package model

// Category is the semantic bucket a chemical entity is classified into.
// The named constants form a closed set; records may additionally introduce
// dynamic structural categories whose name is the input-slot key itself
// (keys shaped like "m1" or "m1_m2", see classify.SlotCategory).
type Category string

const (
	CategoryBase            Category = "Base"
	CategorySolvent         Category = "Solvent"
	CategoryLigand          Category = "Ligand"
	CategoryMetal           Category = "Metal"
	CategoryAmine           Category = "amine"
	CategoryArylHalide      Category = "aryl halide"
	CategoryCarboxylicAcid  Category = "carboxylic acid"
	CategoryActivationAgent Category = "activation agent"
	CategoryAdditive        Category = "additive"
)

// Role is the declared function of a component within a reaction, as decoded
// from the record's role enumeration. Values the decoder cannot name are
// carried as the raw integer in string form.
type Role string

const (
	RoleUnspecified Role = "UNSPECIFIED"
	RoleReactant    Role = "REACTANT"
	RoleReagent     Role = "REAGENT"
	RoleSolvent     Role = "SOLVENT"
	RoleCatalyst    Role = "CATALYST"
	RoleWorkup      Role = "WORKUP"
	RoleProduct     Role = "PRODUCT"

	// Explicit slot-typed roles. These never appear in decoded records but
	// are accepted by the classifier for already-typed sources.
	RoleLigand Role = "LIGAND"
	RoleMetal  Role = "METAL"
	RoleBase   Role = "BASE"
)
