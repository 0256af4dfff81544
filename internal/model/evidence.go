package model

// EvidenceItem is one observed occurrence of a chemical entity in a record.
// Items are immutable once created; the aggregate's counts tables are derived
// from them and must stay in lock-step with the raw lists.
type EvidenceItem struct {
	ReactionID     string `json:"reaction_id"`
	InputKey       string `json:"input_key,omitempty"`       // slot key, structured records only
	ReactionRole   string `json:"reaction_role,omitempty"`   // absent for HTML-sourced evidence
	IdentifierType string `json:"identifier_type,omitempty"` // e.g. SMILES, NAME; absent for HTML-sourced evidence
	Value          string `json:"value"`
}

// IdentifierTypeSMILES is the identifier type selected by the --smiles-only
// output filter.
const IdentifierTypeSMILES = "SMILES"
