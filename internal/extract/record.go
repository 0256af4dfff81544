package extract

import (
	"sort"

	"github.com/ordlabs/ordscan/internal/classify"
	"github.com/ordlabs/ordscan/internal/model"
	"github.com/ordlabs/ordscan/internal/ord"
)

// Evidence pairs a category with the evidence item observed under it. An
// identifier matching several categories yields one Evidence per category.
type Evidence struct {
	Category model.Category
	Item     model.EvidenceItem
}

// ExtractRecord walks a decoded reaction's input slots and emits classified
// evidence. A slot whose key resolves to a category (fixed map or structural
// m<N> pattern) claims every identifier beneath it unconditionally; otherwise
// each identifier is classified through its component's declared role.
// Input slots are visited in sorted key order so output is deterministic.
func ExtractRecord(rxn *ord.Reaction) []Evidence {
	if rxn == nil {
		return nil
	}

	keys := make([]string, 0, len(rxn.Inputs))
	for k := range rxn.Inputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []Evidence
	for _, key := range keys {
		slotCat, hasSlotCat := classify.SlotCategory(key)
		for _, comp := range rxn.Inputs[key].Components {
			for _, ident := range comp.Identifiers {
				item := model.EvidenceItem{
					ReactionID:     rxn.ID,
					InputKey:       key,
					ReactionRole:   comp.Role,
					IdentifierType: ident.Type,
					Value:          ident.Value,
				}

				if hasSlotCat {
					out = append(out, Evidence{Category: slotCat, Item: item})
					continue
				}

				switch model.Role(comp.Role) {
				case model.RoleSolvent:
					out = append(out, Evidence{Category: model.CategorySolvent, Item: item})
				case model.RoleCatalyst:
					if classify.IsMetal(ident.Value) {
						out = append(out, Evidence{Category: model.CategoryMetal, Item: item})
					}
					if classify.IsLigand(ident.Value) {
						out = append(out, Evidence{Category: model.CategoryLigand, Item: item})
					}
				case model.RoleReagent, model.RoleReactant:
					if classify.IsBase(ident.Value) {
						out = append(out, Evidence{Category: model.CategoryBase, Item: item})
					}
					if classify.IsAmine(ident.Value) {
						out = append(out, Evidence{Category: model.CategoryAmine, Item: item})
					}
					if classify.IsArylHalide(ident.Value) {
						out = append(out, Evidence{Category: model.CategoryArylHalide, Item: item})
					}
				}
			}
		}
	}
	return out
}
