package ord

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Decoder turns a raw reaction blob into a decoded Reaction. The structured
// extraction path is gated on this capability: a pipeline constructed with a
// nil Decoder simply emits no structured evidence, it never fails the run.
type Decoder interface {
	Decode(blob []byte) (*Reaction, error)
}

// Field numbers of the reaction record schema. Only the fields this tool
// reads are listed; everything else is skipped by wire type.
const (
	fieldReactionInputs = 2
	fieldReactionID     = 10

	fieldInputEntryKey   = 1
	fieldInputEntryValue = 2

	fieldInputComponents = 1

	fieldCompoundIdentifiers = 1
	fieldCompoundRole        = 3

	fieldIdentifierType  = 1
	fieldIdentifierValue = 3
)

// WireDecoder decodes reaction blobs by walking the protobuf wire format
// directly, so no generated schema bindings are required.
type WireDecoder struct{}

var _ Decoder = WireDecoder{}

// Decode parses the blob into a Reaction.
func (WireDecoder) Decode(blob []byte) (*Reaction, error) {
	rxn := &Reaction{Inputs: make(map[string]Input)}

	err := walkFields(blob, func(num protowire.Number, typ protowire.Type, b []byte) error {
		switch {
		case num == fieldReactionInputs && typ == protowire.BytesType:
			key, input, err := decodeInputEntry(b)
			if err != nil {
				return err
			}
			rxn.Inputs[key] = input
		case num == fieldReactionID && typ == protowire.BytesType:
			rxn.ID = string(b)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("decode reaction: %w", err)
	}
	return rxn, nil
}

func decodeInputEntry(b []byte) (string, Input, error) {
	var key string
	var input Input

	err := walkFields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		switch {
		case num == fieldInputEntryKey && typ == protowire.BytesType:
			key = string(v)
		case num == fieldInputEntryValue && typ == protowire.BytesType:
			return walkFields(v, func(num protowire.Number, typ protowire.Type, c []byte) error {
				if num == fieldInputComponents && typ == protowire.BytesType {
					comp, err := decodeCompound(c)
					if err != nil {
						return err
					}
					input.Components = append(input.Components, comp)
				}
				return nil
			})
		}
		return nil
	})
	return key, input, err
}

func decodeCompound(b []byte) (Compound, error) {
	comp := Compound{Role: RoleName(0)}

	err := walkVarintAware(b, func(num protowire.Number, typ protowire.Type, v []byte, varint int64) error {
		switch {
		case num == fieldCompoundIdentifiers && typ == protowire.BytesType:
			ident, err := decodeIdentifier(v)
			if err != nil {
				return err
			}
			comp.Identifiers = append(comp.Identifiers, ident)
		case num == fieldCompoundRole && typ == protowire.VarintType:
			comp.Role = RoleName(varint)
		}
		return nil
	})
	return comp, err
}

func decodeIdentifier(b []byte) (Identifier, error) {
	ident := Identifier{Type: IdentifierTypeName(0)}

	err := walkVarintAware(b, func(num protowire.Number, typ protowire.Type, v []byte, varint int64) error {
		switch {
		case num == fieldIdentifierType && typ == protowire.VarintType:
			ident.Type = IdentifierTypeName(varint)
		case num == fieldIdentifierValue && typ == protowire.BytesType:
			ident.Value = string(v)
		}
		return nil
	})
	return ident, err
}

// walkFields iterates a message's fields, handing length-delimited payloads
// to fn and skipping everything else.
func walkFields(b []byte, fn func(num protowire.Number, typ protowire.Type, v []byte) error) error {
	return walkVarintAware(b, func(num protowire.Number, typ protowire.Type, v []byte, _ int64) error {
		if typ != protowire.BytesType {
			return nil
		}
		return fn(num, typ, v)
	})
}

// walkVarintAware iterates a message's fields, handing both length-delimited
// payloads and varint values to fn. Unknown fields are skipped by wire type.
func walkVarintAware(b []byte, fn func(num protowire.Number, typ protowire.Type, v []byte, varint int64) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		switch typ {
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			if err := fn(num, typ, v, 0); err != nil {
				return err
			}
			b = b[n:]
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			if err := fn(num, typ, nil, int64(v)); err != nil {
				return err
			}
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return nil
}
