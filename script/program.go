package script

import (
	"errors"
	"fmt"

	"github.com/blinklabs-io/plutigo/data"
	"github.com/blinklabs-io/plutigo/syn"
)

var ErrInvalidProgram = errors.New("invalid flat encoded program")

func decodeProgram(flat []byte) (*syn.Program[syn.DeBruijn], error) {
	if len(flat) == 0 {
		return nil, fmt.Errorf("%w: empty program", ErrInvalidProgram)
	}

	program, err := syn.Decode[syn.DeBruijn](flat)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProgram, err)
	}

	return program, nil
}

// applyData wraps the program term into one application per parameter and re-encodes the whole program
func applyData(flat []byte, params []data.PlutusData) ([]byte, error) {
	program, err := decodeProgram(flat)
	if err != nil {
		return nil, err
	}

	term := program.Term
	for _, param := range params {
		term = &syn.Apply[syn.DeBruijn]{
			Function: term,
			Argument: &syn.Constant{Con: &syn.Data{Inner: param}},
		}
	}

	program.Term = term

	result, err := syn.Encode(program)
	if err != nil {
		return nil, fmt.Errorf("failed to encode applied program: %w", err)
	}

	return result, nil
}
