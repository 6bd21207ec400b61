package sequencer

import (
	"fmt"

	"github.com/specialistvlad/irlink/internal/symbol"
	"github.com/specialistvlad/irlink/internal/symdef"
)

// constraint is the ordering view of one WixAction row.
type constraint struct {
	symbol    *symbol.Symbol
	table     string
	name      string
	condition string
	sequence  int
	explicit  bool
	before    string
	after     string
	ordinal   int
}

func read(sym *symbol.Symbol) (*constraint, error) {
	table, err := sym.Field(symdef.WixActionSequenceTable).AsString()
	if err != nil {
		return nil, err
	}
	name, err := sym.Field(symdef.WixActionAction).AsString()
	if err != nil {
		return nil, err
	}
	if !table.Valid || !name.Valid {
		return nil, fmt.Errorf("action %s has no sequence table or name", sym)
	}
	cond, err := sym.Field(symdef.WixActionCondition).AsString()
	if err != nil {
		return nil, err
	}
	seq, err := sym.Field(symdef.WixActionSequence).AsNumber()
	if err != nil {
		return nil, err
	}
	before, err := sym.Field(symdef.WixActionBefore).AsString()
	if err != nil {
		return nil, err
	}
	after, err := sym.Field(symdef.WixActionAfter).AsString()
	if err != nil {
		return nil, err
	}
	return &constraint{
		symbol:    sym,
		table:     table.String,
		name:      name.String,
		condition: cond.String,
		sequence:  int(seq.Int64),
		explicit:  seq.Valid,
		before:    before.String,
		after:     after.String,
	}, nil
}

// anchor is the neighbour an action without an explicit value is placed
// against, with +1 for After and -1 for Before. After wins when both are set.
func (c *constraint) anchor() (string, int) {
	switch {
	case c.after != "":
		return c.after, +1
	case c.before != "":
		return c.before, -1
	default:
		return "", 0
	}
}
