package input

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/viant/parsly"

	"github.com/keepaway-sim/keepaway-sim/sim"
)

// ErrSyntax is returned when a definition source cannot be parsed.
var ErrSyntax = errors.New("malformed worker definitions")

// ParseNotes parses the keep-away notes format:
//
//	Monkey 0:
//	  Starting items: 79, 98
//	  Operation: new = old * 19
//	  Test: divisible by 23
//	    If true: throw to monkey 2
//	    If false: throw to monkey 3
//
// Blocks follow each other, usually separated by a blank line. The returned
// definitions are not validated; see Parse.
func ParseNotes(data []byte) ([]sim.WorkerDefinition, error) {
	cursor := parsly.NewCursor("", data, 0)
	var defs []sim.WorkerDefinition
	for {
		cursor.MatchOne(whitespaceToken)
		if cursor.Pos >= cursor.InputSize {
			break
		}
		def, err := parseWorker(cursor)
		if err != nil {
			return nil, fmt.Errorf("%w: block %d: %w", ErrSyntax, len(defs), err)
		}
		defs = append(defs, def)
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: no workers found", ErrSyntax)
	}
	return defs, nil
}

func parseWorker(cursor *parsly.Cursor) (sim.WorkerDefinition, error) {
	var def sim.WorkerDefinition

	// Monkey <id>:
	if err := expect(cursor, monkeyToken); err != nil {
		return def, err
	}
	id, err := expectInt(cursor)
	if err != nil {
		return def, err
	}
	def.ID = id
	if err := expect(cursor, colonToken); err != nil {
		return def, err
	}

	// Starting items: a, b, c
	if err := expect(cursor, startingToken, itemsToken, colonToken); err != nil {
		return def, err
	}
	items, err := parseItems(cursor)
	if err != nil {
		return def, err
	}
	def.InitialItems = items

	// Operation: new = old <op> <arg>
	if err := expect(cursor, operationToken, colonToken, newToken, equalsToken, oldToken); err != nil {
		return def, err
	}
	matched := cursor.MatchAfterOptional(whitespaceToken, plusToken, starToken)
	var operator string
	switch matched.Code {
	case plusToken.Code, starToken.Code:
		operator = matched.Text(cursor)
	default:
		return def, fmt.Errorf("operator must be + or *: %w", cursor.NewError(starToken))
	}
	matched = cursor.MatchAfterOptional(whitespaceToken, oldToken, numberToken)
	switch matched.Code {
	case oldToken.Code, numberToken.Code:
	default:
		return def, fmt.Errorf("operand must be old or a number: %w", cursor.NewError(numberToken))
	}
	transform, err := sim.NewTransform(operator, matched.Text(cursor))
	if err != nil {
		return def, err
	}
	def.Transform = transform

	// Test: divisible by <d>
	if err := expect(cursor, testToken, colonToken, divisibleToken, byToken); err != nil {
		return def, err
	}
	divisor, err := expectNumber(cursor)
	if err != nil {
		return def, err
	}
	def.Divisor, err = strconv.ParseUint(divisor, 10, 64)
	if err != nil {
		return def, fmt.Errorf("divisor %q: %w", divisor, err)
	}

	// If true: throw to monkey <id>
	if def.PassTarget, err = parseBranch(cursor, trueToken); err != nil {
		return def, err
	}
	// If false: throw to monkey <id>
	if def.FailTarget, err = parseBranch(cursor, falseToken); err != nil {
		return def, err
	}
	return def, nil
}

func parseItems(cursor *parsly.Cursor) ([]*big.Int, error) {
	items := make([]*big.Int, 0)
	matched := cursor.MatchAfterOptional(whitespaceToken, numberToken)
	if matched.Code != numberToken.Code {
		return items, nil
	}
	for {
		text := matched.Text(cursor)
		v, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return nil, fmt.Errorf("item %q is not an integer", text)
		}
		items = append(items, v)

		if cursor.MatchAfterOptional(whitespaceToken, commaToken).Code != commaToken.Code {
			return items, nil
		}
		matched = cursor.MatchAfterOptional(whitespaceToken, numberToken)
		if matched.Code != numberToken.Code {
			return nil, cursor.NewError(numberToken)
		}
	}
}

func parseBranch(cursor *parsly.Cursor, outcome *parsly.Token) (int, error) {
	if err := expect(cursor, ifToken, outcome, colonToken, throwToken, toToken, monkeyRefToken); err != nil {
		return 0, err
	}
	return expectInt(cursor)
}

// expect matches each token in turn, skipping optional whitespace before it.
func expect(cursor *parsly.Cursor, tokens ...*parsly.Token) error {
	for _, tok := range tokens {
		matched := cursor.MatchAfterOptional(whitespaceToken, tok)
		if matched.Code != tok.Code {
			return cursor.NewError(tok)
		}
	}
	return nil
}

func expectNumber(cursor *parsly.Cursor) (string, error) {
	matched := cursor.MatchAfterOptional(whitespaceToken, numberToken)
	if matched.Code != numberToken.Code {
		return "", cursor.NewError(numberToken)
	}
	return matched.Text(cursor), nil
}

func expectInt(cursor *parsly.Cursor) (int, error) {
	text, err := expectNumber(cursor)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("worker id %q: %w", text, err)
	}
	return n, nil
}

// WriteNotes renders defs in the notes format accepted by ParseNotes.
func WriteNotes(w io.Writer, defs []sim.WorkerDefinition) error {
	for i, def := range defs {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		items := make([]string, len(def.InitialItems))
		for j, v := range def.InitialItems {
			items[j] = v.String()
		}
		_, err := fmt.Fprintf(w, "Monkey %d:\n  Starting items: %s\n  Operation: new = %s\n  Test: divisible by %d\n    If true: throw to monkey %d\n    If false: throw to monkey %d\n",
			def.ID, strings.Join(items, ", "), def.Transform, def.Divisor, def.PassTarget, def.FailTarget)
		if err != nil {
			return err
		}
	}
	return nil
}
