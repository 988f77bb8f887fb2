package input

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes
const (
	whitespaceCode = iota
	numberCode
	commaCode
	colonCode
	equalsCode
	plusCode
	starCode
	monkeyCode
	monkeyRefCode
	startingCode
	itemsCode
	operationCode
	newCode
	oldCode
	testCode
	divisibleCode
	byCode
	ifCode
	trueCode
	falseCode
	throwCode
	toCode
)

// Token definitions
var (
	whitespaceToken = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	numberToken     = parsly.NewToken(numberCode, "Number", &numberMatcher{})
	commaToken      = parsly.NewToken(commaCode, ",", matcher.NewByte(','))
	colonToken      = parsly.NewToken(colonCode, ":", matcher.NewByte(':'))
	equalsToken     = parsly.NewToken(equalsCode, "=", matcher.NewByte('='))
	plusToken       = parsly.NewToken(plusCode, "+", matcher.NewByte('+'))
	starToken       = parsly.NewToken(starCode, "*", matcher.NewByte('*'))
	monkeyToken     = keyword(monkeyCode, "Monkey")
	monkeyRefToken  = keyword(monkeyRefCode, "monkey")
	startingToken   = keyword(startingCode, "Starting")
	itemsToken      = keyword(itemsCode, "items")
	operationToken  = keyword(operationCode, "Operation")
	newToken        = keyword(newCode, "new")
	oldToken        = keyword(oldCode, "old")
	testToken       = keyword(testCode, "Test")
	divisibleToken  = keyword(divisibleCode, "divisible")
	byToken         = keyword(byCode, "by")
	ifToken         = keyword(ifCode, "If")
	trueToken       = keyword(trueCode, "true")
	falseToken      = keyword(falseCode, "false")
	throwToken      = keyword(throwCode, "throw")
	toToken         = keyword(toCode, "to")
)

func keyword(code int, word string) *parsly.Token {
	return parsly.NewToken(code, word, &wordMatcher{word: []byte(word)})
}

// wordMatcher matches an exact word that is not followed by another letter.
type wordMatcher struct {
	word []byte
}

func (m *wordMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	if pos+len(m.word) > size {
		return 0
	}
	for i, c := range m.word {
		if input[pos+i] != c {
			return 0
		}
	}
	if next := pos + len(m.word); next < size && isLetter(input[next]) {
		return 0
	}
	return len(m.word)
}

// numberMatcher matches an unsigned decimal integer
type numberMatcher struct{}

func (m *numberMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	matched := 0
	for i := pos; i < size; i++ {
		if !isDigit(input[i]) {
			break
		}
		matched++
	}
	return matched
}

// Helper functions
func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
