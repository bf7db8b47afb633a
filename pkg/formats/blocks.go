package formats

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/Faultbox/odr2obj/pkg/encoding"
)

// Block grammar errors.
var (
	ErrUnbalancedBraces = errors.New("unbalanced braces")
)

const (
	tokenOpen = iota
	tokenClose
	tokenNewline
	tokenWord
)

var blockLexer *lexmachine.Lexer

func init() {
	blockLexer = lexmachine.NewLexer()
	blockLexer.Add([]byte("[{]"), blockToken(tokenOpen))
	blockLexer.Add([]byte("[}]"), blockToken(tokenClose))
	blockLexer.Add([]byte("\n"), blockToken(tokenNewline))
	blockLexer.Add([]byte("[ \t\r]+"), skipToken)
	blockLexer.Add([]byte("[^ \t\r\n{}]+"), blockToken(tokenWord))
	if err := blockLexer.Compile(); err != nil {
		panic(err)
	}
}

func blockToken(tokenType int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(tokenType, string(m.Bytes), m), nil
	}
}

func skipToken(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// Block is one line of an OpenFormats text file, optionally followed by a
// brace-delimited body.
//
//	Indices 3       <- Name "Indices", Args ["3"]
//	{
//		0 1 2       <- child with Name "0"
//	}
type Block struct {
	Name     string   // First token on the line
	Args     []string // Remaining tokens
	Text     string   // Raw text after Name
	Raw      string   // Raw text of the whole line
	Line     int      // 1-based source line
	HasBody  bool
	Children []*Block
}

// ParseBlocks tokenizes OpenFormats text into a block tree. The returned
// root has no name and holds the top-level lines as children.
func ParseBlocks(data []byte) (*Block, error) {
	data = encoding.ToUTF8(data)
	scanner, err := blockLexer.Scanner(data)
	if err != nil {
		return nil, errors.Wrap(err, "creating block scanner")
	}

	root := &Block{HasBody: true}
	stack := []*Block{root}
	var line []*lexmachine.Token

	flush := func() {
		if len(line) == 0 {
			return
		}
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, newBlock(data, line))
		line = line[:0]
	}

	for tok, err, eos := scanner.Next(); !eos; tok, err, eos = scanner.Next() {
		if err != nil {
			return nil, errors.Wrap(err, "scanning block text")
		}
		t := tok.(*lexmachine.Token)

		switch t.Type {
		case tokenWord:
			line = append(line, t)
		case tokenNewline:
			flush()
		case tokenOpen:
			flush()
			parent := stack[len(stack)-1]
			var header *Block
			if n := len(parent.Children); n > 0 && !parent.Children[n-1].HasBody {
				header = parent.Children[n-1]
			} else {
				header = &Block{Line: t.StartLine}
				parent.Children = append(parent.Children, header)
			}
			header.HasBody = true
			stack = append(stack, header)
		case tokenClose:
			flush()
			if len(stack) == 1 {
				return nil, errors.Wrapf(ErrUnbalancedBraces, "unexpected '}' on line %d", t.StartLine)
			}
			stack = stack[:len(stack)-1]
		}
	}
	flush()

	if len(stack) != 1 {
		open := stack[len(stack)-1]
		return nil, errors.Wrapf(ErrUnbalancedBraces, "block %q opened on line %d is not closed", open.Name, open.Line)
	}

	return root, nil
}

func newBlock(src []byte, line []*lexmachine.Token) *Block {
	first, last := line[0], line[len(line)-1]
	end := last.TC + len(last.Lexeme)

	b := &Block{
		Name: string(first.Lexeme),
		Raw:  string(src[first.TC:end]),
		Line: first.StartLine,
	}
	if len(line) > 1 {
		b.Text = string(src[line[1].TC:end])
		b.Args = make([]string, len(line)-1)
		for i, t := range line[1:] {
			b.Args[i] = string(t.Lexeme)
		}
	}
	return b
}

// Child returns the first direct child named name.
func (b *Block) Child(name string) *Block {
	for _, c := range b.Children {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}

// Find returns the first block named name in depth-first order, searching
// b's descendants. With body set only blocks that carry a body match.
func (b *Block) Find(name string, body bool) *Block {
	for _, c := range b.Children {
		if strings.EqualFold(c.Name, name) && (!body || c.HasBody) {
			return c
		}
		if found := c.Find(name, body); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant named name that carries a body, in
// depth-first order. Matches are not searched further.
func (b *Block) FindAll(name string) []*Block {
	var out []*Block
	for _, c := range b.Children {
		if strings.EqualFold(c.Name, name) && c.HasBody {
			out = append(out, c)
			continue
		}
		out = append(out, c.FindAll(name)...)
	}
	return out
}

// Lines returns the raw text of every child line of the body.
func (b *Block) Lines() []string {
	out := make([]string, 0, len(b.Children))
	for _, c := range b.Children {
		if c.Raw != "" {
			out = append(out, c.Raw)
		}
	}
	return out
}
