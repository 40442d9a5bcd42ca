package calldata

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"go.dedis.ch/epfer/contract"
)

// This module parses the textual invocation format used by the CLI and
// the wallet:
//
//   add(5)
//   getSum()
//   register("alice", 42) # trailing comments allowed
//
// Numbers stay in their decimal text form so arbitrary-precision
// arguments survive parsing; the endpoint decides how to interpret
// them. The same format names the implementation on deployment, e.g.
// `adder(100)`.

// Lexer for calldata. Rules are specified with regexp.
var CallLexer = lexer.MustSimple([]lexer.Rule{
	{`Ident`, `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
	{`String`, `"(.*?)"`, nil}, // quoted string tokens
	{`Number`, `\d+`, nil},
	{"comment", `[#;][^\n]*`, nil},
	{"Punct", `[(),]`, nil},
	{"whitespace", `\s+`, nil},
})

// Call is one parsed invocation: an endpoint name and its positional
// parameters.
type Call struct {
	Endpoint string   `@Ident`
	Params   []*Value `"(" ( @@ ( "," @@ )* )? ")"`
}

type Value struct {
	String *string `@String`
	Number *string `| @Number`
}

var CallParser = participle.MustBuild(&Call{},
	participle.Lexer(CallLexer),
	participle.Unquote("String"),
)

func Parse(plain string) (*Call, error) {
	ast := &Call{}
	if err := CallParser.ParseString("", plain, ast); err != nil {
		return nil, err
	}
	return ast, nil
}

// Args converts the parsed parameters into contract arguments.
func (c *Call) Args() contract.Args {
	args := make(contract.Args, 0, len(c.Params))
	for _, param := range c.Params {
		switch {
		case param.String != nil:
			args = append(args, contract.StringValue(*param.String))
		case param.Number != nil:
			args = append(args, contract.NumberValue(*param.Number))
		}
	}
	return args
}
