package outline

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
)

// Symbol kinds
const (
	KindFunction  = "function"
	KindMethod    = "method"
	KindType      = "type"
	KindClass     = "class"
	KindInterface = "interface"
	KindEnum      = "enum"
	KindConstant  = "constant"
	KindVariable  = "variable"
)

// Symbol represents a top level declaration
type Symbol struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
	Line int    `json:"line"` // 1-based line of the declaration
}

// visitor collects symbols from a parsed root node
type visitor func(root *sitter.Node, src []byte) []*Symbol

type grammar struct {
	language *sitter.Language
	visit    visitor
}

// grammarFor returns tree-sitter grammar for a language tag
func grammarFor(language string) (*grammar, bool) {
	switch language {
	case "go":
		return &grammar{language: golang.GetLanguage(), visit: goSymbols}, true
	case "java":
		return &grammar{language: java.GetLanguage(), visit: javaSymbols}, true
	case "javascript":
		return &grammar{language: javascript.GetLanguage(), visit: javascriptSymbols}, true
	}
	return nil, false
}

// Supports returns true if language tag has a grammar
func Supports(language string) bool {
	_, ok := grammarFor(language)
	return ok
}

// Extract parses source and returns its top level declarations; unsupported languages return no symbols
func Extract(ctx context.Context, language string, src []byte) ([]*Symbol, error) {
	aGrammar, ok := grammarFor(language)
	if !ok || len(src) == 0 {
		return nil, nil
	}
	parser := sitter.NewParser()
	parser.SetLanguage(aGrammar.language)
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s source: %w", language, err)
	}
	return aGrammar.visit(tree.RootNode(), src), nil
}

// Format renders symbols as a bullet list
func Format(symbols []*Symbol) string {
	builder := strings.Builder{}
	for _, symbol := range symbols {
		builder.WriteString(fmt.Sprintf("- %s %s (line %d)\n", symbol.Kind, symbol.Name, symbol.Line))
	}
	return builder.String()
}

func newSymbol(kind string, nameNode *sitter.Node, node *sitter.Node, src []byte) *Symbol {
	return &Symbol{Kind: kind, Name: nameNode.Content(src), Line: int(node.StartPoint().Row) + 1}
}

func namedChildren(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	var result []*sitter.Node
	for i := uint32(0); i < node.NamedChildCount(); i++ {
		result = append(result, node.NamedChild(int(i)))
	}
	return result
}
