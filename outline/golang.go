package outline

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

func goSymbols(root *sitter.Node, src []byte) []*Symbol {
	var result []*Symbol
	for _, node := range namedChildren(root) {
		switch node.Type() {
		case "function_declaration":
			if name := node.ChildByFieldName("name"); name != nil {
				result = append(result, newSymbol(KindFunction, name, node, src))
			}
		case "method_declaration":
			name := node.ChildByFieldName("name")
			if name == nil {
				continue
			}
			symbol := newSymbol(KindMethod, name, node, src)
			if receiver := receiverType(node, src); receiver != "" {
				symbol.Name = receiver + "." + symbol.Name
			}
			result = append(result, symbol)
		case "type_declaration":
			for _, spec := range namedChildren(node) {
				if name := spec.ChildByFieldName("name"); name != nil {
					result = append(result, newSymbol(KindType, name, spec, src))
				}
			}
		case "const_declaration", "var_declaration":
			kind := KindConstant
			if node.Type() == "var_declaration" {
				kind = KindVariable
			}
			for _, spec := range specs(node) {
				if name := spec.ChildByFieldName("name"); name != nil {
					result = append(result, newSymbol(kind, name, spec, src))
				}
			}
		}
	}
	return result
}

// specs returns const/var specs, grouped declarations may wrap them in a spec list
func specs(node *sitter.Node) []*sitter.Node {
	var result []*sitter.Node
	for _, child := range namedChildren(node) {
		switch child.Type() {
		case "const_spec", "var_spec":
			result = append(result, child)
		case "var_spec_list":
			result = append(result, specs(child)...)
		}
	}
	return result
}

func receiverType(node *sitter.Node, src []byte) string {
	receiver := node.ChildByFieldName("receiver")
	for _, param := range namedChildren(receiver) {
		aType := param.ChildByFieldName("type")
		if aType == nil {
			continue
		}
		name := strings.TrimPrefix(aType.Content(src), "*")
		if index := strings.Index(name, "["); index != -1 {
			name = name[:index]
		}
		return name
	}
	return ""
}
