package outline

import sitter "github.com/smacker/go-tree-sitter"

func javascriptSymbols(root *sitter.Node, src []byte) []*Symbol {
	var result []*Symbol
	for _, node := range namedChildren(root) {
		result = append(result, javascriptDeclaration(node, src)...)
	}
	return result
}

func javascriptDeclaration(node *sitter.Node, src []byte) []*Symbol {
	switch node.Type() {
	case "export_statement":
		if declaration := node.ChildByFieldName("declaration"); declaration != nil {
			return javascriptDeclaration(declaration, src)
		}
	case "function_declaration", "generator_function_declaration":
		if name := node.ChildByFieldName("name"); name != nil {
			return []*Symbol{newSymbol(KindFunction, name, node, src)}
		}
	case "class_declaration":
		name := node.ChildByFieldName("name")
		if name == nil {
			return nil
		}
		class := newSymbol(KindClass, name, node, src)
		result := []*Symbol{class}
		for _, member := range namedChildren(node.ChildByFieldName("body")) {
			if member.Type() != "method_definition" {
				continue
			}
			if memberName := member.ChildByFieldName("name"); memberName != nil {
				symbol := newSymbol(KindMethod, memberName, member, src)
				symbol.Name = class.Name + "." + symbol.Name
				result = append(result, symbol)
			}
		}
		return result
	case "lexical_declaration", "variable_declaration":
		var result []*Symbol
		for _, declarator := range namedChildren(node) {
			if declarator.Type() != "variable_declarator" {
				continue
			}
			name := declarator.ChildByFieldName("name")
			if name == nil || name.Type() != "identifier" {
				continue
			}
			kind := KindVariable
			if value := declarator.ChildByFieldName("value"); value != nil {
				switch value.Type() {
				case "arrow_function", "function", "function_expression":
					kind = KindFunction
				}
			}
			result = append(result, newSymbol(kind, name, declarator, src))
		}
		return result
	}
	return nil
}
