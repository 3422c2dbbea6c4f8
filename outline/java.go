package outline

import sitter "github.com/smacker/go-tree-sitter"

var javaTypeKinds = map[string]string{
	"class_declaration":     KindClass,
	"interface_declaration": KindInterface,
	"enum_declaration":      KindEnum,
	"record_declaration":    KindClass,
}

func javaSymbols(root *sitter.Node, src []byte) []*Symbol {
	var result []*Symbol
	for _, node := range namedChildren(root) {
		kind, ok := javaTypeKinds[node.Type()]
		if !ok {
			continue
		}
		name := node.ChildByFieldName("name")
		if name == nil {
			continue
		}
		owner := newSymbol(kind, name, node, src)
		result = append(result, owner)
		for _, member := range namedChildren(node.ChildByFieldName("body")) {
			switch member.Type() {
			case "method_declaration", "constructor_declaration":
				if memberName := member.ChildByFieldName("name"); memberName != nil {
					symbol := newSymbol(KindMethod, memberName, member, src)
					symbol.Name = owner.Name + "." + symbol.Name
					result = append(result, symbol)
				}
			}
		}
	}
	return result
}
