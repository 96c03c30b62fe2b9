package parser

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/php"
)

// typeNodes are the grammar nodes a declared type can appear as.
var typeNodes = map[string]bool{
	"named_type":        true,
	"optional_type":     true,
	"primitive_type":    true,
	"union_type":        true,
	"intersection_type": true,
	"type_list":         true,
}

// PHPTraverser extracts classes and interfaces from PHP sources using
// tree-sitter.
type PHPTraverser struct{}

// NewPHPTraverser creates a new PHP traverser.
func NewPHPTraverser() *PHPTraverser {
	return &PHPTraverser{}
}

// Language returns the language this traverser handles.
func (p *PHPTraverser) Language() string {
	return "php"
}

// Extensions returns the PHP file extensions.
func (p *PHPTraverser) Extensions() []string {
	return []string{".php"}
}

// Traverse parses a PHP file and returns its classes and interfaces in
// declaration order.
func (p *PHPTraverser) Traverse(ctx context.Context, file SourceFile) ([]RawDefinition, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(php.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, file.Content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", file.RelPath, err)
	}
	defer tree.Close()

	var definitions []RawDefinition
	p.walk(tree.RootNode(), file.Content, &definitions)
	return definitions, nil
}

func (p *PHPTraverser) walk(node *sitter.Node, src []byte, definitions *[]RawDefinition) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "class_declaration":
			*definitions = append(*definitions, p.class(child, src))
		case "interface_declaration":
			*definitions = append(*definitions, p.iface(child, src))
		default:
			p.walk(child, src, definitions)
		}
	}
}

func (p *PHPTraverser) class(node *sitter.Node, src []byte) RawDefinition {
	def := RawDefinition{
		Kind: KindClass,
		Name: declarationName(node, src),
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "base_clause":
			if names := clauseNames(child, src); len(names) > 0 {
				def.Extends = names[0]
			}
		case "class_interface_clause":
			def.Implements = clauseNames(child, src)
		case "declaration_list":
			p.members(child, src, &def)
		}
	}
	return def
}

func (p *PHPTraverser) iface(node *sitter.Node, src []byte) RawDefinition {
	def := RawDefinition{
		Kind: KindInterface,
		Name: declarationName(node, src),
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "base_clause":
			// Interfaces may extend several parents; only single inheritance is modelled.
			if names := clauseNames(child, src); len(names) > 0 {
				def.Extends = names[len(names)-1]
			}
		case "declaration_list":
			p.members(child, src, &def)
		}
	}
	return def
}

func (p *PHPTraverser) members(body *sitter.Node, src []byte, def *RawDefinition) {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		switch member.Type() {
		case "const_declaration":
			modifier := visibility(member, src)
			typ := declaredType(member, src)
			for j := 0; j < int(member.NamedChildCount()); j++ {
				element := member.NamedChild(j)
				if element.Type() != "const_element" {
					continue
				}
				if name := firstChildOfType(element, "name"); name != nil {
					def.Constants = append(def.Constants, RawConstant{
						Name:     name.Content(src),
						Type:     typ,
						Modifier: modifier,
					})
				}
			}
		case "property_declaration":
			if def.IsInterface() {
				continue
			}
			modifier := visibility(member, src)
			typ := declaredType(member, src)
			for j := 0; j < int(member.NamedChildCount()); j++ {
				element := member.NamedChild(j)
				if element.Type() != "property_element" {
					continue
				}
				if name := firstChildOfType(element, "variable_name"); name != nil {
					def.Attributes = append(def.Attributes, RawAttribute{
						Name:     name.Content(src),
						Modifier: modifier,
						Type:     typ,
					})
				}
			}
		case "method_declaration":
			method := RawMethod{
				Name:     declarationName(member, src),
				Modifier: visibility(member, src),
			}
			if params := member.ChildByFieldName("parameters"); params != nil {
				method.Parameters = p.parameters(params, src, def)
			}
			def.Methods = append(def.Methods, method)
		}
	}
}

// parameters returns the method parameters. Constructor-promoted parameters
// are also recorded as attributes of the class.
func (p *PHPTraverser) parameters(list *sitter.Node, src []byte, def *RawDefinition) []RawParameter {
	var params []RawParameter
	for i := 0; i < int(list.NamedChildCount()); i++ {
		param := list.NamedChild(i)
		switch param.Type() {
		case "simple_parameter", "variadic_parameter", "property_promotion_parameter":
		default:
			continue
		}

		name := param.ChildByFieldName("name")
		if name == nil || name.Type() != "variable_name" {
			name = firstChildOfType(param, "variable_name")
		}
		if name == nil {
			continue
		}

		raw := RawParameter{Name: name.Content(src), Type: declaredType(param, src)}
		params = append(params, raw)

		if param.Type() == "property_promotion_parameter" && !def.IsInterface() {
			def.Attributes = append(def.Attributes, RawAttribute{
				Name:     raw.Name,
				Modifier: visibility(param, src),
				Type:     raw.Type,
			})
		}
	}
	return params
}

func declarationName(node *sitter.Node, src []byte) string {
	if name := node.ChildByFieldName("name"); name != nil {
		return name.Content(src)
	}
	if name := firstChildOfType(node, "name"); name != nil {
		return name.Content(src)
	}
	return ""
}

// clauseNames returns the short names listed in an extends or implements clause.
func clauseNames(clause *sitter.Node, src []byte) []string {
	var names []string
	for i := 0; i < int(clause.NamedChildCount()); i++ {
		child := clause.NamedChild(i)
		switch child.Type() {
		case "name", "qualified_name":
			names = append(names, shortName(child.Content(src)))
		}
	}
	return names
}

func visibility(node *sitter.Node, src []byte) string {
	if modifier := firstChildOfType(node, "visibility_modifier"); modifier != nil {
		return strings.ToLower(modifier.Content(src))
	}
	return "public"
}

func declaredType(node *sitter.Node, src []byte) string {
	typ := node.ChildByFieldName("type")
	if typ == nil {
		for i := 0; i < int(node.NamedChildCount()); i++ {
			if child := node.NamedChild(i); typeNodes[child.Type()] {
				typ = child
				break
			}
		}
	}
	if typ == nil {
		return ""
	}
	return normalizeType(typ.Content(src))
}

func firstChildOfType(node *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(i); child.Type() == nodeType {
			return child
		}
	}
	return nil
}

// normalizeType drops nullability and namespaces from single types.
// Union and intersection types are kept as written.
func normalizeType(typ string) string {
	typ = strings.TrimSpace(typ)
	if strings.ContainsAny(typ, "|&") {
		return typ
	}
	return shortName(strings.TrimPrefix(typ, "?"))
}

func shortName(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndex(name, `\`); i >= 0 {
		return name[i+1:]
	}
	return name
}
