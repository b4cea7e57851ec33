package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"spicy/internal/ast"
	"spicy/internal/source"
)

// Node — обобщённое дерево для дампов AST: текст и json/msgpack работают
// с одной структурой.
type Node struct {
	Kind     string `json:"kind" msgpack:"kind"`
	Name     string `json:"name,omitempty" msgpack:"name,omitempty"`
	Detail   string `json:"detail,omitempty" msgpack:"detail,omitempty"`
	Children []Node `json:"children,omitempty" msgpack:"children,omitempty"`
}

// DumpFile строит дерево верхнего уровня файла.
func DumpFile(builder *ast.Builder, fileID ast.FileID) Node {
	file := builder.Files.Get(fileID)
	root := Node{Kind: "file"}
	for _, itemID := range file.Items {
		root.Children = append(root.Children, dumpItem(builder, itemID))
	}
	return root
}

func dumpItem(builder *ast.Builder, id ast.ItemID) Node {
	item := builder.Items.Get(id)
	switch item.Kind {
	case ast.ItemInterface:
		data, _ := builder.Items.Interface(id)
		node := Node{Kind: "interface", Name: builder.Name(data.Name)}
		for _, base := range data.Extends {
			node.Detail = appendName(node.Detail, builder.Name(base.Name))
		}
		for _, sigID := range data.Methods {
			node.Children = append(node.Children, dumpSig(builder, sigID))
		}
		return node
	case ast.ItemClass:
		data, _ := builder.Items.Class(id)
		node := Node{Kind: "class", Name: builder.Name(data.Name)}
		if data.Mod != ast.ClassModNone {
			node.Detail = data.Mod.String()
		}
		if data.Extends != ast.NoTypeRef {
			node.Detail = appendName(node.Detail, "extends "+builder.Name(data.Extends.Name))
		}
		for _, iface := range data.Implements {
			node.Detail = appendName(node.Detail, "implements "+builder.Name(iface.Name))
		}
		for _, memberID := range data.Members {
			node.Children = append(node.Children, dumpMember(builder, memberID))
		}
		return node
	case ast.ItemFunc:
		data, _ := builder.Items.Func(id)
		return dumpSig(builder, data.Sig)
	case ast.ItemStmt:
		stmtID, _ := builder.Items.StmtItem(id)
		return Node{Kind: "stmt", Detail: stmtKindName(builder, stmtID)}
	}
	return Node{Kind: "invalid"}
}

func dumpMember(builder *ast.Builder, id ast.MemberID) Node {
	member := builder.Items.Member(id)
	kind := "method"
	if member.Kind == ast.MemberField {
		kind = "field"
	}
	node := Node{Kind: kind, Name: builder.Name(member.Name)}
	if mods := member.Mods.Strings(); len(mods) > 0 {
		node.Detail = strings.Join(mods, " ")
	}
	if member.Kind == ast.MemberMethod {
		node.Children = append(node.Children, dumpSig(builder, member.Sig))
	}
	return node
}

func dumpSig(builder *ast.Builder, id ast.SigID) Node {
	sig := builder.Items.Sig(id)
	params := make([]string, 0, len(sig.Params))
	for _, param := range sig.Params {
		p := builder.Name(param.Name)
		if param.Type != source.NoStringID {
			p += ": " + builder.Name(param.Type)
		}
		params = append(params, p)
	}
	detail := "(" + strings.Join(params, ", ") + ")"
	if sig.Return != source.NoStringID {
		detail += " -> " + builder.Name(sig.Return)
	}
	return Node{Kind: "def", Name: builder.Name(sig.Name), Detail: detail}
}

func stmtKindName(builder *ast.Builder, id ast.StmtID) string {
	if !id.IsValid() {
		return "invalid"
	}
	switch builder.Stmts.Get(id).Kind {
	case ast.StmtExpr:
		return "expr"
	case ast.StmtAssign:
		return "assign"
	case ast.StmtIf:
		return "if"
	case ast.StmtWhile:
		return "while"
	case ast.StmtFor:
		return "for"
	case ast.StmtReturn:
		return "return"
	case ast.StmtRaise:
		return "raise"
	case ast.StmtImport:
		return "import"
	case ast.StmtPass:
		return "pass"
	default:
		return "stmt"
	}
}

func appendName(detail, name string) string {
	if detail == "" {
		return name
	}
	return detail + " " + name
}

// TreeText печатает дерево с отступами.
func TreeText(w io.Writer, node Node, depth int) {
	indent := strings.Repeat("  ", depth)
	line := node.Kind
	if node.Name != "" {
		line += " " + node.Name
	}
	if node.Detail != "" {
		line += " [" + node.Detail + "]"
	}
	fmt.Fprintf(w, "%s%s\n", indent, line)
	for _, child := range node.Children {
		TreeText(w, child, depth+1)
	}
}
