package format

import (
	"strings"

	"spicy/internal/ast"
	"spicy/internal/source"
)

func (p *printer) printItem(id ast.ItemID) {
	item := p.builder.Items.Get(id)
	switch item.Kind {
	case ast.ItemInterface:
		data, _ := p.builder.Items.Interface(id)
		p.printInterface(data)
	case ast.ItemClass:
		data, _ := p.builder.Items.Class(id)
		p.printClass(data)
	case ast.ItemFunc:
		data, _ := p.builder.Items.Func(id)
		p.indent()
		p.sb.WriteString(p.sigText(data.Sig))
		p.sb.WriteByte(' ')
		p.printBlock(data.Body)
		p.sb.WriteByte('\n')
	case ast.ItemStmt:
		stmtID, _ := p.builder.Items.StmtItem(id)
		p.printStmt(stmtID)
	}
}

func (p *printer) printInterface(data *ast.InterfaceData) {
	p.indent()
	p.sb.WriteString("interface ")
	p.sb.WriteString(p.builder.Name(data.Name))
	if len(data.Extends) > 0 {
		p.sb.WriteString(" extends ")
		p.sb.WriteString(p.refList(data.Extends))
	}
	p.sb.WriteString(" {\n")
	p.depth++
	for _, sigID := range data.Methods {
		p.line(p.sigText(sigID) + ";")
	}
	p.depth--
	p.line("}")
}

func (p *printer) printClass(data *ast.ClassData) {
	p.indent()
	if data.Mod != ast.ClassModNone {
		p.sb.WriteString(data.Mod.String())
		p.sb.WriteByte(' ')
	}
	p.sb.WriteString("class ")
	p.sb.WriteString(p.builder.Name(data.Name))
	if data.Extends != ast.NoTypeRef {
		p.sb.WriteString(" extends ")
		p.sb.WriteString(p.builder.Name(data.Extends.Name))
	}
	if len(data.Implements) > 0 {
		p.sb.WriteString(" implements ")
		p.sb.WriteString(p.refList(data.Implements))
	}
	p.sb.WriteString(" {\n")
	p.depth++
	for _, memberID := range data.Members {
		p.printMember(memberID)
	}
	p.depth--
	p.line("}")
}

func (p *printer) printMember(id ast.MemberID) {
	member := p.builder.Items.Member(id)
	p.indent()
	for _, mod := range member.Mods.Strings() {
		p.sb.WriteString(mod)
		p.sb.WriteByte(' ')
	}

	if member.Kind == ast.MemberField {
		p.sb.WriteString(p.builder.Name(member.Name))
		if member.Type != source.NoStringID {
			p.sb.WriteString(": ")
			p.sb.WriteString(p.builder.Name(member.Type))
		}
		p.sb.WriteString(" = ")
		p.sb.WriteString(p.exprText(member.Value))
		p.sb.WriteString(";\n")
		return
	}

	p.sb.WriteString(p.sigText(member.Sig))
	if member.Body.IsValid() {
		p.sb.WriteByte(' ')
		p.printBlock(member.Body)
		p.sb.WriteByte('\n')
	} else {
		p.sb.WriteString(";\n")
	}
}

func (p *printer) sigText(id ast.SigID) string {
	sig := p.builder.Items.Sig(id)
	var sb strings.Builder
	sb.WriteString("def ")
	sb.WriteString(p.builder.Name(sig.Name))
	sb.WriteByte('(')
	for i, param := range sig.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.builder.Name(param.Name))
		if param.Type != source.NoStringID {
			sb.WriteString(": ")
			sb.WriteString(p.builder.Name(param.Type))
		}
	}
	sb.WriteByte(')')
	if sig.Return != source.NoStringID {
		sb.WriteString(" -> ")
		sb.WriteString(p.builder.Name(sig.Return))
	}
	return sb.String()
}

func (p *printer) refList(refs []ast.TypeRef) string {
	parts := make([]string, 0, len(refs))
	for _, ref := range refs {
		parts = append(parts, p.builder.Name(ref.Name))
	}
	return strings.Join(parts, ", ")
}
