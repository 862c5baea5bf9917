package astprint

import "lya/ast"

func (p printer) VisitDeclarationStatement(n *ast.DeclarationStatement) any {
	decls := make([]any, len(n.Declarators))
	for i, d := range n.Declarators {
		entry := map[string]any{"name": d.Name.Lexeme, "mode": modeString(d.Mode), "loc": d.Loc, "offset": d.Offset}
		if d.Init != nil {
			entry["init"] = d.Init.Accept(p)
		}
		decls[i] = entry
	}
	return map[string]any{"type": "DeclarationStatement", "line": n.Line(), "declarators": decls}
}

func (p printer) VisitSynonymStatement(n *ast.SynonymStatement) any {
	decls := make([]any, len(n.Declarators))
	for i, d := range n.Declarators {
		decls[i] = map[string]any{"name": d.Name.Lexeme, "init": d.Init.Accept(p)}
	}
	return map[string]any{"type": "SynonymStatement", "line": n.Line(), "declarators": decls}
}

func (p printer) VisitNewmodeStatement(n *ast.NewmodeStatement) any {
	decls := make([]any, len(n.Declarators))
	for i, d := range n.Declarators {
		decls[i] = map[string]any{"name": d.Name.Lexeme, "mode": modeString(d.Mode)}
	}
	return map[string]any{"type": "NewmodeStatement", "line": n.Line(), "declarators": decls}
}

func (p printer) VisitProcedureStatement(n *ast.ProcedureStatement) any {
	params := make([]any, len(n.Parameters))
	for i, param := range n.Parameters {
		params[i] = map[string]any{"name": param.Name.Lexeme, "mode": modeString(param.Mode), "loc": param.Loc}
	}
	result := ""
	if n.ResultMode != nil {
		result = modeString(n.ResultMode)
	}
	return map[string]any{
		"type": "ProcedureStatement", "line": n.Line(),
		"name": n.Name.Lexeme, "parameters": params, "result": result,
		"frameDepth": n.FrameDepth, "parameterSpace": n.ParameterSpace,
		"localSize": n.LocalSize, "returnOffset": n.ReturnOffset,
		"body": stmtList(p, n.Body),
	}
}

func (p printer) VisitAssignmentAction(n *ast.AssignmentAction) any {
	return map[string]any{
		"type": "AssignmentAction", "line": n.Line(),
		"target": n.Target.Accept(p), "operator": n.Operator.Lexeme, "value": n.Value.Accept(p),
	}
}

func (p printer) VisitIfAction(n *ast.IfAction) any {
	elsifs := make([]any, len(n.ElsifConds))
	for i := range n.ElsifConds {
		elsifs[i] = map[string]any{"condition": n.ElsifConds[i].Accept(p), "then": stmtList(p, n.ElsifThens[i])}
	}
	return map[string]any{
		"type": "IfAction", "line": n.Line(),
		"condition": n.Condition.Accept(p), "then": stmtList(p, n.Then),
		"elsif": elsifs, "else": stmtList(p, n.Else),
	}
}

func (p printer) VisitDoAction(n *ast.DoAction) any {
	out := map[string]any{"type": "DoAction", "line": n.Line(), "body": stmtList(p, n.Body)}
	if n.Control != nil {
		if n.Control.For != nil {
			out["for"] = map[string]any{
				"counter": n.Control.For.Counter.Lexeme,
				"start":   n.Control.For.Start.Accept(p),
				"end":     n.Control.For.End.Accept(p),
			}
		}
		if n.Control.Range != nil {
			out["range"] = map[string]any{
				"counter": n.Control.Range.Counter.Lexeme,
				"lower":   n.Control.Range.Lower,
				"upper":   n.Control.Range.Upper,
			}
		}
		if n.Control.While != nil {
			out["while"] = n.Control.While.Accept(p)
		}
	}
	return out
}

func (p printer) VisitExitAction(n *ast.ExitAction) any {
	return map[string]any{"type": "ExitAction", "line": n.Line(), "label": n.Label.Lexeme}
}

func (p printer) VisitReturnAction(n *ast.ReturnAction) any {
	out := map[string]any{"type": "ReturnAction", "line": n.Line()}
	if n.Value != nil {
		out["value"] = n.Value.Accept(p)
	}
	return out
}

func (p printer) VisitResultAction(n *ast.ResultAction) any {
	return map[string]any{"type": "ResultAction", "line": n.Line(), "value": n.Value.Accept(p)}
}

func (p printer) VisitProcedureCallStatement(n *ast.ProcedureCallStatement) any {
	return map[string]any{"type": "ProcedureCallStatement", "line": n.Line(), "name": n.Name.Lexeme, "arguments": exprList(p, n.Arguments)}
}

func (p printer) VisitBuiltinCallStatement(n *ast.BuiltinCallStatement) any {
	return map[string]any{"type": "BuiltinCallStatement", "line": n.Line(), "name": n.Name.Lexeme, "arguments": exprList(p, n.Arguments)}
}

func (p printer) VisitLabelledStatement(n *ast.LabelledStatement) any {
	return map[string]any{"type": "LabelledStatement", "line": n.Line(), "label": n.Label.Lexeme, "statement": n.Inner.Accept(p)}
}

func stmtList(p printer, stmts []ast.Statement) []any {
	out := make([]any, len(stmts))
	for i, s := range stmts {
		out[i] = s.Accept(p)
	}
	return out
}
