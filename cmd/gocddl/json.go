package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/golangcbor/gocddl/ast"
	"github.com/golangcbor/gocddl/token"
)

// DumpOutput is the top-level JSON output for the dump command.
type DumpOutput struct {
	Rules []RuleJSON `json:"rules"`
}

// RuleJSON holds the JSON-serializable form of one top-level rule.
type RuleJSON struct {
	Name      string      `json:"name"`
	Kind      string      `json:"kind"`
	Alternate bool        `json:"alternate,omitempty"`
	Params    []string    `json:"params,omitempty"`
	Choices   []Type1JSON `json:"choices,omitempty"`
	Entry     *EntryJSON  `json:"entry,omitempty"`
	Span      SpanJSON    `json:"span"`
}

// Type1JSON holds one type-choice alternative: a rendered type plus its
// optional range or control operator.
type Type1JSON struct {
	Type     string `json:"type"`
	Operator string `json:"operator,omitempty"`
	Operand  string `json:"operand,omitempty"`
}

// EntryJSON holds the JSON-serializable form of a group entry.
type EntryJSON struct {
	Occur string      `json:"occur,omitempty"`
	Key   string      `json:"key,omitempty"`
	Type  string      `json:"type,omitempty"`
	Name  string      `json:"name,omitempty"`
	Group []EntryJSON `json:"group,omitempty"`
}

// SpanJSON is a byte range in the source document.
type SpanJSON struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func dumpOutput(doc *ast.CDDL) DumpOutput {
	out := DumpOutput{Rules: make([]RuleJSON, 0, len(doc.Rules))}
	for _, rule := range doc.Rules {
		out.Rules = append(out.Rules, ruleJSON(rule))
	}
	return out
}

func ruleJSON(rule ast.Rule) RuleJSON {
	switch r := rule.(type) {
	case *ast.TypeRule:
		return RuleJSON{
			Name:      r.Name.Name,
			Kind:      "type",
			Alternate: r.IsTypeChoiceAlternate,
			Params:    paramNames(r.GenericParams),
			Choices:   choicesJSON(&r.Value),
			Span:      spanJSON(r.Span),
		}
	case *ast.GroupRule:
		entry := entryJSON(r.Entry)
		return RuleJSON{
			Name:      r.Name.Name,
			Kind:      "group",
			Alternate: r.IsGroupChoiceAlternate,
			Params:    paramNames(r.GenericParams),
			Entry:     &entry,
			Span:      spanJSON(r.Span),
		}
	}
	return RuleJSON{}
}

func paramNames(gp *ast.GenericParams) []string {
	if gp == nil {
		return nil
	}
	names := make([]string, len(gp.Params))
	for i := range gp.Params {
		names[i] = gp.Params[i].Name.Name
	}
	return names
}

func choicesJSON(t *ast.Type) []Type1JSON {
	choices := make([]Type1JSON, 0, len(t.Choices))
	for i := range t.Choices {
		choices = append(choices, type1JSON(&t.Choices[i].Type1))
	}
	return choices
}

func type1JSON(t1 *ast.Type1) Type1JSON {
	j := Type1JSON{Type: t1.Type2.String()}
	if t1.Operator != nil {
		switch op := t1.Operator.Op.(type) {
		case ast.RangeOp:
			if op.Inclusive {
				j.Operator = ".."
			} else {
				j.Operator = "..."
			}
		case ast.CtlOp:
			j.Operator = op.Name
		}
		j.Operand = t1.Operator.Type2.String()
	}
	return j
}

func entryJSON(e ast.GroupEntry) EntryJSON {
	switch entry := e.(type) {
	case *ast.ValueMemberKeyEntry:
		return EntryJSON{
			Occur: occurString(entry.Occur),
			Key:   keyString(entry.MemberKey),
			Type:  entry.EntryType.String(),
		}
	case *ast.TypeGroupnameEntry:
		return EntryJSON{
			Occur: occurString(entry.Occur),
			Name:  entry.Name.Name,
		}
	case *ast.InlineGroupEntry:
		var entries []EntryJSON
		for _, gc := range entry.Group.Choices {
			for _, ge := range gc.Entries {
				entries = append(entries, entryJSON(ge.Entry))
			}
		}
		return EntryJSON{
			Occur: occurString(entry.Occur),
			Group: entries,
		}
	}
	return EntryJSON{}
}

func occurString(o *ast.Occurrence) string {
	if o == nil {
		return ""
	}
	switch o.Kind {
	case ast.OccurOptional:
		return "?"
	case ast.OccurZeroOrMore:
		return "*"
	case ast.OccurOneOrMore:
		return "+"
	case ast.OccurExact:
		var b strings.Builder
		if o.Lower != nil {
			fmt.Fprintf(&b, "%d", *o.Lower)
		}
		b.WriteByte('*')
		if o.Upper != nil {
			fmt.Fprintf(&b, "%d", *o.Upper)
		}
		return b.String()
	}
	return ""
}

func keyString(mk ast.MemberKey) string {
	switch key := mk.(type) {
	case *ast.MemberKeyBareword:
		return key.Ident.Name
	case *ast.MemberKeyValue:
		return key.Value.String()
	case *ast.MemberKeyType1:
		if key.IsCut {
			return key.Type1.Type2.String() + " ^"
		}
		return key.Type1.Type2.String()
	}
	return ""
}

func spanJSON(span token.Span) SpanJSON {
	return SpanJSON{Start: int(span.Start), End: int(span.End)}
}

func marshalJSON(v any, indent bool) ([]byte, error) {
	if indent {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
