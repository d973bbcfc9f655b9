package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/golangcbor/gocddl"
	"github.com/golangcbor/gocddl/ast"
)

// DocumentTestCase defines a test case for whole-document parsing.
type DocumentTestCase struct {
	File  string   // file under testdata/
	Rules []string // expected rule names in order
}

var documentTests = []DocumentTestCase{
	{
		File:  "person.cddl",
		Rules: []string{"person", "address", "people"},
	},
	{
		File:  "reputation.cddl",
		Rules: []string{"reputation-object", "reputon", "float16", "text"},
	},
	{
		File: "protocol.cddl",
		Rules: []string{
			"message", "command", "command", "header", "flagset",
			"envelope", "body", "full-payload", "compact-payload",
			"payload-bytes", "attachment", "frame", "anything",
		},
	},
}

func TestDocuments(t *testing.T) {
	for _, tc := range documentTests {
		t.Run(tc.File, func(t *testing.T) {
			doc, err := gocddl.ParseFile(filepath.Join("testdata", tc.File))
			require.NoError(t, err)

			var names []string
			for _, rule := range doc.Rules {
				names = append(names, rule.RuleName().Name)
			}
			require.Equal(t, tc.Rules, names)
		})
	}
}

func TestCorpusRoundTripsThroughTree(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.cddl"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			source, err := os.ReadFile(file)
			require.NoError(t, err)

			doc, index, err := gocddl.BuildTree(source)
			require.NoError(t, err)
			require.NotEmpty(t, doc.Rules)
			require.Greater(t, index.Len(), len(doc.Rules))

			// Every rule is a child of the document root.
			for _, rule := range doc.Rules {
				parent, ok := index.ParentNode(rule)
				require.True(t, ok, "rule %s has no parent", rule.RuleName().Name)
				require.IsType(t, &ast.CDDL{}, parent)
			}
		})
	}
}

func TestChoiceAlternateRules(t *testing.T) {
	doc, err := gocddl.ParseFile(filepath.Join("testdata", "protocol.cddl"))
	require.NoError(t, err)

	var alternates []string
	for _, rule := range doc.Rules {
		if tr, ok := rule.(*ast.TypeRule); ok && tr.IsTypeChoiceAlternate {
			alternates = append(alternates, tr.Name.Name)
		}
	}
	require.Equal(t, []string{"command"}, alternates)
}

func TestGenericRule(t *testing.T) {
	doc, err := gocddl.ParseFile(filepath.Join("testdata", "protocol.cddl"))
	require.NoError(t, err)

	message := doc.Rules[0].(*ast.TypeRule)
	require.Equal(t, "message", message.Name.Name)
	require.NotNil(t, message.GenericParams)
	require.Len(t, message.GenericParams.Params, 2)

	use := doc.Rules[1].(*ast.TypeRule)
	typename := use.Value.Choices[0].Type1.Type2.(*ast.Type2Typename)
	require.Equal(t, `message<"reboot", "now">`, typename.String())
}
