package javaparser

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fathom-search/fathom/internal/extractor"
	"github.com/fathom-search/fathom/internal/models"
	"github.com/fathom-search/fathom/internal/util"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

type JavaParser struct{}

func New() *JavaParser { return &JavaParser{} }

func (p *JavaParser) ListSourceFiles(ctx context.Context, root string) ([]string, error) {
	var files []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			name := d.Name()
			if name == ".git" || name == "target" || name == "build" || name == "out" {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".java") {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return files, nil
}

func (p *JavaParser) ExtractFile(path string) ([]models.Snippet, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	parser := tree_sitter.NewParser()
	defer parser.Close()

	lang := tree_sitter.NewLanguage(tree_sitter_java.Language())
	if err := parser.SetLanguage(lang); err != nil {
		return nil, err
	}

	tree := parser.Parse(code, nil)
	defer tree.Close()
	root := tree.RootNode()

	var snippets []models.Snippet

	var walk func(n *tree_sitter.Node)
	walk = func(n *tree_sitter.Node) {
		if n.Kind() == "method_declaration" {
			if sn, ok := snippetFromMethod(n, code, path); ok {
				snippets = append(snippets, sn)
			}
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)

	return snippets, nil
}

// snippetFromMethod builds a Snippet from a method_declaration node. A
// declaration without both a name and a body (abstract and interface methods)
// is not a search target and yields ok=false.
func snippetFromMethod(n *tree_sitter.Node, code []byte, path string) (models.Snippet, bool) {
	nameNode := n.ChildByFieldName("name")
	bodyNode := n.ChildByFieldName("body")
	if nameNode == nil || bodyNode == nil {
		return models.Snippet{}, false
	}

	sn := models.Snippet{
		File:       path,
		ClassName:  enclosingClass(n, code),
		MethodName: nodeText(nameNode, code),
		StartLine:  int32(bodyNode.StartPosition().Row) + 1,
		EndLine:    int32(bodyNode.EndPosition().Row) + 1,
		Body:       nodeText(bodyNode, code),
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		sn.Parameters = nodeText(params, code)
	}
	if ret := n.ChildByFieldName("type"); ret != nil {
		sn.ReturnType = nodeText(ret, code)
	}
	sn.Fingerprint = util.Fingerprint(sn.File, sn.ClassName, sn.MethodName, sn.StartLine)
	return sn, true
}

// enclosingClass walks ancestor nodes until a class-like declaration is
// found. Absence is an empty container, not an error.
func enclosingClass(n *tree_sitter.Node, code []byte) string {
	for parent := n.Parent(); parent != nil; parent = parent.Parent() {
		switch parent.Kind() {
		case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
			if name := parent.ChildByFieldName("name"); name != nil {
				return nodeText(name, code)
			}
			return ""
		}
	}
	return ""
}

func nodeText(n *tree_sitter.Node, code []byte) string {
	return string(code[n.StartByte():n.EndByte()])
}

var _ extractor.Extractor = (*JavaParser)(nil)
