package javaparser_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	p "github.com/fathom-search/fathom/internal/extractor/javaparser"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func Test_JavaParser_ExtractFile(t *testing.T) {
	tmp := t.TempDir()
	code := `package com.example;

public class Greeter {
    private String prefix;

    public String greet(String name) {
        return prefix + name;
    }

    int count() { return 0; }
}
`
	path := writeFile(t, tmp, "Greeter.java", code)

	parser := p.New()
	snippets, err := parser.ExtractFile(path)
	if err != nil {
		t.Fatalf("ExtractFile error: %v", err)
	}
	if len(snippets) != 2 {
		t.Fatalf("expected 2 snippets, got %d", len(snippets))
	}

	byName := map[string]int{}
	for i, sn := range snippets {
		byName[sn.MethodName] = i
		if sn.ClassName != "Greeter" {
			t.Fatalf("wrong class for %s: %q", sn.MethodName, sn.ClassName)
		}
		if sn.File != path {
			t.Fatalf("wrong file for %s: %q", sn.MethodName, sn.File)
		}
		if sn.StartLine <= 0 || sn.EndLine < sn.StartLine {
			t.Fatalf("invalid lines for %s: %d..%d", sn.MethodName, sn.StartLine, sn.EndLine)
		}
		if sn.Fingerprint == "" {
			t.Fatalf("empty fingerprint for %s", sn.MethodName)
		}
		if sn.Body == "" {
			t.Fatalf("empty body for %s", sn.MethodName)
		}
	}

	greet := snippets[byName["greet"]]
	if greet.Parameters != "(String name)" {
		t.Fatalf("unexpected parameters: %q", greet.Parameters)
	}
	if greet.ReturnType != "String" {
		t.Fatalf("unexpected return type: %q", greet.ReturnType)
	}
}

func Test_JavaParser_SkipsBodylessDeclarations(t *testing.T) {
	tmp := t.TempDir()
	code := `package com.example;

public interface Shape {
    double area();

    default double unit() { return 1.0; }
}
`
	path := writeFile(t, tmp, "Shape.java", code)

	parser := p.New()
	snippets, err := parser.ExtractFile(path)
	if err != nil {
		t.Fatalf("ExtractFile error: %v", err)
	}
	// abstract area() has no body and is skipped; default unit() survives
	if len(snippets) != 1 {
		t.Fatalf("expected 1 snippet, got %d", len(snippets))
	}
	if snippets[0].MethodName != "unit" || snippets[0].ClassName != "Shape" {
		t.Fatalf("unexpected snippet: %+v", snippets[0])
	}
}

func Test_JavaParser_FingerprintDeterministic(t *testing.T) {
	tmp := t.TempDir()
	code := `class A { void m() { int x = 1; } }`
	path := writeFile(t, tmp, "A.java", code)

	parser := p.New()
	first, err := parser.ExtractFile(path)
	if err != nil {
		t.Fatalf("ExtractFile error: %v", err)
	}
	second, err := parser.ExtractFile(path)
	if err != nil {
		t.Fatalf("ExtractFile error: %v", err)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected 1 snippet per parse")
	}
	if first[0].Fingerprint != second[0].Fingerprint {
		t.Fatalf("fingerprint not stable: %q vs %q", first[0].Fingerprint, second[0].Fingerprint)
	}

	// changing the body alone keeps the fingerprint, location is unchanged
	writeFile(t, tmp, "A.java", `class A { void m() { int x = 2; } }`)
	third, err := parser.ExtractFile(path)
	if err != nil {
		t.Fatalf("ExtractFile error: %v", err)
	}
	if third[0].Fingerprint != first[0].Fingerprint {
		t.Fatalf("fingerprint changed with body-only edit")
	}
}

func Test_JavaParser_ListSourceFiles(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, tmp, "src/Main.java", "class Main {}")
	writeFile(t, tmp, "src/notes.txt", "not java")
	writeFile(t, tmp, "target/Gen.java", "class Gen {}")
	writeFile(t, tmp, ".git/Conf.java", "class Conf {}")

	parser := p.New()
	files, err := parser.ListSourceFiles(context.Background(), tmp)
	if err != nil {
		t.Fatalf("ListSourceFiles error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %v", files)
	}
	if filepath.Base(files[0]) != "Main.java" {
		t.Fatalf("unexpected file: %s", files[0])
	}
}

func Test_JavaParser_ListSourceFiles_Cancelled(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, tmp, "Main.java", "class Main {}")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	parser := p.New()
	if _, err := parser.ListSourceFiles(ctx, tmp); err == nil {
		t.Fatalf("expected cancellation error")
	}
}
