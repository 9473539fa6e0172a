package mention

import (
	"fmt"
	"net/url"
	"testing"
)

func TestWorkspaceRelative(t *testing.T) {
	ws := NewWorkspace([]string{"/home/me/project", "/home/me/project/vendor/lib", "", "/home/me/project/"})
	cases := []struct {
		path string
		want string
	}{
		{"/home/me/project/src/main.go", "src/main.go"},
		{"/home/me/project/vendor/lib/x.go", "x.go"},
		{"/home/me/projectile/readme.md", "/home/me/projectile/readme.md"},
		{"/elsewhere/file.txt", "/elsewhere/file.txt"},
		{`/home/me/project\docs\guide.md`, "docs/guide.md"},
	}
	for _, tc := range cases {
		if got := ws.Relative(tc.path); got != tc.want {
			t.Fatalf("Relative(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
	if got := fmt.Sprint(ws.Roots()); got != "[/home/me/project/vendor/lib /home/me/project]" {
		t.Fatalf("unexpected roots %s", got)
	}
}

func TestWorkspaceRootPrefersMostSpecific(t *testing.T) {
	ws := NewWorkspace([]string{"/a", "/a/b"})
	root, ok := ws.Root("/a/b/c.txt")
	if !ok || root != "/a/b" {
		t.Fatalf("expected /a/b, got %q (%v)", root, ok)
	}
	if _, ok := ws.Root("/ab/c.txt"); ok {
		t.Fatalf("expected sibling prefix not to match")
	}
}

func TestAbbreviatedName(t *testing.T) {
	cases := map[string]string{
		"src/app/main.go": "main.go",
		"README.md":       "README.md",
		"/src/app":        "app",
		`docs\guide.md`:   "guide.md",
	}
	for in, want := range cases {
		if got := AbbreviatedName(in); got != want {
			t.Fatalf("AbbreviatedName(%q) = %q, want %q", in, got, want)
		}
	}
	if got := Basename("a/b/c/d", 2); got != "c/d" {
		t.Fatalf("Basename(a/b/c/d, 2) = %q", got)
	}
	if got := Basename("a/b", 5); got != "a/b" {
		t.Fatalf("Basename(a/b, 5) = %q", got)
	}
}

func TestFolderOptionsDerivesAncestorsOnce(t *testing.T) {
	ws := NewWorkspace([]string{"/ws"})
	got := FolderOptions(ws, refs(
		"/ws/src/app/main.go",
		"/ws/src/app/util.go",
		"/ws/src/lib.go",
		"/ws/top.go",
		"/outside/x/y.go",
		"",
	))
	want := []string{"/src", "/src/app"}
	if fmt.Sprint(names(got)) != fmt.Sprint(want) {
		t.Fatalf("expected %v, got %v", want, names(got))
	}
	if got[1].AbbreviatedName != "app" {
		t.Fatalf("expected abbreviated name app, got %q", got[1].AbbreviatedName)
	}
	if got[1].Reference().Path != "/ws/src/app" {
		t.Fatalf("unexpected folder reference %q", got[1].Reference().Path)
	}
	for _, o := range got {
		if o.LeafKind() != LeafFolder {
			t.Fatalf("expected folder leaf, got %s", o.LeafKind())
		}
	}
}

func TestFileOptionsUsesRelativeNames(t *testing.T) {
	ws := NewWorkspace([]string{"/ws"})
	got := FileOptions(ws, refs("/ws/cmd/main.go", "/tmp/scratch.txt", ""))
	if fmt.Sprint(names(got)) != "[cmd/main.go /tmp/scratch.txt]" {
		t.Fatalf("unexpected names %v", names(got))
	}
	if got[1].AbbreviatedName != "scratch.txt" {
		t.Fatalf("expected scratch.txt, got %q", got[1].AbbreviatedName)
	}
}

func TestReferenceURI(t *testing.T) {
	ref := Reference{Path: "/ws/my docs/a#b.md"}
	uri := ref.URI()
	parsed, err := url.Parse(uri)
	if err != nil {
		t.Fatalf("parse %q: %v", uri, err)
	}
	if parsed.Scheme != "file" || parsed.Path != ref.Path {
		t.Fatalf("unexpected uri %q", uri)
	}
}

func TestOptionConstructorsCarryOnePayload(t *testing.T) {
	cat := NewCategory("docs", "docs", []Option{leaf("a.md")})
	if cat.Kind() != KindCategory || !cat.IsCategory() || cat.IsLeaf() {
		t.Fatalf("unexpected category kinds %#v", cat)
	}
	if cat.Generator() != nil || cat.LeafKind() != "" {
		t.Fatalf("category should carry only children")
	}
	next := cat.Next()
	next[0].FullName = "mutated"
	if cat.Next()[0].FullName != "a.md" {
		t.Fatalf("expected Next to return a copy")
	}

	file := leaf("a.md")
	if file.Kind() != KindLeaf || file.Next() != nil || file.Generator() != nil {
		t.Fatalf("leaf should carry only its reference")
	}
}
