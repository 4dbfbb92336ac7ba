package roots

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ciutil/internal/model"
)

const (
	lintingPattern = `^([^/.]+)\/`
	testingPattern = `^([^\/]+)\/(src|tests?)\/.*\.(cs|csproj|sln)$`
)

func TestExtractUniqueRoots(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		paths   []string
		want    []string
	}{
		{
			name:    "src prefixed roots",
			pattern: `^(src/[^/]+)/`,
			paths:   []string{"src/Api/Program.cs", "src/Api/Controllers/Home.cs", "src/Lib/Util.cs"},
			want:    []string{"src/Api", "src/Lib"},
		},
		{
			name:    "no matches",
			pattern: `^(foo)/`,
			paths:   []string{"src/Api/Program.cs"},
			want:    []string{},
		},
		{
			name:    "three roots with repeats",
			pattern: `^(src/[^/]+)/`,
			paths: []string{
				"src/Api/Program.cs", "src/Api/Program.cs", "src/Api/Controllers/Home.cs",
				"src/Lib/Lib.cs", "src/Lib/Lib.cs",
				"src/Util/Helper.cs", "src/Util/Helper.cs", "src/Util/Another.cs",
			},
			want: []string{"src/Api", "src/Lib", "src/Util"},
		},
		{
			name:    "testing pattern keeps first valid appearance order",
			pattern: testingPattern,
			paths: []string{
				"ProjectA/src/Program.cs",
				"ProjectA/src/Utils/Helper.cs",
				"ProjectB/test/ProjectB.csproj",
				"ProjectB/tests/Another.cs",
				"ProjectC/tests/Solution.sln",
				"ProjectC/test/Other.cs",
				"My-App/src/Util.cs",
				"My.App/tests/Suite.sln",
				"ProjectD/lib/Program.cs",
				"ProjectE/src/README.md",
				"/ProjectF/src/Program.cs",
				"ProjectG/tests/Program.txt",
				"ProjectH/src/Dir",
				"ProjectI/tests/Program.csx",
			},
			want: []string{"ProjectA", "ProjectB", "ProjectC", "My-App", "My.App"},
		},
		{
			name:    "testing pattern is case sensitive",
			pattern: testingPattern,
			paths: []string{
				"A/src/A.cs", "B/tests/BSpec.cs", "C/test/C.csproj", "D/src/D.sln",
				"E/lib/E.cs", "F/tests/readme.md", "G/src/file.CS", "Hsrc/Not/Really.cs",
				"I/tes/Almost.cs", "J/src/deep/file.cs",
			},
			want: []string{"A", "B", "C", "D", "J"},
		},
		{
			name:    "linting pattern skips dotted and hidden roots",
			pattern: lintingPattern,
			paths: []string{
				"Alpha/src/File.cs", "Beta/tests/Test.cs", "Alpha/docs/Readme.md",
				"Gamma/one/two/three.txt", "Bad.Root/src/File.cs", ".hidden/src/File.cs",
				"delta/", "epsilon", "foo.bar/", "my-app/src/index.cs", "my_app/src/index.cs",
				"Zeta/Another.cs", "Alpha/more/Deeper.cs", "  Beta/space.cs",
			},
			want: []string{"Alpha", "Beta", "Gamma", "delta", "my-app", "my_app", "Zeta"},
		},
		{
			name:    "linting pattern no matches",
			pattern: lintingPattern,
			paths:   []string{".hidden", "with.dot", ".hidden/file", "bad.root/file", "onlyfile", "/leading/slash/file"},
			want:    []string{},
		},
		{
			name:    "bracket example from the workflow",
			pattern: testingPattern,
			paths:   []string{"ProjectA/src/Program.cs", "ProjectA/src/Utils/Helper.cs", "ProjectD/lib/Program.cs"},
			want:    []string{"ProjectA"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractUniqueRoots(tt.paths, tt.pattern)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ExtractUniqueRoots() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractUniqueRoots_Sanitizes(t *testing.T) {
	plain, err := ExtractUniqueRoots([]string{"a/b/c"}, `^([^/]+)/`)
	require.NoError(t, err)
	bracketed, err := ExtractUniqueRoots([]string{`["a/b/c"]`}, `^([^/]+)/`)
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, plain)
	assert.Equal(t, plain, bracketed)

	mixed, err := ExtractUniqueRoots([]string{`'x/one'`, `x/two"]`, ` [" y/three "] `, `"`}, `^([^/]+)/`)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, mixed)
}

func TestExtractUniqueRoots_DuplicateIsIdempotent(t *testing.T) {
	paths := []string{"Alpha/a.cs", "Beta/b.cs", "Gamma/c.cs"}
	base, err := ExtractUniqueRoots(paths, lintingPattern)
	require.NoError(t, err)

	for _, extra := range []string{"Alpha/again.cs", "Beta/x/y.cs", "Gamma/"} {
		got, err := ExtractUniqueRoots(append(append([]string{}, paths...), extra), lintingPattern)
		require.NoError(t, err)
		assert.Equal(t, base, got, "appending %q", extra)
	}
}

func TestExtractUniqueRoots_OrderIsFirstOccurrence(t *testing.T) {
	got, err := ExtractUniqueRoots([]string{"zeta/1", "alpha/1", "zeta/2", "mid/1", "alpha/2"}, lintingPattern)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, got)
}

func TestExtractUniqueRoots_InvalidPattern(t *testing.T) {
	for _, engine := range []Engine{EngineECMAScript, EngineRE2} {
		t.Run(engine.String(), func(t *testing.T) {
			discovered := 0
			got, err := ExtractUniqueRoots([]string{"a/b", "c/d"}, "([unclosed",
				WithEngine(engine), OnDiscover(func(string) { discovered++ }))

			var se *model.StepError
			require.True(t, errors.As(err, &se), "expected *model.StepError, got %T: %v", err, err)
			assert.Equal(t, model.KindInvalidPattern, se.Kind)
			assert.Equal(t, PatternInput, se.Input)
			assert.Contains(t, err.Error(), "Invalid regex")
			assert.Contains(t, err.Error(), "([unclosed")
			assert.Nil(t, got)
			assert.Zero(t, discovered)
		})
	}
}

func TestNew_MissingPattern(t *testing.T) {
	_, err := New("")
	var se *model.StepError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, model.KindConfigurationMissing, se.Kind)
	assert.Equal(t, "INPUT_PATTERN is required", se.Error())
}

func TestExtractor_OnDiscoverOncePerRoot(t *testing.T) {
	var found []string
	e, err := New(lintingPattern, OnDiscover(func(root string) { found = append(found, root) }))
	require.NoError(t, err)

	roots, err := e.Extract([]string{"Proj/one.cs", "Proj/two.cs", "Proj/three.cs", "Other/file.cs", "Other/file2.cs"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Proj", "Other"}, roots)
	assert.Equal(t, roots, found)

	// a second run starts from an empty set
	found = nil
	_, err = e.Extract([]string{"Proj/one.cs"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Proj"}, found)
}

func TestExtractor_Explain(t *testing.T) {
	e, err := New(`^(x?)/|^([a-z]+)\.`)
	require.NoError(t, err)

	got, err := e.Explain([]string{"/root", "x/one", "x/two", "name.txt", "NOPE", "  ", `[""]`})
	require.NoError(t, err)

	want := []model.RootMatch{
		{Path: "/root", Kind: model.EmptyCapture},
		{Path: "x/one", Kind: model.Captured, Root: "x"},
		{Path: "x/two", Kind: model.Captured, Root: "x", Duplicate: true},
		{Path: "name.txt", Kind: model.EmptyCapture},
		{Path: "NOPE", Kind: model.NoMatch},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Explain() mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, got[1].Emitted())
	assert.False(t, got[2].Emitted())
}

func TestExtractor_PatternWithoutGroupEmitsNothing(t *testing.T) {
	got, err := ExtractUniqueRoots([]string{"a/b", "c/d"}, `^[a-z]/`)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExtractor_UnanchoredPatternMatchesAnywhere(t *testing.T) {
	got, err := ExtractUniqueRoots([]string{"src/Api/Program.cs", "test/Api/Spec.cs", "lib/Core/x.cs"}, `(Api|Core)/`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Api", "Core"}, got)
}

func TestExtractor_ECMAScriptOnlyFeatures(t *testing.T) {
	pattern := `^(?!tools/)([^/]+)/`
	got, err := ExtractUniqueRoots([]string{"tools/x.cs", "app/y.cs"}, pattern)
	require.NoError(t, err)
	assert.Equal(t, []string{"app"}, got)

	_, err = ExtractUniqueRoots([]string{"app/y.cs"}, pattern, WithEngine(EngineRE2))
	require.Error(t, err)
}

func TestExtractor_EnginesAgree(t *testing.T) {
	paths := strings.Split("Alpha/src/File.cs,Beta/tests/Test.cs,Bad.Root/src/File.cs,delta/,epsilon", ",")
	ecma, err := ExtractUniqueRoots(paths, lintingPattern)
	require.NoError(t, err)
	re2, err := ExtractUniqueRoots(paths, `^([^/.]+)/`, WithEngine(EngineRE2))
	require.NoError(t, err)
	assert.Equal(t, ecma, re2)
}

func TestExtractor_Exclude(t *testing.T) {
	e, err := New(lintingPattern, WithExclude("**/*.md", "docs/**"))
	require.NoError(t, err)

	matches, err := e.Explain([]string{"Alpha/README.md", "docs/Alpha/x.cs", "Beta/src/a.cs"})
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.True(t, matches[0].Excluded)
	assert.True(t, matches[1].Excluded)
	assert.Equal(t, "Beta", matches[2].Root)

	roots, err := e.Extract([]string{"Alpha/README.md", "Beta/src/a.cs"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Beta"}, roots)
}

func TestExtractor_InvalidExclude(t *testing.T) {
	_, err := New(lintingPattern, WithExclude("[unclosed"))
	var se *model.StepError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, model.KindInvalidInput, se.Kind)
}

func TestParseEngine(t *testing.T) {
	for in, want := range map[string]Engine{"": EngineECMAScript, "JS": EngineECMAScript, "re2": EngineRE2, "go": EngineRE2} {
		got, err := ParseEngine(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseEngine("pcre")
	assert.Error(t, err)
}
