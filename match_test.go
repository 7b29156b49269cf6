package snare_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/snare"
)

func wantErrors(t *testing.T, s *snare.Snare, want ...string) {
	t.Helper()

	got := s.Errors()
	if !slices.Equal(got, want) {
		t.Errorf("errors mismatch\n got: %q\nwant: %q", got, want)
	}

	if s.HasErrors() != (len(want) > 0) {
		t.Errorf("HasErrors() = %v with %d errors", s.HasErrors(), len(want))
	}
}

func wantFound(t *testing.T, m snare.Spec, name string) {
	t.Helper()

	if !m.Found() {
		t.Errorf("spec %v not found", m.Names())

		return
	}

	if m.Name() != name {
		t.Errorf("matched name = %q, want %q", m.Name(), name)
	}
}

func wantNone(t *testing.T, specs ...snare.Spec) {
	t.Helper()

	for _, m := range specs {
		if m.Found() {
			t.Errorf("spec %v unexpectedly found as %q", m.Names(), m.Name())
		}
	}
}

func wantValues[T comparable](t *testing.T, m *snare.Matcher[T], want ...T) {
	t.Helper()

	if got := m.Values(); !slices.Equal(got, want) {
		t.Errorf("values = %v, want %v", got, want)
	}
}

func TestGeneral(t *testing.T) {
	type fixture struct {
		s *snare.Snare

		allow, req, multi, multireq *snare.Matcher[string]
	}

	build := func() fixture {
		s := snare.Make()

		return fixture{
			s:        s,
			allow:    s.Add("--allow", "-a").AllowParam(),
			req:      s.Add("--req", "-r").RequireParam(),
			multi:    s.Add("--multi", "-m").RequireMulti(),
			multireq: s.Add("--multireq", "-mrq").RequireAndMulti(),
		}
	}

	t.Run("missing required", func(t *testing.T) {
		f := build()
		f.s.Match([]string{"-a", "--multi", "m1", "m2", "m3", "-r", "reqset"})
		wantErrors(t, f.s, "Missing argument: --multireq")
	})

	t.Run("required parameter absent", func(t *testing.T) {
		f := build()
		f.s.Match([]string{"-a", "--multi", "m1", "m2", "m3", "-r"})
		wantErrors(t, f.s,
			"Argument -r requires parameter",
			"Missing argument: --multireq",
		)
	})

	t.Run("multi parameter absent", func(t *testing.T) {
		f := build()
		f.s.Match([]string{"-a", "--multi", "-r", "reqset"})
		wantErrors(t, f.s,
			"Argument --multi requires parameter",
			"Missing argument: --multireq",
		)
	})

	t.Run("all satisfied", func(t *testing.T) {
		f := build()
		f.s.Match([]string{
			"--multi", "m1", "m2", "m3", "-r", "reqset", "-mrq", "mrq1",
		})
		wantErrors(t, f.s)
		wantNone(t, f.allow)
		wantFound(t, f.req, "-r")

		if got := f.req.Value(""); got != "reqset" {
			t.Errorf("req value = %q", got)
		}

		wantFound(t, f.multi, "--multi")
		wantValues(t, f.multi, "m1", "m2", "m3")
		wantFound(t, f.multireq, "-mrq")
		wantValues(t, f.multireq, "mrq1")
	})

	t.Run("optional trailing", func(t *testing.T) {
		f := build()
		f.s.Match([]string{
			"--multi", "m1", "m2", "m3", "-r", "reqset", "-mrq", "mrq1", "-a",
		})
		wantErrors(t, f.s)
		wantFound(t, f.allow, "-a")
	})
}

func TestWildcard(t *testing.T) {
	t.Run("required multi", func(t *testing.T) {
		s := snare.Make()
		wc := s.AddWildcard().RequireAndMulti().WithSample("thing")

		s.Match([]string{"a", "b", "c"})
		wantErrors(t, s)
		wantValues(t, wc, "a", "b", "c")

		s.Reset().Match([]string{})
		wantErrors(t, s, "Missing argument: <thing(s)>")
	})

	t.Run("optional multi", func(t *testing.T) {
		s := snare.Make()
		wc := s.AddWildcard().Multi()

		s.Match([]string{})
		wantErrors(t, s)
		wantNone(t, wc)

		s.Reset().Match([]string{"a", "b", "c"})
		wantValues(t, wc, "a", "b", "c")
	})

	t.Run("single", func(t *testing.T) {
		s := snare.Make()
		wc := s.AddWildcard()

		s.Match([]string{})
		wantNone(t, wc)

		s.Reset().Match([]string{"a", "b"})
		wantErrors(t, s, `Invalid argument: "b"`)

		if got := wc.Value(""); got != "a" {
			t.Errorf("wildcard value = %q, want a", got)
		}
	})
}

func TestMultipleSingleWildcards(t *testing.T) {
	build := func() (*snare.Snare, *snare.Matcher[string], *snare.Matcher[string], *snare.Matcher[string]) {
		s := snare.Make()

		return s, s.AddWildcard(), s.AddWildcard(), s.Add("-a3")
	}

	tokens := [][]string{
		{"hello", "world", "-a3"},
		{"hello", "-a3", "world"},
		{"-a3", "hello", "world"},
	}

	for _, toks := range tokens {
		t.Run(strings.Join(toks, " "), func(t *testing.T) {
			s, a1, a2, a3 := build()
			s.Match(toks)
			wantErrors(t, s)

			if got := a1.Value(""); got != "hello" {
				t.Errorf("first wildcard = %q, want hello", got)
			}

			if got := a2.Value(""); got != "world" {
				t.Errorf("second wildcard = %q, want world", got)
			}

			wantFound(t, a3, "-a3")
		})
	}
}

func TestMultipleMultiWildcards(t *testing.T) {
	build := func() (*snare.Snare, *snare.Matcher[string], *snare.Matcher[string], *snare.Matcher[string]) {
		s := snare.Make()

		return s, s.AddWildcard().Multi(), s.AddWildcard().Multi(), s.Add("-a3")
	}

	t.Run("split by argument", func(t *testing.T) {
		s, a1, a2, a3 := build()
		s.Match([]string{"hello", "-a3", "world"})
		wantValues(t, a1, "hello")
		wantValues(t, a2, "world")
		wantFound(t, a3, "-a3")
	})

	t.Run("first takes the run", func(t *testing.T) {
		s, a1, a2, a3 := build()
		s.Match([]string{"hello", "world", "-a3"})
		wantValues(t, a1, "hello", "world")
		wantValues(t, a2)
		wantFound(t, a3, "-a3")
	})

	t.Run("argument first", func(t *testing.T) {
		s, a1, a2, a3 := build()
		s.Match([]string{"-a3", "hello", "world"})
		wantValues(t, a1, "hello", "world")
		wantValues(t, a2)
		wantFound(t, a3, "-a3")
	})
}

func TestAllowsVersusRequired(t *testing.T) {
	build := func() (*snare.Snare, *snare.Matcher[string], *snare.Matcher[string]) {
		s := snare.Make()

		return s,
			s.Add("--allow", "-a").AllowParam(),
			s.Add("--req", "-r").Require()
	}

	t.Run("required missing", func(t *testing.T) {
		s, _, _ := build()
		s.Match([]string{"--allow"})
		wantErrors(t, s, "Missing argument: --req")
	})

	t.Run("required without parameter", func(t *testing.T) {
		s, _, _ := build()
		s.Match([]string{"--req"})
		wantErrors(t, s, "Argument --req requires parameter")
	})

	t.Run("both valued", func(t *testing.T) {
		s, allow, req := build()
		s.Match([]string{"-a", "a1", "-r", "r1"})
		wantErrors(t, s)

		if got := allow.Value(""); got != "a1" {
			t.Errorf("allow value = %q", got)
		}

		if got := req.Value(""); got != "r1" {
			t.Errorf("req value = %q", got)
		}
	})

	t.Run("empty inline value", func(t *testing.T) {
		s, allow, _ := build()
		s.Match([]string{"--allow=", "--req=r"})
		wantErrors(t, s)
		wantFound(t, allow, "--allow")

		if got := allow.Value("mydefault"); got != "mydefault" {
			t.Errorf("allow default = %q, want mydefault", got)
		}
	})

	t.Run("empty inline value on required parameter", func(t *testing.T) {
		s, _, _ := build()
		s.Match([]string{"--req="})
		wantErrors(t, s, "Argument --req requires parameter")
	})
}

func TestOnlyIf(t *testing.T) {
	build := func() (*snare.Snare, *snare.Matcher[string], *snare.Matcher[string]) {
		s := snare.Make()
		a1 := s.Add("--a1", "-a1").AllowParam()
		a2 := s.Add("--a2", "-a2").OnlyIf(a1)

		return s, a1, a2
	}

	t.Run("neither present", func(t *testing.T) {
		s, a1, a2 := build()
		s.Match([]string{})
		wantErrors(t, s)
		wantNone(t, a1, a2)
	})

	t.Run("dependency only", func(t *testing.T) {
		s, a1, a2 := build()
		s.Match([]string{"--a1"})
		wantErrors(t, s)
		wantFound(t, a1, "--a1")
		wantNone(t, a2)
	})

	t.Run("both present", func(t *testing.T) {
		s, a1, a2 := build()
		s.Match([]string{"--a1", "-a2"})
		wantErrors(t, s)
		wantFound(t, a1, "--a1")
		wantFound(t, a2, "-a2")
	})

	t.Run("dependent alone", func(t *testing.T) {
		s, _, _ := build()
		s.Match([]string{"-a2"})
		wantErrors(t, s, "Argument -a2 only valid if --a1 present")
	})
}

func TestRequiredGatedOnDependency(t *testing.T) {
	build := func() *snare.Snare {
		s := snare.Make()
		z1 := s.Add("--z1", "-z1")
		s.Add("--z2", "-z2").Require().OnlyIf(z1)
		s.Add("--z3", "-z3").AllowParam().OnlyIf(z1)

		return s
	}

	t.Run("unmet dependency silences requirement", func(t *testing.T) {
		s := build()
		s.Match([]string{})
		wantErrors(t, s)
	})

	t.Run("met dependency enforces requirement", func(t *testing.T) {
		s := build()
		s.Match([]string{"-z1"})
		wantErrors(t, s, "Missing argument: --z2")
	})
}

func TestValueDefaults(t *testing.T) {
	s := snare.Make()
	z1 := s.Add("--z1").AllowParam()
	z2 := s.Add("--z2").Multi()

	s.Match([]string{})

	if z1.HasValue() || z2.HasValue() {
		t.Error("HasValue must be false before any capture")
	}

	if got := z1.Value("hello"); got != "hello" {
		t.Errorf("default single = %q", got)
	}

	if got := z2.Values("world", "again"); !slices.Equal(got, []string{"world", "again"}) {
		t.Errorf("default multi = %v", got)
	}

	s.Reset().Match([]string{"--z1", "a", "--z2", "b"})

	if !z1.HasValue() || !z2.HasValue() {
		t.Error("HasValue must be true after capture")
	}

	if got := z1.Value("hello"); got != "a" {
		t.Errorf("single = %q, want a", got)
	}

	if got := z2.Values("world", "again"); !slices.Equal(got, []string{"b"}) {
		t.Errorf("multi = %v, want [b]", got)
	}
}

func TestIntConversion(t *testing.T) {
	build := func() (*snare.Snare, *snare.Matcher[int], *snare.Matcher[int]) {
		s := snare.Make()
		a1 := snare.AddFunc(s, snare.ParseInt, "--a1")
		b1 := snare.AddFunc(s, snare.ParseInt, "--b1").Multi()

		return s, a1, b1
	}

	t.Run("negative values", func(t *testing.T) {
		// Negative numbers require double-dashed names only, so "-222"
		// stays capturable as a value.
		s, a1, b1 := build()
		s.Match([]string{"--a1", "12345", "--b1", "-222", "44"})
		wantErrors(t, s)

		if got := a1.Value(0); got != 12345 {
			t.Errorf("a1 = %d", got)
		}

		wantValues(t, b1, -222, 44)
	})

	t.Run("found without values", func(t *testing.T) {
		s, a1, b1 := build()
		s.Match([]string{"--b1"})
		wantErrors(t, s)

		if got := a1.Value(0); got != 0 {
			t.Errorf("a1 default = %d", got)
		}

		wantValues(t, b1)

		if got := b1.Values(1); !slices.Equal(got, []int{1}) {
			t.Errorf("b1 defaults = %v", got)
		}
	})

	t.Run("inline value", func(t *testing.T) {
		s, a1, b1 := build()
		s.Match([]string{"--b1=1"})
		wantValues(t, b1, 1)

		s.Reset().Match([]string{"--a1=1"})

		if got := a1.Value(0); got != 1 {
			t.Errorf("a1 = %d", got)
		}
	})

	t.Run("conversion failure", func(t *testing.T) {
		s, _, b1 := build()
		s.Match([]string{"--b1", "1", "ll"})
		wantErrors(t, s, `Argument --b1: Invalid parameter "ll"`)

		if !b1.Failed() {
			t.Error("b1 not marked failed")
		}

		wantValues(t, b1, 1)
	})
}

func TestSimilarNames(t *testing.T) {
	t.Run("longest exact name wins", func(t *testing.T) {
		s := snare.Make()
		a := s.Add("-a")
		ab := s.Add("-ab")
		abc := s.Add("-abc")

		s.Match([]string{"-abc"})
		wantNone(t, a, ab)
		wantFound(t, abc, "-abc")
	})

	t.Run("inline values do not cross up", func(t *testing.T) {
		s := snare.Make()
		a := s.Add("-a").Multi()
		ab := s.Add("-ab").AllowParam()
		abc := s.Add("-abc").AllowParam()

		s.Match([]string{"-abc=3", "-ab=2", "-a=1", "-a=11"})
		wantErrors(t, s)
		wantValues(t, a, "1", "11")

		if got := ab.Value(""); got != "2" {
			t.Errorf("ab = %q", got)
		}

		if got := abc.Value(""); got != "3" {
			t.Errorf("abc = %q", got)
		}
	})
}

func TestBundles(t *testing.T) {
	build := func() (*snare.Snare, []*snare.Matcher[string]) {
		s := snare.Make()

		return s, []*snare.Matcher[string]{
			s.Add("-a"),
			s.Add("-b"),
			s.Add("-c"),
			s.Add("-d").AllowParam(),
		}
	}

	t.Run("plain bundle", func(t *testing.T) {
		s, m := build()
		s.Match([]string{"-abc"})
		wantErrors(t, s)
		wantFound(t, m[0], "-a")
		wantFound(t, m[1], "-b")
		wantFound(t, m[2], "-c")
		wantNone(t, m[3])
	})

	t.Run("bundle order does not matter", func(t *testing.T) {
		s, m := build()
		s.Match([]string{"-cabd", "phlegm"})
		wantErrors(t, s)
		wantFound(t, m[0], "-a")
		wantFound(t, m[1], "-b")
		wantFound(t, m[2], "-c")
		wantFound(t, m[3], "-d")

		if got := m[3].Value(""); got != "phlegm" {
			t.Errorf("d = %q, want phlegm", got)
		}
	})

	t.Run("unknown character rejects whole bundle", func(t *testing.T) {
		s, _ := build()
		s.Match([]string{"-abce"})
		wantErrors(t, s, `Invalid argument: "-abce"`)
	})
}

func TestBundlesWithoutDashes(t *testing.T) {
	build := func() (*snare.Snare, []*snare.Matcher[string]) {
		s := snare.Make()

		return s, []*snare.Matcher[string]{
			s.Add("-a", "a"),
			s.Add("-u", "u"),
			s.Add("-x", "x"),
			s.Add("-d", "d").AllowParam(),
		}
	}

	t.Run("classic ps aux", func(t *testing.T) {
		s, m := build()
		s.Match([]string{"aux"})
		wantErrors(t, s)
		wantFound(t, m[0], "a")
		wantFound(t, m[1], "u")
		wantFound(t, m[2], "x")
	})

	t.Run("bare bundle with parameter", func(t *testing.T) {
		s, m := build()
		s.Match([]string{"uxad", "phlegm"})
		wantErrors(t, s)
		wantFound(t, m[0], "a")
		wantFound(t, m[1], "u")
		wantFound(t, m[2], "x")
		wantFound(t, m[3], "d")

		if got := m[3].Value(""); got != "phlegm" {
			t.Errorf("d = %q", got)
		}
	})

	t.Run("dashed equivalent of bare bundle", func(t *testing.T) {
		s, m := build()
		s.Match([]string{"-a", "-u", "-x"})
		wantErrors(t, s)
		wantFound(t, m[0], "-a")
		wantFound(t, m[1], "-u")
		wantFound(t, m[2], "-x")
	})

	t.Run("unknown character", func(t *testing.T) {
		s, _ := build()
		s.Match([]string{"auxe"})
		wantErrors(t, s, `Invalid argument: "auxe"`)
	})
}

func TestMultiValueEquivalence(t *testing.T) {
	build := func() (*snare.Snare, *snare.Matcher[string], *snare.Matcher[string]) {
		s := snare.Make()
		a := s.Add("-a").Multi()
		b := s.Add("-b").AllowParam()
		s.Add("-c")

		return s, a, b
	}

	t.Run("repeated flag", func(t *testing.T) {
		s, a, _ := build()
		s.Match([]string{"-a", "1", "-a", "2", "-a", "3"})
		wantErrors(t, s)
		wantValues(t, a, "1", "2", "3")
	})

	t.Run("repeated inline", func(t *testing.T) {
		s, a, _ := build()
		s.Match([]string{"-a=1", "-a=2", "-a=3"})
		wantErrors(t, s)
		wantValues(t, a, "1", "2", "3")
	})

	t.Run("single-value duplicates", func(t *testing.T) {
		s, _, b := build()
		s.Match([]string{"-b", "1", "-b", "2", "-b", "3"})
		wantErrors(t, s,
			"-b: Cannot supply multiple values; caused by: 2",
			"-b: Cannot supply multiple values; caused by: 3",
		)

		if got := b.Value(""); got != "1" {
			t.Errorf("b = %q, want first value to win", got)
		}
	})

	t.Run("single-value inline duplicates", func(t *testing.T) {
		s, _, _ := build()
		s.Match([]string{"-b=1", "-b=2", "-b=3"})
		wantErrors(t, s,
			"-b: Cannot supply multiple values; caused by: 2",
			"-b: Cannot supply multiple values; caused by: 3",
		)
	})
}

func TestDelimiterSkip(t *testing.T) {
	t.Run("glued value on bundle tail", func(t *testing.T) {
		s := snare.Make(snare.WithDelimiterSkip())
		a := s.Add("-a").Multi()
		b := s.Add("-b").AllowParam()
		c := s.Add("-c").AllowParam()

		s.Match([]string{"-abc~"})
		wantErrors(t, s)
		wantFound(t, a, "-a")
		wantValues(t, a)
		wantFound(t, b, "-b")
		wantFound(t, c, "-c")

		if got := c.Value(""); got != "~" {
			t.Errorf("c = %q, want ~", got)
		}
	})

	t.Run("parameter-requiring head consumes the rest", func(t *testing.T) {
		s := snare.Make(snare.WithDelimiterSkip())
		a := s.Add("-a").RequireParam()
		b := s.Add("-b").AllowParam()
		c := s.Add("-c").AllowParam()

		s.Match([]string{"-abc~"})
		wantErrors(t, s)
		wantFound(t, a, "-a")

		if got := a.Value(""); got != "bc~" {
			t.Errorf("a = %q, want bc~", got)
		}

		wantNone(t, b, c)
	})

	t.Run("disabled leaves the token unmatched", func(t *testing.T) {
		s := snare.Make()
		s.Add("-a")
		s.Add("-b")
		c := s.Add("-c").AllowParam()

		s.Match([]string{"-abc~"})
		wantErrors(t, s, `Invalid argument: "-abc~"`)
		wantNone(t, c)
	})
}

func TestAddError(t *testing.T) {
	s := snare.Make(snare.WithDelimiterSkip())
	a := s.Add("-a").RequireParam()
	b := s.Add("-b").AllowParam()

	s.Match([]string{"-abc~"})

	// -c is unregistered here, so the bundle stops at -b... but -a requires
	// a parameter, claiming "bc~" outright.
	wantFound(t, a, "-a")
	wantErrors(t, s)

	s.AddError(b, "not good")
	wantErrors(t, s, "not good")

	if !b.Failed() {
		t.Error("AddError did not mark matcher failed")
	}
}

func TestResetRoundTrip(t *testing.T) {
	s := snare.Make()
	allow := s.Add("--allow", "-a").AllowParam()
	multi := s.Add("--multi", "-m").RequireMulti()
	s.Add("--multireq", "-mrq").RequireAndMulti()

	tokens := []string{"-a", "--multi", "m1", "m2"}

	s.Match(tokens)
	first := slices.Clone(s.Errors())
	foundFirst := []bool{allow.Found(), multi.Found()}
	valuesFirst := slices.Clone(multi.Values())

	s.Reset()

	if s.HasErrors() || allow.Found() || multi.Found() || len(multi.Values()) != 0 {
		t.Fatal("Reset left state behind")
	}

	s.Match(tokens)

	if !slices.Equal(first, s.Errors()) {
		t.Errorf("errors differ after reset: %q vs %q", first, s.Errors())
	}

	if foundFirst[0] != allow.Found() || foundFirst[1] != multi.Found() {
		t.Error("found state differs after reset")
	}

	if !slices.Equal(valuesFirst, multi.Values()) {
		t.Error("values differ after reset")
	}
}

func TestWildcardConversion(t *testing.T) {
	s := snare.Make()
	nums := snare.AddWildcardFunc(s, snare.ParseInt).Multi()

	s.Match([]string{"1", "2", "x"})

	// Wildcard conversion failures carry no "Argument <id>:" prefix.
	wantErrors(t, s, `Invalid parameter "x"`)
	wantValues(t, nums, 1, 2)

	if !nums.Failed() {
		t.Error("wildcard not marked failed")
	}
}

func TestSuggestions(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		s := snare.Make(snare.WithSuggestions())
		s.Add("--count").AllowParam()
		s.Add("--name").AllowParam()

		s.Match([]string{"--cont"})

		errs := s.Errors()
		if len(errs) != 1 {
			t.Fatalf("errors = %q", errs)
		}

		if !strings.Contains(errs[0], `Invalid argument: "--cont"`) ||
			!strings.Contains(errs[0], `did you mean "--count"`) {
			t.Errorf("suggestion missing from %q", errs[0])
		}
	})

	t.Run("disabled keeps error text stable", func(t *testing.T) {
		s := snare.Make()
		s.Add("--count").AllowParam()

		s.Match([]string{"--cont"})
		wantErrors(t, s, `Invalid argument: "--cont"`)
	})
}
