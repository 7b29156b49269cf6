// Package snare matches and validates command-line tokens against a
// declarative set of argument specifications.
//
// # Terminology
//
// Given "--arg=param" or "-arg param", the "argument" is "--arg" and the
// argument's parameter is "param". In "grep phrase filename", both "phrase"
// and "filename" are unnamed wildcard parameters; the argument is implied
// but never typed.
//
// # Syntax
//
// A wide variety of parameter syntax is recognized:
//
//   - Unnamed wildcard parameters, e.g. "grep 'hello world' file1 file2"
//   - "--arg" as well as "-arg"
//   - "--arg=param" and "-arg param" (and the non-idiomatic "--arg param"
//     and "-arg=param", because we know what you meant)
//   - "-abc param" as a shortcut for "-a -b -c param"
//   - Optional dashes, e.g. the classic "ps aux" for "ps -a -u -x"
//   - "-x1" for "-x 1", and even "-abc1" for "-a -b -c 1"
//     (enabled with [WithDelimiterSkip])
//   - "-a xxx -a yyy" and "-a xxx yyy" produce the same multi-value result,
//     as does the double-dashed "--aa=xxx --aa=yyy"
//
// # Usage
//
// A [Snare] is configured once with [Make] and the registration calls
// [Snare.Add], [Snare.AddWildcard], [AddFunc], and [AddWildcardFunc],
// then run any number of times against token arrays:
//
//	s := snare.Make()
//	expr := s.AddWildcard().Require()
//	files := s.AddWildcard().Multi()
//	icase := s.Add("--ignore-case", "-i", "i")
//
//	s.Match(os.Args[1:])
//	if s.HasErrors() {
//	    for _, e := range s.Errors() {
//	        fmt.Fprintln(os.Stderr, e)
//	    }
//	    os.Exit(1)
//	}
//
// [Snare.Match] never fails for malformed user input; it accumulates
// human-readable messages readable through [Snare.Errors]. Registration
// mistakes (duplicate names, dependency cycles) are programmer errors and
// panic immediately.
//
// Results are written into the registered [Matcher] values by reference and
// survive until [Snare.Reset], so one specification set can be reused across
// repeated matching passes.
//
// A Snare is not safe for concurrent use; Match mutates the matchers and the
// shared error list in place.
package snare
