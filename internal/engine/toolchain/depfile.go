package toolchain

import "strings"

// showIncludesTag is the prefix cl.exe emits for each included header when
// /showIncludes is active. Localized compilers emit a translated tag; those
// lines are simply not scavenged.
const showIncludesTag = "Note: including file:"

// ScavengeShowIncludes converts captured /showIncludes output into a
// makefile-format dependency stub for obj. The stub is informational only;
// the freshness oracle never reads it.
func ScavengeShowIncludes(obj, src string, captured []byte) []byte {
	var b strings.Builder
	b.WriteString(obj + ": " + src)
	for _, line := range strings.FieldsFunc(string(captured), func(r rune) bool {
		return r == '\r' || r == '\n'
	}) {
		pos := strings.Index(line, showIncludesTag)
		if pos < 0 {
			continue
		}
		header := strings.TrimLeft(line[pos+len(showIncludesTag):], " \t")
		if header != "" {
			b.WriteString(" \\\n  " + header)
		}
	}
	b.WriteString("\n")
	return []byte(b.String())
}
