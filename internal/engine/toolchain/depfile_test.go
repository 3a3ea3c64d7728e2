package toolchain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/forge/internal/engine/toolchain"
)

func TestScavengeShowIncludes(t *testing.T) {
	captured := []byte("math.c\r\n" +
		"Note: including file: C:\\src\\math.h\r\n" +
		"Note: including file:   C:\\sdk\\include\\stdio.h\r\n" +
		"unrelated diagnostic line\r\n")

	stub := toolchain.ScavengeShowIncludes("build/obj_math/math.o", "math.c", captured)

	assert.Equal(t,
		"build/obj_math/math.o: math.c \\\n"+
			"  C:\\src\\math.h \\\n"+
			"  C:\\sdk\\include\\stdio.h\n",
		string(stub))
}

func TestScavengeShowIncludes_NoHeaders(t *testing.T) {
	stub := toolchain.ScavengeShowIncludes("build/obj_m/m.o", "m.c", []byte("m.c\n"))
	assert.Equal(t, "build/obj_m/m.o: m.c\n", string(stub))
}
