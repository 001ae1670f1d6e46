package printer

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/classkit/internal/reader"
	"github.com/joshuapare/classkit/internal/testutil"
	"github.com/joshuapare/classkit/pkg/types"
)

func decode(t *testing.T, raw []byte) *types.ClassFile {
	t.Helper()
	cf, err := reader.Decode(raw, types.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cf.Close() })
	return cf
}

// line returns the whitespace-normalised constant table row for #idx.
func line(t *testing.T, out string, idx string) string {
	t.Helper()
	for _, l := range strings.Split(out, "\n") {
		f := strings.Fields(l)
		if len(f) > 0 && f[0] == idx {
			return strings.Join(f, " ")
		}
	}
	t.Fatalf("no row %s in:\n%s", idx, out)
	return ""
}

func TestPrintPoolText(t *testing.T) {
	cf := decode(t, testutil.Service("com/example/Service"))

	var buf bytes.Buffer
	require.NoError(t, New(&buf, DefaultOptions()).PrintPool(cf))
	out := buf.String()
	t.Logf("Text output:\n%s", out)

	require.Contains(t, out, "class com/example/Service\n")
	require.Contains(t, out, "signature: Lcom/example/Service;")
	require.Contains(t, out, "magic: 0xCAFEBABE")
	require.Contains(t, out, "flags: (0x0021) ACC_PUBLIC, ACC_SUPER")

	assert.Equal(t, "#1 = Utf8 java/lang/Object", line(t, out, "#1"))
	assert.Equal(t, "#2 = Class #1 // java/lang/Object", line(t, out, "#2"))
	assert.Equal(t, `#5 = NameAndType #3:#4 // "<init>":()V`, line(t, out, "#5"))
	assert.Equal(t, `#6 = Methodref #2.#5 // java/lang/Object."<init>":()V`, line(t, out, "#6"))
	assert.Equal(t, "#8 = String #7 // hello", line(t, out, "#8"))
	assert.Equal(t, "#9 = Long 1099511627776l", line(t, out, "#9"))
	assert.Equal(t, "#11 = Integer -7", line(t, out, "#11"))
	assert.Equal(t, "#12 = Double 2.5d", line(t, out, "#12"))
	assert.NotContains(t, out, " #10 = ", "second slot of a Long is not printed")
	assert.NotContains(t, out, " #13 = ")
}

func TestPrintInfoText(t *testing.T) {
	cf := decode(t, testutil.Minimal("Foo"))

	var buf bytes.Buffer
	require.NoError(t, New(&buf, DefaultOptions()).PrintInfo(cf))
	assert.Contains(t, buf.String(), "constant_pool_count: 3")
	assert.NotContains(t, buf.String(), "Constant pool:")
}

func TestPrintResolvesDynamicConstants(t *testing.T) {
	b := testutil.NewClassBuilder()
	name := b.Utf8("run")
	desc := b.Utf8("()Ljava/lang/Runnable;")
	nt := b.NameAndType(name, desc)
	b.InvokeDynamic(0, nt)
	owner := b.Class(b.Utf8("Foo"))
	mref := b.Methodref(owner, nt)
	b.MethodHandle(types.RefInvokeStatic, mref)
	b.MethodType(desc)
	b.Fieldref(owner, 99)
	raw := b.Bytes(0x0001, owner)

	var buf bytes.Buffer
	require.NoError(t, New(&buf, DefaultOptions()).PrintPool(decode(t, raw)))
	out := buf.String()

	assert.Equal(t, "#4 = InvokeDynamic 0:#3 // #0:run:()Ljava/lang/Runnable;", line(t, out, "#4"))
	assert.Equal(t, "#8 = MethodHandle 6:#7 // invokeStatic Foo.run:()Ljava/lang/Runnable;", line(t, out, "#8"))
	assert.Equal(t, "#9 = MethodType #2 // ()Ljava/lang/Runnable;", line(t, out, "#9"))
	assert.Equal(t, "#10 = Fieldref #6.#99 // Foo.<invalid #99>", line(t, out, "#10"))
}

func TestPrintTextOptions(t *testing.T) {
	b := testutil.NewClassBuilder()
	long := b.Utf8("abcdefghij")
	b.Utf8("a\xC0\x80b")
	c := b.Class(long)
	cf := decode(t, b.Bytes(0, c))

	opts := DefaultOptions()
	opts.Resolve = false
	opts.MaxTextRunes = 4
	var buf bytes.Buffer
	require.NoError(t, New(&buf, opts).PrintPool(cf))
	out := buf.String()

	assert.Equal(t, "#1 = Utf8 abcd...", line(t, out, "#1"))
	assert.Equal(t, "#3 = Class #1", line(t, out, "#3"))
	assert.Contains(t, out, "a\x00b", "modified UTF-8 NUL is decoded for display")
}

func TestPrintPoolJSONAndCBOR(t *testing.T) {
	cf := decode(t, testutil.Service("com/example/Service"))

	var jbuf bytes.Buffer
	opts := DefaultOptions()
	opts.Format = FormatJSON
	require.NoError(t, New(&jbuf, opts).PrintPool(cf))

	var fromJSON document
	require.NoError(t, json.Unmarshal(jbuf.Bytes(), &fromJSON))
	assert.Equal(t, "com/example/Service", fromJSON.Name)
	assert.Equal(t, uint16(17), fromJSON.PoolCount)
	require.Len(t, fromJSON.Constants, 14)
	assert.Equal(t, constant{Index: 9, Tag: "Long", Value: "1099511627776l"}, fromJSON.Constants[8])

	var cbuf bytes.Buffer
	opts.Format = FormatCBOR
	require.NoError(t, New(&cbuf, opts).PrintPool(cf))

	var fromCBOR document
	require.NoError(t, cbor.Unmarshal(cbuf.Bytes(), &fromCBOR))
	assert.Equal(t, fromJSON, fromCBOR)
}

func TestPrintClosed(t *testing.T) {
	cf, err := reader.Decode(testutil.Minimal("Foo"), types.Options{})
	require.NoError(t, err)
	require.NoError(t, cf.Close())

	err = New(&bytes.Buffer{}, DefaultOptions()).PrintPool(cf)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"text", "json", "cbor"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, Format(s), f)
	}
	_, err := ParseFormat("reg")
	assert.Error(t, err)
}
