package cli

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.ErrorIs(t, err, io.EOF)
}

func TestGetWithDefault(t *testing.T) {
	var out bytes.Buffer
	got, err := GetWithDefault(rdr("\n"), "Color", "white", &out)
	require.NoError(t, err)
	assert.Equal(t, "white", got)
	assert.Contains(t, out.String(), "Color [white]")

	got, err = GetWithDefault(rdr("gold\n"), "Color", "white", &out)
	require.NoError(t, err)
	assert.Equal(t, "gold", got)
}

func TestGetNumber(t *testing.T) {
	var out bytes.Buffer
	bad := map[string]string{}

	v, err := GetNumber(rdr("12.5\n"), "Age", 3, &out, "age", bad)
	require.NoError(t, err)
	assert.Equal(t, 12.5, v)

	v, err = GetNumber(rdr("\n"), "Age", 3, &out, "age", bad)
	require.NoError(t, err)
	assert.Equal(t, float64(3), v)
	assert.Empty(t, bad)

	_, err = GetNumber(rdr("old\n"), "Age", 3, &out, "age", bad)
	require.NoError(t, err)
	assert.Equal(t, "must be a number", bad["age"])
}

func TestGetNumber_RejectsNonFinite(t *testing.T) {
	var out bytes.Buffer
	for _, in := range []string{"NaN\n", "nan\n", "+Inf\n", "-inf\n", "Infinity\n"} {
		bad := map[string]string{}
		v, err := GetNumber(rdr(in), "Price", 2, &out, "price", bad)
		require.NoError(t, err)
		assert.Equal(t, float64(2), v, "input %q", in)
		assert.Equal(t, "must be a number", bad["price"], "input %q", in)
	}
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer
	for in, want := range map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "maybe\n": false} {
		got, err := Confirm(rdr(in), "Delete?", &out)
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", in)
	}
}

func TestUnicornForm(t *testing.T) {
	var out bytes.Buffer
	u, err := unicornForm(rdr("Spark\nwhite\n5\nflight\n"), &out, blankUnicorn)
	require.NoError(t, err)
	assert.Equal(t, "Spark", u.Name)
	assert.Equal(t, float64(5), u.Age)

	_, err = unicornForm(rdr("Spark\nwhite\nfive\nflight\n"), &out, blankUnicorn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "age: must be a number")
}

func TestProductForm_KeepsCurrent(t *testing.T) {
	var out bytes.Buffer
	cur := blankProduct
	cur.ID, cur.Name, cur.Price, cur.Stock = "p1", "Horn polish", 9.5, 3

	p, err := productForm(rdr("\n\n2\n"), &out, cur)
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "Horn polish", p.Name)
	assert.Equal(t, 9.5, p.Price)
	assert.Equal(t, float64(2), p.Stock)
}
