package dataio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestLoad(t *testing.T) {
	in := "0.5,1.25\n-3,4e-1\n\n7, 8\n"
	got, err := Load(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0.5, 1.25}, {-3, 0.4}, {7, 8}}, got)
}

func TestLoadKeepsRaggedRows(t *testing.T) {
	got, err := Load(strings.NewReader("1,2\n3\n"))
	require.NoError(t, err)
	assert.Len(t, got[1], 1)
}

func TestLoadErrors(t *testing.T) {
	for _, in := range []string{"", "1,x\n", "1,2\n3,\"4\n"} {
		_, err := Load(strings.NewReader(in))
		assert.Errorf(t, err, "input %q", in)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.txt")
	require.NoError(t, os.WriteFile(path, []byte("1,2\n3,4\n"), 0o644))

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, got)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{0, 0.60653065971, 1, 2.5e-5, 12.34567, 3})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, m))
	assert.Equal(t, "0.0000,0.6065,1.0000\n0.0000,12.3457,3.0000\n", buf.String())
}
