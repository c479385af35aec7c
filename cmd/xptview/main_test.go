package main

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFixture writes a minimal one-member transport file (a character and
// a numeric variable, two rows, one missing value) and returns its path.
func writeFixture(t *testing.T) string {
	t.Helper()

	record := func(s string) []byte {
		b := []byte(s)
		for len(b) < 80 {
			b = append(b, ' ')
		}
		return b
	}
	pad := func(b []byte, n int) []byte {
		for len(b) < n {
			b = append(b, ' ')
		}
		return b
	}
	namestr := func(typ, length, varnum, pos int, name string) []byte {
		b := bytes.Repeat([]byte{' '}, 140)
		binary.BigEndian.PutUint16(b[0:2], uint16(typ))
		binary.BigEndian.PutUint16(b[4:6], uint16(length))
		binary.BigEndian.PutUint16(b[6:8], uint16(varnum))
		copy(b[8:16], pad([]byte(name), 8))
		binary.BigEndian.PutUint32(b[84:88], uint32(pos))
		return b
	}

	var buf bytes.Buffer
	buf.Write(record("HEADER RECORD*******LIBRARY HEADER RECORD!!!!!!!000000000000000000000000000000"))
	buf.Write(record("SAS     SAS     SASLIB  9.4     Linux                           16FEB11:10:42:23"))
	buf.Write(record("16FEB11:10:42:23"))
	buf.Write(record("HEADER RECORD*******MEMBER  HEADER RECORD!!!!!!!000000000000000001600000000140"))
	buf.Write(record("HEADER RECORD*******DSCRPTR HEADER RECORD!!!!!!!000000000000000000000000000000"))
	buf.Write(record("SAS     DEMO    SASDATA 9.4     Linux                           16FEB11:10:42:23"))
	buf.Write(record("16FEB11:10:42:23"))
	buf.Write(record("HEADER RECORD*******NAMESTR HEADER RECORD!!!!!!!000000000200000000000000000000"))

	block := append(namestr(2, 8, 1, 0, "NAME"), namestr(1, 8, 2, 8, "AGE")...)
	buf.Write(pad(block, 320)) // 2 x 140 rounded up to a record multiple
	buf.Write(record("HEADER RECORD*******OBS     HEADER RECORD!!!!!!!000000000000000000000000000000"))

	var obs []byte
	obs = append(obs, pad([]byte("alice"), 8)...)
	obs = append(obs, 0x42, 0x22, 0, 0, 0, 0, 0, 0) // 34
	obs = append(obs, pad([]byte("bob"), 8)...)
	obs = append(obs, 0x2E, 0, 0, 0, 0, 0, 0, 0) // missing
	buf.Write(pad(obs, 80))

	path := filepath.Join(t.TempDir(), "demo.xpt")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "xptview v")
}

func TestTableOutput(t *testing.T) {
	path := writeFixture(t)

	out, err := runCommand(t, path)
	require.NoError(t, err)
	require.Contains(t, out, "1 dataset(s)")
	require.Contains(t, out, "DEMO")
	require.Contains(t, out, "NAME")
	require.Contains(t, out, "alice")
	require.Contains(t, out, "34")
	require.Contains(t, out, "(2 of 2 observations)")
}

func TestJSONOutput(t *testing.T) {
	path := writeFixture(t)

	out, err := runCommand(t, path, "--format", "json")
	require.NoError(t, err)

	var payload struct {
		Path     string `json:"path"`
		Datasets []struct {
			Name             string           `json:"name"`
			ObservationCount int              `json:"observationCount"`
			Fields           []map[string]any `json:"fields"`
			Rows             []map[string]any `json:"rows"`
		} `json:"datasets"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Equal(t, path, payload.Path)
	require.Len(t, payload.Datasets, 1)

	ds := payload.Datasets[0]
	require.Equal(t, "DEMO", ds.Name)
	require.Equal(t, 2, ds.ObservationCount)
	require.Equal(t, "Numeric", ds.Fields[1]["type"])
	require.Equal(t, 34.0, ds.Rows[0]["AGE"])

	// Missing numeric values cross the boundary as JSON null.
	val, present := ds.Rows[1]["AGE"]
	require.True(t, present)
	require.Nil(t, val)
}

func TestCSVOutput(t *testing.T) {
	path := writeFixture(t)

	out, err := runCommand(t, path, "--format", "csv", "--dataset", "DEMO")
	require.NoError(t, err)
	require.Contains(t, out, "NAME,AGE")
	require.Contains(t, out, "alice,34")
	require.Contains(t, out, "bob,.")
}

func TestUnknownDataset(t *testing.T) {
	path := writeFixture(t)

	_, err := runCommand(t, path, "--dataset", "NOPE")
	require.Error(t, err)
	require.Contains(t, err.Error(), "NOPE")
}

func TestParseErrorIsSurfaced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.xpt")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{'x'}, 400), 0o644))

	_, err := runCommand(t, path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid library header")
}

func TestExportFlag(t *testing.T) {
	path := writeFixture(t)
	out := filepath.Join(t.TempDir(), "demo.xlsx")

	stdout, err := runCommand(t, path, "--export", out)
	require.NoError(t, err)
	require.Contains(t, stdout, "Exported 1 dataset(s)")
	require.FileExists(t, out)
}
