package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/service-sdk/go-sdk-qn-manager/api.v7/kodo"
)

type mockKodo struct {
	*httptest.Server

	mu    sync.Mutex
	paths []string
	ops   []string
}

func newMockKodo(t *testing.T) *mockKodo {
	m := &mockKodo{}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		m.mu.Lock()
		m.paths = append(m.paths, r.URL.Path)
		m.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/buckets":
			fmt.Fprint(w, `["b1","b2"]`)
		case r.URL.Path == "/list":
			fmt.Fprint(w, `{"items":[{"key":"a.txt","fsize":2048,"hash":"h1","mimeType":"text/plain"}],"commonPrefixes":["dir/"]}`)
		case strings.HasPrefix(r.URL.Path, "/stat/"):
			fmt.Fprint(w, `{"hash":"h1","fsize":1024,"putTime":16000000000000000,"mimeType":"text/plain"}`)
		case r.URL.Path == "/batch":
			ops := r.PostForm["op"]
			m.mu.Lock()
			m.ops = append(m.ops, ops...)
			m.mu.Unlock()
			rets := make([]kodo.BatchOpRet, len(ops))
			for i, op := range ops {
				rets[i].Code = 200
				if op == "delete/"+kodo.EncodedEntry("b", "missing") {
					rets[i].Code = 612
					rets[i].Data.Error = "no such file or directory"
				}
			}
			json.NewEncoder(w).Encode(rets)
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	t.Cleanup(m.Close)
	return m
}

func (m *mockKodo) recordedPaths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.paths...)
}

func (m *mockKodo) batchOps() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.ops...)
}

func (m *mockKodo) writeConfig(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "kodo.json")
	content := fmt.Sprintf(`{"ak":"ak","sk":"sk","rs_hosts":[%[1]q],"rsf_hosts":[%[1]q],"io_hosts":[%[1]q]}`, m.URL)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func runKodoctl(args ...string) (string, error) {
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestKodoctl_Buckets(t *testing.T) {
	m := newMockKodo(t)
	out, err := runKodoctl("buckets", "-c", m.writeConfig(t))
	require.NoError(t, err)
	assert.Equal(t, "b1\nb2\n", out)
}

func TestKodoctl_Ls(t *testing.T) {
	m := newMockKodo(t)
	out, err := runKodoctl("ls", "bkt", "pre", "--delimiter", "/", "--limit", "10", "-c", m.writeConfig(t))
	require.NoError(t, err)
	assert.Contains(t, out, "dir/\tPRE\n")
	assert.Contains(t, out, "a.txt\t2.0 KiB\th1\t")
	assert.Contains(t, out, "total 1 files\n")
}

func TestKodoctl_LsInvalidLimit(t *testing.T) {
	m := newMockKodo(t)
	_, err := runKodoctl("ls", "bkt", "--limit", "0", "-c", m.writeConfig(t))
	assert.ErrorIs(t, err, kodo.ErrInvalidArgument)
	assert.Empty(t, m.recordedPaths())
}

func TestKodoctl_Stat(t *testing.T) {
	m := newMockKodo(t)
	out, err := runKodoctl("stat", "bkt", "k", "-c", m.writeConfig(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Hash:     h1\n")
	assert.Contains(t, out, "Size:     1.0 KiB (1024 bytes)\n")
	assert.Equal(t, []string{"/stat/" + kodo.EncodedEntry("bkt", "k")}, m.recordedPaths())
}

func TestKodoctl_SingleOperations(t *testing.T) {
	m := newMockKodo(t)
	config := m.writeConfig(t)

	cases := []struct {
		args []string
		path string
	}{
		{[]string{"rm", "b", "k"}, "/delete/" + kodo.EncodedEntry("b", "k")},
		{[]string{"cp", "b", "k", "b2", "k2"}, "/copy/" + kodo.EncodedEntry("b", "k") + "/" + kodo.EncodedEntry("b2", "k2")},
		{[]string{"mv", "b", "k", "b2", "k2"}, "/move/" + kodo.EncodedEntry("b", "k") + "/" + kodo.EncodedEntry("b2", "k2")},
		{[]string{"rename", "b", "old", "new"}, "/move/" + kodo.EncodedEntry("b", "old") + "/" + kodo.EncodedEntry("b", "new")},
		{[]string{"chgm", "b", "k", "text/plain"}, "/chgm/" + kodo.EncodedEntry("b", "k") + "/mime/" + kodo.EncodeString("text/plain")},
		{[]string{"chtype", "b", "k", "1"}, "/chtype/" + kodo.EncodedEntry("b", "k") + "/type/1"},
		{[]string{"fetch", "http://a.com/x", "b", "k"}, "/fetch/" + kodo.EncodeString("http://a.com/x") + "/to/" + kodo.EncodedEntry("b", "k")},
		{[]string{"prefetch", "b", "k"}, "/prefetch/" + kodo.EncodedEntry("b", "k")},
	}
	for i, c := range cases {
		_, err := runKodoctl(append(c.args, "-c", config)...)
		require.NoError(t, err, c.args)
		paths := m.recordedPaths()
		require.Len(t, paths, i+1)
		assert.Equal(t, c.path, paths[i], c.args)
	}
}

func TestKodoctl_ChtypeInvalid(t *testing.T) {
	m := newMockKodo(t)
	_, err := runKodoctl("chtype", "b", "k", "cold", "-c", m.writeConfig(t))
	assert.Error(t, err)
	assert.Empty(t, m.recordedPaths())
}

func TestKodoctl_RmMany(t *testing.T) {
	m := newMockKodo(t)
	out, err := runKodoctl("rm", "b", "k1", "missing", "-c", m.writeConfig(t))
	assert.EqualError(t, err, "1 of 2 operations failed")
	assert.Equal(t, "200\tk1\n612\tmissing\tno such file or directory\n", out)
}

func TestKodoctl_BatchFile(t *testing.T) {
	m := newMockKodo(t)
	file := filepath.Join(t.TempDir(), "ops.txt")
	require.NoError(t, os.WriteFile(file, []byte(`
# comment
copy b k b2 k2
rename b old new
stat	b	key with space
`), 0644))

	out, err := runKodoctl("batch", "-f", file, "-c", m.writeConfig(t))
	require.NoError(t, err)
	assert.Equal(t, "200\tcopy b k b2 k2\n200\trename b old new\n200\tstat\tb\tkey with space\n", out)
	assert.Equal(t, []string{
		"copy/" + kodo.EncodedEntry("b", "k") + "/" + kodo.EncodedEntry("b2", "k2"),
		"move/" + kodo.EncodedEntry("b", "old") + "/" + kodo.EncodedEntry("b", "new"),
		"stat/" + kodo.EncodedEntry("b", "key with space"),
	}, m.batchOps())
}

func TestParseBatch_Errors(t *testing.T) {
	_, _, err := parseBatch(strings.NewReader("upload b k\n"))
	assert.EqualError(t, err, `line 1: unknown operation "upload"`)

	_, _, err = parseBatch(strings.NewReader("\ncopy b k b2\n"))
	assert.EqualError(t, err, "line 2: copy expects 4 arguments, got 3")

	_, _, err = parseBatch(strings.NewReader("delete\t\tk\n"))
	assert.ErrorIs(t, err, kodo.ErrInvalidArgument)
}

func TestKodoctl_Version(t *testing.T) {
	out, err := runKodoctl("version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "kodoctl 1.5.0 ("), out)
}
