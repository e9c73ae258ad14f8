//go:build !integration

package provision

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
)

// abort makes fakePrompter return ErrCancelled for that answer.
const abort = "<abort>"

// noTTY makes fakePrompter fail the way console does without a terminal.
const noTTY = "<no-tty>"

var errNoTTY = errors.New("not a TTY")

type fakePrompter struct {
	t        *testing.T
	answers  map[string][]string
	confirms map[string][]bool
	offered  map[string][]Choice
	asked    []string
}

func newFakePrompter(t *testing.T, answers map[string][]string, confirms map[string][]bool) *fakePrompter {
	if confirms == nil {
		confirms = map[string][]bool{}
	}
	return &fakePrompter{t: t, answers: answers, confirms: confirms, offered: map[string][]Choice{}}
}

func (f *fakePrompter) next(title string) (string, error) {
	f.asked = append(f.asked, title)
	q := f.answers[title]
	if len(q) == 0 {
		f.t.Errorf("unexpected prompt %q", title)
		return "", fmt.Errorf("unexpected prompt %q", title)
	}
	f.answers[title] = q[1:]
	switch q[0] {
	case abort:
		return "", ErrCancelled
	case noTTY:
		return "", errNoTTY
	}
	return q[0], nil
}

func (f *fakePrompter) Confirm(title string) (bool, error) {
	f.asked = append(f.asked, title)
	q := f.confirms[title]
	if len(q) == 0 {
		f.t.Errorf("unexpected confirm %q", title)
		return false, fmt.Errorf("unexpected confirm %q", title)
	}
	f.confirms[title] = q[1:]
	return q[0], nil
}

func (f *fakePrompter) Input(title, defaultValue string, validate func(string) error) (string, error) {
	v, err := f.next(title)
	if err != nil {
		return "", err
	}
	if v == "" {
		v = defaultValue
	}
	if validate != nil {
		if verr := validate(v); verr != nil {
			f.t.Errorf("input %q rejected %q: %v", title, v, verr)
		}
	}
	return v, nil
}

func (f *fakePrompter) Secret(title string) (string, error) {
	return f.next(title)
}

func (f *fakePrompter) Select(title string, choices []Choice) (string, error) {
	f.offered[title] = choices
	v, err := f.next(title)
	if err != nil {
		return "", err
	}
	for _, c := range choices {
		if c.Value == v {
			return v, nil
		}
	}
	f.t.Errorf("select %q answered with %q which was not offered", title, v)
	return v, nil
}

func (f *fakePrompter) wasAsked(title string) bool {
	for _, a := range f.asked {
		if a == title {
			return true
		}
	}
	return false
}

type download struct {
	token string
	body  any
	dest  string
}

type fakeBuilder struct {
	mu          sync.Mutex
	valid       map[string]bool
	checked     []string
	downloads   []download
	archive     []byte
	partial     bool
	block       bool
	downloadErr error
}

func (b *fakeBuilder) IsValidToken(_ context.Context, token string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.checked = append(b.checked, token)
	return token != "" && b.valid[token]
}

func (b *fakeBuilder) DownloadArchive(ctx context.Context, token string, body any, dest string) (int64, error) {
	b.mu.Lock()
	b.downloads = append(b.downloads, download{token: token, body: body, dest: dest})
	b.mu.Unlock()

	if b.block || b.partial || b.downloadErr != nil {
		// Leave a half-written file behind for the workflow to clean up.
		if err := os.WriteFile(dest, []byte("PK\x03"), 0o644); err != nil {
			return 0, err
		}
	}
	if b.block {
		<-ctx.Done()
		return 3, ctx.Err()
	}
	if b.downloadErr != nil {
		return 3, b.downloadErr
	}
	if err := os.WriteFile(dest, b.archive, 0o644); err != nil {
		return 0, err
	}
	return int64(len(b.archive)), nil
}

type installCall struct {
	dir     string
	manager string
}

type fakeInstaller struct {
	calls []installCall
	err   error
}

func (i *fakeInstaller) Run(_ context.Context, dir, manager string) error {
	i.calls = append(i.calls, installCall{dir: dir, manager: manager})
	return i.err
}

type recordingStatus struct {
	messages []string
	running  bool
}

func (s *recordingStatus) Start(m string) {
	s.messages = append(s.messages, m)
	s.running = true
}

func (s *recordingStatus) Update(m string) { s.messages = append(s.messages, m) }
func (s *recordingStatus) Stop()           { s.running = false }

func kitArchive(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"package.json": `{"name":"kit","scripts":{"dev":"astro dev"}}`,
		"src/index.ts": "export {}\n",
		"README.md":    "# kit\n",
		"public/.keep": "",
		"drizzle.toml": "dialect = \"turso\"\n",
	}
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
