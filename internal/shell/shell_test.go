package shell

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/text-scanner/internal/app"
	"github.com/ironsheep/text-scanner/internal/ocr"
	"github.com/ironsheep/text-scanner/internal/overlay"
	"github.com/ironsheep/text-scanner/internal/session"
	"github.com/ironsheep/text-scanner/internal/source"
)

func intPtr(v int) *int { return &v }

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name string
		line string
		want app.Command
	}{
		{"load", `{"cmd":"load","path":"/tmp/a.png"}`, app.LoadImage{Path: "/tmp/a.png"}},
		{"start camera", `{"cmd":"start_camera"}`, app.StartCamera{}},
		{"stop camera", `{"cmd":"stop_camera"}`, app.StopCamera{}},
		{"capture", `{"cmd":"capture"}`, app.CaptureFrame{}},
		{"clear roi", `{"cmd":"clear_roi"}`, app.ClearROI{}},
		{"suggest", `{"cmd":"suggest"}`, app.SuggestROI{}},
		{"press", `{"cmd":"press","x":10,"y":20}`, app.PointerPress{Point: image.Pt(10, 20)}},
		{"move at origin", `{"cmd":"move","x":0,"y":0}`, app.PointerMove{Point: image.Pt(0, 0)}},
		{"release", `{"cmd":"release","x":110,"y":60}`, app.PointerRelease{Point: image.Pt(110, 60)}},
		{"extract", `{"cmd":"extract"}`, app.ExtractText{}},
		{"save", `{"cmd":"save","path":"out.txt"}`, app.SaveText{Path: "out.txt"}},
		{"quit", `{"cmd":"quit"}`, app.Quit{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRequest([]byte(tt.line))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRequest_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
		code int
	}{
		{"not json", `load a.png`, CodeParseError},
		{"unknown command", `{"cmd":"explode"}`, CodeUnknownCmd},
		{"load without path", `{"cmd":"load"}`, CodeInvalidParams},
		{"save without path", `{"cmd":"save"}`, CodeInvalidParams},
		{"press without y", `{"cmd":"press","x":1}`, CodeInvalidParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRequest([]byte(tt.line))
			var pe *ProtocolError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.code, pe.Code)
		})
	}
}

func TestRequest_Command(t *testing.T) {
	r := Request{Cmd: "press", X: intPtr(3), Y: intPtr(4)}
	cmd, err := r.Command()
	require.NoError(t, err)
	assert.Equal(t, app.PointerPress{Point: image.Pt(3, 4)}, cmd)
}

// syncBuffer is a goroutine-safe output sink.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) events(t *testing.T) []Event {
	t.Helper()
	out, err := b.parse()
	require.NoError(t, err)
	return out
}

func (b *syncBuffer) parse() ([]Event, error) {
	b.mu.Lock()
	data := append([]byte(nil), b.buf.Bytes()...)
	b.mu.Unlock()

	var out []Event
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		var ev Event
		if err := json.Unmarshal(sc.Bytes(), &ev); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

// has is safe to call from require.Eventually's polling goroutine.
func (b *syncBuffer) has(match func(Event) bool) bool {
	events, err := b.parse()
	if err != nil {
		return false
	}
	for _, ev := range events {
		if match(ev) {
			return true
		}
	}
	return false
}

type staticRecognizer struct{ res *ocr.Result }

func (r staticRecognizer) Recognize(context.Context, image.Image) (*ocr.Result, error) {
	return r.res, nil
}

func newDispatcher(t *testing.T, view app.View) *app.Dispatcher {
	t.Helper()
	nop := zerolog.Nop()
	noCamera := func(int) (source.Device, error) { return nil, source.ErrCameraUnavailable }
	s := session.New(session.Options{CanvasWidth: 800, CanvasHeight: 600, Logger: &nop},
		noCamera, overlay.New(overlay.DefaultOptions()))
	rec := staticRecognizer{res: &ocr.Result{
		Text:  "INVOICE 42\n",
		Words: []ocr.Word{{Text: "INVOICE", Confidence: 93, Bounds: image.Rect(4, 4, 60, 20)}},
	}}
	return app.New(s, rec, view, app.Options{Logger: &nop})
}

func writeTestPNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	path := filepath.Join(dir, "page.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestServe_Session(t *testing.T) {
	dir := t.TempDir()
	framesDir := filepath.Join(dir, "frames")
	imgPath := writeTestPNG(t, dir, 1600, 1200)
	textPath := filepath.Join(dir, "out.txt")

	inR, inW := io.Pipe()
	out := &syncBuffer{}
	sh := New(inR, out, framesDir)
	d := newDispatcher(t, sh)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- sh.Serve(ctx, d) }()

	send := func(line string) {
		t.Helper()
		_, err := fmt.Fprintln(inW, line)
		require.NoError(t, err)
	}

	send(fmt.Sprintf(`{"cmd":"load","path":%q}`, imgPath))
	send(`{"cmd":"press","x":10,"y":10}`)
	send(`{"cmd":"move","x":60,"y":30}`)
	send(`{"cmd":"release","x":110,"y":60}`)
	send(`{"cmd":"extract"}`)

	require.Eventually(t, func() bool {
		return out.has(func(ev Event) bool { return ev.Event == "text" })
	}, 5*time.Second, 10*time.Millisecond)

	send(fmt.Sprintf(`{"cmd":"save","path":%q}`, textPath))
	require.Eventually(t, func() bool {
		return out.has(func(ev Event) bool { return ev.Event == "notice" && ev.Message == "text saved" })
	}, 5*time.Second, 10*time.Millisecond)

	send(`{"cmd":"quit"}`)
	require.NoError(t, <-done)
	_ = inW.Close()

	events := out.events(t)
	var frames, busy []Event
	var selections []Event
	for _, ev := range events {
		switch ev.Event {
		case "frame":
			frames = append(frames, ev)
		case "busy":
			busy = append(busy, ev)
		case "selection":
			selections = append(selections, ev)
		case "text":
			require.NotNil(t, ev.Text)
			assert.Equal(t, "INVOICE 42\n", *ev.Text)
		}
	}

	require.NotEmpty(t, frames)
	assert.Equal(t, 800, frames[0].Width)
	assert.Equal(t, 600, frames[0].Height)
	for _, f := range frames {
		_, err := os.Stat(f.Path)
		assert.NoError(t, err, "frame file %s", f.Path)
	}
	assert.True(t, strings.HasPrefix(frames[0].Path, framesDir))

	require.Len(t, busy, 2)
	assert.True(t, *busy[0].Busy)
	assert.False(t, *busy[1].Busy)

	var visible int
	for _, s := range selections {
		require.NotNil(t, s.Visible)
		if *s.Visible {
			visible++
		}
	}
	assert.Equal(t, 2, visible, "press and move show the rubber band")

	data, err := os.ReadFile(textPath)
	require.NoError(t, err)
	assert.Equal(t, "INVOICE 42\n", string(data))
}

func TestServe_ProtocolErrorsAndEOF(t *testing.T) {
	dir := t.TempDir()
	in := strings.NewReader("not json\n\n{\"cmd\":\"explode\"}\n{\"cmd\":\"save\",\"path\":\"x.txt\"}\n")
	out := &syncBuffer{}
	sh := New(in, out, filepath.Join(dir, "frames"))
	d := newDispatcher(t, sh)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, sh.Serve(ctx, d))

	events := out.events(t)
	require.Len(t, events, 3)
	assert.Equal(t, "error", events[0].Event)
	assert.Equal(t, CodeParseError, events[0].Code)
	assert.Equal(t, "error", events[1].Event)
	assert.Equal(t, CodeUnknownCmd, events[1].Code)
	assert.Equal(t, "notice", events[2].Event)
	assert.Equal(t, "warning", events[2].Level)
}

func TestServe_CameraUnavailableIsNotice(t *testing.T) {
	dir := t.TempDir()
	in := strings.NewReader(`{"cmd":"start_camera"}` + "\n")
	out := &syncBuffer{}
	sh := New(in, out, filepath.Join(dir, "frames"))
	d := newDispatcher(t, sh)

	require.NoError(t, sh.Serve(context.Background(), d))

	events := out.events(t)
	require.Len(t, events, 1)
	assert.Equal(t, "notice", events[0].Event)
	assert.Equal(t, "error", events[0].Level)
	assert.Contains(t, events[0].Message, "camera")
}
