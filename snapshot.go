package aframe

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-aframe/internal/fileutil"
)

// Snapshot defaults. WebGL scenes need a settle period after load
// before the first frame is worth capturing.
const (
	DefaultSnapshotWidth  = 1280
	DefaultSnapshotHeight = 800
	DefaultSnapshotSettle = 1500 * time.Millisecond

	defaultSnapshotTimeout = 30 * time.Second
)

// SnapshotOptions configures one capture.
type SnapshotOptions struct {
	Width  int           // viewport width in pixels (0 = default)
	Height int           // viewport height in pixels (0 = default)
	Settle time.Duration // wait after page load before capture (0 = default)
}

// sceneRenderer abstracts the document source for a capture, so tests
// can snapshot fixed markup without composing a full Scene.
type sceneRenderer interface {
	Render() (string, error)
}

// Compile-time interface check.
var _ sceneRenderer = (*Scene)(nil)

// Snapshotter captures PNG screenshots of rendered scenes in headless
// Chrome. The browser connects lazily on first capture and is reused
// until Close.
type Snapshotter struct {
	browser *rod.Browser
	timeout time.Duration
}

// SnapshotterOption configures a Snapshotter.
type SnapshotterOption func(*Snapshotter)

// WithSnapshotTimeout sets the page-load timeout. Panics if d <= 0
// (programmer error, similar to time.NewTicker).
func WithSnapshotTimeout(d time.Duration) SnapshotterOption {
	if d <= 0 {
		panic("aframe: WithSnapshotTimeout duration must be positive")
	}
	return func(s *Snapshotter) {
		s.timeout = d
	}
}

// NewSnapshotter creates a Snapshotter with default configuration.
func NewSnapshotter(opts ...SnapshotterOption) *Snapshotter {
	s := &Snapshotter{timeout: defaultSnapshotTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ensureBrowser lazily connects to the browser.
func (s *Snapshotter) ensureBrowser() error {
	if s.browser != nil {
		return nil
	}

	l := launcher.New()

	// Pre-installed browser for Docker/containerized environments.
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments.
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	s.browser = rod.New().ControlURL(u)
	if err := s.browser.Connect(); err != nil {
		s.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (s *Snapshotter) Close() error {
	if s.browser != nil {
		err := s.browser.Close()
		s.browser = nil
		return err
	}
	return nil
}

// Capture renders the scene, loads it in headless Chrome, and returns
// a PNG screenshot. Pass nil opts for defaults.
func (s *Snapshotter) Capture(ctx context.Context, scene sceneRenderer, opts *SnapshotOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := scene.Render()
	if err != nil {
		return nil, err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(doc, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return s.captureFromFile(ctx, tmpPath, opts)
}

// captureFromFile opens a local HTML file and screenshots the
// viewport after the settle period.
func (s *Snapshotter) captureFromFile(ctx context.Context, filePath string, opts *SnapshotOptions) ([]byte, error) {
	if err := s.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := s.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	width, height, settle := resolveSnapshotOptions(opts)
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, fmt.Errorf("%w: setting viewport: %v", ErrSnapshot, err)
	}

	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(settle):
	}

	png, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshot, err)
	}
	return png, nil
}

// resolveSnapshotOptions applies defaults for unset fields.
func resolveSnapshotOptions(opts *SnapshotOptions) (width, height int, settle time.Duration) {
	width = DefaultSnapshotWidth
	height = DefaultSnapshotHeight
	settle = DefaultSnapshotSettle
	if opts == nil {
		return width, height, settle
	}
	if opts.Width > 0 {
		width = opts.Width
	}
	if opts.Height > 0 {
		height = opts.Height
	}
	if opts.Settle > 0 {
		settle = opts.Settle
	}
	return width, height, settle
}
