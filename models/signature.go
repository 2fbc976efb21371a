package models

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/disintegration/imaging"
	"github.com/mmdatafocus/vendor_briefing/config"
	"github.com/sirupsen/logrus"
)

const (
	SignatureCanvasWidth  = 500
	SignatureCanvasHeight = 200

	MaxSignatureUploadBytes int64 = 5 * 1024 * 1024

	defaultPenWidth = 2.5
)

var (
	ErrEmptySignature  = errors.New("please provide a signature before saving")
	ErrInvalidType     = errors.New("please upload an image file")
	ErrFileTooLarge    = errors.New("file too large. Maximum size is 5MB")
	ErrCaptureBusy     = errors.New("a signature upload is already being processed")
	ErrUnreadableImage = errors.New("image could not be decoded")
	ErrWrongMethod     = errors.New("operation does not match the selected signature method")
)

// SignatureCaptureError is surfaced inline next to the signature pad; the user can retry.
type SignatureCaptureError struct {
	Op  string
	Err error
}

func (e *SignatureCaptureError) Error() string {
	return "signature " + e.Op + ": " + e.Err.Error()
}

func (e *SignatureCaptureError) Unwrap() error {
	return e.Err
}

type Point struct {
	X, Y float64
}

// SignatureFile is an uploaded file as declared by the client.
type SignatureFile struct {
	Name      string
	MediaType string
	Size      int64
	Open      func() (io.ReadCloser, error)
}

// SignatureCapture produces the signature image in one of two exclusive modes. Both modes end
// in the same PNG encoding so the renderer does not care how the image was obtained.
type SignatureCapture struct {
	method    SignatureMethod
	strokes   [][]Point
	image     []byte
	lastErr   error
	uploading atomic.Bool

	// PenWidth is the stroke width in canvas pixels.
	PenWidth float64
}

func NewSignatureCapture(method SignatureMethod) *SignatureCapture {
	if !method.IsValid() {
		method = SignatureMethodDrawn
	}
	return &SignatureCapture{method: method, PenWidth: defaultPenWidth}
}

func (c *SignatureCapture) Method() SignatureMethod { return c.method }

// ImageData is the last successfully captured PNG, or nil.
func (c *SignatureCapture) ImageData() []byte { return c.image }

// LastError is the inline error of the last failed attempt, cleared on success.
func (c *SignatureCapture) LastError() error { return c.lastErr }

// SetMethod switches modes. The modes share no state: switching drops strokes, image and error.
func (c *SignatureCapture) SetMethod(m SignatureMethod) error {
	if !m.IsValid() {
		return fmt.Errorf("invalid signature method %q", m)
	}
	if m == c.method {
		return nil
	}
	c.method = m
	c.reset()
	return nil
}

// AddStroke records one pen-down..pen-up path on the canvas. Points outside the canvas are
// clamped to its edge.
func (c *SignatureCapture) AddStroke(points ...Point) error {
	if c.method != SignatureMethodDrawn {
		return c.fail("draw", ErrWrongMethod)
	}
	if len(points) == 0 {
		return nil
	}
	stroke := make([]Point, len(points))
	for i, p := range points {
		stroke[i] = Point{
			X: clamp(p.X, 0, SignatureCanvasWidth-1),
			Y: clamp(p.Y, 0, SignatureCanvasHeight-1),
		}
	}
	c.strokes = append(c.strokes, stroke)
	return nil
}

func (c *SignatureCapture) IsEmpty() bool {
	return len(c.strokes) == 0
}

// Save rasterizes the drawn strokes into a PNG.
func (c *SignatureCapture) Save() error {
	if c.method != SignatureMethodDrawn {
		return c.fail("save", ErrWrongMethod)
	}
	if c.IsEmpty() {
		return c.fail("save", ErrEmptySignature)
	}
	canvas := imaging.New(SignatureCanvasWidth, SignatureCanvasHeight, color.White)
	for _, stroke := range c.strokes {
		drawStroke(canvas, stroke, c.PenWidth)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return c.fail("save", err)
	}
	c.image = buf.Bytes()
	c.lastErr = nil
	return nil
}

// Clear discards strokes and the stored image.
func (c *SignatureCapture) Clear() {
	c.reset()
}

// Upload validates and decodes an uploaded image. Only one upload may be in flight per capture.
// On failure any previously captured image is kept.
func (c *SignatureCapture) Upload(ctx context.Context, file SignatureFile) error {
	if c.method != SignatureMethodUploaded {
		return c.fail("upload", ErrWrongMethod)
	}
	if !c.uploading.CompareAndSwap(false, true) {
		return &SignatureCaptureError{Op: "upload", Err: ErrCaptureBusy}
	}
	defer c.uploading.Store(false)

	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(file.MediaType)), "image/") {
		return c.fail("upload", ErrInvalidType)
	}
	if file.Size > MaxSignatureUploadBytes {
		return c.fail("upload", ErrFileTooLarge)
	}
	if file.Open == nil {
		return c.fail("upload", ErrUnreadableImage)
	}

	reader, err := file.Open()
	if err != nil {
		return c.fail("upload", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(io.LimitReader(reader, MaxSignatureUploadBytes+1))
	if err != nil {
		return c.fail("upload", err)
	}
	if int64(len(data)) > MaxSignatureUploadBytes {
		return c.fail("upload", ErrFileTooLarge)
	}
	if err := ctx.Err(); err != nil {
		return c.fail("upload", err)
	}

	encoded, err := normalizeSignatureImage(data)
	if err != nil {
		return c.fail("upload", err)
	}
	c.image = encoded
	c.lastErr = nil

	config.GetLogger().WithFields(logrus.Fields{
		"file_name":  file.Name,
		"media_type": file.MediaType,
		"size":       len(data),
	}).Info("[signature.upload]")
	return nil
}

// Apply writes the captured signature into the form's record.
func (c *SignatureCapture) Apply(f *Form) {
	f.record.Signature = Signature{
		Method:    c.method,
		ImageData: slices.Clone(c.image),
	}
}

func (c *SignatureCapture) reset() {
	c.strokes = nil
	c.image = nil
	c.lastErr = nil
}

func (c *SignatureCapture) fail(op string, err error) error {
	captureErr := &SignatureCaptureError{Op: op, Err: err}
	c.lastErr = captureErr
	return captureErr
}

// normalizeSignatureImage decodes any supported image, shrinks it to the canvas size and
// re-encodes it as PNG.
func normalizeSignatureImage(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}
	b := img.Bounds()
	if b.Dx() > SignatureCanvasWidth || b.Dy() > SignatureCanvasHeight {
		img = imaging.Fit(img, SignatureCanvasWidth, SignatureCanvasHeight, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawStroke stamps round pen dots along every segment of the stroke.
func drawStroke(dst *image.NRGBA, stroke []Point, width float64) {
	radius := math.Max(width/2, 0.5)
	if len(stroke) == 1 {
		stampDot(dst, stroke[0], radius)
		return
	}
	for i := 1; i < len(stroke); i++ {
		a, b := stroke[i-1], stroke[i]
		steps := int(math.Ceil(math.Hypot(b.X-a.X, b.Y-a.Y)/(radius/2))) + 1
		for s := 0; s <= steps; s++ {
			t := float64(s) / float64(steps)
			stampDot(dst, Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}, radius)
		}
	}
}

func stampDot(dst *image.NRGBA, p Point, radius float64) {
	bounds := dst.Bounds()
	minX, maxX := int(math.Floor(p.X-radius)), int(math.Ceil(p.X+radius))
	minY, maxY := int(math.Floor(p.Y-radius)), int(math.Ceil(p.Y+radius))
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if !(image.Point{X: x, Y: y}).In(bounds) {
				continue
			}
			dx, dy := float64(x)-p.X, float64(y)-p.Y
			if dx*dx+dy*dy <= radius*radius {
				dst.SetNRGBA(x, y, color.NRGBA{A: 255})
			}
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
