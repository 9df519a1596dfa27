package raster

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/roffe/txgauge/pkg/primitive"
)

type faceKey struct {
	source string
	size   float64
}

// Fonts maps primitive fonts onto the embedded Go font family. Faces are
// cached per pixel size.
type Fonts struct {
	mu      sync.Mutex
	sources map[string]*text.FontSource
	faces   map[faceKey]text.Face
}

func LoadGoFonts() (*Fonts, error) {
	f := &Fonts{
		sources: make(map[string]*text.FontSource, 4),
		faces:   make(map[faceKey]text.Face),
	}
	for name, ttf := range map[string][]byte{
		"regular":   goregular.TTF,
		"bold":      gobold.TTF,
		"mono":      gomono.TTF,
		"mono-bold": gomonobold.TTF,
	} {
		src, err := text.NewFontSource(ttf)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("load font %s: %w", name, err)
		}
		f.sources[name] = src
	}
	return f, nil
}

func sourceName(font primitive.Font) string {
	name := "regular"
	if strings.Contains(strings.ToLower(font.Family), "mono") {
		name = "mono"
	}
	if font.Bold {
		if name == "regular" {
			return "bold"
		}
		return name + "-bold"
	}
	return name
}

// Face returns the face for font at the given scale.
func (f *Fonts) Face(font primitive.Font, scale float64) text.Face {
	size := math.Max(1, math.Round(font.Size*scale*4)/4)
	key := faceKey{source: sourceName(font), size: size}

	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.faces[key]; ok {
		return face
	}
	src, ok := f.sources[key.source]
	if !ok {
		return nil
	}
	face := src.Face(size)
	f.faces[key] = face
	return face
}

func (f *Fonts) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var errs []error
	for _, src := range f.sources {
		errs = append(errs, src.Close())
	}
	f.sources = nil
	f.faces = nil
	return errors.Join(errs...)
}
