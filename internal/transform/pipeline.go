// Package transform implements the conversion pipeline: an ordered queue of
// transforms applied strictly in sequence to one shared document.
package transform

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"go.uber.org/zap"

	"github.com/wolfe-labs/DU-Mesh-Transformer/internal/config"
	"github.com/wolfe-labs/DU-Mesh-Transformer/internal/itemdb"
	"github.com/wolfe-labs/DU-Mesh-Transformer/internal/texture"
)

// State is the shared context every transform reads and mutates. It lives
// for one conversion run; no transform retains it past its own invocation.
type State struct {
	Doc      *gltf.Document
	Items    *itemdb.Table
	Resolver *texture.Resolver
	Convert  config.ConvertConfig
	Observer Observer

	// AxisSwapped records that the up-axis swap ran, so the UV projector
	// keeps its projections consistent.
	AxisSwapped bool
}

// Transform mutates the document in one self-contained step.
type Transform interface {
	Name() string
	Apply(s *State) error
}

// Observer receives progress notifications at defined points, in order.
type Observer interface {
	TransformStart(name string)
	TransformFinish(name string)
	Island(material string, triangles int, structural bool)
	Texture(path string, cached bool)
	Warn(msg string)
}

// NopObserver discards all notifications.
type NopObserver struct{}

func (NopObserver) TransformStart(string)    {}
func (NopObserver) TransformFinish(string)   {}
func (NopObserver) Island(string, int, bool) {}
func (NopObserver) Texture(string, bool)     {}
func (NopObserver) Warn(string)              {}

// ZapObserver logs notifications through a zap logger.
type ZapObserver struct {
	Log *zap.Logger
}

func (o ZapObserver) TransformStart(name string) {
	o.Log.Info("transform start", zap.String("transform", name))
}

func (o ZapObserver) TransformFinish(name string) {
	o.Log.Info("transform finish", zap.String("transform", name))
}

func (o ZapObserver) Island(material string, triangles int, structural bool) {
	o.Log.Debug("island",
		zap.String("material", material),
		zap.Int("triangles", triangles),
		zap.Bool("structural", structural))
}

func (o ZapObserver) Texture(path string, cached bool) {
	o.Log.Debug("texture", zap.String("path", path), zap.Bool("cached", cached))
}

func (o ZapObserver) Warn(msg string) {
	o.Log.Warn(msg)
}

// Pipeline is an ordered transform queue.
type Pipeline struct {
	transforms []Transform
}

// New builds a pipeline from transform names as configured. Unknown names
// are a configuration error.
func New(names []string) (*Pipeline, error) {
	p := &Pipeline{}
	for _, name := range names {
		tr, err := byName(name)
		if err != nil {
			return nil, err
		}
		p.transforms = append(p.transforms, tr)
	}
	return p, nil
}

func byName(name string) (Transform, error) {
	switch name {
	case "swapaxis":
		return &SwapUpAxis{}, nil
	case "basecolors":
		return &BaseColors{}, nil
	case "textures":
		return &Textures{}, nil
	case "uvs":
		return &GenerateUVs{}, nil
	case "emissive":
		return &Emissive{}, nil
	case "separate":
		return &SeparateElements{}, nil
	default:
		return nil, fmt.Errorf("transform: unknown transform %q", name)
	}
}

// Run applies every transform in sequence. The first error aborts the
// remaining queue; nothing is written in that case.
func (p *Pipeline) Run(s *State) error {
	if s.Observer == nil {
		s.Observer = NopObserver{}
	}
	for _, tr := range p.transforms {
		s.Observer.TransformStart(tr.Name())
		if err := tr.Apply(s); err != nil {
			return fmt.Errorf("transform %s: %w", tr.Name(), err)
		}
		s.Observer.TransformFinish(tr.Name())
	}
	return nil
}
