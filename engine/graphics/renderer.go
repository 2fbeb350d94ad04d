package graphics

import "github.com/pepijnd/planetary/logger"

// Invalid names the two cached artifacts a Renderer can be told to rebuild.
type Invalid int

const (
	// InvalidPipeline forces a pipeline rebuild on the next Update. Rebuilding
	// the pipeline always rebuilds the bundle too, since bundles record
	// against a specific pipeline.
	InvalidPipeline Invalid = iota

	// InvalidBundle forces only a bundle re-record on the next Update.
	InvalidBundle
)

// Pipeline is a renderable unit managed by a Renderer: a render pipeline plus
// a render bundle recorded against it. Implementations own their shader
// modules, bind groups and draw state; the Renderer only decides when the two
// rebuild hooks run.
type Pipeline interface {
	// DataID identifies the revision of the data the bundle draws from. When
	// it changes between Updates the bundle is re-recorded. Buffer
	// reallocation generations are the usual source.
	DataID() uint64

	// RebuildPipeline recreates the render pipeline for the given sample
	// count.
	//
	// Parameters:
	//   - state: the shared GPU handles
	//   - samples: the MSAA sample count the pipeline must target
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RebuildPipeline(state *State, samples uint32) error

	// RebuildBundle re-records the render bundle against the current
	// pipeline and buffers.
	//
	// Parameters:
	//   - state: the shared GPU handles
	//
	// Returns:
	//   - error: an error if bundle recording fails
	RebuildBundle(state *State) error
}

// Renderer caches a Pipeline's two derived artifacts and rebuilds each only
// when invalidated. The validity rules are:
//
//   - a DataID change invalidates the bundle
//   - an explicit InvalidPipeline (or the first Update) rebuilds the
//     pipeline, which in turn invalidates the bundle
//   - an explicit InvalidBundle re-records just the bundle
//
// Renderer is not safe for concurrent use; the editor drives it from the
// render loop only.
type Renderer[P Pipeline] struct {
	pipeline P

	pipelineValid bool
	bundleValid   bool
	lastID        uint64
}

// NewRenderer wraps p with everything invalid, so the first Update builds
// both pipeline and bundle.
func NewRenderer[P Pipeline](p P) *Renderer[P] {
	return &Renderer[P]{pipeline: p}
}

// Pipeline returns the wrapped pipeline for drawing and data updates.
func (r *Renderer[P]) Pipeline() P {
	return r.pipeline
}

// Invalidate marks an artifact for rebuild on the next Update.
func (r *Renderer[P]) Invalidate(what Invalid) {
	switch what {
	case InvalidPipeline:
		r.pipelineValid = false
	case InvalidBundle:
		r.bundleValid = false
	}
}

// Update brings the cached pipeline and bundle up to date, rebuilding only
// what is invalid. Call once per frame before drawing.
//
// Parameters:
//   - state: the shared GPU handles
//   - samples: the MSAA sample count to build the pipeline against
//
// Returns:
//   - error: the first rebuild error, leaving the failed artifact invalid so
//     the next Update retries
func (r *Renderer[P]) Update(state *State, samples uint32) error {
	if id := r.pipeline.DataID(); id != r.lastID {
		r.lastID = id
		r.bundleValid = false
	}

	if !r.pipelineValid {
		logger.Sugar.Debugw("rebuilding render pipeline", "samples", samples)
		if err := r.pipeline.RebuildPipeline(state, samples); err != nil {
			return err
		}
		r.pipelineValid = true
		r.bundleValid = false
	}

	if !r.bundleValid {
		if err := r.pipeline.RebuildBundle(state); err != nil {
			return err
		}
		r.bundleValid = true
	}

	return nil
}
