package resources

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/pepijnd/planetary/engine/graphics"
)

// Registry holds compiled shader modules and uploaded textures by name. It
// is constructed once at startup and handed by reference to the components
// that look resources up; there is no package-level shared state.
type Registry struct {
	shaders  map[string]*wgpu.ShaderModule
	textures map[string]*graphics.Texture
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		shaders:  make(map[string]*wgpu.ShaderModule),
		textures: make(map[string]*graphics.Texture),
	}
}

// CompileShader compiles WGSL source into a module stored under name.
// Re-registering a name replaces and releases the previous module.
//
// Parameters:
//   - state: the shared GPU handles
//   - name: the lookup key
//   - source: the WGSL source text
//
// Returns:
//   - error: an error if compilation fails
func (r *Registry) CompileShader(state *graphics.State, name, source string) error {
	module, err := state.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: source,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to compile shader %q: %w", name, err)
	}
	if old, ok := r.shaders[name]; ok {
		old.Release()
	}
	r.shaders[name] = module
	return nil
}

// Shader looks up a compiled module by name.
//
// Parameters:
//   - name: the key used at registration
//
// Returns:
//   - *wgpu.ShaderModule: the module
//   - error: an error if no module is registered under name
func (r *Registry) Shader(name string) (*wgpu.ShaderModule, error) {
	module, ok := r.shaders[name]
	if !ok {
		return nil, fmt.Errorf("no shader registered as %q", name)
	}
	return module, nil
}

// AddTexture stores a texture under name, releasing any previous holder of
// the name. The registry takes ownership.
func (r *Registry) AddTexture(name string, tex *graphics.Texture) {
	if old, ok := r.textures[name]; ok {
		old.Release()
	}
	r.textures[name] = tex
}

// Texture looks up a texture by name.
//
// Returns:
//   - *graphics.Texture: the texture
//   - error: an error if no texture is registered under name
func (r *Registry) Texture(name string) (*graphics.Texture, error) {
	tex, ok := r.textures[name]
	if !ok {
		return nil, fmt.Errorf("no texture registered as %q", name)
	}
	return tex, nil
}

// Release frees every registered resource and empties the registry.
func (r *Registry) Release() {
	for name, module := range r.shaders {
		module.Release()
		delete(r.shaders, name)
	}
	for name, tex := range r.textures {
		tex.Release()
		delete(r.textures, name)
	}
}
