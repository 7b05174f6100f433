// Package assets handles game asset loading and caching.
package assets

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/wildwest/internal/engine/model"
	"github.com/Faultbox/wildwest/internal/engine/terrain"
	"github.com/Faultbox/wildwest/internal/engine/texture"
	"github.com/Faultbox/wildwest/internal/logger"
)

// Uploader moves decoded assets onto the GPU.
type Uploader interface {
	UploadGeometry(vertices []model.Vertex, indices []uint32) (model.Buffers, error)
	UploadTexture(img *image.RGBA) uint32
	UploadCubemap(faces [6]*image.RGBA) uint32
}

// Loader reads assets from a directory tree. Files are read once and
// kept in the cache; meshes and textures are uploaded once per path.
type Loader struct {
	root string
	up   Uploader
	log  *zap.Logger

	cache *Cache

	mu       sync.Mutex
	meshes   map[string]*model.Mesh
	textures map[string]uint32
	white    uint32
}

// NewLoader creates a loader rooted at dir.
func NewLoader(root string, up Uploader) *Loader {
	return &Loader{
		root:     root,
		up:       up,
		log:      logger.Named("assets"),
		cache:    NewCache(),
		meshes:   make(map[string]*model.Mesh),
		textures: make(map[string]uint32),
	}
}

// Root returns the asset directory.
func (l *Loader) Root() string {
	return l.root
}

// Load reads a file relative to the root.
func (l *Loader) Load(path string) ([]byte, error) {
	if data, ok := l.cache.Get(path); ok {
		return data, nil
	}

	data, err := os.ReadFile(filepath.Join(l.root, filepath.FromSlash(path)))
	if err != nil {
		return nil, fmt.Errorf("file not found: %s: %w", path, err)
	}
	l.cache.Set(path, data)
	return data, nil
}

// Image loads and decodes an image file.
func (l *Loader) Image(path string) (image.Image, error) {
	data, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	return texture.Decode(data, path)
}

// HeightField loads a grayscale heightmap.
func (l *Loader) HeightField(path string) (*terrain.HeightField, error) {
	img, err := l.Image(path)
	if err != nil {
		return nil, err
	}
	field, err := terrain.HeightFieldFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.log.Debug("heightmap loaded",
		zap.String("path", path),
		zap.Int("width", field.Width),
		zap.Int("height", field.Height),
	)
	return field, nil
}

// Texture loads an image and uploads it as a 2D texture.
func (l *Loader) Texture(path string) (uint32, error) {
	l.mu.Lock()
	tex, ok := l.textures[path]
	l.mu.Unlock()
	if ok {
		return tex, nil
	}

	img, err := l.Image(path)
	if err != nil {
		return 0, err
	}
	tex = l.up.UploadTexture(texture.ToRGBA(img))

	l.mu.Lock()
	l.textures[path] = tex
	l.mu.Unlock()
	return tex, nil
}

// Cubemap loads six faces in +X, -X, +Y, -Y, +Z, -Z order and uploads
// them as one cube map. All faces must be square and the same size.
func (l *Loader) Cubemap(faces [6]string) (uint32, error) {
	var imgs [6]*image.RGBA
	for i, path := range faces {
		img, err := l.Image(path)
		if err != nil {
			return 0, err
		}
		imgs[i] = texture.ToRGBA(img)
		size := imgs[i].Rect.Size()
		if size.X != size.Y || size != imgs[0].Rect.Size() {
			return 0, fmt.Errorf("cube face %s is %dx%d, want square faces of one size", path, size.X, size.Y)
		}
	}
	return l.up.UploadCubemap(imgs), nil
}

// White returns a 1x1 white texture bound for untextured parts, since
// every entity shader samples its diffuse map.
func (l *Loader) White() uint32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.white == 0 {
		l.white = l.up.UploadTexture(texture.Solid(255, 255, 255, 255))
	}
	return l.white
}

// Mesh loads a glTF/GLB model and uploads every triangle primitive as a
// component. Meshes are shared: loading a path twice returns the same
// *model.Mesh.
func (l *Loader) Mesh(path string) (*model.Mesh, error) {
	l.mu.Lock()
	m, ok := l.meshes[path]
	l.mu.Unlock()
	if ok {
		return m, nil
	}

	parts, err := ReadGLTF(filepath.Join(l.root, filepath.FromSlash(path)))
	if err != nil {
		return nil, err
	}

	m = &model.Mesh{Name: path, Bounds: model.EmptyBounds()}
	for _, p := range parts {
		buf, err := l.up.UploadGeometry(p.Geometry.Vertices, p.Geometry.Indices)
		if err != nil {
			return nil, fmt.Errorf("%s: part %s: %w", path, p.Name, err)
		}
		var tex uint32
		if p.Image != nil {
			tex = l.up.UploadTexture(texture.ToRGBA(p.Image))
		} else {
			tex = l.White()
		}
		m.Components = append(m.Components, model.Component{
			Name:     p.Name,
			Buffers:  buf,
			Texture:  tex,
			Material: p.Material,
		})
		m.Bounds.Union(p.Geometry.Bounds())
	}

	l.log.Debug("mesh loaded",
		zap.String("path", path),
		zap.Int("components", len(m.Components)),
	)

	l.mu.Lock()
	l.meshes[path] = m
	l.mu.Unlock()
	return m, nil
}

// Close drops every cached file and handle. GPU objects are owned by the
// uploader.
func (l *Loader) Close() {
	hits, misses := l.cache.Stats()
	l.log.Debug("asset cache closed", zap.Int("hits", hits), zap.Int("misses", misses))

	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache.Clear()
	l.meshes = make(map[string]*model.Mesh)
	l.textures = make(map[string]uint32)
	l.white = 0
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
