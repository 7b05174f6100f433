package assets

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/wildwest/internal/engine/model"
	"github.com/Faultbox/wildwest/internal/engine/texture"
)

// Part is one decoded glTF primitive, ready for upload.
type Part struct {
	Name     string
	Geometry model.Geometry
	Material model.Material
	Image    image.Image // base colour texture, nil when untextured
}

// ReadGLTF opens a .gltf or .glb file and decodes its meshes.
func ReadGLTF(path string) ([]Part, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	parts, err := DecodeGLTF(doc, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return parts, nil
}

// DecodeGLTF converts every triangle primitive reachable from the
// document's default scene into a Part, with node transforms baked into
// positions and normals. A document whose scene places no meshes is read
// mesh by mesh, untransformed. External image URIs are resolved against
// dir. Texture coordinates keep the glTF top-left origin because images
// are uploaded top row first.
func DecodeGLTF(doc *gltf.Document, dir string) ([]Part, error) {
	d := &decoder{doc: doc, dir: dir, images: make(map[int]image.Image), meshes: make(map[int][]Part)}

	instances := sceneMeshes(doc)
	if len(instances) == 0 {
		for mi := range doc.Meshes {
			instances = append(instances, meshInstance{mesh: mi, transform: identity4})
		}
	}

	var parts []Part
	for _, in := range instances {
		mesh, err := d.mesh(in.mesh)
		if err != nil {
			return nil, err
		}
		for _, part := range mesh {
			if in.transform != identity4 {
				part.Geometry = transformGeometry(part.Geometry, in.transform)
			}
			parts = append(parts, part)
		}
	}

	if len(parts) == 0 {
		return nil, fmt.Errorf("no triangle primitives")
	}
	return parts, nil
}

type decoder struct {
	doc    *gltf.Document
	dir    string
	images map[int]image.Image
	meshes map[int][]Part
}

// mesh decodes one glTF mesh once; instances share the result.
func (d *decoder) mesh(mi int) ([]Part, error) {
	if parts, ok := d.meshes[mi]; ok {
		return parts, nil
	}
	doc := d.doc
	m := doc.Meshes[mi]

	var parts []Part
	for pi, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		geom, err := readGeometry(doc, prim, posIdx)
		if err != nil {
			return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
		}

		name := m.Name
		if name == "" {
			name = fmt.Sprintf("mesh%d", mi)
		}
		if len(m.Primitives) > 1 {
			name = fmt.Sprintf("%s.%d", name, pi)
		}

		part := Part{Name: name, Geometry: geom, Material: model.DefaultMaterial()}
		if prim.Material != nil && *prim.Material < len(doc.Materials) {
			mat := doc.Materials[*prim.Material]
			part.Material = phongMaterial(mat)
			if src, ok := baseColorImage(doc, mat); ok {
				img, seen := d.images[src]
				if !seen {
					img, err = readImage(doc, src, d.dir)
					if err != nil {
						return nil, fmt.Errorf("mesh %d image %d: %w", mi, src, err)
					}
					d.images[src] = img
				}
				part.Image = img
			}
		}
		parts = append(parts, part)
	}
	d.meshes[mi] = parts
	return parts, nil
}

func readGeometry(doc *gltf.Document, prim *gltf.Primitive, posIdx int) (model.Geometry, error) {
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return model.Geometry{}, fmt.Errorf("read positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return model.Geometry{}, fmt.Errorf("read normals: %w", err)
		}
	}

	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return model.Geometry{}, fmt.Errorf("read uvs: %w", err)
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		if indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
			return model.Geometry{}, fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions)-len(positions)%3)
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	for _, i := range indices {
		if int(i) >= len(positions) {
			return model.Geometry{}, fmt.Errorf("index %d out of range (%d vertices)", i, len(positions))
		}
	}

	g := model.Geometry{Vertices: make([]model.Vertex, len(positions)), Indices: indices}
	for i, p := range positions {
		g.Vertices[i].Position = p
		if i < len(normals) {
			g.Vertices[i].Normal = normals[i]
		}
		if i < len(uvs) {
			g.Vertices[i].TexCoord = uvs[i]
		}
	}
	if len(normals) < len(positions) {
		faceNormals(&g)
	}
	return g, nil
}

// faceNormals accumulates triangle normals into each vertex.
func faceNormals(g *model.Geometry) {
	for i := range g.Vertices {
		g.Vertices[i].Normal = [3]float32{}
	}
	for t := 0; t+2 < len(g.Indices); t += 3 {
		a := g.Vertices[g.Indices[t]].Position
		b := g.Vertices[g.Indices[t+1]].Position
		c := g.Vertices[g.Indices[t+2]].Position
		e1 := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
		e2 := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
		n := [3]float32{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}
		for k := 0; k < 3; k++ {
			v := &g.Vertices[g.Indices[t+k]]
			v.Normal[0] += n[0]
			v.Normal[1] += n[1]
			v.Normal[2] += n[2]
		}
	}
	for i := range g.Vertices {
		n := &g.Vertices[i].Normal
		l := float32(math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])))
		if l > 0 {
			n[0], n[1], n[2] = n[0]/l, n[1]/l, n[2]/l
		}
	}
}

// phongMaterial approximates a metallic-roughness material. Rough
// surfaces get a dull, wide highlight; metals tint it with the base
// colour.
func phongMaterial(mat *gltf.Material) model.Material {
	base := [4]float64{1, 1, 1, 1}
	metallic, roughness := 1.0, 1.0
	if pbr := mat.PBRMetallicRoughness; pbr != nil {
		base = pbr.BaseColorFactorOrDefault()
		metallic = pbr.MetallicFactorOrDefault()
		roughness = pbr.RoughnessFactorOrDefault()
	}

	var m model.Material
	gloss := 1 - roughness
	for i := 0; i < 3; i++ {
		m.Diffuse[i] = float32(base[i] * (1 - metallic*0.5))
		m.Ambient[i] = float32(base[i])
		m.Specular[i] = float32((0.04*(1-metallic) + base[i]*metallic) * gloss)
		m.Emission[i] = float32(mat.EmissiveFactor[i])
	}

	// Blinn-Phong exponent from roughness, clamped to a usable range.
	r4 := math.Max(roughness*roughness*roughness*roughness, 1e-4)
	m.Shininess = float32(math.Min(math.Max(2/r4-2, 1), 256))
	return m
}

func baseColorImage(doc *gltf.Document, mat *gltf.Material) (int, bool) {
	pbr := mat.PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorTexture == nil {
		return 0, false
	}
	ti := pbr.BaseColorTexture.Index
	if ti < 0 || ti >= len(doc.Textures) || doc.Textures[ti].Source == nil {
		return 0, false
	}
	src := *doc.Textures[ti].Source
	if src < 0 || src >= len(doc.Images) {
		return 0, false
	}
	return src, true
}

func readImage(doc *gltf.Document, idx int, dir string) (image.Image, error) {
	img := doc.Images[idx]
	name := img.Name
	var data []byte

	switch {
	case img.BufferView != nil:
		bv := doc.BufferViews[*img.BufferView]
		buf := doc.Buffers[bv.Buffer]
		end := bv.ByteOffset + bv.ByteLength
		if end > len(buf.Data) {
			return nil, fmt.Errorf("image buffer view out of range")
		}
		data = buf.Data[bv.ByteOffset:end]
	case img.IsEmbeddedResource():
		var err error
		if data, err = img.MarshalData(); err != nil {
			return nil, err
		}
	case img.URI != "":
		var err error
		if data, err = os.ReadFile(filepath.Join(dir, filepath.FromSlash(img.URI))); err != nil {
			return nil, err
		}
		name = img.URI
	default:
		return nil, fmt.Errorf("image has no data")
	}

	return texture.Decode(data, name)
}
