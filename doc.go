// Package swrast implements a CPU software rasterizer exposed as a small
// renderer facade: upload meshes and textures, add lights, position a
// camera, and render frames through a fixed-function pipeline (vertex
// transform, clip, cull, rasterize, depth test, shade, blend) onto a
// double-buffered framebuffer.
//
// # Quick start
//
//	r, err := swrast.NewRenderer(640, 480, 4, 0)
//	meshID, err := r.UploadMesh(vertices, indices)
//	texID, err := r.UploadTexture(w, h, 4, pixels)
//	var identity vmath.M4
//	identity.I()
//	model := swrast.NewModel(identity)
//	model.AddSubmesh(swrast.Submesh{
//		MeshID:   meshID,
//		Material: shader.Material{DiffuseTex: texID, KA: 0.1, KD: 0.9, KS: 0.4, Shininess: 32},
//		Program:  shader.Program{Vertex: shader.DefaultVertexShader, Fragment: shader.BlinnPhongFragmentShader},
//	})
//	r.AddModel(model)
//	r.SetCamera(viewProj, viewerPos)
//	r.RenderFrame()
//	rgb := r.CommitRenderedColorBuffer()
//
// # Resource lifecycle
//
// Meshes, textures, and lights are uploaded or added between frames; the
// pipeline treats them as read-only during RenderFrame (see DESIGN.md).
// There is no release/free step: the renderer owns everything it was
// given an id for until the process exits.
//
// # Thread safety
//
// Renderer is not safe for concurrent calls to RenderFrame, UploadMesh,
// UploadTexture, AddLight, or AddModel; callers serialize frame
// production. RenderFrame itself fans work out across a worker pool
// internally (see package scheduler).
package swrast
