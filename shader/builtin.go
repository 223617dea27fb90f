package shader

import (
	"github.com/chewxy/math32"

	"github.com/swrast-go/swrast/raster"
	"github.com/swrast-go/swrast/vmath"
)

// DefaultVertexShader fills cpos = ViewProj . Model . pos_local and carries
// position, normal, tangent, and bitangent into world space. SPos and RHW
// are left zero; the scheduler's viewport transform stage fills those
// after the perspective divide.
func DefaultVertexShader(in raster.VertexInput, u *Uniforms) raster.VertexData {
	var out raster.VertexData

	wpos := u.Model.MulV4(vmath.Vec4(in.Position, 1))
	out.Pos = wpos.XYZ()
	out.CPos = u.ViewProj.MulV4(wpos)

	var nor, tan, bit vmath.V3
	nor.MulM3(&u.Normal, in.Normal)
	tan.MulM3(&u.Normal, in.Tangent)
	bit.MulM3(&u.Normal, in.Bitangent)
	out.Nor, out.Tangent, out.Bitangent = nor, tan, bit

	out.Tex = in.Texcoord
	return out
}

// neutralWhite, neutralUp, and neutralZero are the per-binding-type
// fallbacks for an unbound texture: white for diffuse and specular, a
// packed "up" normal-map sample for the normal binding (unpacks to
// world-space up), and zero for glow.
var (
	neutralWhite = vmath.V4{1, 1, 1, 1}
	neutralUp    = vmath.V4{0.5, 0.5, 1, 1}
	neutralZero  = vmath.V4{0, 0, 0, 1}
)

// sampleBinding samples a texture binding, substituting neutral when id
// is unbound instead of treating it as an error.
func sampleBinding(u *Uniforms, id int, tex vmath.V2, lod float32, neutral vmath.V4) vmath.V4 {
	if _, ok := u.Textures.Get(id); !ok {
		return neutral
	}
	return u.Textures.Sample(id, tex[0], tex[1], lod, 0, 0)
}

// PassthroughFragmentShader outputs the interpolated normal, remapped
// into [0,1], as a debug visualization of vertex data flowing through
// the pipeline unshaded.
func PassthroughFragmentShader(f raster.FragmentData, _ *Uniforms, _, _ vmath.V2) vmath.V4 {
	var n vmath.V3
	n.Norm(f.Nor)
	return vmath.V4{n[0]*0.5 + 0.5, n[1]*0.5 + 0.5, n[2]*0.5 + 0.5, 1}
}

// TexturedFragmentShader samples the diffuse texture at the mip level
// selected from the UV derivatives.
func TexturedFragmentShader(f raster.FragmentData, u *Uniforms, dUVdx, dUVdy vmath.V2) vmath.V4 {
	lod := diffuseLOD(u, dUVdx, dUVdy)
	return sampleBinding(u, u.Material.DiffuseTex, f.Tex, lod, neutralWhite)
}

// AlphaBlendFragmentShader is identical to TexturedFragmentShader but
// scales output alpha by the material's transparency coefficient.
func AlphaBlendFragmentShader(f raster.FragmentData, u *Uniforms, dUVdx, dUVdy vmath.V2) vmath.V4 {
	c := TexturedFragmentShader(f, u, dUVdx, dUVdy)
	c[3] *= u.Material.Transparency
	return c
}

// PhongFragmentShader implements standard (non-Blinn) Phong shading:
// ambient + sum over lights of attenuation*cutoff*(diffuse+specular),
// tone-mapped and gamma-corrected.
func PhongFragmentShader(f raster.FragmentData, u *Uniforms, dUVdx, dUVdy vmath.V2) vmath.V4 {
	return shade(f, u, dUVdx, dUVdy, false)
}

// BlinnPhongFragmentShader is PhongFragmentShader's specular term
// computed with the halfway vector instead of the reflection vector.
func BlinnPhongFragmentShader(f raster.FragmentData, u *Uniforms, dUVdx, dUVdy vmath.V2) vmath.V4 {
	return shade(f, u, dUVdx, dUVdy, true)
}

// BlinnPhongNormalMapFragmentShader is BlinnPhongFragmentShader with the
// shading normal replaced by one sampled from the material's normal map,
// unpacked n = 2*sample - 1 and rotated into world space by the
// interpolated TBN frame.
func BlinnPhongNormalMapFragmentShader(f raster.FragmentData, u *Uniforms, dUVdx, dUVdy vmath.V2) vmath.V4 {
	lod := diffuseLOD(u, dUVdx, dUVdy)
	sample := sampleBinding(u, u.Material.NormalTex, f.Tex, lod, neutralUp)
	tangentN := vmath.V3{sample[0]*2 - 1, sample[1]*2 - 1, sample[2]*2 - 1}

	var t, b, n vmath.V3
	t.Norm(f.Tangent)
	b.Norm(f.Bitangent)
	n.Norm(f.Nor)

	worldN := vmath.V3{
		t[0]*tangentN[0] + b[0]*tangentN[1] + n[0]*tangentN[2],
		t[1]*tangentN[0] + b[1]*tangentN[1] + n[1]*tangentN[2],
		t[2]*tangentN[0] + b[2]*tangentN[1] + n[2]*tangentN[2],
	}

	f2 := f
	f2.Nor = worldN
	return shade(f2, u, dUVdx, dUVdy, true)
}

// lodPalette is the fixed color ramp LODVisualizeFragmentShader indexes
// into, one entry per mip level from 0 (finest) to 7 (coarsest).
var lodPalette = [8]vmath.V4{
	{0, 0, 1, 1},
	{0, 0.5, 1, 1},
	{0, 1, 1, 1},
	{0, 1, 0.5, 1},
	{0, 1, 0, 1},
	{1, 1, 0, 1},
	{1, 0.5, 0, 1},
	{1, 0, 0, 1},
}

// LODVisualizeFragmentShader outputs a palette color keyed by the
// computed mipmap level, for debugging texture minification.
func LODVisualizeFragmentShader(_ raster.FragmentData, u *Uniforms, dUVdx, dUVdy vmath.V2) vmath.V4 {
	lod := diffuseLOD(u, dUVdx, dUVdy)
	i := int(lod + 0.5)
	if i < 0 {
		i = 0
	}
	if i > 7 {
		i = 7
	}
	return lodPalette[i]
}

func diffuseLOD(u *Uniforms, dUVdx, dUVdy vmath.V2) float32 {
	tex, ok := u.Textures.Get(u.Material.DiffuseTex)
	if !ok {
		return 0
	}
	return mipLevel(dUVdx, dUVdy, tex.Width(), tex.Height())
}

// shade runs the shared Phong/Blinn-Phong accumulation loop.
func shade(f raster.FragmentData, u *Uniforms, dUVdx, dUVdy vmath.V2, blinn bool) vmath.V4 {
	lod := diffuseLOD(u, dUVdx, dUVdy)
	diffuseTex := sampleBinding(u, u.Material.DiffuseTex, f.Tex, lod, neutralWhite)
	specularTex := sampleBinding(u, u.Material.SpecularTex, f.Tex, lod, neutralWhite)

	mat := u.Material
	var n, viewDir vmath.V3
	n.Norm(f.Nor)
	var toViewer vmath.V3
	toViewer.Sub(u.ViewerPos, f.Pos)
	viewDir.Norm(toViewer)

	var color vmath.V3
	color[0] = mat.KA * diffuseTex[0]
	color[1] = mat.KA * diffuseTex[1]
	color[2] = mat.KA * diffuseTex[2]

	if u.Lit && u.Lights != nil {
		for i := 0; i < u.Lights.Len(); i++ {
			l := u.Lights.At(i)
			lightDir := l.DirectionFrom(f.Pos)
			atten := l.Attenuation(f.Pos) * l.Cutoff(lightDir)
			if atten <= 0 {
				continue
			}
			intensity := l.Intensity()

			diff := math32.Max(0, n.Dot(lightDir))
			var spec float32
			if diff > 0 {
				if blinn {
					var half vmath.V3
					var sum vmath.V3
					sum.Add(lightDir, viewDir)
					half.Norm(sum)
					spec = math32.Pow(math32.Max(0, n.Dot(half)), mat.Shininess)
				} else {
					reflect := reflectAbout(lightDir, n)
					spec = math32.Pow(math32.Max(0, reflect.Dot(viewDir)), mat.Shininess)
				}
			}

			for c := 0; c < 3; c++ {
				d := mat.KD * diff * diffuseTex[c]
				s := mat.KS * spec * specularTex[c]
				color[c] += atten * intensity[c] * (d + s)
			}
		}
	}

	glow := sampleBinding(u, u.Material.GlowTex, f.Tex, lod, neutralZero)
	for c := 0; c < 3; c++ {
		color[c] += mat.KE * glow[c]
	}

	mapped := toneMap(color, u.Exposure)
	return vmath.V4{mapped[0], mapped[1], mapped[2], diffuseTex[3]}
}

// reflectAbout returns incident reflected about unit normal n: the
// classic Phong reflection vector, pointing away from the surface.
func reflectAbout(incident, n vmath.V3) vmath.V3 {
	d := 2 * incident.Dot(n)
	return vmath.V3{
		d*n[0] - incident[0],
		d*n[1] - incident[1],
		d*n[2] - incident[2],
	}
}
