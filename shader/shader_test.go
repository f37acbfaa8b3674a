// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"math"
	"testing"

	"github.com/chewxy/math32"

	"github.com/gogpu/g3d"
)

// solidSampler returns the same color for every coordinate.
type solidSampler struct {
	color g3d.Vec4
}

func (s solidSampler) Sample(_, _ float32) g3d.Vec4 { return s.color }

func TestVertexStage_IdentityPassthrough(t *testing.T) {
	tests := []struct {
		name string
		v    g3d.Vertex
	}{
		{"origin", g3d.Vertex{Normal: g3d.V3(0, 1, 0)}},
		{"offset", g3d.Vertex{
			Position:  g3d.V3(1, -2, 3),
			TexCoords: g3d.V2(0.5, 0.5),
			Normal:    g3d.V3(0, 0, 1),
			Color:     g3d.V3(1, 0, 0),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := VertexStage(tt.v, IdentityTransforms())

			wantClip := tt.v.Position.FromPoint()
			if !out.ClipPosition.Approx(wantClip, 1e-6) {
				t.Errorf("clip = %v, want %v (w=1)", out.ClipPosition, wantClip)
			}
			if out.Varyings.Color != tt.v.Color {
				t.Errorf("color = %v, want %v", out.Varyings.Color, tt.v.Color)
			}
			if out.Varyings.TexCoords != tt.v.TexCoords {
				t.Errorf("texcoords = %v, want %v", out.Varyings.TexCoords, tt.v.TexCoords)
			}
			if !out.Varyings.Normal.Approx(tt.v.Normal, 1e-6) {
				t.Errorf("normal = %v, want %v", out.Varyings.Normal, tt.v.Normal)
			}
		})
	}
}

func TestVertexStage_MVPOrder(t *testing.T) {
	// Model scales by 2, view translates x by -1, proj scales z by 3.
	// Applied as proj * view * model to (1, 0, 1).
	u := Transforms{
		Model: g3d.Scale(2, 2, 2),
		View:  g3d.Translate(-1, 0, 0),
		Proj:  g3d.Scale(1, 1, 3),
	}
	out := VertexStage(g3d.Vertex{Position: g3d.V3(1, 0, 1)}, u)
	want := g3d.V4(1, 0, 6, 1)
	if !out.ClipPosition.Approx(want, 1e-6) {
		t.Errorf("clip = %v, want %v", out.ClipPosition, want)
	}
}

func TestVertexStage_NormalIgnoresTranslation(t *testing.T) {
	u := IdentityTransforms()
	u.Model = g3d.Translate(10, 20, 30)

	v := g3d.Vertex{Normal: g3d.V3(0, 0, 1)}
	out := VertexStage(v, u)
	if !out.Varyings.Normal.Approx(v.Normal, 1e-6) {
		t.Errorf("translated normal = %v, want unchanged %v", out.Varyings.Normal, v.Normal)
	}
}

func TestVertexStage_NormalLinearity(t *testing.T) {
	// Transforming a scaled normal equals scaling the transformed
	// normal: the normal path is linear in its input.
	u := IdentityTransforms()
	u.Model = g3d.RotateY(0.8).Mul(g3d.Scale(2, 3, 4))

	n := g3d.V3(0.3, -0.5, 0.8)
	const s = 2.5

	scaledFirst := VertexStage(g3d.Vertex{Normal: n.Mul(s)}, u).Varyings.Normal
	scaledAfter := VertexStage(g3d.Vertex{Normal: n}, u).Varyings.Normal.Mul(s)
	if !scaledFirst.Approx(scaledAfter, 1e-4) {
		t.Errorf("M*(s*n) = %v, s*(M*n) = %v", scaledFirst, scaledAfter)
	}

	// Additivity.
	a := g3d.V3(1, 0, 0)
	b := g3d.V3(0, 1, 0)
	sumFirst := VertexStage(g3d.Vertex{Normal: a.Add(b)}, u).Varyings.Normal
	sumAfter := VertexStage(g3d.Vertex{Normal: a}, u).Varyings.Normal.
		Add(VertexStage(g3d.Vertex{Normal: b}, u).Varyings.Normal)
	if !sumFirst.Approx(sumAfter, 1e-4) {
		t.Errorf("M*(a+b) = %v, M*a + M*b = %v", sumFirst, sumAfter)
	}
}

func TestBlendColor_MixEndpoints(t *testing.T) {
	v := Varyings{Color: g3d.V3(0.2, 0.4, 0.6)}
	tex := solidSampler{color: g3d.V4(0.9, 0.1, 0.3, 0.5)}

	t.Run("mix zero is vertex color", func(t *testing.T) {
		got := BlendColor(v, tex, 0)
		want := g3d.V4(0.2, 0.4, 0.6, 1)
		if !got.Approx(want, 1e-6) {
			t.Errorf("BlendColor(mix=0) = %v, want %v", got, want)
		}
	})

	t.Run("mix one is texture color", func(t *testing.T) {
		got := BlendColor(v, tex, 1)
		if !got.Approx(tex.color, 1e-6) {
			t.Errorf("BlendColor(mix=1) = %v, want %v", got, tex.color)
		}
	})

	t.Run("mix half blends alpha too", func(t *testing.T) {
		got := BlendColor(v, tex, 0.5)
		want := g3d.V4(0.55, 0.25, 0.45, 0.75)
		if !got.Approx(want, 1e-6) {
			t.Errorf("BlendColor(mix=0.5) = %v, want %v", got, want)
		}
	})
}

func TestLight_Bounds(t *testing.T) {
	tests := []struct {
		name   string
		normal g3d.Vec3
		want   float32
	}{
		{"up is fully lit", g3d.V3(0, 1, 0), 1},
		{"down hits the floor", g3d.V3(0, -1, 0), LightFloor},
		{"sideways hits the floor", g3d.V3(1, 0, 0), LightFloor},
		{"unnormalized up", g3d.V3(0, 17, 0), 1},
		{"45 degrees", g3d.V3(0, 1, 1), float32(math.Sqrt2 / 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Light(tt.normal)
			if math32.Abs(got-tt.want) > 1e-5 {
				t.Errorf("Light(%v) = %v, want %v", tt.normal, got, tt.want)
			}
		})
	}
}

func TestLight_AlwaysInRange(t *testing.T) {
	normals := []g3d.Vec3{
		g3d.V3(0.3, -0.8, 0.2),
		g3d.V3(-1, -1, -1),
		g3d.V3(0.001, 0.999, 0),
		g3d.V3(5, 5, 5),
	}
	for _, n := range normals {
		l := Light(n)
		if l < LightFloor || l > 1 {
			t.Errorf("Light(%v) = %v, want within [%v, 1]", n, l, float32(LightFloor))
		}
	}
}

func TestFragmentStage_ScalesAllComponents(t *testing.T) {
	// A sideways normal forces the lighting floor, so every component
	// of the blended color (alpha included) is scaled by LightFloor.
	v := Varyings{
		Color:  g3d.V3(1, 0.5, 0.25),
		Normal: g3d.V3(1, 0, 0),
	}
	tex := solidSampler{color: g3d.V4(0, 0, 0, 1)}

	got := FragmentStage(v, tex, 0)
	want := g3d.V4(LightFloor, 0.5*LightFloor, 0.25*LightFloor, LightFloor)
	if !got.Approx(want, 1e-5) {
		t.Errorf("FragmentStage = %v, want %v", got, want)
	}
}

func TestFragmentStage_FullyLit(t *testing.T) {
	v := Varyings{
		Color:  g3d.V3(0.8, 0.6, 0.4),
		Normal: g3d.V3(0, 1, 0),
	}
	tex := solidSampler{color: g3d.V4(1, 1, 1, 1)}

	got := FragmentStage(v, tex, 0)
	want := g3d.V4(0.8, 0.6, 0.4, 1)
	if !got.Approx(want, 1e-5) {
		t.Errorf("fully lit fragment = %v, want %v", got, want)
	}
}

func TestLerp3_Weights(t *testing.T) {
	a := Varyings{Color: g3d.V3(1, 0, 0), TexCoords: g3d.V2(0, 0)}
	b := Varyings{Color: g3d.V3(0, 1, 0), TexCoords: g3d.V2(1, 0)}
	c := Varyings{Color: g3d.V3(0, 0, 1), TexCoords: g3d.V2(0, 1)}

	t.Run("vertex weight", func(t *testing.T) {
		got := Lerp3(a, b, c, 1, 0, 0)
		if !got.Color.Approx(a.Color, 1e-6) {
			t.Errorf("Lerp3 at vertex a = %v, want %v", got.Color, a.Color)
		}
	})

	t.Run("centroid", func(t *testing.T) {
		third := float32(1.0 / 3.0)
		got := Lerp3(a, b, c, third, third, third)
		want := g3d.V3(third, third, third)
		if !got.Color.Approx(want, 1e-6) {
			t.Errorf("Lerp3 at centroid = %v, want %v", got.Color, want)
		}
		if !got.TexCoords.Approx(g3d.V2(third, third), 1e-6) {
			t.Errorf("centroid uv = %v, want (1/3, 1/3)", got.TexCoords)
		}
	})
}
