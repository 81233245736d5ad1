package activate

import (
	"math"
	"math/rand/v2"
	"testing"
)

// setupBenchPoints scatters n points over a 4096x4096 world.
func setupBenchPoints(n int) []Vec2 {
	rng := rand.New(rand.NewPCG(7, 11))
	points := make([]Vec2, n)
	for i := range points {
		points[i] = Vec2{rng.Float64() * 4096, rng.Float64() * 4096}
	}
	return points
}

// --- Registry Benchmarks ---

func BenchmarkRegistryPut_Cap64(b *testing.B) {
	r := newRegistry(64)
	rng := rand.New(rand.NewPCG(1, 1))
	scores := make([]float64, 1024)
	for i := range scores {
		scores[i] = rng.Float64()
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		r.Put(scores[i%len(scores)])
	}
}

func BenchmarkRegistryClearRefill_Cap256(b *testing.B) {
	r := newRegistry(256)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		r.Clear()
		for j := 0; j < 256; j++ {
			r.Put(float64(j))
		}
	}
}

func BenchmarkRegistryCopy_Cap128(b *testing.B) {
	src := newRegistry(128)
	for j := 0; j < 128; j++ {
		src.Put(float64(j))
	}
	dst := newRegistry(64)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		dst.Copy(src)
	}
}

// --- Pool Benchmarks ---

func benchmarkPoolUpdate(b *testing.B, capacity, n int) {
	points := setupBenchPoints(n)
	focus := Vec2{2048, 2048}
	p, err := NewPool(capacity, n, PoolConfig[int]{
		Score:        Nearest(points, &focus, 512),
		OnActivate:   func(int) {},
		OnDeactivate: func(int) {},
	})
	if err != nil {
		b.Fatal(err)
	}
	p.Update() // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		// Orbit the focus so membership changes every frame.
		a := float64(i) * 0.01
		focus = Vec2{2048 + 1024*math.Cos(a), 2048 + 1024*math.Sin(a)}
		p.Update()
	}
}

func BenchmarkPoolUpdate_1000Points_Cap32(b *testing.B)   { benchmarkPoolUpdate(b, 32, 1000) }
func BenchmarkPoolUpdate_10000Points_Cap64(b *testing.B)  { benchmarkPoolUpdate(b, 64, 10000) }
func BenchmarkPoolUpdate_10000Points_Cap256(b *testing.B) { benchmarkPoolUpdate(b, 256, 10000) }
