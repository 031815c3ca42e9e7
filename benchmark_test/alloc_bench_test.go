package benchmark_test

import (
	"fmt"
	"testing"

	"github.com/hupe1980/bumparena"
)

var sizes = []int{16, 64, 256, 4096}

var sink []byte

// BenchmarkAlloc compares arena allocation with make for a batch of small objects.
func BenchmarkAlloc(b *testing.B) {
	const batch = 1000

	for _, size := range sizes {
		b.Run(fmt.Sprintf("Arena/%d", size), func(b *testing.B) {
			a := bumparena.New()
			defer a.ReleaseAll()

			b.ReportAllocs()
			b.SetBytes(int64(size * batch))
			for b.Loop() {
				for range batch {
					p, err := a.Alloc(size)
					if err != nil {
						b.Fatal(err)
					}
					sink = p
				}
				a.Reset()
			}
		})

		b.Run(fmt.Sprintf("OffHeap/%d", size), func(b *testing.B) {
			a := bumparena.New(bumparena.WithOffHeap())
			defer a.ReleaseAll()

			b.ReportAllocs()
			b.SetBytes(int64(size * batch))
			for b.Loop() {
				for range batch {
					p, err := a.Alloc(size)
					if err != nil {
						b.Fatal(err)
					}
					sink = p
				}
				a.Reset()
			}
		})

		b.Run(fmt.Sprintf("Make/%d", size), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(size * batch))
			for b.Loop() {
				for range batch {
					sink = make([]byte, size)
				}
			}
		})
	}
}

// BenchmarkReleaseAll measures a fill-and-release cycle, which acquires fresh blocks every time.
func BenchmarkReleaseAll(b *testing.B) {
	for _, blocks := range []int{1, 8, 64} {
		b.Run(fmt.Sprintf("Blocks/%d", blocks), func(b *testing.B) {
			a := bumparena.New()

			b.ReportAllocs()
			for b.Loop() {
				for range blocks {
					if _, err := a.Alloc(bumparena.DefaultCapacity); err != nil {
						b.Fatal(err)
					}
				}
				if err := a.ReleaseAll(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkAllocLimited includes the memory budget bookkeeping on every block acquisition.
func BenchmarkAllocLimited(b *testing.B) {
	a := bumparena.New(bumparena.WithDefaultCapacity(4096), bumparena.WithMemoryLimit(1<<30))

	b.ReportAllocs()
	for b.Loop() {
		for range 100 {
			if _, err := a.Alloc(512); err != nil {
				b.Fatal(err)
			}
		}
		if err := a.ReleaseAll(); err != nil {
			b.Fatal(err)
		}
	}
}
