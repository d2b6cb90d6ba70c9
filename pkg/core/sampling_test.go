package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestRandomInUnitSphere(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		p := RandomInUnitSphere(random)
		if p.Length() > 1.0 {
			t.Fatalf("Point %v outside unit sphere (length %f)", p, p.Length())
		}
	}
}

func TestRandomUnitVector(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		v := RandomUnitVector(random)
		if math.Abs(v.Length()-1.0) > 1e-9 {
			t.Fatalf("Vector %v not unit length (length %f)", v, v.Length())
		}
	}
}

func TestRandomInUnitDisk(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		p := RandomInUnitDisk(random)
		if p.Z != 0 {
			t.Fatalf("Disk point %v has non-zero Z", p)
		}
		if p.Length() > 1.0 {
			t.Fatalf("Point %v outside unit disk (length %f)", p, p.Length())
		}
	}
}

func TestSampling_DeterministicForSeed(t *testing.T) {
	a := rand.New(rand.NewSource(7))
	b := rand.New(rand.NewSource(7))

	for i := 0; i < 100; i++ {
		if RandomInUnitSphere(a) != RandomInUnitSphere(b) {
			t.Fatal("Same seed produced different sample streams")
		}
	}
}
