package noise

import "testing"

func TestRand2Deterministic(t *testing.T) {
	salt := Salt{12.989, 78.233}
	for i := 0; i < 100; i++ {
		x, y := float64(i)*0.37-10, float64(i)*1.13+4
		a, b := Rand2(7, x, y, salt), Rand2(7, x, y, salt)
		if a != b {
			t.Fatalf("expected equal values for equal input, got %v and %v", a, b)
		}
		if a < 0 || a >= 1 {
			t.Fatalf("expected value in [0,1), got %v", a)
		}
	}
	if Rand2(7, 1, 2, salt) == Rand2(8, 1, 2, salt) {
		t.Fatalf("expected seeds to change the value")
	}
}

func TestRand2Distribution(t *testing.T) {
	var above int
	const n = 10000
	for i := 0; i < n; i++ {
		if Rand2i(1, int64(i%100), int64(i/100), Salt{1, 2}) > 0.5 {
			above++
		}
	}
	if above < n*4/10 || above > n*6/10 {
		t.Fatalf("expected roughly half of the values above 0.5, got %d of %d", above, n)
	}
}

func TestVoronoiStableWithinCell(t *testing.T) {
	c := Voronoi(3, 10.5, -4.25)
	if Voronoi(3, 10.5, -4.25) != c {
		t.Fatalf("expected the same cell for the same point")
	}
	if d := c[0] - 10; d < -1 || d > 1 {
		t.Fatalf("expected cell near the point, got %v", c)
	}
	if s := c.Score(3); s < 0 || s >= 1 {
		t.Fatalf("expected score in [0,1), got %v", s)
	}
}

func TestFieldRange(t *testing.T) {
	f := NewField(42, 4, 0.01, 0.5, 2)
	for x := -500.0; x < 500; x += 37 {
		for z := -500.0; z < 500; z += 41 {
			v := f.At(x, z)
			if v < -2 || v > 2 {
				t.Fatalf("expected field value near [-1,1], got %v at (%v,%v)", v, x, z)
			}
			if v != f.At(x, z) {
				t.Fatalf("expected field to be deterministic")
			}
		}
	}
}
