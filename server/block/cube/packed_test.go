package cube

import (
	"errors"
	"testing"
)

func TestEncodeRoundTrip(t *testing.T) {
	const (
		minX, maxX = -(1 << (XBits - 1)), 1<<(XBits-1) - 1
		minY, maxY = -(1 << (YBits - 1)), 1<<(YBits-1) - 1
		minZ, maxZ = -(1 << (ZBits - 1)), 1<<(ZBits-1) - 1
	)
	cases := []Pos{
		{0, 0, 0},
		{1, 2, 3},
		{-1, -1, -1},
		{minX, minY, minZ},
		{maxX, maxY, maxZ},
		{minX, maxY, minZ},
		{maxX, minY, maxZ},
		{-31, 255, 32},
		{123456, -98765, -654321},
	}
	for _, c := range cases {
		p, err := Encode(c[0], c[1], c[2])
		if err != nil {
			t.Fatalf("expected %v to encode, got %v", c, err)
		}
		if got := p.Decode(); got != c {
			t.Fatalf("expected %v after round trip, got %v", c, got)
		}
	}
}

func TestEncodeRejectsOutOfRange(t *testing.T) {
	cases := []Pos{
		{1 << (XBits - 1), 0, 0},
		{0, -(1 << (YBits - 1)) - 1, 0},
		{0, 0, 1 << ZBits},
	}
	for _, c := range cases {
		if _, err := Encode(c[0], c[1], c[2]); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("expected ErrOutOfRange for %v, got %v", c, err)
		}
	}
}

func TestEncodeMaskedWraps(t *testing.T) {
	p := EncodeMasked(1<<(XBits-1), 0, 0)
	if got := p.Decode()[0]; got != -(1 << (XBits - 1)) {
		t.Fatalf("expected x to wrap to %d, got %d", -(1 << (XBits - 1)), got)
	}
}

func TestMustEncodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected MustEncode to panic on out of range input")
		}
	}()
	MustEncode(0, 1<<YBits, 0)
}

func TestLocalRoundTrip(t *testing.T) {
	for _, c := range []Pos{{0, 0, 0}, {31, 255, 31}, {4095, 0, 4095}, {7, 200, 19}} {
		p, err := EncodeLocal(c[0], c[1], c[2])
		if err != nil {
			t.Fatalf("expected %v to encode, got %v", c, err)
		}
		if got := p.Decode(); got != c {
			t.Fatalf("expected %v after round trip, got %v", c, got)
		}
	}
	if _, err := EncodeLocal(0, 256, 0); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange for y=256, got %v", err)
	}
	if _, err := EncodeLocal(-1, 0, 0); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange for x=-1, got %v", err)
	}
}
