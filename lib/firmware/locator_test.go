// SPDX-License-Identifier: MIT
// Copyright (c) 2020 Brian Starkey <stark3y@gmail.com>
package firmware

import (
	"reflect"
	"testing"

	"github.com/pkg/errors"
)

func marker(id, version uint16) []byte {
	m := []byte{'L', 'B', 'r', 'c', 0, 0, 0, 0}
	WriteU16(m, 4, id)
	WriteU16(m, 6, version)
	return m
}

// layout builds an image of size bytes with the given markers placed at
// the given offsets.
func layout(size int, markers map[int][]byte) []byte {
	data := make([]byte, size)
	for offs, m := range markers {
		copy(data[offs:], m)
	}
	return data
}

func TestLocate(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    map[SectionKind]int
		skipped []*UnknownSectionError
	}{
		{
			name: "empty",
			data: nil,
			want: map[SectionKind]int{},
		},
		{
			name: "all sections",
			data: layout(256, map[int][]byte{
				0x00: marker(0x01, 1),
				0x40: marker(0x02, 1),
				0x60: marker(0x10, 1),
				0x80: marker(0x20, 1),
				0xa0: marker(0x30, 1),
			}),
			want: map[SectionKind]int{
				Configuration: 0x08,
				Gamma:         0x48,
				LocalLeds:     0x68,
				SlaveLeds:     0x88,
				LightPrograms: 0xa8,
			},
		},
		{
			name: "last marker wins",
			data: layout(128, map[int][]byte{
				0x10: marker(0x01, 1),
				0x30: marker(0x01, 1),
			}),
			want: map[SectionKind]int{
				Configuration: 0x38,
			},
		},
		{
			name: "unknown section skipped",
			data: layout(128, map[int][]byte{
				0x03: marker(0x42, 7),
				0x20: marker(0x10, 1),
			}),
			want: map[SectionKind]int{
				LocalLeds: 0x28,
			},
			skipped: []*UnknownSectionError{
				{Offset: 0x03, ID: 0x42},
			},
		},
		{
			name: "marker without payload ignored",
			data: layout(16, map[int][]byte{
				0x08: marker(0x01, 1),
			}),
			want: map[SectionKind]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, skipped, err := Locate(tt.data)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("offsets: got %v want %v", got, tt.want)
			}
			if !reflect.DeepEqual(skipped, tt.skipped) {
				t.Errorf("skipped: got %v want %v", skipped, tt.skipped)
			}
		})
	}
}

func TestLocateVersionMismatch(t *testing.T) {
	data := layout(128, map[int][]byte{
		0x00: marker(0x01, 1),
		0x20: marker(0x20, 2),
		0x40: marker(0x02, 1),
	})

	_, _, err := Locate(data)
	if err == nil {
		t.Fatal("expected error")
	}

	var vme *VersionMismatchError
	if !errors.As(err, &vme) {
		t.Fatalf("expected VersionMismatchError, got %v", err)
	}

	want := VersionMismatchError{Kind: SlaveLeds, Offset: 0x20, Expected: 1, Actual: 2}
	if *vme != want {
		t.Errorf("got %+v want %+v", *vme, want)
	}
}

func TestLocateUnknownVersionIgnored(t *testing.T) {
	// The version of an unrecognised section is irrelevant
	data := layout(64, map[int][]byte{
		0x00: marker(0x99, 42),
		0x10: marker(0x02, 1),
	})

	got, skipped, err := Locate(data)
	if err != nil {
		t.Fatal(err)
	}
	if got[Gamma] != 0x18 {
		t.Errorf("gamma offset: got 0x%x", got[Gamma])
	}
	if len(skipped) != 1 {
		t.Errorf("expected 1 skipped marker, got %d", len(skipped))
	}
}
