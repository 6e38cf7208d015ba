// SPDX-License-Identifier: MIT
// Copyright (c) 2020 Brian Starkey <stark3y@gmail.com>
package ihex

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const testHex = `:0400000001020304F2
:02001000AABB89
:00000001FF
`

func TestParse(t *testing.T) {
	c, err := Parse(strings.NewReader(testHex), 0xff)
	if err != nil {
		t.Fatal(err)
	}

	want := []byte{
		0x01, 0x02, 0x03, 0x04, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xaa, 0xbb,
	}
	if !bytes.Equal(c.Data, want) {
		t.Errorf("data: got % x want % x", c.Data, want)
	}

	wantSpans := []Span{{0x00, 4}, {0x10, 2}}
	if !reflect.DeepEqual(c.Spans, wantSpans) {
		t.Errorf("spans: got %v want %v", c.Spans, wantSpans)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	c, err := Parse(strings.NewReader(testHex), 0x00)
	if err != nil {
		t.Fatal(err)
	}

	c.Data[1] = 0x55
	// Gap bytes are never written out
	c.Data[8] = 0x66

	buf := &bytes.Buffer{}
	if err := c.Write(buf, 0); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), ":00000001FF") {
		t.Errorf("missing EOF record:\n%s", buf.String())
	}

	back, err := Parse(buf, 0x00)
	if err != nil {
		t.Fatal(err)
	}

	c.Data[8] = 0x00
	if !bytes.Equal(back.Data, c.Data) {
		t.Errorf("data: got % x want % x", back.Data, c.Data)
	}
	if !reflect.DeepEqual(back.Spans, c.Spans) {
		t.Errorf("spans: got %v want %v", back.Spans, c.Spans)
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"garbage", "hello world\n"},
		{"checksum", ":0400000001020304F3\n:00000001FF\n"},
		{"empty", ":00000001FF\n"},
		{"too high", ":020000040800F2\n:0400000001020304F2\n:00000001FF\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc), 0xff)
			var mce *MalformedContainerError
			if !errors.As(err, &mce) {
				t.Errorf("expected MalformedContainerError, got %v", err)
			}
		})
	}
}

func TestLoadSave(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/fw/light.hex", []byte(testHex), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(fs, "/fw/light.hex", DefaultFill)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Data) != 0x12 {
		t.Fatalf("size: got %d", len(c.Data))
	}

	if err := Save(fs, "/fw/out.hex", c, DefaultRecordLen); err != nil {
		t.Fatal(err)
	}
	back, err := Load(fs, "/fw/out.hex", DefaultFill)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(back.Data, c.Data) {
		t.Errorf("hex: got % x want % x", back.Data, c.Data)
	}

	if err := Save(fs, "/fw/out.bin", c, DefaultRecordLen); err != nil {
		t.Fatal(err)
	}
	raw, err := afero.ReadFile(fs, "/fw/out.bin")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(raw, c.Data) {
		t.Errorf("bin: got % x want % x", raw, c.Data)
	}

	bin, err := Load(fs, "/fw/out.bin", DefaultFill)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(bin.Data, c.Data) {
		t.Errorf("bin load: got % x", bin.Data)
	}
}

func TestLoadMalformedPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/bad.hex", []byte("nope\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(fs, "/bad.hex", DefaultFill)
	var mce *MalformedContainerError
	if !errors.As(err, &mce) || mce.Path != "/bad.hex" {
		t.Errorf("expected MalformedContainerError with path, got %v", err)
	}

	if _, err := Load(fs, "/missing.hex", DefaultFill); err == nil {
		t.Error("expected error for missing file")
	}
}
