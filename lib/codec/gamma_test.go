// SPDX-License-Identifier: MIT
// Copyright (c) 2020 Brian Starkey <stark3y@gmail.com>
package codec

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/usedbytes/lbrc-tools/lib/firmware"
	"github.com/usedbytes/lbrc-tools/lib/gamma"
)

func TestGammaRoundTrip(t *testing.T) {
	img := newTestImage(t)
	offs, _ := img.Offset(firmware.Gamma)
	copy(img.Bytes()[offs:], "220")

	g, err := DecodeGamma(img)
	if err != nil {
		t.Fatal(err)
	}
	if g.GammaValue != "220" {
		t.Fatalf("got '%s'", g.GammaValue)
	}

	img.Bytes()[offs+3] = 0x42
	if err := EncodeGamma(img, g); err != nil {
		t.Fatal(err)
	}

	data := img.Bytes()
	if !bytes.Equal(data[offs:offs+3], []byte{'2', '2', '0'}) {
		t.Errorf("identifier bytes: % x", data[offs:offs+3])
	}
	if data[offs+3] != 0x42 {
		t.Errorf("byte after identifier overwritten: 0x%02x", data[offs+3])
	}

	table, _ := gamma.MakeTable("220")
	if !bytes.Equal(data[offs+4:offs+4+gamma.TableLen], table[:]) {
		t.Error("gamma table not written")
	}
}

func TestGammaInvalid(t *testing.T) {
	img := newTestImage(t)
	before := make([]byte, img.Len())
	copy(before, img.Bytes())

	for _, v := range []string{"", "22", "2200", "x22", "2é"} {
		if err := EncodeGamma(img, GammaSelector{GammaValue: v}); err == nil {
			t.Errorf("'%s': expected error", v)
		}
	}

	if !bytes.Equal(img.Bytes(), before) {
		t.Error("image modified by failed encodes")
	}
}

func TestGammaMissing(t *testing.T) {
	img, err := firmware.NewImage(make([]byte, 16))
	if err != nil {
		t.Fatal(err)
	}

	_, err = DecodeGamma(img)
	var mse *firmware.MissingSectionError
	if !errors.As(err, &mse) || mse.Kind != firmware.Gamma {
		t.Errorf("expected MissingSectionError, got %v", err)
	}
}
