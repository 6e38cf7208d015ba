// SPDX-License-Identifier: MIT
// Copyright (c) 2020 Brian Starkey <stark3y@gmail.com>
package ihex

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/marcinbor85/gohex"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/usedbytes/log"
)

const (
	DefaultRecordLen = 16
	DefaultFill      = 0xff

	// Images are flattened from address 0, so cap how far up they can go
	MaxImageSize = 16 * 1024 * 1024
)

type MalformedContainerError struct {
	Path string
	Err  error
}

func (e *MalformedContainerError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("malformed container: %v", e.Err)
	}
	return fmt.Sprintf("malformed container '%s': %v", e.Path, e.Err)
}

func (e *MalformedContainerError) Unwrap() error {
	return e.Err
}

// Span is an address range that was present in the input.
type Span struct {
	Address uint32
	Length  int
}

// Container is a flat image starting at address 0, plus what is needed
// to write it back out in the same shape.
type Container struct {
	Data     []byte
	Spans    []Span
	Start    uint32
	HasStart bool
}

// Parse reads an Intel HEX document. Gaps between data records are
// filled with fill.
func Parse(r io.Reader, fill byte) (*Container, error) {
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(r); err != nil {
		return nil, &MalformedContainerError{Err: err}
	}

	c := &Container{}
	var size uint64
	for _, seg := range mem.GetDataSegments() {
		end := uint64(seg.Address) + uint64(len(seg.Data))
		if end > MaxImageSize {
			return nil, &MalformedContainerError{
				Err: errors.Errorf("segment at 0x%08x ends beyond 0x%x", seg.Address, MaxImageSize),
			}
		}
		if end > size {
			size = end
		}
		c.Spans = append(c.Spans, Span{Address: seg.Address, Length: len(seg.Data)})
		log.Verbosef("Segment 0x%08x: %d bytes\n", seg.Address, len(seg.Data))
	}

	if len(c.Spans) == 0 {
		return nil, &MalformedContainerError{Err: errors.New("no data records")}
	}

	c.Data = mem.ToBinary(0, uint32(size), fill)
	c.Start, c.HasStart = mem.GetStartAddress()

	return c, nil
}

// Write emits the container as Intel HEX, covering the original spans.
func (c *Container) Write(w io.Writer, recordLen byte) error {
	if recordLen == 0 {
		recordLen = DefaultRecordLen
	}

	mem := gohex.NewMemory()

	spans := c.Spans
	if len(spans) == 0 {
		spans = []Span{{Address: 0, Length: len(c.Data)}}
	}

	for _, s := range spans {
		end := int(s.Address) + s.Length
		if end > len(c.Data) {
			return errors.Errorf("span 0x%08x+%d is outside the image", s.Address, s.Length)
		}
		if err := mem.AddBinary(s.Address, c.Data[s.Address:end]); err != nil {
			return errors.Wrapf(err, "adding span at 0x%08x", s.Address)
		}
	}

	if c.HasStart {
		mem.SetStartAddress(c.Start)
	}

	return mem.DumpIntelHex(w, recordLen)
}

func isRaw(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".bin")
}

// Load reads an image file. Files with a .bin extension are taken as a
// raw image; anything else is parsed as Intel HEX.
func Load(fs afero.Fs, path string, fill byte) (*Container, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	if isRaw(path) {
		return &Container{
			Data:  data,
			Spans: []Span{{Address: 0, Length: len(data)}},
		}, nil
	}

	c, err := Parse(bytes.NewReader(data), fill)
	if err != nil {
		if mce, ok := err.(*MalformedContainerError); ok {
			mce.Path = path
		}
		return nil, err
	}

	return c, nil
}

// Save writes an image file, raw or Intel HEX depending on the
// extension.
func Save(fs afero.Fs, path string, c *Container, recordLen byte) error {
	if isRaw(path) {
		return afero.WriteFile(fs, path, c.Data, 0644)
	}

	buf := &bytes.Buffer{}
	if err := c.Write(buf, recordLen); err != nil {
		return err
	}

	return afero.WriteFile(fs, path, buf.Bytes(), 0644)
}
