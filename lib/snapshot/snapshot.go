// SPDX-License-Identifier: MIT
// Copyright (c) 2020 Brian Starkey <stark3y@gmail.com>
package snapshot

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/usedbytes/lbrc-tools/lib/codec"
)

// Read decodes a snapshot document. Unknown keys are ignored, missing
// ones are left at their zero value.
func Read(r io.Reader) (*codec.Snapshot, error) {
	var s codec.Snapshot

	dec := json.NewDecoder(r)
	err := dec.Decode(&s)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// Write emits s as an indented snapshot document.
func Write(w io.Writer, s *codec.Snapshot) error {
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	_, err = w.Write(data)
	return err
}

func Load(fs afero.Fs, path string) (*codec.Snapshot, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing snapshot '%s'", path)
	}

	return s, nil
}

func Save(fs afero.Fs, path string, s *codec.Snapshot) error {
	buf := &bytes.Buffer{}
	err := Write(buf, s)
	if err != nil {
		return err
	}

	return afero.WriteFile(fs, path, buf.Bytes(), 0644)
}
