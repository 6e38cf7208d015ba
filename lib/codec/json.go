// SPDX-License-Identifier: MIT
// Copyright (c) 2020 Brian Starkey <stark3y@gmail.com>
package codec

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

const ledCountKey = "led_count"

// MarshalJSON writes the bank as an object holding "led_count" and one
// entry per LED keyed by its index.
func (b LedBank) MarshalJSON() ([]byte, error) {
	obj := make(map[string]interface{}, len(b.Leds)+1)
	obj[ledCountKey] = len(b.Leds)
	for i := range b.Leds {
		obj[strconv.Itoa(i)] = &b.Leds[i]
	}

	return json.Marshal(obj)
}

func (b *LedBank) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	raw, ok := obj[ledCountKey]
	if !ok {
		return errors.Errorf("missing '%s'", ledCountKey)
	}

	var count int
	if err := json.Unmarshal(raw, &count); err != nil {
		return errors.Wrapf(err, "parsing '%s'", ledCountKey)
	}
	if count < 0 {
		return errors.Errorf("negative %s %d", ledCountKey, count)
	}

	leds := make([]Led, count)
	for i := range leds {
		key := strconv.Itoa(i)
		raw, ok := obj[key]
		if !ok {
			return errors.Errorf("missing LED %d of %d", i, count)
		}
		if err := json.Unmarshal(raw, &leds[i]); err != nil {
			return errors.Wrapf(err, "parsing LED %d", i)
		}
	}

	b.Leds = leds
	return nil
}
