// SPDX-License-Identifier: MIT
// Copyright (c) 2020 Brian Starkey <stark3y@gmail.com>
package codec

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/usedbytes/lbrc-tools/lib/firmware"
)

type Mode uint8

const (
	MasterWithServoReader Mode = 0
	MasterWithUARTReader  Mode = 1
	Slave                 Mode = 2
)

func (m Mode) String() string {
	switch m {
	case MasterWithServoReader:
		return "Master, servo inputs"
	case MasterWithUARTReader:
		return "Master, pre-processor input"
	case Slave:
		return "Slave"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

type ESCMode uint8

const (
	ForwardBrakeReverseTimeout ESCMode = 0
	ForwardBrakeReverse        ESCMode = 1
	ForwardReverse             ESCMode = 2
	ForwardBrake               ESCMode = 3
)

func (e ESCMode) String() string {
	switch e {
	case ForwardBrakeReverseTimeout:
		return "Forward/Brake/Reverse with timeout"
	case ForwardBrakeReverse:
		return "Forward/Brake/Reverse no timeout"
	case ForwardReverse:
		return "Forward/Reverse"
	case ForwardBrake:
		return "Forward/Brake"
	}
	return fmt.Sprintf("ESCMode(%d)", uint8(e))
}

// Baudrate is stored in the image as the raw rate.
type Baudrate uint32

const (
	Baud38400  Baudrate = 38400
	Baud115200 Baudrate = 115200
)

// Configuration is the controller's global configuration section.
//
// Flags that don't apply to Mode are kept as-is; clearing them is up to
// the caller.
type Configuration struct {
	Mode    Mode    `json:"mode"`
	ESCMode ESCMode `json:"esc_mode"`

	SlaveOutput                   bool `json:"slave_ouput"`
	PreprocessorOutput            bool `json:"preprocessor_output"`
	WinchOutput                   bool `json:"winch_output"`
	SteeringWheelServoOutput      bool `json:"steering_wheel_servo_output"`
	GearboxServoOutput            bool `json:"gearbox_servo_output"`
	CH3IsLocalSwitch              bool `json:"ch3_is_local_switch"`
	CH3IsMomentary                bool `json:"ch3_is_momentary"`
	AutoBrakeLightsForwardEnabled bool `json:"auto_brake_lights_forward_enabled"`
	AutoBrakeLightsReverseEnabled bool `json:"auto_brake_lights_reverse_enabled"`

	AutoBrakeCounterValueForwardMin uint16 `json:"auto_brake_counter_value_forward_min"`
	AutoBrakeCounterValueForwardMax uint16 `json:"auto_brake_counter_value_forward_max"`
	AutoBrakeCounterValueReverseMin uint16 `json:"auto_brake_counter_value_reverse_min"`
	AutoBrakeCounterValueReverseMax uint16 `json:"auto_brake_counter_value_reverse_max"`
	AutoReverseCounterValueMin      uint16 `json:"auto_reverse_counter_value_min"`
	AutoReverseCounterValueMax      uint16 `json:"auto_reverse_counter_value_max"`
	BrakeDisarmCounterValue         uint16 `json:"brake_disarm_counter_value"`
	BlinkCounterValue               uint16 `json:"blink_counter_value"`
	IndicatorIdleTimeValue          uint16 `json:"indicator_idle_time_value"`
	IndicatorOffTimeoutValue        uint16 `json:"indicator_off_timeout_value"`
	CentreThresholdLow              uint16 `json:"centre_threshold_low"`
	CentreThresholdHigh             uint16 `json:"centre_threshold_high"`
	BlinkThreshold                  uint16 `json:"blink_threshold"`
	LightSwitchPositions            uint16 `json:"light_switch_positions"`
	InitialEndpointDelta            uint16 `json:"initial_endpoint_delta"`
	CH3MultiClickTimeout            uint16 `json:"ch3_multi_click_timeout"`
	WinchCommandRepeatTime          uint16 `json:"winch_command_repeat_time"`

	Baudrate        Baudrate `json:"baudrate"`
	NoSignalTimeout uint16   `json:"no_signal_timeout"`
}

// Byte layout of the configuration section. 2-3 and 42-43 are padding.
const (
	configModeOffs            = 0
	configESCModeOffs         = 1
	configFlagsOffs           = 4
	configBaudrateOffs        = 44
	configNoSignalTimeoutOffs = 48

	ConfigurationLen = 50
)

var configFlags = [...]struct {
	bit   uint
	field func(c *Configuration) *bool
}{
	{0, func(c *Configuration) *bool { return &c.SlaveOutput }},
	{1, func(c *Configuration) *bool { return &c.PreprocessorOutput }},
	{2, func(c *Configuration) *bool { return &c.WinchOutput }},
	{3, func(c *Configuration) *bool { return &c.SteeringWheelServoOutput }},
	{4, func(c *Configuration) *bool { return &c.GearboxServoOutput }},
	{5, func(c *Configuration) *bool { return &c.CH3IsLocalSwitch }},
	{6, func(c *Configuration) *bool { return &c.CH3IsMomentary }},
	{7, func(c *Configuration) *bool { return &c.AutoBrakeLightsForwardEnabled }},
	{8, func(c *Configuration) *bool { return &c.AutoBrakeLightsReverseEnabled }},
}

var configCounters = [...]struct {
	offs  int
	field func(c *Configuration) *uint16
}{
	{8, func(c *Configuration) *uint16 { return &c.AutoBrakeCounterValueForwardMin }},
	{10, func(c *Configuration) *uint16 { return &c.AutoBrakeCounterValueForwardMax }},
	{12, func(c *Configuration) *uint16 { return &c.AutoBrakeCounterValueReverseMin }},
	{14, func(c *Configuration) *uint16 { return &c.AutoBrakeCounterValueReverseMax }},
	{16, func(c *Configuration) *uint16 { return &c.AutoReverseCounterValueMin }},
	{18, func(c *Configuration) *uint16 { return &c.AutoReverseCounterValueMax }},
	{20, func(c *Configuration) *uint16 { return &c.BrakeDisarmCounterValue }},
	{22, func(c *Configuration) *uint16 { return &c.BlinkCounterValue }},
	{24, func(c *Configuration) *uint16 { return &c.IndicatorIdleTimeValue }},
	{26, func(c *Configuration) *uint16 { return &c.IndicatorOffTimeoutValue }},
	{28, func(c *Configuration) *uint16 { return &c.CentreThresholdLow }},
	{30, func(c *Configuration) *uint16 { return &c.CentreThresholdHigh }},
	{32, func(c *Configuration) *uint16 { return &c.BlinkThreshold }},
	{34, func(c *Configuration) *uint16 { return &c.LightSwitchPositions }},
	{36, func(c *Configuration) *uint16 { return &c.InitialEndpointDelta }},
	{38, func(c *Configuration) *uint16 { return &c.CH3MultiClickTimeout }},
	{40, func(c *Configuration) *uint16 { return &c.WinchCommandRepeatTime }},
}

func decodeConfiguration(buf []byte) Configuration {
	var c Configuration

	c.Mode = Mode(buf[configModeOffs])
	c.ESCMode = ESCMode(buf[configESCModeOffs])

	flags := firmware.ReadU32(buf, configFlagsOffs)
	for _, f := range configFlags {
		*f.field(&c) = (flags>>f.bit)&1 != 0
	}

	for _, v := range configCounters {
		*v.field(&c) = firmware.ReadU16(buf, v.offs)
	}

	c.Baudrate = Baudrate(firmware.ReadU32(buf, configBaudrateOffs))
	c.NoSignalTimeout = firmware.ReadU16(buf, configNoSignalTimeoutOffs)

	return c
}

func encodeConfiguration(buf []byte, c Configuration) {
	buf[configModeOffs] = byte(c.Mode)
	buf[configESCModeOffs] = byte(c.ESCMode)

	var flags uint32
	for _, f := range configFlags {
		if *f.field(&c) {
			flags |= 1 << f.bit
		}
	}
	firmware.WriteU32(buf, configFlagsOffs, flags)

	for _, v := range configCounters {
		firmware.WriteU16(buf, v.offs, *v.field(&c))
	}

	firmware.WriteU32(buf, configBaudrateOffs, uint32(c.Baudrate))
	firmware.WriteU16(buf, configNoSignalTimeoutOffs, c.NoSignalTimeout)
}

func DecodeConfiguration(img *firmware.Image) (Configuration, error) {
	offs, err := img.Section(firmware.Configuration, ConfigurationLen)
	if err != nil {
		return Configuration{}, err
	}

	return decodeConfiguration(img.Bytes()[offs : offs+ConfigurationLen]), nil
}

func EncodeConfiguration(img *firmware.Image, c Configuration) error {
	offs, err := img.Section(firmware.Configuration, ConfigurationLen)
	if err != nil {
		return err
	}

	encodeConfiguration(img.Bytes()[offs:offs+ConfigurationLen], c)
	return nil
}

// Validate checks the enumerated fields hold values the firmware knows.
func (c *Configuration) Validate() error {
	switch c.Mode {
	case MasterWithServoReader, MasterWithUARTReader, Slave:
	default:
		return errors.Errorf("invalid mode %d", c.Mode)
	}

	switch c.ESCMode {
	case ForwardBrakeReverseTimeout, ForwardBrakeReverse, ForwardReverse, ForwardBrake:
	default:
		return errors.Errorf("invalid ESC mode %d", c.ESCMode)
	}

	switch c.Baudrate {
	case Baud38400, Baud115200:
	default:
		return errors.Errorf("invalid baudrate %d", c.Baudrate)
	}

	return nil
}

func (c *Configuration) String() string {
	str := ""
	str += fmt.Sprintf("Mode:        %s\n", c.Mode)
	str += fmt.Sprintf("ESC mode:    %s\n", c.ESCMode)
	str += fmt.Sprintf("Baudrate:    %d\n", c.Baudrate)
	str += fmt.Sprintf("No signal:   %d", c.NoSignalTimeout)
	return str
}
