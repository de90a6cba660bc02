package input

import (
	"time"

	"github.com/tinyrange/gosdl/internal/native"
)

// Infinite as an effect length plays the effect until it is stopped.
const Infinite time.Duration = -1

// EffectSpec describes a haptic effect before it is uploaded.
type EffectSpec interface {
	Native() native.HapticEffect
}

// Direction of a force. The zero value points north in polar coordinates.
type Direction struct {
	Type uint8
	Dir  [3]int32
}

// Polar points in hundredths of a degree, clockwise from north.
func Polar(hundredths int32) Direction {
	return Direction{Type: native.HapticPolar, Dir: [3]int32{hundredths}}
}

// Cartesian points along x, y, z.
func Cartesian(x, y, z int32) Direction {
	return Direction{Type: native.HapticCartesian, Dir: [3]int32{x, y, z}}
}

func (d Direction) native() native.HapticDirection {
	return native.HapticDirection{Type: d.Type, Dir: d.Dir}
}

// Envelope fades an effect in and out. Levels are absolute magnitudes.
type Envelope struct {
	AttackLength time.Duration
	AttackLevel  uint16
	FadeLength   time.Duration
	FadeLevel    uint16
}

func (e Envelope) apply(n *native.HapticEffect) {
	n.AttackLength = millis16(e.AttackLength)
	n.AttackLevel = e.AttackLevel
	n.FadeLength = millis16(e.FadeLength)
	n.FadeLevel = e.FadeLevel
}

// Replay controls when an effect plays.
type Replay struct {
	Length time.Duration
	Delay  time.Duration
}

func (r Replay) apply(n *native.HapticEffect) {
	if r.Length == Infinite {
		n.Length = native.HapticInfinity
	} else {
		n.Length = millis(r.Length)
	}
	n.Delay = millis16(r.Delay)
}

// Trigger starts an effect from a device button.
type Trigger struct {
	Button   uint16
	Interval time.Duration
}

func (t Trigger) apply(n *native.HapticEffect) {
	n.Button = t.Button
	n.Interval = millis16(t.Interval)
}

// ConstantEffect pushes with a fixed force.
type ConstantEffect struct {
	Direction Direction
	Replay
	Trigger
	Level int16
	Envelope
}

func (e ConstantEffect) Native() native.HapticEffect {
	n := native.HapticEffect{Type: native.HapticConstant, Direction: e.Direction.native(), Level: e.Level}
	e.Replay.apply(&n)
	e.Trigger.apply(&n)
	e.Envelope.apply(&n)
	return n
}

// PeriodicEffect oscillates. Waveform is one of native.HapticSine,
// HapticTriangle, HapticSawtoothUp or HapticSawtoothDown.
type PeriodicEffect struct {
	Waveform  uint16
	Direction Direction
	Replay
	Trigger
	Period    time.Duration
	Magnitude int16
	Offset    int16
	Phase     uint16
	Envelope
}

func (e PeriodicEffect) Native() native.HapticEffect {
	n := native.HapticEffect{
		Type:      e.Waveform,
		Direction: e.Direction.native(),
		Period:    millis16(e.Period),
		Magnitude: e.Magnitude,
		Offset:    e.Offset,
		Phase:     e.Phase,
	}
	if n.Type == 0 {
		n.Type = native.HapticSine
	}
	e.Replay.apply(&n)
	e.Trigger.apply(&n)
	e.Envelope.apply(&n)
	return n
}

// RampEffect moves linearly from Start to End over its length.
type RampEffect struct {
	Direction Direction
	Replay
	Trigger
	Start int16
	End   int16
	Envelope
}

func (e RampEffect) Native() native.HapticEffect {
	n := native.HapticEffect{Type: native.HapticRamp, Direction: e.Direction.native(), Start: e.Start, End: e.End}
	e.Replay.apply(&n)
	e.Trigger.apply(&n)
	e.Envelope.apply(&n)
	return n
}

// LeftRightEffect drives the two rumble motors of a gamepad.
type LeftRightEffect struct {
	Length time.Duration
	Large  uint16
	Small  uint16
}

func (e LeftRightEffect) Native() native.HapticEffect {
	n := native.HapticEffect{Type: native.HapticLeftRight, LargeMagnitude: e.Large, SmallMagnitude: e.Small}
	Replay{Length: e.Length}.apply(&n)
	return n
}

// ConditionEffect reacts to the axis position or motion. Kind is one of
// native.HapticSpring, HapticDamper, HapticInertia or HapticFriction. Each
// array holds one value per axis.
type ConditionEffect struct {
	Kind uint16
	Replay
	Trigger
	RightSat   [3]uint16
	LeftSat    [3]uint16
	RightCoeff [3]int16
	LeftCoeff  [3]int16
	Deadband   [3]uint16
	Center     [3]int16
}

func (e ConditionEffect) Native() native.HapticEffect {
	n := native.HapticEffect{
		Type:       e.Kind,
		RightSat:   e.RightSat,
		LeftSat:    e.LeftSat,
		RightCoeff: e.RightCoeff,
		LeftCoeff:  e.LeftCoeff,
		Deadband:   e.Deadband,
		Center:     e.Center,
	}
	if n.Type == 0 {
		n.Type = native.HapticSpring
	}
	e.Replay.apply(&n)
	e.Trigger.apply(&n)
	return n
}

func millis16(d time.Duration) uint16 {
	ms := millis(d)
	if ms > 0xffff {
		return 0xffff
	}
	return uint16(ms)
}
