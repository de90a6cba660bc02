package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tinyrange/gosdl/internal/input"
	"github.com/tinyrange/gosdl/internal/native"
	"github.com/tinyrange/gosdl/internal/sdl"
)

type report struct {
	Version     string
	Platform    string
	VideoDriver string
	Displays    []display
	Joysticks   []joystick
	Haptics     []haptic
}

type display struct {
	Index int
	DPI   float32
}

type joystick struct {
	Index      int
	Name       string
	Controller string
	Axes       int
	Buttons    int
	Hats       int
	Balls      int
	Power      int32
	Err        error
}

type haptic struct {
	Index    int
	Name     string
	Features uint32
	Effects  int
	Err      error
}

// collect queries every display and device. Devices that cannot be opened are
// reported with their error instead of aborting the listing.
func collect(sys *sdl.System) report {
	api := sys.API()
	r := report{
		Version:     sys.Version(),
		Platform:    api.GetPlatform(),
		VideoDriver: api.GetCurrentVideoDriver(),
	}

	for i := range int(api.GetNumVideoDisplays()) {
		d := display{Index: i}
		if ddpi, _, _, status := api.GetDisplayDPI(int32(i)); status == 0 {
			d.DPI = ddpi
		}
		r.Displays = append(r.Displays, d)
	}

	n, _ := input.NumJoysticks(sys)
	for i := range n {
		r.Joysticks = append(r.Joysticks, probeJoystick(sys, i))
	}
	for i := range input.NumHaptics(sys) {
		r.Haptics = append(r.Haptics, probeHaptic(sys, i))
	}
	return r
}

func probeJoystick(sys *sdl.System, index int) joystick {
	info := joystick{Index: index, Power: native.PowerUnknown}
	info.Name, _ = input.JoystickNameForIndex(sys, index)
	if input.IsGameController(sys, index) {
		info.Controller, _ = input.GameControllerNameForIndex(sys, index)
		if info.Controller == "" {
			info.Controller = "unnamed"
		}
	}

	j, err := input.OpenJoystick(sys, index)
	if err != nil {
		info.Err = err
		return info
	}
	defer j.Close()

	info.Axes, _ = j.NumAxes()
	info.Buttons, _ = j.NumButtons()
	info.Hats, _ = j.NumHats()
	info.Balls, _ = j.NumBalls()
	info.Power = j.PowerLevel()
	return info
}

func probeHaptic(sys *sdl.System, index int) haptic {
	info := haptic{Index: index}
	info.Name, _ = input.HapticName(sys, index)

	h, err := input.OpenHaptic(sys, index)
	if err != nil {
		info.Err = err
		return info
	}
	defer h.Close()

	info.Features = h.Capabilities()
	info.Effects, info.Err = h.NumEffects()
	return info
}

var featureNames = []struct {
	bit  uint32
	name string
}{
	{native.HapticConstant, "constant"},
	{native.HapticSine, "sine"},
	{native.HapticLeftRight, "leftright"},
	{native.HapticTriangle, "triangle"},
	{native.HapticSawtoothUp, "sawtoothup"},
	{native.HapticSawtoothDown, "sawtoothdown"},
	{native.HapticRamp, "ramp"},
	{native.HapticSpring, "spring"},
	{native.HapticDamper, "damper"},
	{native.HapticInertia, "inertia"},
	{native.HapticFriction, "friction"},
	{native.HapticCustom, "custom"},
	{native.HapticGain, "gain"},
	{native.HapticAutocenter, "autocenter"},
	{native.HapticStatus, "status"},
	{native.HapticPause, "pause"},
}

func featureList(features uint32) string {
	var names []string
	for _, f := range featureNames {
		if features&f.bit != 0 {
			names = append(names, f.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

func powerName(level int32) string {
	switch level {
	case native.PowerEmpty:
		return "empty"
	case native.PowerLow:
		return "low"
	case native.PowerMedium:
		return "medium"
	case native.PowerFull:
		return "full"
	case native.PowerWired:
		return "wired"
	case native.PowerMax:
		return "max"
	default:
		return "unknown"
	}
}

type palette struct {
	title   lipgloss.Style
	section lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	err     lipgloss.Style
}

func newPalette(styled bool) palette {
	if !styled {
		plain := lipgloss.NewStyle()
		return palette{title: plain, section: plain, label: plain, value: plain, err: plain}
	}
	return palette{
		title:   titleStyle,
		section: lipgloss.NewStyle().Bold(true).Underline(true),
		label:   helpStyle,
		value:   valueStyle,
		err:     errorStyle,
	}
}

func (r report) write(w io.Writer, styled bool) error {
	p := newPalette(styled)
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s on %s (video: %s)\n\n",
		p.title.Render("SDL"), p.value.Render(r.Version), r.Platform, p.value.Render(r.VideoDriver))

	b.WriteString(p.section.Render("Displays") + "\n")
	for _, d := range r.Displays {
		fmt.Fprintf(&b, "  %d  %s %s\n", d.Index, p.value.Render(fmt.Sprintf("%.0f", d.DPI)), p.label.Render("dpi"))
	}

	b.WriteString("\n" + p.section.Render("Joysticks") + "\n")
	if len(r.Joysticks) == 0 {
		b.WriteString(p.label.Render("  none") + "\n")
	}
	for _, j := range r.Joysticks {
		fmt.Fprintf(&b, "  %d  %s", j.Index, p.value.Render(j.Name))
		if j.Controller != "" {
			fmt.Fprintf(&b, "  %s %q", p.label.Render("controller"), j.Controller)
		}
		if j.Err != nil {
			fmt.Fprintf(&b, "  %s\n", p.err.Render(j.Err.Error()))
			continue
		}
		fmt.Fprintf(&b, "  %s %d  %s %d  %s %d  %s %d  %s %s\n",
			p.label.Render("axes"), j.Axes,
			p.label.Render("buttons"), j.Buttons,
			p.label.Render("hats"), j.Hats,
			p.label.Render("balls"), j.Balls,
			p.label.Render("power"), powerName(j.Power))
	}

	b.WriteString("\n" + p.section.Render("Haptics") + "\n")
	if len(r.Haptics) == 0 {
		b.WriteString(p.label.Render("  none") + "\n")
	}
	for _, h := range r.Haptics {
		fmt.Fprintf(&b, "  %d  %s", h.Index, p.value.Render(h.Name))
		if h.Err != nil {
			fmt.Fprintf(&b, "  %s\n", p.err.Render(h.Err.Error()))
			continue
		}
		fmt.Fprintf(&b, "  %s %d  %s\n", p.label.Render("effects"), h.Effects, featureList(h.Features))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
