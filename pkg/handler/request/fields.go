package request

// WeightMode selects how category weights are chosen for an analysis run.
type WeightMode int

const (
	WeightModePreset WeightMode = iota
	WeightModeCustom
	WeightModeAdaptive
	WeightModeUnknown
)

func (m WeightMode) String() string {
	switch m {
	case WeightModePreset:
		return "preset"
	case WeightModeCustom:
		return "custom"
	case WeightModeAdaptive:
		return "adaptive"
	default:
		return "unknown"
	}
}

func NewWeightMode(mode string) WeightMode {
	switch mode {
	case "preset", "":
		// preset is the default mode, same as the interactive tool
		return WeightModePreset
	case "custom":
		return WeightModeCustom
	case "adaptive":
		return WeightModeAdaptive
	default:
		return WeightModeUnknown
	}
}
