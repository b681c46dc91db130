package style

// Preset names registered on every new Registry.
const (
	PresetHeader  = "header"
	PresetSuccess = "success"
	PresetWarning = "warning"
	PresetDanger  = "danger"
	PresetSkyBlue = "sky-blue"
)

var presets = map[string]Spec{
	PresetHeader:  New().WithBold().WithAlign("center", "center"),
	PresetSuccess: New().WithFill("#C6EFCE").WithFont(0, "#006100").WithBorder(BorderThin, "#9BBB59"),
	PresetWarning: New().WithFill("#FFEB9C").WithFont(0, "#9C5700").WithBorder(BorderThin, "#F79646"),
	PresetDanger:  New().WithFill("#FFC7CE").WithFont(0, "#9C0006").WithBorder(BorderThin, "#C0504D"),
	PresetSkyBlue: New().WithFill("#DDEBF7").WithBorder(BorderThin, "#9BC2E6"),
}
