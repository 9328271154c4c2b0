package resources

import (
	_ "embed"

	"fyne.io/fyne/v2"
)

//go:embed icon.svg
var iconData []byte

//go:embed defaults.yaml
var defaultsData []byte

var icon = fyne.NewStaticResource("icon.svg", iconData)

// Icon returns the application icon.
func Icon() fyne.Resource {
	return icon
}

// Defaults returns the embedded defaults document.
func Defaults() []byte {
	return defaultsData
}
