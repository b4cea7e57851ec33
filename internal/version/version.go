package version

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Version подставляется при сборке через -ldflags.
var Version = "0.3.0-dev"

// Banner печатает версию; цвет — по желанию вызывающего.
func Banner(w io.Writer, colorize bool) {
	name := "spicy"
	if colorize {
		name = color.New(color.FgMagenta, color.Bold).Sprint(name)
	}
	fmt.Fprintf(w, "%s %s\n", name, Version)
}
