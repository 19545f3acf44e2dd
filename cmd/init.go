package cmd

import (
	"fmt"

	"github.com/lepinkainen/imagesorter/config"
	"github.com/lepinkainen/imagesorter/ui"
)

// InitCmd writes a commented sample configuration
type InitCmd struct {
	File  string `arg:"" name:"file" help:"Where to write the configuration" default:"config.toml" type:"path"`
	Force bool   `help:"Overwrite an existing file"`
}

func (cmd *InitCmd) Run() error {
	if err := config.WriteSample(cmd.File, cmd.Force); err != nil {
		return err
	}
	fmt.Println(ui.SuccessStyle.Render(fmt.Sprintf("✅ Wrote %s", cmd.File)))
	fmt.Println("Edit dir and [dests], then run 'imagesorter sort'.")
	return nil
}
