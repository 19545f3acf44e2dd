package cmd

import (
	"fmt"

	"github.com/lepinkainen/imagesorter/types"
)

type VersionCmd struct{}

func (cmd *VersionCmd) Run(appCtx *types.AppContext) error {
	version := types.DefaultVersion
	if appCtx != nil {
		version = appCtx.Version
	}
	fmt.Printf("imagesorter %s\n", version)
	return nil
}
