/*
objview inspects Wavefront OBJ/MTL assets the way the viewer loads them
and can watch an asset directory for live reloads.
*/
package main

import (
	"os"

	"github.com/spaghettifunk/objview/cmd"
	"github.com/spaghettifunk/objview/engine/core"
)

func main() {
	if err := cmd.NewApp().Run(os.Args); err != nil {
		core.LogFatal("%s", err)
	}
}
