//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Inspects the model named by $OBJVIEW_MODEL (and $OBJVIEW_MTL when set).
func (Run) Inspect() error {
	mg.Deps(Build.CLI)

	model := os.Getenv("OBJVIEW_MODEL")
	if model == "" {
		return fmt.Errorf("OBJVIEW_MODEL is not set")
	}
	args := []string{"-v", "inspect"}
	if mtl := os.Getenv("OBJVIEW_MTL"); mtl != "" {
		args = append(args, "--mtl", mtl)
	}
	args = append(args, model)

	fmt.Println("Run inspect...")
	_, err := executeCmd("bin/objview", withArgs(args...), withStream())
	return err
}

// Watches ./assets and reloads models on change.
func (Run) Watch() error {
	mg.Deps(Build.CLI)
	_, err := executeCmd("bin/objview", withArgs("-v", "watch", "assets"), withStream())
	return err
}
