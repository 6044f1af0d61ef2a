//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the objview command line into ./bin.
func (Build) CLI() error {
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/objview", "."), withStream()); err != nil {
		return err
	}
	return nil
}

type Test mg.Namespace

// Runs every package test with the race detector.
func (Test) All() error {
	if _, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the parser tests only.
func (Test) Parser() error {
	_, err := executeCmd("go", withArgs("test", "./engine/assets/wavefront/..."), withStream())
	return err
}
