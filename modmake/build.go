package main

import (
	. "github.com/saylorsolutions/modmake"
)

const (
	savelockctlVersion = "0.1.0"
)

func main() {
	b := NewBuild()
	b.Generate().DependsOnRunner("tidy", "", Go().ModTidy())

	savelockctl := NewAppBuild("savelockctl", "cmd/savelockctl", savelockctlVersion)
	savelockctl.Build(func(gb *GoBuild) {
		gb.
			StripDebugSymbols().
			SetVariable("main", "version", savelockctlVersion).
			CgoEnabled(false)
	})
	savelockctl.Variant("windows", "amd64")
	savelockctl.Variant("linux", "amd64")
	savelockctl.Variant("linux", "arm64")
	savelockctl.Variant("darwin", "amd64")
	savelockctl.Variant("darwin", "arm64")
	b.ImportApp(savelockctl)

	b.Execute()
}
