package main

import (
	"log"

	"eyesaver/internal/controller"
	"eyesaver/internal/platform"
	"eyesaver/internal/storage"
	"eyesaver/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const appName = "EyeSaver"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, err := storage.LoadEmbeddedSettings()
	if err != nil {
		fyne.LogError("load embedded defaults", err)
	}

	fyneApp := app.NewWithID("com.eyesaver.app")
	fyneApp.SetIcon(resources.Icon())

	eyeSaver := controller.New(fyneApp, settings)
	eyeSaver.Show()
	fyneApp.Run()
	eyeSaver.Shutdown()
}
