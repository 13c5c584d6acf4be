package main

import (
	"github.com/crackersmart/storefront/internal/app"
	"github.com/crackersmart/storefront/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
