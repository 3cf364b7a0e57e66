package main

import (
	"github.com/graphlens/lens/internal/server"
	"github.com/graphlens/lens/internal/util"
	"github.com/graphlens/lens/pkg/logger"
	"github.com/graphlens/lens/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.New(console.Params{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
