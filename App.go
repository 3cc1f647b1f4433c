package main

import (
	"fmt"
	"github.com/NYTimes/gziphandler"
	"github.com/gin-gonic/gin"
	"gridCalc/engine"
	"gridCalc/terminal"
	"io"
	"net/http"
	"os"
)

const ExitCodeMainError = 1

const TerminalCommand = "terminal"

func main() {
	var err error
	if len(os.Args) > 1 && os.Args[1] == TerminalCommand {
		err = RunTerminal()
	} else {
		err = RunApp()
	}

	os.Exit(HandleExitError(os.Stderr, err))
}

func RunApp() error {
	gin.SetMode(gin.ReleaseMode)

	config, err := LoadConfig()
	if err != nil {
		return err
	}

	serviceContainer, err := BuildServiceContainer(config, os.Stderr)
	if err != nil {
		return err
	}

	defer serviceContainer.Database.Close()

	serviceContainer.WebhookDispatcher.Start()
	defer serviceContainer.WebhookDispatcher.Close()

	go serviceContainer.StreamHub.Run()
	defer serviceContainer.StreamHub.Close()

	return http.ListenAndServe(config.ListenAddr, NewHttpHandler(serviceContainer.Router))
}

// NewHttpHandler gzips API responses. Websocket upgrades bypass compression.
func NewHttpHandler(router http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(StreamPathPrefix, router)
	mux.Handle("/", gziphandler.GzipHandler(router))

	return mux
}

func RunTerminal() error {
	maxTextLength, err := readIntEnv("MAX_TEXT_LENGTH", 0)
	if err != nil {
		return err
	}

	return terminal.Run(engine.WithMaxTextLength(maxTextLength))
}

func HandleExitError(errStream io.Writer, err error) int {
	if err != nil {
		_, _ = fmt.Fprintln(errStream, err)
	}

	if err != nil {
		return ExitCodeMainError
	}

	return 0
}
