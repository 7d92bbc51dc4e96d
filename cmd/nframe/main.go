package main

import (
	"os"

	"github.com/bloeys/nframe/logging"
	"github.com/urfave/cli"
)

func main() {

	app := cli.NewApp()
	app.Name = "nframe"
	app.Usage = "render a pickable scene into an offscreen framebuffer and present it"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Value: "nframe.toml",
			Usage: "TOML config file. Defaults are used for missing files and keys",
		},
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable debug logging",
		},
		cli.StringFlag{
			Name:  "screenshot-dir",
			Value: ".",
			Usage: "directory F12 screenshots are written to",
		},
	}
	app.Action = runDemo

	if err := app.Run(os.Args); err != nil {
		logging.ErrLog.Fatal(err)
	}
}
