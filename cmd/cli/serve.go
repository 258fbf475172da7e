package main

import (
	"github.com/spf13/cobra"
)

func newServeCmd(rc *rootConfig) *cobra.Command {
	var port int

	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the http api",
		RunE: func(c *cobra.Command, args []string) error {
			deps, err := rc.dependencies()
			if err != nil {
				return err
			}
			if !c.Flags().Changed("port") {
				port = deps.Config.Port
			}
			return deps.ApiHandler.StartApi(port)
		},
	}
	c.Flags().IntVar(&port, "port", 3009, "listen port, defaults to the config value")
	return c
}
