package main

import (
	"os"

	"github.com/go-arcade/menuroute/internal/bootstrap"
	"github.com/go-arcade/menuroute/pkg/version"
	"github.com/spf13/cobra"
)

/**
 * @file: main.go
 * @description: menuroute server and offline compiler
 */

var configFile string

var rootCmd = &cobra.Command{
	Use:   "menuroute",
	Short: "menuroute compiles backend menu records into front-end routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the menu route http server",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Bootstrap 初始化应用
		app, cleanup, err := bootstrap.Bootstrap(configFile, initApp)
		if err != nil {
			return err
		}

		// 启动应用并等待退出信号
		bootstrap.Run(app, cleanup)
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVarP(&configFile, "conf", "c", "conf.d/config.toml", "conf file path, e.g. -c ./conf.d/config.toml")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newCompileCmd(), newResolveCmd(), newBreadcrumbCmd())
	rootCmd.AddCommand(version.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
