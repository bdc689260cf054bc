package main

import (
	"fmt"
	"io"
	"os"

	"scheduler-backend/routes"
	"scheduler-backend/utils"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the registered HTTP routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		// Route registration never touches the database.
		r, err := routes.SetupRouter(routes.Deps{Config: cfg})
		if err != nil {
			return err
		}
		printRoutes(os.Stdout, r)
		return nil
	},
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print a bcrypt hash and a fresh JWT secret for auth config",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := utils.HashPassword(args[0])
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		fmt.Printf("auth:\n  password_hash: %q\n  jwt_secret: %q\n", hash, utils.GenerateJWTSecret())
		return nil
	},
}

var methodColors = map[string]*color.Color{
	"GET":    color.New(color.FgGreen),
	"POST":   color.New(color.FgYellow),
	"PUT":    color.New(color.FgBlue),
	"DELETE": color.New(color.FgRed),
}

func printRoutes(w io.Writer, r *gin.Engine) {
	for _, route := range r.Routes() {
		method := fmt.Sprintf("%-6s", route.Method)
		if c, ok := methodColors[route.Method]; ok {
			method = c.Sprint(method)
		}
		fmt.Fprintf(w, "%s %s\n", method, route.Path)
	}
}

func init() {
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(hashPasswordCmd)
}
