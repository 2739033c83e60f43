// @title           Todo API
// @version         1.0
// @description     Todo CRUD with paging, sorting and field validation.
// @host            localhost:8080
// @BasePath        /
package main

import (
	"os"

	"github.com/mauriciosoaresd/todo-study-spring/cmd/api/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
