package main

import (
	"github.com/vaultcms/create-vault-cms/internal/cli"
)

func main() {
	cli.Execute()
}
