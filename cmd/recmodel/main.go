package main

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/untillpro/goutils/cobrau"
	"github.com/untillpro/goutils/logger"

	_ "github.com/reoring/recmodel/record"
)

//go:embed version
var version string

// output receives command results; tests replace it.
var output io.Writer = os.Stdout

func main() {
	if err := execRootCmd(os.Args, strings.TrimSpace(version)); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func execRootCmd(args []string, ver string) error {
	rootCmd := cobrau.PrepareRootCmd(
		"recmodel",
		"Build, convert and store structured data records",
		args,
		ver,
		newStylesCmd(),
		newNewCmd(),
		newConvertCmd(),
		newCheckCmd(),
		newSchemaCmd(),
		newResourceCmd(),
		newStoreCmd(),
	)
	rootCmd.SetOut(output)
	return cobrau.ExecCommandAndCatchInterrupt(rootCmd)
}

func printf(format string, args ...any) {
	fmt.Fprintf(output, format, args...)
}
