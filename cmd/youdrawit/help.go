// ABOUTME: Help display for the youdrawit CLI with grouped flags, examples, and environment status.
// ABOUTME: Provides printHelp for polished usage output and envStatus for variable detection.
package main

import (
	"fmt"
	"io"
	"os"
)

const banner = `
   |         .
   |       .'
   |   ___/ ` + "`" + `.  ?
   |__/        ` + "`" + `.
   +-------------------
`

// printHelp writes a formatted help message to w, including usage patterns,
// grouped flags, examples and environment status.
func printHelp(w io.Writer, ver string) {
	fmt.Fprint(w, banner)
	fmt.Fprintf(w, "youdrawit %s: draw your guess, then see what really happened\n", ver)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  youdrawit -server [-port 2389]           Serve the interactive page")
	fmt.Fprintln(w, "  youdrawit -tui <key>                     Draw one chart in the terminal")
	fmt.Fprintln(w, "  youdrawit -export <key> [-format png]    Write a static chart")
	fmt.Fprintln(w, "  youdrawit -stats <key>                   Print the average recorded guess")
	fmt.Fprintln(w, "  youdrawit -validate                      Check every dataset can be drawn")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Data Flags:")
	fmt.Fprintln(w, "  -data <dir>           Dataset directory of .yml and .xlsx files (default: data)")
	fmt.Fprintln(w, "  -config <file>        Engine config YAML (default: $XDG_CONFIG_HOME/youdrawit/config.yaml)")
	fmt.Fprintln(w, "  -db <file>            Guess database (default: $XDG_DATA_HOME/youdrawit/guesses.db)")
	fmt.Fprintln(w, "  -no-store             Do not record guesses")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Server Flags:")
	fmt.Fprintln(w, "  -server               Start HTTP server mode")
	fmt.Fprintln(w, "  -port <port>          Server port (default: 2389)")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Export Flags:")
	fmt.Fprintln(w, "  -format <fmt>         svg, html or png (default: svg)")
	fmt.Fprintln(w, "  -width <px>           Chart width (default: 600)")
	fmt.Fprintln(w, "  -viewport <px>        Viewport width deciding mobile layout (default: 1024)")
	fmt.Fprintln(w, "  -o <file>             Output file (default: stdout)")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "  -verbose              Verbose output")
	fmt.Fprintln(w, "  -version              Print version and exit")
	fmt.Fprintln(w, "  -help                 Show this help")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  youdrawit -server -port 8080")
	fmt.Fprintln(w, "  youdrawit -tui unemployment")
	fmt.Fprintln(w, "  youdrawit -export unemployment -format png -o unemployment.png")
	fmt.Fprintln(w, "  youdrawit -data ./questions -validate")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment:")
	fmt.Fprintf(w, "  YOUDRAWIT_DATA        %s\n", envStatus("YOUDRAWIT_DATA"))
	fmt.Fprintf(w, "  YOUDRAWIT_DB          %s\n", envStatus("YOUDRAWIT_DB"))
	fmt.Fprintf(w, "  YOUDRAWIT_CONFIG      %s\n", envStatus("YOUDRAWIT_CONFIG"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Flags override environment values. A .env file is loaded if present.")
}

// envStatus returns "[set]" if the named environment variable is non-empty,
// or "[not set]" otherwise.
func envStatus(key string) string {
	if os.Getenv(key) != "" {
		return "[set]"
	}
	return "[not set]"
}
