// Command parse reads an assistant reply from a file or stdin and prints the
// recipes found in it as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/pageza/pantrychef/backend/internal/logging"
	"github.com/pageza/pantrychef/backend/internal/parser"
)

func main() {
	logging.Setup(os.Getenv("LOG_LEVEL"), true)
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Error().Err(err).Msg("parse failed")
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	available := fs.String("available", "", "Comma separated ingredients on hand")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in := stdin
	if path := fs.Arg(0); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	reply, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read reply: %w", err)
	}

	recipes, err := parser.Parse(string(reply), splitList(*available))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(recipes)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
